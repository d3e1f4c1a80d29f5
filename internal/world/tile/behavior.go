package tile

// TileBehavior определяет свойства типа тайла.
// Тайлы пассивны: в отличие от блоков с тик-логикой, карте шахты нужны
// только статические свойства для коллизий, рендера и LOD-агрегатов.
type TileBehavior interface {
	ID() TileID
	Name() string

	// IsSolid — тайл заполняет объём (стена, порода, руда)
	IsSolid() bool

	// IsPassable — сущность может занять тайл (воздух, пол)
	IsPassable() bool

	// OreGrade — ценность руды: 0 для пустой породы, 1..3 для жил
	OreGrade() uint8

	// MineableTo возвращает ID, в который тайл превращается при добыче,
	// и false, если тайл не разрушается
	MineableTo() (TileID, bool)
}
