package tile

var registry = make(map[TileID]TileBehavior)

// Register добавляет поведение тайла в регистр
func Register(id TileID, behavior TileBehavior) {
	registry[id] = behavior
}

// Get возвращает поведение для указанного ID
func Get(id TileID) (TileBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// IsValidTileID проверяет, является ли ID допустимым идентификатором тайла
func IsValidTileID(id TileID) bool {
	_, exists := registry[id]
	return exists
}

// All возвращает список всех зарегистрированных ID (порядок не определён)
func All() []TileID {
	ids := make([]TileID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}

// TileID представляет идентификатор типа тайла
type TileID uint16

// Константы ID тайлов. Набор закрытый: генератор и LOD-агрегаты
// исчерпывающе перебирают именно эти значения.
const (
	// Проходимые тайлы
	AirTileID   TileID = iota // 0 — выработанная пустота
	FloorTileID               // 1 — открытый пол (поверхность, штольни)

	// Твёрдая порода
	WallTileID // 2 — монолитная стена, не разрушается
	RockTileID // 3 — обычная порода, пригодна для добычи

	// Руды (начиная со 100, по возрастанию ценности)
	OreLeanTileID TileID = 100 // бедная руда
	OreRichTileID TileID = 101 // богатая руда
	OrePureTileID TileID = 102 // самородная жила
)

// IsSolid сообщает, является ли тайл твёрдым (непроходимым).
// Незарегистрированный ID считается твёрдым: безопаснее для коллизий.
func IsSolid(id TileID) bool {
	behavior, exists := Get(id)
	if !exists {
		return true
	}
	return behavior.IsSolid()
}

// IsPassable сообщает, может ли сущность занять тайл
func IsPassable(id TileID) bool {
	behavior, exists := Get(id)
	if !exists {
		return false
	}
	return behavior.IsPassable()
}

// OreGrade возвращает ценность руды (0 — не руда)
func OreGrade(id TileID) uint8 {
	behavior, exists := Get(id)
	if !exists {
		return 0
	}
	return behavior.OreGrade()
}

// MineableTo возвращает тайл, остающийся на месте после добычи,
// и false, если тайл добыче не подлежит
func MineableTo(id TileID) (TileID, bool) {
	behavior, exists := Get(id)
	if !exists {
		return id, false
	}
	return behavior.MineableTo()
}
