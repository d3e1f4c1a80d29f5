package implementations

import (
	"github.com/annel0/mine-colony/internal/world/tile"
)

// AirBehavior реализует поведение пустого тайла (выработанное пространство)
type AirBehavior struct{}

// ID возвращает идентификатор тайла
func (b *AirBehavior) ID() tile.TileID {
	return tile.AirTileID
}

// Name возвращает имя тайла
func (b *AirBehavior) Name() string {
	return "Air"
}

// IsSolid возвращает false: пустота не заполняет объём
func (b *AirBehavior) IsSolid() bool {
	return false
}

// IsPassable возвращает true: сущности свободно проходят
func (b *AirBehavior) IsPassable() bool {
	return true
}

// OreGrade возвращает 0: в пустоте нет руды
func (b *AirBehavior) OreGrade() uint8 {
	return 0
}

// MineableTo возвращает false: добывать нечего
func (b *AirBehavior) MineableTo() (tile.TileID, bool) {
	return tile.AirTileID, false
}
