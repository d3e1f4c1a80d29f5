package implementations

import (
	"github.com/annel0/mine-colony/internal/world/tile"
)

// FloorBehavior реализует поведение открытого пола: поверхность колонии
// и дно выработанных штолен
type FloorBehavior struct{}

func (b *FloorBehavior) ID() tile.TileID {
	return tile.FloorTileID
}

func (b *FloorBehavior) Name() string {
	return "Floor"
}

// IsSolid возвращает false: пол не перекрывает проход
func (b *FloorBehavior) IsSolid() bool {
	return false
}

func (b *FloorBehavior) IsPassable() bool {
	return true
}

func (b *FloorBehavior) OreGrade() uint8 {
	return 0
}

func (b *FloorBehavior) MineableTo() (tile.TileID, bool) {
	return tile.FloorTileID, false
}
