package implementations

import (
	"github.com/annel0/mine-colony/internal/world/tile"
)

// RockBehavior реализует поведение обычной породы
type RockBehavior struct{}

func (b *RockBehavior) ID() tile.TileID {
	return tile.RockTileID
}

func (b *RockBehavior) Name() string {
	return "Rock"
}

func (b *RockBehavior) IsSolid() bool {
	return true
}

func (b *RockBehavior) IsPassable() bool {
	return false
}

func (b *RockBehavior) OreGrade() uint8 {
	return 0
}

// MineableTo: выработанная порода оставляет пол штольни
func (b *RockBehavior) MineableTo() (tile.TileID, bool) {
	return tile.FloorTileID, true
}
