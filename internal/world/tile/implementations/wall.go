package implementations

import (
	"github.com/annel0/mine-colony/internal/world/tile"
)

// WallBehavior реализует поведение монолитной стены.
// Стены образуют несущий каркас пласта и не поддаются добыче.
type WallBehavior struct{}

func (b *WallBehavior) ID() tile.TileID {
	return tile.WallTileID
}

func (b *WallBehavior) Name() string {
	return "Wall"
}

func (b *WallBehavior) IsSolid() bool {
	return true
}

func (b *WallBehavior) IsPassable() bool {
	return false
}

func (b *WallBehavior) OreGrade() uint8 {
	return 0
}

// MineableTo возвращает false: монолит не разрушается
func (b *WallBehavior) MineableTo() (tile.TileID, bool) {
	return tile.WallTileID, false
}
