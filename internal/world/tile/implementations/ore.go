package implementations

import (
	"github.com/annel0/mine-colony/internal/world/tile"
)

// OreBehavior реализует поведение рудной жилы заданной ценности.
// Три градации (бедная/богатая/самородная) используют одну реализацию.
type OreBehavior struct {
	id    tile.TileID
	name  string
	grade uint8
}

func (b *OreBehavior) ID() tile.TileID {
	return b.id
}

func (b *OreBehavior) Name() string {
	return b.name
}

func (b *OreBehavior) IsSolid() bool {
	return true
}

func (b *OreBehavior) IsPassable() bool {
	return false
}

func (b *OreBehavior) OreGrade() uint8 {
	return b.grade
}

// MineableTo: выработанная жила оставляет пол штольни
func (b *OreBehavior) MineableTo() (tile.TileID, bool) {
	return tile.FloorTileID, true
}
