package world

import (
	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world/tile"
)

// ViewMode определяет, что лежит в MapView: тайлы или LOD-сводки
type ViewMode int

const (
	// ViewTiles — детальный режим: по тайлу на элемент
	ViewTiles ViewMode = iota
	// ViewSummaries — огрублённый режим: по сводке на группу чанков
	ViewSummaries
)

// MapView — единый результат World.Query, пригодный для рендера
// независимо от того, каким путём он получен.
type MapView struct {
	Layer int
	Mode  ViewMode

	// Детальный режим: прямоугольник тайлов построчно (row-major),
	// Origin — мировая координата верхнего левого тайла
	Origin vec.Vec2
	Width  int
	Height int
	Tiles  []tile.TileID

	// Огрублённый режим: сводки по ячейкам уровня Level;
	// CellTiles — сторона ячейки в тайлах
	Level     int
	CellTiles int
	Summaries []RegionSummary
}

// TileAt возвращает тайл детального представления по мировой координате
func (v *MapView) TileAt(pos vec.Vec2) (tile.TileID, bool) {
	if v.Mode != ViewTiles {
		return tile.AirTileID, false
	}
	dx := pos.X - v.Origin.X
	dy := pos.Y - v.Origin.Y
	if dx < 0 || dx >= v.Width || dy < 0 || dy >= v.Height {
		return tile.AirTileID, false
	}
	return v.Tiles[dy*v.Width+dx], true
}
