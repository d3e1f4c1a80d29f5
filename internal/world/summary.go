package world

import (
	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world/tile"
)

// TileCounts хранит количество тайлов каждого типа в некоторой области.
// Набор типов закрытый, поэтому счётчики — фиксированные поля, а не карта:
// слияние агрегатов сводится к сложению полей без аллокаций.
type TileCounts struct {
	Air     int
	Floor   int
	Wall    int
	Rock    int
	OreLean int
	OreRich int
	OrePure int
}

// Add увеличивает счётчик типа id на n
func (tc *TileCounts) Add(id tile.TileID, n int) {
	switch id {
	case tile.AirTileID:
		tc.Air += n
	case tile.FloorTileID:
		tc.Floor += n
	case tile.WallTileID:
		tc.Wall += n
	case tile.RockTileID:
		tc.Rock += n
	case tile.OreLeanTileID:
		tc.OreLean += n
	case tile.OreRichTileID:
		tc.OreRich += n
	case tile.OrePureTileID:
		tc.OrePure += n
	}
}

// Merge прибавляет счётчики other
func (tc *TileCounts) Merge(other TileCounts) {
	tc.Air += other.Air
	tc.Floor += other.Floor
	tc.Wall += other.Wall
	tc.Rock += other.Rock
	tc.OreLean += other.OreLean
	tc.OreRich += other.OreRich
	tc.OrePure += other.OrePure
}

// Total возвращает суммарное число учтённых тайлов
func (tc TileCounts) Total() int {
	return tc.Air + tc.Floor + tc.Wall + tc.Rock + tc.OreLean + tc.OreRich + tc.OrePure
}

// Summary — агрегат области (одного чанка или группы чанков) для LOD
type Summary struct {
	Counts TileCounts
}

// Merge объединяет два агрегата
func (s *Summary) Merge(other Summary) {
	s.Counts.Merge(other.Counts)
}

// Majority возвращает преобладающий тип тайла области
func (s Summary) Majority() tile.TileID {
	best := tile.AirTileID
	bestCount := s.Counts.Air
	if s.Counts.Floor > bestCount {
		best, bestCount = tile.FloorTileID, s.Counts.Floor
	}
	if s.Counts.Wall > bestCount {
		best, bestCount = tile.WallTileID, s.Counts.Wall
	}
	if s.Counts.Rock > bestCount {
		best, bestCount = tile.RockTileID, s.Counts.Rock
	}
	if s.Counts.OreLean > bestCount {
		best, bestCount = tile.OreLeanTileID, s.Counts.OreLean
	}
	if s.Counts.OreRich > bestCount {
		best, bestCount = tile.OreRichTileID, s.Counts.OreRich
	}
	if s.Counts.OrePure > bestCount {
		best = tile.OrePureTileID
	}
	return best
}

// HasOre сообщает, есть ли в области хотя бы одна рудная жила
func (s Summary) HasOre() bool {
	return s.Counts.OreLean > 0 || s.Counts.OreRich > 0 || s.Counts.OrePure > 0
}

// solidCount возвращает число твёрдых тайлов
func (s Summary) solidCount() int {
	return s.Counts.Wall + s.Counts.Rock + s.Counts.OreLean + s.Counts.OreRich + s.Counts.OrePure
}

// FullySolid — вся область заполнена твёрдой породой
func (s Summary) FullySolid() bool {
	total := s.Counts.Total()
	return total > 0 && s.solidCount() == total
}

// FullyOpen — вся область проходима
func (s Summary) FullyOpen() bool {
	total := s.Counts.Total()
	return total > 0 && s.solidCount() == 0
}

// RegionSummary — ответ LOD-запроса для одной ячейки сетки гранулярности
type RegionSummary struct {
	// Cell — координата ячейки на сетке (чанковые координаты >> Level)
	Cell vec.Vec2
	// Level — уровень пирамиды: ячейка покрывает 2^Level × 2^Level чанков
	Level int

	Majority   tile.TileID
	HasOre     bool
	FullySolid bool
	FullyOpen  bool

	// Approximate — агрегат получен статистической оценкой генератора,
	// а не обходом фактических тайлов
	Approximate bool
}

// newRegionSummary собирает RegionSummary из агрегата
func newRegionSummary(cell vec.Vec2, level int, s Summary, approximate bool) RegionSummary {
	return RegionSummary{
		Cell:        cell,
		Level:       level,
		Majority:    s.Majority(),
		HasOre:      s.HasOre(),
		FullySolid:  s.FullySolid(),
		FullyOpen:   s.FullyOpen(),
		Approximate: approximate,
	}
}
