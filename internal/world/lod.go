package world

import (
	"sync"

	"github.com/annel0/mine-colony/internal/vec"
)

// MaxLODLevel — высота пирамиды агрегатов: верхний уровень сводит
// 2^6 × 2^6 = 4096 чанков (1024×1024 тайлов) в один узел.
const MaxLODLevel = 6

// lodNode — узел пирамиды: агрегат области и число чанков области,
// для которых агрегат построен по фактическим тайлам.
type lodNode struct {
	summary   Summary
	generated int
}

// LODIndex — иерархия агрегатов одного слоя по степеням двойки.
// Уровень 0 хранит точные сводки отдельных чанков; узел уровня k
// объединяет четырёх детей уровня k-1. Инвариант: узел, покрывающий
// сгенерированные чанки, всегда согласован с их фактическими тайлами —
// setChunkSummary пересчитывает всю ветку предков.
type LODIndex struct {
	layer int
	gen   *TileGenerator

	mu     sync.RWMutex
	levels [MaxLODLevel + 1]map[vec.Vec2]*lodNode
}

// NewLODIndex создаёт пустую пирамиду для слоя
func NewLODIndex(layer int, gen *TileGenerator) *LODIndex {
	idx := &LODIndex{
		layer: layer,
		gen:   gen,
	}
	for level := 0; level <= MaxLODLevel; level++ {
		idx.levels[level] = make(map[vec.Vec2]*lodNode)
	}
	return idx
}

// cellChunks возвращает число чанков, покрываемых узлом уровня level
func cellChunks(level int) int {
	return 1 << (2 * uint(level))
}

// setChunkSummary публикует точный агрегат чанка и пересобирает предков.
// Вызывается при (пере)генерации чанка и при каждой мутации SetTile.
func (idx *LODIndex) setChunkSummary(coords vec.Vec2, s Summary) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	node, exists := idx.levels[0][coords]
	if !exists {
		node = &lodNode{generated: 1}
		idx.levels[0][coords] = node
	}
	node.summary = s

	// Пересборка предков снизу вверх из четвёрок детей
	for level := 1; level <= MaxLODLevel; level++ {
		cell := coords.ShiftRight(uint(level))
		childBase := vec.Vec2{X: cell.X << 1, Y: cell.Y << 1}

		var agg Summary
		generated := 0
		for dx := 0; dx < 2; dx++ {
			for dy := 0; dy < 2; dy++ {
				child := childBase.Add(vec.Vec2{X: dx, Y: dy})
				if childNode, ok := idx.levels[level-1][child]; ok {
					agg.Merge(childNode.summary)
					generated += childNode.generated
				}
			}
		}

		parent, ok := idx.levels[level][cell]
		if !ok {
			parent = &lodNode{}
			idx.levels[level][cell] = parent
		}
		parent.summary = agg
		parent.generated = generated
	}
}

// queryRegion строит сводки по всем ячейкам уровня level, покрывающим
// прямоугольник чанков region. Ячейки выравниваются наружу по сетке 2^level.
func (idx *LODIndex) queryRegion(store *LayerStore, region vec.Rect, level int, exact bool) ([]RegionSummary, error) {
	cells := region.ShiftRight(uint(level))

	out := make([]RegionSummary, 0, cells.Width()*cells.Height())
	for cx := cells.Min.X; cx <= cells.Max.X; cx++ {
		for cy := cells.Min.Y; cy <= cells.Max.Y; cy++ {
			rs, err := idx.summarizeCell(store, vec.Vec2{X: cx, Y: cy}, level, exact)
			if err != nil {
				return nil, err
			}
			out = append(out, rs)
		}
	}
	return out, nil
}

// summarizeCell строит сводку одной ячейки пирамиды.
//
// Порядок выбора пути:
//  1. узел полон (все чанки сгенерированы) — точная сводка из кэша;
//  2. exact=true — форсируем генерацию недостающих чанков ячейки;
//  3. в ячейке нет сгенерированных чанков — статистическая оценка
//     генератора за константное время, без записи в хранилище;
//  4. ячейка частична — точные сводки имеющихся чанков плюс оценка
//     остальных: сгенерированные данные никогда не подменяются оценкой.
func (idx *LODIndex) summarizeCell(store *LayerStore, cell vec.Vec2, level int, exact bool) (RegionSummary, error) {
	total := cellChunks(level)

	idx.mu.RLock()
	node, exists := idx.levels[level][cell]
	var cached Summary
	generated := 0
	if exists {
		cached = node.summary
		generated = node.generated
	}
	idx.mu.RUnlock()

	if generated == total {
		return newRegionSummary(cell, level, cached, false), nil
	}

	side := 1 << uint(level)
	base := vec.Vec2{X: cell.X << uint(level), Y: cell.Y << uint(level)}

	if exact {
		// Дорогой точный путь: материализуем все чанки ячейки.
		// Каждая генерация сама публикует сводку в пирамиду.
		for dx := 0; dx < side; dx++ {
			for dy := 0; dy < side; dy++ {
				if _, err := store.GetOrGenerateChunk(base.Add(vec.Vec2{X: dx, Y: dy})); err != nil {
					return RegionSummary{}, err
				}
			}
		}

		idx.mu.RLock()
		node, exists = idx.levels[level][cell]
		if exists && node.generated >= total {
			cached = node.summary
			idx.mu.RUnlock()
			return newRegionSummary(cell, level, cached, false), nil
		}
		idx.mu.RUnlock()

		// Узел ячейки ещё не догнал конкурентные публикации —
		// собираем точный агрегат напрямую из узлов уровня 0
		return idx.exactFromChunks(store, cell, level, base, side)
	}

	if generated == 0 {
		// Нетронутая область: оценка по параметрам генератора
		region := vec.Rect{
			Min: base,
			Max: base.Add(vec.Vec2{X: side - 1, Y: side - 1}),
		}
		est, err := idx.gen.EstimateRegionSummary(idx.layer, region)
		if err != nil {
			return RegionSummary{}, err
		}
		return newRegionSummary(cell, level, est, true), nil
	}

	// Частичная ячейка: собираем точные сводки под одним RLock,
	// недостающие чанки оцениваем вне блокировки
	missing := make([]vec.Vec2, 0, total-generated)
	var agg Summary

	idx.mu.RLock()
	for dx := 0; dx < side; dx++ {
		for dy := 0; dy < side; dy++ {
			coords := base.Add(vec.Vec2{X: dx, Y: dy})
			if chunkNode, ok := idx.levels[0][coords]; ok {
				agg.Merge(chunkNode.summary)
			} else {
				missing = append(missing, coords)
			}
		}
	}
	idx.mu.RUnlock()

	for _, coords := range missing {
		est, err := idx.gen.EstimateChunkSummary(idx.layer, coords)
		if err != nil {
			return RegionSummary{}, err
		}
		agg.Merge(est)
	}
	return newRegionSummary(cell, level, agg, true), nil
}

// exactFromChunks собирает точный агрегат ячейки из узлов уровня 0,
// не полагаясь на предвычисленный узел уровня level. Все чанки ячейки
// уже материализованы вызывающим; узел уровня 0 чанка может отставать
// от конкурентной публикации, тогда агрегат берётся из самого чанка.
func (idx *LODIndex) exactFromChunks(store *LayerStore, cell vec.Vec2, level int, base vec.Vec2, side int) (RegionSummary, error) {
	missing := make([]vec.Vec2, 0)
	var agg Summary

	idx.mu.RLock()
	for dx := 0; dx < side; dx++ {
		for dy := 0; dy < side; dy++ {
			coords := base.Add(vec.Vec2{X: dx, Y: dy})
			if chunkNode, ok := idx.levels[0][coords]; ok {
				agg.Merge(chunkNode.summary)
			} else {
				missing = append(missing, coords)
			}
		}
	}
	idx.mu.RUnlock()

	for _, coords := range missing {
		chunk, err := store.GetOrGenerateChunk(coords)
		if err != nil {
			return RegionSummary{}, err
		}
		agg.Merge(chunk.Summarize())
	}
	return newRegionSummary(cell, level, agg, false), nil
}
