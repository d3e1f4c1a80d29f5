package world

import (
	"fmt"
	"math"
	"sync"

	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world/tile"
)

// TileDetailZoom — порог зума, начиная с которого Query отдаёт
// отдельные тайлы; ниже порога виртуальная камера слишком далеко
// и ответом служат LOD-сводки.
const TileDetailZoom = 0.5

// Options — параметры создания мира
type Options struct {
	// MinLayer и MaxLayer задают диапазон слоёв шахты включительно.
	// MinLayer — поверхность, рост индекса — движение вглубь.
	MinLayer int
	MaxLayer int

	// ChunkSize — сторона чанка в тайлах. Ноль означает значение по
	// умолчанию (16); другие значения не поддерживаются.
	ChunkSize int

	// Persistence — хранилище снапшотов чанков; nil отключает сохранение
	Persistence ChunkPersistence
}

// World — фасад многослойной карты шахтёрской колонии.
// Скрывает хранилища слоёв, генератор и LOD-пирамиды; наружу выходят
// только операции над тайлами, регионами и представлениями.
type World struct {
	seed        int64
	minLayer    int
	maxLayer    int
	persistence ChunkPersistence

	gen *TileGenerator

	mu     sync.RWMutex
	layers map[int]*LayerStore
}

// NewWorld создаёт мир с детерминированной генерацией от сида.
// Слои материализуются лениво: создание мира не генерирует ни одного чанка.
func NewWorld(seed int64, opts Options) (*World, error) {
	if opts.MinLayer > opts.MaxLayer {
		return nil, fmt.Errorf("%w: min %d > max %d", ErrInvalidLayer, opts.MinLayer, opts.MaxLayer)
	}
	if opts.ChunkSize != 0 && opts.ChunkSize != ChunkSize {
		return nil, fmt.Errorf("%w: %d (поддерживается только %d)", ErrUnsupportedChunkSize, opts.ChunkSize, ChunkSize)
	}

	return &World{
		seed:        seed,
		minLayer:    opts.MinLayer,
		maxLayer:    opts.MaxLayer,
		persistence: opts.Persistence,
		gen:         NewTileGenerator(seed, opts.MinLayer, opts.MaxLayer),
		layers:      make(map[int]*LayerStore),
	}, nil
}

// Seed возвращает сид мира
func (w *World) Seed() int64 {
	return w.seed
}

// MinLayer возвращает индекс поверхностного слоя
func (w *World) MinLayer() int {
	return w.minLayer
}

// MaxLayer возвращает индекс самого глубокого слоя
func (w *World) MaxLayer() int {
	return w.maxLayer
}

// layerStore возвращает хранилище слоя, создавая его при первом обращении.
// Проверка диапазона слоёв происходит здесь — дальше по стеку индекс
// слоя считается валидным.
func (w *World) layerStore(layer int) (*LayerStore, error) {
	if layer < w.minLayer || layer > w.maxLayer {
		return nil, fmt.Errorf("%w: %d не в [%d, %d]", ErrInvalidLayer, layer, w.minLayer, w.maxLayer)
	}

	w.mu.RLock()
	ls, exists := w.layers[layer]
	w.mu.RUnlock()
	if exists {
		return ls, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Проверяем ещё раз под блокировкой записи
	if ls, exists = w.layers[layer]; exists {
		return ls, nil
	}
	ls = NewLayerStore(layer, w.gen, w.persistence)
	w.layers[layer] = ls
	return ls, nil
}

// TileAt возвращает тайл по (слой, мировая координата), генерируя
// содержащий чанк при необходимости. Целиком точный путь.
func (w *World) TileAt(layer int, pos vec.Vec2) (tile.TileID, error) {
	ls, err := w.layerStore(layer)
	if err != nil {
		return tile.AirTileID, err
	}
	tileQueries.Inc()
	return ls.GetTile(pos)
}

// SetTile мутирует тайл по (слой, мировая координата)
func (w *World) SetTile(layer int, pos vec.Vec2, id tile.TileID) error {
	ls, err := w.layerStore(layer)
	if err != nil {
		return err
	}
	return ls.SetTile(pos, id)
}

// MineTile добывает тайл: твёрдая порода и руда становятся полом,
// добытый тип возвращается вызывающему. Непроходимый для добычи тайл
// (пустота, пол, монолит) оставляется как есть.
func (w *World) MineTile(layer int, pos vec.Vec2) (tile.TileID, bool, error) {
	current, err := w.TileAt(layer, pos)
	if err != nil {
		return tile.AirTileID, false, err
	}

	replacement, ok := tile.MineableTo(current)
	if !ok {
		return current, false, nil
	}
	if err := w.SetTile(layer, pos, replacement); err != nil {
		return current, false, err
	}
	return current, true, nil
}

// RegionSummary отвечает на региональный LOD-запрос по тайловому
// прямоугольнику. exact=false разрешает статистическую оценку для
// несгенерированных областей без побочных эффектов.
func (w *World) RegionSummary(layer int, region vec.Rect, level int, exact bool) ([]RegionSummary, error) {
	ls, err := w.layerStore(layer)
	if err != nil {
		return nil, err
	}
	return ls.QueryRegionSummary(region, level, exact)
}

// ChunkCount возвращает число материализованных чанков слоя
func (w *World) ChunkCount(layer int) (int, error) {
	ls, err := w.layerStore(layer)
	if err != nil {
		return 0, err
	}
	return ls.ChunkCount(), nil
}

// lodLevelForZoom переводит зум камеры в уровень LOD-пирамиды:
// каждое двукратное отдаление поднимает запрос на уровень выше
func lodLevelForZoom(zoom float64) int {
	if zoom >= TileDetailZoom {
		return 0
	}
	level := int(math.Ceil(math.Log2(TileDetailZoom / zoom)))
	if level > MaxLODLevel {
		level = MaxLODLevel
	}
	return level
}

// Query строит представление прямоугольника карты для рендера.
// При zoom >= TileDetailZoom ответ детальный (каждый тайл), ниже —
// сводки LOD-уровня, подобранного под зум: чем дальше камера, тем
// крупнее ячейка и дешевле ответ.
func (w *World) Query(layer int, viewport vec.Rect, zoom float64) (*MapView, error) {
	ls, err := w.layerStore(layer)
	if err != nil {
		return nil, err
	}

	if zoom >= TileDetailZoom {
		return w.queryTiles(ls, viewport)
	}

	level := lodLevelForZoom(zoom)
	summaries, err := ls.QueryRegionSummary(viewport, level, false)
	if err != nil {
		return nil, err
	}
	return &MapView{
		Layer:     layer,
		Mode:      ViewSummaries,
		Level:     level,
		CellTiles: ChunkSize << uint(level),
		Summaries: summaries,
	}, nil
}

// queryTiles заполняет детальное представление почанково: каждый
// затронутый чанк читается один раз, его тайлы раскладываются в буфер
func (w *World) queryTiles(ls *LayerStore, viewport vec.Rect) (*MapView, error) {
	width := viewport.Width()
	height := viewport.Height()

	view := &MapView{
		Layer:  ls.Layer(),
		Mode:   ViewTiles,
		Origin: viewport.Min,
		Width:  width,
		Height: height,
		Tiles:  make([]tile.TileID, width*height),
	}

	chunkRect := viewport.ToChunkRect()
	for cx := chunkRect.Min.X; cx <= chunkRect.Max.X; cx++ {
		for cy := chunkRect.Min.Y; cy <= chunkRect.Max.Y; cy++ {
			chunk, err := ls.GetOrGenerateChunk(vec.Vec2{X: cx, Y: cy})
			if err != nil {
				return nil, err
			}

			baseX := cx << ChunkShift
			baseY := cy << ChunkShift
			chunk.Mu.RLock()
			for lx := 0; lx < ChunkSize; lx++ {
				gx := baseX + lx
				if gx < viewport.Min.X || gx > viewport.Max.X {
					continue
				}
				for ly := 0; ly < ChunkSize; ly++ {
					gy := baseY + ly
					if gy < viewport.Min.Y || gy > viewport.Max.Y {
						continue
					}
					view.Tiles[(gy-viewport.Min.Y)*width+(gx-viewport.Min.X)] = chunk.Tiles[lx][ly]
				}
			}
			chunk.Mu.RUnlock()
		}
	}
	return view, nil
}
