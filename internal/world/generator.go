package world

import (
	"fmt"
	"sync"

	"github.com/aquilax/go-perlin"

	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world/tile"

	// Заполняет регистр тайлов при импорте пакета
	_ "github.com/annel0/mine-colony/internal/world/tile/implementations"
)

// Масштабы шумовых полей
const (
	TerrainScale = 0.06 // Основное поле плотности породы
	VeinScale    = 0.13 // Поле рудных жил (другой масштаб и сид)
)

// Пороги классификации тайла по значению шума (0..1).
// Глубина сдвигает пороги: ниже — плотнее порода и реже руда.
const (
	OpenBase      = 0.46 // Ниже — открытое пространство (на поверхности)
	OpenDepthStep = 0.02 // Сужение открытого диапазона на слой глубины
	OpenMin       = 0.10 // Даже на дне остаются естественные полости
	CavernShare   = 0.35 // Доля открытого диапазона, приходящаяся на пустоты

	WallBase      = 0.90  // Выше — монолитная стена
	WallDepthStep = 0.008 // С глубиной монолита больше
	WallMin       = 0.72

	VeinBase      = 0.80  // Выше — рудная жила
	VeinDepthStep = 0.004 // С глубиной жилы реже...
	VeinMax       = 0.93

	RichDepth = 6  // ...но начиная с этой глубины богаче
	PureDepth = 12 // Глубина самородных жил
)

// Параметры фрактального шума (как у go-perlin: сглаживание/частота/октавы)
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3

	// Разнос сидов между слоями и полями. Простые числа уменьшают
	// корреляцию перестановок перлин-генераторов соседних слоёв.
	layerSeedStride = 1_000_003
	veinSeedOffset  = 42
)

// layerFields — шумовые поля одного слоя. Создаются один раз,
// после чего Noise2D только читает таблицы перестановок.
type layerFields struct {
	terrain *perlin.Perlin
	vein    *perlin.Perlin
}

// TileGenerator детерминированно порождает тайлы из (сид, слой, x, y).
// Функция generate чистая: результат не зависит ни от порядка вызовов,
// ни от ранее сгенерированных чанков, что позволяет параллельную
// генерацию и регенерацию как восстановление после промаха кэша.
type TileGenerator struct {
	seed     int64
	minLayer int
	maxLayer int

	mu     sync.RWMutex
	fields map[int]*layerFields
}

// NewTileGenerator создаёт генератор для диапазона слоёв [minLayer, maxLayer]
func NewTileGenerator(seed int64, minLayer, maxLayer int) *TileGenerator {
	return &TileGenerator{
		seed:     seed,
		minLayer: minLayer,
		maxLayer: maxLayer,
		fields:   make(map[int]*layerFields),
	}
}

// Seed возвращает сид мира
func (g *TileGenerator) Seed() int64 {
	return g.seed
}

// ValidateLayer проверяет, что слой входит в сконфигурированный диапазон
func (g *TileGenerator) ValidateLayer(layer int) error {
	if layer < g.minLayer || layer > g.maxLayer {
		return fmt.Errorf("%w: %d не в [%d, %d]", ErrInvalidLayer, layer, g.minLayer, g.maxLayer)
	}
	return nil
}

// fieldsFor возвращает шумовые поля слоя, создавая их при первом обращении.
// Сиды полей выводятся только из сида мира и индекса слоя, поэтому
// пересоздание генератора даёт бит-идентичные поля.
func (g *TileGenerator) fieldsFor(layer int) *layerFields {
	g.mu.RLock()
	f, exists := g.fields[layer]
	g.mu.RUnlock()
	if exists {
		return f
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// Проверяем ещё раз под блокировкой записи
	if f, exists = g.fields[layer]; exists {
		return f
	}

	layerSeed := g.seed + int64(layer)*layerSeedStride
	f = &layerFields{
		terrain: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, layerSeed),
		vein:    perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, layerSeed+veinSeedOffset),
	}
	g.fields[layer] = f
	return f
}

// depth возвращает глубину слоя относительно поверхности (minLayer)
func (g *TileGenerator) depth(layer int) int {
	return layer - g.minLayer
}

// GenerateTile возвращает тип тайла в мировой координате (x, y) слоя.
// Чистая функция от (сид, слой, x, y); на горячем пути нет аллокаций.
func (g *TileGenerator) GenerateTile(layer, x, y int) (tile.TileID, error) {
	if err := g.ValidateLayer(layer); err != nil {
		return tile.AirTileID, err
	}
	return g.classify(g.fieldsFor(layer), g.depth(layer), x, y), nil
}

// classify сводит значения шумовых полей к типу тайла
func (g *TileGenerator) classify(f *layerFields, depth, x, y int) tile.TileID {
	// Плотность породы в точке (0..1)
	height := (f.terrain.Noise2D(float64(x)*TerrainScale, float64(y)*TerrainScale) + 1.0) / 2.0

	openCut := OpenBase - OpenDepthStep*float64(depth)
	if openCut < OpenMin {
		openCut = OpenMin
	}

	if height < openCut {
		// Открытое пространство: нижняя часть диапазона — пустоты,
		// остальное — проходимый пол
		if height < openCut*CavernShare {
			return tile.AirTileID
		}
		return tile.FloorTileID
	}

	wallCut := WallBase - WallDepthStep*float64(depth)
	if wallCut < WallMin {
		wallCut = WallMin
	}
	if height >= wallCut {
		return tile.WallTileID
	}

	// Твёрдая порода: проверяем рудное поле
	veinValue := (f.vein.Noise2D(float64(x)*VeinScale, float64(y)*VeinScale) + 1.0) / 2.0
	veinCut := VeinBase + VeinDepthStep*float64(depth)
	if veinCut > VeinMax {
		veinCut = VeinMax
	}
	if veinValue < veinCut {
		return tile.RockTileID
	}

	// Ценность жилы растёт с запасом над порогом и с глубиной
	margin := veinValue - veinCut
	switch {
	case margin >= 0.10 || (depth >= PureDepth && margin >= 0.06):
		return tile.OrePureTileID
	case margin >= 0.05 || (depth >= RichDepth && margin >= 0.03):
		return tile.OreRichTileID
	default:
		return tile.OreLeanTileID
	}
}

// GenerateChunk генерирует чанк целиком: по одному вызову классификации
// на каждый тайл. Генерация атомарна — частично заполненный чанк
// никогда не публикуется.
func (g *TileGenerator) GenerateChunk(layer int, coords vec.Vec2) (*Chunk, error) {
	if err := g.ValidateLayer(layer); err != nil {
		return nil, err
	}

	f := g.fieldsFor(layer)
	depth := g.depth(layer)
	chunk := NewChunk(layer, coords)

	globalStartX := coords.X << ChunkShift
	globalStartY := coords.Y << ChunkShift

	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			chunk.Tiles[x][y] = g.classify(f, depth, globalStartX+x, globalStartY+y)
		}
	}

	return chunk, nil
}

// Шаг решётки разреженной выборки для статистической оценки чанка
const estimateStride = 4

// EstimateChunkSummary строит приближённый агрегат чанка без его
// материализации: 4x4 точки решётки вместо 256 тайлов, счётчики
// экстраполируются на площадь. Детерминирован и не имеет побочных
// эффектов — хранилище чанков не затрагивается.
func (g *TileGenerator) EstimateChunkSummary(layer int, coords vec.Vec2) (Summary, error) {
	if err := g.ValidateLayer(layer); err != nil {
		return Summary{}, err
	}

	f := g.fieldsFor(layer)
	depth := g.depth(layer)

	globalStartX := coords.X << ChunkShift
	globalStartY := coords.Y << ChunkShift

	var s Summary
	const weight = estimateStride * estimateStride
	for x := estimateStride / 2; x < ChunkSize; x += estimateStride {
		for y := estimateStride / 2; y < ChunkSize; y += estimateStride {
			id := g.classify(f, depth, globalStartX+x, globalStartY+y)
			s.Counts.Add(id, weight)
		}
	}
	return s, nil
}

// EstimateRegionSummary оценивает агрегат прямоугольника чанков с
// ограниченной константой работой: выбирается не более 4x4 опорных
// чанков, их оценки экстраполируются на всю область. Используется
// LOD-индексом для ячеек, в которых нет ни одного сгенерированного чанка.
func (g *TileGenerator) EstimateRegionSummary(layer int, region vec.Rect) (Summary, error) {
	if err := g.ValidateLayer(layer); err != nil {
		return Summary{}, err
	}

	const maxProbes = 4 // опорных чанков на сторону

	width := region.Width()
	height := region.Height()

	probesX := width
	if probesX > maxProbes {
		probesX = maxProbes
	}
	probesY := height
	if probesY > maxProbes {
		probesY = maxProbes
	}

	var sampled Summary
	for i := 0; i < probesX; i++ {
		for j := 0; j < probesY; j++ {
			probe := vec.Vec2{
				X: region.Min.X + i*width/probesX + width/(2*probesX),
				Y: region.Min.Y + j*height/probesY + height/(2*probesY),
			}
			est, err := g.EstimateChunkSummary(layer, probe)
			if err != nil {
				return Summary{}, err
			}
			sampled.Merge(est)
		}
	}

	// Масштабируем счётчики выборки на полное число чанков области
	totalChunks := width * height
	probed := probesX * probesY
	if probed != totalChunks {
		scale := totalChunks
		sampled.Counts.Air = sampled.Counts.Air * scale / probed
		sampled.Counts.Floor = sampled.Counts.Floor * scale / probed
		sampled.Counts.Wall = sampled.Counts.Wall * scale / probed
		sampled.Counts.Rock = sampled.Counts.Rock * scale / probed
		sampled.Counts.OreLean = sampled.Counts.OreLean * scale / probed
		sampled.Counts.OreRich = sampled.Counts.OreRich * scale / probed
		sampled.Counts.OrePure = sampled.Counts.OrePure * scale / probed
	}
	return sampled, nil
}
