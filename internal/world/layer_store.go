package world

import (
	"fmt"
	"sync"

	"github.com/annel0/mine-colony/internal/logging"
	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world/tile"
)

// ChunkPersistence — необязательное хранилище снапшотов чанков.
// Поскольку генерация детерминирована, хранилище нужно только для
// чанков, мутированных после генерации (добыча), и как кэш между
// сессиями; промах всегда восстановим регенерацией.
type ChunkPersistence interface {
	// LoadChunk возвращает снапшот чанка, если он сохранялся
	LoadChunk(layer int, coords vec.Vec2) (*Chunk, bool, error)

	// SaveChunk сохраняет снапшот чанка
	SaveChunk(chunk *Chunk) error
}

// LayerStore хранит чанки ровно одного слоя шахты.
// Семантика read-through кэша: промах синхронно генерирует чанк,
// результат сохраняется, последующие чтения — попадания.
type LayerStore struct {
	layer       int
	gen         *TileGenerator
	persistence ChunkPersistence // может быть nil

	mu       sync.RWMutex
	chunks   map[vec.Vec2]*Chunk
	inflight map[vec.Vec2]chan struct{} // Маркеры идущей генерации

	lod *LODIndex
}

// NewLayerStore создаёт пустое хранилище слоя.
// Индекс слоя должен быть уже проверен фасадом World.
func NewLayerStore(layer int, gen *TileGenerator, persistence ChunkPersistence) *LayerStore {
	return &LayerStore{
		layer:       layer,
		gen:         gen,
		persistence: persistence,
		chunks:      make(map[vec.Vec2]*Chunk),
		inflight:    make(map[vec.Vec2]chan struct{}),
		lod:         NewLODIndex(layer, gen),
	}
}

// Layer возвращает индекс слоя
func (ls *LayerStore) Layer() int {
	return ls.layer
}

// ChunkCount возвращает число материализованных чанков
func (ls *LayerStore) ChunkCount() int {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return len(ls.chunks)
}

// GetChunk возвращает чанк без генерации (для проверок и тестов)
func (ls *LayerStore) GetChunk(coords vec.Vec2) (*Chunk, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	chunk, exists := ls.chunks[coords]
	return chunk, exists
}

// GetOrGenerateChunk возвращает чанк по чанковым координатам, генерируя
// его при первом обращении. Конкурентные запросы одной и той же
// несгенерированной координаты сливаются в одну задачу генерации:
// остальные ждут закрытия in-flight маркера, работа не дублируется.
func (ls *LayerStore) GetOrGenerateChunk(coords vec.Vec2) (*Chunk, error) {
	for {
		ls.mu.RLock()
		chunk, exists := ls.chunks[coords]
		ls.mu.RUnlock()
		if exists {
			chunkCacheHits.Inc()
			return chunk, nil
		}

		ls.mu.Lock()
		// Проверяем ещё раз под блокировкой записи
		if chunk, exists = ls.chunks[coords]; exists {
			ls.mu.Unlock()
			chunkCacheHits.Inc()
			return chunk, nil
		}
		if marker, busy := ls.inflight[coords]; busy {
			ls.mu.Unlock()
			<-marker // Генерацию выполняет другая горутина
			continue
		}
		marker := make(chan struct{})
		ls.inflight[coords] = marker
		ls.mu.Unlock()

		chunk, err := ls.produceChunk(coords)

		// Агрегат публикуется в пирамиду ДО того, как чанк станет виден
		// как попадание кэша: точный LOD-запрос, увидевший чанк, обязан
		// найти и его узел уровня 0
		if err == nil {
			ls.lod.setChunkSummary(coords, chunk.Summarize())
		}

		ls.mu.Lock()
		delete(ls.inflight, coords)
		if err == nil {
			ls.chunks[coords] = chunk
		}
		ls.mu.Unlock()
		close(marker)

		if err != nil {
			return nil, err
		}
		return chunk, nil
	}
}

// produceChunk создаёт чанк: сначала снапшот из хранилища (там могут
// быть мутации прошлых сессий), иначе детерминированная генерация.
func (ls *LayerStore) produceChunk(coords vec.Vec2) (*Chunk, error) {
	if ls.persistence != nil {
		chunk, found, err := ls.persistence.LoadChunk(ls.layer, coords)
		if err != nil {
			// Хранилище — кэш: его отказ не должен ломать чтение карты
			logging.Warn("Снапшот чанка %v слоя %d недоступен: %v", coords, ls.layer, err)
		} else if found {
			chunksLoaded.Inc()
			return chunk, nil
		}
	}

	chunk, err := ls.gen.GenerateChunk(ls.layer, coords)
	if err != nil {
		return nil, fmt.Errorf("%w: чанк %v слоя %d: %v", ErrGeneration, coords, ls.layer, err)
	}
	chunksGenerated.WithLabelValues(layerLabel(ls.layer)).Inc()
	return chunk, nil
}

// GetTile возвращает тайл по мировым координатам.
// Единственный путь чтения тайлов: floor-деление до чанковой координаты,
// маска до локального смещения, далее Chunk.Get.
func (ls *LayerStore) GetTile(pos vec.Vec2) (tile.TileID, error) {
	chunk, err := ls.GetOrGenerateChunk(pos.ToChunkCoords())
	if err != nil {
		return tile.AirTileID, err
	}
	return chunk.Get(pos.LocalInChunk())
}

// SetTile мутирует тайл на месте (добыча, строительство) и
// инвалидирует LOD-агрегат чанка. Запись проходит только через
// LayerStore: прямой мутации массива тайлов извне нет.
func (ls *LayerStore) SetTile(pos vec.Vec2, id tile.TileID) error {
	if !tile.IsValidTileID(id) {
		return fmt.Errorf("%w: %d", ErrUnknownTile, id)
	}

	chunk, err := ls.GetOrGenerateChunk(pos.ToChunkCoords())
	if err != nil {
		return err
	}
	if err := chunk.Set(pos.LocalInChunk(), id); err != nil {
		return err
	}

	// Агрегат чанка и его предки обязаны отражать фактические тайлы
	ls.lod.setChunkSummary(chunk.Coords, chunk.Summarize())

	if ls.persistence != nil {
		if err := ls.persistence.SaveChunk(chunk); err != nil {
			return fmt.Errorf("сохранение снапшота чанка %v: %w", chunk.Coords, err)
		}
		chunk.ClearChanges()
	}
	return nil
}

// QueryRegionSummary отвечает на региональный LOD-запрос.
// region задаётся в тайловых координатах, level — уровень пирамиды
// (одна сводка на 2^level × 2^level чанков). exact=true форсирует
// генерацию недостающих чанков; exact=false отвечает оценкой без
// каких-либо побочных эффектов для хранилища.
func (ls *LayerStore) QueryRegionSummary(region vec.Rect, level int, exact bool) ([]RegionSummary, error) {
	if level < 0 {
		level = 0
	}
	if level > MaxLODLevel {
		level = MaxLODLevel
	}
	if exact {
		lodQueries.WithLabelValues("exact").Inc()
	} else {
		lodQueries.WithLabelValues("approx").Inc()
	}
	return ls.lod.queryRegion(ls, region.ToChunkRect(), level, exact)
}
