package world

import (
	"fmt"
	"sync"

	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world/tile"
)

// Размеры чанка фиксированы: степень двойки позволяет заменить деление
// и модуль на сдвиг и маску (см. vec.Vec2.ToChunkCoords/LocalInChunk).
const (
	ChunkSize  = 16
	ChunkShift = 4
	ChunkMask  = ChunkSize - 1
	ChunkArea  = ChunkSize * ChunkSize
)

// Chunk представляет участок одного слоя шахты размером 16x16 тайлов.
// Чанк — атомарная единица генерации и хранения: массив тайлов либо
// заполнен целиком, либо чанк не существует.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в чанковой сетке слоя
	Layer  int      // Индекс слоя, которому принадлежит чанк

	Tiles [ChunkSize][ChunkSize]tile.TileID

	ChangeCounter int          // Счётчик мутаций после генерации
	Mu            sync.RWMutex // Мьютекс для безопасного доступа
}

// NewChunk создаёт пустой чанк с указанными координатами.
// Заполнение тайлами выполняет генератор (TileGenerator.GenerateChunk).
func NewChunk(layer int, coords vec.Vec2) *Chunk {
	return &Chunk{
		Coords: coords,
		Layer:  layer,
	}
}

// Get возвращает тайл по локальным координатам с проверкой границ.
// Выход за границы — нарушение контракта вызывающего, не состояние данных.
func (c *Chunk) Get(local vec.Vec2) (tile.TileID, error) {
	if local.X < 0 || local.X >= ChunkSize || local.Y < 0 || local.Y >= ChunkSize {
		return tile.AirTileID, fmt.Errorf("%w: (%d,%d) в чанке %v слоя %d",
			ErrOutOfBounds, local.X, local.Y, c.Coords, c.Layer)
	}

	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.Tiles[local.X][local.Y], nil
}

// Set устанавливает тайл по локальным координатам
func (c *Chunk) Set(local vec.Vec2, id tile.TileID) error {
	if local.X < 0 || local.X >= ChunkSize || local.Y < 0 || local.Y >= ChunkSize {
		return fmt.Errorf("%w: (%d,%d) в чанке %v слоя %d",
			ErrOutOfBounds, local.X, local.Y, c.Coords, c.Layer)
	}

	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.Tiles[local.X][local.Y] = id
	c.ChangeCounter++
	return nil
}

// Summarize вычисляет агрегат чанка за один проход по тайлам.
// Используется для заполнения LOD-пирамиды при (пере)генерации.
func (c *Chunk) Summarize() Summary {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	var s Summary
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			s.Counts.Add(c.Tiles[x][y], 1)
		}
	}
	return s
}

// HasChanges возвращает true, если чанк мутировал после генерации
func (c *Chunk) HasChanges() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return c.ChangeCounter > 0
}

// ClearChanges сбрасывает счётчик мутаций (после сохранения снапшота)
func (c *Chunk) ClearChanges() {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.ChangeCounter = 0
}
