package storage

import (
	"sync"

	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world"
)

type layerCoords struct {
	layer  int
	coords vec.Vec2
}

// MemoryChunkStore — хранилище снапшотов в памяти.
// Используется в тестах и при отключённой персистентности на диске;
// снапшоты кодируются тем же кодеком, что и в BadgerChunkStore,
// поэтому формат проверяется даже без БД.
type MemoryChunkStore struct {
	mutex sync.RWMutex
	data  map[layerCoords][]byte
	codec *chunkCodec
}

// NewMemoryChunkStore создаёт пустое хранилище в памяти
func NewMemoryChunkStore() (*MemoryChunkStore, error) {
	codec, err := newChunkCodec()
	if err != nil {
		return nil, err
	}
	return &MemoryChunkStore{
		data:  make(map[layerCoords][]byte),
		codec: codec,
	}, nil
}

// SaveChunk сохраняет снапшот чанка
func (ms *MemoryChunkStore) SaveChunk(chunk *world.Chunk) error {
	data, err := ms.codec.Encode(chunk)
	if err != nil {
		return err
	}

	ms.mutex.Lock()
	ms.data[layerCoords{chunk.Layer, chunk.Coords}] = data
	ms.mutex.Unlock()
	return nil
}

// LoadChunk загружает снапшот чанка; false без ошибки — снапшота нет
func (ms *MemoryChunkStore) LoadChunk(layer int, coords vec.Vec2) (*world.Chunk, bool, error) {
	ms.mutex.RLock()
	data, exists := ms.data[layerCoords{layer, coords}]
	ms.mutex.RUnlock()

	if !exists {
		return nil, false, nil
	}
	chunk, err := ms.codec.Decode(data)
	if err != nil {
		return nil, false, err
	}
	return chunk, true, nil
}

// Len возвращает число сохранённых снапшотов
func (ms *MemoryChunkStore) Len() int {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	return len(ms.data)
}
