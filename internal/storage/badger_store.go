package storage

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger/v3"

	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world"
)

// BadgerChunkStore — хранилище снапшотов чанков на BadgerDB.
// Реализует world.ChunkPersistence; промах чтения — штатный случай,
// чанк тогда восстанавливается регенерацией.
type BadgerChunkStore struct {
	db      *badger.DB
	dbPath  string
	codec   *chunkCodec
	mutex   sync.RWMutex
	isReady bool
}

// NewBadgerChunkStore открывает хранилище в dataPath
func NewBadgerChunkStore(dataPath string) (*BadgerChunkStore, error) {
	dbPath := filepath.Join(dataPath, "chunks")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	codec, err := newChunkCodec()
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BadgerChunkStore{
		db:      db,
		dbPath:  dbPath,
		codec:   codec,
		isReady: true,
	}, nil
}

// Close закрывает хранилище
func (bs *BadgerChunkStore) Close() error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	if !bs.isReady {
		return nil
	}
	bs.isReady = false
	return bs.db.Close()
}

// chunkKey строит ключ снапшота: слой и чанковые координаты
func chunkKey(layer int, coords vec.Vec2) []byte {
	return []byte(fmt.Sprintf("chunk:%d:%d:%d", layer, coords.X, coords.Y))
}

// SaveChunk сохраняет полный снапшот чанка
func (bs *BadgerChunkStore) SaveChunk(chunk *world.Chunk) error {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	data, err := bs.codec.Encode(chunk)
	if err != nil {
		return err
	}

	key := chunkKey(chunk.Layer, chunk.Coords)
	err = bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}
	return nil
}

// LoadChunk загружает снапшот чанка; false без ошибки — снапшота нет
func (bs *BadgerChunkStore) LoadChunk(layer int, coords vec.Vec2) (*world.Chunk, bool, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return nil, false, fmt.Errorf("хранилище не готово")
	}

	var data []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chunkKey(layer, coords))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	chunk, err := bs.codec.Decode(data)
	if err != nil {
		return nil, false, err
	}
	return chunk, true, nil
}
