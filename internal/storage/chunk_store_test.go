package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world"
	"github.com/annel0/mine-colony/internal/world/tile"
)

func makeTestChunk(layer int, coords vec.Vec2) *world.Chunk {
	chunk := world.NewChunk(layer, coords)
	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkSize; y++ {
			chunk.Tiles[x][y] = tile.RockTileID
		}
	}
	chunk.Tiles[3][7] = tile.OreRichTileID
	chunk.Tiles[0][0] = tile.FloorTileID
	return chunk
}

func TestMemoryChunkStore_RoundTrip(t *testing.T) {
	store, err := NewMemoryChunkStore()
	assert.NoError(t, err)

	coords := vec.Vec2{X: 2, Y: -3}
	original := makeTestChunk(4, coords)

	err = store.SaveChunk(original)
	assert.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	loaded, found, err := store.LoadChunk(4, coords)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, original.Layer, loaded.Layer)
	assert.Equal(t, original.Coords, loaded.Coords)
	assert.Equal(t, original.Tiles, loaded.Tiles, "Тайлы должны пережить сериализацию без потерь")
}

func TestMemoryChunkStore_Miss(t *testing.T) {
	store, err := NewMemoryChunkStore()
	assert.NoError(t, err)

	chunk, found, err := store.LoadChunk(0, vec.Vec2{X: 9, Y: 9})
	assert.NoError(t, err, "Промах хранилища — не ошибка")
	assert.False(t, found)
	assert.Nil(t, chunk)
}

func TestMemoryChunkStore_LayerIsolation(t *testing.T) {
	store, err := NewMemoryChunkStore()
	assert.NoError(t, err)

	coords := vec.Vec2{X: 1, Y: 1}
	err = store.SaveChunk(makeTestChunk(0, coords))
	assert.NoError(t, err)

	// Та же чанковая координата другого слоя — отдельная запись
	_, found, err := store.LoadChunk(1, coords)
	assert.NoError(t, err)
	assert.False(t, found, "Снапшоты слоёв не должны пересекаться")
}

func TestBadgerChunkStore_RoundTrip(t *testing.T) {
	store, err := NewBadgerChunkStore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	coords := vec.Vec2{X: -1, Y: 5}
	original := makeTestChunk(7, coords)

	err = store.SaveChunk(original)
	assert.NoError(t, err)

	loaded, found, err := store.LoadChunk(7, coords)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, original.Tiles, loaded.Tiles)

	_, found, err = store.LoadChunk(7, vec.Vec2{X: 100, Y: 100})
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestBadgerChunkStore_AsWorldPersistence(t *testing.T) {
	// Полный сценарий: мутация, перезапуск мира, мутация на месте
	dir := t.TempDir()

	store, err := NewBadgerChunkStore(dir)
	assert.NoError(t, err)

	w, err := world.NewWorld(42, world.Options{
		MinLayer:    0,
		MaxLayer:    15,
		Persistence: store,
	})
	assert.NoError(t, err)

	pos := vec.Vec2{X: 33, Y: 17}
	err = w.SetTile(2, pos, tile.OrePureTileID)
	assert.NoError(t, err)
	assert.NoError(t, store.Close())

	// Перезапуск: новый мир с тем же сидом и хранилищем
	store2, err := NewBadgerChunkStore(dir)
	assert.NoError(t, err)
	defer store2.Close()

	w2, err := world.NewWorld(42, world.Options{
		MinLayer:    0,
		MaxLayer:    15,
		Persistence: store2,
	})
	assert.NoError(t, err)

	id, err := w2.TileAt(2, pos)
	assert.NoError(t, err)
	assert.Equal(t, tile.OrePureTileID, id, "Мутация должна пережить перезапуск")
}
