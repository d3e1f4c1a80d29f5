package storage

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world"
	"github.com/annel0/mine-colony/internal/world/tile"
)

// chunkSnapshot — сериализуемый снимок чанка целиком.
// Генерация детерминирована, поэтому хранить есть смысл только чанки,
// мутированные после генерации; снимок при этом полный — загрузка
// не требует повторной генерации и наложения дельт.
type chunkSnapshot struct {
	Layer  int                                     `json:"layer"`
	Coords vec.Vec2                                `json:"coords"`
	Tiles  [world.ChunkSize][world.ChunkSize]tile.TileID `json:"tiles"`
}

// chunkCodec упаковывает снапшоты: JSON + zstd.
// Тайловые массивы однородны и жмутся на порядок.
type chunkCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newChunkCodec() (*chunkCodec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("инициализация zstd-компрессора: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("инициализация zstd-декомпрессора: %w", err)
	}
	return &chunkCodec{encoder: encoder, decoder: decoder}, nil
}

// Encode сериализует чанк в сжатый снапшот
func (c *chunkCodec) Encode(chunk *world.Chunk) ([]byte, error) {
	chunk.Mu.RLock()
	snapshot := chunkSnapshot{
		Layer:  chunk.Layer,
		Coords: chunk.Coords,
		Tiles:  chunk.Tiles,
	}
	chunk.Mu.RUnlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации снапшота: %w", err)
	}
	return c.encoder.EncodeAll(data, nil), nil
}

// Decode восстанавливает чанк из сжатого снапшота
func (c *chunkCodec) Decode(data []byte) (*world.Chunk, error) {
	raw, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки снапшота: %w", err)
	}

	var snapshot chunkSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("ошибка десериализации снапшота: %w", err)
	}

	chunk := world.NewChunk(snapshot.Layer, snapshot.Coords)
	chunk.Tiles = snapshot.Tiles
	return chunk, nil
}
