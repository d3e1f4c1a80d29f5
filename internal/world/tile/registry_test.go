package tile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/mine-colony/internal/world/tile"
	_ "github.com/annel0/mine-colony/internal/world/tile/implementations"
)

func TestRegistry_AllTilesRegistered(t *testing.T) {
	expected := []tile.TileID{
		tile.AirTileID, tile.FloorTileID, tile.WallTileID, tile.RockTileID,
		tile.OreLeanTileID, tile.OreRichTileID, tile.OrePureTileID,
	}
	for _, id := range expected {
		assert.True(t, tile.IsValidTileID(id), "Тайл %d должен быть зарегистрирован", id)
		behavior, exists := tile.Get(id)
		assert.True(t, exists)
		assert.Equal(t, id, behavior.ID())
	}
	assert.Len(t, tile.All(), len(expected), "Набор тайлов закрытый")
}

func TestRegistry_Passability(t *testing.T) {
	assert.True(t, tile.IsPassable(tile.AirTileID))
	assert.True(t, tile.IsPassable(tile.FloorTileID))
	assert.False(t, tile.IsPassable(tile.WallTileID))
	assert.False(t, tile.IsPassable(tile.RockTileID))
	assert.False(t, tile.IsPassable(tile.OreRichTileID))

	// Незарегистрированный ID консервативно непроходим и твёрд
	assert.False(t, tile.IsPassable(tile.TileID(9999)))
	assert.True(t, tile.IsSolid(tile.TileID(9999)))
}

func TestRegistry_OreGrades(t *testing.T) {
	assert.Equal(t, uint8(0), tile.OreGrade(tile.RockTileID), "Порода — не руда")
	assert.Equal(t, uint8(1), tile.OreGrade(tile.OreLeanTileID))
	assert.Equal(t, uint8(2), tile.OreGrade(tile.OreRichTileID))
	assert.Equal(t, uint8(3), tile.OreGrade(tile.OrePureTileID))
}

func TestRegistry_Mineability(t *testing.T) {
	// Порода и руда вырабатываются в пол
	for _, id := range []tile.TileID{tile.RockTileID, tile.OreLeanTileID, tile.OreRichTileID, tile.OrePureTileID} {
		to, ok := tile.MineableTo(id)
		assert.True(t, ok, "Тайл %d должен добываться", id)
		assert.Equal(t, tile.FloorTileID, to)
	}

	// Монолит и открытое пространство — нет
	for _, id := range []tile.TileID{tile.AirTileID, tile.FloorTileID, tile.WallTileID} {
		_, ok := tile.MineableTo(id)
		assert.False(t, ok, "Тайл %d не должен добываться", id)
	}
}
