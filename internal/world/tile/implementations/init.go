package implementations

import "github.com/annel0/mine-colony/internal/world/tile"

// Регистрируем все типы тайлов при импорте пакета
func init() {
	// Проходимые тайлы
	tile.Register(tile.AirTileID, &AirBehavior{})
	tile.Register(tile.FloorTileID, &FloorBehavior{})

	// Твёрдая порода
	tile.Register(tile.WallTileID, &WallBehavior{})
	tile.Register(tile.RockTileID, &RockBehavior{})

	// Рудные жилы
	tile.Register(tile.OreLeanTileID, &OreBehavior{id: tile.OreLeanTileID, name: "OreLean", grade: 1})
	tile.Register(tile.OreRichTileID, &OreBehavior{id: tile.OreRichTileID, name: "OreRich", grade: 2})
	tile.Register(tile.OrePureTileID, &OreBehavior{id: tile.OrePureTileID, name: "OrePure", grade: 3})
}
