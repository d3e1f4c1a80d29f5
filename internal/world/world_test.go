package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world/tile"
)

func newTestWorld(t *testing.T, seed int64) *World {
	t.Helper()
	w, err := NewWorld(seed, Options{MinLayer: 0, MaxLayer: 15})
	assert.NoError(t, err)
	return w
}

func TestWorld_Creation(t *testing.T) {
	w, err := NewWorld(12345, Options{MinLayer: 0, MaxLayer: 15})
	assert.NoError(t, err)
	assert.NotNil(t, w)
	assert.Equal(t, int64(12345), w.Seed())
	assert.Equal(t, 0, w.MinLayer())
	assert.Equal(t, 15, w.MaxLayer())
}

func TestWorld_CreationValidation(t *testing.T) {
	_, err := NewWorld(1, Options{MinLayer: 5, MaxLayer: 2})
	assert.ErrorIs(t, err, ErrInvalidLayer, "Перевёрнутый диапазон слоёв недопустим")

	_, err = NewWorld(1, Options{MinLayer: 0, MaxLayer: 5, ChunkSize: 17})
	assert.ErrorIs(t, err, ErrUnsupportedChunkSize)

	// Явные 16 и нулевое значение по умолчанию допустимы
	_, err = NewWorld(1, Options{MinLayer: 0, MaxLayer: 5, ChunkSize: 16})
	assert.NoError(t, err)
	_, err = NewWorld(1, Options{MinLayer: 0, MaxLayer: 5, ChunkSize: 0})
	assert.NoError(t, err)
}

func TestWorld_Determinism(t *testing.T) {
	// Два мира с одним сидом дают одинаковые тайлы независимо от
	// порядка обращений
	w1 := newTestWorld(t, 42)
	w2 := newTestWorld(t, 42)

	// Прогреваем второй мир в другом порядке
	_, _ = w2.TileAt(3, vec.Vec2{X: 100, Y: -50})
	_, _ = w2.TileAt(0, vec.Vec2{X: -3, Y: 7})

	for x := -10; x <= 10; x += 3 {
		for y := -10; y <= 10; y += 3 {
			id1, err1 := w1.TileAt(0, vec.Vec2{X: x, Y: y})
			id2, err2 := w2.TileAt(0, vec.Vec2{X: x, Y: y})
			assert.NoError(t, err1)
			assert.NoError(t, err2)
			assert.Equal(t, id1, id2, "Тайл (%d,%d) должен совпадать", x, y)
		}
	}
}

func TestWorld_InvalidLayer(t *testing.T) {
	w := newTestWorld(t, 42)

	_, err := w.TileAt(16, vec.Vec2{X: 0, Y: 0})
	assert.ErrorIs(t, err, ErrInvalidLayer, "Слой глубже дна — типизированная ошибка")

	_, err = w.TileAt(-1, vec.Vec2{X: 0, Y: 0})
	assert.ErrorIs(t, err, ErrInvalidLayer)

	err = w.SetTile(16, vec.Vec2{X: 0, Y: 0}, tile.FloorTileID)
	assert.ErrorIs(t, err, ErrInvalidLayer)

	_, err = w.Query(16, vec.NewRect(vec.Vec2{}, vec.Vec2{X: 15, Y: 15}), 1.0)
	assert.ErrorIs(t, err, ErrInvalidLayer)
}

func TestWorld_SetAndMine(t *testing.T) {
	w := newTestWorld(t, 42)
	pos := vec.Vec2{X: 8, Y: 8}

	// Подкладываем породу и добываем её
	err := w.SetTile(0, pos, tile.RockTileID)
	assert.NoError(t, err)

	mined, ok, err := w.MineTile(0, pos)
	assert.NoError(t, err)
	assert.True(t, ok, "Порода должна добываться")
	assert.Equal(t, tile.RockTileID, mined)

	id, err := w.TileAt(0, pos)
	assert.NoError(t, err)
	assert.Equal(t, tile.FloorTileID, id, "После добычи остаётся пол")

	// Пол повторно не добывается
	_, ok, err = w.MineTile(0, pos)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestWorld_MineOreKeepsGrade(t *testing.T) {
	w := newTestWorld(t, 42)
	pos := vec.Vec2{X: 4, Y: 4}

	err := w.SetTile(3, pos, tile.OrePureTileID)
	assert.NoError(t, err)

	mined, ok, err := w.MineTile(3, pos)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, tile.OrePureTileID, mined, "Добытый тайл сообщает сорт руды")
	assert.Equal(t, uint8(3), tile.OreGrade(mined))
}

func TestWorld_QueryTileDetail(t *testing.T) {
	w := newTestWorld(t, 42)
	viewport := vec.NewRect(vec.Vec2{X: 5, Y: 5}, vec.Vec2{X: 36, Y: 20})

	view, err := w.Query(0, viewport, 1.0)
	assert.NoError(t, err)
	assert.Equal(t, ViewTiles, view.Mode, "Близкий зум отвечает тайлами")
	assert.Equal(t, viewport.Width(), view.Width)
	assert.Equal(t, viewport.Height(), view.Height)
	assert.Len(t, view.Tiles, viewport.Width()*viewport.Height())

	// Содержимое представления совпадает с точечным чтением
	checks := []vec.Vec2{
		{X: 5, Y: 5}, {X: 36, Y: 20}, {X: 16, Y: 10}, {X: 21, Y: 5},
	}
	for _, pos := range checks {
		expected, err := w.TileAt(0, pos)
		assert.NoError(t, err)
		got, ok := view.TileAt(pos)
		assert.True(t, ok, "Позиция %v входит в представление", pos)
		assert.Equal(t, expected, got, "Тайл %v должен совпадать с TileAt", pos)
	}

	_, ok := view.TileAt(vec.Vec2{X: 4, Y: 5})
	assert.False(t, ok, "Позиция вне представления")
}

func TestWorld_QueryZoomedOut(t *testing.T) {
	w := newTestWorld(t, 42)
	viewport := vec.NewRect(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1023, Y: 1023})

	view, err := w.Query(0, viewport, 0.05)
	assert.NoError(t, err)
	assert.Equal(t, ViewSummaries, view.Mode, "Дальний зум отвечает сводками")
	assert.Greater(t, view.Level, 0)
	assert.Equal(t, ChunkSize<<uint(view.Level), view.CellTiles)
	assert.NotEmpty(t, view.Summaries)

	// Представление по нетронутому миру не материализует чанки
	count, err := w.ChunkCount(0)
	assert.NoError(t, err)
	assert.Equal(t, 0, count, "Зум-аут по нетронутой области не генерирует чанки")
}

func TestWorld_LODLevelForZoom(t *testing.T) {
	assert.Equal(t, 0, lodLevelForZoom(1.0))
	assert.Equal(t, 0, lodLevelForZoom(0.5), "Порог детального зума включительный")
	assert.Equal(t, 1, lodLevelForZoom(0.25))
	assert.Equal(t, 2, lodLevelForZoom(0.125))
	assert.Equal(t, MaxLODLevel, lodLevelForZoom(0.0001), "Уровень ограничен высотой пирамиды")
}

func TestWorld_RegionSummaryExact(t *testing.T) {
	w := newTestWorld(t, 42)
	region := vec.NewRect(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 31, Y: 31})

	summaries, err := w.RegionSummary(5, region, 1, true)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.False(t, summaries[0].Approximate)

	count, err := w.ChunkCount(5)
	assert.NoError(t, err)
	assert.Equal(t, 4, count, "Точный запрос материализует все чанки ячейки")
}

// Benchmarks

func BenchmarkWorld_TileAt(b *testing.B) {
	w, _ := NewWorld(42, Options{MinLayer: 0, MaxLayer: 15})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = w.TileAt(0, vec.Vec2{X: i % 256, Y: (i / 256) % 256})
	}
}

func BenchmarkWorld_QueryView(b *testing.B) {
	w, _ := NewWorld(42, Options{MinLayer: 0, MaxLayer: 15})
	viewport := vec.NewRect(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 63, Y: 63})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = w.Query(0, viewport, 1.0)
	}
}

func BenchmarkWorld_ApproximateSummary(b *testing.B) {
	w, _ := NewWorld(42, Options{MinLayer: 0, MaxLayer: 15})
	region := vec.NewRect(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4095, Y: 4095})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = w.RegionSummary(3, region, 4, false)
	}
}
