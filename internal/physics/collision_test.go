package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world"
	"github.com/annel0/mine-colony/internal/world/tile"
)

func TestBoxCollider_IsPointInside(t *testing.T) {
	collider := NewBoxCollider(4, 4)
	center := vec.Vec2{X: 10, Y: 10}

	assert.True(t, collider.IsPointInside(center, vec.Vec2{X: 10, Y: 10}))
	assert.True(t, collider.IsPointInside(center, vec.Vec2{X: 8, Y: 8}))
	assert.False(t, collider.IsPointInside(center, vec.Vec2{X: 12, Y: 10}), "Правая граница исключается")
	assert.False(t, collider.IsPointInside(center, vec.Vec2{X: 7, Y: 10}))
}

func TestCheckBoxCollision(t *testing.T) {
	a := NewBoxCollider(2, 2)
	b := NewBoxCollider(2, 2)

	assert.True(t, CheckBoxCollision(vec.Vec2{X: 0, Y: 0}, a, vec.Vec2{X: 1, Y: 1}, b))
	assert.False(t, CheckBoxCollision(vec.Vec2{X: 0, Y: 0}, a, vec.Vec2{X: 5, Y: 5}, b))
}

func TestGetCollisionPoints(t *testing.T) {
	// Коллайдер 1x1 проверяется одной точкой
	small := NewBoxCollider(1, 1)
	points := GetCollisionPoints(vec.Vec2{X: 3, Y: 3}, small)
	assert.Len(t, points, 1)
	assert.Equal(t, vec.Vec2{X: 3, Y: 3}, points[0])

	// Крупный коллайдер — четыре угла и центр
	big := NewBoxCollider(2, 2)
	points = GetCollisionPoints(vec.Vec2{X: 10, Y: 10}, big)
	assert.Len(t, points, 5)
	assert.Contains(t, points, vec.Vec2{X: 9, Y: 9})
	assert.Contains(t, points, vec.Vec2{X: 10, Y: 10})
}

func TestCanMoveToPosition(t *testing.T) {
	// Стена тайлов по x == 5: всё левее проходимо
	checker := func(pos vec.Vec2) bool {
		return pos.X < 5
	}
	collider := NewBoxCollider(2, 2)

	assert.True(t, CanMoveToPosition(vec.Vec2{X: 2, Y: 2}, collider, checker))
	assert.False(t, CanMoveToPosition(vec.Vec2{X: 5, Y: 2}, collider, checker),
		"Угол коллайдера в стене блокирует движение")
	assert.False(t, CanMoveToPosition(vec.Vec2{X: 6, Y: 2}, collider, checker))
}

func TestPassableChecker(t *testing.T) {
	w, err := world.NewWorld(42, world.Options{MinLayer: 0, MaxLayer: 15})
	assert.NoError(t, err)

	// Готовим известный рельеф: пол и стена рядом
	floorPos := vec.Vec2{X: 10, Y: 10}
	wallPos := vec.Vec2{X: 11, Y: 10}
	assert.NoError(t, w.SetTile(0, floorPos, tile.FloorTileID))
	assert.NoError(t, w.SetTile(0, wallPos, tile.WallTileID))

	checker := PassableChecker(w, 0)
	assert.True(t, checker(floorPos), "Пол проходим")
	assert.False(t, checker(wallPos), "Стена непроходима")

	// Несуществующий слой консервативно непроходим
	badLayer := PassableChecker(w, 99)
	assert.False(t, badLayer(floorPos))
}
