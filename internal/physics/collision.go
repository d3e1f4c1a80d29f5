package physics

import (
	"github.com/annel0/mine-colony/internal/vec"
	"github.com/annel0/mine-colony/internal/world"
	"github.com/annel0/mine-colony/internal/world/tile"
)

// TileChecker сообщает, проходим ли тайл в указанной мировой позиции
type TileChecker func(pos vec.Vec2) bool

// PassableChecker строит TileChecker над фасадом мира для одного слоя.
// Ошибка чтения тайла трактуется как непроходимость: безопаснее
// остановить сущность, чем пустить её в несуществующий слой.
func PassableChecker(w *world.World, layer int) TileChecker {
	return func(pos vec.Vec2) bool {
		id, err := w.TileAt(layer, pos)
		if err != nil {
			return false
		}
		return tile.IsPassable(id)
	}
}

// BoxCollider представляет простой прямоугольный коллайдер
type BoxCollider struct {
	Width  int // Ширина в тайлах
	Height int // Высота в тайлах
}

// NewBoxCollider создаёт новый коллайдер с указанными размерами
func NewBoxCollider(width, height int) *BoxCollider {
	return &BoxCollider{
		Width:  width,
		Height: height,
	}
}

// IsPointInside проверяет, находится ли точка внутри коллайдера
func (bc *BoxCollider) IsPointInside(colliderPos, point vec.Vec2) bool {
	halfWidth := bc.Width / 2
	halfHeight := bc.Height / 2

	return point.X >= colliderPos.X-halfWidth &&
		point.X < colliderPos.X+halfWidth &&
		point.Y >= colliderPos.Y-halfHeight &&
		point.Y < colliderPos.Y+halfHeight
}

// CheckBoxCollision проверяет столкновение двух коллайдеров
func CheckBoxCollision(pos1 vec.Vec2, collider1 *BoxCollider, pos2 vec.Vec2, collider2 *BoxCollider) bool {
	halfWidth1 := collider1.Width / 2
	halfHeight1 := collider1.Height / 2
	halfWidth2 := collider2.Width / 2
	halfHeight2 := collider2.Height / 2

	return pos1.X+halfWidth1 > pos2.X-halfWidth2 &&
		pos1.X-halfWidth1 < pos2.X+halfWidth2 &&
		pos1.Y+halfHeight1 > pos2.Y-halfHeight2 &&
		pos1.Y-halfHeight1 < pos2.Y+halfHeight2
}

// GetCollisionPoints возвращает точки для проверки коллизий с тайлами.
// Например, для колониста 2x2 тайла вернёт 4 угла и центр.
func GetCollisionPoints(pos vec.Vec2, collider *BoxCollider) []vec.Vec2 {
	halfWidth := collider.Width / 2
	halfHeight := collider.Height / 2

	// Для коллайдера 1x1 вернём только центральную точку
	if collider.Width <= 1 && collider.Height <= 1 {
		return []vec.Vec2{pos}
	}

	points := []vec.Vec2{
		{X: pos.X - halfWidth, Y: pos.Y - halfHeight},         // Левый верхний
		{X: pos.X + halfWidth - 1, Y: pos.Y - halfHeight},     // Правый верхний
		{X: pos.X - halfWidth, Y: pos.Y + halfHeight - 1},     // Левый нижний
		{X: pos.X + halfWidth - 1, Y: pos.Y + halfHeight - 1}, // Правый нижний
		{X: pos.X, Y: pos.Y},                                  // Центр
	}

	return points
}

// CanMoveToPosition проверяет, может ли сущность с указанным коллайдером
// занять позицию newPos. Порода и стены непроходимы, пустоты и пол —
// проходимы; решение о конкретном тайле принимает checker.
func CanMoveToPosition(newPos vec.Vec2, collider *BoxCollider, checker TileChecker) bool {
	points := GetCollisionPoints(newPos, collider)

	for _, point := range points {
		if !checker(point) {
			// Хотя бы одна точка в непроходимом тайле — движение невозможно
			return false
		}
	}

	return true
}
