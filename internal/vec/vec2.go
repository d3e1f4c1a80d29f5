package vec

import "math"

// Vec2 представляет 2D координаты тайла в мире
type Vec2 struct {
	X, Y int
}

// ToChunkCoords преобразует глобальные координаты в координаты чанка.
// Арифметический сдвиг даёт floor-деление и для отрицательных координат.
func (v Vec2) ToChunkCoords() Vec2 {
	return Vec2{X: v.X >> 4, Y: v.Y >> 4} // Деление на 16
}

// LocalInChunk возвращает локальные координаты внутри чанка
func (v Vec2) LocalInChunk() Vec2 {
	return Vec2{X: v.X & 0xF, Y: v.Y & 0xF} // Модуль 16
}

// Add возвращает сумму двух векторов
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// ShiftRight возвращает покоординатный floor-сдвиг на n бит.
// Используется LOD-пирамидой для группировки чанков по степеням двойки.
func (v Vec2) ShiftRight(n uint) Vec2 {
	return Vec2{X: v.X >> n, Y: v.Y >> n}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
