package vec

// Rect представляет прямоугольную область в координатах тайлов.
// Границы включительные: Max принадлежит области.
type Rect struct {
	Min Vec2
	Max Vec2
}

// NewRect создаёт прямоугольник, нормализуя порядок углов
func NewRect(a, b Vec2) Rect {
	r := Rect{Min: a, Max: b}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Width возвращает ширину области в тайлах
func (r Rect) Width() int {
	return r.Max.X - r.Min.X + 1
}

// Height возвращает высоту области в тайлах
func (r Rect) Height() int {
	return r.Max.Y - r.Min.Y + 1
}

// Contains проверяет принадлежность точки области
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ToChunkRect возвращает область в координатах чанков, покрывающую r
func (r Rect) ToChunkRect() Rect {
	return Rect{
		Min: r.Min.ToChunkCoords(),
		Max: r.Max.ToChunkCoords(),
	}
}

// ShiftRight возвращает область, огрублённую до сетки 2^n
func (r Rect) ShiftRight(n uint) Rect {
	return Rect{
		Min: r.Min.ShiftRight(n),
		Max: r.Max.ShiftRight(n),
	}
}
