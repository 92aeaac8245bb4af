package geometry

import "math"

// Rect is an axis-aligned rectangle in screen space. Min holds the top-left
// corner, Max the bottom-right one.
type Rect struct {
	Min Vector2
	Max Vector2
}

// RectFromCorners builds a rectangle from two arbitrary corners, so the drag
// direction does not matter.
func RectFromCorners(a, b Vector2) Rect {
	return Rect{
		Min: Vector2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vector2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Contains reports whether p lies inside the rectangle. All four edges are inclusive.
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Empty reports whether the rectangle has zero area
func (r Rect) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}
