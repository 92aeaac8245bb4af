package geometry

import "math"

// BoundingBox is an axis-aligned box in model space
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox returns an inverted box that any call to Extend will fix up
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// Extend grows the box to include point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Valid reports whether at least one point has been added
func (b BoundingBox) Valid() bool {
	return b.Min.X <= b.Max.X
}

func (b BoundingBox) Size() Vector3 {
	if !b.Valid() {
		return Vector3{}
	}
	return b.Max.Sub(b.Min)
}

func (b BoundingBox) Center() Vector3 {
	if !b.Valid() {
		return Vector3{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// MaxDimension returns the largest extent along any axis
func (b BoundingBox) MaxDimension() float64 {
	size := b.Size()
	return math.Max(size.X, math.Max(size.Y, size.Z))
}
