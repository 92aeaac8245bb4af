package geometry

import (
	"math"
	"testing"
)

func TestVector3Cross(t *testing.T) {
	result := NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0))

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Normalize(t *testing.T) {
	normalized := NewVector3(3, 4, 0).Normalize()

	if math.Abs(normalized.Length()-1.0) > 1e-10 {
		t.Errorf("Normalize failed: expected length 1, got %v", normalized.Length())
	}
	if (Vector3{}).Normalize() != (Vector3{}) {
		t.Errorf("Normalize of zero vector should stay zero")
	}
}

func TestBoundingBox(t *testing.T) {
	bbox := NewBoundingBox()
	if bbox.Valid() {
		t.Fatalf("empty bounding box should not be valid")
	}

	bbox.Extend(NewVector3(-1, 0, 2))
	bbox.Extend(NewVector3(3, 4, -2))

	if got := bbox.Center(); got != NewVector3(1, 2, 0) {
		t.Errorf("Center failed: expected (1,2,0), got %v", got)
	}
	if got := bbox.MaxDimension(); got != 4 {
		t.Errorf("MaxDimension failed: expected 4, got %v", got)
	}
}

func TestVector2Length(t *testing.T) {
	if got := NewVector2(3, 4).Sub(NewVector2(0, 0)).Length(); math.Abs(got-5) > 1e-10 {
		t.Errorf("Length failed: expected 5, got %v", got)
	}
}
