package rlgfx

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlselect/pkg/geometry"
)

// CameraProjector projects model points through a raylib camera into
// window pixels. The camera is read at projection time, so orbiting
// between calls is picked up.
type CameraProjector struct {
	Camera *rl.Camera3D
	// ReferenceDistance is the camera-target distance at zoom 1
	ReferenceDistance float32
}

func (p CameraProjector) Project(points []geometry.Vector3) []geometry.Vector2 {
	out := make([]geometry.Vector2, len(points))
	for i, point := range points {
		s := rl.GetWorldToScreen(ToVector3(point), *p.Camera)
		out[i] = geometry.NewVector2(float64(s.X), float64(s.Y))
	}
	return out
}

// Zoom grows as the camera moves closer to its target
func (p CameraProjector) Zoom() float64 {
	distance := rl.Vector3Distance(p.Camera.Position, p.Camera.Target)
	if distance == 0 || p.ReferenceDistance == 0 {
		return 1
	}
	return float64(p.ReferenceDistance / distance)
}

// ToVector3 converts a model point to raylib's float32 vector
func ToVector3(v geometry.Vector3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

// FromVector2 converts a raylib screen position
func FromVector2(v rl.Vector2) geometry.Vector2 {
	return geometry.NewVector2(float64(v.X), float64(v.Y))
}
