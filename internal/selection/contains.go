package selection

import (
	"github.com/philipparndt/stlselect/pkg/geometry"
)

// Projector maps model-space points to pixel-space points, one output per
// input. Points behind the camera are passed through as the projector
// computes them; culling is the projector's business.
type Projector interface {
	Project(points []geometry.Vector3) []geometry.Vector2
}

// ProjectorFunc adapts a per-point projection function to Projector
type ProjectorFunc func(p geometry.Vector3) geometry.Vector2

func (f ProjectorFunc) Project(points []geometry.Vector3) []geometry.Vector2 {
	out := make([]geometry.Vector2, len(points))
	for i, p := range points {
		out[i] = f(p)
	}
	return out
}

// ContainedIndices returns the indices of the points inside bounds, edges
// included, preserving input order.
func ContainedIndices(bounds geometry.Rect, points []geometry.Vector2) []int {
	var out []int
	for i, p := range points {
		if bounds.Contains(p) {
			out = append(out, i)
		}
	}
	return out
}
