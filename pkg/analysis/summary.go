// Package analysis summarises vertex selections
package analysis

import (
	"fmt"

	"github.com/philipparndt/stlselect/pkg/geometry"
)

// Summary describes a set of selected vertices
type Summary struct {
	Count       int
	BoundingBox geometry.BoundingBox
	Dimensions  geometry.Vector3
	Centroid    geometry.Vector3
}

// Summarize measures the points at indices. Out of range indices are
// skipped; an empty selection gives a zero Summary.
func Summarize(points []geometry.Vector3, indices []int) Summary {
	result := Summary{BoundingBox: geometry.NewBoundingBox()}

	var sum geometry.Vector3
	for _, i := range indices {
		if i < 0 || i >= len(points) {
			continue
		}
		p := points[i]
		result.BoundingBox.Extend(p)
		sum = sum.Add(p)
		result.Count++
	}

	if result.Count == 0 {
		return Summary{}
	}
	result.Dimensions = result.BoundingBox.Size()
	result.Centroid = sum.Scale(1 / float64(result.Count))
	return result
}

// String renders the summary over a few lines
func (s Summary) String() string {
	if s.Count == 0 {
		return "nothing selected"
	}
	return fmt.Sprintf("%d vertices\nsize %s\ncentroid %s", s.Count, FormatVector(s.Dimensions), FormatVector(s.Centroid))
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
