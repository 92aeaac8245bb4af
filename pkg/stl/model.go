package stl

import (
	"github.com/philipparndt/stlselect/pkg/geometry"
)

// Model is a parsed STL mesh
type Model struct {
	Name      string
	Triangles []geometry.Triangle

	vertices []geometry.Vector3
}

// NewModel creates an empty model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle appends a facet and invalidates the cached vertex list
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
	m.vertices = nil
}

func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// Vertices returns every distinct vertex in order of first appearance.
// Selection results are indices into this slice, so it is computed once and
// kept stable until the model changes.
func (m *Model) Vertices() []geometry.Vector3 {
	if m.vertices != nil {
		return m.vertices
	}

	seen := make(map[geometry.Vector3]struct{}, len(m.Triangles)*3/2)
	vertices := make([]geometry.Vector3, 0, len(m.Triangles)*3/2)
	for _, triangle := range m.Triangles {
		for _, v := range triangle.Vertices() {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			vertices = append(vertices, v)
		}
	}
	m.vertices = vertices
	return vertices
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}
