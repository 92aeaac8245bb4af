package selection

// Canvas reports the size of the render target in pixels
type Canvas interface {
	Size() (width, height int)
}

// ZoomSource exposes the camera zoom factor used by the zoom-relative derivation
type ZoomSource interface {
	Zoom() float64
}

// Shader is a compiled program the overlay binds while drawing
type Shader interface {
	Begin()
	End()
	SetFloat(name string, v float32)
	SetVec2(name string, v [2]float32)
	SetVec4(name string, v [4]float32)
	SetIdentity(name string)
}

// ShaderRegistry looks up shaders by name. A missing shader makes the
// overlay skip drawing.
type ShaderRegistry interface {
	Shader(name string) (Shader, bool)
}

// Buffer is a small GPU-resident line geometry
type Buffer interface {
	Upload(g Geometry)
	SetColor(c Color)
	Render()
	Release()
}

// Device allocates buffers
type Device interface {
	NewBuffer() Buffer
}

// VertexLayout describes the per-vertex float count
type VertexLayout int

const (
	// P2 is x, y
	P2 VertexLayout = 2
	// P4 is x, y, z, arc length
	P4 VertexLayout = 4
)

// Topology tells the buffer how to join the indices
type Topology int

const (
	// Lines joins index pairs
	Lines Topology = iota
	// LineLoop joins consecutive indices and closes the loop
	LineLoop
)

// Geometry is the data uploaded into a Buffer. Vertices are packed
// according to Layout. Extent carries the quad's render-target half sizes;
// buffers project [-Extent, Extent] onto the canvas.
type Geometry struct {
	Layout   VertexLayout
	Topology Topology
	Vertices []float32
	Indices  []uint32
	Extent   [2]float32
}

// ExtentOrUnit returns Extent, with zero components replaced by 1
func (g Geometry) ExtentOrUnit() (float32, float32) {
	x, y := g.Extent[0], g.Extent[1]
	if x <= 0 {
		x = 1
	}
	if y <= 0 {
		y = 1
	}
	return x, y
}

// VertexCount returns the number of vertices in g
func (g Geometry) VertexCount() int {
	if g.Layout == 0 {
		return 0
	}
	return len(g.Vertices) / int(g.Layout)
}

// Vertex returns the components of vertex i
func (g Geometry) Vertex(i int) []float32 {
	n := int(g.Layout)
	return g.Vertices[i*n : (i+1)*n]
}

// Segments expands the topology into explicit vertex index pairs
func (g Geometry) Segments() [][2]uint32 {
	switch g.Topology {
	case LineLoop:
		n := len(g.Indices)
		if n < 2 {
			return nil
		}
		out := make([][2]uint32, 0, n)
		for i := range g.Indices {
			out = append(out, [2]uint32{g.Indices[i], g.Indices[(i+1)%n]})
		}
		return out
	default:
		out := make([][2]uint32, 0, len(g.Indices)/2)
		for i := 0; i+1 < len(g.Indices); i += 2 {
			out = append(out, [2]uint32{g.Indices[i], g.Indices[i+1]})
		}
		return out
	}
}
