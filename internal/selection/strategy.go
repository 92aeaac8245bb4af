package selection

import (
	"github.com/pkg/errors"
)

// Shader names looked up in the ShaderRegistry
const (
	ShaderDashedLines = "dashed_lines"
	ShaderFlat        = "flat"
)

// Strategy is one way of drawing the overlay. It is chosen once from the
// capabilities of the rendering back end.
type Strategy interface {
	Name() string
	// ShaderName is the program to bind, or "" when the back end draws
	// without one.
	ShaderName() string
	Build(q Quad) Geometry
	Configure(shader Shader, style Style)
}

// DashedStrategy draws a closed loop of line segments. Every vertex carries
// its distance along the perimeter so the dash pattern runs continuously
// around the corners. Distances are measured in units of the render target
// half extent, so dashes keep their on-screen length under every derivation.
type DashedStrategy struct{}

func (DashedStrategy) Name() string       { return "dashed" }
func (DashedStrategy) ShaderName() string { return ShaderDashedLines }

func (DashedStrategy) Build(q Quad) Geometry {
	ex, ey := q.ExtentX, q.ExtentY
	if ex <= 0 {
		ex = 1
	}
	if ey <= 0 {
		ey = 1
	}
	width := q.Width() / ex
	height := q.Height() / ey

	corners := [5][2]float32{
		{q.Left, q.Bottom},
		{q.Right, q.Bottom},
		{q.Right, q.Top},
		{q.Left, q.Top},
		{q.Left, q.Bottom},
	}
	edges := [4]float32{width, height, width, height}

	vertices := make([]float32, 0, len(corners)*int(P4))
	var perimeter float32
	for i, c := range corners {
		vertices = append(vertices, c[0], c[1], 0, perimeter)
		if i < len(edges) {
			perimeter += edges[i]
		}
	}

	return Geometry{
		Layout:   P4,
		Topology: Lines,
		Vertices: vertices,
		Indices:  []uint32{0, 1, 1, 2, 2, 3, 3, 4},
		Extent:   [2]float32{q.ExtentX, q.ExtentY},
	}
}

func (DashedStrategy) Configure(shader Shader, style Style) {
	shader.SetIdentity("view_model_matrix")
	shader.SetIdentity("projection_matrix")
	shader.SetFloat("dash_size", style.DashSize)
	shader.SetFloat("gap_size", style.GapSize)
}

// SolidLoopStrategy draws four vertices as a solid line loop. With an empty
// Shader it needs nothing but fixed-function line drawing.
type SolidLoopStrategy struct {
	Shader string
}

func (SolidLoopStrategy) Name() string         { return "solid" }
func (s SolidLoopStrategy) ShaderName() string { return s.Shader }

func (SolidLoopStrategy) Build(q Quad) Geometry {
	return Geometry{
		Layout:   P2,
		Topology: LineLoop,
		Vertices: []float32{
			q.Left, q.Bottom,
			q.Right, q.Bottom,
			q.Right, q.Top,
			q.Left, q.Top,
		},
		Indices: []uint32{0, 1, 2, 3},
		Extent:  [2]float32{q.ExtentX, q.ExtentY},
	}
}

func (SolidLoopStrategy) Configure(shader Shader, _ Style) {
	shader.SetIdentity("view_model_matrix")
	shader.SetIdentity("projection_matrix")
}

// Capability is the rendering tier detected on the back end
type Capability int

const (
	// FixedFunction back ends cannot run the dashed-line program
	FixedFunction Capability = iota
	// Programmable back ends run GLSL programs
	Programmable
)

func (c Capability) String() string {
	if c == Programmable {
		return "programmable"
	}
	return "fixed-function"
}

// StrategyFor picks the overlay strategy for a capability tier
func StrategyFor(c Capability) Strategy {
	if c == Programmable {
		return DashedStrategy{}
	}
	return SolidLoopStrategy{}
}

// ResolveStrategy honours an explicit renderer name and falls back to the
// detected capability for "auto".
func ResolveStrategy(name string, c Capability) (Strategy, error) {
	switch name {
	case "auto", "":
		return StrategyFor(c), nil
	case "dashed":
		if c != Programmable {
			return nil, errors.Errorf("dashed overlay needs a programmable pipeline, back end is %s", c)
		}
		return DashedStrategy{}, nil
	case "solid":
		return SolidLoopStrategy{}, nil
	}
	return nil, errors.Errorf("unknown overlay renderer %q (expected auto, dashed or solid)", name)
}
