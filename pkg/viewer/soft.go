package viewer

import (
	"math"

	"github.com/philipparndt/stlselect/internal/selection"
)

// Shaders is a software stand-in for the overlay's GPU programs. It records
// uniforms so the software buffers can honour the dash pattern and colour
// of whichever program is bound.
type Shaders struct {
	programs map[string]*softShader
	active   *softShader
}

func NewShaders() *Shaders {
	s := &Shaders{programs: make(map[string]*softShader)}
	for _, name := range []string{selection.ShaderDashedLines, selection.ShaderFlat} {
		s.programs[name] = &softShader{owner: s, name: name, uniforms: make(map[string][4]float32)}
	}
	return s
}

func (s *Shaders) Shader(name string) (selection.Shader, bool) {
	p, ok := s.programs[name]
	if !ok {
		return nil, false
	}
	return p, true
}

type softShader struct {
	owner    *Shaders
	name     string
	uniforms map[string][4]float32
}

func (p *softShader) Begin() { p.owner.active = p }
func (p *softShader) End()   { p.owner.active = nil }

func (p *softShader) SetFloat(name string, v float32) {
	p.uniforms[name] = [4]float32{v}
}

func (p *softShader) SetVec2(name string, v [2]float32) {
	p.uniforms[name] = [4]float32{v[0], v[1]}
}

func (p *softShader) SetVec4(name string, v [4]float32) {
	p.uniforms[name] = v
}

// SetIdentity is a no-op: software buffers already work in device coordinates
func (p *softShader) SetIdentity(string) {}

func (p *softShader) float(name string) float32 {
	return p.uniforms[name][0]
}

// segment is a line in pixel coordinates
type segment struct {
	x1, y1, x2, y2 float64
}

// toPixel maps render-target coordinates spanning [-ex, ex] x [-ey, ey]
// to pixels, y down
func toPixel(x, y, ex, ey float32, width, height int) (float64, float64) {
	nx := float64(x) / float64(ex)
	ny := float64(y) / float64(ey)
	return (nx + 1) / 2 * float64(width), (1 - ny) / 2 * float64(height)
}

// segments converts g to pixel segments. With the dashed program bound and
// a P4 layout the gaps are cut out using the per-vertex arc length.
func segments(g selection.Geometry, active *softShader, width, height int) []segment {
	var dash, gap float64
	if active != nil && active.name == selection.ShaderDashedLines && g.Layout == selection.P4 {
		dash = float64(active.float("dash_size"))
		gap = float64(active.float("gap_size"))
	}

	ex, ey := g.ExtentOrUnit()
	var out []segment
	for _, s := range g.Segments() {
		a, b := g.Vertex(int(s[0])), g.Vertex(int(s[1]))
		x1, y1 := toPixel(a[0], a[1], ex, ey, width, height)
		x2, y2 := toPixel(b[0], b[1], ex, ey, width, height)

		if dash <= 0 {
			out = append(out, segment{x1, y1, x2, y2})
			continue
		}
		for _, t := range dashIntervals(float64(a[3]), float64(b[3]), dash, gap) {
			out = append(out, segment{
				x1: x1 + t[0]*(x2-x1), y1: y1 + t[0]*(y2-y1),
				x2: x1 + t[1]*(x2-x1), y2: y1 + t[1]*(y2-y1),
			})
		}
	}
	return out
}

// dashIntervals returns the visible parameter ranges of a segment whose arc
// length runs from arc0 to arc1. A point is visible when its arc length
// modulo dash+gap is at most dash.
func dashIntervals(arc0, arc1, dash, gap float64) [][2]float64 {
	length := arc1 - arc0
	if length <= 0 || gap <= 0 {
		return [][2]float64{{0, 1}}
	}

	period := dash + gap
	var out [][2]float64
	for start := math.Floor(arc0/period) * period; start < arc1; start += period {
		on0 := math.Max(start, arc0)
		on1 := math.Min(start+dash, arc1)
		if on1 > on0 {
			out = append(out, [2]float64{(on0 - arc0) / length, (on1 - arc0) / length})
		}
	}
	return out
}
