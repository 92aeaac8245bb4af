package selection

import "github.com/philipparndt/stlselect/pkg/geometry"

type fakeCanvas struct {
	width, height int
}

func (c *fakeCanvas) Size() (int, int) { return c.width, c.height }

type fakeZoom float64

func (z fakeZoom) Zoom() float64 { return float64(z) }

type fakeShader struct {
	begun, ended int
	floats       map[string]float32
	vec2s        map[string][2]float32
	vec4s        map[string][4]float32
	identities   map[string]bool
}

func newFakeShader() *fakeShader {
	return &fakeShader{
		floats:     map[string]float32{},
		vec2s:      map[string][2]float32{},
		vec4s:      map[string][4]float32{},
		identities: map[string]bool{},
	}
}

func (s *fakeShader) Begin()                            { s.begun++ }
func (s *fakeShader) End()                              { s.ended++ }
func (s *fakeShader) SetFloat(name string, v float32)   { s.floats[name] = v }
func (s *fakeShader) SetVec2(name string, v [2]float32) { s.vec2s[name] = v }
func (s *fakeShader) SetVec4(name string, v [4]float32) { s.vec4s[name] = v }
func (s *fakeShader) SetIdentity(name string)           { s.identities[name] = true }

type fakeRegistry map[string]Shader

func (r fakeRegistry) Shader(name string) (Shader, bool) {
	s, ok := r[name]
	return s, ok
}

type fakeBuffer struct {
	uploads  []Geometry
	color    Color
	renders  int
	released bool
}

func (b *fakeBuffer) Upload(g Geometry) { b.uploads = append(b.uploads, g) }
func (b *fakeBuffer) SetColor(c Color)  { b.color = c }
func (b *fakeBuffer) Render()           { b.renders++ }
func (b *fakeBuffer) Release()          { b.released = true }

type fakeDevice struct {
	buffers []*fakeBuffer
}

func (d *fakeDevice) NewBuffer() Buffer {
	b := &fakeBuffer{}
	d.buffers = append(d.buffers, b)
	return b
}

func (d *fakeDevice) renders() int {
	total := 0
	for _, b := range d.buffers {
		total += b.renders
	}
	return total
}

// fixedProjector returns a canned projection regardless of input
type fixedProjector []geometry.Vector2

func (p fixedProjector) Project(points []geometry.Vector3) []geometry.Vector2 {
	return p[:len(points)]
}

func pt(x, y float64) geometry.Vector2 {
	return geometry.NewVector2(x, y)
}

func somePoints(n int) []geometry.Vector3 {
	out := make([]geometry.Vector3, n)
	for i := range out {
		out[i] = geometry.NewVector3(float64(i), 0, 0)
	}
	return out
}
