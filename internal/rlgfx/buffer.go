package rlgfx

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlselect/internal/selection"
)

// OpenGL enums understood by rlgl's matrix stack and batch modes
const (
	glLines      = 0x0001
	glModelview  = 0x1700
	glProjection = 0x1701
)

// Device hands out line buffers drawn with the given width in pixels
type Device struct {
	LineWidth float32
}

func (d Device) NewBuffer() selection.Buffer {
	return &LineBuffer{width: d.LineWidth}
}

// LineBuffer keeps the expanded segment list of an overlay geometry and
// replays it through an rlgl batch each frame. The projection is an
// orthographic box over the geometry's extent, which is the identity for
// canvas-normalised quads.
type LineBuffer struct {
	geometry selection.Geometry
	segments [][2]uint32
	color    rl.Color
	width    float32
}

func (b *LineBuffer) Upload(g selection.Geometry) {
	b.geometry = g
	b.segments = g.Segments()
}

func (b *LineBuffer) SetColor(c selection.Color) {
	n := c.NRGBA()
	b.color = rl.NewColor(n.R, n.G, n.B, n.A)
}

func (b *LineBuffer) Render() {
	if len(b.segments) == 0 {
		return
	}

	// flush whatever was batched with the scene matrices
	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()
	if b.width > 0 {
		rl.SetLineWidth(b.width)
	}

	ex, ey := b.geometry.ExtentOrUnit()
	rl.MatrixMode(glProjection)
	rl.PushMatrix()
	rl.LoadIdentity()
	rl.Ortho(-float64(ex), float64(ex), -float64(ey), float64(ey), -1, 1)
	rl.MatrixMode(glModelview)
	rl.PushMatrix()
	rl.LoadIdentity()

	rl.Begin(glLines)
	rl.Color4ub(b.color.R, b.color.G, b.color.B, b.color.A)
	for _, segment := range b.segments {
		for _, index := range segment {
			b.emit(b.geometry.Vertex(int(index)))
		}
	}
	rl.End()
	rl.DrawRenderBatchActive()

	rl.MatrixMode(glProjection)
	rl.PopMatrix()
	rl.MatrixMode(glModelview)
	rl.PopMatrix()

	rl.SetLineWidth(1)
	rl.EnableDepthTest()
}

func (b *LineBuffer) emit(v []float32) {
	if b.geometry.Layout == selection.P4 {
		rl.TexCoord2f(v[3], 0)
		rl.Vertex3f(v[0], v[1], v[2])
		return
	}
	rl.Vertex2f(v[0], v[1])
}

func (b *LineBuffer) Release() {
	b.geometry = selection.Geometry{}
	b.segments = nil
}
