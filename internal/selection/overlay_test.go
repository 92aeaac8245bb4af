package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overlayFixture struct {
	canvas  *fakeCanvas
	shader  *fakeShader
	device  *fakeDevice
	overlay *Overlay
	rect    *Rectangle
}

func newOverlayFixture(strategy Strategy, derivation Derivation) *overlayFixture {
	f := &overlayFixture{
		canvas: &fakeCanvas{width: 800, height: 600},
		shader: newFakeShader(),
		device: &fakeDevice{},
		rect:   NewRectangle(QueryOnly),
	}
	f.overlay = NewOverlay(Deps{
		Canvas:  f.canvas,
		Zoom:    fakeZoom(2),
		Shaders: fakeRegistry{ShaderDashedLines: f.shader, ShaderFlat: f.shader},
		Device:  f.device,
	}, DefaultStyle(), strategy, derivation)
	return f
}

func TestRenderInactiveIsNoop(t *testing.T) {
	f := newOverlayFixture(DashedStrategy{}, CanvasNormalized{})

	f.overlay.Render(f.rect)
	f.overlay.Render(nil)

	assert.Zero(t, f.overlay.Draws())
	assert.Empty(t, f.device.buffers)
	assert.Zero(t, f.shader.begun)
	assert.False(t, f.rect.IsDragging())
}

func TestRenderReusesGeometryWhileStationary(t *testing.T) {
	f := newOverlayFixture(DashedStrategy{}, CanvasNormalized{})
	f.rect.StartDragging(pt(100, 100), Select)
	f.rect.Dragging(pt(300, 200))

	f.overlay.Render(f.rect)
	f.overlay.Render(f.rect)
	f.overlay.Render(f.rect)

	assert.Equal(t, 1, f.overlay.Cache().Rebuilds())
	assert.Equal(t, 3, f.overlay.Draws())
	require.Len(t, f.device.buffers, 1)
	assert.Len(t, f.device.buffers[0].uploads, 1)
	assert.Equal(t, 3, f.device.buffers[0].renders)
	assert.False(t, f.rect.Dirty())
}

func TestRenderRebuildsWhenCornersMove(t *testing.T) {
	f := newOverlayFixture(DashedStrategy{}, CanvasNormalized{})
	f.rect.StartDragging(pt(100, 100), Select)

	f.overlay.Render(f.rect)
	f.rect.Dragging(pt(150, 150))
	f.overlay.Render(f.rect)
	f.rect.Dragging(pt(150, 150))
	f.overlay.Render(f.rect)

	assert.Equal(t, 2, f.overlay.Cache().Rebuilds())
	start, end := f.overlay.Cache().BuiltCorners()
	assert.Equal(t, pt(100, 100), start)
	assert.Equal(t, pt(150, 150), end)
	assert.Len(t, f.device.buffers, 1, "buffer is reused across rebuilds")
}

func TestRenderRebuildsOnResize(t *testing.T) {
	f := newOverlayFixture(SolidLoopStrategy{}, CanvasNormalized{})
	f.rect.StartDragging(pt(100, 100), Select)
	f.rect.Dragging(pt(200, 200))

	f.overlay.Render(f.rect)
	f.canvas.width = 1600
	f.overlay.Render(f.rect)

	assert.Equal(t, 2, f.overlay.Cache().Rebuilds())
}

func TestRenderZeroCanvasSkipsDraw(t *testing.T) {
	for _, derivation := range []Derivation{CanvasNormalized{}, ZoomRelative{}} {
		f := newOverlayFixture(DashedStrategy{}, derivation)
		f.canvas.width = 0
		f.rect.StartDragging(pt(10, 10), Select)
		f.rect.Dragging(pt(20, 20))

		assert.NotPanics(t, func() { f.overlay.Render(f.rect) })
		assert.Zero(t, f.overlay.Draws())
		assert.Zero(t, f.device.renders())
		assert.True(t, f.rect.Dirty(), "geometry was never built")
	}
}

func TestRenderMissingShaderSkipsDraw(t *testing.T) {
	device := &fakeDevice{}
	overlay := NewOverlay(Deps{
		Canvas:  &fakeCanvas{width: 640, height: 480},
		Shaders: fakeRegistry{},
		Device:  device,
	}, DefaultStyle(), DashedStrategy{}, CanvasNormalized{})

	rect := NewRectangle(QueryOnly)
	rect.StartDragging(pt(1, 1), Select)
	overlay.Render(rect)

	assert.Zero(t, overlay.Draws())
	assert.Empty(t, device.buffers)

	noRegistry := NewOverlay(Deps{Canvas: &fakeCanvas{width: 640, height: 480}, Device: device},
		DefaultStyle(), DashedStrategy{}, CanvasNormalized{})
	noRegistry.Render(rect)
	assert.Zero(t, noRegistry.Draws())
}

func TestRenderSolidWithoutShader(t *testing.T) {
	device := &fakeDevice{}
	overlay := NewOverlay(Deps{
		Canvas: &fakeCanvas{width: 640, height: 480},
		Device: device,
	}, DefaultStyle(), SolidLoopStrategy{}, nil)

	rect := NewRectangle(QueryOnly)
	rect.StartDragging(pt(0, 0), Deselect)
	rect.Dragging(pt(320, 240))
	overlay.Render(rect)

	require.Len(t, device.buffers, 1)
	assert.Equal(t, 1, device.buffers[0].renders)
	assert.Equal(t, DefaultStyle().DeselectColor, device.buffers[0].color)
	assert.Equal(t, LineLoop, device.buffers[0].uploads[0].Topology)
}

func TestRenderConfiguresDashedShader(t *testing.T) {
	f := newOverlayFixture(DashedStrategy{}, CanvasNormalized{})
	f.rect.StartDragging(pt(10, 10), Select)
	f.overlay.Render(f.rect)

	style := DefaultStyle()
	assert.Equal(t, 1, f.shader.begun)
	assert.Equal(t, 1, f.shader.ended)
	assert.True(t, f.shader.identities["view_model_matrix"])
	assert.True(t, f.shader.identities["projection_matrix"])
	assert.Equal(t, style.DashSize, f.shader.floats["dash_size"])
	assert.Equal(t, style.GapSize, f.shader.floats["gap_size"])
	assert.Len(t, f.shader.floats, 2)
	assert.Empty(t, f.shader.vec2s)
	assert.Equal(t, style.SelectColor.Vec4(), f.shader.vec4s["uniform_color"])
	assert.Equal(t, style.SelectColor, f.device.buffers[0].color)
}

func TestRenderZoomRelativeDashesInExtentUnits(t *testing.T) {
	f := newOverlayFixture(DashedStrategy{}, ZoomRelative{})
	f.rect.StartDragging(pt(200, 150), Select)
	f.rect.Dragging(pt(600, 450))
	f.overlay.Render(f.rect)

	require.Len(t, f.device.buffers, 1)
	g := f.device.buffers[0].uploads[0]
	assert.Equal(t, [2]float32{200, 150}, g.Extent)
	// half the canvas in each direction is one unit per edge
	assert.InDelta(t, 4, g.Vertex(4)[3], 1e-6)
	assert.Equal(t, DefaultStyle().DashSize, f.shader.floats["dash_size"])
}

func TestStopDraggingReleasesCache(t *testing.T) {
	f := newOverlayFixture(DashedStrategy{}, CanvasNormalized{})
	f.rect.StartDragging(pt(10, 10), Select)
	f.rect.Dragging(pt(40, 40))
	f.overlay.Render(f.rect)
	require.True(t, f.overlay.Cache().Resident())

	f.rect.StopDragging()
	f.overlay.Render(f.rect)

	assert.False(t, f.overlay.Cache().Resident())
	assert.True(t, f.device.buffers[0].released)
	assert.Equal(t, 1, f.overlay.Draws())

	// a new drag allocates a fresh buffer even with identical corners
	f.rect.StartDragging(pt(10, 10), Deselect)
	f.rect.Dragging(pt(40, 40))
	f.overlay.Render(f.rect)
	assert.Len(t, f.device.buffers, 2)
	assert.Equal(t, 2, f.overlay.Cache().Rebuilds())
	assert.Equal(t, DefaultStyle().DeselectColor, f.device.buffers[1].color)
}

func TestNewOverlayDefaults(t *testing.T) {
	overlay := NewOverlay(Deps{}, DefaultStyle(), nil, nil)

	assert.Equal(t, "solid", overlay.Strategy().Name())
	assert.IsType(t, CanvasNormalized{}, overlay.Derivation())
	assert.NotPanics(t, func() {
		rect := NewRectangle(ConsumeOnContains)
		rect.StartDragging(pt(1, 1), Select)
		overlay.Render(rect)
	})
}
