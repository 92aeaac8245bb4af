package selection

import (
	"testing"

	"github.com/philipparndt/stlselect/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashedStrategyCarriesPerimeter(t *testing.T) {
	q := Quad{Left: -0.5, Right: 0.5, Top: 0.25, Bottom: -0.25}

	g := DashedStrategy{}.Build(q)

	require.Equal(t, P4, g.Layout)
	require.Equal(t, 5, g.VertexCount())
	assert.Equal(t, []float32{-0.5, -0.25, 0, 0}, g.Vertex(0))
	assert.Equal(t, []float32{0.5, -0.25, 0, 1}, g.Vertex(1))
	assert.Equal(t, []float32{0.5, 0.25, 0, 1.5}, g.Vertex(2))
	assert.Equal(t, []float32{-0.5, 0.25, 0, 2.5}, g.Vertex(3))
	assert.Equal(t, []float32{-0.5, -0.25, 0, 3}, g.Vertex(4))
	assert.Equal(t, [][2]uint32{{0, 1}, {1, 2}, {2, 3}, {3, 4}}, g.Segments())
}

func TestDashedPerimeterInExtentUnits(t *testing.T) {
	bounds := geometry.RectFromCorners(pt(200, 150), pt(600, 450))
	canvas, ok := CanvasNormalized{}.Quad(bounds, 800, 600, 1)
	require.True(t, ok)
	want := DashedStrategy{}.Build(canvas)

	for _, zoom := range []float64{1, 0.1, 4} {
		q, ok := ZoomRelative{}.Quad(bounds, 800, 600, zoom)
		require.True(t, ok)

		g := DashedStrategy{}.Build(q)
		for i := 0; i < g.VertexCount(); i++ {
			assert.InDelta(t, want.Vertex(i)[3], g.Vertex(i)[3], 1e-6, "zoom %v vertex %d", zoom, i)
		}
	}
	assert.Equal(t, float32(4), want.Vertex(4)[3])
}

func TestSolidStrategyIsClosedLoop(t *testing.T) {
	g := SolidLoopStrategy{}.Build(Quad{Left: 0, Right: 2, Top: 1, Bottom: 0})

	require.Equal(t, P2, g.Layout)
	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, [][2]uint32{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, g.Segments())

	ex, ey := g.ExtentOrUnit()
	assert.Equal(t, float32(1), ex)
	assert.Equal(t, float32(1), ey)
	assert.Equal(t, "", SolidLoopStrategy{}.ShaderName())
	assert.Equal(t, ShaderFlat, SolidLoopStrategy{Shader: ShaderFlat}.ShaderName())
}

func TestStrategiesCarryExtent(t *testing.T) {
	q := Quad{Left: -50, Right: 50, Top: 100, Bottom: -50, ExtentX: 200, ExtentY: 150}

	for _, s := range []Strategy{DashedStrategy{}, SolidLoopStrategy{}} {
		ex, ey := s.Build(q).ExtentOrUnit()
		assert.Equal(t, float32(200), ex, s.Name())
		assert.Equal(t, float32(150), ey, s.Name())
	}
}

func TestStrategyForCapability(t *testing.T) {
	assert.Equal(t, "dashed", StrategyFor(Programmable).Name())
	assert.Equal(t, "solid", StrategyFor(FixedFunction).Name())

	s, err := ResolveStrategy("auto", FixedFunction)
	require.NoError(t, err)
	assert.Equal(t, "solid", s.Name())

	s, err = ResolveStrategy("solid", Programmable)
	require.NoError(t, err)
	assert.Equal(t, "solid", s.Name())

	_, err = ResolveStrategy("dashed", FixedFunction)
	assert.Error(t, err)

	_, err = ResolveStrategy("lasso", Programmable)
	assert.Error(t, err)
}

func TestCanvasNormalizedDerivation(t *testing.T) {
	bounds := geometry.RectFromCorners(pt(0, 0), pt(800, 600))

	q, ok := CanvasNormalized{}.Quad(bounds, 800, 600, 1)
	require.True(t, ok)
	assert.Equal(t, Quad{Left: -1, Right: 1, Top: 1, Bottom: -1, ExtentX: 1, ExtentY: 1}, q)

	q, ok = CanvasNormalized{}.Quad(geometry.RectFromCorners(pt(400, 300), pt(600, 450)), 800, 600, 5)
	require.True(t, ok)
	assert.InDelta(t, 0, q.Left, 1e-6)
	assert.InDelta(t, 0.5, q.Right, 1e-6)
	assert.InDelta(t, 0, q.Top, 1e-6)
	assert.InDelta(t, -0.5, q.Bottom, 1e-6)

	_, ok = CanvasNormalized{}.Quad(bounds, 0, 600, 1)
	assert.False(t, ok)
	_, ok = CanvasNormalized{}.Quad(bounds, 800, 0, 1)
	assert.False(t, ok)
}

func TestZoomRelativeDerivation(t *testing.T) {
	bounds := geometry.RectFromCorners(pt(500, 100), pt(300, 400))

	q, ok := ZoomRelative{}.Quad(bounds, 800, 600, 2)
	require.True(t, ok)
	assert.Equal(t, Quad{Left: -50, Right: 50, Top: 100, Bottom: -50, ExtentX: 200, ExtentY: 150}, q)

	_, ok = ZoomRelative{}.Quad(bounds, 800, 0, 2)
	assert.False(t, ok)
	_, ok = ZoomRelative{}.Quad(bounds, 800, 600, 0)
	assert.False(t, ok)
}

func TestParseDerivation(t *testing.T) {
	d, err := ParseDerivation("zoom")
	require.NoError(t, err)
	assert.IsType(t, ZoomRelative{}, d)

	d, err = ParseDerivation("")
	require.NoError(t, err)
	assert.IsType(t, CanvasNormalized{}, d)

	_, err = ParseDerivation("ndc")
	assert.Error(t, err)
}
