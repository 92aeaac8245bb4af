package viewer

import (
	"testing"

	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/philipparndt/stlselect/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashIntervals(t *testing.T) {
	got := dashIntervals(0, 0.035, 0.01, 0.0075)
	require.Len(t, got, 2)
	assert.InDelta(t, 0, got[0][0], 1e-9)
	assert.InDelta(t, 0.01/0.035, got[0][1], 1e-9)
	assert.InDelta(t, 0.0175/0.035, got[1][0], 1e-9)
	assert.InDelta(t, 0.0275/0.035, got[1][1], 1e-9)
}

func TestDashIntervalsContinueAcrossSegments(t *testing.T) {
	// the segment starts half way through a gap
	got := dashIntervals(1.5, 3, 1, 1)
	require.Len(t, got, 1)
	assert.InDelta(t, (2-1.5)/1.5, got[0][0], 1e-9)
	assert.InDelta(t, 1, got[0][1], 1e-9)
}

func TestDashIntervalsWithoutGap(t *testing.T) {
	assert.Equal(t, [][2]float64{{0, 1}}, dashIntervals(0, 1, 0.1, 0))
	assert.Equal(t, [][2]float64{{0, 1}}, dashIntervals(1, 1, 0.1, 0.1))
}

func TestSegmentsSolidLoop(t *testing.T) {
	g := selection.SolidLoopStrategy{}.Build(selection.Quad{Left: -1, Right: 1, Top: 1, Bottom: -1})

	segs := segments(g, nil, 100, 50)
	require.Len(t, segs, 4)
	assert.Equal(t, segment{0, 50, 100, 50}, segs[0])
	assert.Equal(t, segment{0, 0, 0, 50}, segs[3])
}

func TestSegmentsIgnoreDashWithoutProgram(t *testing.T) {
	g := selection.DashedStrategy{}.Build(selection.Quad{Left: -1, Right: 1, Top: 1, Bottom: -1})
	assert.Len(t, segments(g, nil, 100, 100), 4)

	shaders := NewShaders()
	s, ok := shaders.Shader(selection.ShaderDashedLines)
	require.True(t, ok)
	s.SetFloat("dash_size", 0.5)
	s.SetFloat("gap_size", 0.5)
	s.Begin()
	defer s.End()

	// 8 units of perimeter, one 0.5 dash per unit
	assert.Len(t, segments(g, shaders.active, 100, 100), 8)
}

func TestDashCountIndependentOfDerivationAndZoom(t *testing.T) {
	shaders := NewShaders()
	s, ok := shaders.Shader(selection.ShaderDashedLines)
	require.True(t, ok)
	selection.DashedStrategy{}.Configure(s, selection.DefaultStyle())
	s.Begin()
	defer s.End()

	bounds := geometry.RectFromCorners(geometry.NewVector2(200, 150), geometry.NewVector2(600, 450))
	count := func(d selection.Derivation, zoom float64) []segment {
		q, ok := d.Quad(bounds, 800, 600, zoom)
		require.True(t, ok)
		return segments(selection.DashedStrategy{}.Build(q), shaders.active, 800, 600)
	}

	want := count(selection.CanvasNormalized{}, 1)
	require.NotEmpty(t, want)
	// 0.01 of the 400 pixel half width
	assert.InDelta(t, 4, want[0].x2-want[0].x1, 1e-3)

	for _, zoom := range []float64{1, 0.1} {
		got := count(selection.ZoomRelative{}, zoom)
		assert.Len(t, got, len(want), "zoom %v", zoom)
		assert.InDelta(t, 4, got[0].x2-got[0].x1, 1e-3, "zoom %v", zoom)
	}
}

func TestShadersUnknownName(t *testing.T) {
	_, ok := NewShaders().Shader("nope")
	assert.False(t, ok)
}
