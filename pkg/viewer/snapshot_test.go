package viewer

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/philipparndt/stlselect/pkg/geometry"
	"github.com/philipparndt/stlselect/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draggingRect(x1, y1, x2, y2 float64, mode selection.Mode) *selection.Rectangle {
	rect := selection.NewRectangle(selection.QueryOnly)
	rect.StartDragging(geometry.NewVector2(x1, y1), mode)
	rect.Dragging(geometry.NewVector2(x2, y2))
	return rect
}

func TestSnapshotDrawsSolidOverlay(t *testing.T) {
	model := stl.NewModel("empty")
	img := Snapshot(model, NewCamera(model.BoundingBox()), SnapshotOptions{
		Width:  100,
		Height: 60,
		Rect:   draggingRect(50, 30, 10, 10, selection.Select),
		Style:  selection.DefaultStyle(),
	})

	green := color.RGBA{77, 255, 77, 255}
	assert.Equal(t, green, img.RGBAAt(30, 10))
	assert.Equal(t, green, img.RGBAAt(10, 20))
	assert.Equal(t, green, img.RGBAAt(50, 30))
	assert.Equal(t, snapshotBackground, img.RGBAAt(30, 20))
}

func TestSnapshotZoomRelativeLandsOnSamePixels(t *testing.T) {
	model := stl.NewModel("empty")
	cam := NewCamera(model.BoundingBox())
	cam.Dolly(-0.5)

	img := Snapshot(model, cam, SnapshotOptions{
		Width:      100,
		Height:     60,
		Rect:       draggingRect(10, 10, 50, 30, selection.Select),
		Style:      selection.DefaultStyle(),
		Derivation: selection.ZoomRelative{},
	})

	green := color.RGBA{77, 255, 77, 255}
	assert.Equal(t, green, img.RGBAAt(30, 10))
	assert.Equal(t, green, img.RGBAAt(10, 20))
	assert.Equal(t, snapshotBackground, img.RGBAAt(30, 20))
}

func TestSnapshotDrawsDashedOverlay(t *testing.T) {
	style := selection.DefaultStyle()
	style.DashSize = 0.2
	style.GapSize = 0.2

	model := stl.NewModel("empty")
	img := Snapshot(model, NewCamera(model.BoundingBox()), SnapshotOptions{
		Width:    100,
		Height:   100,
		Rect:     draggingRect(20, 20, 80, 80, selection.Deselect),
		Style:    style,
		Strategy: selection.DashedStrategy{},
	})

	// the bottom edge runs from x=20 with 10 pixel dashes and gaps
	red := color.RGBA{255, 77, 77, 255}
	assert.Equal(t, red, img.RGBAAt(25, 80))
	assert.Equal(t, snapshotBackground, img.RGBAAt(35, 80))
	assert.Equal(t, red, img.RGBAAt(45, 80))
}

func TestSnapshotSkipsIdleRectangle(t *testing.T) {
	model := stl.NewModel("empty")
	img := Snapshot(model, NewCamera(model.BoundingBox()), SnapshotOptions{
		Width:  20,
		Height: 20,
		Rect:   selection.NewRectangle(selection.QueryOnly),
	})

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			require.Equal(t, snapshotBackground, img.RGBAAt(x, y))
		}
	}
}

func TestSnapshotShadesModelAndMarksSelection(t *testing.T) {
	model := stl.NewModel("tri")
	model.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(-1, -1, 0),
		geometry.NewVector3(1, -1, 0),
		geometry.NewVector3(0, 1, 0),
	))
	cam := NewCamera(model.BoundingBox())
	vertices := model.Vertices()

	img := Snapshot(model, cam, SnapshotOptions{
		Width:    100,
		Height:   100,
		Vertices: vertices,
		Selected: []int{2},
	})

	assert.NotEqual(t, snapshotBackground, img.RGBAAt(50, 55), "triangle interior is shaded")
	assert.Equal(t, snapshotBackground, img.RGBAAt(2, 2))

	x, y, _ := cam.Project(vertices[2], 100, 100)
	assert.Equal(t, snapshotSelected, img.RGBAAt(round(x), round(y)))

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
