package viewer

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/philipparndt/stlselect/pkg/geometry"
	"github.com/philipparndt/stlselect/pkg/stl"
	"github.com/pkg/errors"
)

var (
	snapshotBackground = color.RGBA{15, 18, 25, 255}
	snapshotSelected   = color.RGBA{255, 200, 40, 255}
)

// SnapshotOptions describe what to draw on top of the shaded model
type SnapshotOptions struct {
	Width, Height int
	// Vertices are the points Selected indexes into
	Vertices []geometry.Vector3
	Selected []int
	// Rect is drawn when it is dragging
	Rect       *selection.Rectangle
	Style      selection.Style
	Strategy   selection.Strategy
	Derivation selection.Derivation
}

// Snapshot renders the model with flat shading, marks the selected vertices
// and draws the selection rectangle through the software overlay.
func Snapshot(model *stl.Model, camera *Camera, opts SnapshotOptions) *image.RGBA {
	raster := NewRaster(opts.Width, opts.Height)
	raster.Clear(snapshotBackground)

	proj := Projection{Camera: camera, Width: opts.Width, Height: opts.Height}
	w, h := float64(opts.Width), float64(opts.Height)
	forward := camera.Forward()

	for _, t := range model.Triangles {
		var corners [3][3]float64
		visible := true
		for i, v := range t.Vertices() {
			x, y, depth := camera.Project(v, w, h)
			if depth <= 0 {
				visible = false
				break
			}
			corners[i] = [3]float64{x, y, depth}
		}
		if !visible {
			continue
		}

		light := 0.3 + 0.7*math.Abs(t.CalculateNormal().Dot(forward))
		shade := color.RGBA{uint8(100 * light), uint8(120 * light), uint8(200 * light), 255}
		raster.FillTriangle(corners[0], corners[1], corners[2], shade)
	}

	if len(opts.Selected) > 0 {
		points := proj.Project(opts.Vertices)
		for _, i := range opts.Selected {
			if i < 0 || i >= len(points) || math.IsNaN(points[i].X) {
				continue
			}
			raster.Dot(round(points[i].X), round(points[i].Y), 2, snapshotSelected)
		}
	}

	if opts.Rect != nil && opts.Rect.IsDragging() {
		shaders := NewShaders()
		overlay := selection.NewOverlay(selection.Deps{
			Canvas:  proj,
			Zoom:    proj,
			Shaders: shaders,
			Device:  ImageDevice{Raster: raster, Shaders: shaders},
		}, opts.Style, opts.Strategy, opts.Derivation)
		overlay.Render(opts.Rect)
		overlay.Release()
	}

	return raster.Image()
}

// WritePNG encodes img to w
func WritePNG(w io.Writer, img image.Image) error {
	return errors.Wrap(png.Encode(w, img), "failed to encode PNG")
}
