package selection

import (
	"math"

	"github.com/philipparndt/stlselect/pkg/geometry"
	"github.com/pkg/errors"
)

// Quad is the selection rectangle in render-target space. Y grows upwards,
// so Top >= Bottom. ExtentX and ExtentY are the half sizes of the visible
// render target in the same units, so the canvas spans
// [-ExtentX, ExtentX] x [-ExtentY, ExtentY].
type Quad struct {
	Left, Right, Top, Bottom float32
	ExtentX, ExtentY         float32
}

func (q Quad) Width() float32  { return q.Right - q.Left }
func (q Quad) Height() float32 { return q.Top - q.Bottom }

// Derivation converts pixel bounds into render-target coordinates. It
// returns false when the conversion is undefined, for example on a zero
// sized canvas.
type Derivation interface {
	Quad(bounds geometry.Rect, width, height int, zoom float64) (Quad, bool)
}

// CanvasNormalized maps pixels straight into [-1, 1] normalised device
// coordinates, flipping Y. The zoom factor is ignored.
type CanvasNormalized struct{}

func (CanvasNormalized) Quad(bounds geometry.Rect, width, height int, _ float64) (Quad, bool) {
	if width <= 0 || height <= 0 {
		return Quad{}, false
	}

	invWidth := 1 / float64(width)
	invHeight := 1 / float64(height)
	return Quad{
		Left:    float32(2 * (bounds.Min.X*invWidth - 0.5)),
		Right:   float32(2 * (bounds.Max.X*invWidth - 0.5)),
		Top:     float32(-2 * (bounds.Min.Y*invHeight - 0.5)),
		Bottom:  float32(-2 * (bounds.Max.Y*invHeight - 0.5)),
		ExtentX: 1,
		ExtentY: 1,
	}, true
}

// ZoomRelative recentres pixels on the canvas centre, flips Y and divides by
// the camera zoom, giving coordinates in the linear units of an
// orthographic overlay camera.
type ZoomRelative struct{}

func (ZoomRelative) Quad(bounds geometry.Rect, width, height int, zoom float64) (Quad, bool) {
	halfWidth := 0.5 * float64(width)
	halfHeight := 0.5 * float64(height)
	if halfWidth <= 0 || halfHeight <= 0 || zoom <= 0 || math.IsInf(zoom, 0) || math.IsNaN(zoom) {
		return Quad{}, false
	}

	invZoom := 1 / zoom
	return Quad{
		Left:    float32((bounds.Min.X - halfWidth) * invZoom),
		Right:   float32((bounds.Max.X - halfWidth) * invZoom),
		Top:     float32((halfHeight - bounds.Min.Y) * invZoom),
		Bottom:  float32((halfHeight - bounds.Max.Y) * invZoom),
		ExtentX: float32(halfWidth * invZoom),
		ExtentY: float32(halfHeight * invZoom),
	}, true
}

// ParseDerivation accepts "canvas" and "zoom"
func ParseDerivation(name string) (Derivation, error) {
	switch name {
	case "canvas", "":
		return CanvasNormalized{}, nil
	case "zoom":
		return ZoomRelative{}, nil
	}
	return nil, errors.Errorf("unknown derivation %q (expected canvas or zoom)", name)
}
