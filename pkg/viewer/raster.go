package viewer

import (
	"image"
	"image/color"
	"math"

	"github.com/philipparndt/stlselect/internal/selection"
)

// Raster is an RGBA image with a depth buffer
type Raster struct {
	img   *image.RGBA
	depth []float64
}

func NewRaster(width, height int) *Raster {
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
}

// Image returns the backing image
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Clear fills the image with col and resets the depth buffer
func (r *Raster) Clear(col color.RGBA) {
	pix := r.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = col.R, col.G, col.B, col.A
	}
	for i := range r.depth {
		r.depth[i] = math.MaxFloat64
	}
}

// FillTriangle scan-converts a triangle given as (x, y, depth) corners,
// keeping the nearest fragment per pixel.
func (r *Raster) FillTriangle(a, b, c [3]float64, col color.RGBA) {
	v := [3][3]float64{a, b, c}

	// Sort vertices by Y coordinate (top to bottom)
	if v[0][1] > v[1][1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1][1] > v[2][1] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0][1] > v[1][1] {
		v[0], v[1] = v[1], v[0]
	}

	edges := [3][2][3]float64{{v[0], v[1]}, {v[1], v[2]}, {v[0], v[2]}}
	bounds := r.img.Bounds()
	width := bounds.Max.X

	yStart := int(math.Max(0, math.Ceil(v[0][1])))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), v[2][1]))
	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		// collect the two edge crossings of this scanline
		var xs, zs [2]float64
		n := 0
		for _, e := range edges {
			p, q := e[0], e[1]
			if p[1] == q[1] || fy < p[1] || fy > q[1] || n == 2 {
				continue
			}
			t := (fy - p[1]) / (q[1] - p[1])
			xs[n] = p[0] + t*(q[0]-p[0])
			zs[n] = p[2] + t*(q[2]-p[2])
			n++
		}
		if n < 2 {
			continue
		}
		if xs[0] > xs[1] {
			xs[0], xs[1] = xs[1], xs[0]
			zs[0], zs[1] = zs[1], zs[0]
		}

		xFrom := int(math.Max(0, math.Ceil(xs[0])))
		xTo := int(math.Min(float64(width-1), xs[1]))
		for x := xFrom; x <= xTo; x++ {
			t := 0.0
			if xs[1] != xs[0] {
				t = (float64(x) - xs[0]) / (xs[1] - xs[0])
			}
			z := zs[0] + t*(zs[1]-zs[0])

			// smaller depth is closer
			idx := y*width + x
			if z < r.depth[idx] {
				r.depth[idx] = z
				r.img.SetRGBA(x, y, col)
			}
		}
	}
}

// Line draws a line with Bresenham's algorithm, ignoring depth
func (r *Raster) Line(x1, y1, x2, y2 int, col color.RGBA) {
	bounds := r.img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if image.Pt(x1, y1).In(bounds) {
			r.img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Dot draws a filled square marker centred on (x, y)
func (r *Raster) Dot(x, y, radius int, col color.RGBA) {
	bounds := r.img.Bounds()
	for py := y - radius; py <= y+radius; py++ {
		for px := x - radius; px <= x+radius; px++ {
			if image.Pt(px, py).In(bounds) {
				r.img.SetRGBA(px, py, col)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ImageDevice allocates overlay buffers that draw into a Raster
type ImageDevice struct {
	Raster  *Raster
	Shaders *Shaders
}

func (d ImageDevice) NewBuffer() selection.Buffer {
	return &imageBuffer{device: d}
}

type imageBuffer struct {
	device   ImageDevice
	geometry selection.Geometry
	color    selection.Color
}

func (b *imageBuffer) Upload(g selection.Geometry) { b.geometry = g }
func (b *imageBuffer) SetColor(c selection.Color)  { b.color = c }
func (b *imageBuffer) Release()                    { b.geometry = selection.Geometry{} }

func (b *imageBuffer) Render() {
	var active *softShader
	if b.device.Shaders != nil {
		active = b.device.Shaders.active
	}

	c := b.color
	if active != nil {
		if u, ok := active.uniforms["uniform_color"]; ok {
			c = selection.Color{R: u[0], G: u[1], B: u[2], A: u[3]}
		}
	}
	nrgba := c.NRGBA()
	col := color.RGBA{R: nrgba.R, G: nrgba.G, B: nrgba.B, A: nrgba.A}

	bounds := b.device.Raster.img.Bounds()
	for _, s := range segments(b.geometry, active, bounds.Dx(), bounds.Dy()) {
		b.device.Raster.Line(round(s.x1), round(s.y1), round(s.x2), round(s.y2), col)
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
