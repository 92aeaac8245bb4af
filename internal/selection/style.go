package selection

import "image/color"

// Color is a linear RGBA colour in the 0..1 range
type Color struct {
	R, G, B, A float32
}

// Vec4 returns the colour as a shader uniform
func (c Color) Vec4() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// NRGBA converts to an 8 bit colour
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// Style holds the overlay appearance. Dash and gap sizes are fractions of
// the render target half extent, not pixels.
type Style struct {
	SelectColor   Color
	DeselectColor Color
	DashSize      float32
	GapSize       float32
	LineWidth     float32
}

// DefaultStyle is a green select / red deselect dashed outline
func DefaultStyle() Style {
	return Style{
		SelectColor:   Color{R: 0.3, G: 1.0, B: 0.3, A: 1.0},
		DeselectColor: Color{R: 1.0, G: 0.3, B: 0.3, A: 1.0},
		DashSize:      0.01,
		GapSize:       0.0075,
		LineWidth:     1.5,
	}
}

// ColorFor returns the outline colour for a drag mode
func (s Style) ColorFor(mode Mode) Color {
	if mode == Deselect {
		return s.DeselectColor
	}
	return s.SelectColor
}
