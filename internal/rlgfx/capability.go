package rlgfx

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlselect/internal/selection"
)

// rlgl graphics API identifiers as returned by rl.GetVersion
const (
	glVersion11   = 1
	glVersion21   = 2
	glVersion33   = 3
	glVersion43   = 4
	glVersionES20 = 5
	glVersionES30 = 6
)

// DetectCapability reports whether the active GL context can run shaders.
// It must be called after the window is created.
func DetectCapability() selection.Capability {
	if rl.GetVersion() == glVersion11 {
		return selection.FixedFunction
	}
	return selection.Programmable
}

func glslHeader() string {
	switch rl.GetVersion() {
	case glVersion21:
		return "#version 120\n"
	case glVersionES20:
		return "#version 100\nprecision mediump float;\n"
	case glVersionES30:
		return "#version 300 es\nprecision mediump float;\n"
	default:
		return "#version 330\n"
	}
}
