package rlgfx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecializeModernGLSL(t *testing.T) {
	vs := specialize("#version 330\n", dashedVertexSource, true)
	fs := specialize("#version 330\n", dashedFragmentSource, false)

	assert.True(t, strings.HasPrefix(vs, "#version 330\n"))
	assert.Contains(t, vs, "in vec3 vertexPosition;")
	assert.Contains(t, vs, "out float arcLength;")
	assert.Contains(t, fs, "in float arcLength;")
	assert.Contains(t, fs, "out vec4 finalColor;")
	assert.Contains(t, fs, "finalColor = uniform_color;")
	assert.NotContains(t, fs, "FRAG")
}

func TestSpecializeLegacyGLSL(t *testing.T) {
	header := "#version 100\nprecision mediump float;\n"
	vs := specialize(header, dashedVertexSource, true)
	fs := specialize(header, dashedFragmentSource, false)

	assert.Contains(t, vs, "attribute vec3 vertexPosition;")
	assert.Contains(t, vs, "varying float arcLength;")
	assert.Contains(t, fs, "varying float arcLength;")
	assert.Contains(t, fs, "gl_FragColor = uniform_color;")
	assert.NotContains(t, fs, "finalColor")
}
