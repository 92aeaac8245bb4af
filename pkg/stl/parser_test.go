package stl

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/stlselect/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiSquare = `solid square
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 1 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid square
`

func TestParseASCII(t *testing.T) {
	model, err := ParseReader(strings.NewReader(asciiSquare))
	require.NoError(t, err)

	assert.Equal(t, "square", model.Name)
	assert.Equal(t, 2, model.TriangleCount())
	assert.Equal(t, []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(1, 1, 0),
		geometry.NewVector3(0, 1, 0),
	}, model.Vertices())
}

func TestParseASCIIInvalidCoordinate(t *testing.T) {
	broken := strings.Replace(asciiSquare, "vertex 1 0 0", "vertex 1 x 0", 1)

	_, err := ParseReader(strings.NewReader(broken))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 5")
}

func TestParseBinary(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, "binary part")
	buf.Write(header)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(1)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, binaryFacet{
		Normal: [3]float32{0, 0, 1},
		V1:     [3]float32{0, 0, 0},
		V2:     [3]float32{2, 0, 0},
		V3:     [3]float32{0, 2, 0},
	}))

	path := filepath.Join(t.TempDir(), "part.stl")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	model, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "binary part", model.Name)
	assert.Len(t, model.Vertices(), 3)
	bbox := model.BoundingBox()
	assert.Equal(t, geometry.NewVector3(2, 2, 0), bbox.Size())
}

func TestParseBinaryTruncated(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(3)))

	_, err := ParseReader(&buf)
	assert.Error(t, err)
}

func TestVerticesInvalidatedByAddTriangle(t *testing.T) {
	model := NewModel("grow")
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0)))
	require.Len(t, model.Vertices(), 3)

	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{},
		geometry.NewVector3(1, 0, 0), geometry.NewVector3(1, 1, 0), geometry.NewVector3(0, 1, 0)))
	assert.Len(t, model.Vertices(), 4)
}
