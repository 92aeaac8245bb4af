package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangle = `solid t
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
endsolid t
`

func TestLoadSTL(t *testing.T) {
	log, _ := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "t.stl")
	require.NoError(t, os.WriteFile(path, []byte(triangle), 0o644))

	model, src, err := Load(path, log)
	require.NoError(t, err)

	assert.Equal(t, 1, model.TriangleCount())
	assert.False(t, src.IsOpenSCAD)
	assert.Equal(t, path, src.STLPath)

	watch, err := src.WatchList()
	require.NoError(t, err)
	assert.Equal(t, []string{path}, watch)
}

func TestLoadUnsupported(t *testing.T) {
	_, _, err := Load("model.obj", logrus.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".obj")
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.stl"), logrus.New())
	assert.Error(t, err)
}
