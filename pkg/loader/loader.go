// Package loader reads STL files directly and OpenSCAD files through the
// openscad binary.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/stlselect/pkg/openscad"
	"github.com/philipparndt/stlselect/pkg/stl"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Source describes where a loaded model came from
type Source struct {
	Path       string
	STLPath    string
	IsOpenSCAD bool
}

// Cleanup removes the temporary STL rendered from an OpenSCAD source
func (s Source) Cleanup() {
	if s.IsOpenSCAD && s.STLPath != "" && s.STLPath != s.Path {
		os.Remove(s.STLPath)
	}
}

// WatchList returns the files whose modification should trigger a reload
func (s Source) WatchList() ([]string, error) {
	if !s.IsOpenSCAD {
		return []string{s.Path}, nil
	}
	return openscad.NewRenderer(filepath.Dir(s.Path)).ResolveDependencies(s.Path)
}

// Load parses path, rendering it first when it is an OpenSCAD file
func Load(path string, log logrus.FieldLogger) (*stl.Model, Source, error) {
	src := Source{Path: path}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, src, errors.Wrap(err, "failed to parse STL file")
		}
		src.STLPath = path
		return model, src, nil

	case ".scad":
		src.IsOpenSCAD = true
		src.STLPath = filepath.Join(os.TempDir(), fmt.Sprintf("stlselect_%d.stl", time.Now().UnixNano()))

		log.WithField("file", path).Info("rendering OpenSCAD file")
		if err := openscad.NewRenderer(filepath.Dir(path)).RenderToSTL(path, src.STLPath); err != nil {
			return nil, src, errors.Wrap(err, "failed to render OpenSCAD file")
		}

		model, err := stl.Parse(src.STLPath)
		if err != nil {
			src.Cleanup()
			return nil, src, errors.Wrap(err, "failed to parse rendered STL")
		}
		return model, src, nil

	default:
		return nil, src, errors.Errorf("unsupported file type: %s (expected .stl or .scad)", ext)
	}
}
