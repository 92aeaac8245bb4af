package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/philipparndt/stlselect/pkg/analysis"
	"github.com/philipparndt/stlselect/pkg/geometry"
	"github.com/philipparndt/stlselect/pkg/loader"
	"github.com/philipparndt/stlselect/pkg/stl"
	"github.com/philipparndt/stlselect/pkg/viewer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var selectFlags struct {
	width    int
	height   int
	rects    []string
	deselect []string
	rotateX  float64
	rotateY  float64
	zoom     float64
	json     bool
	png      string
}

var selectCmd = &cobra.Command{
	Use:   "select <file>",
	Short: "Select vertices with rectangles without opening a window",
	Long: `Frame the model with the default camera on a virtual canvas and apply
screen-space rectangles to its vertices. Every --rect is applied as a
selection first, then every --deselect removes vertices again.

  stlselect select part.stl --rect 100,100,400,300 --deselect 200,150,250,200`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	f := selectCmd.Flags()
	f.IntVar(&selectFlags.width, "width", 800, "canvas width in pixels")
	f.IntVar(&selectFlags.height, "height", 600, "canvas height in pixels")
	f.StringArrayVar(&selectFlags.rects, "rect", nil, "select rectangle x1,y1,x2,y2 (repeatable)")
	f.StringArrayVar(&selectFlags.deselect, "deselect", nil, "deselect rectangle x1,y1,x2,y2 (repeatable)")
	f.Float64Var(&selectFlags.rotateX, "rotate-x", 0, "camera elevation in degrees")
	f.Float64Var(&selectFlags.rotateY, "rotate-y", 0, "camera azimuth in degrees")
	f.Float64Var(&selectFlags.zoom, "zoom", 1, "zoom factor relative to the framed view")
	f.BoolVar(&selectFlags.json, "json", false, "print JSON")
	f.StringVar(&selectFlags.png, "png", "", "write a snapshot with the selection and last rectangle")
	rootCmd.AddCommand(selectCmd)
}

// rectArg is one rectangle from the command line
type rectArg struct {
	mode  selection.Mode
	start geometry.Vector2
	end   geometry.Vector2
}

// parseRect reads "x1,y1,x2,y2" in pixels
func parseRect(value string, mode selection.Mode) (rectArg, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return rectArg{}, errors.Errorf("invalid rectangle %q (expected x1,y1,x2,y2)", value)
	}

	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return rectArg{}, errors.Wrapf(err, "invalid rectangle %q", value)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return rectArg{}, errors.Errorf("invalid rectangle %q", value)
		}
		v[i] = f
	}

	return rectArg{
		mode:  mode,
		start: geometry.NewVector2(v[0], v[1]),
		end:   geometry.NewVector2(v[2], v[3]),
	}, nil
}

func parseRects(selects, deselects []string) ([]rectArg, error) {
	args := make([]rectArg, 0, len(selects)+len(deselects))
	for _, group := range []struct {
		values []string
		mode   selection.Mode
	}{{selects, selection.Select}, {deselects, selection.Deselect}} {
		for _, value := range group.values {
			arg, err := parseRect(value, group.mode)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	return args, nil
}

// rectResult reports what one rectangle did
type rectResult struct {
	Mode    string `json:"mode"`
	Hits    int    `json:"hits"`
	Changed int    `json:"changed"`
}

// applyRects drags every rectangle over the points the way the viewer does
// on pointer up: evaluate, stop, apply.
func applyRects(points []geometry.Vector3, proj selection.Projector, policy selection.ContainsPolicy, args []rectArg) (*selection.VertexSet, []rectResult) {
	set := selection.NewVertexSet()
	rect := selection.NewRectangle(policy)
	results := make([]rectResult, 0, len(args))

	for _, arg := range args {
		rect.StartDragging(arg.start, arg.mode)
		rect.Dragging(arg.end)
		hits := rect.Contains(points, proj)
		rect.StopDragging()

		results = append(results, rectResult{
			Mode:    arg.mode.String(),
			Hits:    len(hits),
			Changed: set.Apply(arg.mode, hits),
		})
	}
	return set, results
}

type selectedVertex struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

type selectReport struct {
	File       string           `json:"file"`
	Vertices   int              `json:"vertices"`
	Triangles  int              `json:"triangles"`
	Rectangles []rectResult     `json:"rectangles"`
	Selected   []selectedVertex `json:"selected"`
	Size       [3]float64       `json:"size"`
	Centroid   [3]float64       `json:"centroid"`

	summary analysis.Summary
}

func newReport(file string, model *stl.Model, points []geometry.Vector3, set *selection.VertexSet, results []rectResult) selectReport {
	report := selectReport{
		File:       file,
		Vertices:   len(points),
		Triangles:  model.TriangleCount(),
		Rectangles: results,
		Selected:   make([]selectedVertex, 0, set.Len()),
		summary:    analysis.Summarize(points, set.Indices()),
	}
	d, c := report.summary.Dimensions, report.summary.Centroid
	report.Size = [3]float64{d.X, d.Y, d.Z}
	report.Centroid = [3]float64{c.X, c.Y, c.Z}
	for _, i := range set.Indices() {
		p := points[i]
		report.Selected = append(report.Selected, selectedVertex{Index: i, X: p.X, Y: p.Y, Z: p.Z})
	}
	return report
}

func (r selectReport) writeText(w io.Writer) {
	fmt.Fprintf(w, "%s: %d vertices, %d triangles\n", r.File, r.Vertices, r.Triangles)
	for i, rect := range r.Rectangles {
		fmt.Fprintf(w, "rect %d (%s): %d hits, %d changed\n", i+1, rect.Mode, rect.Hits, rect.Changed)
	}
	fmt.Fprintf(w, "selected %d vertices\n", len(r.Selected))
	if r.summary.Count > 0 {
		fmt.Fprintf(w, "size %s, centroid %s\n", analysis.FormatVector(r.summary.Dimensions), analysis.FormatVector(r.summary.Centroid))
	}
	for _, v := range r.Selected {
		fmt.Fprintf(w, "  %6d  (%.6f, %.6f, %.6f)\n", v.Index, v.X, v.Y, v.Z)
	}
}

func runSelect(cmd *cobra.Command, args []string) error {
	if selectFlags.width <= 0 || selectFlags.height <= 0 {
		return errors.Errorf("invalid canvas size %dx%d", selectFlags.width, selectFlags.height)
	}
	if selectFlags.zoom <= 0 {
		return errors.Errorf("invalid zoom %v", selectFlags.zoom)
	}
	rects, err := parseRects(selectFlags.rects, selectFlags.deselect)
	if err != nil {
		return err
	}

	log := settings.log.WithField("component", "select")
	model, source, err := loader.Load(args[0], log)
	if err != nil {
		return err
	}
	defer source.Cleanup()

	cam := viewer.NewCamera(model.BoundingBox())
	cam.Distance = cam.BaseDistance / selectFlags.zoom
	cam.Rotate(selectFlags.rotateX*math.Pi/180, selectFlags.rotateY*math.Pi/180)
	proj := viewer.Projection{Camera: cam, Width: selectFlags.width, Height: selectFlags.height}

	points := model.Vertices()
	set, results := applyRects(points, proj, settings.cfg.Policy(), rects)
	log.WithField("selected", set.Len()).Info("selection finished")

	if selectFlags.png != "" {
		if err := writeSnapshot(selectFlags.png, model, cam, points, set, rects); err != nil {
			return err
		}
	}

	report := newReport(args[0], model, points, set, results)
	if selectFlags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(report), "failed to write JSON")
	}
	report.writeText(cmd.OutOrStdout())
	return nil
}

func writeSnapshot(path string, model *stl.Model, cam *viewer.Camera, points []geometry.Vector3, set *selection.VertexSet, rects []rectArg) error {
	opts := viewer.SnapshotOptions{
		Width:      selectFlags.width,
		Height:     selectFlags.height,
		Vertices:   points,
		Selected:   set.Indices(),
		Style:      settings.cfg.Style(),
		Derivation: settings.cfg.Derivation(),
	}
	if settings.cfg.Overlay.Renderer != "solid" {
		opts.Strategy = selection.DashedStrategy{}
	}
	if len(rects) > 0 {
		last := rects[len(rects)-1]
		opts.Rect = selection.NewRectangle(selection.QueryOnly)
		opts.Rect.StartDragging(last.start, last.mode)
		opts.Rect.Dragging(last.end)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create snapshot")
	}
	defer f.Close()

	return viewer.WritePNG(f, viewer.Snapshot(model, cam, opts))
}
