package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlselect/internal/rlgfx"
	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/philipparndt/stlselect/pkg/analysis"
	"github.com/philipparndt/stlselect/pkg/geometry"
	"github.com/philipparndt/stlselect/pkg/stl"
	"github.com/philipparndt/stlselect/version"
)

var (
	backgroundColor = rl.NewColor(15, 18, 25, 255)
	vertexColor     = rl.NewColor(140, 150, 170, 160)
	selectedColor   = rl.NewColor(255, 200, 40, 255)
	liveSelectColor = rl.NewColor(80, 255, 80, 255)
	liveClearColor  = rl.NewColor(255, 80, 80, 255)
)

// stlToRaylibMesh converts an STL model to a mesh with baked diffuse lighting
func stlToRaylibMesh(model *stl.Model) rl.Mesh {
	vertexCount := len(model.Triangles) * 3
	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(len(model.Triangles)),
	}
	if vertexCount == 0 {
		return mesh
	}

	vertices := make([]float32, 0, vertexCount*3)
	normals := make([]float32, 0, vertexCount*3)
	colors := make([]uint8, 0, vertexCount*4)

	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	for _, triangle := range model.Triangles {
		normal := triangle.CalculateNormal()
		// 30% ambient floor
		light := math.Max(0.3, -normal.Dot(lightDir))
		r := uint8(200 * light * 0.5)
		g := uint8(200 * light * 0.6)
		b := uint8(200 * light)

		for _, v := range triangle.Vertices() {
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			colors = append(colors, r, g, b, 255)
		}
	}

	mesh.Vertices = &vertices[0]
	mesh.Normals = &normals[0]
	mesh.Colors = &colors[0]

	rl.UploadMesh(&mesh, false)
	return mesh
}

// drawVertices marks model vertices in screen space: all of them when
// enabled, the committed selection, and the live drag result on top.
func (app *App) drawVertices() {
	points := app.Model.vertices
	if len(points) == 0 {
		return
	}

	if app.View.showVertices {
		for _, p := range points {
			rl.DrawPixelV(rl.GetWorldToScreen(rlgfx.ToVector3(p), app.Camera.camera), vertexColor)
		}
	}

	for _, i := range app.Selection.vertices.Indices() {
		pos := rl.GetWorldToScreen(rlgfx.ToVector3(points[i]), app.Camera.camera)
		rl.DrawCircleV(pos, 3, selectedColor)
	}

	if rect := app.Interaction.rect; rect.IsDragging() {
		color := liveSelectColor
		if rect.Mode() == selection.Deselect {
			color = liveClearColor
		}
		for _, i := range app.Interaction.live {
			pos := rl.GetWorldToScreen(rlgfx.ToVector3(points[i]), app.Camera.camera)
			rl.DrawCircleLines(int32(pos.X), int32(pos.Y), 5, color)
		}
	}
}

// drawUI draws the status panel and help text
func (app *App) drawUI() {
	fontSize := int32(16)
	lineHeight := int32(20)
	y := int32(10)

	lines := []string{
		fmt.Sprintf("stlselect %s", version.GetVersion()),
		fmt.Sprintf("Vertices: %d  Selected: %d", len(app.Model.vertices), app.Selection.vertices.Len()),
		fmt.Sprintf("Overlay: %s (%s)", app.Overlay.overlay.Strategy().Name(), app.Overlay.capability),
	}
	if app.Selection.vertices.Len() > 0 {
		summary := analysis.Summarize(app.Model.vertices, app.Selection.vertices.Indices())
		lines = append(lines, fmt.Sprintf("Selection size: %s", analysis.FormatVector(summary.Dimensions)))
	}
	if app.Selection.lastMode != selection.Off {
		lines = append(lines, fmt.Sprintf("Last %s: %d changed", app.Selection.lastMode, app.Selection.lastChanged))
	}
	if rect := app.Interaction.rect; rect.IsDragging() {
		b := rect.Bounds()
		lines = append(lines, fmt.Sprintf("Dragging (%s) %.0fx%.0f", rect.Mode(), b.Width(), b.Height()))
	}
	if app.FileWatch.isLoading {
		lines = append(lines, "Reloading...")
	}

	for _, line := range lines {
		rl.DrawText(line, 10, y, fontSize, rl.RayWhite)
		y += lineHeight
	}

	help := "Ctrl+drag select | Ctrl+Alt+drag or Ctrl+right drag deselect | drag orbit | Shift/middle drag pan | wheel zoom | V vertices | F fill | Esc clear | Home reset"
	rl.DrawText(help, 10, int32(rl.GetScreenHeight())-24, 14, rl.Gray)
}
