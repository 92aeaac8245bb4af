package viewer

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/philipparndt/stlselect/pkg/geometry"
	"github.com/philipparndt/stlselect/pkg/stl"
)

// RendererOptions configure the selection behaviour of a ModelRenderer
type RendererOptions struct {
	Policy     selection.ContainsPolicy
	Style      selection.Style
	Strategy   selection.Strategy
	Derivation selection.Derivation
}

// ModelRenderer renders an STL model as a wireframe and lets the user drag
// selection rectangles over its vertices.
type ModelRenderer struct {
	widget.BaseWidget
	model    *stl.Model
	vertices []geometry.Vector3
	camera   *Camera

	lines        []fyne.CanvasObject
	markers      []fyne.CanvasObject
	overlayLines []fyne.CanvasObject

	rect     *selection.Rectangle
	selected *selection.VertexSet
	overlay  *selection.Overlay
	device   *lineDevice
	mode     selection.Mode // Off drags rotate the camera

	width  float64
	height float64

	onSelectionChange func(selected, changed int)
}

// NewModelRenderer creates a new 3D model renderer
func NewModelRenderer(model *stl.Model, opts RendererOptions) *ModelRenderer {
	r := &ModelRenderer{
		model:    model,
		vertices: model.Vertices(),
		camera:   NewCamera(model.BoundingBox()),
		rect:     selection.NewRectangle(opts.Policy),
		selected: selection.NewVertexSet(),
	}

	shaders := NewShaders()
	r.device = &lineDevice{shaders: shaders, target: rendererCanvas{r}}
	r.overlay = selection.NewOverlay(selection.Deps{
		Canvas:  r.device.target,
		Zoom:    r.camera,
		Shaders: shaders,
		Device:  r.device,
	}, opts.Style, opts.Strategy, opts.Derivation)

	r.ExtendBaseWidget(r)
	return r
}

// SetOnSelectionChange sets the callback run after every applied rectangle
func (r *ModelRenderer) SetOnSelectionChange(callback func(selected, changed int)) {
	r.onSelectionChange = callback
}

// SetMode chooses what a drag does: Select, Deselect, or Off to rotate
func (r *ModelRenderer) SetMode(mode selection.Mode) {
	r.mode = mode
}

// Selected returns the selected vertex indices, ascending
func (r *ModelRenderer) Selected() []int {
	return r.selected.Indices()
}

// Vertices returns the unique model vertices the selection indexes into
func (r *ModelRenderer) Vertices() []geometry.Vector3 {
	return r.vertices
}

// ClearSelection drops every selected vertex
func (r *ModelRenderer) ClearSelection() {
	r.selected.Clear()
	r.updateMarkers()
	r.Refresh()
}

func (r *ModelRenderer) projection() Projection {
	return Projection{Camera: r.camera, Width: int(r.width), Height: int(r.height)}
}

// Render updates the 3D view
func (r *ModelRenderer) Render(width, height float64) {
	r.width = width
	r.height = height

	r.lines = r.lines[:0]
	for _, triangle := range r.model.Triangles {
		vertices := triangle.Vertices()
		for i := 0; i < 3; i++ {
			x1, y1, z1 := r.camera.Project(vertices[i], width, height)
			x2, y2, z2 := r.camera.Project(vertices[(i+1)%3], width, height)
			if z1 <= 0 || z2 <= 0 {
				continue
			}

			// Simple depth-based color
			avgZ := (z1 + z2) / 2
			brightness := uint8(math.Max(50, math.Min(255, 100+avgZ*5)))

			line := canvas.NewLine(color.RGBA{brightness, brightness, brightness, 255})
			line.StrokeWidth = 1
			line.Position1 = fyne.NewPos(float32(x1), float32(y1))
			line.Position2 = fyne.NewPos(float32(x2), float32(y2))
			r.lines = append(r.lines, line)
		}
	}

	r.updateMarkers()
	r.updateOverlay()
	r.Refresh()
}

// updateMarkers places a dot on every selected vertex
func (r *ModelRenderer) updateMarkers() {
	r.markers = r.markers[:0]
	indices := r.selected.Indices()
	if len(indices) == 0 {
		return
	}

	points := r.projection().Project(r.vertices)
	for _, i := range indices {
		p := points[i]
		if math.IsNaN(p.X) {
			continue
		}
		marker := canvas.NewCircle(color.RGBA{255, 200, 40, 255})
		size := float32(6)
		marker.Resize(fyne.NewSize(size, size))
		marker.Move(fyne.NewPos(float32(p.X)-size/2, float32(p.Y)-size/2))
		r.markers = append(r.markers, marker)
	}
}

// updateOverlay redraws the rectangle through the software line device
func (r *ModelRenderer) updateOverlay() {
	r.device.drawn = r.device.drawn[:0]
	r.overlay.Render(r.rect)
	r.overlayLines = append(r.overlayLines[:0], r.device.drawn...)
}

// Dragged rotates the camera, or drags the selection rectangle when a
// selection mode is set.
func (r *ModelRenderer) Dragged(event *fyne.DragEvent) {
	if r.mode != selection.Off {
		if !r.rect.IsDragging() {
			start := event.Position.Subtract(event.Dragged)
			r.rect.StartDragging(geometry.NewVector2(float64(start.X), float64(start.Y)), r.mode)
		}
		r.rect.Dragging(geometry.NewVector2(float64(event.Position.X), float64(event.Position.Y)))
		r.updateOverlay()
		r.Refresh()
		return
	}

	r.camera.Rotate(float64(-event.Dragged.DY)*0.01, float64(event.Dragged.DX)*0.01)
	r.Render(r.width, r.height)
}

// DragEnd applies a finished selection rectangle
func (r *ModelRenderer) DragEnd() {
	if !r.rect.IsDragging() {
		return
	}

	mode := r.rect.Mode()
	indices := r.rect.Contains(r.vertices, r.projection())
	r.rect.StopDragging()
	changed := r.selected.Apply(mode, indices)

	r.updateMarkers()
	r.updateOverlay()
	r.Refresh()

	if r.onSelectionChange != nil {
		r.onSelectionChange(r.selected.Len(), changed)
	}
}

// Scrolled handles scroll events for zooming
func (r *ModelRenderer) Scrolled(event *fyne.ScrollEvent) {
	delta := -float64(event.Scrolled.DY) * 0.001
	r.camera.Dolly(delta)
	r.Render(r.width, r.height)
}

// CreateRenderer creates the renderer for the widget
func (r *ModelRenderer) CreateRenderer() fyne.WidgetRenderer {
	return &modelWidgetRenderer{renderer: r}
}

// rendererCanvas reports the widget's last laid out size
type rendererCanvas struct {
	r *ModelRenderer
}

func (c rendererCanvas) Size() (int, int) {
	return int(c.r.width), int(c.r.height)
}

// lineDevice turns overlay geometry into fyne lines
type lineDevice struct {
	shaders *Shaders
	target  selection.Canvas
	drawn   []fyne.CanvasObject
}

func (d *lineDevice) NewBuffer() selection.Buffer {
	return &lineBuffer{device: d}
}

type lineBuffer struct {
	device   *lineDevice
	geometry selection.Geometry
	color    selection.Color
}

func (b *lineBuffer) Upload(g selection.Geometry) { b.geometry = g }
func (b *lineBuffer) SetColor(c selection.Color)  { b.color = c }
func (b *lineBuffer) Release()                    { b.geometry = selection.Geometry{} }

func (b *lineBuffer) Render() {
	active := b.device.shaders.active
	col := b.color.NRGBA()
	if active != nil {
		if u, ok := active.uniforms["uniform_color"]; ok {
			col = selection.Color{R: u[0], G: u[1], B: u[2], A: u[3]}.NRGBA()
		}
	}

	w, h := b.device.target.Size()
	for _, s := range segments(b.geometry, active, w, h) {
		line := canvas.NewLine(col)
		line.StrokeWidth = 1.5
		line.Position1 = fyne.NewPos(float32(s.x1), float32(s.y1))
		line.Position2 = fyne.NewPos(float32(s.x2), float32(s.y2))
		b.device.drawn = append(b.device.drawn, line)
	}
}

// modelWidgetRenderer implements fyne.WidgetRenderer
type modelWidgetRenderer struct {
	renderer *ModelRenderer
	objects  []fyne.CanvasObject
}

func (m *modelWidgetRenderer) Layout(size fyne.Size) {
	m.renderer.Render(float64(size.Width), float64(size.Height))
}

func (m *modelWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (m *modelWidgetRenderer) Refresh() {
	m.objects = m.objects[:0]
	m.objects = append(m.objects, m.renderer.lines...)
	m.objects = append(m.objects, m.renderer.markers...)
	m.objects = append(m.objects, m.renderer.overlayLines...)
	canvas.Refresh(m.renderer)
}

func (m *modelWidgetRenderer) Objects() []fyne.CanvasObject {
	return m.objects
}

func (m *modelWidgetRenderer) Destroy() {}
