package selection

// Deps are the collaborators the overlay draws through
type Deps struct {
	Canvas  Canvas
	Zoom    ZoomSource
	Shaders ShaderRegistry
	Device  Device
}

// Overlay draws the selection rectangle outline once per frame
type Overlay struct {
	deps       Deps
	style      Style
	strategy   Strategy
	derivation Derivation
	cache      *Cache

	draws int
}

// NewOverlay wires an overlay. A nil strategy or derivation falls back to
// the solid loop and canvas-normalised coordinates.
func NewOverlay(deps Deps, style Style, strategy Strategy, derivation Derivation) *Overlay {
	if strategy == nil {
		strategy = SolidLoopStrategy{}
	}
	if derivation == nil {
		derivation = CanvasNormalized{}
	}
	return &Overlay{
		deps:       deps,
		style:      style,
		strategy:   strategy,
		derivation: derivation,
		cache:      NewCache(deps.Device),
	}
}

// Render draws rect if a drag is active. It never fails: a zero canvas, a
// missing shader or a missing device just skip the frame.
func (o *Overlay) Render(rect *Rectangle) {
	if rect == nil || !rect.IsDragging() {
		if o.cache.Resident() {
			o.cache.Reset()
		}
		return
	}

	if o.deps.Canvas == nil {
		return
	}
	width, height := o.deps.Canvas.Size()
	if width == 0 || height == 0 {
		Logger().Debug("canvas has no area, skipping overlay")
		return
	}

	zoom := 1.0
	if o.deps.Zoom != nil {
		zoom = o.deps.Zoom.Zoom()
	}

	var shader Shader
	if name := o.strategy.ShaderName(); name != "" {
		if o.deps.Shaders == nil {
			return
		}
		s, ok := o.deps.Shaders.Shader(name)
		if !ok || s == nil {
			Logger().WithField("shader", name).Debug("shader unavailable, skipping overlay")
			return
		}
		shader = s
	}

	buffer, ok := o.cache.Prepare(rect, o.strategy, o.derivation, width, height, zoom)
	if !ok {
		return
	}

	color := o.style.ColorFor(rect.Mode())
	if shader != nil {
		shader.Begin()
		defer shader.End()
		o.strategy.Configure(shader, o.style)
		shader.SetVec4("uniform_color", color.Vec4())
	}

	buffer.SetColor(color)
	buffer.Render()
	o.draws++
}

// Release frees the cached buffer
func (o *Overlay) Release() {
	o.cache.Reset()
}

func (o *Overlay) Strategy() Strategy     { return o.strategy }
func (o *Overlay) Derivation() Derivation { return o.derivation }
func (o *Overlay) Style() Style           { return o.style }

// Cache exposes the geometry cache, mostly for diagnostics
func (o *Overlay) Cache() *Cache {
	return o.cache
}

// Draws returns the number of draw calls issued so far
func (o *Overlay) Draws() int {
	return o.draws
}
