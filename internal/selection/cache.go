package selection

import (
	"github.com/philipparndt/stlselect/pkg/geometry"
)

// Cache keeps the overlay buffer resident between frames and rebuilds it
// only when the rectangle is dirty or the derived quad moved (canvas resize,
// zoom change).
type Cache struct {
	device Device
	buffer Buffer

	builtStart geometry.Vector2
	builtEnd   geometry.Vector2
	builtQuad  Quad

	rebuilds int
}

// NewCache creates an empty cache allocating buffers from device
func NewCache(device Device) *Cache {
	return &Cache{device: device}
}

// Prepare returns a buffer holding the current rectangle, rebuilding it if
// needed. The second result is false when nothing can be drawn.
func (c *Cache) Prepare(rect *Rectangle, strategy Strategy, derivation Derivation, width, height int, zoom float64) (Buffer, bool) {
	quad, ok := derivation.Quad(rect.Bounds(), width, height, zoom)
	if !ok {
		return nil, false
	}

	if c.buffer != nil && !rect.Dirty() && quad == c.builtQuad {
		return c.buffer, true
	}

	if c.buffer == nil {
		if c.device == nil {
			return nil, false
		}
		c.buffer = c.device.NewBuffer()
		if c.buffer == nil {
			return nil, false
		}
	}

	c.buffer.Upload(strategy.Build(quad))
	c.builtStart = rect.StartCorner()
	c.builtEnd = rect.EndCorner()
	c.builtQuad = quad
	c.rebuilds++
	rect.markClean()

	Logger().WithField("rebuilds", c.rebuilds).Debugf("rebuilt overlay geometry %+v", quad)
	return c.buffer, true
}

// BuiltCorners returns the corners the resident buffer was built from
func (c *Cache) BuiltCorners() (start, end geometry.Vector2) {
	return c.builtStart, c.builtEnd
}

// Resident reports whether a buffer is currently allocated
func (c *Cache) Resident() bool {
	return c.buffer != nil
}

// Rebuilds returns how many times geometry has been uploaded
func (c *Cache) Rebuilds() int {
	return c.rebuilds
}

// Reset releases the buffer. The rebuild counter is kept.
func (c *Cache) Reset() {
	if c.buffer != nil {
		c.buffer.Release()
		c.buffer = nil
	}
	c.builtStart = geometry.Vector2{}
	c.builtEnd = geometry.Vector2{}
	c.builtQuad = Quad{}
}
