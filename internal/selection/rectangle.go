package selection

import (
	"github.com/philipparndt/stlselect/pkg/geometry"
)

// Rectangle is the drag state of a screen-space selection. Corners are in
// pixels and carry no ordering; Bounds normalises them.
//
// A Rectangle is owned by the input handler and is not safe for concurrent use.
type Rectangle struct {
	mode   Mode
	start  geometry.Vector2
	end    geometry.Vector2
	policy ContainsPolicy

	// dirty is set whenever a corner changes and cleared by the geometry
	// cache once it has rebuilt from the new corners.
	dirty bool
}

// NewRectangle creates an idle rectangle using the given contains policy
func NewRectangle(policy ContainsPolicy) *Rectangle {
	return &Rectangle{policy: policy}
}

// StartDragging begins a drag at position. It does nothing when a drag is
// already running or mode is Off.
func (r *Rectangle) StartDragging(position geometry.Vector2, mode Mode) {
	if r.IsDragging() || mode == Off {
		return
	}

	r.mode = mode
	r.start = position
	r.end = position
	r.dirty = true
}

// Dragging moves the end corner. The start corner never moves during a drag.
func (r *Rectangle) Dragging(position geometry.Vector2) {
	if !r.IsDragging() || r.end == position {
		return
	}

	r.end = position
	r.dirty = true
}

// StopDragging ends the drag. Calling it while idle is harmless.
func (r *Rectangle) StopDragging() {
	r.mode = Off
}

func (r *Rectangle) IsDragging() bool {
	return r.mode != Off
}

func (r *Rectangle) Mode() Mode {
	return r.mode
}

func (r *Rectangle) Policy() ContainsPolicy {
	return r.policy
}

func (r *Rectangle) StartCorner() geometry.Vector2 {
	return r.start
}

func (r *Rectangle) EndCorner() geometry.Vector2 {
	return r.end
}

// Bounds returns the corners as a normalised rectangle
func (r *Rectangle) Bounds() geometry.Rect {
	return geometry.RectFromCorners(r.start, r.end)
}

func (r *Rectangle) Left() float64   { return r.Bounds().Min.X }
func (r *Rectangle) Right() float64  { return r.Bounds().Max.X }
func (r *Rectangle) Top() float64    { return r.Bounds().Min.Y }
func (r *Rectangle) Bottom() float64 { return r.Bounds().Max.Y }

// Dirty reports whether the corners changed since the overlay geometry was last built
func (r *Rectangle) Dirty() bool {
	return r.dirty
}

func (r *Rectangle) markClean() {
	r.dirty = false
}

// Contains returns the indices of points whose projection lies inside the
// rectangle, in input order. Under ConsumeOnContains the call also ends the
// drag. While idle the result is empty under both policies.
func (r *Rectangle) Contains(points []geometry.Vector3, projector Projector) []int {
	if r.policy == ConsumeOnContains {
		return r.Release(points, projector)
	}
	if !r.IsDragging() {
		return nil
	}
	return r.evaluate(points, projector)
}

// Release evaluates the rectangle and ends the drag regardless of policy.
// Input handlers call it on pointer-up.
func (r *Rectangle) Release(points []geometry.Vector3, projector Projector) []int {
	if !r.IsDragging() {
		return nil
	}
	r.StopDragging()
	return r.evaluate(points, projector)
}

// ContainsProjected evaluates already projected points without touching the drag state
func (r *Rectangle) ContainsProjected(points []geometry.Vector2) []int {
	return ContainedIndices(r.Bounds(), points)
}

func (r *Rectangle) evaluate(points []geometry.Vector3, projector Projector) []int {
	if len(points) == 0 || projector == nil {
		return nil
	}
	return ContainedIndices(r.Bounds(), projector.Project(points))
}
