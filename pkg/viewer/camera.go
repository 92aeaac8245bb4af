// Package viewer is a software renderer for STL models: a perspective
// camera, a fyne widget, and PNG snapshots. The selection overlay is drawn
// through software implementations of the overlay collaborators.
package viewer

import (
	"math"

	"github.com/philipparndt/stlselect/pkg/geometry"
)

// Camera represents a 3D camera for viewing the model
type Camera struct {
	Position     geometry.Vector3
	Target       geometry.Vector3
	Up           geometry.Vector3
	FOV          float64 // Field of view in radians
	Distance     float64
	BaseDistance float64 // distance at which the zoom factor is 1
	RotationX    float64 // Rotation around X axis (vertical)
	RotationY    float64 // Rotation around Y axis (horizontal)
}

// NewCamera creates a new camera positioned to view a bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	center := bbox.Center()
	distance := bbox.MaxDimension() * 2.0
	if distance == 0 {
		distance = 10
	}

	c := &Camera{
		Target:       center,
		Up:           geometry.NewVector3(0, 1, 0),
		FOV:          math.Pi / 4, // 45 degrees
		Distance:     distance,
		BaseDistance: distance,
	}
	c.UpdatePosition()
	return c
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	if c.RotationX > maxAngle {
		c.RotationX = maxAngle
	}
	if c.RotationX < -maxAngle {
		c.RotationX = -maxAngle
	}

	c.UpdatePosition()
}

// Dolly scales the camera distance by 1+delta
func (c *Camera) Dolly(delta float64) {
	c.Distance *= (1.0 + delta)
	if c.Distance < 0.1 {
		c.Distance = 0.1
	}
	c.UpdatePosition()
}

// ZoomFactor is BaseDistance/Distance: 2 means the model looks twice as large
func (c *Camera) ZoomFactor() float64 {
	if c.Distance <= 0 || c.BaseDistance <= 0 {
		return 1
	}
	return c.BaseDistance / c.Distance
}

// Zoom makes the camera usable as an overlay zoom source
func (c *Camera) Zoom() float64 {
	return c.ZoomFactor()
}

// Forward returns the unit view direction
func (c *Camera) Forward() geometry.Vector3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Project projects a 3D point to 2D screen coordinates. The returned depth
// is the distance along the view direction and is negative behind the camera.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward := c.Forward()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	// Transform to camera space
	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	depth := relative.Dot(forward)

	z := depth
	if z <= 0.01 {
		z = 0.01 // Prevent division by zero
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, depth
}

// Projection binds a camera to a render target size. It serves as the
// projector, canvas and zoom source of a selection overlay.
type Projection struct {
	Camera *Camera
	Width  int
	Height int
}

// Project maps points to pixels. Points behind the camera map to NaN so no
// rectangle can contain them.
func (p Projection) Project(points []geometry.Vector3) []geometry.Vector2 {
	out := make([]geometry.Vector2, len(points))
	w, h := float64(p.Width), float64(p.Height)
	for i, point := range points {
		x, y, depth := p.Camera.Project(point, w, h)
		if depth <= 0 {
			out[i] = geometry.NewVector2(math.NaN(), math.NaN())
			continue
		}
		out[i] = geometry.NewVector2(x, y)
	}
	return out
}

func (p Projection) Size() (int, int) {
	return p.Width, p.Height
}

func (p Projection) Zoom() float64 {
	return p.Camera.ZoomFactor()
}
