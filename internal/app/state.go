package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlselect/internal/rlgfx"
	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/philipparndt/stlselect/pkg/geometry"
	"github.com/philipparndt/stlselect/pkg/loader"
	"github.com/philipparndt/stlselect/pkg/stl"
	"github.com/philipparndt/stlselect/pkg/watcher"
)

// CameraState holds the orbit camera
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // can be panned away from the model center
	defaultDist   float32
	defaultAngleX float32
	defaultAngleY float32
}

// ModelData holds the loaded model and its GPU mesh
type ModelData struct {
	model    *stl.Model
	vertices []geometry.Vector3 // selection indices point into this slice
	mesh     rl.Mesh
	material rl.Material
	center   rl.Vector3
	size     float32
	source   loader.Source
}

// ViewSettings holds display toggles
type ViewSettings struct {
	showFilled   bool
	showVertices bool
}

// InteractionState holds mouse state and the drag rectangle
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
	rect         *selection.Rectangle
	live         []int // indices under the rectangle while dragging (query policy only)
}

// SelectionState holds the accumulated vertex selection
type SelectionState struct {
	vertices    *selection.VertexSet
	lastMode    selection.Mode
	lastChanged int
}

// OverlayState holds the rectangle renderer and its GL resources
type OverlayState struct {
	overlay    *selection.Overlay
	shaders    *rlgfx.Registry
	capability selection.Capability
}

type loadResult struct {
	model  *stl.Model
	source loader.Source
	err    error
}

// FileWatchState holds auto-reload state
type FileWatchState struct {
	fileWatcher      *watcher.FileWatcher
	changed          chan struct{}
	loaded           chan loadResult
	isLoading        bool
	loadingStartTime time.Time
}
