package rlgfx

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/pkg/errors"
)

// OverlayOptions select how the overlay is drawn
type OverlayOptions struct {
	Renderer   string
	Derivation selection.Derivation
	Style      selection.Style
}

// NewOverlay wires a selection overlay to the raylib window. The rendering
// strategy is resolved once here from the detected GL capability.
func NewOverlay(camera *rl.Camera3D, referenceDistance float32, shaders *Registry, opts OverlayOptions) (*selection.Overlay, selection.Capability, error) {
	capability := DetectCapability()
	strategy, err := selection.ResolveStrategy(opts.Renderer, capability)
	if err != nil {
		return nil, capability, errors.Wrap(err, "failed to choose overlay renderer")
	}

	deps := selection.Deps{
		Canvas: Screen{},
		Zoom:   CameraProjector{Camera: camera, ReferenceDistance: referenceDistance},
		Device: Device{LineWidth: opts.Style.LineWidth},
	}
	if shaders != nil {
		deps.Shaders = shaders
	}

	return selection.NewOverlay(deps, opts.Style, strategy, opts.Derivation), capability, nil
}
