// Package app is the interactive raylib viewer: orbit camera, rectangle
// vertex selection with a GPU overlay, and auto-reload of the source file.
package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlselect/internal/config"
	"github.com/philipparndt/stlselect/internal/rlgfx"
	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/philipparndt/stlselect/pkg/loader"
	"github.com/philipparndt/stlselect/pkg/stl"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Options configure a viewer run
type Options struct {
	File   string
	Config config.Config
	Log    *logrus.Logger
}

type App struct {
	Camera      CameraState
	Model       ModelData
	View        ViewSettings
	Interaction InteractionState
	Selection   SelectionState
	Overlay     OverlayState
	FileWatch   FileWatchState

	cfg config.Config
	log *logrus.Entry
}

// Run loads the file, opens the window and blocks until it is closed
func Run(opts Options) error {
	if opts.Log == nil {
		opts.Log = logrus.New()
	}
	log := opts.Log.WithField("component", "viewer")

	model, source, err := loader.Load(opts.File, log)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", opts.File)
	}
	defer func() { source.Cleanup() }()

	app := &App{
		View: ViewSettings{showFilled: true},
		Interaction: InteractionState{
			rect: selection.NewRectangle(opts.Config.Policy()),
		},
		Selection: SelectionState{vertices: selection.NewVertexSet()},
		FileWatch: FileWatchState{
			changed: make(chan struct{}, 1),
			loaded:  make(chan loadResult, 1),
		},
		cfg: opts.Config,
		log: log,
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // must be before InitWindow
	rl.InitWindow(int32(opts.Config.Viewer.Width), int32(opts.Config.Viewer.Height), "stlselect")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(opts.Config.Viewer.FPS))
	rl.SetExitKey(rl.KeyNull) // Esc clears the selection

	app.Model.material = rl.LoadMaterialDefault()
	app.setModel(model, source)
	defer func() { rl.UnloadMesh(&app.Model.mesh) }()

	app.Overlay.shaders = rlgfx.NewRegistry(log)
	defer app.Overlay.shaders.Unload()
	if err := app.setupOverlay(); err != nil {
		return err
	}
	defer func() { app.Overlay.overlay.Release() }()

	if opts.Config.Viewer.Watch {
		if err := app.setupFileWatcher(); err != nil {
			log.WithError(err).Warn("auto-reload is not available")
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	for !rl.WindowShouldClose() {
		app.pollReload()

		app.handleInput()
		app.updateCamera()

		rl.BeginDrawing()
		rl.ClearBackground(backgroundColor)

		rl.BeginMode3D(app.Camera.camera)
		if app.View.showFilled {
			rl.DrawMesh(app.Model.mesh, app.Model.material, rl.MatrixIdentity())
		}
		rl.EndMode3D()

		app.drawVertices()
		app.Overlay.overlay.Render(app.Interaction.rect)
		app.drawUI()

		rl.EndDrawing()
	}

	// source may have been replaced by a reload
	source = app.Model.source
	return nil
}

// setModel replaces the displayed model and frames the camera on it
func (app *App) setModel(model *stl.Model, source loader.Source) {
	if app.Model.mesh.VertexCount > 0 {
		rl.UnloadMesh(&app.Model.mesh)
	}

	bbox := model.BoundingBox()
	center := bbox.Center()

	app.Model.model = model
	app.Model.source = source
	app.Model.vertices = model.Vertices()
	app.Model.mesh = stlToRaylibMesh(model)
	app.Model.center = rl.NewVector3(float32(center.X), float32(center.Y), float32(center.Z))
	app.Model.size = float32(bbox.MaxDimension())

	app.frameModel()

	app.log.WithFields(logrus.Fields{
		"triangles": model.TriangleCount(),
		"vertices":  len(app.Model.vertices),
		"size":      app.Model.size,
	}).Info("model loaded")
}

// setupOverlay creates the rectangle overlay for the current camera. The
// zoom reference is the framing distance, so it is rebuilt after a reload.
func (app *App) setupOverlay() error {
	if app.Overlay.overlay != nil {
		app.Overlay.overlay.Release()
	}

	overlay, capability, err := rlgfx.NewOverlay(&app.Camera.camera, app.Camera.defaultDist, app.Overlay.shaders, rlgfx.OverlayOptions{
		Renderer:   app.cfg.Overlay.Renderer,
		Derivation: app.cfg.Derivation(),
		Style:      app.cfg.Style(),
	})
	if err != nil {
		return err
	}

	app.Overlay.overlay = overlay
	app.Overlay.capability = capability
	app.log.WithFields(logrus.Fields{
		"strategy":   overlay.Strategy().Name(),
		"capability": capability.String(),
		"derivation": app.cfg.Selection.Derivation,
	}).Info("selection overlay ready")
	return nil
}
