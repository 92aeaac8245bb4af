package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/stlselect/internal/rlgfx"
	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/sirupsen/logrus"
)

// dragThreshold separates clicks from drags, in pixels
const dragThreshold = 1.0

// handleInput processes user input for one frame
func (app *App) handleInput() {
	mousePos := rl.GetMousePosition()
	rect := app.Interaction.rect

	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	altPressed := rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt)
	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyV) {
		app.View.showVertices = !app.View.showVertices
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.View.showFilled = !app.View.showFilled
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		if rect.IsDragging() {
			rect.StopDragging()
			app.Interaction.live = nil
		} else {
			app.Selection.vertices.Clear()
			app.Selection.lastMode = selection.Off
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.zoom(wheel)
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = mousePos
		app.Interaction.mouseMoved = false
		app.Interaction.isPanning = shiftPressed

		if ctrlPressed && !shiftPressed {
			mode := selection.Select
			if altPressed {
				mode = selection.Deselect
			}
			rect.StartDragging(rlgfx.FromVector2(mousePos), mode)
		}
	}
	if ctrlPressed && rl.IsMouseButtonPressed(rl.MouseRightButton) {
		rect.StartDragging(rlgfx.FromVector2(mousePos), selection.Deselect)
	}

	switch {
	case rect.IsDragging():
		rect.Dragging(rlgfx.FromVector2(mousePos))
		delta := rl.Vector2Subtract(mousePos, app.Interaction.mouseDownPos)
		if math.Abs(float64(delta.X)) > dragThreshold || math.Abs(float64(delta.Y)) > dragThreshold {
			app.Interaction.mouseMoved = true
		}
		if rect.Policy() == selection.QueryOnly {
			app.Interaction.live = rect.Contains(app.Model.vertices, app.projector())
		}

	case (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton):
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
			app.Interaction.mouseMoved = true
			app.doPan(delta)
		}

	case rl.IsMouseButtonDown(rl.MouseLeftButton):
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
			app.Interaction.mouseMoved = true
			app.orbit(delta)
		}
	}

	released := rl.IsMouseButtonReleased(rl.MouseLeftButton) || rl.IsMouseButtonReleased(rl.MouseRightButton)
	if released && rect.IsDragging() {
		app.finishSelection()
	}
}

// finishSelection evaluates the rectangle and applies it to the selection.
// Contains consumes the drag under the consume policy; StopDragging covers
// the query policy.
func (app *App) finishSelection() {
	rect := app.Interaction.rect
	mode := rect.Mode()

	indices := rect.Contains(app.Model.vertices, app.projector())
	rect.StopDragging()
	app.Interaction.live = nil

	changed := app.Selection.vertices.Apply(mode, indices)
	app.Selection.lastMode = mode
	app.Selection.lastChanged = changed

	app.log.WithFields(logrus.Fields{
		"mode":     mode.String(),
		"hits":     len(indices),
		"changed":  changed,
		"selected": app.Selection.vertices.Len(),
	}).Info("rectangle selection applied")
}

func (app *App) projector() rlgfx.CameraProjector {
	return rlgfx.CameraProjector{Camera: &app.Camera.camera, ReferenceDistance: app.Camera.defaultDist}
}
