package app

import (
	"time"

	"github.com/philipparndt/stlselect/pkg/loader"
	"github.com/philipparndt/stlselect/pkg/watcher"
	"github.com/pkg/errors"
)

// setupFileWatcher watches the source file and, for OpenSCAD, its includes
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(app.cfg.Viewer.Debounce.Duration, app.log)
	if err != nil {
		return err
	}
	if err := app.watchSource(fw); err != nil {
		fw.Close()
		return err
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw
	return nil
}

func (app *App) watchSource(fw *watcher.FileWatcher) error {
	files, err := app.Model.source.WatchList()
	if err != nil {
		return errors.Wrap(err, "failed to resolve watched files")
	}

	err = fw.Watch(files, func(path string) {
		app.log.WithField("file", path).Info("file changed, reloading")
		select {
		case app.FileWatch.changed <- struct{}{}:
		default: // a reload is already queued
		}
	})
	if err != nil {
		return err
	}

	app.log.WithField("files", len(files)).Debug("watching for changes")
	return nil
}

// pollReload starts a background load after a change and applies a
// finished one. Runs on the main thread once per frame.
func (app *App) pollReload() {
	select {
	case <-app.FileWatch.changed:
		if !app.FileWatch.isLoading {
			app.FileWatch.isLoading = true
			app.FileWatch.loadingStartTime = time.Now()
			path := app.Model.source.Path
			go func() {
				model, source, err := loader.Load(path, app.log)
				app.FileWatch.loaded <- loadResult{model: model, source: source, err: err}
			}()
		}
	default:
	}

	select {
	case result := <-app.FileWatch.loaded:
		app.applyLoadedModel(result)
	default:
	}
}

// applyLoadedModel swaps in a reloaded model. Vertex indices are not stable
// across reloads, so the drag and the selection are dropped.
func (app *App) applyLoadedModel(result loadResult) {
	app.FileWatch.isLoading = false
	if result.err != nil {
		app.log.WithError(result.err).Error("reload failed, keeping previous model")
		return
	}

	app.Interaction.rect.StopDragging()
	app.Interaction.live = nil
	app.Selection.vertices.Clear()
	app.Selection.lastChanged = 0

	previous := app.Model.source
	app.setModel(result.model, result.source)
	if previous.STLPath != result.source.STLPath {
		previous.Cleanup()
	}

	if err := app.setupOverlay(); err != nil {
		app.log.WithError(err).Error("failed to rebuild selection overlay")
	}

	// includes may have changed
	if fw := app.FileWatch.fileWatcher; fw != nil {
		if err := fw.RemoveAll(); err == nil {
			if err := app.watchSource(fw); err != nil {
				app.log.WithError(err).Warn("failed to refresh watched files")
			}
		}
	}

	app.log.WithField("took", time.Since(app.FileWatch.loadingStartTime).Round(time.Millisecond)).Info("reload applied")
}
