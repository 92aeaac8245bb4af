package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/philipparndt/stlselect/pkg/analysis"
	"github.com/philipparndt/stlselect/pkg/loader"
	"github.com/philipparndt/stlselect/pkg/viewer"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:   "gui [file]",
	Short: "Open the software renderer in a fyne window",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := &gui{
			window: fyneapp.New().NewWindow("stlselect"),
			log:    settings.log.WithField("component", "gui"),
		}
		if len(args) == 1 {
			g.loadFile(args[0])
		} else {
			g.showWelcomeScreen()
		}

		g.window.Resize(fyne.NewSize(float32(settings.cfg.Viewer.Width), float32(settings.cfg.Viewer.Height)))
		g.window.ShowAndRun()
		g.source.Cleanup()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

var modeLabels = map[string]selection.Mode{
	"Rotate":   selection.Off,
	"Select":   selection.Select,
	"Deselect": selection.Deselect,
}

type gui struct {
	window   fyne.Window
	log      *logrus.Entry
	source   loader.Source
	renderer *viewer.ModelRenderer

	modelInfo  *widget.Label
	countLabel *widget.Label
	lastLabel  *widget.Label
	boundsInfo *widget.Label
}

func (g *gui) showWelcomeScreen() {
	welcome := widget.NewLabel("Welcome to stlselect")
	welcome.TextStyle = fyne.TextStyle{Bold: true}

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcome),
		container.NewCenter(widget.NewLabel("Open an STL or OpenSCAD file to start selecting vertices")),
		layout.NewSpacer(),
		container.NewCenter(widget.NewButton("Open File", g.showFileDialog)),
		layout.NewSpacer(),
	)
	g.window.SetContent(content)
}

func (g *gui) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		g.loadFile(reader.URI().Path())
	}, g.window)
}

func (g *gui) loadFile(path string) {
	model, source, err := loader.Load(path, g.log)
	if err != nil {
		dialog.ShowError(errors.Wrapf(err, "failed to load %s", path), g.window)
		return
	}

	g.source.Cleanup()
	g.source = source

	g.renderer = viewer.NewModelRenderer(model, viewer.RendererOptions{
		Policy:     settings.cfg.Policy(),
		Style:      settings.cfg.Style(),
		Strategy:   guiStrategy(),
		Derivation: settings.cfg.Derivation(),
	})
	g.renderer.SetOnSelectionChange(g.selectionChanged)

	g.setupMainUI(fmt.Sprintf("Model: %s\nTriangles: %d\nVertices: %d",
		model.Name, model.TriangleCount(), len(g.renderer.Vertices())))
}

// guiStrategy maps the configured renderer onto the software back end,
// which can always draw dashes.
func guiStrategy() selection.Strategy {
	if settings.cfg.Overlay.Renderer == "solid" {
		return selection.SolidLoopStrategy{}
	}
	return selection.DashedStrategy{}
}

func (g *gui) setupMainUI(info string) {
	g.modelInfo = widget.NewLabel(info)
	g.countLabel = widget.NewLabel("Selected: 0")
	g.countLabel.TextStyle = fyne.TextStyle{Bold: true}
	g.lastLabel = widget.NewLabel("Last rectangle: -")
	g.boundsInfo = widget.NewLabel("")

	modes := widget.NewRadioGroup([]string{"Rotate", "Select", "Deselect"}, func(choice string) {
		g.renderer.SetMode(modeLabels[choice])
	})
	modes.SetSelected("Select")

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Pick Select or Deselect, then drag a rectangle\n" +
			"• Pick Rotate to drag the view around\n" +
			"• Scroll to zoom in/out",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		g.modelInfo,
		widget.NewSeparator(),
		widget.NewLabel("Drag Mode:"),
		modes,
		widget.NewSeparator(),
		g.countLabel,
		g.lastLabel,
		g.boundsInfo,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		widget.NewButton("Open File", g.showFileDialog),
		widget.NewButton("Clear Selection", func() {
			g.renderer.ClearSelection()
			g.selectionChanged(0, 0)
		}),
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	g.window.SetContent(container.NewBorder(nil, nil, nil, infoScroll, g.renderer))
}

func (g *gui) selectionChanged(selected, changed int) {
	g.countLabel.SetText(fmt.Sprintf("Selected: %d", selected))
	g.lastLabel.SetText(fmt.Sprintf("Last rectangle: %d changed", changed))

	if selected == 0 {
		g.boundsInfo.SetText("")
		return
	}

	summary := analysis.Summarize(g.renderer.Vertices(), g.renderer.Selected())
	size := summary.Dimensions
	g.boundsInfo.SetText(fmt.Sprintf("Selection size:\n  X: %.3f\n  Y: %.3f\n  Z: %.3f\nCentroid: %s",
		size.X, size.Y, size.Z, analysis.FormatVector(summary.Centroid)))
	g.log.WithFields(logrus.Fields{"selected": selected, "changed": changed}).Info("selection changed")
}
