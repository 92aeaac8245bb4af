package main

import (
	"github.com/philipparndt/stlselect/internal/app"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Open the interactive viewer",
	Long: `Open an STL or OpenSCAD file in the raylib viewer.

  Ctrl+drag            select vertices
  Ctrl+Alt+drag        deselect vertices (also Ctrl+right drag)
  drag                 orbit
  Shift/middle drag    pan
  wheel                zoom
  Esc                  cancel the drag or clear the selection
  Home                 reset the camera`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(app.Options{
			File:   args[0],
			Config: settings.cfg,
			Log:    settings.log,
		})
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
