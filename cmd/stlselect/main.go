package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/stlselect/internal/config"
	"github.com/philipparndt/stlselect/internal/selection"
	"github.com/philipparndt/stlselect/version"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// settings are resolved once in the root pre-run and shared by subcommands
var settings struct {
	cfg config.Config
	log *logrus.Logger
}

var rootFlags struct {
	configPath string
	logLevel   string
	verbose    bool
	policy     string
	renderer   string
	derivation string
}

var rootCmd = &cobra.Command{
	Use:   "stlselect",
	Short: "Rectangle vertex selection for STL and OpenSCAD models",
	Long: `stlselect shows STL and OpenSCAD models and selects their vertices with
screen-space rectangles. Drag with Ctrl to select, with Ctrl+Alt to deselect.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.configPath, "config", "", "TOML configuration file")
	flags.StringVar(&rootFlags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "shorthand for --log-level debug")
	flags.StringVar(&rootFlags.policy, "policy", "", "contains policy: consume or query")
	flags.StringVar(&rootFlags.renderer, "renderer", "", "overlay renderer: auto, dashed or solid")
	flags.StringVar(&rootFlags.derivation, "derivation", "", "overlay coordinates: canvas or zoom")
}

func setup(cmd *cobra.Command, _ []string) error {
	log, err := newLogger(rootFlags.logLevel, rootFlags.verbose)
	if err != nil {
		return err
	}
	settings.log = log
	selection.SetLogger(log)

	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return err
	}
	if rootFlags.policy != "" {
		cfg.Selection.ContainsPolicy = rootFlags.policy
	}
	if rootFlags.renderer != "" {
		cfg.Overlay.Renderer = rootFlags.renderer
	}
	if rootFlags.derivation != "" {
		cfg.Selection.Derivation = rootFlags.derivation
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid settings")
	}
	settings.cfg = cfg

	log.WithFields(logrus.Fields{
		"policy":     cfg.Selection.ContainsPolicy,
		"renderer":   cfg.Overlay.Renderer,
		"derivation": cfg.Selection.Derivation,
	}).Debug("settings resolved")
	return nil
}

func newLogger(level string, verbose bool) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if verbose {
		level = "debug"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid --log-level")
	}
	log.SetLevel(lvl)
	return log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
