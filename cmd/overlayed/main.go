package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/overlaydeck/overlaydeck/internal/config"
	"github.com/overlaydeck/overlaydeck/internal/editor"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "overlayed [layout]",
	Short: "Visual editor for stream overlay layouts",
	Long: `overlayed opens a 1920x1080 overlay layout in an editor window where
components can be selected, dragged and resized with snapping guides.

Without an argument the layout from OVERLAY_LAYOUT_FILE is opened, or the
built-in sample when that is unset.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cfg.LayoutFile = args[0]
		}
		return runEditor(cfg)
	},
	SilenceUsage: true,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <layout>",
	Short: "Print a summary of a layout file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setup(); err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		summary, err := inspectLayout(data)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), summary)
		return nil
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of overlayed",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "overlayed version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config and installs the default logger.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}

func runEditor(cfg *config.Config) error {
	session := editor.New(cfg.Settings(), float64(cfg.WindowWidth), float64(cfg.WindowHeight), editor.Hooks{})
	if cfg.LayoutFile != "" {
		data, err := os.ReadFile(cfg.LayoutFile)
		if err != nil {
			return err
		}
		if err := session.LoadData(data); err != nil {
			return err
		}
	} else {
		session.LoadSample()
	}

	game := newEditorGame(session, cfg.Settings())

	if cfg.ConfigFile != "" {
		env, err := config.LoadEnv()
		if err != nil {
			return err
		}
		w, err := config.Watch(cfg.ConfigFile, *env)
		if err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
		defer w.Close()
		game.watcher = w
		slog.Info("watching config", "path", cfg.ConfigFile)
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("overlayed - " + session.Layout().Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	slog.Info("editor closed", "layout", session.Layout().ID, "version", session.Layout().Version)
	return nil
}
