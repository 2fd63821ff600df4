// Main command logic, flag parsing, and orchestration

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/xtruder/chrome-bookmarks/internal/app"
	"github.com/xtruder/chrome-bookmarks/internal/config"
	"github.com/xtruder/chrome-bookmarks/internal/render"
)

// setup loads the configuration, applies flag overrides and installs the
// logger. Flags and their environment sources win over the config file.
func setup(cmd *cli.Command) (*config.Config, app.Options, error) {
	cfg := config.NewDefaultConfig(runtime.GOOS)

	configPath, optional := cmd.String("config"), false
	if configPath == "" {
		configPath, optional = defaultConfigPath(), true
	}
	if err := config.Load(configPath, cfg, optional); err != nil {
		return nil, app.Options{}, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.IsSet("file") {
		cfg.File = cmd.String("file")
	}
	if cmd.IsSet("variant") {
		cfg.Variants = cmd.StringSlice("variant")
	}
	if cmd.IsSet("color") {
		cfg.Color = cmd.String("color")
	}
	if cmd.IsSet("output") {
		cfg.Export.Output = cmd.String("output")
	}
	if cmd.IsSet("ignore") {
		cfg.Export.Ignore = cmd.StringSlice("ignore")
	}
	if cmd.Bool("verbose") {
		cfg.LogLevel = slog.LevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return nil, app.Options{}, fmt.Errorf("invalid configuration: %w", err)
	}

	// Stdout carries results, so diagnostics go to stderr.
	logger := slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	return cfg, app.Options{Profile: cfg.Profile(), Logger: logger}, nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chrome-bookmarks", "config.yaml")
}

// action dispatches on --list and --export. The folder name is always a
// plain argument, so any name can be searched.
func action(ctx context.Context, cmd *cli.Command) error {
	listMode, exportMode := cmd.Bool("list"), cmd.Bool("export")
	if listMode && exportMode {
		return fmt.Errorf("--list and --export cannot be combined")
	}

	if listMode {
		if cmd.Args().Len() != 0 {
			return fmt.Errorf("--list takes no folder name")
		}
		_, opts, err := setup(cmd)
		if err != nil {
			return err
		}
		return app.List(ctx, opts, cmd.Root().Writer)
	}

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one folder name, got %d arguments", cmd.Args().Len())
	}
	name := cmd.Args().First()

	cfg, opts, err := setup(cmd)
	if err != nil {
		return err
	}

	if exportMode {
		return export(ctx, cfg, opts, name)
	}

	color, err := render.ShouldColor(cfg.Color, cmd.Root().Writer)
	if err != nil {
		return err
	}
	return app.Find(ctx, opts, name, cmd.Root().Writer, color)
}

func export(ctx context.Context, cfg *config.Config, opts app.Options, name string) error {
	exportOpts := app.ExportOptions{
		OutputDir:      cfg.Export.Output,
		IgnoredFolders: cfg.Export.Ignore,
	}

	stats, err := app.Export(ctx, opts, name, exportOpts)
	if err != nil {
		return err
	}

	opts.Logger.Info("export finished",
		"dir", exportOpts.OutputDir,
		"written", stats.Written,
		"skipped", stats.Skipped)
	return nil
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:            "chrome-bookmarks",
		Usage:           "Print Chrome bookmark folders with a given name as JSON",
		ArgsUsage:       "NAME",
		Action:          action,
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "Path template of the bookmarks file, {edition} is replaced by each variant",
				DefaultText: config.NewDefaultConfig(runtime.GOOS).File,
				Sources:     cli.EnvVars("CHROME_BOOKMARKS_FILE"),
			},
			&cli.StringSliceFlag{
				Name:    "variant",
				Usage:   "Install variants to try in order",
				Sources: cli.EnvVars("CHROME_BOOKMARKS_VARIANTS"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Sources: cli.EnvVars("CHROME_BOOKMARKS_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Colorize JSON output: auto, always or never",
				Value: render.ColorAuto,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose logging",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "List every folder path of the bookmarks file",
			},
			&cli.BoolFlag{
				Name:  "export",
				Usage: "Export the entries of matching folders as markdown notes",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory for markdown files",
				Value:   "bookmarks",
			},
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "Folder names to skip when exporting",
			},
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := newCommand(stdout, stderr).Run(ctx, args); err != nil {
		slog.New(slog.NewTextHandler(stderr, nil)).Error("failed to run", "error", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}
