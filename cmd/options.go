package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli"

	"sleeper/internal/platform"
	"sleeper/internal/storage"
)

var launchFlags = []cli.Flag{
	cli.StringFlag{Name: "config, c", Usage: "settings file `PATH`"},
	cli.StringFlag{Name: "state-dir", Usage: "`DIR` holding the persisted schedule"},
	cli.StringFlag{Name: "store", Usage: "schedule store backend: file, sqlite, preferences or memory"},
	cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
	cli.BoolFlag{Name: "dry-run", Usage: "log OS sleep commands instead of running them"},
	cli.BoolFlag{Name: "headless", Usage: "run without a tray icon until interrupted"},
	cli.StringFlag{Name: "at", Usage: "with --headless, schedule sleep on start (e.g. 23:30 or 45m)"},
}

type launchOptions struct {
	ConfigPath string
	StateDir   string
	Store      string
	LogLevel   string
	DryRun     bool
	Headless   bool
	At         string
}

func optionsFromContext(ctx *cli.Context) launchOptions {
	return launchOptions{
		ConfigPath: ctx.String("config"),
		StateDir:   ctx.String("state-dir"),
		Store:      ctx.String("store"),
		LogLevel:   ctx.String("log-level"),
		DryRun:     ctx.Bool("dry-run"),
		Headless:   ctx.Bool("headless"),
		At:         ctx.String("at"),
	}
}

// apply overlays explicitly passed flags.
func (options launchOptions) apply(settings storage.Settings) storage.Settings {
	if options.StateDir != "" {
		settings.StateDir = options.StateDir
	}
	if options.Store != "" {
		settings.StoreBackend = strings.ToLower(strings.TrimSpace(options.Store))
	}
	if options.LogLevel != "" {
		settings.LogLevel = options.LogLevel
	}
	if options.DryRun {
		settings.DryRun = true
	}
	return settings
}

// loadSettings resolves settings as defaults < file < environment < flags.
// firstRun reports that no settings file existed yet.
func loadSettings(options launchOptions, service platform.Service, lookup func(string) (string, bool)) (settings storage.Settings, path string, firstRun bool, err error) {
	path = options.ConfigPath
	if path == "" {
		path, err = storage.ResolveConfigPath(service, appName)
		if err != nil {
			return storage.Settings{}, "", false, err
		}
	}

	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		firstRun = true
	}

	settings, err = storage.LoadSettings(path)
	if err != nil {
		slog.Warn("settings file unreadable, using defaults", "path", path, "error", err)
	}
	settings = storage.ApplyEnv(settings, lookup)
	settings = options.apply(settings)

	if settings.StateDir == "" {
		settings.StateDir, err = storage.ResolveAppDir(service, appName)
		if err != nil {
			return storage.Settings{}, "", false, fmt.Errorf("resolve state dir: %w", err)
		}
	}
	return settings, path, firstRun, nil
}
