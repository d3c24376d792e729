package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"

	"sleeper/internal/platform"
	"sleeper/internal/storage"
)

const (
	appName = "Sleeper"
	appID   = "com.sleeper.app"
)

var version = "dev"

func main() {
	app := cli.App{
		Name:     appName,
		HelpName: "sleeper",
		Usage:    "put the computer to sleep at a chosen time",
		Version:  version,
		Flags:    launchFlags,
		Action:   run,
		Commands: []cli.Command{
			{
				Name:   "status",
				Usage:  "print the persisted sleep schedule",
				Flags:  statusFlags,
				Action: status,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		slog.Error("sleeper exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	loadDotEnv()
	options := optionsFromContext(ctx)
	service := platform.NewService()

	settings, configPath, firstRun, err := loadSettings(options, service, os.LookupEnv)
	if err != nil {
		return err
	}
	logger := initializeLogger(settings.SlogLevel())
	if firstRun {
		if err := storage.SaveSettings(configPath, storage.DefaultSettings()); err != nil {
			logger.Warn("write default settings failed", "path", configPath, "error", err)
		} else {
			logger.Info("wrote default settings", "path", configPath)
		}
	}
	logger.Info("starting", "version", version, "store", settings.StoreBackend, "state_dir", settings.StateDir, "dry_run", settings.DryRun)

	if options.Headless {
		return runHeadless(settings, options.At, logger)
	}
	return runTray(settings, configPath, service, logger)
}

// initializeLogger sets up structured logging at level.
func initializeLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}
}
