package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"

	"sleeper/internal/clock"
	"sleeper/internal/core/model"
	"sleeper/internal/core/timeutil"
	"sleeper/internal/platform"
	"sleeper/internal/storage"
)

var statusFlags = append([]cli.Flag{
	cli.BoolFlag{Name: "quiet, q", Usage: "print nothing; exit 1 when no sleep is scheduled"},
}, launchFlags...)

func status(ctx *cli.Context) error {
	loadDotEnv()
	settings, _, _, err := loadSettings(optionsFromContext(ctx), platform.NewService(), os.LookupEnv)
	if err != nil {
		return err
	}
	logger := initializeLogger(settings.SlogLevel())
	if settings.StoreBackend == storage.BackendPreferences {
		return fmt.Errorf("status is not available for the %s store; run the tray app instead", storage.BackendPreferences)
	}

	backend, closeBackend, err := storage.OpenBackend(settings, nil)
	if err != nil {
		return fmt.Errorf("open schedule store: %w", err)
	}
	defer func() {
		_ = closeBackend()
	}()

	store := storage.NewScheduleStore(backend, clock.Real{}, logger)
	if ctx.Bool("quiet") {
		return checkSchedule(store)
	}
	fmt.Fprintln(ctx.App.Writer, describeSchedule(store, time.Now()))
	return nil
}

// checkSchedule turns the presence of a usable schedule into an exit status.
func checkSchedule(store *storage.ScheduleStore) error {
	if !store.HasActive() {
		return cli.NewExitError("", 1)
	}
	return nil
}

func describeSchedule(store *storage.ScheduleStore, now time.Time) string {
	record, ok := store.Load()
	if !ok {
		return "No sleep scheduled"
	}
	info := timeutil.ScheduleInfo(model.ActiveCountdown(record.TargetTime))
	return fmt.Sprintf("%s (in %s)", info, timeutil.FormatRemaining(record.TargetTime.Sub(now)))
}
