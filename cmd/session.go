package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sleeper/internal/clock"
	"sleeper/internal/core/coordinator"
	"sleeper/internal/platform"
	"sleeper/internal/storage"
)

// session owns the coordinator and the resources it was built from.
type session struct {
	coordinator *coordinator.Coordinator
	power       platform.PowerMonitor
	closeStore  func() error
	logger      *slog.Logger
}

func startSession(settings storage.Settings, prefs storage.Preferences, logger *slog.Logger) (*session, error) {
	backend, closeBackend, err := storage.OpenBackend(settings, prefs)
	if err != nil {
		return nil, fmt.Errorf("open schedule store: %w", err)
	}
	store := storage.NewScheduleStore(backend, clock.Real{}, logger)
	power := platform.NewPowerMonitor(logger)

	coord := coordinator.New(settings.CoordinatorConfig(), coordinator.Deps{
		Clock:    clock.Real{},
		Store:    store,
		Executor: platform.NewExecutor(settings.DryRun, logger),
		Power:    power,
		Logger:   logger,
	})
	return &session{
		coordinator: coord,
		power:       power,
		closeStore:  closeBackend,
		logger:      logger,
	}, nil
}

// shutdown stops the coordinator within timeout and releases the store.
func (current *session) shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := current.coordinator.Shutdown(ctx)
	if closeErr := current.power.Close(); closeErr != nil {
		current.logger.Warn("close power monitor failed", "error", closeErr)
	}
	if closeErr := current.closeStore(); closeErr != nil {
		current.logger.Warn("close schedule store failed", "error", closeErr)
	}
	return err
}
