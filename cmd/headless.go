package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sleeper/internal/core/coordinator"
	"sleeper/internal/platform"
	"sleeper/internal/storage"
	"sleeper/internal/ui/picker"
)

func runHeadless(settings storage.Settings, at string, logger *slog.Logger) error {
	guard, err := platform.AcquireSingleInstance(appName, nil)
	if err != nil {
		return fmt.Errorf("start %s: %w", appName, err)
	}
	defer func() {
		_ = guard.Release()
	}()

	current, err := startSession(settings, nil, logger)
	if err != nil {
		return err
	}
	go logEvents(current.coordinator.Subscribe(16), logger)

	if at != "" {
		target, err := picker.ParseTarget(at, time.Now(), time.Local)
		if err != nil {
			_ = current.shutdown(settings.ShutdownTimeout)
			return fmt.Errorf("parse --at: %w", err)
		}
		if err := current.coordinator.Schedule(target); err != nil {
			logger.Error("schedule rejected", "target", target, "error", err)
		}
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-signalCtx.Done()

	logger.Info("shutting down")
	return current.shutdown(settings.ShutdownTimeout)
}

func logEvents(events <-chan coordinator.Event, logger *slog.Logger) {
	for event := range events {
		switch event.Type {
		case coordinator.EventStateChange:
			attrs := []any{"state", event.State.State}
			if event.State.IsActive() {
				attrs = append(attrs, "target", event.State.Target)
			}
			if event.State.Message != "" {
				attrs = append(attrs, "message", event.State.Message)
			}
			logger.Info("schedule state changed", attrs...)
		case coordinator.EventTick:
			logger.Info("countdown", "remaining", event.Snapshot.Formatted, "phase", event.Snapshot.Phase)
		}
	}
}
