package main

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"sleeper/internal/core/coordinator"
	"sleeper/internal/core/timeutil"
	"sleeper/internal/platform"
	"sleeper/internal/storage"
	"sleeper/internal/ui/picker"
	"sleeper/internal/ui/preferences"
	"sleeper/internal/ui/tray"
)

func runTray(settings storage.Settings, configPath string, service platform.Service, logger *slog.Logger) error {
	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.HistoryIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform, use --headless")
	}

	var pickerWindow *picker.Window
	guard, err := platform.AcquireSingleInstance(appName, func() {
		fyne.Do(func() {
			if pickerWindow != nil {
				pickerWindow.Show()
			}
		})
	})
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if notifyErr := platform.NotifyRunning(appName); notifyErr != nil {
			logger.Warn("notify running instance failed", "error", notifyErr)
		}
		logger.Info("another instance is already running")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	current, err := startSession(settings, fyneApp.Preferences(), logger)
	if err != nil {
		return err
	}
	syncLaunchAtLogin(service, settings.LaunchAtLogin, logger)

	var (
		shutdownOnce sync.Once
		shutdownErr  error
	)
	shutdown := func() error {
		shutdownOnce.Do(func() {
			shutdownErr = current.shutdown(settings.ShutdownTimeout)
		})
		return shutdownErr
	}

	coord := current.coordinator
	pickerWindow = picker.New(fyneApp, settings.MinLead, time.Now, coord.Schedule)

	var trayManager *tray.Manager
	prefsWindow := preferences.New(fyneApp, settings, func(updated storage.Settings) {
		trayManager.SetPresets(updated.QuickPresets)
		savePreferences(configPath, updated, logger)
		syncLaunchAtLogin(service, updated.LaunchAtLogin, logger)
	})

	trayManager = tray.New(desktopApp, settings.QuickPresets, tray.Callbacks{
		OnOpenPicker: pickerWindow.Show,
		OnQuickSchedule: func(delay time.Duration) {
			if err := coord.Schedule(timeutil.PresetTarget(time.Now(), delay)); err != nil {
				logger.Warn("quick schedule rejected", "delay", delay, "error", err)
			}
		},
		OnCancel: func() {
			if err := coord.Cancel(); err != nil {
				logger.Warn("cancel failed", "error", err)
			}
		},
		OnPreferences: prefsWindow.Show,
		OnQuit: func() {
			go func() {
				if err := shutdown(); err != nil {
					logger.Warn("shutdown incomplete", "error", err)
				}
				fyne.Do(fyneApp.Quit)
			}()
		},
	})
	trayManager.Update(coord.State(), coord.Snapshot(), coord.ScheduleInfo())

	events := coord.Subscribe(16)
	go forwardToTray(events, coord, trayManager)

	fyneApp.Run()
	return shutdown()
}

// forwardToTray redraws the tray on the UI goroutine for every coordinator event.
func forwardToTray(events <-chan coordinator.Event, coord *coordinator.Coordinator, trayManager *tray.Manager) {
	for event := range events {
		snapshot := event.Snapshot
		if event.Type == coordinator.EventStateChange {
			snapshot = coord.Snapshot()
		}
		state := event.State
		info := timeutil.ScheduleInfo(state)
		fyne.Do(func() {
			trayManager.Update(state, snapshot, info)
		})
	}
}

func savePreferences(configPath string, updated storage.Settings, logger *slog.Logger) {
	fileSettings, err := storage.LoadSettings(configPath)
	if err != nil {
		logger.Warn("reload settings before save failed", "path", configPath, "error", err)
	}
	fileSettings.QuickPresets = updated.QuickPresets
	fileSettings.LaunchAtLogin = updated.LaunchAtLogin
	if err := storage.SaveSettings(configPath, fileSettings); err != nil {
		logger.Warn("save settings failed", "path", configPath, "error", err)
	}
}

func syncLaunchAtLogin(service platform.Service, enabled bool, logger *slog.Logger) {
	execPath, err := os.Executable()
	if err != nil {
		logger.Warn("resolve executable failed", "error", err)
		return
	}
	if err := platform.SyncLaunchAtLogin(service, appName, execPath, enabled); err != nil {
		logger.Warn("update launch at login failed", "enabled", enabled, "error", err)
	}
}
