//go:build linux

package platform

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"sleeper/internal/core/model"
)

const (
	logindPath      = dbus.ObjectPath("/org/freedesktop/login1")
	logindInterface = "org.freedesktop.login1.Manager"
	prepareForSleep = "PrepareForSleep"
)

// LogindMonitor listens for logind PrepareForSleep signals on the system bus.
type LogindMonitor struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
	events  chan model.PowerEvent
	logger  *slog.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// NewPowerMonitor returns a logind monitor, or a GapMonitor when the system
// bus is unavailable.
func NewPowerMonitor(logger *slog.Logger) PowerMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	monitor, err := NewLogindMonitor(logger)
	if err != nil {
		logger.Warn("logind unavailable, falling back to wall clock wake detection", "error", err)
		return NewGapMonitor(gapCheckInterval, gapSlack, logger)
	}
	return monitor
}

// NewLogindMonitor connects to the system bus and subscribes to sleep signals.
func NewLogindMonitor(logger *slog.Logger) (*LogindMonitor, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(logindPath),
		dbus.WithMatchInterface(logindInterface),
		dbus.WithMatchMember(prepareForSleep),
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("subscribe %s: %w", prepareForSleep, err)
	}

	monitor := &LogindMonitor{
		conn:    conn,
		signals: make(chan *dbus.Signal, 8),
		events:  make(chan model.PowerEvent, 4),
		logger:  logger,
		done:    make(chan struct{}),
	}
	conn.Signal(monitor.signals)
	go monitor.run()
	return monitor, nil
}

func (monitor *LogindMonitor) Events() <-chan model.PowerEvent {
	return monitor.events
}

// Close unsubscribes and closes the bus connection.
func (monitor *LogindMonitor) Close() error {
	var err error
	monitor.closeOnce.Do(func() {
		monitor.conn.RemoveSignal(monitor.signals)
		close(monitor.done)
		err = monitor.conn.Close()
	})
	return err
}

func (monitor *LogindMonitor) run() {
	defer close(monitor.events)
	for {
		select {
		case <-monitor.done:
			return
		case signal, ok := <-monitor.signals:
			if !ok {
				return
			}
			event, ok := powerEventFromSignal(signal)
			if !ok {
				continue
			}
			monitor.logger.Debug("logind power signal", "event", event)
			select {
			case monitor.events <- event:
			default:
				monitor.logger.Warn("power event dropped", "event", event)
			}
		}
	}
}

// powerEventFromSignal maps PrepareForSleep(true) to PowerWillSleep and
// PrepareForSleep(false) to PowerDidWake.
func powerEventFromSignal(signal *dbus.Signal) (model.PowerEvent, bool) {
	if signal == nil || signal.Name != logindInterface+"."+prepareForSleep || len(signal.Body) != 1 {
		return "", false
	}
	starting, ok := signal.Body[0].(bool)
	if !ok {
		return "", false
	}
	if starting {
		return model.PowerWillSleep, true
	}
	return model.PowerDidWake, true
}
