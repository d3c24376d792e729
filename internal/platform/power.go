package platform

import (
	"log/slog"
	"sync"
	"time"

	"sleeper/internal/core/model"
)

const (
	gapCheckInterval = 15 * time.Second
	gapSlack         = 30 * time.Second
)

// PowerMonitor delivers system sleep and wake notifications.
type PowerMonitor interface {
	Events() <-chan model.PowerEvent
	Close() error
}

// GapMonitor infers a system wake from a jump in wall-clock time between
// two ticks. It never reports PowerWillSleep.
type GapMonitor struct {
	interval time.Duration
	slack    time.Duration
	last     time.Time
	ticks    <-chan time.Time
	stopTick func()
	logger   *slog.Logger

	events    chan model.PowerEvent
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewGapMonitor starts a GapMonitor checking every interval.
func NewGapMonitor(interval, slack time.Duration, logger *slog.Logger) *GapMonitor {
	ticker := time.NewTicker(interval)
	return newGapMonitor(ticker.C, ticker.Stop, time.Now, interval, slack, logger)
}

func newGapMonitor(ticks <-chan time.Time, stopTick func(), now func() time.Time, interval, slack time.Duration, logger *slog.Logger) *GapMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	monitor := &GapMonitor{
		interval: interval,
		slack:    slack,
		last:     now().Round(0),
		ticks:    ticks,
		stopTick: stopTick,
		logger:   logger,
		events:   make(chan model.PowerEvent, 4),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go monitor.run()
	return monitor
}

func (monitor *GapMonitor) Events() <-chan model.PowerEvent {
	return monitor.events
}

// Close stops the monitor and closes the event channel.
func (monitor *GapMonitor) Close() error {
	monitor.closeOnce.Do(func() {
		close(monitor.stop)
		<-monitor.done
		if monitor.stopTick != nil {
			monitor.stopTick()
		}
		close(monitor.events)
	})
	return nil
}

func (monitor *GapMonitor) run() {
	defer close(monitor.done)
	for {
		select {
		case <-monitor.stop:
			return
		case tick := <-monitor.ticks:
			// Round(0) drops the monotonic reading, which does not advance while suspended.
			current := tick.Round(0)
			gap := current.Sub(monitor.last)
			monitor.last = current
			if gap <= monitor.interval+monitor.slack {
				continue
			}
			monitor.logger.Info("wall clock jumped, assuming system wake", "gap", gap)
			select {
			case monitor.events <- model.PowerDidWake:
			default:
			}
		}
	}
}
