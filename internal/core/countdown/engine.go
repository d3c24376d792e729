// Package countdown runs a live countdown toward a single target time with
// an update cadence that tightens as the deadline approaches.
package countdown

import (
	"log/slog"
	"sync"
	"time"

	"sleeper/internal/clock"
	"sleeper/internal/core/model"
	"sleeper/internal/core/timeutil"
)

// Engine produces snapshots for one target at a time. Callbacks run while
// the engine lock is held, so they must not call back into the engine.
type Engine struct {
	mu         sync.Mutex
	clock      clock.Clock
	logger     *slog.Logger
	generation uint64
	running    bool
	target     time.Time
	timer      clock.Timer
	onTick     func(model.Snapshot)
	onComplete func()
}

// New creates an idle engine.
func New(clk clock.Clock, logger *slog.Logger) *Engine {
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{clock: clk, logger: logger}
}

// NextInterval returns the delay before the next tick for the given remaining time.
func NextInterval(remaining time.Duration) time.Duration {
	switch {
	case remaining > time.Hour:
		return time.Minute
	case remaining > 10*time.Minute:
		return 30 * time.Second
	case remaining > time.Minute:
		return 10 * time.Second
	default:
		return time.Second
	}
}

// Start replaces any running countdown, emits one tick immediately and keeps
// ticking until the target is reached, at which point onComplete fires once.
func (engine *Engine) Start(target time.Time, onTick func(model.Snapshot), onComplete func()) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.stopLocked()
	engine.generation++
	engine.running = true
	engine.target = target
	engine.onTick = onTick
	engine.onComplete = onComplete
	engine.logger.Debug("countdown started", "target", target, "generation", engine.generation)

	engine.evaluateLocked(engine.generation)
}

// Stop cancels the pending tick. It is safe to call repeatedly.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.running {
		engine.logger.Debug("countdown stopped", "target", engine.target, "generation", engine.generation)
	}
	engine.stopLocked()
}

// Running reports whether a countdown is in progress.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.running
}

// Target returns the current target, or the zero time when stopped.
func (engine *Engine) Target() time.Time {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.target
}

func (engine *Engine) fire(generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.evaluateLocked(generation)
}

func (engine *Engine) evaluateLocked(generation uint64) {
	if !engine.running || generation != engine.generation {
		return
	}
	engine.timer = nil

	remaining := engine.target.Sub(engine.clock.Now())
	if remaining <= 0 {
		onComplete := engine.onComplete
		engine.logger.Info("countdown reached target", "target", engine.target)
		engine.stopLocked()
		if onComplete != nil {
			onComplete()
		}
		return
	}

	snapshot := timeutil.NewSnapshot(engine.target, remaining)
	interval := NextInterval(remaining)
	engine.timer = engine.clock.AfterFunc(interval, func() {
		engine.fire(generation)
	})
	if engine.onTick != nil {
		engine.onTick(snapshot)
	}
}

func (engine *Engine) stopLocked() {
	if engine.timer != nil {
		engine.timer.Stop()
		engine.timer = nil
	}
	if engine.running {
		engine.generation++
	}
	engine.running = false
	engine.target = time.Time{}
	engine.onTick = nil
	engine.onComplete = nil
}
