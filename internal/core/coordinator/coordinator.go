// Package coordinator owns the sleep schedule state machine. All state
// mutations run on a single loop goroutine; timer callbacks, executor
// results and power notifications are posted to it through a mailbox.
package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"sleeper/internal/clock"
	"sleeper/internal/core/countdown"
	"sleeper/internal/core/model"
	"sleeper/internal/core/timeutil"
)

var (
	// ErrNotIdle is returned by Schedule while a schedule is in flight or active.
	ErrNotIdle = errors.New("schedule already in progress")
	// ErrClosed is returned after Shutdown.
	ErrClosed = errors.New("coordinator closed")
)

// Executor arms and clears the OS-level sleep schedule. Calls may block on
// interactive authorization.
type Executor interface {
	Arm(ctx context.Context, target time.Time) error
	CancelAll(ctx context.Context) error
}

// Store persists the single active schedule.
type Store interface {
	Save(record model.ScheduleRecord) error
	Load() (model.ScheduleRecord, bool)
	Clear() error
}

// Countdown drives periodic ticks toward a target.
type Countdown interface {
	Start(target time.Time, onTick func(model.Snapshot), onComplete func())
	Stop()
}

// PowerMonitor delivers system sleep and wake signals.
type PowerMonitor interface {
	Events() <-chan model.PowerEvent
}

// Deps are the collaborators injected into a Coordinator. Only Executor
// and Store are expected in production; the rest default.
type Deps struct {
	Clock     clock.Clock
	Store     Store
	Executor  Executor
	Countdown Countdown
	Power     PowerMonitor
	Logger    *slog.Logger
}

type discardStore struct{}

func (discardStore) Save(model.ScheduleRecord) error {
	return nil
}

func (discardStore) Load() (model.ScheduleRecord, bool) {
	return model.ScheduleRecord{}, false
}

func (discardStore) Clear() error {
	return nil
}

// Coordinator is the schedule state machine.
type Coordinator struct {
	config    model.CoordinatorConfig
	clock     clock.Clock
	store     Store
	executor  Executor
	countdown Countdown
	logger    *slog.Logger

	ctx       context.Context
	cancelCtx context.CancelFunc
	mailbox   *mailbox
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	// Owned by the loop goroutine.
	state      model.SchedulingState
	attempt    uint64
	errorGen   uint64
	errorTimer clock.Timer

	mu          sync.RWMutex
	published   model.SchedulingState
	snapshot    model.Snapshot
	subscribers []chan Event
}

// New builds a Coordinator, restores a persisted schedule when one is
// still valid and starts the event loop.
func New(config model.CoordinatorConfig, deps Deps) *Coordinator {
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Store == nil {
		deps.Store = discardStore{}
	}
	if deps.Countdown == nil {
		deps.Countdown = countdown.New(deps.Clock, deps.Logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	coordinator := &Coordinator{
		config:    config.Normalize(),
		clock:     deps.Clock,
		store:     deps.Store,
		executor:  deps.Executor,
		countdown: deps.Countdown,
		logger:    deps.Logger,
		ctx:       ctx,
		cancelCtx: cancel,
		mailbox:   newMailbox(),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		state:     model.Idle(),
		published: model.Idle(),
	}

	coordinator.restore()
	go coordinator.run()
	if deps.Power != nil {
		go coordinator.watchPower(deps.Power.Events())
	}
	return coordinator
}

// Subscribe registers an observer channel. Slow observers miss events
// rather than stalling the loop.
func (coordinator *Coordinator) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	coordinator.mu.Lock()
	defer coordinator.mu.Unlock()
	select {
	case <-coordinator.done:
		close(ch)
	default:
		coordinator.subscribers = append(coordinator.subscribers, ch)
	}
	return ch
}

// State returns the last published state.
func (coordinator *Coordinator) State() model.SchedulingState {
	coordinator.mu.RLock()
	defer coordinator.mu.RUnlock()
	return coordinator.published
}

// Snapshot returns the most recent countdown snapshot, zero when idle.
func (coordinator *Coordinator) Snapshot() model.Snapshot {
	coordinator.mu.RLock()
	defer coordinator.mu.RUnlock()
	return coordinator.snapshot
}

// CanSchedule reports whether the coordinator is idle.
func (coordinator *Coordinator) CanSchedule() bool {
	return coordinator.State().State == model.StateIdle
}

// ScheduleInfo describes the active schedule, or "" when none is active.
func (coordinator *Coordinator) ScheduleInfo() string {
	return timeutil.ScheduleInfo(coordinator.State())
}

// Schedule validates target and, when valid, dispatches the arm command.
// The command result arrives asynchronously; until then the state is
// Scheduling. Invalid targets move the state to Error and return the
// validation error without contacting the executor.
func (coordinator *Coordinator) Schedule(target time.Time) error {
	var result error
	if err := coordinator.call(func() {
		result = coordinator.handleSchedule(target)
	}); err != nil {
		return err
	}
	return result
}

// Cancel clears an active schedule. Outside ActiveCountdown it does nothing.
func (coordinator *Coordinator) Cancel() error {
	return coordinator.call(coordinator.handleCancel)
}

// HandleWillSleep records a system sleep notification.
func (coordinator *Coordinator) HandleWillSleep() {
	coordinator.post(func() {
		coordinator.logger.Debug("system will sleep", "state", coordinator.state.State)
	})
}

// HandleDidWake re-arms or completes the countdown after a system wake.
func (coordinator *Coordinator) HandleDidWake() {
	coordinator.post(coordinator.handleWake)
}

// Shutdown stops the loop. An active schedule is cancelled at the OS level
// on a best-effort basis; the persisted record is cleared only when that
// cancellation succeeds so a later launch can still recover it.
func (coordinator *Coordinator) Shutdown(ctx context.Context) error {
	var (
		wasActive bool
		target    time.Time
	)
	err := coordinator.call(func() {
		wasActive = coordinator.state.IsActive()
		target = coordinator.state.Target
		coordinator.countdown.Stop()
		coordinator.stopErrorRevert()
		if coordinator.state.State != model.StateIdle {
			coordinator.setState(model.Idle())
		}
	})
	if errors.Is(err, ErrClosed) {
		return nil
	}

	var cancelErr error
	if wasActive && coordinator.executor != nil {
		cancelErr = coordinator.executor.CancelAll(ctx)
		if cancelErr != nil {
			coordinator.logger.Warn("cancel on shutdown failed, keeping persisted schedule", "target", target, "error", cancelErr)
		} else if err := coordinator.store.Clear(); err != nil {
			coordinator.logger.Warn("clear schedule on shutdown failed", "error", err)
		}
	}

	coordinator.closeOnce.Do(func() {
		coordinator.mailbox.close()
		close(coordinator.quit)
	})
	<-coordinator.done
	coordinator.cancelCtx()

	coordinator.mu.Lock()
	subscribers := coordinator.subscribers
	coordinator.subscribers = nil
	coordinator.mu.Unlock()
	for _, ch := range subscribers {
		close(ch)
	}

	coordinator.logger.Info("coordinator stopped", "cancelled_active", wasActive && cancelErr == nil)
	return cancelErr
}

func (coordinator *Coordinator) run() {
	defer close(coordinator.done)
	for {
		select {
		case <-coordinator.quit:
			return
		case <-coordinator.mailbox.ready:
			for _, fn := range coordinator.mailbox.drain() {
				fn()
			}
		}
	}
}

func (coordinator *Coordinator) call(fn func()) error {
	finished := make(chan struct{})
	if !coordinator.mailbox.put(func() {
		fn()
		close(finished)
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-coordinator.done:
		return ErrClosed
	}
}

func (coordinator *Coordinator) post(fn func()) {
	if !coordinator.mailbox.put(fn) {
		coordinator.logger.Debug("event dropped after shutdown")
	}
}

func (coordinator *Coordinator) watchPower(events <-chan model.PowerEvent) {
	for {
		select {
		case <-coordinator.done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			switch event {
			case model.PowerWillSleep:
				coordinator.HandleWillSleep()
			case model.PowerDidWake:
				coordinator.HandleDidWake()
			}
		}
	}
}
