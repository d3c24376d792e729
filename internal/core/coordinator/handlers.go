package coordinator

import (
	"errors"
	"time"

	"sleeper/internal/core/model"
	"sleeper/internal/core/timeutil"
)

const (
	messageDeclined    = "Administrator authentication was cancelled"
	messageFailed      = "Failed to set sleep schedule. Please check system permissions."
	messageUnsupported = "Scheduled sleep is not supported on this system"
	messageUnknown     = "An unknown error occurred while scheduling sleep"
)

func (coordinator *Coordinator) restore() {
	record, ok := coordinator.store.Load()
	if !ok {
		return
	}
	coordinator.logger.Info("restored persisted schedule", "target", record.TargetTime, "created_at", record.CreatedAt)
	coordinator.state = model.ActiveCountdown(record.TargetTime)
	coordinator.published = coordinator.state
	coordinator.startCountdown(record.TargetTime)
}

func (coordinator *Coordinator) handleSchedule(target time.Time) error {
	switch coordinator.state.State {
	case model.StateScheduling, model.StateActive:
		coordinator.logger.Warn("schedule rejected", "state", coordinator.state.State, "target", target)
		return ErrNotIdle
	}

	if err := timeutil.Validate(target, coordinator.clock.Now(), coordinator.config.MinLead, coordinator.config.MaxHorizon); err != nil {
		coordinator.logger.Info("schedule validation failed", "target", target, "error", err)
		coordinator.enterError(err.Error())
		return err
	}

	coordinator.stopErrorRevert()
	coordinator.attempt++
	attempt := coordinator.attempt
	coordinator.setState(model.Scheduling())
	coordinator.logger.Info("arming sleep schedule", "target", target)

	ctx := coordinator.ctx
	executor := coordinator.executor
	go func() {
		var err error
		if executor == nil {
			err = &model.CommandError{Kind: model.CommandUnsupported, Message: "no command executor configured"}
		} else {
			err = executor.Arm(ctx, target)
		}
		coordinator.post(func() {
			coordinator.handleArmResult(attempt, target, err)
		})
	}()
	return nil
}

func (coordinator *Coordinator) handleArmResult(attempt uint64, target time.Time, err error) {
	if coordinator.state.State != model.StateScheduling || attempt != coordinator.attempt {
		coordinator.logger.Debug("stale arm result discarded", "target", target, "error", err)
		return
	}
	if err != nil {
		coordinator.logger.Error("arm sleep schedule failed", "target", target, "error", err)
		coordinator.enterError(commandMessage(err))
		return
	}

	coordinator.startCountdown(target)
	record := model.ScheduleRecord{
		TargetTime: target,
		IsActive:   true,
		CreatedAt:  coordinator.clock.Now(),
	}
	if err := coordinator.store.Save(record); err != nil {
		coordinator.logger.Warn("persist schedule failed", "target", target, "error", err)
	}
	coordinator.setState(model.ActiveCountdown(target))
	coordinator.logger.Info("sleep scheduled", "target", target)
}

func (coordinator *Coordinator) handleCancel() {
	if !coordinator.state.IsActive() {
		coordinator.logger.Debug("cancel ignored", "state", coordinator.state.State)
		return
	}
	target := coordinator.state.Target

	ctx := coordinator.ctx
	executor := coordinator.executor
	if executor != nil {
		go func() {
			if err := executor.CancelAll(ctx); err != nil {
				coordinator.logger.Warn("cancel OS sleep schedule failed", "target", target, "error", err)
			}
		}()
	}

	coordinator.reset()
	coordinator.logger.Info("sleep schedule cancelled", "target", target)
}

func (coordinator *Coordinator) handleComplete(target time.Time) {
	if !coordinator.isCurrent(target) {
		return
	}
	coordinator.reset()
	coordinator.logger.Info("sleep schedule reached target", "target", target)
}

func (coordinator *Coordinator) handleTick(target time.Time, snapshot model.Snapshot) {
	if !coordinator.isCurrent(target) {
		return
	}
	coordinator.mu.Lock()
	coordinator.snapshot = snapshot
	coordinator.mu.Unlock()
	coordinator.emit(Event{
		Type:     EventTick,
		State:    coordinator.state,
		Snapshot: snapshot,
		At:       coordinator.clock.Now(),
	})
}

func (coordinator *Coordinator) handleWake() {
	if !coordinator.state.IsActive() {
		coordinator.logger.Debug("system woke", "state", coordinator.state.State)
		return
	}
	target := coordinator.state.Target
	if !target.After(coordinator.clock.Now()) {
		coordinator.logger.Info("target passed during system sleep", "target", target)
		coordinator.handleComplete(target)
		return
	}
	coordinator.logger.Info("system woke, re-arming countdown", "target", target)
	coordinator.startCountdown(target)
}

func (coordinator *Coordinator) startCountdown(target time.Time) {
	coordinator.countdown.Start(target,
		func(snapshot model.Snapshot) {
			coordinator.post(func() { coordinator.handleTick(target, snapshot) })
		},
		func() {
			coordinator.post(func() { coordinator.handleComplete(target) })
		},
	)
}

// reset stops the countdown, clears the store and returns to Idle.
func (coordinator *Coordinator) reset() {
	coordinator.countdown.Stop()
	if err := coordinator.store.Clear(); err != nil {
		coordinator.logger.Warn("clear persisted schedule failed", "error", err)
	}
	coordinator.setState(model.Idle())
}

func (coordinator *Coordinator) isCurrent(target time.Time) bool {
	return coordinator.state.IsActive() && coordinator.state.Target.Equal(target)
}

func (coordinator *Coordinator) enterError(message string) {
	coordinator.stopErrorRevert()
	generation := coordinator.errorGen
	coordinator.errorTimer = coordinator.clock.AfterFunc(coordinator.config.ErrorDisplay, func() {
		coordinator.post(func() {
			if coordinator.state.State == model.StateError && generation == coordinator.errorGen {
				coordinator.errorTimer = nil
				coordinator.setState(model.Idle())
			}
		})
	})
	coordinator.setState(model.Failed(message))
}

func (coordinator *Coordinator) stopErrorRevert() {
	coordinator.errorGen++
	if coordinator.errorTimer != nil {
		coordinator.errorTimer.Stop()
		coordinator.errorTimer = nil
	}
}

func (coordinator *Coordinator) setState(state model.SchedulingState) {
	if coordinator.state.Equal(state) && coordinator.published.Equal(state) {
		return
	}
	coordinator.logger.Debug("state change", "from", coordinator.state.State, "to", state.State)
	coordinator.state = state

	coordinator.mu.Lock()
	coordinator.published = state
	if !state.IsActive() {
		coordinator.snapshot = model.Snapshot{}
	}
	coordinator.mu.Unlock()

	coordinator.emit(Event{
		Type:  EventStateChange,
		State: state,
		At:    coordinator.clock.Now(),
	})
}

// emit fans event out without blocking. A state change that finds a full
// buffer evicts the oldest pending event so observers always see the latest
// state; ticks are simply dropped.
func (coordinator *Coordinator) emit(event Event) {
	coordinator.mu.RLock()
	subscribers := append([]chan Event(nil), coordinator.subscribers...)
	coordinator.mu.RUnlock()
	for _, ch := range subscribers {
		select {
		case ch <- event:
			continue
		default:
		}
		if event.Type != EventStateChange {
			continue
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
			coordinator.logger.Warn("subscriber dropped state change", "state", event.State.State)
		}
	}
}

func commandMessage(err error) string {
	var commandErr *model.CommandError
	if !errors.As(err, &commandErr) {
		if err == nil {
			return messageUnknown
		}
		return "Error: " + err.Error()
	}
	switch commandErr.Kind {
	case model.CommandDeclined:
		return messageDeclined
	case model.CommandFailed:
		return messageFailed
	case model.CommandUnsupported:
		return messageUnsupported
	default:
		if commandErr.Message == "" {
			return messageUnknown
		}
		return "Error: " + commandErr.Message
	}
}
