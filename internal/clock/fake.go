package clock

import (
	"sync"
	"time"
)

// Fake is a manually driven Clock. Timers only fire from Advance, in due
// order, on the goroutine calling Advance.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	fake    *Fake
	due     time.Time
	fn      func()
	stopped bool
	fired   bool
}

// NewFake returns a Fake clock reading now.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

// Now returns the fake current time.
func (fake *Fake) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.now
}

// AfterFunc registers fn to run once the clock has advanced by delay.
func (fake *Fake) AfterFunc(delay time.Duration, fn func()) Timer {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	timer := &fakeTimer{fake: fake, due: fake.now.Add(delay), fn: fn}
	fake.timers = append(fake.timers, timer)
	return timer
}

// Advance moves the clock forward, firing every timer that becomes due,
// including timers registered by callbacks during the advance.
func (fake *Fake) Advance(delta time.Duration) {
	fake.mu.Lock()
	target := fake.now.Add(delta)
	fake.mu.Unlock()

	for {
		fake.mu.Lock()
		next := fake.nextDueLocked(target)
		if next == nil {
			fake.now = target
			fake.compactLocked()
			fake.mu.Unlock()
			return
		}
		if next.due.After(fake.now) {
			fake.now = next.due
		}
		next.fired = true
		fake.mu.Unlock()

		next.fn()
	}
}

// Jump moves the clock without firing timers, the way wall time moves
// while the machine is suspended.
func (fake *Fake) Jump(delta time.Duration) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.now = fake.now.Add(delta)
}

// Pending returns the number of timers that have neither fired nor been stopped.
func (fake *Fake) Pending() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	count := 0
	for _, timer := range fake.timers {
		if !timer.fired && !timer.stopped {
			count++
		}
	}
	return count
}

func (fake *Fake) nextDueLocked(limit time.Time) *fakeTimer {
	var next *fakeTimer
	for _, timer := range fake.timers {
		if timer.fired || timer.stopped || timer.due.After(limit) {
			continue
		}
		if next == nil || timer.due.Before(next.due) {
			next = timer
		}
	}
	return next
}

func (fake *Fake) compactLocked() {
	live := fake.timers[:0]
	for _, timer := range fake.timers {
		if !timer.fired && !timer.stopped {
			live = append(live, timer)
		}
	}
	fake.timers = live
}

func (timer *fakeTimer) Stop() bool {
	timer.fake.mu.Lock()
	defer timer.fake.mu.Unlock()
	if timer.fired || timer.stopped {
		return false
	}
	timer.stopped = true
	return true
}
