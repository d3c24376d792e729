package coordinator

import "sync"

// mailbox is an unbounded FIFO of closures executed by the coordinator loop.
// Producers never block, so timer callbacks and executor goroutines can post
// while the loop itself is posting.
type mailbox struct {
	mu     sync.Mutex
	queue  []func()
	ready  chan struct{}
	closed bool
}

func newMailbox() *mailbox {
	return &mailbox{ready: make(chan struct{}, 1)}
}

func (box *mailbox) put(fn func()) bool {
	box.mu.Lock()
	if box.closed {
		box.mu.Unlock()
		return false
	}
	box.queue = append(box.queue, fn)
	box.mu.Unlock()

	select {
	case box.ready <- struct{}{}:
	default:
	}
	return true
}

func (box *mailbox) drain() []func() {
	box.mu.Lock()
	defer box.mu.Unlock()
	queued := box.queue
	box.queue = nil
	return queued
}

func (box *mailbox) close() {
	box.mu.Lock()
	defer box.mu.Unlock()
	box.closed = true
	box.queue = nil
}
