package service

import "sync"

const loopQueueSize = 128

// Loop is the single goroutine on which all device state is touched. Link
// callbacks, poll ticks, policy timeouts and inbound broker messages are
// dispatched here, so the supervisor, the device aggregate and the state
// machine never need locks.
type Loop struct {
	mu     sync.Mutex
	ch     chan func()
	closed bool
	wg     sync.WaitGroup
}

// NewLoop creates and starts the loop goroutine.
func NewLoop() *Loop {
	l := &Loop{ch: make(chan func(), loopQueueSize)}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for fn := range l.ch {
		fn()
	}
}

// Dispatch queues fn for execution on the loop goroutine. Calls after Stop
// are dropped.
func (l *Loop) Dispatch(fn func()) {
	l.dispatch(fn)
}

func (l *Loop) dispatch(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.ch <- fn
	return true
}

// Flush blocks until every function queued before the call has run.
func (l *Loop) Flush() {
	done := make(chan struct{})
	if !l.dispatch(func() { close(done) }) {
		return
	}
	<-done
}

// Stop drains the queue and terminates the loop goroutine. It must not be
// called from the loop itself. Stop is idempotent.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.ch)
	l.mu.Unlock()

	l.wg.Wait()
}
