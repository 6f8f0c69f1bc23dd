package service

import (
	"time"

	"github.com/fieldgate-project/fieldgate-go/pkg/event"
)

// msgTimer is the single message timeout the state machine arms around
// request/response exchanges. At most one exists at a time; expiry surfaces
// as a TIMEOUT event. All methods run on the loop goroutine.
type msgTimer struct {
	timer  *time.Timer
	active bool
}

func (t *msgTimer) create(d time.Duration, fire func()) {
	if t.active {
		return
	}
	t.active = true
	t.timer = time.AfterFunc(d, fire)
}

// modify rearms the timer with a new duration. No-op when no timer exists.
func (t *msgTimer) modify(d time.Duration) {
	if !t.active {
		return
	}
	t.timer.Reset(d)
}

func (t *msgTimer) remove() {
	if !t.active {
		return
	}
	t.timer.Stop()
	t.timer = nil
	t.active = false
}

// MsgTimeoutCreate arms the message timer. If one is already armed the call
// is a no-op, so a retransmitting state machine cannot stack timers.
func (s *Supervisor) MsgTimeoutCreate(d time.Duration) {
	s.timer.create(d, func() {
		s.loop.Dispatch(s.handleMsgTimeout)
	})
}

// MsgTimeoutModify rearms the message timer with a new duration. No-op when
// no timer is armed.
func (s *Supervisor) MsgTimeoutModify(d time.Duration) {
	s.timer.modify(d)
}

// MsgTimeoutRemove cancels the message timer if armed.
func (s *Supervisor) MsgTimeoutRemove() {
	s.timer.remove()
}

func (s *Supervisor) handleMsgTimeout() {
	// A remove may have raced the expiry onto the loop; the armed flag
	// decides.
	if !s.timer.active {
		return
	}
	s.inputEvent(event.Timeout())
}
