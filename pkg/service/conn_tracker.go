package service

import "github.com/fieldgate-project/fieldgate-go/pkg/event"

// connTracker merges the fieldbus and broker link states into the single
// readiness view the state machine consumes. It runs on the loop goroutine
// and holds no locks.
type connTracker struct {
	fieldbusUp bool
	brokerUp   bool

	emit func(ev event.Event)
}

func newConnTracker(emit func(ev event.Event)) *connTracker {
	return &connTracker{emit: emit}
}

func (t *connTracker) ready() bool {
	return t.fieldbusUp && t.brokerUp
}

// Report records a state change of one link. Any report that leaves the
// device not ready emits a not-ready event, including the first report ever.
// A ready event fires exactly on the transition to both links up.
func (t *connTracker) Report(link Link, up bool) {
	wasReady := t.ready()

	switch link {
	case LinkFieldbus:
		t.fieldbusUp = up
	case LinkBroker:
		t.brokerUp = up
	}

	if !t.ready() {
		t.emit(event.NotReady())
		return
	}
	if !wasReady {
		t.emit(event.Ready())
	}
}
