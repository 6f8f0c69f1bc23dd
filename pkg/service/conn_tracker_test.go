package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldgate-project/fieldgate-go/pkg/event"
)

func collectTracker() (*connTracker, *[]event.Type) {
	var got []event.Type
	t := newConnTracker(func(ev event.Event) {
		got = append(got, ev.Type)
	})
	return t, &got
}

func TestConnTrackerReadyOnSecondLink(t *testing.T) {
	tr, got := collectTracker()

	tr.Report(LinkFieldbus, true)
	tr.Report(LinkBroker, true)

	assert.Equal(t, []event.Type{event.TypeNotReady, event.TypeReady}, *got)
}

func TestConnTrackerNotReadyOnEveryDownReport(t *testing.T) {
	tr, got := collectTracker()

	tr.Report(LinkBroker, false)
	tr.Report(LinkBroker, false)
	tr.Report(LinkFieldbus, true)

	assert.Equal(t, []event.Type{
		event.TypeNotReady, event.TypeNotReady, event.TypeNotReady,
	}, *got)
}

func TestConnTrackerReadyOnlyOnTransition(t *testing.T) {
	tr, got := collectTracker()

	tr.Report(LinkFieldbus, true)
	tr.Report(LinkBroker, true)
	// Repeating an up report while already ready must not re-emit READY.
	tr.Report(LinkBroker, true)

	assert.Equal(t, []event.Type{event.TypeNotReady, event.TypeReady}, *got)
}

func TestConnTrackerLossAndRecovery(t *testing.T) {
	tr, got := collectTracker()

	tr.Report(LinkFieldbus, true)
	tr.Report(LinkBroker, true)
	tr.Report(LinkFieldbus, false)
	tr.Report(LinkFieldbus, true)

	assert.Equal(t, []event.Type{
		event.TypeNotReady,
		event.TypeReady,
		event.TypeNotReady,
		event.TypeReady,
	}, *got)
	assert.True(t, tr.ready())
}
