package service

import "github.com/fieldgate-project/fieldgate-go/pkg/event"

// translateMessage maps an inbound broker message to the abstract event the
// state machine consumes. ok reports whether the message produced an event;
// messages that do not (error-flagged update, request and unregister
// messages, list replies, unknown kinds) are consumed and ignored either way,
// so a malformed or unexpected message can never wedge the inbound stream.
func translateMessage(msg event.Message) (ev event.Event, ok bool) {
	switch msg.Kind {
	case event.KindUpdate:
		if msg.Error {
			return event.Event{}, false
		}
		return event.DataUpdate(msg.Updates), true

	case event.KindRequest:
		if msg.Error {
			return event.Event{}, false
		}
		return event.PublishRequest(msg.SensorIDs...), true

	case event.KindRegister:
		if msg.Error {
			return event.Event{Type: event.TypeRegisterFailed}, true
		}
		return event.RegisterOK(msg.Token), true

	case event.KindUnregister:
		if msg.Error {
			return event.Event{}, false
		}
		return event.Event{Type: event.TypeUnregisterRequested}, true

	case event.KindAuth:
		if msg.Error {
			return event.Event{Type: event.TypeAuthFailed}, true
		}
		return event.Event{Type: event.TypeAuthOK}, true

	case event.KindSchema:
		if msg.Error {
			return event.Event{Type: event.TypeSchemaFailed}, true
		}
		return event.Event{Type: event.TypeSchemaOK}, true

	case event.KindList:
		return event.Event{}, false

	default:
		return event.Event{}, false
	}
}
