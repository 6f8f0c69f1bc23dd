package event

import "github.com/fieldgate-project/fieldgate-go/pkg/model"

// Type identifies an abstract protocol event fed into the external state
// machine.
type Type uint8

const (
	// TypeReady - both links are simultaneously up.
	TypeReady Type = iota

	// TypeNotReady - at least one link is down.
	TypeNotReady

	// TypeTimeout - the message timer expired.
	TypeTimeout

	// TypeDataUpdate - the broker delivered new values to apply.
	TypeDataUpdate

	// TypePublishRequest - one or more sensors should be published.
	TypePublishRequest

	// TypeRegisterOK - the broker accepted registration; carries the token.
	TypeRegisterOK

	// TypeRegisterFailed - the broker rejected registration.
	TypeRegisterFailed

	// TypeAuthOK - the broker accepted authentication.
	TypeAuthOK

	// TypeAuthFailed - the broker rejected authentication.
	TypeAuthFailed

	// TypeSchemaOK - the broker accepted the schema exchange.
	TypeSchemaOK

	// TypeSchemaFailed - the broker rejected the schema exchange.
	TypeSchemaFailed

	// TypeUnregisterRequested - the broker asked the device to unregister.
	TypeUnregisterRequested
)

// String returns the event type name.
func (t Type) String() string {
	switch t {
	case TypeReady:
		return "READY"
	case TypeNotReady:
		return "NOT_READY"
	case TypeTimeout:
		return "TIMEOUT"
	case TypeDataUpdate:
		return "DATA_UPDATE"
	case TypePublishRequest:
		return "PUBLISH_REQUEST"
	case TypeRegisterOK:
		return "REGISTER_OK"
	case TypeRegisterFailed:
		return "REGISTER_FAILED"
	case TypeAuthOK:
		return "AUTH_OK"
	case TypeAuthFailed:
		return "AUTH_FAILED"
	case TypeSchemaOK:
		return "SCHEMA_OK"
	case TypeSchemaFailed:
		return "SCHEMA_FAILED"
	case TypeUnregisterRequested:
		return "UNREGISTER_REQUESTED"
	default:
		return "UNKNOWN"
	}
}

// Update pairs a sensor identifier with a value delivered by the broker.
type Update struct {
	SensorID int
	Value    model.Value
}

// Event is one abstract protocol event. The payload fields are populated
// per type: Token for REGISTER_OK, SensorIDs for PUBLISH_REQUEST, Updates
// for DATA_UPDATE. Payloads are forwarded as delivered, unmodified.
type Event struct {
	Type      Type
	Token     string
	SensorIDs []int
	Updates   []Update
}

// Ready returns a READY event.
func Ready() Event { return Event{Type: TypeReady} }

// NotReady returns a NOT_READY event.
func NotReady() Event { return Event{Type: TypeNotReady} }

// Timeout returns a TIMEOUT event.
func Timeout() Event { return Event{Type: TypeTimeout} }

// PublishRequest returns a PUBLISH_REQUEST event carrying sensorIDs.
// The downstream consumer always expects a list, even for one sensor.
func PublishRequest(sensorIDs ...int) Event {
	return Event{Type: TypePublishRequest, SensorIDs: sensorIDs}
}

// DataUpdate returns a DATA_UPDATE event carrying updates.
func DataUpdate(updates []Update) Event {
	return Event{Type: TypeDataUpdate, Updates: updates}
}

// RegisterOK returns a REGISTER_OK event carrying the assigned token.
func RegisterOK(token string) Event {
	return Event{Type: TypeRegisterOK, Token: token}
}
