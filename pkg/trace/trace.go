package trace

import "time"

// Category classifies a trace event.
type Category uint8

const (
	// CategoryLink - an external link changed state.
	CategoryLink Category = iota

	// CategoryMessage - an inbound broker message was received.
	CategoryMessage

	// CategoryEvent - an abstract event was emitted to the state machine.
	CategoryEvent

	// CategoryPublish - a sensor value was published to the broker.
	CategoryPublish

	// CategoryError - a non-fatal error was observed.
	CategoryError
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryLink:
		return "LINK"
	case CategoryMessage:
		return "MESSAGE"
	case CategoryEvent:
		return "EVENT"
	case CategoryPublish:
		return "PUBLISH"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Event is one captured supervisor event. CBOR encoding uses integer keys
// for compactness.
type Event struct {
	// Timestamp when the event occurred.
	Timestamp time.Time `cbor:"1,keyasint"`

	// DeviceID is the gateway's device id ("" before assignment).
	DeviceID string `cbor:"2,keyasint,omitempty"`

	// Category classifies the event.
	Category Category `cbor:"3,keyasint"`

	// Type-specific payload (exactly one is set).
	Link    *LinkEvent    `cbor:"4,keyasint,omitempty"`
	Message *MessageEvent `cbor:"5,keyasint,omitempty"`
	Emitted *EmittedEvent `cbor:"6,keyasint,omitempty"`
	Publish *PublishEvent `cbor:"7,keyasint,omitempty"`
	Error   *ErrorEvent   `cbor:"8,keyasint,omitempty"`
}

// LinkEvent records an external link state change.
type LinkEvent struct {
	// Link names the link ("fieldbus" or "broker").
	Link string `cbor:"1,keyasint"`

	// Up is the new link state.
	Up bool `cbor:"2,keyasint"`

	// Ready is the merged readiness after this change.
	Ready bool `cbor:"3,keyasint"`
}

// MessageEvent records an inbound broker message.
type MessageEvent struct {
	// Kind is the message kind name.
	Kind string `cbor:"1,keyasint"`

	// Failed is the message's error flag.
	Failed bool `cbor:"2,keyasint"`

	// Ignored reports whether the message produced no abstract event.
	Ignored bool `cbor:"3,keyasint"`
}

// EmittedEvent records an abstract event handed to the state machine.
type EmittedEvent struct {
	// Type is the abstract event type name.
	Type string `cbor:"1,keyasint"`

	// SensorIDs carries the sensor list for publish/update events.
	SensorIDs []int `cbor:"2,keyasint,omitempty"`
}

// PublishEvent records one sensor publication.
type PublishEvent struct {
	SensorID int    `cbor:"1,keyasint"`
	Value    string `cbor:"2,keyasint"`
}

// ErrorEvent records a non-fatal error.
type ErrorEvent struct {
	// Context names the operation that failed.
	Context string `cbor:"1,keyasint"`

	// Message is the error text.
	Message string `cbor:"2,keyasint"`
}

// Logger receives trace events. Implementations must be safe for concurrent
// use and must not block; a slow sink stalls the supervisor loop.
type Logger interface {
	Log(event Event)
}

// NoopLogger discards all events. Usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}

// MultiLogger fans events out to several loggers, e.g. console via
// SlogAdapter plus a binary file via FileLogger.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger over the given sinks.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log sends the event to every sink.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

var _ Logger = (*MultiLogger)(nil)
