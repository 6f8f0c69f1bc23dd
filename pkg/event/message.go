package event

// MessageKind tags an inbound broker message. The set is finite; kinds
// outside it (including KindList) are consumed but never produce an event.
type MessageKind uint8

const (
	// KindUpdate delivers new values for a set of sensors.
	KindUpdate MessageKind = iota

	// KindRequest asks the device to publish a set of sensors.
	KindRequest

	// KindRegister answers a registration request.
	KindRegister

	// KindUnregister asks the device to unregister.
	KindUnregister

	// KindAuth answers an authentication request.
	KindAuth

	// KindSchema answers a schema exchange.
	KindSchema

	// KindList answers a device listing; not consumed by this device.
	KindList
)

// String returns the kind name.
func (k MessageKind) String() string {
	switch k {
	case KindUpdate:
		return "UPDATE"
	case KindRequest:
		return "REQUEST"
	case KindRegister:
		return "REGISTER"
	case KindUnregister:
		return "UNREGISTER"
	case KindAuth:
		return "AUTH"
	case KindSchema:
		return "SCHEMA"
	case KindList:
		return "LIST"
	default:
		return "UNKNOWN"
	}
}

// Message is an inbound broker message after transport decoding: a kind,
// an error flag, and the payload fields relevant to that kind. Every
// received Message is acknowledged to the broker regardless of whether it
// translates into an event.
type Message struct {
	Kind  MessageKind
	Error bool

	// Token carries the device token on successful REGISTER answers.
	Token string

	// SensorIDs carries the sensor list on REQUEST messages.
	SensorIDs []int

	// Updates carries identifier/value pairs on UPDATE messages.
	Updates []Update
}
