package service

import "errors"

// Startup errors. Each startup failure triggers rollback of exactly the
// resources acquired by completed earlier steps; everything else is returned
// to the immediate caller as a plain error.
var (
	ErrInvalidConfig  = errors.New("invalid device configuration")
	ErrPollCreation   = errors.New("poll creation failed")
	ErrFieldbusLink   = errors.New("fieldbus link start failed")
	ErrBrokerLink     = errors.New("broker link start failed")
	ErrAlreadyStarted = errors.New("supervisor already started")
	ErrNotStarted     = errors.New("supervisor not started")
)

// Link identifies one of the two independent external links.
type Link uint8

const (
	// LinkFieldbus is the physical leg to the sensor hardware.
	LinkFieldbus Link = iota

	// LinkBroker is the network leg to the cloud message broker.
	LinkBroker
)

// String returns the link name.
func (l Link) String() string {
	switch l {
	case LinkFieldbus:
		return "fieldbus"
	case LinkBroker:
		return "broker"
	default:
		return "unknown"
	}
}

// rollback is a stack of compensating actions for the staged startup
// sequence. A failure at step N runs exactly the compensations pushed by
// steps 1..N-1, in reverse order.
type rollback []func()

func (r *rollback) push(fn func()) {
	*r = append(*r, fn)
}

func (r rollback) run() {
	for i := len(r) - 1; i >= 0; i-- {
		r[i]()
	}
}
