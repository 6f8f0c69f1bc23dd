// Package fieldbus implements the physical leg to the sensor hardware: a
// Transport abstraction over the wire protocol, a supervised Link that
// reconnects with backoff after losses, and an in-memory Simulator for
// development and tests.
package fieldbus
