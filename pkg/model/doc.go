// Package model defines the gateway device aggregate: the Thing, its sensor
// registry, and the typed data items the supervisor publishes.
//
// The model layer is deliberately passive. It holds state and enforces
// structural invariants (unique sensor IDs, immutable schema/config/locator
// per item) but performs no I/O; the service layer drives all mutation from
// its serial event loop, which is why none of these types carry locks.
package model
