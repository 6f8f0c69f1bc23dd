// Package service implements the gateway device supervisor: the component
// that owns the device aggregate, brings its subsystems up and down in
// order, merges the two external link states into a readiness view, turns
// poll ticks into change-detected publish requests, and translates inbound
// broker messages into the abstract events the protocol state machine
// consumes.
//
// All device state is confined to a single event loop goroutine (Loop);
// callbacks arriving from links, timers and the broker are dispatched onto
// it. The state machine itself lives outside this package and is injected.
package service
