// Package event defines the abstract vocabulary exchanged between the
// supervisor core and the external protocol state machine: the Event types
// the core emits, and the inbound broker Message shape it translates from.
// No wire format is owned here.
package event
