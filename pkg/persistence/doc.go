// Package persistence stores the gateway's registration credentials in a
// JSON file with atomic replacement semantics.
package persistence
