// Package broker implements the MQTT link to the cloud message broker.
// Protocol requests (register, auth, schema, data) are published as JSON to
// shared topics; answers and cloud-initiated messages arrive on a
// per-device topic and are decoded into transport-independent messages.
package broker
