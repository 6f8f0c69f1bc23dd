// Package policy implements the change-detection rules deciding when a
// sensor value is worth publishing: value change, lower/upper thresholds,
// and a periodic time rule driven by the Engine's timer.
package policy
