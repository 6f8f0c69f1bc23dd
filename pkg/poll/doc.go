// Package poll schedules the per-sensor fieldbus read cycle: one ticker per
// registered sensor, all ticks funneled through the supervisor's serial
// dispatch, with create / start / stop / destroy-as-a-set semantics.
package poll
