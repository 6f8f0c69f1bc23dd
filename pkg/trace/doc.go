// Package trace provides structured capture of supervisor activity: link
// state changes, inbound broker messages, emitted abstract events,
// publications and non-fatal errors.
//
// This is separate from operational logging (slog) - the capture stream is a
// complete machine-readable trace for debugging a misbehaving gateway in the
// field. Sinks implement Logger:
//
//	// Development: events on the console via slog
//	tracer := trace.NewSlogAdapter(slog.Default())
//
//	// Production: CBOR file
//	tracer, _ := trace.NewFileLogger("/var/log/fieldgate/device.trace")
//
//	// Both
//	tracer := trace.NewMultiLogger(slogSink, fileSink)
package trace
