package trace

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at Debug level. Useful
// in development to see the supervisor's traffic on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates an adapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}
	if event.DeviceID != "" {
		attrs = append(attrs, slog.String("device_id", event.DeviceID))
	}

	switch {
	case event.Link != nil:
		attrs = append(attrs,
			slog.String("link", event.Link.Link),
			slog.Bool("up", event.Link.Up),
			slog.Bool("ready", event.Link.Ready),
		)
	case event.Message != nil:
		attrs = append(attrs,
			slog.String("kind", event.Message.Kind),
			slog.Bool("failed", event.Message.Failed),
			slog.Bool("ignored", event.Message.Ignored),
		)
	case event.Emitted != nil:
		attrs = append(attrs, slog.String("event", event.Emitted.Type))
		if len(event.Emitted.SensorIDs) > 0 {
			attrs = append(attrs, slog.Any("sensor_ids", event.Emitted.SensorIDs))
		}
	case event.Publish != nil:
		attrs = append(attrs,
			slog.Int("sensor_id", event.Publish.SensorID),
			slog.String("value", event.Publish.Value),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_context", event.Error.Context),
			slog.String("error_msg", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
