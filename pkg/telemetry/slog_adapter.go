package telemetry

import (
	"context"
	"log/slog"
)

// SlogAdapter writes probe events to an slog.Logger.
// Useful for development when you want to see probe events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.String("step", event.Step.String()),
		slog.String("category", event.Category.String()),
	}

	// Add type-specific attributes
	switch {
	case event.Region != nil:
		attrs = append(attrs,
			slog.Uint64("base", event.Region.Base),
			slog.Int("size", event.Region.Size),
			slog.String("mode", event.Region.Mode),
		)
	case event.Write != nil:
		attrs = append(attrs, slog.Int("length", event.Write.Length))
	case event.Transition != nil:
		attrs = append(attrs,
			slog.String("old_mode", event.Transition.OldMode),
			slog.String("new_mode", event.Transition.NewMode),
			slog.Uint64("os_previous", uint64(event.Transition.OSPrevious)),
		)
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	if event.Note != "" {
		attrs = append(attrs, slog.String("note", event.Note))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "probe", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
