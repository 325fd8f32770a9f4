package telemetry

import (
	"context"
	"log/slog"
	"time"
)

// Publisher publishes events to a telemetry backend.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// Tracker builds events and hands them to a Publisher. Publish failures are
// logged and never reach the caller.
type Tracker struct {
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewTracker wraps publisher. A nil logger discards failures.
func NewTracker(publisher Publisher, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{publisher: publisher, logger: logger, now: time.Now}
}

// Track publishes the named event.
func (t *Tracker) Track(ctx context.Context, name string, properties map[string]any) {
	if t == nil || t.publisher == nil {
		return
	}

	event := NewEvent(name, properties, t.now())
	if err := t.publisher.Publish(ctx, event); err != nil {
		t.logger.Debug("telemetry publish failed", "event", name, "error", err)
	}
}

// Close closes the underlying publisher.
func (t *Tracker) Close() error {
	if t == nil || t.publisher == nil {
		return nil
	}
	return t.publisher.Close()
}
