// Package logging publishes telemetry events as debug log records.
package logging

import (
	"context"
	"log/slog"

	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

// Publisher writes each event to a slog.Logger.
type Publisher struct {
	logger *slog.Logger
}

// NewPublisher creates a publisher logging to logger.
func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger}
}

// Publish logs the event at debug level.
func (p *Publisher) Publish(ctx context.Context, event *telemetry.Event) error {
	if event == nil {
		return telemetry.ErrNilEvent
	}

	p.logger.DebugContext(ctx, "telemetry",
		"event", event.Name,
		"event_id", event.EventID,
		"source", event.Source,
		"timestamp", event.Timestamp,
		"properties", event.Properties,
	)
	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}

var _ telemetry.Publisher = (*Publisher)(nil)
