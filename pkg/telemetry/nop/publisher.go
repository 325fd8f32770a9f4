// Package nop is the disabled telemetry publisher.
package nop

import (
	"context"

	"github.com/papercomputeco/cogniz/pkg/telemetry"
)

// Publisher is a no-op telemetry publisher used for tests and disabled mode.
type Publisher struct{}

// NewPublisher creates a new no-op telemetry publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish validates input and otherwise does nothing.
func (p *Publisher) Publish(_ context.Context, event *telemetry.Event) error {
	if event == nil {
		return telemetry.ErrNilEvent
	}

	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}

var _ telemetry.Publisher = (*Publisher)(nil)
