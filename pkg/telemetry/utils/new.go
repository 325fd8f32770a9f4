// Package telemetryutils builds the configured telemetry publisher.
package telemetryutils

import (
	"fmt"
	"log/slog"

	"github.com/papercomputeco/cogniz/pkg/telemetry"
	"github.com/papercomputeco/cogniz/pkg/telemetry/kafka"
	"github.com/papercomputeco/cogniz/pkg/telemetry/logging"
	"github.com/papercomputeco/cogniz/pkg/telemetry/nop"
)

// Provider names.
const (
	ProviderNone  = "none"
	ProviderLog   = "log"
	ProviderKafka = "kafka"
)

type NewPublisherOpts struct {
	ProviderType string
	Brokers      []string
	Topic        string
	Logger       *slog.Logger
}

// NewPublisher returns the publisher for o.ProviderType. An empty provider
// disables telemetry.
func NewPublisher(o *NewPublisherOpts) (telemetry.Publisher, error) {
	switch o.ProviderType {
	case "", ProviderNone:
		return nop.NewPublisher(), nil
	case ProviderLog:
		l := o.Logger
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		return logging.NewPublisher(l), nil
	case ProviderKafka:
		return kafka.NewPublisher(kafka.Config{Brokers: o.Brokers, Topic: o.Topic})
	default:
		return nil, fmt.Errorf("unsupported telemetry provider: %s", o.ProviderType)
	}
}
