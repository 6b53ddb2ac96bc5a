package messaging

import (
	"context"
	"log/slog"

	"github.com/contractwatch/riskengine/pkg/events"
)

// LogPublisher implements port.EventPublisher by logging events. It stands
// in for Kafka when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

// Publish logs each event at info level.
func (p *LogPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	for _, evt := range domainEvents {
		p.logger.InfoContext(ctx, "domain event",
			slog.String("event_type", evt.EventType()),
			slog.String("event_id", evt.EventID()),
			slog.String("aggregate_id", evt.AggregateID()),
		)
	}
	return nil
}
