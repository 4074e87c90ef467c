package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayplan/internal/shared/domain"
)

// Publisher sends serialized events to a broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}

// PublishAll wraps each domain event in an Event envelope and publishes it.
// Every event is attempted; the returned error joins all failures.
func PublishAll(ctx context.Context, p Publisher, events []domain.DomainEvent) error {
	var errs []error
	for _, event := range events {
		envelope, err := NewEvent(event)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		payload, err := json.Marshal(envelope)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to marshal envelope: %w", err))
			continue
		}
		if err := p.Publish(ctx, envelope.RoutingKey, payload); err != nil {
			errs = append(errs, fmt.Errorf("failed to publish %s: %w", envelope.RoutingKey, err))
		}
	}
	return errors.Join(errs...)
}

// MultiPublisher publishes every message to each of its publishers.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, routingKey, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiPublisher) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NoopPublisher drops messages after logging them at debug level.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.logger.Debug("noop publish", "routing_key", routingKey, "size", len(payload))
	return nil
}

func (p *NoopPublisher) Close() error { return nil }
