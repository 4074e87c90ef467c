package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
)

// InProcessBus delivers events synchronously to registered handlers.
// It implements Publisher so it can stand in for a broker.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

// NewInProcessBus creates an empty bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{handlers: make(map[string][]Handler), logger: logger}
}

// Subscribe registers h for each of its event types.
func (b *InProcessBus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, eventType := range h.EventTypes() {
		b.handlers[eventType] = append(b.handlers[eventType], h)
	}
}

// HandlerCount returns the number of registrations across all event types.
func (b *InProcessBus) HandlerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, hs := range b.handlers {
		n += len(hs)
	}
	return n
}

// Publish decodes the envelope and dispatches it. Handler failures are
// logged and never returned, so a broken subscriber cannot fail a command.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	event := &Event{}
	if err := json.Unmarshal(payload, event); err != nil {
		b.logger.Error("failed to unmarshal event", "routing_key", routingKey, "error", err)
		return nil
	}
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}

	if err := b.Dispatch(ctx, event); err != nil {
		b.logger.Error("event dispatch failed", "routing_key", routingKey, "event_id", event.EventID, "error", err)
	}
	return nil
}

// Dispatch calls every handler registered for the event's routing key and
// joins their errors.
func (b *InProcessBus) Dispatch(ctx context.Context, event *Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.RoutingKey]...)
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h.Handle(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *InProcessBus) Close() error { return nil }
