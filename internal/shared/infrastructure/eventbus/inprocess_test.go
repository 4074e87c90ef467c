package eventbus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	types  []string
	events []*eventbus.Event
	err    error
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) Handle(_ context.Context, event *eventbus.Event) error {
	h.events = append(h.events, event)
	return h.err
}

type noteAdded struct {
	domain.BaseEvent
	Text string `json:"text"`
}

func newNoteAdded(text string) *noteAdded {
	e := &noteAdded{BaseEvent: domain.NewBaseEvent(uuid.New(), "Note", "note.added"), Text: text}
	e.SetMetadata(domain.EventMetadata{CorrelationID: uuid.New(), Actor: "test"})
	return e
}

func TestInProcessBus_PublishAll(t *testing.T) {
	bus := eventbus.NewInProcessBus(nil)
	handler := &recordingHandler{types: []string{"note.added"}}
	other := &recordingHandler{types: []string{"note.removed"}}
	bus.Subscribe(handler)
	bus.Subscribe(other)

	event := newNoteAdded("hello")
	err := eventbus.PublishAll(context.Background(), bus, []domain.DomainEvent{event})
	require.NoError(t, err)

	require.Len(t, handler.events, 1)
	assert.Empty(t, other.events)

	got := handler.events[0]
	assert.Equal(t, event.EventID(), got.EventID)
	assert.Equal(t, "Note", got.AggregateType)
	assert.Equal(t, "test", got.Metadata.Actor)

	var payload struct {
		Text string `json:"text"`
	}
	require.NoError(t, got.Decode(&payload))
	assert.Equal(t, "hello", payload.Text)
}

func TestInProcessBus_HandlerErrorsDoNotFailPublish(t *testing.T) {
	bus := eventbus.NewInProcessBus(nil)
	failing := &recordingHandler{types: []string{"note.added"}, err: errors.New("boom")}
	healthy := &recordingHandler{types: []string{"note.added"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := eventbus.PublishAll(context.Background(), bus, []domain.DomainEvent{newNoteAdded("x")})
	require.NoError(t, err)

	assert.Len(t, failing.events, 1)
	assert.Len(t, healthy.events, 1)
	assert.Equal(t, 2, bus.HandlerCount())
}

func TestInProcessBus_DispatchJoinsErrors(t *testing.T) {
	bus := eventbus.NewInProcessBus(nil)
	bus.Subscribe(&recordingHandler{types: []string{"note.added"}, err: errors.New("boom")})

	err := bus.Dispatch(context.Background(), &eventbus.Event{RoutingKey: "note.added"})
	assert.ErrorContains(t, err, "boom")
}

func TestInProcessBus_IgnoresGarbage(t *testing.T) {
	bus := eventbus.NewInProcessBus(nil)
	assert.NoError(t, bus.Publish(context.Background(), "note.added", []byte("not json")))
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(context.Context, string, []byte) error {
	p.calls++
	return errors.New("broker down")
}

func (p *failingPublisher) Close() error { return nil }

func TestMultiPublisher(t *testing.T) {
	bus := eventbus.NewInProcessBus(nil)
	handler := &recordingHandler{types: []string{"note.added"}}
	bus.Subscribe(handler)
	broken := &failingPublisher{}

	multi := eventbus.MultiPublisher{broken, bus, eventbus.NewNoopPublisher(nil)}
	err := eventbus.PublishAll(context.Background(), multi, []domain.DomainEvent{newNoteAdded("a"), newNoteAdded("b")})

	assert.ErrorContains(t, err, "broker down")
	assert.Equal(t, 2, broken.calls)
	assert.Len(t, handler.events, 2)
	assert.NoError(t, multi.Close())
}
