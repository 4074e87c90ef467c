package subscribers

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressSubscriber_ThroughInProcessBus(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	logger := observability.NewDiscardLogger()
	bus := eventbus.NewInProcessBus(logger)
	bus.Subscribe(NewProgressSubscriber(metrics, logger))

	state := domain.NewDayState(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	state.SetCurrentTime(600)
	require.NoError(t, state.SetTaskDone(domain.TaskSAT, true))
	require.NoError(t, state.SetTaskDone(domain.TaskGym, true))
	require.NoError(t, state.SetTaskDone(domain.TaskGym, false))
	require.NoError(t, state.SetHabit("water", true))
	require.NoError(t, state.SetHabit("doomscroll", true))
	require.NoError(t, state.SetHabit("water", false))

	require.NoError(t, eventbus.PublishAll(context.Background(), bus, state.DomainEvents()))

	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricTasksCompleted, observability.T("task", "sat")))
	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricTasksCompleted, observability.T("task", "gym")))
	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricTasksReopened, observability.T("task", "gym")))
	assert.Equal(t, float64(1), metrics.GaugeValue(observability.MetricTasksDoneToday))
	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricHabitsChecked, observability.T("category", "good")))
	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricHabitsChecked, observability.T("category", "bad")))
	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricDayUpdates, observability.T("field", "current_time")))
}

func TestProgressSubscriber_RejectsBadPayload(t *testing.T) {
	sub := NewProgressSubscriber(nil, observability.NewDiscardLogger())

	err := sub.Handle(context.Background(), &eventbus.Event{
		RoutingKey: domain.RoutingKeyTaskCompleted,
		Payload:    []byte(`{"task_id": 5}`),
	})
	assert.Error(t, err)

	assert.NoError(t, sub.Handle(context.Background(), &eventbus.Event{RoutingKey: "unrelated"}))
	assert.Len(t, sub.EventTypes(), 5)
}

func TestProgressSubscriber_DoneTodayFollowsResets(t *testing.T) {
	ctx := context.Background()
	metrics := observability.NewInMemoryMetrics()
	logger := observability.NewDiscardLogger()
	bus := eventbus.NewInProcessBus(logger)
	bus.Subscribe(NewProgressSubscriber(metrics, logger))
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	state := domain.NewDayState(date)
	require.NoError(t, state.SetTaskDone(domain.TaskSAT, true))
	require.NoError(t, state.SetTaskDone(domain.TaskReading, true))
	require.NoError(t, eventbus.PublishAll(ctx, bus, state.DomainEvents()))
	state.ClearDomainEvents()
	assert.Equal(t, float64(2), metrics.GaugeValue(observability.MetricTasksDoneToday))

	state.Reset()
	require.NoError(t, eventbus.PublishAll(ctx, bus, state.DomainEvents()))
	assert.Equal(t, float64(0), metrics.GaugeValue(observability.MetricTasksDoneToday))

	fresh := domain.NewDayState(date)
	require.NoError(t, fresh.SetTaskDone(domain.TaskGym, true))
	require.NoError(t, eventbus.PublishAll(ctx, bus, fresh.DomainEvents()))
	assert.Equal(t, float64(1), metrics.GaugeValue(observability.MetricTasksDoneToday))
}

func TestProgressSubscriber_DoneTodayComesFromEvent(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	sub := NewProgressSubscriber(metrics, observability.NewDiscardLogger())

	require.NoError(t, sub.Handle(context.Background(), &eventbus.Event{
		RoutingKey: domain.RoutingKeyTaskReopened,
		Payload:    []byte(`{"date":"2026-03-09","task_id":"gym","done_today":3}`),
	}))

	assert.Equal(t, float64(3), metrics.GaugeValue(observability.MetricTasksDoneToday))
	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricTasksReopened, observability.T("task", "gym")))
}
