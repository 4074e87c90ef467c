package subscribers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
)

// ProgressSubscriber turns planner events into progress metrics and log lines.
// The done-today gauge follows the count carried by each event, so it stays
// correct across resets and restarts.
type ProgressSubscriber struct {
	metrics observability.Metrics
	logger  *slog.Logger
}

// NewProgressSubscriber creates a new ProgressSubscriber.
func NewProgressSubscriber(metrics observability.Metrics, logger *slog.Logger) *ProgressSubscriber {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressSubscriber{metrics: metrics, logger: logger}
}

// EventTypes returns the routing keys this subscriber handles.
func (s *ProgressSubscriber) EventTypes() []string {
	return []string{
		domain.RoutingKeyDayUpdated,
		domain.RoutingKeyTaskCompleted,
		domain.RoutingKeyTaskReopened,
		domain.RoutingKeyHabitToggled,
		domain.RoutingKeyDayReset,
	}
}

type taskPayload struct {
	Date      string `json:"date"`
	TaskID    string `json:"task_id"`
	DoneToday int    `json:"done_today"`
}

type habitPayload struct {
	Date     string `json:"date"`
	Habit    string `json:"habit"`
	Category string `json:"category"`
	Checked  bool   `json:"checked"`
}

type dayPayload struct {
	Date  string `json:"date"`
	Field string `json:"field"`
}

// Handle processes an event.
func (s *ProgressSubscriber) Handle(ctx context.Context, event *eventbus.Event) error {
	switch event.RoutingKey {
	case domain.RoutingKeyTaskCompleted, domain.RoutingKeyTaskReopened:
		var p taskPayload
		if err := event.Decode(&p); err != nil {
			return fmt.Errorf("decode %s: %w", event.RoutingKey, err)
		}
		s.recordTask(ctx, event.RoutingKey == domain.RoutingKeyTaskCompleted, p)

	case domain.RoutingKeyHabitToggled:
		var p habitPayload
		if err := event.Decode(&p); err != nil {
			return fmt.Errorf("decode %s: %w", event.RoutingKey, err)
		}
		if p.Checked {
			s.metrics.Counter(observability.MetricHabitsChecked, 1, observability.T("category", p.Category))
		}
		s.logger.InfoContext(ctx, "habit toggled", "date", p.Date, "habit", p.Habit, "checked", p.Checked)

	case domain.RoutingKeyDayUpdated:
		var p dayPayload
		if err := event.Decode(&p); err != nil {
			return fmt.Errorf("decode %s: %w", event.RoutingKey, err)
		}
		s.metrics.Counter(observability.MetricDayUpdates, 1, observability.T("field", p.Field))

	case domain.RoutingKeyDayReset:
		var p dayPayload
		if err := event.Decode(&p); err != nil {
			return fmt.Errorf("decode %s: %w", event.RoutingKey, err)
		}
		s.metrics.Gauge(observability.MetricTasksDoneToday, 0)
		s.logger.InfoContext(ctx, "day reset", "date", p.Date)
	}
	return nil
}

func (s *ProgressSubscriber) recordTask(ctx context.Context, completed bool, p taskPayload) {
	tag := observability.T("task", p.TaskID)
	if completed {
		s.metrics.Counter(observability.MetricTasksCompleted, 1, tag)
	} else {
		s.metrics.Counter(observability.MetricTasksReopened, 1, tag)
	}
	s.metrics.Gauge(observability.MetricTasksDoneToday, float64(p.DoneToday))

	s.logger.InfoContext(ctx, "task progress",
		"date", p.Date,
		"task", p.TaskID,
		"completed", completed,
		"done_today", p.DoneToday,
	)
}
