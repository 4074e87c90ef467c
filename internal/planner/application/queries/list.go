package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
)

// TaskDTO is a catalogue task with today's flag.
type TaskDTO struct {
	ID              string `json:"id" yaml:"id"`
	Label           string `json:"label" yaml:"label"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
	Kind            string `json:"kind" yaml:"kind"`
	Done            bool   `json:"done" yaml:"done"`
}

// HabitDTO is a catalogue habit with today's check.
type HabitDTO struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	Category string `json:"category" yaml:"category"`
	Checked  bool   `json:"checked" yaml:"checked"`
}

// ListTasksQuery asks for the task catalogue of the day of Now.
type ListTasksQuery struct {
	Now time.Time
}

// ListTasksHandler handles ListTasksQuery.
type ListTasksHandler struct {
	repo domain.DayStateRepository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(repo domain.DayStateRepository) *ListTasksHandler {
	return &ListTasksHandler{repo: repo}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	state, _, err := loadDay(ctx, h.repo, query.Now)
	if err != nil {
		return nil, err
	}

	done := state.Completion()
	tasks := domain.Catalogue()
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = TaskDTO{
			ID:              string(t.ID),
			Label:           t.Label,
			DurationMinutes: t.DurationMinutes,
			Kind:            string(t.Kind),
			Done:            done.Done(t.ID),
		}
	}
	return out, nil
}

// ListHabitsQuery asks for the habit catalogue of the day of Now.
type ListHabitsQuery struct {
	Now time.Time
}

// ListHabitsHandler handles ListHabitsQuery.
type ListHabitsHandler struct {
	repo domain.DayStateRepository
}

// NewListHabitsHandler creates a new ListHabitsHandler.
func NewListHabitsHandler(repo domain.DayStateRepository) *ListHabitsHandler {
	return &ListHabitsHandler{repo: repo}
}

// Handle executes the ListHabitsQuery.
func (h *ListHabitsHandler) Handle(ctx context.Context, query ListHabitsQuery) ([]HabitDTO, error) {
	state, _, err := loadDay(ctx, h.repo, query.Now)
	if err != nil {
		return nil, err
	}

	checked := state.Habits()
	habits := domain.Habits()
	out := make([]HabitDTO, len(habits))
	for i, habit := range habits {
		out[i] = HabitDTO{
			Key:      string(habit.Key),
			Label:    habit.Label,
			Category: string(habit.Category),
			Checked:  checked[habit.Key],
		}
	}
	return out, nil
}
