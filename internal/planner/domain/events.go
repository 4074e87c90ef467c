package domain

import (
	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/google/uuid"
)

// AggregateType is the event aggregate type of DayState.
const AggregateType = "DayState"

// Routing keys for planner events.
const (
	RoutingKeyDayUpdated    = "planner.day.updated"
	RoutingKeyTaskCompleted = "planner.task.completed"
	RoutingKeyTaskReopened  = "planner.task.reopened"
	RoutingKeyHabitToggled  = "planner.habit.toggled"
	RoutingKeyDayReset      = "planner.day.reset"
)

// DayUpdated is emitted when time, energy or the context note changes.
type DayUpdated struct {
	sharedDomain.BaseEvent
	Date  string `json:"date"`
	Field string `json:"field"`
	Value string `json:"value"`
}

func newDayUpdated(id uuid.UUID, date, field, value string) *DayUpdated {
	return &DayUpdated{
		BaseEvent: sharedDomain.NewBaseEvent(id, AggregateType, RoutingKeyDayUpdated),
		Date:      date,
		Field:     field,
		Value:     value,
	}
}

// TaskCompleted is emitted when a catalogue task is checked off.
// DoneToday is the number of completed tasks after the change.
type TaskCompleted struct {
	sharedDomain.BaseEvent
	Date      string `json:"date"`
	TaskID    TaskID `json:"task_id"`
	DoneToday int    `json:"done_today"`
}

// TaskReopened is emitted when a completed task is unchecked.
type TaskReopened struct {
	sharedDomain.BaseEvent
	Date      string `json:"date"`
	TaskID    TaskID `json:"task_id"`
	DoneToday int    `json:"done_today"`
}

// HabitToggled is emitted when a habit check changes.
type HabitToggled struct {
	sharedDomain.BaseEvent
	Date     string        `json:"date"`
	Habit    HabitKey      `json:"habit"`
	Category HabitCategory `json:"category"`
	Checked  bool          `json:"checked"`
}

// DayReset is emitted when everything recorded for a day is forgotten.
type DayReset struct {
	sharedDomain.BaseEvent
	Date string `json:"date"`
}
