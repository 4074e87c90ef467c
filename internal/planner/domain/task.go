package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTask is returned for ids outside the task catalogue.
var ErrUnknownTask = errors.New("unknown task")

// TaskID identifies a catalogue task.
type TaskID string

const (
	TaskSAT      TaskID = "sat"
	TaskHomework TaskID = "homework"
	TaskGym      TaskID = "gym"
	TaskReading  TaskID = "reading"
	TaskLife     TaskID = "life"

	// WindDown is the sentinel recommendation id once demanding work is over.
	WindDown TaskID = "windDown"
)

// TaskKind classifies how a task is placed in the day.
type TaskKind string

const (
	TaskKindDeep  TaskKind = "deep"
	TaskKindFixed TaskKind = "fixed" // time-anchored, gym only
	TaskKindLight TaskKind = "light"
)

// Task is a catalogue entry.
type Task struct {
	ID              TaskID
	Label           string
	DurationMinutes int
	Kind            TaskKind
}

var catalogue = [...]Task{
	{ID: TaskSAT, Label: "SAT prep deep work", DurationMinutes: 75, Kind: TaskKindDeep},
	{ID: TaskHomework, Label: "School & homework", DurationMinutes: 60, Kind: TaskKindDeep},
	{ID: TaskGym, Label: "Go to the gym", DurationMinutes: 60, Kind: TaskKindFixed},
	{ID: TaskReading, Label: "Read Atomic Habits", DurationMinutes: 20, Kind: TaskKindLight},
	{ID: TaskLife, Label: "Life habits & responsibilities", DurationMinutes: 25, Kind: TaskKindLight},
}

// Catalogue returns the ordered task catalogue. The slice is a copy.
func Catalogue() []Task {
	tasks := make([]Task, len(catalogue))
	copy(tasks, catalogue[:])
	return tasks
}

// LookupTask finds a catalogue task by id.
func LookupTask(id TaskID) (Task, bool) {
	for _, t := range catalogue {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// ParseTaskID validates a user supplied task id (case-insensitive).
func ParseTaskID(value string) (TaskID, error) {
	id := TaskID(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := LookupTask(id); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTask, value)
	}
	return id, nil
}
