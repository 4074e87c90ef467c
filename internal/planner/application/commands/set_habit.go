package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	sharedApplication "github.com/felixgeelhaar/dayplan/internal/shared/application"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/eventbus"
)

// SetHabitCommand checks or unchecks a habit for today.
type SetHabitCommand struct {
	Now     time.Time
	Habit   string
	Checked bool
	Actor   string
}

// SetHabitResult carries the habit tally after the change.
type SetHabitResult struct {
	Habit   domain.HabitKey   `json:"habit" yaml:"habit"`
	Checked bool              `json:"checked" yaml:"checked"`
	Tally   domain.HabitTally `json:"tally" yaml:"tally"`
}

// SetHabitHandler handles SetHabitCommand.
type SetHabitHandler struct {
	store dayStore
}

// NewSetHabitHandler creates a new SetHabitHandler.
func NewSetHabitHandler(repo domain.DayStateRepository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) *SetHabitHandler {
	return &SetHabitHandler{store: newDayStore(repo, uow, publisher, logger)}
}

// Handle executes the SetHabitCommand.
func (h *SetHabitHandler) Handle(ctx context.Context, cmd SetHabitCommand) (*SetHabitResult, error) {
	key, err := domain.ParseHabitKey(cmd.Habit)
	if err != nil {
		return nil, err
	}

	state, err := h.store.mutate(ctx, cmd.Now, cmd.Actor, func(state *domain.DayState) error {
		return state.SetHabit(key, cmd.Checked)
	})
	if err != nil {
		return nil, err
	}

	return &SetHabitResult{Habit: key, Checked: cmd.Checked, Tally: domain.TallyHabits(state.Habits())}, nil
}
