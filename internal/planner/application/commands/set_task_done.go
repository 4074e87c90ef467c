package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	sharedApplication "github.com/felixgeelhaar/dayplan/internal/shared/application"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/eventbus"
)

// SetTaskDoneCommand checks or unchecks a catalogue task for today.
type SetTaskDoneCommand struct {
	Now    time.Time
	TaskID string
	Done   bool
	Actor  string
}

// SetTaskDoneResult carries the completion snapshot after the change.
type SetTaskDoneResult struct {
	TaskID     domain.TaskID     `json:"task_id" yaml:"task_id"`
	Done       bool              `json:"done" yaml:"done"`
	Changed    bool              `json:"changed" yaml:"changed"`
	Completion domain.Completion `json:"completion" yaml:"completion"`
}

// SetTaskDoneHandler handles SetTaskDoneCommand.
type SetTaskDoneHandler struct {
	store dayStore
}

// NewSetTaskDoneHandler creates a new SetTaskDoneHandler.
func NewSetTaskDoneHandler(repo domain.DayStateRepository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) *SetTaskDoneHandler {
	return &SetTaskDoneHandler{store: newDayStore(repo, uow, publisher, logger)}
}

// Handle executes the SetTaskDoneCommand.
func (h *SetTaskDoneHandler) Handle(ctx context.Context, cmd SetTaskDoneCommand) (*SetTaskDoneResult, error) {
	id, err := domain.ParseTaskID(cmd.TaskID)
	if err != nil {
		return nil, err
	}

	changed := false
	state, err := h.store.mutate(ctx, cmd.Now, cmd.Actor, func(state *domain.DayState) error {
		before := state.Completion()
		if err := state.SetTaskDone(id, cmd.Done); err != nil {
			return err
		}
		changed = before != state.Completion()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SetTaskDoneResult{TaskID: id, Done: cmd.Done, Changed: changed, Completion: state.Completion()}, nil
}
