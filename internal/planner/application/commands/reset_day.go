package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	sharedApplication "github.com/felixgeelhaar/dayplan/internal/shared/application"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/eventbus"
)

// ResetDayCommand forgets everything recorded for the day of Now.
type ResetDayCommand struct {
	Now   time.Time
	Actor string
}

// ResetDayHandler handles ResetDayCommand.
type ResetDayHandler struct {
	store dayStore
}

// NewResetDayHandler creates a new ResetDayHandler.
func NewResetDayHandler(repo domain.DayStateRepository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) *ResetDayHandler {
	return &ResetDayHandler{store: newDayStore(repo, uow, publisher, logger)}
}

// Handle executes the ResetDayCommand. A day.reset event is published only
// when a state for the day existed.
func (h *ResetDayHandler) Handle(ctx context.Context, cmd ResetDayCommand) error {
	var state *domain.DayState

	err := sharedApplication.WithUnitOfWork(ctx, h.store.uow, func(txCtx context.Context) error {
		var err error
		state, err = h.store.repo.FindByDate(txCtx, cmd.Now)
		if err != nil {
			return err
		}
		if state != nil && state.IsFor(cmd.Now) {
			state.Reset()
		}
		return h.store.repo.DeleteByDate(txCtx, cmd.Now)
	})
	if err != nil {
		return err
	}

	if state != nil {
		h.store.publish(ctx, state, cmd.Actor)
	}
	h.store.logger.InfoContext(ctx, "day reset", "date", cmd.Now.Format(domain.DateLayout))
	return nil
}
