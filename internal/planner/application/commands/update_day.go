package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	sharedApplication "github.com/felixgeelhaar/dayplan/internal/shared/application"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/eventbus"
)

// UpdateDayCommand changes the inputs of today's plan. Nil fields are left alone.
type UpdateDayCommand struct {
	Now time.Time
	// Time is an HH:MM wall-clock time.
	Time *string
	// UseClock records the minute of Now as the current time; it wins over Time.
	UseClock bool
	Energy   *string
	Context  *string
	Actor    string
}

// UpdateDayResult reports the state after the update.
type UpdateDayResult struct {
	Date    string `json:"date" yaml:"date"`
	Version int    `json:"version" yaml:"version"`
	Changed bool   `json:"changed" yaml:"changed"`
}

// UpdateDayHandler handles UpdateDayCommand.
type UpdateDayHandler struct {
	store dayStore
}

// NewUpdateDayHandler creates a new UpdateDayHandler.
func NewUpdateDayHandler(repo domain.DayStateRepository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) *UpdateDayHandler {
	return &UpdateDayHandler{store: newDayStore(repo, uow, publisher, logger)}
}

// Handle validates every field before touching the state, so a bad energy
// value does not leave a half-applied time change behind.
func (h *UpdateDayHandler) Handle(ctx context.Context, cmd UpdateDayCommand) (*UpdateDayResult, error) {
	var (
		minute    domain.Minute
		hasMinute bool
		energy    domain.Energy
	)

	switch {
	case cmd.UseClock:
		minute, hasMinute = domain.MinuteOf(cmd.Now), true
	case cmd.Time != nil:
		m, err := domain.ParseMinute(*cmd.Time)
		if err != nil {
			return nil, err
		}
		minute, hasMinute = m, true
	}

	if cmd.Energy != nil {
		e, err := domain.ParseEnergy(*cmd.Energy)
		if err != nil {
			return nil, err
		}
		energy = e
	}

	changed := false
	state, err := h.store.mutate(ctx, cmd.Now, cmd.Actor, func(state *domain.DayState) error {
		if hasMinute {
			state.SetCurrentTime(minute)
		}
		if energy != "" {
			if err := state.SetEnergy(energy); err != nil {
				return err
			}
		}
		if cmd.Context != nil {
			state.SetContext(*cmd.Context)
		}
		changed = len(state.DomainEvents()) > 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateDayResult{Date: state.DateKey(), Version: state.Version(), Changed: changed}, nil
}
