package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	sharedApplication "github.com/felixgeelhaar/dayplan/internal/shared/application"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/eventbus"
)

// dayStore is shared by every command handler: it loads the day's state
// inside a unit of work and publishes the recorded events after commit.
type dayStore struct {
	repo      domain.DayStateRepository
	uow       sharedApplication.UnitOfWork
	publisher eventbus.Publisher
	logger    *slog.Logger
}

func newDayStore(repo domain.DayStateRepository, uow sharedApplication.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) dayStore {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}
	return dayStore{repo: repo, uow: uow, publisher: publisher, logger: logger}
}

// mutate loads (or starts) the state for now, applies fn and saves the state
// when fn recorded any change.
func (s dayStore) mutate(ctx context.Context, now time.Time, actor string, fn func(state *domain.DayState) error) (*domain.DayState, error) {
	var state *domain.DayState

	err := sharedApplication.WithUnitOfWork(ctx, s.uow, func(txCtx context.Context) error {
		var err error
		state, err = s.repo.FindByDate(txCtx, now)
		if err != nil {
			return err
		}
		if state == nil || !state.IsFor(now) {
			state = domain.NewDayState(now)
		}

		if err := fn(state); err != nil {
			return err
		}
		if len(state.DomainEvents()) == 0 {
			return nil
		}
		return s.repo.Save(txCtx, state)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, state, actor)
	return state, nil
}

// publish never fails the command: the state is already committed.
func (s dayStore) publish(ctx context.Context, state *domain.DayState, actor string) {
	events := state.DomainEvents()
	if len(events) == 0 {
		return
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(actor))
	if err := eventbus.PublishAll(ctx, s.publisher, events); err != nil {
		s.logger.WarnContext(ctx, "failed to publish day events", "date", state.DateKey(), "error", err)
	}
	state.ClearDomainEvents()
}
