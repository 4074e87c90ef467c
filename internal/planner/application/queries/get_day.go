package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
)

// GetDayQuery asks for the state of the day of Now.
type GetDayQuery struct {
	Now time.Time
}

// GetDayHandler handles GetDayQuery.
type GetDayHandler struct {
	repo domain.DayStateRepository
}

// NewGetDayHandler creates a new GetDayHandler.
func NewGetDayHandler(repo domain.DayStateRepository) *GetDayHandler {
	return &GetDayHandler{repo: repo}
}

// Handle returns a fresh default day when nothing is stored yet.
func (h *GetDayHandler) Handle(ctx context.Context, query GetDayQuery) (*DayDTO, error) {
	state, stored, err := loadDay(ctx, h.repo, query.Now)
	if err != nil {
		return nil, err
	}
	return toDayDTO(state, stored), nil
}

// loadDay returns the stored state for now, or a new unsaved one.
func loadDay(ctx context.Context, repo domain.DayStateRepository, now time.Time) (*domain.DayState, bool, error) {
	state, err := repo.FindByDate(ctx, now)
	if err != nil {
		return nil, false, err
	}
	if state == nil || !state.IsFor(now) {
		return domain.NewDayState(now), false, nil
	}
	return state, true, nil
}
