package persistence

import (
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/google/uuid"
)

// dayStateRow is the column set shared by both backends.
type dayStateRow struct {
	ID            uuid.UUID
	Day           time.Time
	CurrentMinute *int64
	Energy        string
	Context       string
	Done          domain.Completion
	Habits        []string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func toRow(state *domain.DayState) dayStateRow {
	snap := state.Snapshot()
	row := dayStateRow{
		ID:        snap.ID,
		Day:       state.Date(),
		Energy:    string(snap.Energy),
		Context:   snap.Context,
		Done:      snap.Done,
		Habits:    snap.Habits,
		Version:   snap.Version,
		CreatedAt: snap.CreatedAt,
		UpdatedAt: snap.UpdatedAt,
	}
	if snap.CurrentTime != nil {
		v := int64(*snap.CurrentTime)
		row.CurrentMinute = &v
	}
	return row
}

func (r dayStateRow) toDomain() *domain.DayState {
	var current *domain.Minute
	if r.CurrentMinute != nil {
		m := domain.Minute(*r.CurrentMinute)
		current = &m
	}
	return domain.RehydrateDayState(
		r.ID, r.Day, current,
		domain.Energy(r.Energy), r.Context, r.Done, r.Habits,
		r.Version, r.CreatedAt, r.UpdatedAt,
	)
}
