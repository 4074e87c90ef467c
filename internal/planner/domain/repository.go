package domain

import (
	"context"
	"time"
)

// DayStateRepository persists one DayState per calendar day.
type DayStateRepository interface {
	// Save inserts or replaces the state stored for its date.
	Save(ctx context.Context, state *DayState) error
	// FindByDate returns nil, nil when nothing is stored for the day.
	FindByDate(ctx context.Context, date time.Time) (*DayState, error)
	// DeleteByDate removes the state of a day; a missing day is not an error.
	DeleteByDate(ctx context.Context, date time.Time) error
}
