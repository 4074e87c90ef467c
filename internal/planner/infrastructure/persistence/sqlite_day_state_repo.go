package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLiteDayStateRepository implements domain.DayStateRepository on SQLite.
type SQLiteDayStateRepository struct {
	conn database.Connection
}

// NewSQLiteDayStateRepository creates a new SQLite day-state repository.
func NewSQLiteDayStateRepository(conn database.Connection) *SQLiteDayStateRepository {
	return &SQLiteDayStateRepository{conn: conn}
}

const sqliteUpsertDayState = `
	INSERT INTO day_states (
		id, day, current_minute, energy, context_note,
		sat_done, homework_done, gym_done, reading_done, life_done,
		habits, version, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (day) DO UPDATE SET
		id = excluded.id,
		current_minute = excluded.current_minute,
		energy = excluded.energy,
		context_note = excluded.context_note,
		sat_done = excluded.sat_done,
		homework_done = excluded.homework_done,
		gym_done = excluded.gym_done,
		reading_done = excluded.reading_done,
		life_done = excluded.life_done,
		habits = excluded.habits,
		version = excluded.version,
		updated_at = excluded.updated_at
`

const sqliteSelectDayState = `
	SELECT id, day, current_minute, energy, context_note,
		sat_done, homework_done, gym_done, reading_done, life_done,
		habits, version, created_at, updated_at
	FROM day_states WHERE day = ?
`

// Save inserts or replaces the state stored for its date.
func (r *SQLiteDayStateRepository) Save(ctx context.Context, state *domain.DayState) error {
	row := toRow(state)
	habits, err := json.Marshal(row.Habits)
	if err != nil {
		return fmt.Errorf("encode habits: %w", err)
	}

	_, err = database.ExecutorFromContext(ctx, r.conn).Exec(ctx, sqliteUpsertDayState,
		row.ID.String(),
		state.DateKey(),
		row.CurrentMinute,
		row.Energy,
		row.Context,
		row.Done.SAT, row.Done.Homework, row.Done.Gym, row.Done.Reading, row.Done.Life,
		string(habits),
		row.Version,
		row.CreatedAt.UTC().Format(time.RFC3339Nano),
		row.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// FindByDate returns nil, nil when nothing is stored for the day.
func (r *SQLiteDayStateRepository) FindByDate(ctx context.Context, date time.Time) (*domain.DayState, error) {
	var (
		row                  dayStateRow
		id, day, habits      string
		createdAt, updatedAt string
	)
	err := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, sqliteSelectDayState, date.Format(domain.DateLayout)).Scan(
		&id, &day, &row.CurrentMinute, &row.Energy, &row.Context,
		&row.Done.SAT, &row.Done.Homework, &row.Done.Gym, &row.Done.Reading, &row.Done.Life,
		&habits, &row.Version, &createdAt, &updatedAt,
	)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if row.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse day_states.id: %w", err)
	}
	if row.Day, err = time.ParseInLocation(domain.DateLayout, day, date.Location()); err != nil {
		return nil, fmt.Errorf("parse day_states.day: %w", err)
	}
	if err := json.Unmarshal([]byte(habits), &row.Habits); err != nil {
		return nil, fmt.Errorf("decode habits: %w", err)
	}
	if row.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse day_states.created_at: %w", err)
	}
	if row.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse day_states.updated_at: %w", err)
	}

	return row.toDomain(), nil
}

// DeleteByDate removes the state of a day; a missing day is not an error.
func (r *SQLiteDayStateRepository) DeleteByDate(ctx context.Context, date time.Time) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`DELETE FROM day_states WHERE day = ?`, date.Format(domain.DateLayout))
	return err
}
