package persistence

import (
	"context"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database"
	"github.com/lib/pq"
)

// PostgresDayStateRepository implements domain.DayStateRepository on PostgreSQL.
// Habits live in a text[] column.
type PostgresDayStateRepository struct {
	conn database.Connection
}

// NewPostgresDayStateRepository creates a new PostgreSQL day-state repository.
func NewPostgresDayStateRepository(conn database.Connection) *PostgresDayStateRepository {
	return &PostgresDayStateRepository{conn: conn}
}

// The habits array travels as its text literal in both directions.
const postgresUpsertDayState = `
	INSERT INTO day_states (
		id, day, current_minute, energy, context_note,
		sat_done, homework_done, gym_done, reading_done, life_done,
		habits, version, created_at, updated_at
	) VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11::text::text[], $12, $13, $14)
	ON CONFLICT (day) DO UPDATE SET
		id = EXCLUDED.id,
		current_minute = EXCLUDED.current_minute,
		energy = EXCLUDED.energy,
		context_note = EXCLUDED.context_note,
		sat_done = EXCLUDED.sat_done,
		homework_done = EXCLUDED.homework_done,
		gym_done = EXCLUDED.gym_done,
		reading_done = EXCLUDED.reading_done,
		life_done = EXCLUDED.life_done,
		habits = EXCLUDED.habits,
		version = EXCLUDED.version,
		updated_at = EXCLUDED.updated_at
`

const postgresSelectDayState = `
	SELECT id, day, current_minute, energy, context_note,
		sat_done, homework_done, gym_done, reading_done, life_done,
		habits::text, version, created_at, updated_at
	FROM day_states WHERE day = $1::date
`

// Save inserts or replaces the state stored for its date.
func (r *PostgresDayStateRepository) Save(ctx context.Context, state *domain.DayState) error {
	row := toRow(state)
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, postgresUpsertDayState,
		row.ID,
		state.DateKey(),
		row.CurrentMinute,
		row.Energy,
		row.Context,
		row.Done.SAT, row.Done.Homework, row.Done.Gym, row.Done.Reading, row.Done.Life,
		pq.Array(row.Habits),
		row.Version,
		row.CreatedAt,
		row.UpdatedAt,
	)
	return err
}

// FindByDate returns nil, nil when nothing is stored for the day.
func (r *PostgresDayStateRepository) FindByDate(ctx context.Context, date time.Time) (*domain.DayState, error) {
	var (
		row dayStateRow
		day time.Time
	)
	err := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, postgresSelectDayState, date.Format(domain.DateLayout)).Scan(
		&row.ID, &day, &row.CurrentMinute, &row.Energy, &row.Context,
		&row.Done.SAT, &row.Done.Homework, &row.Done.Gym, &row.Done.Reading, &row.Done.Life,
		pq.Array(&row.Habits), &row.Version, &row.CreatedAt, &row.UpdatedAt,
	)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// DATE comes back as UTC midnight; re-anchor it in the caller's zone.
	row.Day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, date.Location())
	return row.toDomain(), nil
}

// DeleteByDate removes the state of a day; a missing day is not an error.
func (r *PostgresDayStateRepository) DeleteByDate(ctx context.Context, date time.Time) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`DELETE FROM day_states WHERE day = $1::date`, date.Format(domain.DateLayout))
	return err
}
