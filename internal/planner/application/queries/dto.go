package queries

import (
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
)

// BlockDTO is a timeline block with both minute and HH:MM positions.
type BlockDTO struct {
	Start           string `json:"start" yaml:"start"`
	End             string `json:"end" yaml:"end"`
	StartMinute     int    `json:"start_minute" yaml:"start_minute"`
	EndMinute       int    `json:"end_minute" yaml:"end_minute"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
	Label           string `json:"label" yaml:"label"`
	Type            string `json:"type" yaml:"type"`
}

func toBlockDTOs(blocks []domain.Block) []BlockDTO {
	out := make([]BlockDTO, len(blocks))
	for i, b := range blocks {
		out[i] = BlockDTO{
			Start:           b.Start.String(),
			End:             b.End.String(),
			StartMinute:     int(b.Start),
			EndMinute:       int(b.End),
			DurationMinutes: b.Duration(),
			Label:           b.Label,
			Type:            string(b.Kind),
		}
	}
	return out
}

// DayDTO is the stored state of one day.
type DayDTO struct {
	Date        string            `json:"date" yaml:"date"`
	CurrentTime string            `json:"current_time,omitempty" yaml:"current_time,omitempty"`
	Energy      string            `json:"energy" yaml:"energy"`
	Context     string            `json:"context,omitempty" yaml:"context,omitempty"`
	Completion  domain.Completion `json:"completion" yaml:"completion"`
	Habits      []string          `json:"habits" yaml:"habits"`
	HabitTally  domain.HabitTally `json:"habit_tally" yaml:"habit_tally"`
	Version     int               `json:"version" yaml:"version"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

func toDayDTO(state *domain.DayState, stored bool) *DayDTO {
	dto := &DayDTO{
		Date:       state.DateKey(),
		Energy:     string(state.Energy()),
		Context:    state.Context(),
		Completion: state.Completion(),
		Habits:     domain.CheckedHabits(state.Habits()),
		HabitTally: domain.TallyHabits(state.Habits()),
		Version:    state.Version(),
	}
	if m, ok := state.CurrentTime(); ok {
		dto.CurrentTime = m.String()
	}
	if stored {
		updated := state.UpdatedAt()
		dto.UpdatedAt = &updated
	}
	return dto
}
