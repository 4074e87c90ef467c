package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/stretchr/testify/assert"
)

var energies = []domain.Energy{domain.EnergyLow, domain.EnergyMedium, domain.EnergyHigh}

// allCompletions enumerates every combination of the five flags.
func allCompletions() []domain.Completion {
	out := make([]domain.Completion, 0, 32)
	for mask := 0; mask < 32; mask++ {
		out = append(out, domain.Completion{
			SAT:      mask&1 != 0,
			Homework: mask&2 != 0,
			Gym:      mask&4 != 0,
			Reading:  mask&8 != 0,
			Life:     mask&16 != 0,
		})
	}
	return out
}

func TestSelectNext_AfterCutoffAlwaysWindsDown(t *testing.T) {
	for now := domain.HeavyThinkingCutoff; now < domain.MinutesPerDay; now += 7 {
		for _, energy := range energies {
			for _, done := range allCompletions() {
				rec, rule := domain.ExplainNext(now, energy, done)
				assert.Equal(t, domain.WindDown, rec.ID)
				assert.Equal(t, "after-cutoff", rule)
			}
		}
	}
}

func TestSelectNext_GymWindows(t *testing.T) {
	for _, energy := range energies {
		for _, done := range allCompletions() {
			if done.Gym {
				continue
			}
			prep := domain.SelectNext(1010, energy, done)
			assert.Equal(t, domain.TaskGym, prep.ID)
			assert.Equal(t, "Prep for gym: change, water, quick stretch", prep.Label)

			assert.Equal(t, prep, domain.SelectNext(990, energy, done))

			slot := domain.SelectNext(domain.GymStart, energy, done)
			assert.Equal(t, "Go to the gym (fixed 17:00 slot)", slot.Label)
			assert.Equal(t, slot, domain.SelectNext(1109, energy, done))
		}
	}
}

func TestSelectNext_GymWindowBoundaries(t *testing.T) {
	var none domain.Completion

	_, rule := domain.ExplainNext(989, domain.EnergyMedium, none)
	assert.Equal(t, "sat-deep-work", rule)

	_, rule = domain.ExplainNext(1110, domain.EnergyMedium, none)
	assert.Equal(t, "sat-deep-work", rule)

	_, rule = domain.ExplainNext(1010, domain.EnergyMedium, domain.Completion{Gym: true})
	assert.Equal(t, "sat-deep-work", rule)
}

func TestSelectNext_LowEnergyNeverDeepWork(t *testing.T) {
	for now := domain.Minute(0); now < domain.HeavyThinkingCutoff; now += 5 {
		for _, done := range allCompletions() {
			rec := domain.SelectNext(now, domain.EnergyLow, done)
			assert.NotEqual(t, "SAT prep deep work (60–90 min)", rec.Label)
		}
	}

	rec := domain.SelectNext(600, domain.EnergyLow, domain.Completion{Homework: true})
	assert.Equal(t, domain.TaskSAT, rec.ID)
	assert.Equal(t, "SAT prep with a small warm-up set", rec.Label)
}

func TestSelectNext_Order(t *testing.T) {
	tests := []struct {
		name     string
		now      domain.Minute
		energy   domain.Energy
		done     domain.Completion
		expected domain.TaskID
		rule     string
	}{
		{"deep work first", 480, domain.EnergyHigh, domain.Completion{}, domain.TaskSAT, "sat-deep-work"},
		{"low energy starts with homework", 480, domain.EnergyLow, domain.Completion{}, domain.TaskHomework, "homework"},
		{"homework after sat", 480, domain.EnergyMedium, domain.Completion{SAT: true}, domain.TaskHomework, "homework"},
		{"reading next", 480, domain.EnergyMedium, domain.Completion{SAT: true, Homework: true}, domain.TaskReading, "reading"},
		{"life next", 480, domain.EnergyMedium, domain.Completion{SAT: true, Homework: true, Reading: true}, domain.TaskLife, "life"},
		{"everything done", 480, domain.EnergyMedium, domain.Completion{SAT: true, Homework: true, Gym: true, Reading: true, Life: true}, domain.WindDown, "light-review"},
		{"gym pending outside its window", 480, domain.EnergyMedium, domain.Completion{SAT: true, Homework: true, Reading: true, Life: true}, domain.WindDown, "light-review"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, rule := domain.ExplainNext(tt.now, tt.energy, tt.done)
			assert.Equal(t, tt.expected, rec.ID)
			assert.Equal(t, tt.rule, rule)
		})
	}
}
