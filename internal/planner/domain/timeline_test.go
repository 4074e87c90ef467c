package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeline_FullDay(t *testing.T) {
	blocks := domain.BuildTimeline(480, domain.Completion{})

	expected := []domain.Block{
		{Start: 480, End: 555, Label: "SAT deep work", Kind: domain.BlockFocus},
		{Start: 555, End: 565, Label: "Break (5-10 min)", Kind: domain.BlockBreak},
		{Start: 565, End: 625, Label: "Homework block", Kind: domain.BlockFocus},
		{Start: 625, End: 635, Label: "Break (5-10 min)", Kind: domain.BlockBreak},
		{Start: 635, End: 1020, Label: "Prep for gym", Kind: domain.BlockPrep},
		{Start: 1020, End: 1080, Label: "Gym (fixed at 17:00)", Kind: domain.BlockFixed},
		{Start: 1080, End: 1090, Label: "Break (5-10 min)", Kind: domain.BlockBreak},
		{Start: 1090, End: 1135, Label: "SAT review / mistakes log", Kind: domain.BlockFocus},
		{Start: 1135, End: 1145, Label: "Break (5-10 min)", Kind: domain.BlockBreak},
		{Start: 1145, End: 1165, Label: "Read Atomic Habits", Kind: domain.BlockLight},
		{Start: 1165, End: 1185, Label: "Life habits & responsibilities", Kind: domain.BlockLight},
		{Start: 1185, End: 1290, Label: "Easy admin / prep for tomorrow", Kind: domain.BlockLight},
		{Start: 1290, End: 1350, Label: "Wind down & sleep routine", Kind: domain.BlockWind},
	}
	assert.Equal(t, expected, blocks)
}

func TestBuildTimeline_OnlyWindDownLate(t *testing.T) {
	blocks := domain.BuildTimeline(1340, domain.Completion{Gym: true})

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.Block{Start: 1340, End: 1350, Label: "Wind down & sleep routine", Kind: domain.BlockWind}, blocks[0])
}

func TestBuildTimeline_GymPrepFloorShiftsGym(t *testing.T) {
	done := domain.Completion{SAT: true, Homework: true, Reading: true, Life: true}
	blocks := domain.BuildTimeline(1010, done)

	require.GreaterOrEqual(t, len(blocks), 3)
	assert.Equal(t, domain.Block{Start: 1010, End: 1025, Label: "Prep for gym", Kind: domain.BlockPrep}, blocks[0])
	assert.Equal(t, domain.Block{Start: 1025, End: 1085, Label: "Gym (fixed at 17:00)", Kind: domain.BlockFixed}, blocks[1])
	assert.Equal(t, domain.BlockBreak, blocks[2].Kind)
}

func TestBuildTimeline_GymClampedAtSleep(t *testing.T) {
	blocks := domain.BuildTimeline(1340, domain.Completion{})

	require.Len(t, blocks, 1)
	assert.Equal(t, domain.Block{Start: 1340, End: 1350, Label: "Gym (fixed at 17:00)", Kind: domain.BlockFixed}, blocks[0])
}

func TestBuildTimeline_EmptyAfterSleep(t *testing.T) {
	assert.Empty(t, domain.BuildTimeline(domain.SleepStart, domain.Completion{}))
	assert.Empty(t, domain.BuildTimeline(1400, domain.Completion{Gym: true}))
}

func TestBuildTimeline_Contiguous(t *testing.T) {
	for now := domain.Minute(0); now < domain.SleepStart; now += 11 {
		for _, done := range allCompletions() {
			blocks := domain.BuildTimeline(now, done)
			require.NotEmpty(t, blocks)

			assert.Equal(t, now, blocks[0].Start)
			assert.Equal(t, domain.SleepStart, blocks[len(blocks)-1].End)
			for i, b := range blocks {
				assert.Positive(t, b.Duration(), "block %d at now=%d", i, now)
				if i > 0 {
					assert.Equal(t, blocks[i-1].End, b.Start, "gap before block %d at now=%d", i, now)
				}
			}
		}
	}
}

func TestBuildTimeline_Idempotent(t *testing.T) {
	done := domain.Completion{Homework: true}
	assert.Equal(t, domain.BuildTimeline(725, done), domain.BuildTimeline(725, done))
}
