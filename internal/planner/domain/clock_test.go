package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.Minute
	}{
		{"midnight", "00:00", 0},
		{"morning", "08:00", 480},
		{"single digit hour", "7:05", 425},
		{"gym start", "17:00", domain.GymStart},
		{"last minute", "23:59", 1439},
		{"surrounding spaces", " 21:30 ", domain.HeavyThinkingCutoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseMinute(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseMinute_Invalid(t *testing.T) {
	inputs := []string{"", "8", "24:00", "12:60", "12:5", "123:00", "ab:cd", "-1:30", "+1:30", "12:+5", "12-30", "12:30:00"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := domain.ParseMinute(input)
			assert.ErrorIs(t, err, domain.ErrInvalidFormat)
		})
	}
}

func TestFormatMinute(t *testing.T) {
	assert.Equal(t, "00:00", domain.FormatMinute(0))
	assert.Equal(t, "08:05", domain.FormatMinute(485))
	assert.Equal(t, "22:30", domain.FormatMinute(domain.SleepStart))
	assert.Equal(t, "00:10", domain.FormatMinute(domain.MinutesPerDay+10))
	assert.Equal(t, "23:50", domain.FormatMinute(-10))
	assert.Equal(t, "17:00", domain.GymStart.String())
}

func TestFormatMinute_RoundTrip(t *testing.T) {
	for m := domain.Minute(0); m < domain.MinutesPerDay; m++ {
		parsed, err := domain.ParseMinute(domain.FormatMinute(m))
		require.NoError(t, err)
		require.Equal(t, m, parsed)
	}
}

func TestMinuteOf(t *testing.T) {
	ts := time.Date(2026, 3, 4, 14, 45, 30, 0, time.UTC)
	assert.Equal(t, domain.Minute(885), domain.MinuteOf(ts))
}

func TestRemainingHours(t *testing.T) {
	assert.InDelta(t, 14.5, domain.RemainingHours(480), 0.0001)
	assert.InDelta(t, 0.5, domain.RemainingHours(1320), 0.0001)
	assert.Zero(t, domain.RemainingHours(domain.SleepStart))
	assert.Zero(t, domain.RemainingHours(1400))
}
