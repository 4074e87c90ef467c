package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned when a wall-clock time is not a valid HH:MM value.
var ErrInvalidFormat = errors.New("time must be a valid 24h HH:MM value")

// MinutesPerDay is the length of a planning day in minutes.
const MinutesPerDay = 24 * 60

// Minute is a wall-clock time expressed as minutes since local midnight.
type Minute int

// Fixed boundaries of every planning day.
const (
	// GymStart anchors the fixed gym slot (17:00).
	GymStart Minute = 17 * 60
	// HeavyThinkingCutoff is the latest minute a demanding task may start (21:30).
	HeavyThinkingCutoff Minute = 21*60 + 30
	// SleepStart ends the planning horizon (22:30).
	SleepStart Minute = 22*60 + 30
)

// ParseMinute parses an HH:MM string into a Minute.
func ParseMinute(value string) (Minute, error) {
	value = strings.TrimSpace(value)
	hh, mm, ok := strings.Cut(value, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}

	hours, err := parseDigits(hh)
	if err != nil || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}
	minutes, err := parseDigits(mm)
	if err != nil || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}

	return Minute(hours*60 + minutes), nil
}

// parseDigits rejects signs and whitespace that strconv.Atoi would accept.
func parseDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidFormat
		}
	}
	return strconv.Atoi(s)
}

// MinuteOf returns the wall-clock minute of t in its own location.
func MinuteOf(t time.Time) Minute {
	return Minute(t.Hour()*60 + t.Minute())
}

// FormatMinute renders a minute as zero-padded HH:MM, wrapping past midnight.
func FormatMinute(m Minute) string {
	wrapped := ((int(m) % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", wrapped/60, wrapped%60)
}

// String implements fmt.Stringer.
func (m Minute) String() string {
	return FormatMinute(m)
}

// RemainingHours returns the hours left before SleepStart, never negative.
func RemainingHours(now Minute) float64 {
	remaining := SleepStart - now
	if remaining < 0 {
		remaining = 0
	}
	return float64(remaining) / 60
}
