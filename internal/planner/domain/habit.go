package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownHabit is returned for habit keys outside the habit catalogue.
var ErrUnknownHabit = errors.New("unknown habit")

// HabitKey identifies a trackable habit.
type HabitKey string

// HabitCategory groups habits for the daily tally.
type HabitCategory string

const (
	HabitGood    HabitCategory = "good"
	HabitNeutral HabitCategory = "neutral"
	HabitBad     HabitCategory = "bad"
)

// Habit is a habit catalogue entry.
type Habit struct {
	Key      HabitKey
	Label    string
	Category HabitCategory
}

var habits = [...]Habit{
	{Key: "water", Label: "Drank enough water", Category: HabitGood},
	{Key: "stretch", Label: "Stretched", Category: HabitGood},
	{Key: "journal", Label: "Wrote a journal line", Category: HabitGood},
	{Key: "outside", Label: "Went outside", Category: HabitGood},
	{Key: "social", Label: "Time on social apps", Category: HabitNeutral},
	{Key: "gaming", Label: "Played games", Category: HabitNeutral},
	{Key: "doomscroll", Label: "Doomscrolled", Category: HabitBad},
	{Key: "late_caffeine", Label: "Caffeine after 15:00", Category: HabitBad},
}

// Habits returns the habit catalogue in display order.
func Habits() []Habit {
	out := make([]Habit, len(habits))
	copy(out, habits[:])
	return out
}

// ParseHabitKey validates a habit key.
func ParseHabitKey(value string) (HabitKey, error) {
	key := HabitKey(strings.ToLower(strings.TrimSpace(value)))
	for _, h := range habits {
		if h.Key == key {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownHabit, value)
}

// HabitTally counts checked habits per category.
type HabitTally struct {
	Good    int `json:"good" yaml:"good"`
	Neutral int `json:"neutral" yaml:"neutral"`
	Bad     int `json:"bad" yaml:"bad"`
}

// String renders the tally the way the daily summary shows it.
func (t HabitTally) String() string {
	return fmt.Sprintf("Good: %d • Neutral: %d • Bad: %d", t.Good, t.Neutral, t.Bad)
}

// TallyHabits counts the checked habits; unknown keys are ignored.
func TallyHabits(checked map[HabitKey]bool) HabitTally {
	var tally HabitTally
	for _, h := range habits {
		if !checked[h.Key] {
			continue
		}
		switch h.Category {
		case HabitGood:
			tally.Good++
		case HabitNeutral:
			tally.Neutral++
		case HabitBad:
			tally.Bad++
		}
	}
	return tally
}

// CheckedHabits returns the checked keys sorted, for storage.
func CheckedHabits(checked map[HabitKey]bool) []string {
	keys := make([]string, 0, len(checked))
	for k, on := range checked {
		if on {
			keys = append(keys, string(k))
		}
	}
	sort.Strings(keys)
	return keys
}
