package domain

import (
	"strings"
	"time"

	sharedDomain "github.com/felixgeelhaar/dayplan/internal/shared/domain"
	"github.com/google/uuid"
)

// DateLayout is the calendar-day key used for storage.
const DateLayout = "2006-01-02"

// DayState is the persisted planner state of one calendar day.
type DayState struct {
	sharedDomain.BaseAggregateRoot
	date        time.Time
	currentTime *Minute
	energy      Energy
	context     string
	done        Completion
	habits      map[HabitKey]bool
}

// NewDayState creates a fresh state for the calendar day of date.
func NewDayState(date time.Time) *DayState {
	return &DayState{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		date:              StartOfDay(date),
		energy:            DefaultEnergy,
		habits:            make(map[HabitKey]bool),
	}
}

// StartOfDay truncates t to local midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Getters
func (s *DayState) Date() time.Time        { return s.date }
func (s *DayState) DateKey() string        { return s.date.Format(DateLayout) }
func (s *DayState) Energy() Energy         { return s.energy }
func (s *DayState) Context() string        { return s.context }
func (s *DayState) Completion() Completion { return s.done }

// CurrentTime returns the last recorded wall-clock time, if any.
func (s *DayState) CurrentTime() (Minute, bool) {
	if s.currentTime == nil {
		return 0, false
	}
	return *s.currentTime, true
}

// Habits returns a copy of the habit checks.
func (s *DayState) Habits() map[HabitKey]bool {
	out := make(map[HabitKey]bool, len(s.habits))
	for k, v := range s.habits {
		out[k] = v
	}
	return out
}

// IsFor reports whether the state belongs to the calendar day of t.
func (s *DayState) IsFor(t time.Time) bool {
	return s.DateKey() == t.Format(DateLayout)
}

// SetCurrentTime records the wall-clock time used for planning.
func (s *DayState) SetCurrentTime(m Minute) {
	if cur, ok := s.CurrentTime(); ok && cur == m {
		return
	}
	s.currentTime = &m
	s.touch(newDayUpdated(s.ID(), s.DateKey(), "current_time", m.String()))
}

// SetEnergy records the self-reported energy level.
func (s *DayState) SetEnergy(e Energy) error {
	if !e.IsValid() {
		return ErrInvalidEnergy
	}
	if s.energy == e {
		return nil
	}
	s.energy = e
	s.touch(newDayUpdated(s.ID(), s.DateKey(), "energy", string(e)))
	return nil
}

// SetContext records the free-text context note.
func (s *DayState) SetContext(note string) {
	note = strings.TrimSpace(note)
	if s.context == note {
		return
	}
	s.context = note
	s.touch(newDayUpdated(s.ID(), s.DateKey(), "context", note))
}

// SetTaskDone checks or unchecks a catalogue task.
func (s *DayState) SetTaskDone(id TaskID, done bool) error {
	if _, ok := LookupTask(id); !ok {
		return ErrUnknownTask
	}
	if s.done.Done(id) == done {
		return nil
	}
	s.done = s.done.With(id, done)
	if done {
		s.touch(&TaskCompleted{
			BaseEvent: sharedDomain.NewBaseEvent(s.ID(), AggregateType, RoutingKeyTaskCompleted),
			Date:      s.DateKey(),
			TaskID:    id,
			DoneToday: s.done.Count(),
		})
	} else {
		s.touch(&TaskReopened{
			BaseEvent: sharedDomain.NewBaseEvent(s.ID(), AggregateType, RoutingKeyTaskReopened),
			Date:      s.DateKey(),
			TaskID:    id,
			DoneToday: s.done.Count(),
		})
	}
	return nil
}

// Reset records that the day is about to be deleted. The state itself is
// left unchanged; the repository removes it.
func (s *DayState) Reset() {
	s.AddDomainEvent(&DayReset{
		BaseEvent: sharedDomain.NewBaseEvent(s.ID(), AggregateType, RoutingKeyDayReset),
		Date:      s.DateKey(),
	})
}

// SetHabit checks or unchecks a habit.
func (s *DayState) SetHabit(key HabitKey, checked bool) error {
	var habit *Habit
	for i := range habits {
		if habits[i].Key == key {
			habit = &habits[i]
			break
		}
	}
	if habit == nil {
		return ErrUnknownHabit
	}
	if s.habits[key] == checked {
		return nil
	}
	if checked {
		s.habits[key] = true
	} else {
		delete(s.habits, key)
	}
	s.touch(&HabitToggled{
		BaseEvent: sharedDomain.NewBaseEvent(s.ID(), AggregateType, RoutingKeyHabitToggled),
		Date:      s.DateKey(),
		Habit:     key,
		Category:  habit.Category,
		Checked:   checked,
	})
	return nil
}

func (s *DayState) touch(event sharedDomain.DomainEvent) {
	s.Touch()
	s.IncrementVersion()
	s.AddDomainEvent(event)
}

// RehydrateDayState recreates a day state from persisted data.
func RehydrateDayState(
	id uuid.UUID,
	date time.Time,
	currentTime *Minute,
	energy Energy,
	context string,
	done Completion,
	checkedHabits []string,
	version int,
	createdAt, updatedAt time.Time,
) *DayState {
	h := make(map[HabitKey]bool, len(checkedHabits))
	for _, k := range checkedHabits {
		h[HabitKey(k)] = true
	}
	if !energy.IsValid() {
		energy = DefaultEnergy
	}
	return &DayState{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
			version,
		),
		date:        StartOfDay(date),
		currentTime: currentTime,
		energy:      energy,
		context:     context,
		done:        done,
		habits:      h,
	}
}

// DaySnapshot is a detached copy of a day state.
type DaySnapshot struct {
	ID          uuid.UUID  `json:"id"`
	Date        string     `json:"date"`
	CurrentTime *Minute    `json:"current_time,omitempty"`
	Energy      Energy     `json:"energy"`
	Context     string     `json:"context,omitempty"`
	Done        Completion `json:"done"`
	Habits      []string   `json:"habits"`
	Version     int        `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Snapshot copies the state; pending domain events are not included.
func (s *DayState) Snapshot() DaySnapshot {
	snap := DaySnapshot{
		ID:        s.ID(),
		Date:      s.DateKey(),
		Energy:    s.energy,
		Context:   s.context,
		Done:      s.done,
		Habits:    CheckedHabits(s.habits),
		Version:   s.Version(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
	if s.currentTime != nil {
		m := *s.currentTime
		snap.CurrentTime = &m
	}
	return snap
}

// RestoreDayState rebuilds a state from a snapshot, reading the date in loc.
func RestoreDayState(snap DaySnapshot, loc *time.Location) (*DayState, error) {
	date, err := time.ParseInLocation(DateLayout, snap.Date, loc)
	if err != nil {
		return nil, err
	}
	return RehydrateDayState(
		snap.ID, date, snap.CurrentTime, snap.Energy, snap.Context, snap.Done,
		snap.Habits, snap.Version, snap.CreatedAt, snap.UpdatedAt,
	), nil
}
