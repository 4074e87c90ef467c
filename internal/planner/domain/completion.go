package domain

// Completion is a read-only snapshot of the daily task flags.
// It is a value type: copies never share state.
type Completion struct {
	SAT      bool `json:"sat" yaml:"sat"`
	Homework bool `json:"homework" yaml:"homework"`
	Gym      bool `json:"gym" yaml:"gym"`
	Reading  bool `json:"reading" yaml:"reading"`
	Life     bool `json:"life" yaml:"life"`
}

// Done reports whether the task with the given id is complete.
// Ids outside the catalogue are never done.
func (c Completion) Done(id TaskID) bool {
	switch id {
	case TaskSAT:
		return c.SAT
	case TaskHomework:
		return c.Homework
	case TaskGym:
		return c.Gym
	case TaskReading:
		return c.Reading
	case TaskLife:
		return c.Life
	default:
		return false
	}
}

// With returns a copy of c with the flag for id set to done.
func (c Completion) With(id TaskID, done bool) Completion {
	switch id {
	case TaskSAT:
		c.SAT = done
	case TaskHomework:
		c.Homework = done
	case TaskGym:
		c.Gym = done
	case TaskReading:
		c.Reading = done
	case TaskLife:
		c.Life = done
	}
	return c
}

// Pending returns the incomplete task ids in catalogue order.
func (c Completion) Pending() []TaskID {
	var pending []TaskID
	for _, t := range catalogue {
		if !c.Done(t.ID) {
			pending = append(pending, t.ID)
		}
	}
	return pending
}

// Count returns the number of completed tasks.
func (c Completion) Count() int {
	n := 0
	for _, t := range catalogue {
		if c.Done(t.ID) {
			n++
		}
	}
	return n
}

// AsMap returns one entry per catalogue id.
func (c Completion) AsMap() map[TaskID]bool {
	m := make(map[TaskID]bool, len(catalogue))
	for _, t := range catalogue {
		m[t.ID] = c.Done(t.ID)
	}
	return m
}

// CompletionFromMap builds a snapshot from an id keyed map; missing ids are false.
func CompletionFromMap(m map[TaskID]bool) Completion {
	var c Completion
	for id, done := range m {
		c = c.With(id, done)
	}
	return c
}
