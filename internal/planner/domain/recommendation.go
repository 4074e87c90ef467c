package domain

// Recommendation is the single "do now" suggestion.
type Recommendation struct {
	ID    TaskID `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Pre-gym prep and post-gym-start windows, in minutes.
const (
	gymPrepWindow   Minute = 30
	gymActiveWindow Minute = 90
)

// selectionInput is the immutable input every rule sees.
type selectionInput struct {
	now    Minute
	energy Energy
	done   Completion
}

type selectionRule struct {
	name           string
	matches        func(in selectionInput) bool
	recommendation Recommendation
}

// selectionRules is evaluated top to bottom; the first match wins.
var selectionRules = []selectionRule{
	{
		name: "after-cutoff",
		matches: func(in selectionInput) bool {
			return in.now >= HeavyThinkingCutoff
		},
		recommendation: Recommendation{ID: WindDown, Label: "Wind down: light reset and prep for sleep"},
	},
	{
		name: "gym-prep",
		matches: func(in selectionInput) bool {
			return !in.done.Gym && in.now >= GymStart-gymPrepWindow && in.now < GymStart
		},
		recommendation: Recommendation{ID: TaskGym, Label: "Prep for gym: change, water, quick stretch"},
	},
	{
		name: "gym-slot",
		matches: func(in selectionInput) bool {
			return !in.done.Gym && in.now >= GymStart && in.now < GymStart+gymActiveWindow
		},
		recommendation: Recommendation{ID: TaskGym, Label: "Go to the gym (fixed 17:00 slot)"},
	},
	{
		name: "sat-deep-work",
		matches: func(in selectionInput) bool {
			return !in.done.SAT && in.energy != EnergyLow
		},
		recommendation: Recommendation{ID: TaskSAT, Label: "SAT prep deep work (60–90 min)"},
	},
	{
		name: "homework",
		matches: func(in selectionInput) bool {
			return !in.done.Homework
		},
		recommendation: Recommendation{ID: TaskHomework, Label: "School & homework focus block"},
	},
	{
		// Only reachable with low energy: sat-deep-work took every other level.
		name: "sat-warm-up",
		matches: func(in selectionInput) bool {
			return !in.done.SAT
		},
		recommendation: Recommendation{ID: TaskSAT, Label: "SAT prep with a small warm-up set"},
	},
	{
		name: "reading",
		matches: func(in selectionInput) bool {
			return !in.done.Reading
		},
		recommendation: Recommendation{ID: TaskReading, Label: "Read Atomic Habits (20 min)"},
	},
	{
		name: "life",
		matches: func(in selectionInput) bool {
			return !in.done.Life
		},
		recommendation: Recommendation{ID: TaskLife, Label: "Life habits & responsibilities (quick wins)"},
	},
	{
		name:           "light-review",
		matches:        func(selectionInput) bool { return true },
		recommendation: Recommendation{ID: WindDown, Label: "Light review, gratitude, and sleep prep"},
	},
}

// SelectNext picks the task to do now. It is total and deterministic.
func SelectNext(now Minute, energy Energy, done Completion) Recommendation {
	rec, _ := ExplainNext(now, energy, done)
	return rec
}

// ExplainNext is SelectNext that also reports the name of the rule that fired.
func ExplainNext(now Minute, energy Energy, done Completion) (Recommendation, string) {
	in := selectionInput{now: now, energy: energy, done: done}
	for _, rule := range selectionRules {
		if rule.matches(in) {
			return rule.recommendation, rule.name
		}
	}
	// Unreachable: the last rule always matches.
	last := selectionRules[len(selectionRules)-1]
	return last.recommendation, last.name
}
