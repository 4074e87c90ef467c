package domain

import (
	"hash/fnv"
	"math/rand/v2"
	"time"
)

var tipsByTask = map[TaskID][]string{
	TaskSAT: {
		"Open the SAT materials and highlight the exact set you will finish.",
		"Start with 10 minutes of warm-up questions before the full set.",
		"Keep water at your desk and stay seated for the full block.",
	},
	TaskHomework: {
		"List the assignments in order of difficulty before starting.",
		"Set a 25-minute timer for the first problem set.",
		"Keep distractions off your desk so you can flow quickly.",
	},
	TaskGym: {
		"Pack water and a towel before you leave.",
		"Do 3 minutes of dynamic warm-up to save time.",
		"Pick 1-2 key lifts so you feel strong and focused.",
	},
	TaskReading: {
		"Read with a pen and write one sentence summary.",
		"Set a 15-minute timer to keep momentum.",
		"Sit somewhere with low distractions and good light.",
	},
	TaskLife: {
		"Pick the smallest task to build momentum.",
		"Combine chores to reduce context switching.",
		"Play calm background music to keep the pace.",
	},
	WindDown: {
		"Dim lights and close any screens 30 minutes before bed.",
		"Lay out clothes and materials for tomorrow.",
		"Do a 2-minute tidy so your desk is ready.",
	},
}

var improvementTips = []string{
	"Drink a full glass of water before starting.",
	"Wash your hands before dinner to reset your focus.",
	"Clear your desk to one open book before the next block.",
	"Open the SAT workbook to the exact page you will use.",
	"Put your phone on silent and face down for 60 minutes.",
}

// maxTips caps the execution tips shown for a recommendation.
const maxTips = 3

// TipsFor returns up to three execution tips for a recommendation id.
// Unknown ids get the life tips.
func TipsFor(id TaskID) []string {
	tips, ok := tipsByTask[id]
	if !ok {
		tips = tipsByTask[TaskLife]
	}
	n := min(len(tips), maxTips)
	out := make([]string, n)
	copy(out, tips[:n])
	return out
}

// ImprovementTips returns the pool of small environment tweaks.
func ImprovementTips() []string {
	out := make([]string, len(improvementTips))
	copy(out, improvementTips)
	return out
}

// TipPicker chooses one improvement tip for a day.
type TipPicker interface {
	Pick(date time.Time) string
}

// RandomTipPicker picks a fresh tip on every call.
type RandomTipPicker struct{}

// Pick implements TipPicker.
func (RandomTipPicker) Pick(time.Time) string {
	return improvementTips[rand.IntN(len(improvementTips))]
}

// DailyTipPicker returns the same tip for every call on the same date.
type DailyTipPicker struct{}

// Pick implements TipPicker.
func (DailyTipPicker) Pick(date time.Time) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(date.Format(DateLayout)))
	return improvementTips[int(h.Sum32()%uint32(len(improvementTips)))]
}

var planReasons = []string{
	"SAT prep stays early and protected for deep work.",
	"The gym is locked at 17:00 so energy stays steady.",
	"Light tasks and wind-down protect your sleep window.",
}

// PlanReason explains the shape of the timeline, echoing the context note.
func PlanReason(note string) string {
	reason := planReasons[0] + " " + planReasons[1] + " " + planReasons[2]
	if note != "" {
		reason += " Context noted: " + note + "."
	}
	return reason
}
