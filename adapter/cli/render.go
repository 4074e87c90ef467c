package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/queries"
	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
)

// Block colours match the planner screen.
var blockColors = map[string]lipgloss.Color{
	string(domain.BlockFocus): lipgloss.Color("#6366f1"),
	string(domain.BlockFixed): lipgloss.Color("#22c55e"),
	string(domain.BlockBreak): lipgloss.Color("#f97316"),
	string(domain.BlockLight): lipgloss.Color("#38bdf8"),
	string(domain.BlockPrep):  lipgloss.Color("#a855f7"),
	string(domain.BlockWind):  lipgloss.Color("#94a3b8"),
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	nextStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6366f1"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f97316"))
)

// minutesPerCell scales timeline bars.
const minutesPerCell = 10

func blockStyle(kind string) lipgloss.Style {
	color, ok := blockColors[kind]
	if !ok {
		return mutedStyle
	}
	return lipgloss.NewStyle().Foreground(color)
}

func renderBar(block queries.BlockDTO) string {
	cells := max(1, block.DurationMinutes/minutesPerCell)
	return blockStyle(block.Type).Render(strings.Repeat("█", cells))
}

func renderTimeline(b *strings.Builder, blocks []queries.BlockDTO) {
	if len(blocks) == 0 {
		b.WriteString(mutedStyle.Render("  Nothing left today. Sleep well."))
		b.WriteString("\n")
		return
	}
	width := 0
	for _, block := range blocks {
		width = max(width, len(block.Label))
	}
	for _, block := range blocks {
		fmt.Fprintf(b, "  %s-%s  %-*s  %s %s\n",
			block.Start, block.End,
			width, block.Label,
			renderBar(block),
			mutedStyle.Render(fmt.Sprintf("%dm", block.DurationMinutes)),
		)
	}
}

func renderPlan(plan *queries.PlanDTO, explain bool) string {
	var b strings.Builder

	header := fmt.Sprintf("%s · %s · energy %s", plan.Date, plan.Now, plan.Energy)
	b.WriteString(headingStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(nextStyle.Render("NEXT  " + plan.Recommendation.Label))
	b.WriteString("\n")
	for _, tip := range plan.Tips {
		b.WriteString("  • " + tip + "\n")
	}
	if plan.ImprovementTip != "" {
		b.WriteString(mutedStyle.Render("  Tweak: "+plan.ImprovementTip) + "\n")
	}

	fmt.Fprintf(&b, "\n%s %s\n",
		headingStyle.Render("TIMELINE"),
		mutedStyle.Render(fmt.Sprintf("(%.1fh left)", plan.RemainingHours)),
	)
	renderTimeline(&b, plan.Timeline)

	b.WriteString("\n" + plan.Reason + "\n")
	b.WriteString("Habits: " + plan.Habits.String() + "\n")

	if explain {
		b.WriteString("\n" + headingStyle.Render("WHY THIS STEP") + "\n")
		fmt.Fprintf(&b, "  rule:    %s\n", plan.Rule)
		fmt.Fprintf(&b, "  pending: %s\n", joinTaskIDs(plan.Pending))
		if plan.Context != "" {
			fmt.Fprintf(&b, "  context: %s\n", plan.Context)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderNext(plan *queries.PlanDTO) string {
	var b strings.Builder
	b.WriteString(nextStyle.Render(plan.Now + "  " + plan.Recommendation.Label))
	for _, tip := range plan.Tips {
		b.WriteString("\n  • " + tip)
	}
	return b.String()
}

func renderTimelineOnly(plan *queries.PlanDTO) string {
	var b strings.Builder
	renderTimeline(&b, plan.Timeline)
	return strings.TrimRight(b.String(), "\n")
}

func renderDay(day *queries.DayDTO) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("DAY " + day.Date))
	b.WriteString("\n")

	current := day.CurrentTime
	if current == "" {
		current = warnStyle.Render("not set")
	}
	fmt.Fprintf(&b, "  time:    %s\n", current)
	fmt.Fprintf(&b, "  energy:  %s\n", day.Energy)
	if day.Context != "" {
		fmt.Fprintf(&b, "  context: %s\n", day.Context)
	}
	fmt.Fprintf(&b, "  done:    %s\n", renderCompletion(day.Completion))
	fmt.Fprintf(&b, "  habits:  %s", day.HabitTally.String())
	if day.UpdatedAt == nil {
		b.WriteString("\n" + mutedStyle.Render("  (nothing saved yet today)"))
	}
	return b.String()
}

func renderCompletion(c domain.Completion) string {
	parts := make([]string, 0, 5)
	for _, task := range domain.Catalogue() {
		if c.Done(task.ID) {
			parts = append(parts, doneStyle.Render("✓ "+string(task.ID)))
		} else {
			parts = append(parts, mutedStyle.Render("· "+string(task.ID)))
		}
	}
	return strings.Join(parts, "  ")
}

func renderTasks(tasks []queries.TaskDTO) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("TASKS"))
	for _, t := range tasks {
		mark := mutedStyle.Render("[ ]")
		if t.Done {
			mark = doneStyle.Render("[x]")
		}
		fmt.Fprintf(&b, "\n  %s %-9s %-32s %3dm  %s", mark, t.ID, t.Label, t.DurationMinutes, t.Kind)
	}
	return b.String()
}

func renderHabits(habits []queries.HabitDTO) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("HABITS"))
	for _, h := range habits {
		mark := mutedStyle.Render("[ ]")
		if h.Checked {
			mark = doneStyle.Render("[x]")
		}
		fmt.Fprintf(&b, "\n  %s %-14s %-26s %s", mark, h.Key, h.Label, h.Category)
	}
	return b.String()
}

func renderTaskDone(result *commands.SetTaskDoneResult) string {
	label := string(result.TaskID)
	if task, ok := domain.LookupTask(result.TaskID); ok {
		label = task.Label
	}
	var line string
	switch {
	case !result.Changed && result.Done:
		line = mutedStyle.Render(label + " was already done")
	case !result.Changed:
		line = mutedStyle.Render(label + " was not done")
	case result.Done:
		line = doneStyle.Render("✓ " + label)
	default:
		line = warnStyle.Render("↺ " + label + " reopened")
	}
	return line + "\n  " + renderCompletion(result.Completion)
}

func renderHabitSet(result *commands.SetHabitResult) string {
	state := "unchecked"
	if result.Checked {
		state = "checked"
	}
	return fmt.Sprintf("%s %s\n  %s", result.Habit, state, result.Tally.String())
}

func joinTaskIDs(ids []domain.TaskID) string {
	if len(ids) == 0 {
		return "none"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
