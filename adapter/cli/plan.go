package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/felixgeelhaar/dayplan/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/queries"
	"github.com/spf13/cobra"
)

var (
	planTime    string
	planEnergy  string
	planNote    string
	planExplain bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the next step and the rest of today's timeline",
	Long: `Records the given time, energy and context for today, then prints
the recommended next step with tips and the timeline until 22:30.

Examples:
  dayplan plan --time now
  dayplan plan --time 14:30 --energy low --note "exam tomorrow"
  dayplan plan --explain
  dayplan plan -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := saveDayInputs(ctx, cmd, a); err != nil {
			return err
		}

		plan, err := a.GeneratePlanHandler.Handle(ctx, queries.GeneratePlanQuery{Now: a.Now()})
		if errors.Is(err, queries.ErrTimeNotSet) {
			return writeOutput(cmd, queries.TimeNotSetPrompt)
		}
		if err != nil {
			return err
		}

		explain := planExplain
		return writeOutput(cmd, newView(plan, func() string { return renderPlan(plan, explain) }))
	},
}

var (
	nextTime   string
	nextEnergy string
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print only the recommended next step",
	Long: `Prints the recommendation for the stored time and energy. --time and
--energy apply to this call only and are not saved.

Examples:
  dayplan next
  dayplan next --time 16:50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}

		plan, err := a.GeneratePlanHandler.Handle(cmd.Context(), queries.GeneratePlanQuery{
			Now:    a.Now(),
			Time:   resolveTime(nextTime, a),
			Energy: nextEnergy,
		})
		if errors.Is(err, queries.ErrTimeNotSet) {
			return writeOutput(cmd, queries.TimeNotSetPrompt)
		}
		if err != nil {
			return err
		}

		data := map[string]any{
			"now":            plan.Now,
			"recommendation": plan.Recommendation,
			"rule":           plan.Rule,
			"tips":           plan.Tips,
		}
		return writeOutput(cmd, newView(data, func() string { return renderNext(plan) }))
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print only the rest of today's timeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}

		plan, err := a.GeneratePlanHandler.Handle(cmd.Context(), queries.GeneratePlanQuery{Now: a.Now()})
		if errors.Is(err, queries.ErrTimeNotSet) {
			return writeOutput(cmd, queries.TimeNotSetPrompt)
		}
		if err != nil {
			return err
		}
		return writeOutput(cmd, newView(plan.Timeline, func() string { return renderTimelineOnly(plan) }))
	},
}

// saveDayInputs stores the flags that were given on the command line.
func saveDayInputs(ctx context.Context, cmd *cobra.Command, a *App) error {
	update := commands.UpdateDayCommand{Now: a.Now(), Actor: a.Actor}
	changed := false

	if cmd.Flags().Changed("time") {
		if strings.EqualFold(strings.TrimSpace(planTime), "now") {
			update.UseClock = true
		} else {
			t := planTime
			update.Time = &t
		}
		changed = true
	}
	if cmd.Flags().Changed("energy") {
		e := planEnergy
		update.Energy = &e
		changed = true
	}
	if cmd.Flags().Changed("note") {
		n := planNote
		update.Context = &n
		changed = true
	}
	if !changed {
		return nil
	}

	_, err := a.UpdateDayHandler.Handle(ctx, update)
	return err
}

// resolveTime turns "now" into the clock's HH:MM.
func resolveTime(value string, a *App) string {
	if strings.EqualFold(strings.TrimSpace(value), "now") {
		return a.Now().Format("15:04")
	}
	return value
}

func init() {
	planCmd.Flags().StringVarP(&planTime, "time", "t", "", `current time as HH:MM, or "now"`)
	planCmd.Flags().StringVarP(&planEnergy, "energy", "e", "", "energy level: low, medium or high")
	planCmd.Flags().StringVarP(&planNote, "note", "n", "", "free-text context for today")
	planCmd.Flags().BoolVar(&planExplain, "explain", false, "show which rule picked the next step")

	nextCmd.Flags().StringVarP(&nextTime, "time", "t", "", `time as HH:MM, or "now"`)
	nextCmd.Flags().StringVarP(&nextEnergy, "energy", "e", "", "energy level for this call")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(timelineCmd)
}
