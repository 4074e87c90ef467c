package cli

import (
	"fmt"

	"github.com/felixgeelhaar/dayplan/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/queries"
	"github.com/spf13/cobra"
)

var habitOff bool

var habitCmd = &cobra.Command{
	Use:   "habit [key]",
	Short: "Check a habit, or list today's habits",
	Long: `Without a key, lists the habit catalogue with today's checks.
With a key, checks that habit; --off unchecks it.

Examples:
  dayplan habit
  dayplan habit water
  dayplan habit doomscroll --off`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			habits, err := a.ListHabitsHandler.Handle(cmd.Context(), queries.ListHabitsQuery{Now: a.Now()})
			if err != nil {
				return err
			}
			return writeOutput(cmd, newView(habits, func() string { return renderHabits(habits) }))
		}

		result, err := a.SetHabitHandler.Handle(cmd.Context(), commands.SetHabitCommand{
			Now:     a.Now(),
			Habit:   args[0],
			Checked: !habitOff,
			Actor:   a.Actor,
		})
		if err != nil {
			return fmt.Errorf("failed to update habit: %w", err)
		}
		return writeOutput(cmd, newView(result, func() string { return renderHabitSet(result) }))
	},
}

func init() {
	habitCmd.Flags().BoolVar(&habitOff, "off", false, "uncheck the habit")
	rootCmd.AddCommand(habitCmd)
}
