package cli

import (
	"github.com/felixgeelhaar/dayplan/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/queries"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is stored for today",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}

		day, err := a.GetDayHandler.Handle(cmd.Context(), queries.GetDayQuery{Now: a.Now()})
		if err != nil {
			return err
		}
		return writeOutput(cmd, newView(day, func() string { return renderDay(day) }))
	},
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List today's tasks and whether they are done",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}

		tasks, err := a.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{Now: a.Now()})
		if err != nil {
			return err
		}
		return writeOutput(cmd, newView(tasks, func() string { return renderTasks(tasks) }))
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget everything stored for today",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}

		now := a.Now()
		if err := a.ResetDayHandler.Handle(cmd.Context(), commands.ResetDayCommand{Now: now, Actor: a.Actor}); err != nil {
			return err
		}
		return writeOutput(cmd, "Cleared "+now.Format("2006-01-02")+".")
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(resetCmd)
}
