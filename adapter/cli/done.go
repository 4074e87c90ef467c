package cli

import (
	"fmt"

	"github.com/felixgeelhaar/dayplan/internal/planner/application/commands"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <task>",
	Short: "Mark a task as done for today",
	Long: `Checks off one of today's tasks: sat, homework, gym, reading or life.

Examples:
  dayplan done sat
  dayplan done gym`,
	Aliases:   []string{"complete", "x"},
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"sat", "homework", "gym", "reading", "life"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTaskDone(cmd, args[0], true)
	},
}

var undoCmd = &cobra.Command{
	Use:       "undo <task>",
	Short:     "Reopen a task marked done by mistake",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"sat", "homework", "gym", "reading", "life"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTaskDone(cmd, args[0], false)
	},
}

func setTaskDone(cmd *cobra.Command, task string, done bool) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	result, err := a.SetTaskDoneHandler.Handle(cmd.Context(), commands.SetTaskDoneCommand{
		Now:    a.Now(),
		TaskID: task,
		Done:   done,
		Actor:  a.Actor,
	})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return writeOutput(cmd, newView(result, func() string { return renderTaskDone(result) }))
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoCmd)
}
