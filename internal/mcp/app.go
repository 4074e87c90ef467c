package mcp

import (
	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/internal/app"
)

// NewCLIApp creates a CLI application instance backed by the provided container.
func NewCLIApp(container *app.Container) *cli.App {
	cliApp := cli.NewApp(
		container.UpdateDayHandler,
		container.SetTaskDoneHandler,
		container.SetHabitHandler,
		container.ResetDayHandler,
		container.GeneratePlanHandler,
		container.GetDayHandler,
		container.ListTasksHandler,
		container.ListHabitsHandler,
	)
	cliApp.Actor = "mcp"
	return cliApp
}
