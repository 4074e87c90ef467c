package mcp

import (
	"context"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/queries"
	"github.com/felixgeelhaar/mcp-go"
)

type doneInput struct {
	Task string `json:"task" jsonschema:"required"`
	Undo bool   `json:"undo,omitempty"`
}

type habitInput struct {
	Habit   string `json:"habit" jsonschema:"required"`
	Uncheck bool   `json:"uncheck,omitempty"`
}

func registerProgressTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("planner.done").
		Description("Mark one of today's tasks done, or reopen it with undo").
		Handler(doneHandler(app))

	srv.Tool("planner.habit").
		Description("Check or uncheck a habit for today").
		Handler(habitHandler(app))

	srv.Tool("planner.tasks").
		Description("List today's tasks with their done flags").
		Handler(func(ctx context.Context, input struct{}) ([]queries.TaskDTO, error) {
			if err := requireApp(app); err != nil {
				return nil, err
			}
			return app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{Now: app.Now()})
		})

	srv.Tool("planner.habits").
		Description("List the habit catalogue with today's checks").
		Handler(func(ctx context.Context, input struct{}) ([]queries.HabitDTO, error) {
			if err := requireApp(app); err != nil {
				return nil, err
			}
			return app.ListHabitsHandler.Handle(ctx, queries.ListHabitsQuery{Now: app.Now()})
		})

	return nil
}

func doneHandler(app *cli.App) func(context.Context, doneInput) (*commands.SetTaskDoneResult, error) {
	return func(ctx context.Context, input doneInput) (*commands.SetTaskDoneResult, error) {
		if err := requireApp(app); err != nil {
			return nil, err
		}
		return app.SetTaskDoneHandler.Handle(ctx, commands.SetTaskDoneCommand{
			Now:    app.Now(),
			TaskID: input.Task,
			Done:   !input.Undo,
			Actor:  app.Actor,
		})
	}
}

func habitHandler(app *cli.App) func(context.Context, habitInput) (*commands.SetHabitResult, error) {
	return func(ctx context.Context, input habitInput) (*commands.SetHabitResult, error) {
		if err := requireApp(app); err != nil {
			return nil, err
		}
		return app.SetHabitHandler.Handle(ctx, commands.SetHabitCommand{
			Now:     app.Now(),
			Habit:   input.Habit,
			Checked: !input.Uncheck,
			Actor:   app.Actor,
		})
	}
}
