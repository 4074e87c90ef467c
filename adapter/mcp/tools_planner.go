package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/queries"
	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/felixgeelhaar/mcp-go"
)

type planInput struct {
	Time   string `json:"time,omitempty"`
	Energy string `json:"energy,omitempty"`
}

// updateDayInput.Context is a pointer so an explicit "" clears the note.
type updateDayInput struct {
	Time    string  `json:"time,omitempty"`
	Energy  string  `json:"energy,omitempty"`
	Context *string `json:"context,omitempty"`
}

// NextStep is the planner.next result.
type NextStep struct {
	Now            string                `json:"now"`
	Recommendation domain.Recommendation `json:"recommendation"`
	Rule           string                `json:"rule"`
	Tips           []string              `json:"tips"`
}

func registerPlannerTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("planner.plan").
		Description("Generate the full plan: next step, tips, timeline, remaining hours and habit summary").
		Handler(planHandler(app))

	srv.Tool("planner.next").
		Description("Recommend the single best next step for the current time and energy").
		Handler(nextHandler(app))

	srv.Tool("planner.timeline").
		Description("Build the timeline from the current time until 22:30").
		Handler(func(ctx context.Context, input planInput) ([]queries.BlockDTO, error) {
			plan, err := planHandler(app)(ctx, input)
			if err != nil {
				return nil, err
			}
			return plan.Timeline, nil
		})

	srv.Tool("planner.update").
		Description("Save today's current time, energy or context note").
		Handler(updateDayHandler(app))

	srv.Tool("planner.day").
		Description("Show what is stored for today").
		Handler(func(ctx context.Context, input struct{}) (*queries.DayDTO, error) {
			if err := requireApp(app); err != nil {
				return nil, err
			}
			return app.GetDayHandler.Handle(ctx, queries.GetDayQuery{Now: app.Now()})
		})

	srv.Tool("planner.reset").
		Description("Forget everything stored for today").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			if err := requireApp(app); err != nil {
				return nil, err
			}
			now := app.Now()
			if err := app.ResetDayHandler.Handle(ctx, commands.ResetDayCommand{Now: now, Actor: app.Actor}); err != nil {
				return nil, err
			}
			return map[string]string{"status": "cleared", "date": now.Format(domain.DateLayout)}, nil
		})

	return nil
}

func planHandler(app *cli.App) func(context.Context, planInput) (*queries.PlanDTO, error) {
	return func(ctx context.Context, input planInput) (*queries.PlanDTO, error) {
		if err := requireApp(app); err != nil {
			return nil, err
		}
		plan, err := app.GeneratePlanHandler.Handle(ctx, queries.GeneratePlanQuery{
			Now:    app.Now(),
			Time:   resolveTime(app, input.Time),
			Energy: input.Energy,
		})
		if errors.Is(err, queries.ErrTimeNotSet) {
			return nil, fmt.Errorf("%w: pass a time or call planner.update first", err)
		}
		return plan, err
	}
}

func nextHandler(app *cli.App) func(context.Context, planInput) (*NextStep, error) {
	return func(ctx context.Context, input planInput) (*NextStep, error) {
		plan, err := planHandler(app)(ctx, input)
		if err != nil {
			return nil, err
		}
		return &NextStep{
			Now:            plan.Now,
			Recommendation: plan.Recommendation,
			Rule:           plan.Rule,
			Tips:           plan.Tips,
		}, nil
	}
}

func updateDayHandler(app *cli.App) func(context.Context, updateDayInput) (*commands.UpdateDayResult, error) {
	return func(ctx context.Context, input updateDayInput) (*commands.UpdateDayResult, error) {
		if err := requireApp(app); err != nil {
			return nil, err
		}
		cmd := commands.UpdateDayCommand{
			Now:     app.Now(),
			Energy:  optional(input.Energy),
			Context: input.Context,
			Actor:   app.Actor,
		}
		switch {
		case strings.EqualFold(strings.TrimSpace(input.Time), "now"):
			cmd.UseClock = true
		case input.Time != "":
			cmd.Time = &input.Time
		}
		return app.UpdateDayHandler.Handle(ctx, cmd)
	}
}
