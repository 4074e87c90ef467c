package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/dayplan/internal/planner/application/queries"
	"github.com/felixgeelhaar/mcp-go"
)

// RegisterResources registers MCP resources that expose today's planner state.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	app := deps.App

	// Full plan when a time is stored, otherwise the raw day.
	srv.Resource("dayplan://today").
		Name("Today").
		Description("Today's plan, or the stored day when no time has been set yet").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if err := requireApp(app); err != nil {
				return nil, err
			}
			plan, err := app.GeneratePlanHandler.Handle(ctx, queries.GeneratePlanQuery{Now: app.Now()})
			if errors.Is(err, queries.ErrTimeNotSet) {
				day, dayErr := app.GetDayHandler.Handle(ctx, queries.GetDayQuery{Now: app.Now()})
				if dayErr != nil {
					return nil, dayErr
				}
				return jsonResource(uri, day)
			}
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, plan)
		})

	srv.Resource("dayplan://tasks").
		Name("Tasks").
		Description("Today's task catalogue with done flags").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if err := requireApp(app); err != nil {
				return nil, err
			}
			tasks, err := app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{Now: app.Now()})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, tasks)
		})

	srv.Resource("dayplan://habits").
		Name("Habits").
		Description("Habit catalogue with today's checks").
		MimeType("application/json").
		Handler(func(ctx context.Context, uri string, params map[string]string) (*mcp.ResourceContent, error) {
			if err := requireApp(app); err != nil {
				return nil, err
			}
			habits, err := app.ListHabitsHandler.Handle(ctx, queries.ListHabitsQuery{Now: app.Now()})
			if err != nil {
				return nil, err
			}
			return jsonResource(uri, habits)
		})

	return nil
}

func jsonResource(uri string, v any) (*mcp.ResourceContent, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ResourceContent{
		URI:      uri,
		MimeType: "application/json",
		Text:     string(data),
	}, nil
}
