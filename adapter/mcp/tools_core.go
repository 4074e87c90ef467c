package mcp

import (
	"context"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/mcp-go"
)

func registerCoreTools(srv *mcp.Server, deps ToolDependencies) error {
	app := deps.App

	srv.Tool("dayplan.health").
		Description("Check that the planner store is wired").
		Handler(func(ctx context.Context, input struct{}) (map[string]string, error) {
			if err := requireApp(app); err != nil {
				return nil, err
			}
			return map[string]string{"status": "ok", "version": cli.Version}, nil
		})

	return nil
}
