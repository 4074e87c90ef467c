package mcp

import (
	"errors"
	"strings"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
)

var errNoStore = errors.New("planner tools require a database connection")

func requireApp(app *cli.App) error {
	if app == nil || app.GeneratePlanHandler == nil {
		return errNoStore
	}
	return nil
}

// resolveTime turns "now" into the app clock's HH:MM.
func resolveTime(app *cli.App, value string) string {
	if strings.EqualFold(strings.TrimSpace(value), "now") {
		return app.Now().Format("15:04")
	}
	return value
}

// optional returns nil for an empty string.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
