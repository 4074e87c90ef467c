package api

import "github.com/spf13/cobra"

// Cmd is the HTTP API command group.
var Cmd = &cobra.Command{
	Use:   "api",
	Short: "Run the planner HTTP API",
}

func init() {
	Cmd.AddCommand(serveCmd)
}
