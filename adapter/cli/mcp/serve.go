package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/internal/app"
	mcpinternal "github.com/felixgeelhaar/dayplan/internal/mcp"
	"github.com/felixgeelhaar/dayplan/pkg/config"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.MCPAddr = serveAddr
		}

		logCfg := observability.DefaultLogConfig()
		logCfg.Level = cfg.LogLevel
		logCfg.Format = observability.LogFormat(cfg.LogFormat)
		logCfg.AddSource = cfg.LogSource
		logCfg.Output = cmd.ErrOrStderr()
		logCfg.Version = cli.Version
		if cli.Verbose() {
			logCfg.Level = "debug"
		}
		logger := observability.NewLogger(logCfg)

		container, err := app.NewContainer(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer container.Close()

		cliApp := mcpinternal.NewCLIApp(container)
		err = mcpinternal.Serve(ctx, cfg, cliApp, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to MCP_ADDR)")
}
