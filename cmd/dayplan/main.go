package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/adapter/cli/api"
	"github.com/felixgeelhaar/dayplan/adapter/cli/mcp"
	"github.com/felixgeelhaar/dayplan/internal/app"
	"github.com/felixgeelhaar/dayplan/pkg/config"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
)

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development", LogLevel: "info", TipMode: config.TipModeDaily}
	}

	logCfg := observability.DefaultLogConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = observability.LogFormat(cfg.LogFormat)
	logCfg.AddSource = cfg.LogSource
	logCfg.Version = cli.Version
	logger := observability.NewLogger(logCfg)
	if err != nil {
		logger.Warn("failed to load config, using development defaults", "error", err)
	}
	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsProduction() {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
		// Commands report the missing store themselves; version and help still work.
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		defer container.Close()

		cliApp = cli.NewApp(
			container.UpdateDayHandler,
			container.SetTaskDoneHandler,
			container.SetHabitHandler,
			container.ResetDayHandler,
			container.GeneratePlanHandler,
			container.GetDayHandler,
			container.ListTasksHandler,
			container.ListHabitsHandler,
		)
	}

	cli.SetApp(cliApp)
	cli.AddCommand(mcp.Cmd)
	cli.AddCommand(api.Cmd)

	cli.Execute(ctx)
}
