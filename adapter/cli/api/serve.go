package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	httpapi "github.com/felixgeelhaar/dayplan/adapter/api"
	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/internal/app"
	"github.com/felixgeelhaar/dayplan/pkg/config"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
	"github.com/spf13/cobra"
)

var serveAddr string

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the planner HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.APIAddr = serveAddr
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

		handler := httpapi.NewPlannerHandler(httpapi.PlannerHandlerConfig{
			UpdateDay:    container.UpdateDayHandler,
			SetTaskDone:  container.SetTaskDoneHandler,
			SetHabit:     container.SetHabitHandler,
			ResetDay:     container.ResetDayHandler,
			GeneratePlan: container.GeneratePlanHandler,
			GetDay:       container.GetDayHandler,
			ListTasks:    container.ListTasksHandler,
			ListHabits:   container.ListHabitsHandler,
			Logger:       logger,
		})

		serverCfg := httpapi.DefaultServerConfig()
		serverCfg.Addr = cfg.APIAddr
		server := httpapi.NewServer(serverCfg, handler, logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to API_ADDR)")
}
