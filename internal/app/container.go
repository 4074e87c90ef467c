package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/queries"
	"github.com/felixgeelhaar/dayplan/internal/planner/application/subscribers"
	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/felixgeelhaar/dayplan/internal/planner/infrastructure/cache"
	sharedApplication "github.com/felixgeelhaar/dayplan/internal/shared/application"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/dayplan/pkg/config"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis; nil when the cache is disabled or unreachable.
	RedisClient *redis.Client

	DayStateRepo domain.DayStateRepository
	UnitOfWork   sharedApplication.UnitOfWork

	// Events
	EventBus           *eventbus.InProcessBus
	EventPublisher     eventbus.Publisher
	ProgressSubscriber *subscribers.ProgressSubscriber

	Tips domain.TipPicker

	// Command handlers
	UpdateDayHandler   *commands.UpdateDayHandler
	SetTaskDoneHandler *commands.SetTaskDoneHandler
	SetHabitHandler    *commands.SetHabitHandler
	ResetDayHandler    *commands.ResetDayHandler

	// Query handlers
	GeneratePlanHandler *queries.GeneratePlanHandler
	GetDayHandler       *queries.GetDayHandler
	ListTasksHandler    *queries.ListTasksHandler
	ListHabitsHandler   *queries.ListHabitsHandler
}

// NewContainer opens the configured store, runs migrations and wires every
// handler. Redis and RabbitMQ are optional outside production.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
	}

	conn, err := database.Open(ctx, database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()

	if err := migrations.Run(ctx, conn); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug("database ready", "driver", c.DBDriver.String())

	if err := c.connectRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}

	if err := c.connectPublisher(); err != nil {
		c.Close()
		return nil, err
	}

	factory := NewRepositoryFactory(conn)
	repo, err := factory.CachedDayStateRepository(c.RedisClient, cache.Config{
		TTL:             cfg.CacheTTL,
		BreakerFailures: uint32(max(cfg.BreakerFailures, 1)),
		BreakerTimeout:  cfg.BreakerTimeout,
	}, c.Metrics, logger)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.DayStateRepo = repo
	c.UnitOfWork = factory.UnitOfWork()

	c.wireHandlers()
	return c, nil
}

func (c *Container) connectRedis(ctx context.Context) error {
	if c.Config.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		c.Logger.Warn("invalid Redis URL, day state cache disabled", "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, day state cache disabled", "error", err)
		return nil
	}

	c.RedisClient = client
	c.Logger.Debug("connected to Redis")
	return nil
}

// connectPublisher always delivers to the in-process bus and mirrors
// events to RabbitMQ when a broker URL is configured.
func (c *Container) connectPublisher() error {
	c.EventBus = eventbus.NewInProcessBus(c.Logger)
	c.ProgressSubscriber = subscribers.NewProgressSubscriber(c.Metrics, c.Logger)
	c.EventBus.Subscribe(c.ProgressSubscriber)
	c.EventPublisher = c.EventBus

	if c.Config.RabbitMQURL == "" {
		return nil
	}

	rabbit, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, eventbus.DefaultExchange, c.Logger)
	if err != nil {
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, publishing in process only", "error", err)
		return nil
	}
	c.EventPublisher = eventbus.MultiPublisher{c.EventBus, rabbit}
	return nil
}

func (c *Container) wireHandlers() {
	c.Tips = NewTipPicker(c.Config.TipMode)

	c.UpdateDayHandler = commands.NewUpdateDayHandler(c.DayStateRepo, c.UnitOfWork, c.EventPublisher, c.Logger)
	c.SetTaskDoneHandler = commands.NewSetTaskDoneHandler(c.DayStateRepo, c.UnitOfWork, c.EventPublisher, c.Logger)
	c.SetHabitHandler = commands.NewSetHabitHandler(c.DayStateRepo, c.UnitOfWork, c.EventPublisher, c.Logger)
	c.ResetDayHandler = commands.NewResetDayHandler(c.DayStateRepo, c.UnitOfWork, c.EventPublisher, c.Logger)

	c.GeneratePlanHandler = queries.NewGeneratePlanHandler(c.DayStateRepo, c.Tips, c.Metrics, c.Logger)
	c.GetDayHandler = queries.NewGetDayHandler(c.DayStateRepo)
	c.ListTasksHandler = queries.NewListTasksHandler(c.DayStateRepo)
	c.ListHabitsHandler = queries.NewListHabitsHandler(c.DayStateRepo)
}

// NewTipPicker returns the improvement tip strategy for a config tip mode.
func NewTipPicker(mode string) domain.TipPicker {
	if mode == config.TipModeRandom {
		return domain.RandomTipPicker{}
	}
	return domain.DailyTipPicker{}
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err, "driver", c.DBDriver.String())
		}
	}
}
