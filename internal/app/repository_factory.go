package app

import (
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/felixgeelhaar/dayplan/internal/planner/infrastructure/cache"
	"github.com/felixgeelhaar/dayplan/internal/planner/infrastructure/persistence"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
	"github.com/redis/go-redis/v9"
)

// RepositoryFactory creates repositories based on the database driver.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// DayStateRepository creates a day-state repository for the configured driver.
func (f *RepositoryFactory) DayStateRepository() (domain.DayStateRepository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return persistence.NewPostgresDayStateRepository(f.conn), nil
	case database.DriverSQLite:
		return persistence.NewSQLiteDayStateRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// CachedDayStateRepository wraps the driver repository with the Redis cache.
// A nil client returns the plain repository.
func (f *RepositoryFactory) CachedDayStateRepository(
	client *redis.Client,
	cfg cache.Config,
	metrics observability.Metrics,
	logger *slog.Logger,
) (domain.DayStateRepository, error) {
	repo, err := f.DayStateRepository()
	if err != nil || client == nil {
		return repo, err
	}
	return cache.NewCachedDayStateRepository(repo, client, cfg, metrics, logger), nil
}

// UnitOfWork returns a unit of work over the factory's connection.
func (f *RepositoryFactory) UnitOfWork() *database.UnitOfWork {
	return database.NewUnitOfWork(f.conn)
}
