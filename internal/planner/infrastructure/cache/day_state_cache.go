// Package cache provides a Redis read-through cache for day states.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// KeyPrefix namespaces cached day states; the date key is appended.
const KeyPrefix = "dayplan:day:"

// Config tunes the cache and its circuit breaker.
type Config struct {
	TTL             time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// DefaultConfig returns the cache defaults.
func DefaultConfig() Config {
	return Config{
		TTL:             24 * time.Hour,
		BreakerFailures: 3,
		BreakerTimeout:  30 * time.Second,
	}
}

// CachedDayStateRepository decorates a DayStateRepository with Redis.
// Redis errors are logged and the inner repository answers instead.
type CachedDayStateRepository struct {
	inner   domain.DayStateRepository
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	ttl     time.Duration
	metrics observability.Metrics
	logger  *slog.Logger
}

// NewCachedDayStateRepository wraps inner with a Redis cache.
func NewCachedDayStateRepository(
	inner domain.DayStateRepository,
	client *redis.Client,
	cfg Config,
	metrics observability.Metrics,
	logger *slog.Logger,
) *CachedDayStateRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = DefaultConfig().BreakerFailures
	}

	settings := gobreaker.Settings{
		Name:    "day-state-cache",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &CachedDayStateRepository{
		inner:   inner,
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		ttl:     cfg.TTL,
		metrics: metrics,
		logger:  logger,
	}
}

// Key returns the cache key of a calendar day.
func Key(date time.Time) string {
	return KeyPrefix + date.Format(domain.DateLayout)
}

// Save writes through to the inner repository and drops the cached copy,
// once before the write and again after the surrounding transaction commits.
func (r *CachedDayStateRepository) Save(ctx context.Context, state *domain.DayState) error {
	date := state.Date()
	r.invalidate(ctx, date)
	if err := r.inner.Save(ctx, state); err != nil {
		return err
	}
	r.invalidateAfterCommit(ctx, date)
	return nil
}

// FindByDate serves from Redis when possible. Reads inside a transaction
// always go to the inner repository.
func (r *CachedDayStateRepository) FindByDate(ctx context.Context, date time.Time) (*domain.DayState, error) {
	if database.InTransaction(ctx) {
		return r.inner.FindByDate(ctx, date)
	}

	key := Key(date)
	data, err := r.breaker.Execute(func() ([]byte, error) {
		b, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return b, err
	})
	switch {
	case err != nil:
		r.failure("get", key, err)
	case data != nil:
		state, decodeErr := decodeSnapshot(data, date.Location())
		if decodeErr == nil {
			r.metrics.Counter(observability.MetricCacheHits, 1)
			return state, nil
		}
		r.failure("decode", key, decodeErr)
	default:
		r.metrics.Counter(observability.MetricCacheMisses, 1)
	}

	state, err := r.inner.FindByDate(ctx, date)
	if err != nil || state == nil {
		return state, err
	}
	r.store(ctx, key, state)
	return state, nil
}

// DeleteByDate deletes through to the inner repository and drops the cached
// copy the same way Save does.
func (r *CachedDayStateRepository) DeleteByDate(ctx context.Context, date time.Time) error {
	r.invalidate(ctx, date)
	if err := r.inner.DeleteByDate(ctx, date); err != nil {
		return err
	}
	r.invalidateAfterCommit(ctx, date)
	return nil
}

func (r *CachedDayStateRepository) store(ctx context.Context, key string, state *domain.DayState) {
	data, err := encodeSnapshot(state)
	if err != nil {
		r.failure("encode", key, err)
		return
	}
	_, err = r.breaker.Execute(func() ([]byte, error) {
		return nil, r.client.Set(ctx, key, data, r.ttl).Err()
	})
	if err != nil {
		r.failure("set", key, err)
	}
}

// invalidateAfterCommit drops the key again once the write is visible, so a
// reader that cached the old row while the transaction was open is corrected.
func (r *CachedDayStateRepository) invalidateAfterCommit(ctx context.Context, date time.Time) {
	database.AfterCommit(ctx, func() {
		r.invalidate(context.WithoutCancel(ctx), date)
	})
}

func (r *CachedDayStateRepository) invalidate(ctx context.Context, date time.Time) {
	key := Key(date)
	_, err := r.breaker.Execute(func() ([]byte, error) {
		return nil, r.client.Del(ctx, key).Err()
	})
	if err != nil {
		r.failure("del", key, err)
	}
}

func (r *CachedDayStateRepository) failure(op, key string, err error) {
	r.metrics.Counter(observability.MetricCacheFailures, 1, observability.T("op", op))
	r.logger.Warn("day state cache unavailable, using database",
		"op", op,
		"key", key,
		"error", err,
	)
}

func encodeSnapshot(state *domain.DayState) ([]byte, error) {
	return json.Marshal(state.Snapshot())
}

func decodeSnapshot(data []byte, loc *time.Location) (*domain.DayState, error) {
	var snap domain.DaySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode day snapshot: %w", err)
	}
	state, err := domain.RestoreDayState(snap, loc)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot date: %w", err)
	}
	return state, nil
}
