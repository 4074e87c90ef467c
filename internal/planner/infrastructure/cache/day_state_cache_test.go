package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/felixgeelhaar/dayplan/internal/planner/domain"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu    sync.Mutex
	days  map[string]*domain.DayState
	finds int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{days: make(map[string]*domain.DayState)}
}

func (m *memoryRepo) Save(_ context.Context, state *domain.DayState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days[state.DateKey()] = state
	return nil
}

func (m *memoryRepo) FindByDate(_ context.Context, date time.Time) (*domain.DayState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	return m.days[date.Format(domain.DateLayout)], nil
}

func (m *memoryRepo) DeleteByDate(_ context.Context, date time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.days, date.Format(domain.DateLayout))
	return nil
}

// stagedRepo only makes transactional saves visible once the transaction
// commits, like a database would.
type stagedRepo struct {
	*memoryRepo
}

func (s stagedRepo) Save(ctx context.Context, state *domain.DayState) error {
	if !database.InTransaction(ctx) {
		return s.memoryRepo.Save(ctx, state)
	}
	database.AfterCommit(ctx, func() {
		_ = s.memoryRepo.Save(context.Background(), state)
	})
	return nil
}

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func newUnitOfWork(t *testing.T) *database.UnitOfWork {
	t.Helper()
	conn, err := sqlite.NewConnection(context.Background(), database.Config{SQLitePath: sqlite.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return database.NewUnitOfWork(conn)
}

func dayAt(t *testing.T, m domain.Minute) *domain.DayState {
	t.Helper()
	state := domain.NewDayState(day)
	state.SetCurrentTime(m)
	return state
}

func currentTime(t *testing.T, state *domain.DayState) domain.Minute {
	t.Helper()
	require.NotNil(t, state)
	m, ok := state.CurrentTime()
	require.True(t, ok)
	return m
}

var day = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func TestKey(t *testing.T) {
	assert.Equal(t, "dayplan:day:2026-05-04", Key(day))
}

func TestCachedDayStateRepository_FallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	inner := newMemoryRepo()
	metrics := observability.NewInMemoryMetrics()
	repo := NewCachedDayStateRepository(inner, unreachableClient(t), Config{
		TTL:             time.Hour,
		BreakerFailures: 2,
		BreakerTimeout:  time.Minute,
	}, metrics, observability.NewDiscardLogger())

	state := domain.NewDayState(day)
	state.SetCurrentTime(600)
	require.NoError(t, repo.Save(ctx, state))

	for range 3 {
		found, err := repo.FindByDate(ctx, day)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, state.ID(), found.ID())
	}

	assert.Equal(t, 3, inner.finds)
	assert.Zero(t, metrics.CounterValue(observability.MetricCacheHits))
	assert.Positive(t, metrics.CounterValue(observability.MetricCacheFailures, observability.T("op", "get")))

	require.NoError(t, repo.DeleteByDate(ctx, day))
	found, err := repo.FindByDate(ctx, day)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCachedDayStateRepository_MissThenHit(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	inner := newMemoryRepo()
	metrics := observability.NewInMemoryMetrics()
	repo := NewCachedDayStateRepository(inner, client, Config{TTL: time.Hour}, metrics, observability.NewDiscardLogger())

	require.NoError(t, repo.Save(ctx, dayAt(t, 600)))
	assert.False(t, mr.Exists(Key(day)))

	found, err := repo.FindByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, domain.Minute(600), currentTime(t, found))
	assert.Equal(t, 1, inner.finds)
	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricCacheMisses))
	assert.Zero(t, metrics.CounterValue(observability.MetricCacheHits))
	assert.True(t, mr.Exists(Key(day)))
	assert.Equal(t, time.Hour, mr.TTL(Key(day)))

	found, err = repo.FindByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, domain.Minute(600), currentTime(t, found))
	assert.Equal(t, 1, inner.finds, "second read is served from redis")
	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricCacheHits))
	assert.Equal(t, int64(1), metrics.CounterValue(observability.MetricCacheMisses))
	assert.Zero(t, metrics.CounterValue(observability.MetricCacheFailures, observability.T("op", "get")))
}

func TestCachedDayStateRepository_MissingDayIsNotCached(t *testing.T) {
	mr, client := newMiniredis(t)
	repo := NewCachedDayStateRepository(newMemoryRepo(), client, Config{TTL: time.Hour}, nil, observability.NewDiscardLogger())

	found, err := repo.FindByDate(context.Background(), day)
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.False(t, mr.Exists(Key(day)))
}

func TestCachedDayStateRepository_WritesDropCachedCopy(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	inner := newMemoryRepo()
	repo := NewCachedDayStateRepository(inner, client, Config{TTL: time.Hour}, nil, observability.NewDiscardLogger())

	require.NoError(t, repo.Save(ctx, dayAt(t, 600)))
	_, err := repo.FindByDate(ctx, day)
	require.NoError(t, err)
	require.True(t, mr.Exists(Key(day)))

	require.NoError(t, repo.Save(ctx, dayAt(t, 900)))
	assert.False(t, mr.Exists(Key(day)))

	found, err := repo.FindByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, domain.Minute(900), currentTime(t, found))
	require.True(t, mr.Exists(Key(day)))

	require.NoError(t, repo.DeleteByDate(ctx, day))
	assert.False(t, mr.Exists(Key(day)))

	found, err = repo.FindByDate(ctx, day)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCachedDayStateRepository_TransactionReadsBypassCache(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	inner := newMemoryRepo()
	metrics := observability.NewInMemoryMetrics()
	repo := NewCachedDayStateRepository(inner, client, Config{TTL: time.Hour}, metrics, observability.NewDiscardLogger())
	require.NoError(t, repo.Save(ctx, dayAt(t, 600)))

	uow := newUnitOfWork(t)
	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = uow.Rollback(txCtx) }()

	found, err := repo.FindByDate(txCtx, day)
	require.NoError(t, err)
	assert.Equal(t, domain.Minute(600), currentTime(t, found))
	assert.False(t, mr.Exists(Key(day)))
	assert.Zero(t, metrics.CounterValue(observability.MetricCacheMisses))
}

func TestCachedDayStateRepository_ReaderDuringTransactionDoesNotPinOldRow(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	inner := stagedRepo{newMemoryRepo()}
	repo := NewCachedDayStateRepository(inner, client, Config{TTL: 24 * time.Hour}, nil, observability.NewDiscardLogger())
	require.NoError(t, repo.Save(ctx, dayAt(t, 600)))

	uow := newUnitOfWork(t)
	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Save(txCtx, dayAt(t, 900)))

	// Another request reads before the writer commits and caches what it sees.
	found, err := repo.FindByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, domain.Minute(600), currentTime(t, found))
	require.True(t, mr.Exists(Key(day)))

	require.NoError(t, uow.Commit(txCtx))
	assert.False(t, mr.Exists(Key(day)))

	found, err = repo.FindByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, domain.Minute(900), currentTime(t, found))
}

func TestCachedDayStateRepository_RollbackKeepsCachedCopy(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	inner := stagedRepo{newMemoryRepo()}
	repo := NewCachedDayStateRepository(inner, client, Config{TTL: time.Hour}, nil, observability.NewDiscardLogger())
	require.NoError(t, repo.Save(ctx, dayAt(t, 600)))

	uow := newUnitOfWork(t)
	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Save(txCtx, dayAt(t, 900)))

	_, err = repo.FindByDate(ctx, day)
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(txCtx))

	assert.True(t, mr.Exists(Key(day)))
	found, err := repo.FindByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, domain.Minute(600), currentTime(t, found))
}

func TestSnapshotRoundTrip(t *testing.T) {
	state := domain.NewDayState(day)
	state.SetCurrentTime(1015)
	require.NoError(t, state.SetEnergy(domain.EnergyHigh))
	state.SetContext("exam week")
	require.NoError(t, state.SetTaskDone(domain.TaskReading, true))
	require.NoError(t, state.SetHabit("journal", true))

	data, err := encodeSnapshot(state)
	require.NoError(t, err)

	decoded, err := decodeSnapshot(data, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, state.ID(), decoded.ID())
	assert.Equal(t, state.DateKey(), decoded.DateKey())
	m, ok := decoded.CurrentTime()
	require.True(t, ok)
	assert.Equal(t, domain.Minute(1015), m)
	assert.Equal(t, domain.EnergyHigh, decoded.Energy())
	assert.Equal(t, "exam week", decoded.Context())
	assert.Equal(t, state.Completion(), decoded.Completion())
	assert.Equal(t, state.Habits(), decoded.Habits())
	assert.Equal(t, state.Version(), decoded.Version())
	assert.Empty(t, decoded.DomainEvents())
}

func TestSnapshotWithoutTime(t *testing.T) {
	data, err := encodeSnapshot(domain.NewDayState(day))
	require.NoError(t, err)

	decoded, err := decodeSnapshot(data, time.UTC)
	require.NoError(t, err)
	_, ok := decoded.CurrentTime()
	assert.False(t, ok)
	assert.Equal(t, domain.DefaultEnergy, decoded.Energy())
}

func TestDecodeSnapshot_Garbage(t *testing.T) {
	_, err := decodeSnapshot([]byte("{"), time.UTC)
	assert.Error(t, err)
}
