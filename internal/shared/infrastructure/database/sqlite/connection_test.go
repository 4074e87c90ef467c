package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database/sqlite"
)

func openTemp(t *testing.T) database.Connection {
	t.Helper()
	conn, err := database.Open(context.Background(), database.Config{
		SQLitePath: filepath.Join(t.TempDir(), "nested", "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestOpen_CreatesFile(t *testing.T) {
	conn := openTemp(t)

	assert.Equal(t, database.DriverSQLite, conn.Driver())
	assert.NoError(t, conn.Ping(context.Background()))
}

func TestConnection_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: sqlite.MemoryPath})
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec(ctx, `CREATE TABLE notes (id TEXT PRIMARY KEY, body TEXT)`)
	require.NoError(t, err)

	result, err := conn.Exec(ctx, `INSERT INTO notes (id, body) VALUES (?, ?)`, "1", "hello")
	require.NoError(t, err)
	n, err := result.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var body string
	require.NoError(t, conn.QueryRow(ctx, `SELECT body FROM notes WHERE id = ?`, "1").Scan(&body))
	assert.Equal(t, "hello", body)

	err = conn.QueryRow(ctx, `SELECT body FROM notes WHERE id = ?`, "2").Scan(&body)
	assert.True(t, database.IsNoRows(err))
}

func TestUnitOfWork_RollbackAndCommit(t *testing.T) {
	ctx := context.Background()
	conn := openTemp(t)
	uow := database.NewUnitOfWork(conn)

	_, err := conn.Exec(ctx, `CREATE TABLE notes (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	_, err = database.ExecutorFromContext(txCtx, conn).Exec(txCtx, `INSERT INTO notes (id) VALUES ('a')`)
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(txCtx))

	txCtx, err = uow.Begin(ctx)
	require.NoError(t, err)
	innerCtx, err := uow.Begin(txCtx)
	require.NoError(t, err)
	_, err = database.ExecutorFromContext(innerCtx, conn).Exec(innerCtx, `INSERT INTO notes (id) VALUES ('b')`)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(innerCtx))
	require.NoError(t, uow.Commit(txCtx))

	var count int
	require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count))
	assert.Equal(t, 1, count)

	assert.True(t, errors.Is(uow.Commit(ctx), database.ErrNoTransaction))
}
