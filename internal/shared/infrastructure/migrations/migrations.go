// Package migrations applies the embedded schema for the active driver.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/felixgeelhaar/dayplan/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (name TEXT PRIMARY KEY)`

// Run applies every *.up.sql file for the connection's driver that has not
// been applied yet, in file name order.
func Run(ctx context.Context, conn database.Connection) error {
	dir := conn.Driver().String()
	entries, err := files.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read %s migrations: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if _, err := conn.Exec(ctx, createVersionTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, name := range names {
		applied, err := isApplied(ctx, conn, name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := apply(ctx, conn, path.Join(dir, name), name); err != nil {
			return err
		}
	}
	return nil
}

func isApplied(ctx context.Context, conn database.Connection, name string) (bool, error) {
	var count int
	query := rebind(conn.Driver(), `SELECT COUNT(*) FROM schema_migrations WHERE name = ?`)
	if err := conn.QueryRow(ctx, query, name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", name, err)
	}
	return count > 0, nil
}

func apply(ctx context.Context, conn database.Connection, file, name string) error {
	body, err := files.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read migration %s: %w", name, err)
	}

	uow := database.NewUnitOfWork(conn)
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	exec := database.ExecutorFromContext(txCtx, conn)
	if _, err := exec.Exec(txCtx, string(body)); err != nil {
		_ = uow.Rollback(txCtx)
		return fmt.Errorf("failed to execute migration %s: %w", name, err)
	}
	if _, err := exec.Exec(txCtx, rebind(conn.Driver(), `INSERT INTO schema_migrations (name) VALUES (?)`), name); err != nil {
		_ = uow.Rollback(txCtx)
		return fmt.Errorf("failed to record migration %s: %w", name, err)
	}
	return uow.Commit(txCtx)
}

// rebind turns the single ? placeholder into $1 for PostgreSQL.
func rebind(driver database.Driver, query string) string {
	if driver == database.DriverPostgres {
		return strings.Replace(query, "?", "$1", 1)
	}
	return query
}
