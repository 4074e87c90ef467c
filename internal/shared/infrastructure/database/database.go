// Package database hides the SQLite and PostgreSQL drivers behind one executor API.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Driver names a database backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func (d Driver) String() string {
	return string(d)
}

// DetectDriver picks the backend for a connection URL.
// An empty URL selects SQLite so the planner works without any setup.
func DetectDriver(url string) Driver {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// Config holds database configuration.
type Config struct {
	// Driver overrides detection from URL when set.
	Driver Driver

	// URL is the PostgreSQL connection string.
	URL string

	// SQLitePath is the database file used by the SQLite driver.
	// ":memory:" opens a private in-memory database.
	SQLitePath string

	// MaxConns caps the PostgreSQL pool.
	MaxConns int
}

// ResolvedDriver returns the configured driver or the one detected from URL.
func (c Config) ResolvedDriver() Driver {
	if c.Driver != "" {
		return c.Driver
	}
	return DetectDriver(c.URL)
}

type opener func(ctx context.Context, cfg Config) (Connection, error)

var openers = map[Driver]opener{}

// RegisterDriver makes a backend available to Open. Driver packages call it from init.
func RegisterDriver(driver Driver, fn func(ctx context.Context, cfg Config) (Connection, error)) {
	openers[driver] = fn
}

// Open connects to the backend selected by cfg.
func Open(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.ResolvedDriver()
	open, ok := openers[driver]
	if !ok {
		return nil, fmt.Errorf("database driver %q is not registered", driver)
	}
	return open(ctx, cfg)
}

// DefaultSQLitePath returns ~/.dayplan/dayplan.db.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".dayplan", "dayplan.db")
}

// EnsureDirectory creates the parent directory of path.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
