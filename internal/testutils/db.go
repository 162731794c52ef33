// Package testutils provides helpers for database integration tests.
//
// The core pattern is transaction-based isolation: each test runs inside
// its own transaction which is rolled back when the test completes, so
// tests can run in parallel against the same database without interfering
// with each other and without manual cleanup.
//
// Integration tests are gated on the DATABASE_URL environment variable;
// packages using these helpers should check IsIntegrationTestEnvironment
// in TestMain and exit early when it is unset.
package testutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
)

// migrationsRunOnce ensures migrations are only applied once per test run.
var migrationsRunOnce sync.Once

// IsIntegrationTestEnvironment reports whether the environment is configured
// for running integration tests against a real database.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// MustGetTestDatabaseURL returns the database URL for integration tests.
// It is intended for TestMain where no testing.T is available and panics
// if DATABASE_URL is not set.
func MustGetTestDatabaseURL() string {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		panic("DATABASE_URL environment variable is required for integration tests")
	}
	return dbURL
}

// OpenTestDB opens and pings a database connection for integration tests.
// Callers are responsible for closing it, typically in TestMain.
func OpenTestDB(dbURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping test database: %w", err)
	}

	return db, nil
}

// SetupTestDatabaseSchema resets the database to baseline and applies all
// migrations so tests run against the canonical schema. It uses sync.Once
// so repeated calls within one test run are cheap.
func SetupTestDatabaseSchema(db *sql.DB) error {
	var setupErr error
	migrationsRunOnce.Do(func() {
		if err := goose.SetDialect("postgres"); err != nil {
			setupErr = fmt.Errorf("failed to set goose dialect: %w", err)
			return
		}

		goose.SetLogger(&quietGooseLogger{})

		migrationsDir, err := findMigrationsDir()
		if err != nil {
			setupErr = err
			return
		}

		if err := goose.DownTo(db, migrationsDir, 0); err != nil {
			setupErr = fmt.Errorf("failed to reset database schema: %w", err)
			return
		}

		if err := goose.Up(db, migrationsDir); err != nil {
			setupErr = fmt.Errorf("failed to apply migrations: %w", err)
			return
		}
	})

	return setupErr
}

// WithTx runs the test function inside a transaction that is rolled back
// when the function returns, isolating the test's writes from the rest of
// the suite.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("Failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// findMigrationsDir walks up from the working directory until it finds the
// project's migrations directory. Tests run with their package directory as
// cwd, so the walk terminates at the module root.
func findMigrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "internal", "platform", "postgres", "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory not found above %s", dir)
		}
		dir = parent
	}
}

// quietGooseLogger suppresses goose's default output during tests.
type quietGooseLogger struct{}

func (*quietGooseLogger) Fatalf(format string, v ...interface{}) {
	fmt.Printf("goose fatal: "+format+"\n", v...)
	os.Exit(1)
}

func (*quietGooseLogger) Printf(format string, v ...interface{}) {}
