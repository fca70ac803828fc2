// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

func (d Dialect) migrationsDir() string {
	return "migrations/" + string(d)
}

func (d Dialect) gooseDialect() string {
	if d == SQLite {
		return "sqlite3"
	}
	return "postgres"
}

func withGoose(d Dialect, fn func(dir string) error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(d.gooseDialect()); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return fn(d.migrationsDir())
}

// Migrate applies all pending migrations. Safe to call on every start.
func Migrate(conn *sql.DB, d Dialect) error {
	return withGoose(d, func(dir string) error {
		if err := goose.Up(conn, dir); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(conn *sql.DB, d Dialect) error {
	return withGoose(d, func(dir string) error {
		if err := goose.Down(conn, dir); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		return nil
	})
}

// MigrationStatus prints the state of every migration through goose's logger.
func MigrationStatus(conn *sql.DB, d Dialect) error {
	return withGoose(d, func(dir string) error {
		return goose.Status(conn, dir)
	})
}

// Version returns the current schema version.
func Version(conn *sql.DB, d Dialect) (int64, error) {
	var version int64
	err := withGoose(d, func(string) error {
		v, err := goose.GetDBVersion(conn)
		version = v
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}

// SetQuiet silences goose's per-migration output.
func SetQuiet() {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetLogger(goose.NopLogger())
}
