package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// schemaVersion is the newest file in migrations/. Version 1 creates the
// entries table with its kind, amount and category CHECKs and the
// created_at index that month filtering relies on.
const schemaVersion uint = 1

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations creates or upgrades the entries schema at dsn and reports the
// version it ended on. Existing rows are never touched. A schema left dirty by
// an interrupted upgrade is reported as an error.
func RunMigrations(dsn string) (uint, error) {
	// migrate closes the database it was given, so it gets its own handle.
	migrateDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return 0, fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return 0, fmt.Errorf("create sqlite driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("load entries migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return 0, fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migrate entries schema: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("entries schema version %d is dirty", version)
	}
	return version, nil
}
