// Package migrate applies embedded SQL migrations with golang-migrate.
// Migrations are read from an fs.FS through the iofs source and applied over a
// dedicated pgx/v5 connection, so the application pool is never closed by
// the migrator.
package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Up applies all pending migrations found in dir of fsys.
// databaseURL may use the postgres:// or postgresql:// scheme.
func Up(fsys fs.FS, dir, databaseURL string, logger *slog.Logger) error {
	m, err := newMigrator(fsys, dir, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}

	logger.Info("migrations applied", "version", version, "dirty", dirty)
	return nil
}

// Down rolls back every applied migration.
func Down(fsys fs.FS, dir, databaseURL string, logger *slog.Logger) error {
	m, err := newMigrator(fsys, dir, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback migrations: %w", err)
	}

	logger.Info("migrations rolled back")
	return nil
}

func newMigrator(fsys fs.FS, dir, databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, DriverURL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// DriverURL rewrites a postgres URL to the scheme registered by the
// migrate pgx/v5 driver.
func DriverURL(databaseURL string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(databaseURL, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return databaseURL
}
