// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, schema) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/lox/internal/config"
	"github.com/JaimeStill/lox/internal/migrations"
	"github.com/JaimeStill/lox/pkg/database"
	"github.com/JaimeStill/lox/pkg/lifecycle"
	"github.com/JaimeStill/lox/pkg/logging"
	"github.com/JaimeStill/lox/pkg/migrate"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System

	databaseURL string
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle:   lc,
		Logger:      logger,
		Database:    db,
		databaseURL: cfg.Database.URL(),
	}, nil
}

// Start connects the database and brings the schema up to date.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := migrate.Up(migrations.FS, migrations.Dir, i.databaseURL, i.Logger.With("system", "migrations")); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}
