// Package main provides the seed command. It optionally prepares the schema
// and then runs the selected seeders in a single transaction.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	pkgmigrate "github.com/JaimeStill/lox/pkg/migrate"
)

// Seeder populates one table from seed data.
type Seeder interface {
	Name() string
	Description() string

	// Seed inserts within tx and reports how many rows were added.
	// Rows that already exist are skipped, not counted.
	Seed(ctx context.Context, tx *sql.Tx) (int64, error)
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the registry. Seeders self-register via init().
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

// Schema selects the migration step run before seeding.
type Schema int

const (
	SchemaKeep Schema = iota
	SchemaMigrate
	SchemaReset
)

// Plan is one invocation of the seed command.
type Plan struct {
	Schema Schema
	All    bool
	Names  []string
}

// selectSeeders resolves the plan to seeders, all of them when All is set.
func (p Plan) selectSeeders() ([]Seeder, error) {
	if p.All {
		return listSeeders(), nil
	}

	result := make([]Seeder, 0, len(p.Names))
	for _, name := range p.Names {
		s, ok := getSeeder(name)
		if !ok {
			return nil, fmt.Errorf("seeder not found: %s", name)
		}
		result = append(result, s)
	}
	return result, nil
}

// Runner executes plans against one database.
type Runner struct {
	db        *sql.DB
	dsn       string
	migration fs.FS
	dir       string
	logger    *slog.Logger
}

// prepareSchema applies the plan's migration step.
func (r *Runner) prepareSchema(schema Schema) error {
	switch schema {
	case SchemaReset:
		if err := pkgmigrate.Down(r.migration, r.dir, r.dsn, r.logger); err != nil {
			return fmt.Errorf("rollback: %w", err)
		}
		fallthrough
	case SchemaMigrate:
		if err := pkgmigrate.Up(r.migration, r.dir, r.dsn, r.logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Run prepares the schema and then runs the selected seeders in a single
// transaction. Any failure rolls back every seeder of the plan.
func (r *Runner) Run(ctx context.Context, plan Plan) error {
	selected, err := plan.selectSeeders()
	if err != nil {
		return err
	}

	if err := r.prepareSchema(plan.Schema); err != nil {
		return err
	}

	if len(selected) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, s := range selected {
		n, err := s.Seed(ctx, tx)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		r.logger.Info("seeded", "seeder", s.Name(), "inserted", n)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
