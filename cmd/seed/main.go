package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/lox/internal/migrations"
	"github.com/JaimeStill/lox/pkg/logging"
)

const EnvDatabaseDSN = "DATABASE_DSN"

func main() {
	var (
		dsn      = flag.String("dsn", "", "Database connection string (URL form when migrating)")
		all      = flag.Bool("all", false, "Run all seeders")
		accounts = flag.Bool("accounts", false, "Seed demo accounts")
		migrate  = flag.Bool("migrate", false, "Apply migrations before seeding")
		reset    = flag.Bool("reset", false, "Roll back all migrations and re-apply them (drops all data)")
		file     = flag.String("file", "", "External seed file (overrides embedded)")
		list     = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	plan := Plan{All: *all}
	if *accounts {
		plan.Names = append(plan.Names, "accounts")
	}
	switch {
	case *reset:
		plan.Schema = SchemaReset
	case *migrate:
		plan.Schema = SchemaMigrate
	}

	if !plan.All && len(plan.Names) == 0 && plan.Schema == SchemaKeep {
		fmt.Println("usage: seed -dsn <connection-string> [-migrate|-reset] [-all|-accounts] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	if *file != "" {
		if seeder, ok := getSeeder("accounts"); ok {
			seeder.(*AccountSeeder).SetFile(*file)
		}
	}

	if *dsn == "" {
		*dsn = os.Getenv(EnvDatabaseDSN)
	}
	if *dsn == "" {
		log.Fatalf("database connection string required: use -dsn flag or %s env var", EnvDatabaseDSN)
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	runner := &Runner{
		db:        db,
		dsn:       *dsn,
		migration: migrations.FS,
		dir:       migrations.Dir,
		logger:    logging.NewWithWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatText}, os.Stderr),
	}

	if err := runner.Run(context.Background(), plan); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Println("seed completed successfully")
}
