package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/lox/internal/accounts"
)

//go:embed seeds/*.json
var seedFiles embed.FS

func init() {
	registerSeeder(&AccountSeeder{cost: bcrypt.DefaultCost})
}

// AccountSeedData represents the JSON structure for account seed files.
type AccountSeedData struct {
	Accounts []accounts.RegisterCommand `json:"accounts"`
}

// AccountSeeder implements Seeder for demo accounts.
// It loads seed data from an embedded file or an external file path.
type AccountSeeder struct {
	file string
	cost int
}

// Name returns "accounts" as the seeder identifier.
func (s *AccountSeeder) Name() string {
	return "accounts"
}

// Description returns a human-readable description of this seeder.
func (s *AccountSeeder) Description() string {
	return "Seeds demo accounts with bcrypt-hashed passwords"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *AccountSeeder) SetFile(path string) {
	s.file = path
}

// Seed validates each account and inserts the ones whose username and email
// are still free. Existing accounts are left untouched.
func (s *AccountSeeder) Seed(ctx context.Context, tx *sql.Tx) (int64, error) {
	data, err := s.loadSeedData()
	if err != nil {
		return 0, err
	}

	var inserted int64
	for _, cmd := range data.Accounts {
		n, err := s.saveAccount(ctx, tx, cmd)
		if err != nil {
			return inserted, fmt.Errorf("save account %s: %w", cmd.Username, err)
		}
		inserted += n
	}

	return inserted, nil
}

func (s *AccountSeeder) loadSeedData() (*AccountSeedData, error) {
	var content []byte
	var err error

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/accounts.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	return parseAccountSeed(content)
}

func parseAccountSeed(content []byte) (*AccountSeedData, error) {
	var data AccountSeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	for i, cmd := range data.Accounts {
		cmd = cmd.Normalize()
		if err := cmd.Validate(); err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}
		data.Accounts[i] = cmd
	}

	return &data, nil
}

func (s *AccountSeeder) saveAccount(ctx context.Context, tx *sql.Tx, cmd accounts.RegisterCommand) (int64, error) {
	const query = `
		INSERT INTO accounts (id, username, email, password, date_of_registration)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT DO NOTHING`

	hash, err := accounts.HashPassword(cmd.Password, s.cost)
	if err != nil {
		return 0, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx, query, id, cmd.Username, cmd.Email, hash)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
