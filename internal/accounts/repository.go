package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/lox/pkg/repository"
)

const columns = "id, username, email, password, date_of_registration, time_of_last_online"

// Constraint names from the accounts migration.
const (
	constraintUsername = "accounts_username_key"
	constraintEmail    = "accounts_email_key"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
	cost   int
	// dummy is compared against when the email is unknown so both failure
	// paths spend the same bcrypt work.
	dummy []byte
}

// New creates an accounts repository implementing the System interface.
// cost is the bcrypt work factor for new password hashes.
func New(db *sql.DB, logger *slog.Logger, cost int) (System, error) {
	dummy, err := HashPassword("lox-dummy-password", cost)
	if err != nil {
		return nil, err
	}
	return &repo{
		db:     db,
		logger: logger.With("system", "accounts"),
		cost:   cost,
		dummy:  dummy,
	}, nil
}

func scanAccount(s repository.Scanner) (Account, error) {
	var a Account
	var lastOnline sql.NullTime
	err := s.Scan(&a.ID, &a.Username, &a.Email, &a.Password, &a.DateOfRegistration, &lastOnline)
	if lastOnline.Valid {
		a.TimeOfLastOnline = &lastOnline.Time
	}
	return a, err
}

func (r *repo) Register(ctx context.Context, cmd RegisterCommand) (*Account, error) {
	cmd = cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(cmd.Password, r.cost)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate account id: %w", err)
	}

	q := `
		INSERT INTO accounts (id, username, email, password, date_of_registration)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING ` + columns

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Account, error) {
		return repository.QueryOne(ctx, tx, q, []any{id, cmd.Username, cmd.Email, hash}, scanAccount)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, duplicateError(err))
	}

	r.logger.Info("account registered", "id", a.ID, "username", a.Username)
	return &a, nil
}

func (r *repo) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	q := `SELECT ` + columns + ` FROM accounts WHERE email = $1`

	a, err := repository.QueryOne(ctx, r.db, q, []any{NormalizeEmail(email)}, scanAccount)
	if errors.Is(err, sql.ErrNoRows) {
		CheckPassword(r.dummy, password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	if !CheckPassword(a.Password, password) {
		r.logger.Warn("failed login", "id", a.ID)
		return nil, ErrInvalidCredentials
	}

	update := `UPDATE accounts SET time_of_last_online = NOW() WHERE id = $1 RETURNING ` + columns
	a, err = repository.QueryOne(ctx, r.db, update, []any{a.ID}, scanAccount)
	if err != nil {
		return nil, repository.MapError(err, ErrInvalidCredentials, ErrInvalidCredentials)
	}

	return &a, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Account, error) {
	q := `SELECT ` + columns + ` FROM accounts WHERE id = $1`

	a, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanAccount)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &a, nil
}

// duplicateError picks the taken field from the violated constraint.
func duplicateError(err error) error {
	switch repository.ConstraintName(err) {
	case constraintUsername:
		return ErrUsernameTaken
	case constraintEmail:
		return ErrEmailTaken
	default:
		return ErrUsernameTaken
	}
}
