package sessions

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/lox/pkg/pagination"
	"github.com/JaimeStill/lox/pkg/repository"
)

const columns = "id, account_id, device_name, ip, created_at, expires_at, token"

type repo struct {
	db     *sql.DB
	logger *slog.Logger
	signer *Signer
	ttl    time.Duration
	now    func() time.Time
}

// New creates a sessions repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, cfg Config) System {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &repo{
		db:     db,
		logger: logger.With("system", "sessions"),
		signer: NewSigner(cfg.Secret, cfg.Issuer, now),
		ttl:    cfg.TTL,
		now:    now,
	}
}

func scanSession(s repository.Scanner) (Session, error) {
	var sess Session
	err := s.Scan(
		&sess.ID, &sess.AccountID, &sess.DeviceName, &sess.IP,
		&sess.CreatedAt, &sess.ExpiresAt, &sess.Token,
	)
	return sess, err
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	createdAt := r.now().UTC()
	expiresAt := createdAt.Add(r.ttl)

	token, err := r.signer.Sign(id, createdAt, expiresAt)
	if err != nil {
		return nil, err
	}

	q := `
		INSERT INTO sessions (id, account_id, device_name, ip, created_at, expires_at, token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + columns

	args := []any{id, cmd.AccountID, cmd.DeviceName, cmd.IP, createdAt, expiresAt, token}
	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		return repository.QueryOne(ctx, tx, q, args, scanSession)
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	r.logger.Info("session created", "id", s.ID, "account_id", s.AccountID, "device", s.DeviceName)
	return &s, nil
}

func (r *repo) Validate(ctx context.Context, token string) (*Session, error) {
	id, err := r.signer.Parse(token)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + columns + ` FROM sessions WHERE id = $1`
	s, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanSession)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %s revoked", ErrInvalidSession, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}

	if err := check(&s, token, r.now()); err != nil {
		return nil, err
	}
	return &s, nil
}

// check verifies that a stored session still backs token at now.
func check(s *Session, token string, now time.Time) error {
	if subtle.ConstantTimeCompare([]byte(s.Token), []byte(token)) != 1 {
		return fmt.Errorf("%w: token mismatch", ErrInvalidSession)
	}
	if s.Expired(now) {
		return fmt.Errorf("%w: expired at %s", ErrInvalidSession, s.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Session, error) {
	q := `SELECT ` + columns + ` FROM sessions WHERE id = $1`
	s, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanSession)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &s, nil
}

func (r *repo) ListByAccount(ctx context.Context, accountID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[Session], error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE account_id = $1`, accountID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	q := `SELECT ` + columns + ` FROM sessions WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	sessions, err := repository.QueryMany(ctx, r.db, q, []any{accountID, page.PageSize, page.Offset()}, scanSession)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	result := pagination.NewPageResult(sessions, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Revoke(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		err := repository.ExecExpectOne(ctx, tx, "DELETE FROM sessions WHERE id = $1", id)
		return struct{}{}, err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("session revoked", "id", id)
	return nil
}

func (r *repo) PurgeExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= $1", r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return result.RowsAffected()
}
