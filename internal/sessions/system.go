package sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/lox/pkg/pagination"
)

// System defines the interface for session lifecycle operations.
type System interface {
	Create(ctx context.Context, cmd CreateCommand) (*Session, error)
	Validate(ctx context.Context, token string) (*Session, error)
	Find(ctx context.Context, id uuid.UUID) (*Session, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[Session], error)
	Revoke(ctx context.Context, id uuid.UUID) error
	PurgeExpired(ctx context.Context) (int64, error)
}
