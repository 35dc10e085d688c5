package accounts

import (
	"context"

	"github.com/google/uuid"
)

// System defines the interface for account registration and lookup.
type System interface {
	Register(ctx context.Context, cmd RegisterCommand) (*Account, error)
	Authenticate(ctx context.Context, email, password string) (*Account, error)
	Find(ctx context.Context, id uuid.UUID) (*Account, error)
}
