// Package sessions issues and validates signed session tokens. Each login
// creates a session row whose id is the subject of an HS256 JWT.
package sessions

import (
	"time"

	"github.com/google/uuid"
)

// Session is a login on one device.
type Session struct {
	ID         uuid.UUID `json:"id"`
	AccountID  uuid.UUID `json:"account_id"`
	DeviceName string    `json:"device_name"`
	IP         string    `json:"ip"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	Token      string    `json:"-"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// CreateCommand contains the data required to open a session.
type CreateCommand struct {
	AccountID  uuid.UUID
	DeviceName string
	IP         string
}

// Config contains token signing and lifetime settings.
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}
