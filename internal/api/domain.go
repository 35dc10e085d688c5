package api

import (
	"github.com/JaimeStill/lox/internal/accounts"
	"github.com/JaimeStill/lox/internal/sessions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Accounts accounts.System
	Sessions sessions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	accountsSys, err := accounts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Auth.BcryptCost,
	)
	if err != nil {
		return nil, err
	}

	sessionsSys := sessions.New(
		runtime.Database.Connection(),
		runtime.Logger,
		sessions.Config{
			Secret: []byte(runtime.Auth.JWTSecret),
			Issuer: runtime.Auth.Issuer,
			TTL:    runtime.Auth.SessionTTLDuration(),
		},
	)

	return &Domain{
		Accounts: accountsSys,
		Sessions: sessionsSys,
	}, nil
}

// Start launches background work owned by the domain.
func (d *Domain) Start(runtime *Runtime) error {
	purger := sessions.NewPurger(d.Sessions, runtime.Auth.PurgeIntervalDuration(), runtime.Logger)
	return purger.Start(runtime.Lifecycle)
}
