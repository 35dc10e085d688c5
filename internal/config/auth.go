package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	// EnvAuthJWTSecret overrides the session token signing secret.
	EnvAuthJWTSecret = "AUTH_JWT_SECRET"

	// EnvAuthIssuer overrides the session token issuer.
	EnvAuthIssuer = "AUTH_ISSUER"

	// EnvAuthSessionTTL overrides the session lifetime.
	EnvAuthSessionTTL = "AUTH_SESSION_TTL"

	// EnvAuthBcryptCost overrides the password hashing cost.
	EnvAuthBcryptCost = "AUTH_BCRYPT_COST"

	// EnvAuthPurgeInterval overrides how often expired sessions are deleted.
	EnvAuthPurgeInterval = "AUTH_PURGE_INTERVAL"
)

// MinSecretLength is the shortest accepted HS256 signing secret.
const MinSecretLength = 32

// AuthConfig contains account and session settings.
type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	Issuer        string `toml:"issuer"`
	SessionTTL    string `toml:"session_ttl"`
	BcryptCost    int    `toml:"bcrypt_cost"`
	PurgeInterval string `toml:"purge_interval"`
}

// SessionTTLDuration parses the session lifetime.
func (c *AuthConfig) SessionTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.SessionTTL)
	return d
}

// PurgeIntervalDuration parses the purge interval.
func (c *AuthConfig) PurgeIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.PurgeInterval)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the auth configuration.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.JWTSecret != "" {
		c.JWTSecret = overlay.JWTSecret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.SessionTTL != "" {
		c.SessionTTL = overlay.SessionTTL
	}
	if overlay.BcryptCost != 0 {
		c.BcryptCost = overlay.BcryptCost
	}
	if overlay.PurgeInterval != "" {
		c.PurgeInterval = overlay.PurgeInterval
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.Issuer == "" {
		c.Issuer = "lox"
	}
	if c.SessionTTL == "" {
		c.SessionTTL = "8760h"
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
	if c.PurgeInterval == "" {
		c.PurgeInterval = "1h"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthJWTSecret); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv(EnvAuthIssuer); v != "" {
		c.Issuer = v
	}
	if v := os.Getenv(EnvAuthSessionTTL); v != "" {
		c.SessionTTL = v
	}
	if v := os.Getenv(EnvAuthBcryptCost); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BcryptCost = n
		}
	}
	if v := os.Getenv(EnvAuthPurgeInterval); v != "" {
		c.PurgeInterval = v
	}
}

func (c *AuthConfig) validate() error {
	if len(c.JWTSecret) < MinSecretLength {
		return fmt.Errorf("jwt_secret must be at least %d bytes", MinSecretLength)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	ttl, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return fmt.Errorf("invalid session_ttl: %w", err)
	}
	if ttl <= 0 {
		return errors.New("session_ttl must be positive")
	}
	purge, err := time.ParseDuration(c.PurgeInterval)
	if err != nil {
		return fmt.Errorf("invalid purge_interval: %w", err)
	}
	if purge <= 0 {
		return errors.New("purge_interval must be positive")
	}
	return nil
}
