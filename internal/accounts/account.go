// Package accounts provides the domain system for registering accounts and
// verifying their credentials.
package accounts

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field limits for registration.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 128
	MinPasswordLength = 8
	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)

// Account is a registered user. The password hash never leaves the package
// in serialized form.
type Account struct {
	ID                 uuid.UUID  `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	Password           []byte     `json:"-"`
	DateOfRegistration time.Time  `json:"date_of_registration"`
	TimeOfLastOnline   *time.Time `json:"time_of_last_online,omitempty"`
}

// RegisterCommand contains the data required to register an account.
type RegisterCommand struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims the username and trims and lower-cases the email.
func (c RegisterCommand) Normalize() RegisterCommand {
	c.Username = strings.TrimSpace(c.Username)
	c.Email = NormalizeEmail(c.Email)
	return c
}

// Validate reports the first field that violates the registration rules.
func (c RegisterCommand) Validate() error {
	n := utf8.RuneCountInString(c.Username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d to %d characters", ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}
	if !isBareAddress(c.Email) {
		return fmt.Errorf("%w: email is not a valid address", ErrInvalidInput)
	}
	if utf8.RuneCountInString(c.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	if len(c.Password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, MaxPasswordBytes)
	}
	return nil
}

// isBareAddress accepts a plain addr-spec only. Display names, angle
// brackets and comments are rejected so the stored value is the address.
func isBareAddress(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == email && strings.Contains(email, "@")
}

// NormalizeEmail is the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
