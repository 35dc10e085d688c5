package accounts

import (
	"errors"
	"net/http"
)

// Domain errors for account operations. Messages are returned to API clients.
var (
	ErrNotFound           = errors.New("Account not found")
	ErrUsernameTaken      = errors.New("Username is already in use")
	ErrEmailTaken         = errors.New("Email is already in use")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidInput       = errors.New("Invalid input")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
