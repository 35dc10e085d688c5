package sessions

import (
	"errors"
	"net/http"
)

// Domain errors for session operations. Messages are returned to API clients.
var (
	ErrNotFound       = errors.New("Session not found")
	ErrInvalidSession = errors.New("Session expired or invalid")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidSession) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
