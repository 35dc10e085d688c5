// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// InternalMessage replaces the message of every 5xx error response.
const InternalMessage = "Internal server error"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes an ErrorBody. Client errors carry
// err's text; server errors carry InternalMessage.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	message := InternalMessage
	if status < http.StatusInternalServerError {
		message = err.Error()
	}
	RespondMessage(w, logger, status, err, message)
}

// RespondMessage logs err and writes an ErrorBody with an explicit message.
func RespondMessage(w http.ResponseWriter, logger *slog.Logger, status int, err error, message string) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Warn("handler error", "error", err, "status", status)
	}
	RespondJSON(w, status, ErrorBody{Code: status, Message: message})
}

// DecodeJSON decodes the request body into T. Bodies that exceed a
// http.MaxBytesReader limit are reported with *http.MaxBytesError intact.
func DecodeJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body required")
	}
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, errors.New("request body required")
		}
		return v, fmt.Errorf("invalid request body: %w", err)
	}
	return v, nil
}

// DecodeStatus maps a DecodeJSON error to its response status.
func DecodeStatus(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
