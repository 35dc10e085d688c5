// Package auth exposes account registration, login and session management
// over JSON.
package auth

import (
	"net"
	"net/http"
	"strings"
)

// RegisteredMessage is the body of a successful registration.
const RegisteredMessage = "User registered successfully"

// LoginRequest is the body of POST /auth/login. DeviceName falls back to the
// User-Agent header.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	DeviceName string `json:"device_name,omitempty"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ClientIP returns the first X-Forwarded-For entry, then X-Real-IP, then the
// host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// DeviceName returns requested when set, else the User-Agent, else "unknown".
func DeviceName(r *http.Request, requested string) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}
	if ua := strings.TrimSpace(r.UserAgent()); ua != "" {
		return ua
	}
	return "unknown"
}
