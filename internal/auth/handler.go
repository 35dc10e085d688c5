package auth

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/lox/internal/accounts"
	"github.com/JaimeStill/lox/internal/sessions"
	"github.com/JaimeStill/lox/pkg/handlers"
	"github.com/JaimeStill/lox/pkg/pagination"
	"github.com/JaimeStill/lox/pkg/routes"
)

// Handler provides HTTP handlers for account registration, login and sessions.
type Handler struct {
	accounts   accounts.System
	sessions   sessions.System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a new auth handler. pagination bounds the session list.
func NewHandler(acc accounts.System, sess sessions.System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		accounts:   acc,
		sessions:   sess,
		logger:     logger.With("handler", "auth"),
		pagination: pagination,
	}
}

// Routes returns the route group configuration for auth endpoints.
// Every route except register and login requires a bearer session token.
func (h *Handler) Routes() routes.Group {
	require := func(fn http.HandlerFunc) http.HandlerFunc {
		return sessions.Require(h.sessions, h.logger, fn)
	}

	return routes.Group{
		Prefix:      "/auth",
		Tags:        []string{"Auth"},
		Description: "Account registration, login and sessions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/register", Handler: h.Register, OpenAPI: Spec.Register},
			{Method: "POST", Pattern: "/login", Handler: h.Login, OpenAPI: Spec.Login},
			{Method: "POST", Pattern: "/logout", Handler: require(h.Logout), OpenAPI: Spec.Logout},
			{Method: "GET", Pattern: "/me", Handler: require(h.Me), OpenAPI: Spec.Me},
			{Method: "GET", Pattern: "/sessions", Handler: require(h.Sessions), OpenAPI: Spec.Sessions},
			{Method: "DELETE", Pattern: "/sessions/{id}", Handler: require(h.RevokeSession), OpenAPI: Spec.RevokeSession},
		},
	}
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[accounts.RegisterCommand](r)
	if err != nil {
		handlers.RespondError(w, h.logger, handlers.DecodeStatus(err), err)
		return
	}

	if _, err := h.accounts.Register(r.Context(), cmd); err != nil {
		handlers.RespondError(w, h.logger, accounts.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, RegisteredMessage)
}

// Login handles POST /api/auth/login. Every failure is answered with 401 so
// callers cannot tell which step rejected them.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[LoginRequest](r)
	if err != nil {
		h.loginFailed(w, err)
		return
	}

	account, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.loginFailed(w, err)
		return
	}

	session, err := h.sessions.Create(r.Context(), sessions.CreateCommand{
		AccountID:  account.ID,
		DeviceName: DeviceName(r, req.DeviceName),
		IP:         ClientIP(r),
	})
	if err != nil {
		h.loginFailed(w, fmt.Errorf("create session for %s: %w", account.ID, err))
		return
	}

	handlers.RespondJSON(w, http.StatusOK, LoginResponse{Token: session.Token})
}

func (h *Handler) loginFailed(w http.ResponseWriter, err error) {
	handlers.RespondMessage(w, h.logger, http.StatusUnauthorized, err, accounts.ErrInvalidCredentials.Error())
}

// Logout handles POST /api/auth/logout by revoking the calling session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := sessions.FromContext(r.Context())

	if err := h.sessions.Revoke(r.Context(), session.ID); err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me and returns the account of the calling session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session, _ := sessions.FromContext(r.Context())

	account, err := h.accounts.Find(r.Context(), session.AccountID)
	if err != nil {
		handlers.RespondError(w, h.logger, accounts.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, account)
}

// Sessions handles GET /api/auth/sessions with page and page_size query parameters.
func (h *Handler) Sessions(w http.ResponseWriter, r *http.Request) {
	session, _ := sessions.FromContext(r.Context())
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sessions.ListByAccount(r.Context(), session.AccountID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// RevokeSession ends a session of the caller's account. Sessions owned by
// other accounts are reported as not found.
func (h *Handler) RevokeSession(w http.ResponseWriter, r *http.Request) {
	current, _ := sessions.FromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid session id: %w", err))
		return
	}

	target, err := h.sessions.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}
	if target.AccountID != current.AccountID {
		handlers.RespondError(w, h.logger, http.StatusNotFound, sessions.ErrNotFound)
		return
	}

	if err := h.sessions.Revoke(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, sessions.MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
