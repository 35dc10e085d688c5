package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/JaimeStill/lox/internal/accounts"
	"github.com/JaimeStill/lox/internal/auth"
	"github.com/JaimeStill/lox/internal/sessions"
	"github.com/JaimeStill/lox/pkg/handlers"
	"github.com/JaimeStill/lox/pkg/pagination"
	"github.com/JaimeStill/lox/pkg/routes"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var pageConfig = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

type fakeAccounts struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*accounts.Account
	secrets  map[uuid.UUID]string
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		accounts: map[uuid.UUID]*accounts.Account{},
		secrets:  map[uuid.UUID]string{},
	}
}

func (f *fakeAccounts) Register(ctx context.Context, cmd accounts.RegisterCommand) (*accounts.Account, error) {
	cmd = cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.Username == cmd.Username {
			return nil, accounts.ErrUsernameTaken
		}
		if a.Email == cmd.Email {
			return nil, accounts.ErrEmailTaken
		}
	}

	a := &accounts.Account{
		ID:                 uuid.Must(uuid.NewV7()),
		Username:           cmd.Username,
		Email:              cmd.Email,
		DateOfRegistration: time.Now(),
	}
	f.accounts[a.ID] = a
	f.secrets[a.ID] = cmd.Password
	return a, nil
}

func (f *fakeAccounts) Authenticate(ctx context.Context, email, password string) (*accounts.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, a := range f.accounts {
		if a.Email == accounts.NormalizeEmail(email) && f.secrets[id] == password {
			return a, nil
		}
	}
	return nil, accounts.ErrInvalidCredentials
}

func (f *fakeAccounts) Find(ctx context.Context, id uuid.UUID) (*accounts.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[id]; ok {
		return a, nil
	}
	return nil, accounts.ErrNotFound
}

type fakeSessions struct {
	mu        sync.Mutex
	sessions  []*sessions.Session
	createErr error
}

func (f *fakeSessions) Create(ctx context.Context, cmd sessions.CreateCommand) (*sessions.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &sessions.Session{
		ID:         uuid.Must(uuid.NewV7()),
		AccountID:  cmd.AccountID,
		DeviceName: cmd.DeviceName,
		IP:         cmd.IP,
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	s.Token = "token-" + s.ID.String()
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *fakeSessions) Validate(ctx context.Context, token string) (*sessions.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.Token == token {
			return s, nil
		}
	}
	return nil, sessions.ErrInvalidSession
}

func (f *fakeSessions) Find(ctx context.Context, id uuid.UUID) (*sessions.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, sessions.ErrNotFound
}

func (f *fakeSessions) ListByAccount(ctx context.Context, accountID uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[sessions.Session], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []sessions.Session
	for i := len(f.sessions) - 1; i >= 0; i-- {
		if f.sessions[i].AccountID == accountID {
			all = append(all, *f.sessions[i])
		}
	}

	start := min(page.Offset(), len(all))
	end := min(start+page.PageSize, len(all))
	result := pagination.NewPageResult(all[start:end], len(all), page.Page, page.PageSize)
	return &result, nil
}

func (f *fakeSessions) Revoke(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.sessions {
		if s.ID == id {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return sessions.ErrNotFound
}

func (f *fakeSessions) PurgeExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

type env struct {
	mux      *http.ServeMux
	accounts *fakeAccounts
	sessions *fakeSessions
}

func newEnv() *env {
	e := &env{accounts: newFakeAccounts(), sessions: &fakeSessions{}}
	e.mux = http.NewServeMux()
	routes.Register(e.mux, auth.NewHandler(e.accounts, e.sessions, discard, pageConfig).Routes())
	return e
}

func (e *env) do(method, path, body, token string, headers ...string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		r.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, r)
	return w
}

func (e *env) login(t *testing.T, email, password string) string {
	t.Helper()
	w := e.do("POST", "/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	var resp auth.LoginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.Token
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handlers.ErrorBody {
	t.Helper()
	var body handlers.ErrorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, w.Body.String())
	}
	return body
}

const loxUser = `{"username":"lox","email":"lox@example.com","password":"password1"}`

func TestRegister(t *testing.T) {
	e := newEnv()

	w := e.do("POST", "/auth/register", loxUser, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var msg string
	if err := json.NewDecoder(w.Body).Decode(&msg); err != nil || msg != auth.RegisteredMessage {
		t.Errorf("body = %q (%v), want %q", msg, err, auth.RegisteredMessage)
	}

	tests := []struct {
		name string
		body string
		want handlers.ErrorBody
	}{
		{
			name: "duplicate username",
			body: `{"username":"lox","email":"other@example.com","password":"password1"}`,
			want: handlers.ErrorBody{Code: 409, Message: "Username is already in use"},
		},
		{
			name: "duplicate email",
			body: `{"username":"other","email":"LOX@example.com","password":"password1"}`,
			want: handlers.ErrorBody{Code: 409, Message: "Email is already in use"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do("POST", "/auth/register", tt.body, "")
			if diff := cmp.Diff(tt.want, decodeError(t, w)); diff != "" {
				t.Errorf("error body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegister_BadRequest(t *testing.T) {
	e := newEnv()

	for _, body := range []string{"", "{", `{"username":"lo","email":"lox@example.com","password":"password1"}`} {
		w := e.do("POST", "/auth/register", body, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
		if got := decodeError(t, w); got.Code != http.StatusBadRequest || got.Message == "" {
			t.Errorf("body %q: error = %+v", body, got)
		}
	}
}

func TestLogin(t *testing.T) {
	e := newEnv()
	e.do("POST", "/auth/register", loxUser, "")

	w := e.do("POST", "/auth/login", `{"email":"lox@example.com","password":"password1"}`, "",
		"User-Agent", "lox-test/1.0", "X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp auth.LoginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Token == "" {
		t.Fatalf("token missing: %v", err)
	}

	s := e.sessions.sessions[0]
	if s.DeviceName != "lox-test/1.0" || s.IP != "203.0.113.9" {
		t.Errorf("session device/ip = %q/%q", s.DeviceName, s.IP)
	}
}

func TestLogin_Failures(t *testing.T) {
	e := newEnv()
	e.do("POST", "/auth/register", loxUser, "")

	want := handlers.ErrorBody{Code: 401, Message: "Invalid email or password"}

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"lox@example.com","password":"nope-nope"}`},
		{"unknown email", `{"email":"ghost@example.com","password":"password1"}`},
		{"malformed body", `{"email":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do("POST", "/auth/login", tt.body, "")
			if diff := cmp.Diff(want, decodeError(t, w)); diff != "" {
				t.Errorf("error body mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("session store failure", func(t *testing.T) {
		e.sessions.createErr = errors.New("db down")
		defer func() { e.sessions.createErr = nil }()

		w := e.do("POST", "/auth/login", `{"email":"lox@example.com","password":"password1"}`, "")
		if diff := cmp.Diff(want, decodeError(t, w)); diff != "" {
			t.Errorf("error body mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestMeAndSessions(t *testing.T) {
	e := newEnv()
	e.do("POST", "/auth/register", loxUser, "")
	first := e.login(t, "lox@example.com", "password1")
	second := e.login(t, "lox@example.com", "password1")

	w := e.do("GET", "/auth/me", "", second)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}
	var me map[string]any
	json.NewDecoder(w.Body).Decode(&me)
	if me["username"] != "lox" {
		t.Errorf("me = %v", me)
	}
	if _, ok := me["password"]; ok {
		t.Error("password serialized")
	}

	w = e.do("GET", "/auth/sessions", "", second)
	if w.Code != http.StatusOK {
		t.Fatalf("sessions status = %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, first) || strings.Contains(body, second) || strings.Contains(body, "token") {
		t.Errorf("session list leaks tokens: %s", body)
	}
	var page pagination.PageResult[sessions.Session]
	json.Unmarshal([]byte(body), &page)
	if page.Total != 2 || len(page.Data) != 2 {
		t.Fatalf("sessions page = %+v, want 2 entries", page)
	}

	w = e.do("DELETE", "/auth/sessions/"+page.Data[1].ID.String(), "", second)
	if w.Code != http.StatusNoContent {
		t.Fatalf("revoke status = %d", w.Code)
	}
	if w := e.do("GET", "/auth/me", "", first); w.Code != http.StatusUnauthorized {
		t.Errorf("revoked session status = %d, want 401", w.Code)
	}
}

func TestSessions_Paginated(t *testing.T) {
	e := newEnv()
	e.do("POST", "/auth/register", loxUser, "")
	var token string
	for range 3 {
		token = e.login(t, "lox@example.com", "password1")
	}

	w := e.do("GET", "/auth/sessions?page=2&page_size=2", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var page pagination.PageResult[sessions.Session]
	if err := json.NewDecoder(w.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := struct{ Total, Page, PageSize, TotalPages, Len int }{3, 2, 2, 2, 1}
	got := struct{ Total, Page, PageSize, TotalPages, Len int }{page.Total, page.Page, page.PageSize, page.TotalPages, len(page.Data)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestRevokeSession_OtherAccount(t *testing.T) {
	e := newEnv()
	e.do("POST", "/auth/register", loxUser, "")
	e.do("POST", "/auth/register", `{"username":"mallory","email":"m@example.com","password":"password1"}`, "")

	victim := e.login(t, "lox@example.com", "password1")
	attacker := e.login(t, "m@example.com", "password1")

	victimSession, _ := e.sessions.Validate(context.Background(), victim)

	w := e.do("DELETE", "/auth/sessions/"+victimSession.ID.String(), "", attacker)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if w := e.do("DELETE", "/auth/sessions/not-a-uuid", "", attacker); w.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", w.Code)
	}
	if w := e.do("DELETE", "/auth/sessions/"+uuid.NewString(), "", attacker); w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}
	if w := e.do("GET", "/auth/me", "", victim); w.Code != http.StatusOK {
		t.Errorf("victim session revoked: status = %d", w.Code)
	}
}

func TestLogout(t *testing.T) {
	e := newEnv()
	e.do("POST", "/auth/register", loxUser, "")
	token := e.login(t, "lox@example.com", "password1")

	if w := e.do("POST", "/auth/logout", "", token); w.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", w.Code)
	}

	w := e.do("GET", "/auth/me", "", token)
	want := handlers.ErrorBody{Code: 401, Message: "Session expired or invalid"}
	if diff := cmp.Diff(want, decodeError(t, w)); diff != "" {
		t.Errorf("error body mismatch (-want +got):\n%s", diff)
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	e := newEnv()

	for _, rt := range []struct{ method, path string }{
		{"POST", "/auth/logout"},
		{"GET", "/auth/me"},
		{"GET", "/auth/sessions"},
		{"DELETE", "/auth/sessions/" + uuid.NewString()},
	} {
		if w := e.do(rt.method, rt.path, "", ""); w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", rt.method, rt.path, w.Code)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "10.0.0.2:1234", "198.51.100.1"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "10.0.0.2:1234", "198.51.100.2"},
		{"remote addr", nil, "192.0.2.7:5555", "192.0.2.7"},
		{"remote without port", nil, "192.0.2.8", "192.0.2.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := auth.ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeviceName(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("User-Agent", "curl/8.0")

	if got := auth.DeviceName(r, " laptop "); got != "laptop" {
		t.Errorf("DeviceName() = %q, want laptop", got)
	}
	if got := auth.DeviceName(r, ""); got != "curl/8.0" {
		t.Errorf("DeviceName() = %q, want curl/8.0", got)
	}
	r.Header.Del("User-Agent")
	if got := auth.DeviceName(r, ""); got != "unknown" {
		t.Errorf("DeviceName() = %q, want unknown", got)
	}
}
