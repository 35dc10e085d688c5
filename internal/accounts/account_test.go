package accounts_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/lox/internal/accounts"
)

func TestRegisterCommand_Normalize(t *testing.T) {
	got := accounts.RegisterCommand{
		Username: "  lox  ",
		Email:    " Lox@Example.COM ",
		Password: " keep spaces ",
	}.Normalize()

	want := accounts.RegisterCommand{
		Username: "lox",
		Email:    "lox@example.com",
		Password: " keep spaces ",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterCommand_Validate(t *testing.T) {
	valid := accounts.RegisterCommand{Username: "lox", Email: "lox@example.com", Password: "password1"}

	tests := []struct {
		name    string
		mutate  func(c *accounts.RegisterCommand)
		wantErr bool
	}{
		{"valid", func(c *accounts.RegisterCommand) {}, false},
		{"username too short", func(c *accounts.RegisterCommand) { c.Username = "lo" }, true},
		{"username at max", func(c *accounts.RegisterCommand) { c.Username = strings.Repeat("a", 128) }, false},
		{"username too long", func(c *accounts.RegisterCommand) { c.Username = strings.Repeat("a", 129) }, true},
		{"email without at", func(c *accounts.RegisterCommand) { c.Email = "lox.example.com" }, true},
		{"email empty", func(c *accounts.RegisterCommand) { c.Email = "" }, true},
		{"email with display name", func(c *accounts.RegisterCommand) { c.Email = "lox <lox@example.com>" }, true},
		{"email in angle brackets", func(c *accounts.RegisterCommand) { c.Email = "<lox@example.com>" }, true},
		{"email with comment", func(c *accounts.RegisterCommand) { c.Email = "lox@example.com (comment)" }, true},
		{"password too short", func(c *accounts.RegisterCommand) { c.Password = "short" }, true},
		{"password too long for bcrypt", func(c *accounts.RegisterCommand) { c.Password = strings.Repeat("p", 73) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)

			err := cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, accounts.ErrInvalidInput) {
				t.Errorf("error %v is not ErrInvalidInput", err)
			}
		})
	}
}

func TestRegisterCommand_NormalizeThenValidate(t *testing.T) {
	for _, email := range []string{"Lox <lox@example.com>", "<lox@example.com>", "lox@example.com (comment)"} {
		t.Run(email, func(t *testing.T) {
			cmd := accounts.RegisterCommand{Username: "lox", Email: email, Password: "password1"}.Normalize()
			if err := cmd.Validate(); !errors.Is(err, accounts.ErrInvalidInput) {
				t.Errorf("Validate(%q) = %v, want ErrInvalidInput", cmd.Email, err)
			}
		})
	}

	cmd := accounts.RegisterCommand{Username: "lox", Email: "  LOX@Example.com ", Password: "password1"}.Normalize()
	if err := cmd.Validate(); err != nil {
		t.Fatalf("Validate(%q) = %v", cmd.Email, err)
	}
	if cmd.Email != "lox@example.com" {
		t.Errorf("Email = %q, want lox@example.com", cmd.Email)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", accounts.ErrNotFound, http.StatusNotFound},
		{"username taken", accounts.ErrUsernameTaken, http.StatusConflict},
		{"email taken", accounts.ErrEmailTaken, http.StatusConflict},
		{"wrapped email taken", fmt.Errorf("register: %w", accounts.ErrEmailTaken), http.StatusConflict},
		{"invalid credentials", accounts.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid input", fmt.Errorf("%w: username", accounts.ErrInvalidInput), http.StatusBadRequest},
		{"unknown error", errors.New("unknown error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := accounts.MapHTTPStatus(tt.err); got != tt.wantStatus {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{accounts.ErrEmailTaken, "Email is already in use"},
		{accounts.ErrUsernameTaken, "Username is already in use"},
		{accounts.ErrInvalidCredentials, "Invalid email or password"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("message = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := accounts.HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if string(hash) == "correct horse" {
		t.Fatal("hash equals plaintext")
	}
	if !accounts.CheckPassword(hash, "correct horse") {
		t.Error("CheckPassword() = false for matching password")
	}
	if accounts.CheckPassword(hash, "battery staple") {
		t.Error("CheckPassword() = true for wrong password")
	}
	if accounts.CheckPassword([]byte("not a hash"), "correct horse") {
		t.Error("CheckPassword() = true for malformed hash")
	}
}

func TestAccount_JSONOmitsPassword(t *testing.T) {
	a := accounts.Account{
		ID:                 uuid.Must(uuid.NewV7()),
		Username:           "lox",
		Email:              "lox@example.com",
		Password:           []byte("$2a$10$hash"),
		DateOfRegistration: time.Now(),
	}

	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	body := string(b)
	if strings.Contains(body, "password") || strings.Contains(body, "hash") {
		t.Errorf("password leaked: %s", body)
	}
	if strings.Contains(body, "time_of_last_online") {
		t.Errorf("nil last online should be omitted: %s", body)
	}
}
