package migrate_test

import (
	"testing"

	"github.com/JaimeStill/lox/pkg/migrate"
)

func TestDriverURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://lox:pw@localhost:5432/lox?sslmode=disable", "pgx5://lox:pw@localhost:5432/lox?sslmode=disable"},
		{"postgresql://lox@db/lox", "pgx5://lox@db/lox"},
		{"pgx5://already", "pgx5://already"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := migrate.DriverURL(tt.in); got != tt.want {
				t.Errorf("DriverURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
