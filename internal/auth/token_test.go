package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/filedash/filedash/internal/domain"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestStaticTokenSource(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:    "empty token",
			token:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			token:   "   \n",
			wantErr: true,
		},
		{
			name:  "opaque token passes through",
			token: "not-a-jwt-at-all",
		},
		{
			name:  "valid jwt",
			token: signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}),
		},
		{
			name:  "jwt without expiry",
			token: signedToken(t, jwt.MapClaims{"sub": "alice"}),
		},
		{
			name:    "expired jwt",
			token:   signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewStaticTokenSource(tt.token)
			got, err := src.Token()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrNotAuthenticated) {
					t.Fatalf("Token() error = %v, want ErrNotAuthenticated", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Token() error = %v", err)
			}
			if got == "" {
				t.Error("Token() returned an empty token without error")
			}
		})
	}
}

func TestFileTokenSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("  opaque-token\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	src := NewFileTokenSource(path)
	got, err := src.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if got != "opaque-token" {
		t.Errorf("Token() = %q, want trimmed %q", got, "opaque-token")
	}
}

func TestFileTokenSourceMissingFile(t *testing.T) {
	src := NewFileTokenSource(filepath.Join(t.TempDir(), "absent"))

	if _, err := src.Token(); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("Token() error = %v, want ErrNotAuthenticated", err)
	}
}

func TestFileTokenSourcePicksUpRefresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("first"), 0o600); err != nil {
		t.Fatal(err)
	}

	src := NewFileTokenSource(path)
	if got, _ := src.Token(); got != "first" {
		t.Fatalf("Token() = %q, want %q", got, "first")
	}

	if err := os.WriteFile(path, []byte("second"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got, _ := src.Token(); got != "second" {
		t.Errorf("Token() after refresh = %q, want %q", got, "second")
	}
}
