// Package auth supplies bearer credentials for the gateway. Login and
// token issuance happen outside this process; the dashboard only holds
// a token and needs to notice, before issuing a request, that the token
// is missing or already expired so the caller can bounce to its login
// flow.
package auth

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/filedash/filedash/internal/domain"
	"github.com/filedash/filedash/internal/port"
)

// StaticTokenSource serves one fixed token.
type StaticTokenSource struct {
	token string
	now   func() time.Time
}

var _ port.TokenSource = (*StaticTokenSource)(nil)

// NewStaticTokenSource creates a token source around a fixed token.
func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: strings.TrimSpace(token), now: time.Now}
}

// Token returns the token, or domain.ErrNotAuthenticated when it is
// absent or expired.
func (s *StaticTokenSource) Token() (string, error) {
	return checkToken(s.token, s.now())
}

// FileTokenSource reads the token from a file on every call, so an
// external login flow can refresh it without restarting the dashboard.
type FileTokenSource struct {
	path string
	now  func() time.Time
}

var _ port.TokenSource = (*FileTokenSource)(nil)

// NewFileTokenSource creates a token source backed by a file.
func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{path: path, now: time.Now}
}

// Token reads and validates the token file.
func (s *FileTokenSource) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read token file: %v", domain.ErrNotAuthenticated, err)
	}
	return checkToken(strings.TrimSpace(string(data)), s.now())
}

// checkToken rejects empty and expired tokens. Expiry is peeked from
// the JWT exp claim without verifying the signature: verification is
// the server's job, the client only wants to avoid a doomed round trip.
// Tokens that do not parse as JWTs pass through as opaque credentials.
func checkToken(token string, now time.Time) (string, error) {
	if token == "" {
		return "", domain.ErrNotAuthenticated
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return token, nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return token, nil
	}
	if !exp.After(now) {
		return "", fmt.Errorf("%w: token expired at %s", domain.ErrNotAuthenticated, exp.Format(time.RFC3339))
	}
	return token, nil
}
