package auth

import (
	"context"
	"time"

	"github.com/fivetwenty-io/asc/pkg/asc"
)

// TokenManager supplies bearer tokens to the HTTP layer.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
}

// Token is a signed bearer credential. Tokens are replaced, never modified.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Valid reports whether the token can still be presented at now.
func (t *Token) Valid(now time.Time) bool {
	if t == nil || t.Value == "" {
		return false
	}

	return now.Before(t.ExpiresAt)
}

// Stale reports whether the token must be regenerated: it is missing, expired,
// or older than refreshAfter.
func (t *Token) Stale(now time.Time, refreshAfter time.Duration) bool {
	if !t.Valid(now) {
		return true
	}

	return now.After(t.IssuedAt.Add(refreshAfter))
}

// Clock supplies the current time; tests inject a fixed one.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// StaticTokenManager serves a pre-issued token.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a manager for a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return asc.ErrStaticTokenCannotRefresh
}
