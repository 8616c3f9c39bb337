package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// Static errors for err113 compliance.
var (
	ErrEmptyKey         = errors.New("private key is empty")
	ErrNoKeySource      = errors.New("no private key source configured")
	ErrUnexpectedFlight = errors.New("unexpected token refresh result")
)

const (
	refreshKey      = "refresh"
	forceRefreshKey = "force-refresh"
)

// KeySource yields the PEM encoded EC private key used to sign tokens.
type KeySource interface {
	ReadKey() ([]byte, error)
	String() string
}

// FileKeySource reads the key from disk on every call.
type FileKeySource string

func (p FileKeySource) ReadKey() ([]byte, error) {
	data, err := os.ReadFile(string(p))
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	return data, nil
}

func (p FileKeySource) String() string {
	return string(p)
}

// StaticKeySource holds key material in memory.
type StaticKeySource []byte

func (k StaticKeySource) ReadKey() ([]byte, error) {
	return k, nil
}

func (k StaticKeySource) String() string {
	return "(in-memory key)"
}

// IssuerConfig configures an Issuer. Zero durations and a nil clock use the defaults.
type IssuerConfig struct {
	KeyID        string
	IssuerID     string
	Key          KeySource
	Audience     string
	Lifetime     time.Duration
	RefreshAfter time.Duration
	Clock        Clock
	Logger       asc.Logger
}

// Issuer signs ES256 bearer tokens and caches the current one. Concurrent
// callers that find the cache stale share a single regeneration.
type Issuer struct {
	keyID        string
	issuerID     string
	key          KeySource
	audience     string
	lifetime     time.Duration
	refreshAfter time.Duration
	clock        Clock
	logger       asc.Logger

	mutex   sync.RWMutex
	current *Token
	flights singleflight.Group
}

// NewIssuer creates a token issuer.
func NewIssuer(config *IssuerConfig) *Issuer {
	issuer := &Issuer{
		keyID:        config.KeyID,
		issuerID:     config.IssuerID,
		key:          config.Key,
		audience:     config.Audience,
		lifetime:     config.Lifetime,
		refreshAfter: config.RefreshAfter,
		clock:        config.Clock,
		logger:       config.Logger,
	}

	if issuer.audience == "" {
		issuer.audience = constants.TokenAudience
	}

	if issuer.lifetime <= 0 {
		issuer.lifetime = constants.TokenLifetime
	}

	if issuer.refreshAfter <= 0 {
		issuer.refreshAfter = constants.TokenRefreshAfter
	}

	if issuer.clock == nil {
		issuer.clock = SystemClock
	}

	return issuer
}

// CurrentToken returns the cached token, regenerating it when missing or older
// than the refresh threshold.
func (i *Issuer) CurrentToken(ctx context.Context) (*Token, error) {
	i.mutex.RLock()
	current := i.current
	i.mutex.RUnlock()

	if !current.Stale(i.clock.Now(), i.refreshAfter) {
		return current, nil
	}

	return i.await(ctx, refreshKey, false)
}

// GetToken implements TokenManager.
func (i *Issuer) GetToken(ctx context.Context) (string, error) {
	token, err := i.CurrentToken(ctx)
	if err != nil {
		return "", err
	}

	return token.Value, nil
}

// RefreshToken implements TokenManager by signing a new token unconditionally.
func (i *Issuer) RefreshToken(ctx context.Context) error {
	_, err := i.await(ctx, forceRefreshKey, true)

	return err
}

func (i *Issuer) await(ctx context.Context, key string, force bool) (*Token, error) {
	results := i.flights.DoChan(key, func() (interface{}, error) {
		return i.refresh(force)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for token: %w", ctx.Err())
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err
		}

		token, ok := result.Val.(*Token)
		if !ok {
			return nil, ErrUnexpectedFlight
		}

		return token, nil
	}
}

// refresh swaps in a new token under the write lock so readers observe either
// the previous token or the new one.
func (i *Issuer) refresh(force bool) (*Token, error) {
	i.mutex.Lock()
	defer i.mutex.Unlock()

	now := i.clock.Now()
	if !force && !i.current.Stale(now, i.refreshAfter) {
		return i.current, nil
	}

	token, err := i.sign(now)
	if err != nil {
		return nil, err
	}

	i.current = token

	if i.logger != nil {
		i.logger.Debug("Generated API token", map[string]interface{}{
			"key_id":     i.keyID,
			"expires_at": token.ExpiresAt.Format(time.RFC3339),
		})
	}

	return token, nil
}

func (i *Issuer) sign(now time.Time) (*Token, error) {
	if i.key == nil {
		return nil, &asc.CredentialReadError{Source: "(none)", Err: ErrNoKeySource}
	}

	pemBytes, err := i.key.ReadKey()
	if err != nil {
		return nil, &asc.CredentialReadError{Source: i.key.String(), Err: err}
	}

	if len(pemBytes) == 0 {
		return nil, &asc.CredentialReadError{Source: i.key.String(), Err: ErrEmptyKey}
	}

	privateKey, err := jwt.ParseECPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, &asc.SigningError{KeyID: i.keyID, Err: fmt.Errorf("%w: %w", asc.ErrNotECPrivateKey, err)}
	}

	expiresAt := now.Add(i.lifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": i.issuerID,
		"exp": expiresAt.Unix(),
		"aud": i.audience,
	})
	token.Header["kid"] = i.keyID
	token.Header["typ"] = "JWT"

	signed, err := token.SignedString(privateKey)
	if err != nil {
		return nil, &asc.SigningError{KeyID: i.keyID, Err: err}
	}

	return &Token{
		Value:     signed,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}
