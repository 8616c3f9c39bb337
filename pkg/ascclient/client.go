// Package ascclient provides the main entry point for creating App Store Connect API clients
package ascclient

import (
	"fmt"
	"os"

	"github.com/fivetwenty-io/asc/internal/client"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// AppIDEnv names the environment variable consulted when Config.AppID is empty.
const AppIDEnv = "APP_ID"

// New creates a new App Store Connect API client. The caller's config is not modified.
func New(config *asc.Config) (asc.Client, error) {
	if config == nil {
		return nil, asc.ErrConfigRequired
	}

	resolved := *config
	if resolved.AppID == "" {
		resolved.AppID = os.Getenv(AppIDEnv)
	}

	c, err := client.New(&resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithKeyFile creates a client that signs tokens with the .p8 key at keyPath.
// The key is re-read each time a token is generated.
func NewWithKeyFile(keyID, issuerID, keyPath string) (asc.Client, error) {
	return New(&asc.Config{
		KeyID:          keyID,
		IssuerID:       issuerID,
		PrivateKeyPath: keyPath,
	})
}

// NewWithKey creates a client from in-memory PEM key material.
func NewWithKey(keyID, issuerID string, privateKey []byte) (asc.Client, error) {
	return New(&asc.Config{
		KeyID:      keyID,
		IssuerID:   issuerID,
		PrivateKey: privateKey,
	})
}

// NewWithToken creates a client that presents a pre-issued bearer token.
func NewWithToken(token string) (asc.Client, error) {
	return New(&asc.Config{
		AccessToken: token,
	})
}
