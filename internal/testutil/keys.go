// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ECKey returns a fresh P-256 key and its PKCS#8 PEM encoding, the format of
// the .p8 files App Store Connect hands out.
func ECKey(t *testing.T) (*ecdsa.PrivateKey, []byte) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	return key, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

// RSAKeyPEM returns a PKCS#8 encoded RSA key, which cannot sign ES256 tokens.
func RSAKeyPEM(t *testing.T) []byte {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

// WriteKeyFile writes a new EC key to a temporary AuthKey_<id>.p8 file.
func WriteKeyFile(t *testing.T, keyID string) (*ecdsa.PrivateKey, string) {
	t.Helper()

	key, pemBytes := ECKey(t)
	path := filepath.Join(t.TempDir(), "AuthKey_"+keyID+".p8")
	require.NoError(t, os.WriteFile(path, pemBytes, 0600))

	return key, path
}
