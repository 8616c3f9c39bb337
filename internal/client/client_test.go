package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/fivetwenty-io/asc/internal/client"
	"github.com/fivetwenty-io/asc/internal/testutil"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("requires a config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, asc.ErrConfigRequired)
	})

	t.Run("requires credentials", func(t *testing.T) {
		t.Parallel()

		_, err := New(&asc.Config{KeyID: "KEY"})
		require.ErrorIs(t, err, asc.ErrCredentialsRequired)

		_, err = New(&asc.Config{KeyID: "KEY", IssuerID: "ISSUER"})
		require.ErrorIs(t, err, asc.ErrCredentialsRequired)
	})

	t.Run("creates client with access token", func(t *testing.T) {
		t.Parallel()

		client, err := New(&asc.Config{AccessToken: "test-token"})
		require.NoError(t, err)
		assert.Equal(t, asc.DefaultBaseURL, client.BaseURL())

		token, err := client.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "test-token", token)
	})

	t.Run("creates client with API key file", func(t *testing.T) {
		t.Parallel()

		key, path := testutil.WriteKeyFile(t, "KEY123")

		client, err := New(&asc.Config{
			KeyID:          "KEY123",
			IssuerID:       "ISSUER",
			PrivateKeyPath: path,
		})
		require.NoError(t, err)

		token, err := client.GetToken(context.Background())
		require.NoError(t, err)

		parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil })
		require.NoError(t, err)
		assert.Equal(t, "KEY123", parsed.Header["kid"])
	})

	t.Run("in-memory key takes precedence", func(t *testing.T) {
		t.Parallel()

		_, pemBytes := testutil.ECKey(t)

		client, err := New(&asc.Config{
			KeyID:          "KEY123",
			IssuerID:       "ISSUER",
			PrivateKey:     pemBytes,
			PrivateKeyPath: "/does/not/exist.p8",
		})
		require.NoError(t, err)

		_, err = client.GetToken(context.Background())
		require.NoError(t, err)
	})

	t.Run("unreadable key surfaces on first use", func(t *testing.T) {
		t.Parallel()

		client, err := New(&asc.Config{
			KeyID:          "KEY123",
			IssuerID:       "ISSUER",
			PrivateKeyPath: "/does/not/exist.p8",
		})
		require.NoError(t, err)

		_, err = client.Apps().List(context.Background())
		require.Error(t, err)

		var readErr *asc.CredentialReadError
		require.ErrorAs(t, err, &readErr)
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		for _, baseURL := range []string{"ftp://example.com", "not a url", "/relative"} {
			_, err := New(&asc.Config{AccessToken: "t", BaseURL: baseURL})
			require.ErrorIs(t, err, asc.ErrInvalidBaseURL, baseURL)
		}
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		t.Parallel()

		client, err := New(&asc.Config{AccessToken: "t", BaseURL: "https://proxy.example.com/"})
		require.NoError(t, err)
		assert.Equal(t, "https://proxy.example.com", client.BaseURL())
	})
}

func TestNewWithTokenManager_NoManager(t *testing.T) {
	t.Parallel()

	client, err := NewWithTokenManager(&asc.Config{}, nil)
	require.NoError(t, err)

	_, err = client.GetToken(context.Background())
	require.ErrorIs(t, err, ErrNoTokenManagerConfigured)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the response as received", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/apps/123/builds", request.URL.Path)
			assert.Equal(t, "Bearer static", request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"errors":[]}`))
		}))
		defer server.Close()

		client, err := New(&asc.Config{AccessToken: "static", BaseURL: server.URL})
		require.NoError(t, err)

		resp, err := client.Fetch(context.Background(), "get", "/v1/apps/123/builds", nil)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.JSONEq(t, `{"errors":[]}`, resp.Text())
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			hits.Add(1)
		}))
		defer server.Close()

		client, err := New(&asc.Config{AccessToken: "static", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = client.Fetch(context.Background(), "HEAD", "/v1/apps", nil)

		var notAllowed *asc.MethodNotAllowedError
		require.ErrorAs(t, err, &notAllowed)
		assert.Equal(t, int32(0), hits.Load())
	})

	t.Run("json body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "PATCH", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]interface{}

			assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "apps", body["data"].(map[string]interface{})["type"])

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client, err := New(&asc.Config{AccessToken: "static", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = client.Fetch(context.Background(), "PATCH", "/v1/apps/123", []byte(`{"data":{"type":"apps","id":"123"}}`))
		require.NoError(t, err)

		_, err = client.Fetch(context.Background(), "PATCH", "/v1/apps/123", map[string]interface{}{
			"data": map[string]string{"type": "apps", "id": "123"},
		})
		require.NoError(t, err)
	})

	t.Run("put streams raw content to an absolute URL", func(t *testing.T) {
		t.Parallel()

		upload := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "PUT", request.Method)
			assert.Equal(t, "/bucket/object", request.URL.Path)

			body, _ := io.ReadAll(request.Body)
			assert.Equal(t, "raw bytes", string(body))

			writer.WriteHeader(http.StatusOK)
		}))
		defer upload.Close()

		client, err := New(&asc.Config{AccessToken: "static", BaseURL: "https://api.example.invalid"})
		require.NoError(t, err)

		resp, err := client.Fetch(context.Background(), "PUT", upload.URL+"/bucket/object", strings.NewReader("raw bytes"))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		serverURL := server.URL
		server.Close()

		client, err := New(&asc.Config{AccessToken: "static", BaseURL: serverURL})
		require.NoError(t, err)

		_, err = client.Fetch(context.Background(), "GET", "/v1/apps", nil)

		var transportErr *asc.TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.False(t, errors.Is(err, context.Canceled))
	})
}

func TestClient_ResourceAccessors(t *testing.T) {
	t.Parallel()

	client, err := New(&asc.Config{AccessToken: "static", AppID: "APP1"})
	require.NoError(t, err)

	assert.Equal(t, "APP1", client.AppID())
	assert.NotNil(t, client.Apps())
	assert.NotNil(t, client.Builds())
	assert.NotNil(t, client.BundleIDs())
	assert.NotNil(t, client.Certificates())
	assert.NotNil(t, client.Devices())
	assert.NotNil(t, client.Profiles())
	assert.NotNil(t, client.Users())
	assert.NotNil(t, client.InAppPurchases())
	assert.NotNil(t, client.ReviewScreenshots())
	assert.NotNil(t, client.SubscriptionGroups())
	assert.NotNil(t, client.Subscriptions())

	var _ asc.Client = client
}
