package client

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/asc/internal/http"
)

// recordedRequest is a request as seen by the test API.
type recordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Header      nethttp.Header
	Body        []byte
}

// testAPI is an httptest server with a chi router that records every request.
type testAPI struct {
	t        *testing.T
	router   chi.Router
	server   *httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	api := &testAPI{t: t, router: chi.NewRouter()}
	api.router.Use(api.record)
	api.server = httptest.NewServer(api.router)
	t.Cleanup(api.server.Close)

	return api
}

func (a *testAPI) record(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		body, err := io.ReadAll(request.Body)
		require.NoError(a.t, err)

		request.Body = io.NopCloser(bytes.NewReader(body))

		a.mu.Lock()
		a.requests = append(a.requests, recordedRequest{
			Method:      request.Method,
			Path:        request.URL.Path,
			RawQuery:    request.URL.RawQuery,
			ContentType: request.Header.Get("Content-Type"),
			Header:      request.Header.Clone(),
			Body:        body,
		})
		a.mu.Unlock()

		next.ServeHTTP(writer, request)
	})
}

// client returns a Client without authentication pointed at the test API.
func (a *testAPI) client(appID string) *Client {
	return newTestClient(a.server.URL, appID)
}

func (a *testAPI) recorded() []recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]recordedRequest(nil), a.requests...)
}

// decodeBody unmarshals the body of the index-th request.
func (a *testAPI) decodeBody(index int, v interface{}) {
	a.t.Helper()

	requests := a.recorded()
	require.Greater(a.t, len(requests), index)
	require.NoError(a.t, json.Unmarshal(requests[index].Body, v))
}

func newTestClient(baseURL, appID string) *Client {
	client := &Client{
		httpClient: http.NewClient(baseURL, nil),
		baseURL:    baseURL,
		appID:      appID,
	}

	client.initializeResourceClients()

	return client
}

func writeJSON(writer nethttp.ResponseWriter, status int, body string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_, _ = writer.Write([]byte(body))
}

func respondJSON(status int, body string) nethttp.HandlerFunc {
	return func(writer nethttp.ResponseWriter, _ *nethttp.Request) {
		writeJSON(writer, status, body)
	}
}

const notFoundBody = `{"errors":[{"id":"e1","status":"404","code":"NOT_FOUND","title":"The specified resource does not exist","detail":"There is no resource of type 'apps' with id 'missing'"}]}`
