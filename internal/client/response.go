package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/asc/internal/http"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// checkResponse converts a non-2xx response into an *asc.ResponseError.
func checkResponse(resp *asc.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	return asc.ParseResponseError(resp.StatusCode, resp.Body)
}

func decodeDocument[T any](resp *asc.Response, action string) (*T, error) {
	err := checkResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	var document T

	err = json.Unmarshal(resp.Body, &document)
	if err != nil {
		return nil, fmt.Errorf("%s: parsing response: %w", action, err)
	}

	return &document, nil
}

func getDocument[T any](ctx context.Context, httpClient *http.Client, path, action string) (*T, error) {
	resp, err := httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	return decodeDocument[T](resp, action)
}

func postDocument[T any](ctx context.Context, httpClient *http.Client, path string, body interface{}, action string) (*T, error) {
	resp, err := httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	return decodeDocument[T](resp, action)
}

func patchDocument[T any](ctx context.Context, httpClient *http.Client, path string, body interface{}, action string) (*T, error) {
	resp, err := httpClient.Patch(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	return decodeDocument[T](resp, action)
}

func deleteResource(ctx context.Context, httpClient *http.Client, path, action string) error {
	resp, err := httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	err = checkResponse(resp)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}

	return nil
}

// resourcePath joins base with escaped path segments.
func resourcePath(base string, segments ...string) string {
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, base)

	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}

	return strings.Join(escaped, "/")
}
