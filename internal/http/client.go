package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/gzip"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// TokenManager supplies the bearer token attached to every request.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// Request describes a single API call.
type Request struct {
	Method string
	// Path is appended to the base URL. For PUT it is an absolute pre-signed
	// upload URL and is used unchanged.
	Path    string
	Query   url.Values
	Body    interface{}
	Upload  *Upload
	Headers map[string]string
}

// Upload is the raw payload of a PUT.
type Upload struct {
	Content     io.Reader
	ContentType string
	Length      int64
}

// Client dispatches requests against the App Store Connect API.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager TokenManager
	userAgent    string
	logger       asc.Logger
	debug        bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger asc.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// NewClient creates a dispatcher. A nil tokenManager sends requests without
// an Authorization header.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = cleanhttp.DefaultPooledClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil && client.debug {
		client.httpClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// neverRetry stops after the first attempt and surfaces the transport error, if any.
func neverRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, err
}

// ValidateMethod normalizes method and rejects verbs the API does not accept.
func ValidateMethod(method string) (string, error) {
	normalized := strings.ToUpper(method)

	switch normalized {
	case http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		return normalized, nil
	default:
		return "", &asc.MethodNotAllowedError{Method: method}
	}
}

// Do performs exactly one round trip. Non-2xx statuses are not errors here.
func (c *Client) Do(ctx context.Context, req *Request) (*asc.Response, error) {
	method, err := ValidateMethod(req.Method)
	if err != nil {
		return nil, err
	}

	target, err := c.buildURL(method, req)
	if err != nil {
		return nil, err
	}

	body, err := requestBody(method, req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	err = c.setHeaders(ctx, httpReq, method, req)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	if c.logger != nil && c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"request_id": requestID,
			"method":     method,
			"url":        target,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		return nil, &asc.TransportError{Method: method, URL: target, Err: err}
	}

	defer func() { _ = httpResp.Body.Close() }()

	resp, err := readResponse(httpResp)
	if err != nil {
		var decodeErr *asc.DecodeError
		if !errors.As(err, &decodeErr) {
			err = &asc.TransportError{Method: method, URL: target, Err: err}
		}

		return nil, err
	}

	if c.logger != nil && c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"request_id":   requestID,
			"status":       resp.StatusCode,
			"bytes":        len(resp.Body),
			"decompressed": resp.Decompressed,
		})
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*asc.Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*asc.Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*asc.Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPatch,
		Path:   path,
		Body:   body,
	})
}

// Put uploads raw content to an absolute URL.
func (c *Client) Put(ctx context.Context, uploadURL string, upload *Upload, headers map[string]string) (*asc.Response, error) {
	return c.Do(ctx, &Request{
		Method:  http.MethodPut,
		Path:    uploadURL,
		Upload:  upload,
		Headers: headers,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*asc.Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

func (c *Client) buildURL(method string, req *Request) (string, error) {
	raw := req.Path
	if method != http.MethodPut {
		raw = c.baseURL + req.Path
	}

	if len(req.Query) == 0 {
		return raw, nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing request URL: %w", err)
	}

	query := parsed.Query()
	for key, values := range req.Query {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

func requestBody(method string, req *Request) (interface{}, error) {
	switch method {
	case http.MethodPost, http.MethodPatch:
		if req.Body == nil {
			return nil, nil
		}

		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		return data, nil
	case http.MethodPut:
		if req.Upload == nil || req.Upload.Content == nil {
			return nil, nil
		}

		return req.Upload.Content, nil
	default:
		return nil, nil
	}
}

func (c *Client) setHeaders(ctx context.Context, httpReq *retryablehttp.Request, method string, req *Request) error {
	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("getting token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpReq.Header.Set("Accept", constants.JSONContentType)
	httpReq.Header.Set("User-Agent", c.userAgent)

	switch method {
	case http.MethodPost, http.MethodPatch:
		if req.Body != nil {
			httpReq.Header.Set("Content-Type", constants.JSONContentType)
		}
	case http.MethodPut:
		if req.Upload != nil {
			if req.Upload.ContentType != "" {
				httpReq.Header.Set("Content-Type", req.Upload.ContentType)
			}

			if req.Upload.Length > 0 {
				httpReq.ContentLength = req.Upload.Length
			}
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return nil
}

func readResponse(httpResp *http.Response) (*asc.Response, error) {
	resp := &asc.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
	}

	contentType := httpResp.Header.Get("Content-Type")
	if mediaType(contentType) != constants.ArchiveContentType {
		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}

		resp.Body = body

		return resp, nil
	}

	archive, err := readChunks(httpResp.Body)
	if err != nil {
		return nil, err
	}

	text, err := inflate(archive)
	if err != nil {
		return nil, &asc.DecodeError{ContentType: contentType, Err: err}
	}

	resp.Body = text
	resp.Decompressed = true

	return resp, nil
}

func mediaType(contentType string) string {
	parsed, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}

	return parsed
}

// readChunks accumulates the body with fixed-size reads.
func readChunks(body io.Reader) (*bytes.Buffer, error) {
	var archive bytes.Buffer

	chunk := make([]byte, constants.ArchiveChunkSize)

	for {
		n, err := body.Read(chunk)
		archive.Write(chunk[:n])

		if errors.Is(err, io.EOF) {
			return &archive, nil
		}

		if err != nil {
			return nil, fmt.Errorf("reading archive body: %w", err)
		}
	}
}

func inflate(archive io.Reader) ([]byte, error) {
	reader, err := gzip.NewReader(archive)
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}

	defer func() { _ = reader.Close() }()

	text, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("inflating gzip stream: %w", err)
	}

	if !utf8.Valid(text) {
		return nil, asc.ErrInvalidUTF8
	}

	return text, nil
}
