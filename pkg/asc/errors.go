package asc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// APIError represents one entry of an App Store Connect error document.
type APIError struct {
	ID     string       `json:"id,omitempty"     yaml:"id,omitempty"`
	Status string       `json:"status"           yaml:"status"`
	Code   string       `json:"code"             yaml:"code"`
	Title  string       `json:"title"            yaml:"title"`
	Detail string       `json:"detail"           yaml:"detail"`
	Source *ErrorSource `json:"source,omitempty" yaml:"source,omitempty"`
}

// ErrorSource points at the part of the request that caused an error.
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"   yaml:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty" yaml:"parameter,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (code: %s, status: %s)", e.Title, e.Detail, e.Code, e.Status)
}

// ResponseError represents a non-2xx response from the API.
type ResponseError struct {
	StatusCode int        `json:"-"`
	Errors     []APIError `json:"errors"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}

	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	return fmt.Sprintf("multiple errors: %v", e.Errors)
}

// FirstError returns the first error or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// ParseResponseError builds a ResponseError from an error response body. Bodies
// that are not error documents still produce a ResponseError carrying the status.
func ParseResponseError(statusCode int, data []byte) *ResponseError {
	errResp := &ResponseError{StatusCode: statusCode}

	_ = json.Unmarshal(data, errResp)

	return errResp
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == strconv.Itoa(status)
	}

	errResp := &ResponseError{}
	if errors.As(err, &errResp) {
		return errResp.StatusCode == status
	}

	return false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// InvalidParameterError reports caller-supplied arguments that are missing or
// invalid. It is always returned before any network I/O.
type InvalidParameterError struct {
	Operation string
	Fields    []string
	Reason    string
}

func (e *InvalidParameterError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: invalid value for %s: %s", e.Operation, quoteFields(e.Fields), e.Reason)
	}

	return fmt.Sprintf("%s: %s required", e.Operation, quoteFields(e.Fields))
}

func quoteFields(fields []string) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = "'" + field + "'"
	}

	return strings.Join(quoted, ", ")
}

// MethodNotAllowedError is returned for HTTP verbs outside GET, POST, PATCH, PUT and DELETE.
type MethodNotAllowedError struct {
	Method string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %q not allowed", e.Method)
}

// CredentialReadError is returned when the private key material cannot be read.
type CredentialReadError struct {
	Source string
	Err    error
}

func (e *CredentialReadError) Error() string {
	return fmt.Sprintf("reading private key %s: %v", e.Source, e.Err)
}

func (e *CredentialReadError) Unwrap() error {
	return e.Err
}

// SigningError is returned when the key is not a valid EC private key or signing fails.
type SigningError struct {
	KeyID string
	Err   error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing token with key %s: %v", e.KeyID, e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// TransportError wraps network-level failures.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned for malformed compressed response payloads.
type DecodeError struct {
	ContentType string
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.ContentType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired           = errors.New("config is required")
	ErrCredentialsRequired      = errors.New("key ID, issuer ID and a private key are required")
	ErrInvalidBaseURL           = errors.New("invalid base URL")
	ErrNotECPrivateKey          = errors.New("key is not an ECDSA private key")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrPathTraversalNotAllowed  = errors.New("path traversal not allowed")
	ErrNoUploadOperations       = errors.New("no upload operations returned")
	ErrInvalidUTF8              = errors.New("payload is not valid UTF-8")
)
