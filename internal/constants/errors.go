package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentialsConfigured = errors.New("no API key configured, use 'asc config set' or the ASC_KEY_ID, ASC_ISSUER_ID and ASC_PRIVATE_KEY_PATH variables")
	ErrUnknownConfigKey        = errors.New("unknown configuration key")
)

// Validation errors.
var (
	ErrInvalidJSONData         = errors.New("--data must be a JSON document")
	ErrUnsupportedOutputFormat = errors.New("unsupported output format")
)

// File system errors.
var (
	ErrNotRegularFile = errors.New("path is not a regular file")
	ErrNotDirectory   = errors.New("path is not a directory")
)
