//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/asc/pkg/asc"
	"github.com/fivetwenty-io/asc/pkg/ascclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	KeyID          string
	IssuerID       string
	PrivateKeyPath string
	AppID          string
	BinaryPath     string
	Verbose        bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		KeyID:          os.Getenv("ASC_KEY_ID"),
		IssuerID:       os.Getenv("ASC_ISSUER_ID"),
		PrivateKeyPath: os.Getenv("ASC_PRIVATE_KEY_PATH"),
		AppID:          os.Getenv("APP_ID"),
		BinaryPath:     getBinaryPath(),
		Verbose:        os.Getenv("ASC_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the asc binary
func getBinaryPath() string {
	if path := os.Getenv("ASC_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../asc", "./asc", "../asc"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "asc"
}

// SkipIfMissingCredentials skips the test unless an API key is configured.
func (config *TestConfig) SkipIfMissingCredentials(t *testing.T) {
	t.Helper()

	if config.KeyID == "" || config.IssuerID == "" || config.PrivateKeyPath == "" {
		t.Skip("ASC_KEY_ID, ASC_ISSUER_ID or ASC_PRIVATE_KEY_PATH not set, skipping integration test")
	}
}

// SkipIfMissingApp skips the test unless APP_ID is set.
func (config *TestConfig) SkipIfMissingApp(t *testing.T) {
	t.Helper()

	if config.AppID == "" {
		t.Skip("APP_ID not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips the test when the CLI has not been built.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("asc binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// NewClient creates a library client from the test configuration.
func (config *TestConfig) NewClient(t *testing.T) asc.Client {
	t.Helper()

	client, err := ascclient.New(&asc.Config{
		KeyID:          config.KeyID,
		IssuerID:       config.IssuerID,
		PrivateKeyPath: config.PrivateKeyPath,
		AppID:          config.AppID,
	})
	require.NoError(t, err)

	return client
}

// CommandRunner provides utilities for running asc commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes an asc command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.BinaryPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}
