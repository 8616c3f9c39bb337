package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"io/fs"
	nethttp "net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

func certificateBody(name string, content []byte) string {
	return fmt.Sprintf(`{"data":{"type":"certificates","id":"CERT1","attributes":{"name":%q,"certificateType":"DISTRIBUTION","certificateContent":%q}}}`,
		name, base64.StdEncoding.EncodeToString(content))
}

func TestCertificatesClient_Get(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.router.Get("/v1/certificates/{id}", respondJSON(nethttp.StatusOK, certificateBody("Apple Distribution", []byte("der"))))

	cert, err := api.client("").Certificates().Get(context.Background(), "CERT1")
	require.NoError(t, err)
	assert.Equal(t, "CERT1", cert.Data.ID)
	assert.Equal(t, "DISTRIBUTION", cert.Data.Attributes.CertificateType)
	assert.Equal(t, "/v1/certificates/CERT1", api.recorded()[0].Path)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestCertificatesClient_Download(t *testing.T) {
	t.Parallel()

	content := []byte{0x30, 0x82, 0x05, 0xf1, 0x30, 0x82}

	t.Run("writes decoded certificate", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)
		api.router.Get("/v1/certificates/{id}", respondJSON(nethttp.StatusOK, certificateBody("Apple Distribution", content)))

		dir := t.TempDir()

		path, err := api.client("").Certificates().Download(context.Background(), "CERT1", dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Apple Distribution.cer"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, data)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(constants.ArtifactFilePerm), info.Mode().Perm())
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)
		api.router.Get("/v1/certificates/{id}", respondJSON(nethttp.StatusOK, certificateBody("Apple Distribution", content)))

		_, err := api.client("").Certificates().Download(context.Background(), "CERT1", filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("destination is a file", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)
		api.router.Get("/v1/certificates/{id}", respondJSON(nethttp.StatusOK, certificateBody("Apple Distribution", content)))

		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0600))

		_, err := api.client("").Certificates().Download(context.Background(), "CERT1", file)
		require.ErrorIs(t, err, constants.ErrNotDirectory)
	})

	t.Run("name with path separator", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)
		api.router.Get("/v1/certificates/{id}", respondJSON(nethttp.StatusOK, certificateBody("../../etc/evil", content)))

		dir := t.TempDir()

		_, err := api.client("").Certificates().Download(context.Background(), "CERT1", dir)
		require.ErrorIs(t, err, asc.ErrPathTraversalNotAllowed)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("invalid content", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)
		api.router.Get("/v1/certificates/{id}", respondJSON(nethttp.StatusOK,
			`{"data":{"type":"certificates","id":"CERT1","attributes":{"name":"Dist","certificateContent":"%%%"}}}`))

		_, err := api.client("").Certificates().Download(context.Background(), "CERT1", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding .cer content")
	})

	t.Run("missing parameters", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)

		_, err := api.client("").Certificates().Download(context.Background(), "", "")
		require.Error(t, err)

		var paramErr *asc.InvalidParameterError
		require.ErrorAs(t, err, &paramErr)
		assert.Equal(t, []string{"certificate_id", "dir"}, paramErr.Fields)
		assert.Empty(t, api.recorded())
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)
		api.router.Get("/v1/certificates/{id}", respondJSON(nethttp.StatusNotFound, notFoundBody))

		_, err := api.client("").Certificates().Download(context.Background(), "CERT1", t.TempDir())
		require.Error(t, err)
		assert.True(t, asc.IsNotFound(err))
	})
}

func TestProfilesClient_Download(t *testing.T) {
	t.Parallel()

	content := []byte("<?xml version=\"1.0\"?><plist/>")

	t.Run("named after the profile UUID", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)
		api.router.Get("/v1/profiles/{id}", respondJSON(nethttp.StatusOK, fmt.Sprintf(
			`{"data":{"type":"profiles","id":"PROF1","attributes":{"name":"Weather AppStore","uuid":"0f3c9b8e-1111-2222-3333-444455556666","profileContent":%q}}}`,
			base64.StdEncoding.EncodeToString(content))))

		dir := t.TempDir()

		path, err := api.client("").Profiles().Download(context.Background(), "PROF1", dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "0f3c9b8e-1111-2222-3333-444455556666.mobileprovision"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, data)
	})

	t.Run("falls back to the resource id", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)
		api.router.Get("/v1/profiles/{id}", respondJSON(nethttp.StatusOK, fmt.Sprintf(
			`{"data":{"type":"profiles","id":"PROF1","attributes":{"name":"Weather","profileContent":%q}}}`,
			base64.StdEncoding.EncodeToString(content))))

		dir := t.TempDir()

		path, err := api.client("").Profiles().Download(context.Background(), "PROF1", dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "PROF1.mobileprovision"), path)
	})

	t.Run("get requires an id", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)

		_, err := api.client("").Profiles().Get(context.Background(), " ")
		require.Error(t, err)

		var paramErr *asc.InvalidParameterError
		require.ErrorAs(t, err, &paramErr)
		assert.Equal(t, []string{"profile_id"}, paramErr.Fields)
		assert.Empty(t, api.recorded())
	})
}
