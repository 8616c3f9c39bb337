package client

import (
	"bytes"
	"context"
	"crypto/md5" //nolint:gosec // checksum under test
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	nethttp "net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/asc/pkg/asc"
)

// pngFixture returns bytes with a PNG signature followed by filler.
func pngFixture(size int) []byte {
	data := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0x42}, size)...)

	return data
}

type uploadedPart struct {
	offset      string
	contentType string
	disposition string
	body        []byte
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestReviewScreenshotsClient_Upload(t *testing.T) {
	t.Parallel()

	content := pngFixture(4096)
	sum := md5.Sum(content) //nolint:gosec // checksum under test
	checksum := hex.EncodeToString(sum[:])

	filePath := filepath.Join(t.TempDir(), "review.png")
	require.NoError(t, os.WriteFile(filePath, content, 0600))

	api := newTestAPI(t)
	half := int64(len(content) / 2)

	var (
		partsMu sync.Mutex
		parts   []uploadedPart
	)

	api.router.Put("/upload/{offset}", func(writer nethttp.ResponseWriter, request *nethttp.Request) {
		body, err := io.ReadAll(request.Body)
		assert.NoError(t, err)

		partsMu.Lock()
		parts = append(parts, uploadedPart{
			offset:      chi.URLParam(request, "offset"),
			contentType: request.Header.Get("Content-Type"),
			disposition: request.Header.Get("Content-Disposition"),
			body:        body,
		})
		partsMu.Unlock()

		writer.WriteHeader(nethttp.StatusOK)
	})

	api.router.Post("/v1/inAppPurchaseAppStoreReviewScreenshots", func(writer nethttp.ResponseWriter, _ *nethttp.Request) {
		writeJSON(writer, nethttp.StatusCreated, fmt.Sprintf(`{"data":{"type":"inAppPurchaseAppStoreReviewScreenshots","id":"SHOT1","attributes":{
			"fileName":"review.png","fileSize":%d,
			"uploadOperations":[
				{"method":"PUT","url":"%s/upload/0","offset":0,"length":%d,"requestHeaders":[{"name":"Content-Disposition","value":"inline"}]},
				{"method":"PUT","url":"%s/upload/%d","offset":%d,"length":%d,"requestHeaders":[]}
			]}}}`,
			len(content), api.server.URL, half, api.server.URL, half, half, int64(len(content))-half))
	})

	api.router.Patch("/v1/inAppPurchaseAppStoreReviewScreenshots/{id}", respondJSON(nethttp.StatusOK,
		`{"data":{"type":"inAppPurchaseAppStoreReviewScreenshots","id":"SHOT1","attributes":{"fileName":"review.png","assetDeliveryState":{"state":"UPLOAD_COMPLETE"}}}}`))

	screenshot, err := api.client("").ReviewScreenshots().Upload(context.Background(), "IAP1", filePath)
	require.NoError(t, err)
	require.NotNil(t, screenshot.Data.Attributes.AssetDeliveryState)
	assert.Equal(t, "UPLOAD_COMPLETE", screenshot.Data.Attributes.AssetDeliveryState.State)

	requests := api.recorded()
	require.Len(t, requests, 4)
	assert.Equal(t, "POST", requests[0].Method)
	assert.Equal(t, "PUT", requests[1].Method)
	assert.Equal(t, "PUT", requests[2].Method)
	assert.Equal(t, "PATCH", requests[3].Method)
	assert.Equal(t, "/v1/inAppPurchaseAppStoreReviewScreenshots/SHOT1", requests[3].Path)

	var reservation asc.ReviewScreenshotCreateRequest

	api.decodeBody(0, &reservation)
	assert.Equal(t, "review.png", reservation.Data.Attributes.FileName)
	assert.Equal(t, int64(len(content)), reservation.Data.Attributes.FileSize)
	assert.Equal(t, "IAP1", reservation.Data.Relationships.InAppPurchaseV2.Data.ID)

	require.Len(t, parts, 2)
	assert.Equal(t, "0", parts[0].offset)
	assert.Equal(t, "image/png", parts[0].contentType)
	assert.Equal(t, "inline", parts[0].disposition)
	assert.Equal(t, content[:half], parts[0].body)
	assert.Equal(t, content[half:], parts[1].body)

	var commit asc.ReviewScreenshotUpdateRequest

	api.decodeBody(3, &commit)
	assert.Equal(t, "SHOT1", commit.Data.ID)
	assert.Equal(t, checksum, commit.Data.Attributes.SourceFileChecksum)
	assert.True(t, commit.Data.Attributes.Uploaded)
}

func TestReviewScreenshotsClient_UploadFailures(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)

		_, err := api.client("").ReviewScreenshots().Upload(context.Background(), "IAP1", filepath.Join(t.TempDir(), "nope.png"))
		require.ErrorIs(t, err, fs.ErrNotExist)
		assert.Empty(t, api.recorded())
	})

	t.Run("missing parameters", func(t *testing.T) {
		t.Parallel()

		api := newTestAPI(t)

		_, err := api.client("").ReviewScreenshots().Upload(context.Background(), "", "")

		var paramErr *asc.InvalidParameterError
		require.ErrorAs(t, err, &paramErr)
		assert.Equal(t, []string{"iap_id", "file_path"}, paramErr.Fields)
	})

	t.Run("no upload operations", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "review.png")
		require.NoError(t, os.WriteFile(filePath, pngFixture(16), 0600))

		api := newTestAPI(t)
		api.router.Post("/v1/inAppPurchaseAppStoreReviewScreenshots", respondJSON(nethttp.StatusCreated,
			`{"data":{"type":"inAppPurchaseAppStoreReviewScreenshots","id":"SHOT1","attributes":{"fileName":"review.png"}}}`))

		_, err := api.client("").ReviewScreenshots().Upload(context.Background(), "IAP1", filePath)
		require.ErrorIs(t, err, asc.ErrNoUploadOperations)
	})

	t.Run("rejected part stops the upload", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "review.png")
		require.NoError(t, os.WriteFile(filePath, pngFixture(16), 0600))

		api := newTestAPI(t)
		api.router.Put("/upload", func(writer nethttp.ResponseWriter, _ *nethttp.Request) {
			writer.WriteHeader(nethttp.StatusForbidden)
		})
		api.router.Post("/v1/inAppPurchaseAppStoreReviewScreenshots", func(writer nethttp.ResponseWriter, _ *nethttp.Request) {
			writeJSON(writer, nethttp.StatusCreated, fmt.Sprintf(
				`{"data":{"type":"inAppPurchaseAppStoreReviewScreenshots","id":"SHOT1","attributes":{"uploadOperations":[{"method":"PUT","url":"%s/upload","offset":0,"length":28}]}}}`,
				api.server.URL))
		})

		_, err := api.client("").ReviewScreenshots().Upload(context.Background(), "IAP1", filePath)
		require.Error(t, err)
		assert.True(t, asc.IsForbidden(err))
		assert.Contains(t, err.Error(), "uploading part 1 of 1")

		for _, request := range api.recorded() {
			assert.NotEqual(t, "PATCH", request.Method)
		}
	})
}

func TestReviewScreenshotsClient_GetAndDelete(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	api.router.Get("/v1/inAppPurchaseAppStoreReviewScreenshots/{id}", respondJSON(nethttp.StatusOK,
		`{"data":{"type":"inAppPurchaseAppStoreReviewScreenshots","id":"SHOT1","attributes":{"fileName":"review.png","fileSize":2048}}}`))
	api.router.Delete("/v1/inAppPurchaseAppStoreReviewScreenshots/{id}", func(writer nethttp.ResponseWriter, _ *nethttp.Request) {
		writer.WriteHeader(nethttp.StatusNoContent)
	})

	screenshots := api.client("").ReviewScreenshots()

	screenshot, err := screenshots.Get(context.Background(), "SHOT1")
	require.NoError(t, err)
	assert.Equal(t, int64(2048), screenshot.Data.Attributes.FileSize)

	require.NoError(t, screenshots.Delete(context.Background(), "SHOT1"))

	requests := api.recorded()
	require.Len(t, requests, 2)
	assert.Equal(t, "DELETE", requests[1].Method)
	assert.Equal(t, "/v1/inAppPurchaseAppStoreReviewScreenshots/SHOT1", requests[1].Path)
}
