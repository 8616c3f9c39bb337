package client

import (
	"context"
	"crypto/md5" //nolint:gosec // the API requires an MD5 source checksum
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/internal/http"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// ReviewScreenshotsClient implements asc.ReviewScreenshotsClient.
type ReviewScreenshotsClient struct {
	httpClient *http.Client
}

// NewReviewScreenshotsClient creates a new review screenshots client.
func NewReviewScreenshotsClient(httpClient *http.Client) *ReviewScreenshotsClient {
	return &ReviewScreenshotsClient{
		httpClient: httpClient,
	}
}

// Get implements asc.ReviewScreenshotsClient.Get.
func (c *ReviewScreenshotsClient) Get(ctx context.Context, id string) (*asc.ReviewScreenshotResponse, error) {
	err := asc.RequireParams("get review screenshot").String("screenshot_id", id).Err()
	if err != nil {
		return nil, err
	}

	path := resourcePath(constants.APIPathIAPReviewScreenshots, id)

	return getDocument[asc.ReviewScreenshotResponse](ctx, c.httpClient, path, "getting review screenshot")
}

// Delete implements asc.ReviewScreenshotsClient.Delete.
func (c *ReviewScreenshotsClient) Delete(ctx context.Context, id string) error {
	err := asc.RequireParams("delete review screenshot").String("screenshot_id", id).Err()
	if err != nil {
		return err
	}

	return deleteResource(ctx, c.httpClient, resourcePath(constants.APIPathIAPReviewScreenshots, id), "deleting review screenshot")
}

// Upload implements asc.ReviewScreenshotsClient.Upload: the screenshot is
// reserved, each returned upload operation receives its slice of the file,
// and the reservation is committed with the file's MD5 checksum.
func (c *ReviewScreenshotsClient) Upload(ctx context.Context, iapID, filePath string) (*asc.ReviewScreenshotResponse, error) {
	err := asc.RequireParams("upload review screenshot").
		String("iap_id", iapID).
		String("file_path", filePath).
		Err()
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return nil, fmt.Errorf("opening screenshot: %w", err)
	}

	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading screenshot info: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotRegularFile, filePath)
	}

	contentType, checksum, err := inspectFile(file)
	if err != nil {
		return nil, err
	}

	reservation, err := postDocument[asc.ReviewScreenshotResponse](ctx, c.httpClient, constants.APIPathIAPReviewScreenshots,
		asc.NewReviewScreenshotCreateRequest(iapID, filepath.Base(filePath), info.Size()), "reserving review screenshot")
	if err != nil {
		return nil, err
	}

	operations := reservation.Data.Attributes.UploadOperations
	if len(operations) == 0 {
		return nil, fmt.Errorf("reserving review screenshot %s: %w", reservation.Data.ID, asc.ErrNoUploadOperations)
	}

	for index, operation := range operations {
		err = c.uploadPart(ctx, file, info.Size(), contentType, operation)
		if err != nil {
			return nil, fmt.Errorf("uploading part %d of %d: %w", index+1, len(operations), err)
		}
	}

	path := resourcePath(constants.APIPathIAPReviewScreenshots, reservation.Data.ID)

	return patchDocument[asc.ReviewScreenshotResponse](ctx, c.httpClient, path,
		asc.NewReviewScreenshotCommitRequest(reservation.Data.ID, checksum), "committing review screenshot")
}

// inspectFile detects the content type and computes the hex MD5 of file.
func inspectFile(file *os.File) (string, string, error) {
	detected, err := mimetype.DetectReader(io.NewSectionReader(file, 0, 1<<20))
	if err != nil {
		return "", "", fmt.Errorf("detecting screenshot type: %w", err)
	}

	hash := md5.New() //nolint:gosec // the API requires an MD5 source checksum

	_, err = io.Copy(hash, io.NewSectionReader(file, 0, 1<<62))
	if err != nil {
		return "", "", fmt.Errorf("hashing screenshot: %w", err)
	}

	return detected.String(), hex.EncodeToString(hash.Sum(nil)), nil
}

func (c *ReviewScreenshotsClient) uploadPart(ctx context.Context, file io.ReaderAt, size int64, contentType string, operation asc.UploadOperation) error {
	length := operation.Length
	if length <= 0 {
		length = size - operation.Offset
	}

	headers := make(map[string]string, len(operation.RequestHeaders))
	for _, header := range operation.RequestHeaders {
		headers[header.Name] = header.Value
	}

	upload := &http.Upload{
		Content:     io.NewSectionReader(file, operation.Offset, length),
		ContentType: contentType,
		Length:      length,
	}

	resp, err := c.httpClient.Put(ctx, operation.URL, upload, headers)
	if err != nil {
		return err
	}

	return checkResponse(resp)
}
