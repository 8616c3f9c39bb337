package client

import (
	"context"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/internal/http"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// CertificatesClient implements asc.CertificatesClient.
type CertificatesClient struct {
	*CollectionClient[asc.CertificateAttributes]
}

// NewCertificatesClient creates a new certificates client.
func NewCertificatesClient(httpClient *http.Client) *CertificatesClient {
	return &CertificatesClient{
		CollectionClient: NewCollectionClient[asc.CertificateAttributes](httpClient, constants.APIPathCertificates, "certificates"),
	}
}

// Get implements asc.CertificatesClient.Get.
func (c *CertificatesClient) Get(ctx context.Context, id string) (*asc.CertificateResponse, error) {
	err := asc.RequireParams("get certificate").String("certificate_id", id).Err()
	if err != nil {
		return nil, err
	}

	return getDocument[asc.CertificateResponse](ctx, c.httpClient, resourcePath(constants.APIPathCertificates, id), "getting certificate")
}

// Download implements asc.CertificatesClient.Download.
func (c *CertificatesClient) Download(ctx context.Context, id, dir string) (string, error) {
	err := asc.RequireParams("download certificate").
		String("certificate_id", id).
		String("dir", dir).
		Err()
	if err != nil {
		return "", err
	}

	certificate, err := c.Get(ctx, id)
	if err != nil {
		return "", err
	}

	attributes := certificate.Data.Attributes

	return writeArtifact(dir, attributes.Name, constants.CertificateExtension, attributes.CertificateContent)
}
