package client

import (
	"context"

	"github.com/fivetwenty-io/asc/internal/http"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// CollectionClient lists a top-level resource collection.
type CollectionClient[A any] struct {
	httpClient   *http.Client
	resourcePath string
	resourceName string
}

// NewCollectionClient creates a client for the collection at resourcePath.
func NewCollectionClient[A any](httpClient *http.Client, resourcePath, resourceName string) *CollectionClient[A] {
	return &CollectionClient[A]{
		httpClient:   httpClient,
		resourcePath: resourcePath,
		resourceName: resourceName,
	}
}

// List retrieves the first page of the collection.
func (c *CollectionClient[A]) List(ctx context.Context) (*asc.Document[[]asc.Resource[A]], error) {
	return getDocument[asc.Document[[]asc.Resource[A]]](ctx, c.httpClient, c.resourcePath, "listing "+c.resourceName)
}
