package client

import (
	"context"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/internal/http"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// SubscriptionsClient implements asc.SubscriptionsClient.
type SubscriptionsClient struct {
	httpClient *http.Client
}

// NewSubscriptionsClient creates a new subscriptions client.
func NewSubscriptionsClient(httpClient *http.Client) *SubscriptionsClient {
	return &SubscriptionsClient{
		httpClient: httpClient,
	}
}

// CreateAutoRenewable implements asc.SubscriptionsClient.CreateAutoRenewable.
func (c *SubscriptionsClient) CreateAutoRenewable(ctx context.Context, params *asc.AutoRenewableSubscriptionCreate) (*asc.SubscriptionResponse, error) {
	if params == nil {
		params = &asc.AutoRenewableSubscriptionCreate{}
	}

	err := params.Validate()
	if err != nil {
		return nil, err
	}

	return postDocument[asc.SubscriptionResponse](ctx, c.httpClient, constants.APIPathSubscriptions,
		params.Request(), "creating auto-renewable subscription")
}
