package client

import (
	"context"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/internal/http"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// SubscriptionGroupsClient implements asc.SubscriptionGroupsClient.
type SubscriptionGroupsClient struct {
	httpClient *http.Client
	appID      string
}

// NewSubscriptionGroupsClient creates a new subscription groups client.
func NewSubscriptionGroupsClient(httpClient *http.Client, appID string) *SubscriptionGroupsClient {
	return &SubscriptionGroupsClient{
		httpClient: httpClient,
		appID:      appID,
	}
}

// List implements asc.SubscriptionGroupsClient.List.
func (c *SubscriptionGroupsClient) List(ctx context.Context, appID string) (*asc.SubscriptionGroupsResponse, error) {
	if appID == "" {
		appID = c.appID
	}

	err := asc.RequireParams("list subscription groups").String("app_id", appID).Err()
	if err != nil {
		return nil, err
	}

	path := resourcePath(constants.APIPathApps, appID, "subscriptionGroups")

	return getDocument[asc.SubscriptionGroupsResponse](ctx, c.httpClient, path, "listing subscription groups")
}

// Get implements asc.SubscriptionGroupsClient.Get.
func (c *SubscriptionGroupsClient) Get(ctx context.Context, id string) (*asc.SubscriptionGroupResponse, error) {
	err := asc.RequireParams("get subscription group").String("sg_id", id).Err()
	if err != nil {
		return nil, err
	}

	path := resourcePath(constants.APIPathSubscriptionGroups, id)

	return getDocument[asc.SubscriptionGroupResponse](ctx, c.httpClient, path, "getting subscription group")
}

// Create implements asc.SubscriptionGroupsClient.Create.
func (c *SubscriptionGroupsClient) Create(ctx context.Context, params *asc.SubscriptionGroupCreate) (*asc.SubscriptionGroupResponse, error) {
	if params == nil {
		params = &asc.SubscriptionGroupCreate{}
	}

	resolved := *params
	if resolved.AppID == "" {
		resolved.AppID = c.appID
	}

	err := resolved.Validate()
	if err != nil {
		return nil, err
	}

	return postDocument[asc.SubscriptionGroupResponse](ctx, c.httpClient, constants.APIPathSubscriptionGroups,
		resolved.Request(), "creating subscription group")
}

// Delete implements asc.SubscriptionGroupsClient.Delete.
func (c *SubscriptionGroupsClient) Delete(ctx context.Context, id string) error {
	err := asc.RequireParams("delete subscription group").String("sg_id", id).Err()
	if err != nil {
		return err
	}

	return deleteResource(ctx, c.httpClient, resourcePath(constants.APIPathSubscriptionGroups, id), "deleting subscription group")
}

// ListLocalizations implements asc.SubscriptionGroupsClient.ListLocalizations.
func (c *SubscriptionGroupsClient) ListLocalizations(ctx context.Context, id string) (*asc.SubscriptionGroupLocalizationsResponse, error) {
	err := asc.RequireParams("list subscription group localizations").String("sg_id", id).Err()
	if err != nil {
		return nil, err
	}

	path := resourcePath(constants.APIPathSubscriptionGroups, id, "subscriptionGroupLocalizations")

	return getDocument[asc.SubscriptionGroupLocalizationsResponse](ctx, c.httpClient, path, "listing subscription group localizations")
}

// ListSubscriptions implements asc.SubscriptionGroupsClient.ListSubscriptions.
func (c *SubscriptionGroupsClient) ListSubscriptions(ctx context.Context, id string) (*asc.SubscriptionsResponse, error) {
	err := asc.RequireParams("list subscriptions").String("sg_id", id).Err()
	if err != nil {
		return nil, err
	}

	path := resourcePath(constants.APIPathSubscriptionGroups, id, "subscriptions")

	return getDocument[asc.SubscriptionsResponse](ctx, c.httpClient, path, "listing subscriptions")
}
