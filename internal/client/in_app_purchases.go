package client

import (
	"context"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/internal/http"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// InAppPurchasesClient implements asc.InAppPurchasesClient.
type InAppPurchasesClient struct {
	httpClient *http.Client
	appID      string
}

// NewInAppPurchasesClient creates a new in-app purchases client. appID is used
// when an operation is called without one.
func NewInAppPurchasesClient(httpClient *http.Client, appID string) *InAppPurchasesClient {
	return &InAppPurchasesClient{
		httpClient: httpClient,
		appID:      appID,
	}
}

func (c *InAppPurchasesClient) resolveAppID(appID string) string {
	if appID != "" {
		return appID
	}

	return c.appID
}

// List implements asc.InAppPurchasesClient.List.
func (c *InAppPurchasesClient) List(ctx context.Context, appID string) (*asc.InAppPurchasesResponse, error) {
	appID = c.resolveAppID(appID)

	err := asc.RequireParams("list in-app purchases").String("app_id", appID).Err()
	if err != nil {
		return nil, err
	}

	path := resourcePath(constants.APIPathApps, appID, "inAppPurchasesV2")

	return getDocument[asc.InAppPurchasesResponse](ctx, c.httpClient, path, "listing in-app purchases")
}

// CreateNonRenewingSubscription implements asc.InAppPurchasesClient.CreateNonRenewingSubscription.
func (c *InAppPurchasesClient) CreateNonRenewingSubscription(ctx context.Context, params *asc.NonRenewingSubscriptionCreate) (*asc.InAppPurchaseResponse, error) {
	if params == nil {
		params = &asc.NonRenewingSubscriptionCreate{}
	}

	resolved := *params
	resolved.AppID = c.resolveAppID(params.AppID)

	err := resolved.Validate()
	if err != nil {
		return nil, err
	}

	return postDocument[asc.InAppPurchaseResponse](ctx, c.httpClient, constants.APIPathInAppPurchasesV2,
		resolved.Request(), "creating non-renewing subscription")
}

// ListLocalizations implements asc.InAppPurchasesClient.ListLocalizations.
func (c *InAppPurchasesClient) ListLocalizations(ctx context.Context, iapID string) (*asc.InAppPurchaseLocalizationsResponse, error) {
	err := asc.RequireParams("list in-app purchase localizations").String("iap_id", iapID).Err()
	if err != nil {
		return nil, err
	}

	path := resourcePath(constants.APIPathInAppPurchasesV2, iapID, "inAppPurchaseLocalizations")

	return getDocument[asc.InAppPurchaseLocalizationsResponse](ctx, c.httpClient, path, "listing in-app purchase localizations")
}

// CreateLocalization implements asc.InAppPurchasesClient.CreateLocalization.
func (c *InAppPurchasesClient) CreateLocalization(ctx context.Context, params *asc.InAppPurchaseLocalizationCreate) (*asc.InAppPurchaseLocalizationResponse, error) {
	if params == nil {
		params = &asc.InAppPurchaseLocalizationCreate{}
	}

	err := params.Validate()
	if err != nil {
		return nil, err
	}

	return postDocument[asc.InAppPurchaseLocalizationResponse](ctx, c.httpClient, constants.APIPathIAPLocalizations,
		params.Request(), "creating in-app purchase localization")
}

// ListPricePoints implements asc.InAppPurchasesClient.ListPricePoints.
func (c *InAppPurchasesClient) ListPricePoints(ctx context.Context, iapID string) (*asc.PricePointsResponse, error) {
	err := asc.RequireParams("list in-app purchase price points").String("iap_id", iapID).Err()
	if err != nil {
		return nil, err
	}

	path := resourcePath(constants.APIPathInAppPurchasesV2, iapID, "pricePoints")

	return getDocument[asc.PricePointsResponse](ctx, c.httpClient, path, "listing in-app purchase price points")
}

// GetPriceSchedule implements asc.InAppPurchasesClient.GetPriceSchedule.
func (c *InAppPurchasesClient) GetPriceSchedule(ctx context.Context, iapID string) (*asc.PriceScheduleResponse, error) {
	err := asc.RequireParams("get in-app purchase price schedule").String("iap_id", iapID).Err()
	if err != nil {
		return nil, err
	}

	path := resourcePath(constants.APIPathIAPPriceSchedules, iapID)

	return getDocument[asc.PriceScheduleResponse](ctx, c.httpClient, path, "getting in-app purchase price schedule")
}

// CreatePriceSchedule implements asc.InAppPurchasesClient.CreatePriceSchedule.
func (c *InAppPurchasesClient) CreatePriceSchedule(ctx context.Context, params *asc.PriceScheduleCreate) (*asc.PriceScheduleResponse, error) {
	if params == nil {
		params = &asc.PriceScheduleCreate{}
	}

	err := params.Validate()
	if err != nil {
		return nil, err
	}

	return postDocument[asc.PriceScheduleResponse](ctx, c.httpClient, constants.APIPathIAPPriceSchedules,
		params.Request(), "creating in-app purchase price schedule")
}

// ListManualPrices implements asc.InAppPurchasesClient.ListManualPrices.
func (c *InAppPurchasesClient) ListManualPrices(ctx context.Context, iapID string) (*asc.PricesResponse, error) {
	err := asc.RequireParams("list in-app purchase manual prices").String("iap_id", iapID).Err()
	if err != nil {
		return nil, err
	}

	path := resourcePath(constants.APIPathIAPPriceSchedules, iapID, "manualPrices")

	return getDocument[asc.PricesResponse](ctx, c.httpClient, path, "listing in-app purchase manual prices")
}

// SubmitForReview implements asc.InAppPurchasesClient.SubmitForReview.
func (c *InAppPurchasesClient) SubmitForReview(ctx context.Context, iapID string) (*asc.SubmissionResponse, error) {
	err := asc.RequireParams("submit in-app purchase").String("iap_id", iapID).Err()
	if err != nil {
		return nil, err
	}

	return postDocument[asc.SubmissionResponse](ctx, c.httpClient, constants.APIPathIAPSubmissions,
		asc.NewSubmissionCreateRequest(iapID), "submitting in-app purchase")
}
