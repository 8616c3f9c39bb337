package asc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultBaseURL is the App Store Connect API endpoint.
const DefaultBaseURL = "https://api.appstoreconnect.apple.com"

// AppsClient lists apps.
type AppsClient interface {
	List(ctx context.Context) (*AppsResponse, error)
}

// BuildsClient lists builds.
type BuildsClient interface {
	List(ctx context.Context) (*BuildsResponse, error)
}

// BundleIDsClient lists bundle identifiers.
type BundleIDsClient interface {
	List(ctx context.Context) (*BundleIDsResponse, error)
}

// CertificatesClient provides access to signing certificates.
type CertificatesClient interface {
	List(ctx context.Context) (*CertificatesResponse, error)
	Get(ctx context.Context, id string) (*CertificateResponse, error)
	// Download writes the decoded certificate to <dir>/<name>.cer and returns the file path.
	Download(ctx context.Context, id, dir string) (string, error)
}

// DevicesClient lists registered devices.
type DevicesClient interface {
	List(ctx context.Context) (*DevicesResponse, error)
}

// ProfilesClient provides access to provisioning profiles.
type ProfilesClient interface {
	List(ctx context.Context) (*ProfilesResponse, error)
	Get(ctx context.Context, id string) (*ProfileResponse, error)
	// Download writes the decoded profile to <dir>/<uuid>.mobileprovision and returns the file path.
	Download(ctx context.Context, id, dir string) (string, error)
}

// UsersClient provides access to team users.
type UsersClient interface {
	ListInvitations(ctx context.Context) (*UserInvitationsResponse, error)
}

// InAppPurchasesClient manages in-app purchases, their localizations, and pricing.
type InAppPurchasesClient interface {
	List(ctx context.Context, appID string) (*InAppPurchasesResponse, error)
	CreateNonRenewingSubscription(ctx context.Context, params *NonRenewingSubscriptionCreate) (*InAppPurchaseResponse, error)
	ListLocalizations(ctx context.Context, iapID string) (*InAppPurchaseLocalizationsResponse, error)
	CreateLocalization(ctx context.Context, params *InAppPurchaseLocalizationCreate) (*InAppPurchaseLocalizationResponse, error)
	ListPricePoints(ctx context.Context, iapID string) (*PricePointsResponse, error)
	GetPriceSchedule(ctx context.Context, iapID string) (*PriceScheduleResponse, error)
	CreatePriceSchedule(ctx context.Context, params *PriceScheduleCreate) (*PriceScheduleResponse, error)
	ListManualPrices(ctx context.Context, iapID string) (*PricesResponse, error)
	SubmitForReview(ctx context.Context, iapID string) (*SubmissionResponse, error)
}

// ReviewScreenshotsClient manages App Store review screenshots of in-app purchases.
type ReviewScreenshotsClient interface {
	Get(ctx context.Context, id string) (*ReviewScreenshotResponse, error)
	// Upload reserves a screenshot, uploads the file and commits it.
	Upload(ctx context.Context, iapID, filePath string) (*ReviewScreenshotResponse, error)
	Delete(ctx context.Context, id string) error
}

// SubscriptionGroupsClient manages subscription groups.
type SubscriptionGroupsClient interface {
	List(ctx context.Context, appID string) (*SubscriptionGroupsResponse, error)
	Get(ctx context.Context, id string) (*SubscriptionGroupResponse, error)
	Create(ctx context.Context, params *SubscriptionGroupCreate) (*SubscriptionGroupResponse, error)
	Delete(ctx context.Context, id string) error
	ListLocalizations(ctx context.Context, id string) (*SubscriptionGroupLocalizationsResponse, error)
	ListSubscriptions(ctx context.Context, id string) (*SubscriptionsResponse, error)
}

// SubscriptionsClient manages auto-renewable subscriptions.
type SubscriptionsClient interface {
	CreateAutoRenewable(ctx context.Context, params *AutoRenewableSubscriptionCreate) (*SubscriptionResponse, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Apps() AppsClient
	Builds() BuildsClient
	BundleIDs() BundleIDsClient
	Certificates() CertificatesClient
	Devices() DevicesClient
	Profiles() ProfilesClient
	Users() UsersClient
	InAppPurchases() InAppPurchasesClient
	ReviewScreenshots() ReviewScreenshotsClient
	SubscriptionGroups() SubscriptionGroupsClient
	Subscriptions() SubscriptionsClient
}

type Client interface {
	ResourceClients

	// Fetch performs one authenticated call against an arbitrary API path.
	// The response is returned as received; gzip archives are already inflated.
	Fetch(ctx context.Context, method, path string, body interface{}) (*Response, error)

	// GetToken returns the bearer token the next request would carry.
	GetToken(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an asc.Client.
//
// # Authentication
//
// The client signs its own bearer tokens from an App Store Connect API key:
// KeyID and IssuerID identify the key, and the EC private key is taken from
// PrivateKey when set, otherwise it is read from PrivateKeyPath every time a
// token is generated. Tokens are valid for 20 minutes and are regenerated once
// they are older than 15 minutes.
//
// AccessToken bypasses signing entirely and is sent as-is. It cannot be
// refreshed.
//
// # Transport
//
// Each call performs exactly one HTTP round trip. There are no retries and no
// client-side timeout; use the context passed to each method, or supply an
// HTTPClient configured with the timeouts you need.
type Config struct {
	// BaseURL overrides DefaultBaseURL (useful for tests and proxies).
	BaseURL string

	// KeyID is the API key identifier, sent as the "kid" header.
	KeyID string
	// IssuerID is the team issuer identifier, sent as the "iss" claim.
	IssuerID string
	// PrivateKeyPath points at the .p8 PEM file downloaded from App Store Connect.
	PrivateKeyPath string
	// PrivateKey holds PEM key material directly; takes precedence over PrivateKeyPath.
	PrivateKey []byte
	// AccessToken: if set, used directly as a Bearer token.
	AccessToken string

	// AppID is the default app used by app-scoped operations. When empty,
	// ascclient.New falls back to the APP_ID environment variable.
	AppID string

	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and token issuer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// HTTPClient replaces the pooled default transport client.
	HTTPClient *http.Client
}

// Response is the outcome of a single dispatched request.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	// Decompressed reports that the server sent an application/a-gzip archive
	// and Body holds its inflated UTF-8 content.
	Decompressed bool
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v interface{}) error {
	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}

	return nil
}

