package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/asc/internal/auth"
	"github.com/fivetwenty-io/asc/internal/http"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// Static errors for err113 compliance.
var (
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
)

// Client implements the asc.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	appID        string
	logger       asc.Logger

	// Resource clients
	apps               asc.AppsClient
	builds             asc.BuildsClient
	bundleIDs          asc.BundleIDsClient
	certificates       asc.CertificatesClient
	devices            asc.DevicesClient
	profiles           asc.ProfilesClient
	users              asc.UsersClient
	inAppPurchases     asc.InAppPurchasesClient
	reviewScreenshots  asc.ReviewScreenshotsClient
	subscriptionGroups asc.SubscriptionGroupsClient
	subscriptions      asc.SubscriptionsClient
}

// createTokenManager picks the credential source: a pre-issued token wins,
// otherwise an API key signs its own tokens.
func createTokenManager(config *asc.Config) (auth.TokenManager, error) {
	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken), nil
	}

	if config.KeyID == "" || config.IssuerID == "" {
		return nil, asc.ErrCredentialsRequired
	}

	var key auth.KeySource

	switch {
	case len(config.PrivateKey) > 0:
		key = auth.StaticKeySource(config.PrivateKey)
	case config.PrivateKeyPath != "":
		key = auth.FileKeySource(config.PrivateKeyPath)
	default:
		return nil, asc.ErrCredentialsRequired
	}

	return auth.NewIssuer(&auth.IssuerConfig{
		KeyID:    config.KeyID,
		IssuerID: config.IssuerID,
		Key:      key,
		Logger:   config.Logger,
	}), nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *asc.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	return httpOpts
}

// normalizeBaseURL applies the default endpoint and rejects anything that is
// not an absolute http(s) URL.
func normalizeBaseURL(baseURL string) (string, error) {
	if baseURL == "" {
		return asc.DefaultBaseURL, nil
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", asc.ErrInvalidBaseURL, err)
	}

	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", asc.ErrInvalidBaseURL, baseURL)
	}

	return strings.TrimSuffix(baseURL, "/"), nil
}

// New creates an App Store Connect client.
func New(config *asc.Config) (*Client, error) {
	if config == nil {
		return nil, asc.ErrConfigRequired
	}

	tokenManager, err := createTokenManager(config)
	if err != nil {
		return nil, err
	}

	return NewWithTokenManager(config, tokenManager)
}

// NewWithTokenManager creates a client that authenticates through tokenManager.
func NewWithTokenManager(config *asc.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, asc.ErrConfigRequired
	}

	baseURL, err := normalizeBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(baseURL, tokenManager, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		appID:        config.AppID,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.apps = NewAppsClient(c.httpClient)
	c.builds = NewBuildsClient(c.httpClient)
	c.bundleIDs = NewBundleIDsClient(c.httpClient)
	c.certificates = NewCertificatesClient(c.httpClient)
	c.devices = NewDevicesClient(c.httpClient)
	c.profiles = NewProfilesClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
	c.inAppPurchases = NewInAppPurchasesClient(c.httpClient, c.appID)
	c.reviewScreenshots = NewReviewScreenshotsClient(c.httpClient)
	c.subscriptionGroups = NewSubscriptionGroupsClient(c.httpClient, c.appID)
	c.subscriptions = NewSubscriptionsClient(c.httpClient)
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// BaseURL returns the API endpoint requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AppID returns the default app for app-scoped operations.
func (c *Client) AppID() string {
	return c.appID
}

// GetToken implements asc.Client.GetToken.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", ErrNoTokenManagerConfigured
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("getting token: %w", err)
	}

	return token, nil
}

// Fetch implements asc.Client.Fetch. For POST and PATCH, body is JSON encoded
// (raw bytes are sent as a JSON document). For PUT, path is an absolute upload
// URL and body is raw bytes or a reader.
func (c *Client) Fetch(ctx context.Context, method, path string, body interface{}) (*asc.Response, error) {
	req := &http.Request{
		Method: method,
		Path:   path,
	}

	if strings.EqualFold(method, "PUT") {
		req.Upload = uploadFor(body)
	} else if body != nil {
		req.Body = jsonBody(body)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}

	return resp, nil
}

func jsonBody(body interface{}) interface{} {
	if raw, ok := body.([]byte); ok {
		return json.RawMessage(raw)
	}

	return body
}

func uploadFor(body interface{}) *http.Upload {
	switch content := body.(type) {
	case []byte:
		return &http.Upload{Content: bytes.NewReader(content), Length: int64(len(content))}
	case string:
		return &http.Upload{Content: strings.NewReader(content), Length: int64(len(content))}
	case io.Reader:
		return &http.Upload{Content: content}
	default:
		return nil
	}
}

// Resource client accessors

// Apps implements asc.Client.Apps.
func (c *Client) Apps() asc.AppsClient {
	return c.apps
}

// Builds implements asc.Client.Builds.
func (c *Client) Builds() asc.BuildsClient {
	return c.builds
}

// BundleIDs implements asc.Client.BundleIDs.
func (c *Client) BundleIDs() asc.BundleIDsClient {
	return c.bundleIDs
}

// Certificates implements asc.Client.Certificates.
func (c *Client) Certificates() asc.CertificatesClient {
	return c.certificates
}

// Devices implements asc.Client.Devices.
func (c *Client) Devices() asc.DevicesClient {
	return c.devices
}

// Profiles implements asc.Client.Profiles.
func (c *Client) Profiles() asc.ProfilesClient {
	return c.profiles
}

// Users implements asc.Client.Users.
func (c *Client) Users() asc.UsersClient {
	return c.users
}

// InAppPurchases implements asc.Client.InAppPurchases.
func (c *Client) InAppPurchases() asc.InAppPurchasesClient {
	return c.inAppPurchases
}

// ReviewScreenshots implements asc.Client.ReviewScreenshots.
func (c *Client) ReviewScreenshots() asc.ReviewScreenshotsClient {
	return c.reviewScreenshots
}

// SubscriptionGroups implements asc.Client.SubscriptionGroups.
func (c *Client) SubscriptionGroups() asc.SubscriptionGroupsClient {
	return c.subscriptionGroups
}

// Subscriptions implements asc.Client.Subscriptions.
func (c *Client) Subscriptions() asc.SubscriptionsClient {
	return c.subscriptions
}
