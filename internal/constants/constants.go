package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600

	// ArtifactFilePerm is the permission for downloaded certificates and profiles.
	ArtifactFilePerm = 0600
)

// Token lifecycle.
const (
	// TokenAudience is the "aud" claim App Store Connect expects.
	TokenAudience = "appstoreconnect-v1"

	// TokenLifetime is the signed validity of a generated token.
	TokenLifetime = 20 * time.Minute

	// TokenRefreshAfter is the age at which a cached token is regenerated.
	TokenRefreshAfter = 15 * time.Minute
)

// Transport.
const (
	// ArchiveContentType marks gzip-compressed report payloads.
	ArchiveContentType = "application/a-gzip"

	// JSONContentType is used for request and response documents.
	JSONContentType = "application/json"

	// ArchiveChunkSize is the read size used while accumulating archive payloads.
	ArchiveChunkSize = 1024 * 1024

	// DefaultUserAgent is sent when the configuration does not override it.
	DefaultUserAgent = "asc-go"
)

// Concurrency limits.
const (
	// DefaultConcurrencyLimit limits concurrent operations.
	DefaultConcurrencyLimit = 3
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// File extensions of downloaded artifacts.
const (
	CertificateExtension = ".cer"
	ProfileExtension     = ".mobileprovision"
)

// API paths.
const (
	APIPathApps                 = "/v1/apps"
	APIPathBuilds               = "/v1/builds"
	APIPathBundleIDs            = "/v1/bundleIds"
	APIPathCertificates         = "/v1/certificates"
	APIPathDevices              = "/v1/devices"
	APIPathProfiles             = "/v1/profiles"
	APIPathUserInvitations      = "/v1/userInvitations"
	APIPathInAppPurchasesV2     = "/v2/inAppPurchases"
	APIPathIAPLocalizations     = "/v1/inAppPurchaseLocalizations"
	APIPathIAPPriceSchedules    = "/v1/inAppPurchasePriceSchedules"
	APIPathIAPSubmissions       = "/v1/inAppPurchaseSubmissions"
	APIPathIAPReviewScreenshots = "/v1/inAppPurchaseAppStoreReviewScreenshots"
	APIPathSubscriptionGroups   = "/v1/subscriptionGroups"
	APIPathSubscriptions        = "/v1/subscriptions"
)
