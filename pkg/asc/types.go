package asc

import (
	"encoding/json"
	"time"
)

// Resource is a JSON:API resource object.
type Resource[A any] struct {
	Type          string                     `json:"type"                    yaml:"type"`
	ID            string                     `json:"id"                      yaml:"id"`
	Attributes    A                          `json:"attributes"              yaml:"attributes"`
	Relationships map[string]json.RawMessage `json:"relationships,omitempty" yaml:"-"`
	Links         *ResourceLinks             `json:"links,omitempty"         yaml:"links,omitempty"`
}

// ResourceLinks holds the self link of a resource.
type ResourceLinks struct {
	Self string `json:"self" yaml:"self"`
}

// DocumentLinks holds the links of a top-level document.
type DocumentLinks struct {
	Self  string `json:"self"           yaml:"self"`
	First string `json:"first,omitempty" yaml:"first,omitempty"`
	Next  string `json:"next,omitempty"  yaml:"next,omitempty"`
}

// PagingInformation is reported in the meta section of list documents.
type PagingInformation struct {
	Paging struct {
		Total int `json:"total" yaml:"total"`
		Limit int `json:"limit" yaml:"limit"`
	} `json:"paging" yaml:"paging"`
}

// Document is a JSON:API top-level document.
type Document[T any] struct {
	Data     T                  `json:"data"               yaml:"data"`
	Included []json.RawMessage  `json:"included,omitempty" yaml:"-"`
	Links    DocumentLinks      `json:"links"              yaml:"links"`
	Meta     *PagingInformation `json:"meta,omitempty"     yaml:"meta,omitempty"`
}

// AppAttributes describes an app.
type AppAttributes struct {
	Name          string `json:"name"          yaml:"name"`
	BundleID      string `json:"bundleId"      yaml:"bundleId"`
	SKU           string `json:"sku"           yaml:"sku"`
	PrimaryLocale string `json:"primaryLocale" yaml:"primaryLocale"`
}

// BuildAttributes describes a build.
type BuildAttributes struct {
	Version                 string     `json:"version"                 yaml:"version"`
	UploadedDate            *time.Time `json:"uploadedDate,omitempty"  yaml:"uploadedDate,omitempty"`
	ExpirationDate          *time.Time `json:"expirationDate,omitempty" yaml:"expirationDate,omitempty"`
	Expired                 bool       `json:"expired"                 yaml:"expired"`
	MinOSVersion            string     `json:"minOsVersion"            yaml:"minOsVersion"`
	ProcessingState         string     `json:"processingState"         yaml:"processingState"`
	UsesNonExemptEncryption *bool      `json:"usesNonExemptEncryption" yaml:"usesNonExemptEncryption"`
}

// BundleIDAttributes describes a bundle identifier.
type BundleIDAttributes struct {
	Name       string `json:"name"       yaml:"name"`
	Identifier string `json:"identifier" yaml:"identifier"`
	Platform   string `json:"platform"   yaml:"platform"`
	SeedID     string `json:"seedId"     yaml:"seedId"`
}

// CertificateAttributes describes a signing certificate.
type CertificateAttributes struct {
	Name               string     `json:"name"                     yaml:"name"`
	DisplayName        string     `json:"displayName"              yaml:"displayName"`
	CertificateType    string     `json:"certificateType"          yaml:"certificateType"`
	Platform           string     `json:"platform"                 yaml:"platform"`
	SerialNumber       string     `json:"serialNumber"             yaml:"serialNumber"`
	ExpirationDate     *time.Time `json:"expirationDate,omitempty" yaml:"expirationDate,omitempty"`
	CertificateContent string     `json:"certificateContent"       yaml:"-"`
}

// DeviceAttributes describes a registered device.
type DeviceAttributes struct {
	Name        string     `json:"name"                yaml:"name"`
	Platform    string     `json:"platform"            yaml:"platform"`
	UDID        string     `json:"udid"                yaml:"udid"`
	DeviceClass string     `json:"deviceClass"         yaml:"deviceClass"`
	Status      string     `json:"status"              yaml:"status"`
	Model       string     `json:"model"               yaml:"model"`
	AddedDate   *time.Time `json:"addedDate,omitempty" yaml:"addedDate,omitempty"`
}

// ProfileAttributes describes a provisioning profile.
type ProfileAttributes struct {
	Name           string     `json:"name"                     yaml:"name"`
	Platform       string     `json:"platform"                 yaml:"platform"`
	ProfileType    string     `json:"profileType"              yaml:"profileType"`
	ProfileState   string     `json:"profileState"             yaml:"profileState"`
	UUID           string     `json:"uuid"                     yaml:"uuid"`
	CreatedDate    *time.Time `json:"createdDate,omitempty"    yaml:"createdDate,omitempty"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty" yaml:"expirationDate,omitempty"`
	ProfileContent string     `json:"profileContent"           yaml:"-"`
}

// UserInvitationAttributes describes a pending user invitation.
type UserInvitationAttributes struct {
	Email               string     `json:"email"                    yaml:"email"`
	FirstName           string     `json:"firstName"                yaml:"firstName"`
	LastName            string     `json:"lastName"                 yaml:"lastName"`
	Roles               []string   `json:"roles"                    yaml:"roles"`
	AllAppsVisible      bool       `json:"allAppsVisible"           yaml:"allAppsVisible"`
	ProvisioningAllowed bool       `json:"provisioningAllowed"      yaml:"provisioningAllowed"`
	ExpirationDate      *time.Time `json:"expirationDate,omitempty" yaml:"expirationDate,omitempty"`
}

// InAppPurchaseAttributes describes an in-app purchase.
type InAppPurchaseAttributes struct {
	Name                      string `json:"name"                      yaml:"name"`
	ProductID                 string `json:"productId"                 yaml:"productId"`
	InAppPurchaseType         string `json:"inAppPurchaseType"         yaml:"inAppPurchaseType"`
	State                     string `json:"state"                     yaml:"state"`
	ReviewNote                string `json:"reviewNote"                yaml:"reviewNote"`
	FamilySharable            bool   `json:"familySharable"            yaml:"familySharable"`
	ContentHosting            bool   `json:"contentHosting"            yaml:"contentHosting"`
	AvailableInAllTerritories bool   `json:"availableInAllTerritories" yaml:"availableInAllTerritories"`
}

// InAppPurchaseLocalizationAttributes describes a localized name and description.
type InAppPurchaseLocalizationAttributes struct {
	Name        string `json:"name"        yaml:"name"`
	Locale      string `json:"locale"      yaml:"locale"`
	Description string `json:"description" yaml:"description"`
	State       string `json:"state"       yaml:"state"`
}

// PricePointAttributes describes a price point.
type PricePointAttributes struct {
	CustomerPrice string `json:"customerPrice" yaml:"customerPrice"`
	Proceeds      string `json:"proceeds"      yaml:"proceeds"`
}

// PriceScheduleAttributes is empty; schedules are expressed through relationships.
type PriceScheduleAttributes struct{}

// PriceAttributes describes a manual price entry.
type PriceAttributes struct {
	StartDate *string `json:"startDate" yaml:"startDate"`
	EndDate   *string `json:"endDate"   yaml:"endDate"`
	Manual    bool    `json:"manual"    yaml:"manual"`
}

// SubmissionAttributes is empty.
type SubmissionAttributes struct{}

// RequestHeader is a header an upload operation must be sent with.
type RequestHeader struct {
	Name  string `json:"name"  yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// UploadOperation describes one part of an asset upload.
type UploadOperation struct {
	Method         string          `json:"method"         yaml:"method"`
	URL            string          `json:"url"            yaml:"url"`
	Length         int64           `json:"length"         yaml:"length"`
	Offset         int64           `json:"offset"         yaml:"offset"`
	RequestHeaders []RequestHeader `json:"requestHeaders" yaml:"requestHeaders"`
}

// AssetDeliveryState reports the processing state of an uploaded asset.
type AssetDeliveryState struct {
	State  string     `json:"state"            yaml:"state"`
	Errors []APIError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ReviewScreenshotAttributes describes an App Store review screenshot.
type ReviewScreenshotAttributes struct {
	FileName           string              `json:"fileName"                     yaml:"fileName"`
	FileSize           int64               `json:"fileSize"                     yaml:"fileSize"`
	SourceFileChecksum string              `json:"sourceFileChecksum,omitempty" yaml:"sourceFileChecksum,omitempty"`
	AssetToken         string              `json:"assetToken,omitempty"         yaml:"assetToken,omitempty"`
	AssetType          string              `json:"assetType,omitempty"          yaml:"assetType,omitempty"`
	UploadOperations   []UploadOperation   `json:"uploadOperations,omitempty"   yaml:"uploadOperations,omitempty"`
	AssetDeliveryState *AssetDeliveryState `json:"assetDeliveryState,omitempty" yaml:"assetDeliveryState,omitempty"`
}

// SubscriptionGroupAttributes describes a subscription group.
type SubscriptionGroupAttributes struct {
	ReferenceName string `json:"referenceName" yaml:"referenceName"`
}

// SubscriptionGroupLocalizationAttributes describes a localized subscription group.
type SubscriptionGroupLocalizationAttributes struct {
	Name          string `json:"name"          yaml:"name"`
	CustomAppName string `json:"customAppName" yaml:"customAppName"`
	Locale        string `json:"locale"        yaml:"locale"`
	State         string `json:"state"         yaml:"state"`
}

// SubscriptionAttributes describes an auto-renewable subscription.
type SubscriptionAttributes struct {
	Name                      string `json:"name"                      yaml:"name"`
	ProductID                 string `json:"productId"                 yaml:"productId"`
	FamilySharable            bool   `json:"familySharable"            yaml:"familySharable"`
	State                     string `json:"state"                     yaml:"state"`
	SubscriptionPeriod        string `json:"subscriptionPeriod"        yaml:"subscriptionPeriod"`
	ReviewNote                string `json:"reviewNote"                yaml:"reviewNote"`
	GroupLevel                int    `json:"groupLevel"                yaml:"groupLevel"`
	AvailableInAllTerritories bool   `json:"availableInAllTerritories" yaml:"availableInAllTerritories"`
}

// Response documents.
type (
	AppsResponse                           = Document[[]Resource[AppAttributes]]
	BuildsResponse                         = Document[[]Resource[BuildAttributes]]
	BundleIDsResponse                      = Document[[]Resource[BundleIDAttributes]]
	CertificatesResponse                   = Document[[]Resource[CertificateAttributes]]
	CertificateResponse                    = Document[Resource[CertificateAttributes]]
	DevicesResponse                        = Document[[]Resource[DeviceAttributes]]
	ProfilesResponse                       = Document[[]Resource[ProfileAttributes]]
	ProfileResponse                        = Document[Resource[ProfileAttributes]]
	UserInvitationsResponse                = Document[[]Resource[UserInvitationAttributes]]
	InAppPurchasesResponse                 = Document[[]Resource[InAppPurchaseAttributes]]
	InAppPurchaseResponse                  = Document[Resource[InAppPurchaseAttributes]]
	InAppPurchaseLocalizationsResponse     = Document[[]Resource[InAppPurchaseLocalizationAttributes]]
	InAppPurchaseLocalizationResponse      = Document[Resource[InAppPurchaseLocalizationAttributes]]
	PricePointsResponse                    = Document[[]Resource[PricePointAttributes]]
	PriceScheduleResponse                  = Document[Resource[PriceScheduleAttributes]]
	PricesResponse                         = Document[[]Resource[PriceAttributes]]
	SubmissionResponse                     = Document[Resource[SubmissionAttributes]]
	ReviewScreenshotResponse               = Document[Resource[ReviewScreenshotAttributes]]
	SubscriptionGroupsResponse             = Document[[]Resource[SubscriptionGroupAttributes]]
	SubscriptionGroupResponse              = Document[Resource[SubscriptionGroupAttributes]]
	SubscriptionGroupLocalizationsResponse = Document[[]Resource[SubscriptionGroupLocalizationAttributes]]
	SubscriptionsResponse                  = Document[[]Resource[SubscriptionAttributes]]
	SubscriptionResponse                   = Document[Resource[SubscriptionAttributes]]
)
