package asc

import (
	"fmt"
	"slices"
	"strings"
)

// Resource type names used in request documents.
const (
	TypeApps                          = "apps"
	TypeInAppPurchases                = "inAppPurchases"
	TypeInAppPurchaseLocalizations    = "inAppPurchaseLocalizations"
	TypeInAppPurchasePriceSchedules   = "inAppPurchasePriceSchedules"
	TypeInAppPurchasePrices           = "inAppPurchasePrices"
	TypeInAppPurchasePricePoints      = "inAppPurchasePricePoints"
	TypeInAppPurchaseSubmissions      = "inAppPurchaseSubmissions"
	TypeInAppPurchaseReviewScreenshot = "inAppPurchaseAppStoreReviewScreenshots"
	TypeSubscriptionGroups            = "subscriptionGroups"
	TypeSubscriptions                 = "subscriptions"
)

// InAppPurchaseTypeNonRenewingSubscription is the in-app purchase type of a non-renewing subscription.
const InAppPurchaseTypeNonRenewingSubscription = "NON_RENEWING_SUBSCRIPTION"

// SubscriptionPeriods lists the accepted auto-renewable subscription periods.
var SubscriptionPeriods = []string{"ONE_WEEK", "ONE_MONTH", "TWO_MONTHS", "THREE_MONTHS", "SIX_MONTHS", "ONE_YEAR"}

// ResourceIdentifier references a resource by type and id.
type ResourceIdentifier struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// ToOneRelationship is a to-one relationship in a request document.
type ToOneRelationship struct {
	Data ResourceIdentifier `json:"data"`
}

// ToManyRelationship is a to-many relationship in a request document.
type ToManyRelationship struct {
	Data []ResourceIdentifier `json:"data"`
}

func relationTo(resourceType, id string) ToOneRelationship {
	return ToOneRelationship{Data: ResourceIdentifier{ID: id, Type: resourceType}}
}

// optional maps an empty string to a JSON null.
func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

// ParamCheck accumulates missing required parameters for one operation.
type ParamCheck struct {
	operation string
	missing   []string
}

// RequireParams starts a parameter check for the named operation.
func RequireParams(operation string) *ParamCheck {
	return &ParamCheck{operation: operation}
}

// String requires a non-blank string.
func (c *ParamCheck) String(name, value string) *ParamCheck {
	if strings.TrimSpace(value) == "" {
		c.missing = append(c.missing, name)
	}

	return c
}

// Positive requires a value greater than zero.
func (c *ParamCheck) Positive(name string, value int) *ParamCheck {
	if value <= 0 {
		c.missing = append(c.missing, name)
	}

	return c
}

// Err returns an InvalidParameterError naming every missing parameter, or nil.
func (c *ParamCheck) Err() error {
	if len(c.missing) == 0 {
		return nil
	}

	return &InvalidParameterError{Operation: c.operation, Fields: c.missing}
}

// NonRenewingSubscriptionCreate holds the parameters for creating a non-renewing subscription.
type NonRenewingSubscriptionCreate struct {
	// AppID defaults to the client's configured app when empty.
	AppID      string
	Name       string
	ProductID  string
	ReviewNote string
}

// Validate checks the mandatory parameters.
func (p *NonRenewingSubscriptionCreate) Validate() error {
	return RequireParams("create non-renewing subscription").
		String("app_id", p.AppID).
		String("name", p.Name).
		String("product_id", p.ProductID).
		Err()
}

// InAppPurchaseCreateRequest is the request document for POST /v2/inAppPurchases.
type InAppPurchaseCreateRequest struct {
	Data InAppPurchaseCreateData `json:"data"`
}

type InAppPurchaseCreateData struct {
	Type          string                           `json:"type"`
	Attributes    InAppPurchaseCreateAttributes    `json:"attributes"`
	Relationships InAppPurchaseCreateRelationships `json:"relationships"`
}

type InAppPurchaseCreateAttributes struct {
	Name                      string  `json:"name"`
	ProductID                 string  `json:"productId"`
	InAppPurchaseType         string  `json:"inAppPurchaseType"`
	FamilySharable            bool    `json:"familySharable"`
	AvailableInAllTerritories bool    `json:"availableInAllTerritories"`
	ReviewNote                *string `json:"reviewNote"`
}

type InAppPurchaseCreateRelationships struct {
	App ToOneRelationship `json:"app"`
}

// Request builds the request document.
func (p *NonRenewingSubscriptionCreate) Request() *InAppPurchaseCreateRequest {
	return &InAppPurchaseCreateRequest{
		Data: InAppPurchaseCreateData{
			Type: TypeInAppPurchases,
			Attributes: InAppPurchaseCreateAttributes{
				Name:                      p.Name,
				ProductID:                 p.ProductID,
				InAppPurchaseType:         InAppPurchaseTypeNonRenewingSubscription,
				FamilySharable:            false,
				AvailableInAllTerritories: true,
				ReviewNote:                optional(p.ReviewNote),
			},
			Relationships: InAppPurchaseCreateRelationships{
				App: relationTo(TypeApps, p.AppID),
			},
		},
	}
}

// InAppPurchaseLocalizationCreate holds the parameters for localizing an in-app purchase.
type InAppPurchaseLocalizationCreate struct {
	InAppPurchaseID string
	Name            string
	Locale          string
	Description     string
}

// Validate checks the mandatory parameters.
func (p *InAppPurchaseLocalizationCreate) Validate() error {
	return RequireParams("create in-app purchase localization").
		String("iap_id", p.InAppPurchaseID).
		String("name", p.Name).
		String("locale", p.Locale).
		Err()
}

// InAppPurchaseLocalizationCreateRequest is the request document for POST /v1/inAppPurchaseLocalizations.
type InAppPurchaseLocalizationCreateRequest struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			Name        string  `json:"name"`
			Locale      string  `json:"locale"`
			Description *string `json:"description"`
		} `json:"attributes"`
		Relationships struct {
			InAppPurchaseV2 ToOneRelationship `json:"inAppPurchaseV2"`
		} `json:"relationships"`
	} `json:"data"`
}

// Request builds the request document.
func (p *InAppPurchaseLocalizationCreate) Request() *InAppPurchaseLocalizationCreateRequest {
	req := &InAppPurchaseLocalizationCreateRequest{}
	req.Data.Type = TypeInAppPurchaseLocalizations
	req.Data.Attributes.Name = p.Name
	req.Data.Attributes.Locale = p.Locale
	req.Data.Attributes.Description = optional(p.Description)
	req.Data.Relationships.InAppPurchaseV2 = relationTo(TypeInAppPurchases, p.InAppPurchaseID)

	return req
}

// PriceScheduleCreate holds the parameters for setting a manual price.
type PriceScheduleCreate struct {
	InAppPurchaseID string
	PricePointID    string
	// Price is used to name the inline price resource; it is not sent as a value.
	Price string
}

// Validate checks the mandatory parameters.
func (p *PriceScheduleCreate) Validate() error {
	return RequireParams("create in-app purchase price schedule").
		String("iap_id", p.InAppPurchaseID).
		String("price_point_id", p.PricePointID).
		String("price", p.Price).
		Err()
}

// PriceScheduleCreateRequest is the request document for POST /v1/inAppPurchasePriceSchedules.
type PriceScheduleCreateRequest struct {
	Data struct {
		Type          string `json:"type"`
		Relationships struct {
			InAppPurchase ToOneRelationship  `json:"inAppPurchase"`
			ManualPrices  ToManyRelationship `json:"manualPrices"`
		} `json:"relationships"`
	} `json:"data"`
	Included []InlinePrice `json:"included"`
}

// InlinePrice is a price resource created together with its schedule.
type InlinePrice struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes struct {
		StartDate *string `json:"startDate"`
	} `json:"attributes"`
	Relationships struct {
		InAppPurchasePricePoint ToOneRelationship `json:"inAppPurchasePricePoint"`
		InAppPurchaseV2         ToOneRelationship `json:"inAppPurchaseV2"`
	} `json:"relationships"`
}

// Request builds the request document.
func (p *PriceScheduleCreate) Request() *PriceScheduleCreateRequest {
	localID := "$" + p.Price

	price := InlinePrice{ID: localID, Type: TypeInAppPurchasePrices}
	price.Relationships.InAppPurchasePricePoint = relationTo(TypeInAppPurchasePricePoints, p.PricePointID)
	price.Relationships.InAppPurchaseV2 = relationTo(TypeInAppPurchases, p.InAppPurchaseID)

	req := &PriceScheduleCreateRequest{Included: []InlinePrice{price}}
	req.Data.Type = TypeInAppPurchasePriceSchedules
	req.Data.Relationships.InAppPurchase = relationTo(TypeInAppPurchases, p.InAppPurchaseID)
	req.Data.Relationships.ManualPrices = ToManyRelationship{
		Data: []ResourceIdentifier{{ID: localID, Type: TypeInAppPurchasePrices}},
	}

	return req
}

// SubmissionCreateRequest is the request document for POST /v1/inAppPurchaseSubmissions.
type SubmissionCreateRequest struct {
	Data struct {
		Type          string `json:"type"`
		Relationships struct {
			InAppPurchaseV2 ToOneRelationship `json:"inAppPurchaseV2"`
		} `json:"relationships"`
	} `json:"data"`
}

// NewSubmissionCreateRequest builds a review submission for an in-app purchase.
func NewSubmissionCreateRequest(iapID string) *SubmissionCreateRequest {
	req := &SubmissionCreateRequest{}
	req.Data.Type = TypeInAppPurchaseSubmissions
	req.Data.Relationships.InAppPurchaseV2 = relationTo(TypeInAppPurchases, iapID)

	return req
}

// ReviewScreenshotCreateRequest reserves a review screenshot upload.
type ReviewScreenshotCreateRequest struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			FileName string `json:"fileName"`
			FileSize int64  `json:"fileSize"`
		} `json:"attributes"`
		Relationships struct {
			InAppPurchaseV2 ToOneRelationship `json:"inAppPurchaseV2"`
		} `json:"relationships"`
	} `json:"data"`
}

// NewReviewScreenshotCreateRequest builds the reservation for a file of the given name and size.
func NewReviewScreenshotCreateRequest(iapID, fileName string, fileSize int64) *ReviewScreenshotCreateRequest {
	req := &ReviewScreenshotCreateRequest{}
	req.Data.Type = TypeInAppPurchaseReviewScreenshot
	req.Data.Attributes.FileName = fileName
	req.Data.Attributes.FileSize = fileSize
	req.Data.Relationships.InAppPurchaseV2 = relationTo(TypeInAppPurchases, iapID)

	return req
}

// ReviewScreenshotUpdateRequest commits an uploaded review screenshot.
type ReviewScreenshotUpdateRequest struct {
	Data struct {
		ID         string `json:"id"`
		Type       string `json:"type"`
		Attributes struct {
			SourceFileChecksum string `json:"sourceFileChecksum"`
			Uploaded           bool   `json:"uploaded"`
		} `json:"attributes"`
	} `json:"data"`
}

// NewReviewScreenshotCommitRequest marks the screenshot as uploaded with the file's MD5 checksum.
func NewReviewScreenshotCommitRequest(id, checksum string) *ReviewScreenshotUpdateRequest {
	req := &ReviewScreenshotUpdateRequest{}
	req.Data.ID = id
	req.Data.Type = TypeInAppPurchaseReviewScreenshot
	req.Data.Attributes.SourceFileChecksum = checksum
	req.Data.Attributes.Uploaded = true

	return req
}

// SubscriptionGroupCreate holds the parameters for creating a subscription group.
type SubscriptionGroupCreate struct {
	// AppID defaults to the client's configured app when empty.
	AppID         string
	ReferenceName string
}

// Validate checks the mandatory parameters.
func (p *SubscriptionGroupCreate) Validate() error {
	return RequireParams("create subscription group").
		String("app_id", p.AppID).
		String("name", p.ReferenceName).
		Err()
}

// SubscriptionGroupCreateRequest is the request document for POST /v1/subscriptionGroups.
type SubscriptionGroupCreateRequest struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			ReferenceName string `json:"referenceName"`
		} `json:"attributes"`
		Relationships struct {
			App ToOneRelationship `json:"app"`
		} `json:"relationships"`
	} `json:"data"`
}

// Request builds the request document.
func (p *SubscriptionGroupCreate) Request() *SubscriptionGroupCreateRequest {
	req := &SubscriptionGroupCreateRequest{}
	req.Data.Type = TypeSubscriptionGroups
	req.Data.Attributes.ReferenceName = p.ReferenceName
	req.Data.Relationships.App = relationTo(TypeApps, p.AppID)

	return req
}

// AutoRenewableSubscriptionCreate holds the parameters for creating an auto-renewable subscription.
type AutoRenewableSubscriptionCreate struct {
	GroupID            string
	Name               string
	ProductID          string
	SubscriptionPeriod string
	GroupLevel         int
	ReviewNote         string
}

// Validate checks the mandatory parameters and the subscription period.
func (p *AutoRenewableSubscriptionCreate) Validate() error {
	const operation = "create auto-renewable subscription"

	err := RequireParams(operation).
		String("sg_id", p.GroupID).
		String("name", p.Name).
		String("product_id", p.ProductID).
		String("subscription_period", p.SubscriptionPeriod).
		Positive("group_level", p.GroupLevel).
		Err()
	if err != nil {
		return err
	}

	if !slices.Contains(SubscriptionPeriods, p.SubscriptionPeriod) {
		return &InvalidParameterError{
			Operation: operation,
			Fields:    []string{"subscription_period"},
			Reason:    fmt.Sprintf("%q is not one of %s", p.SubscriptionPeriod, strings.Join(SubscriptionPeriods, ", ")),
		}
	}

	return nil
}

// SubscriptionCreateRequest is the request document for POST /v1/subscriptions.
type SubscriptionCreateRequest struct {
	Data struct {
		Type       string `json:"type"`
		Attributes struct {
			Name                      string  `json:"name"`
			ProductID                 string  `json:"productId"`
			SubscriptionPeriod        string  `json:"subscriptionPeriod"`
			GroupLevel                int     `json:"groupLevel"`
			FamilySharable            bool    `json:"familySharable"`
			AvailableInAllTerritories bool    `json:"availableInAllTerritories"`
			ReviewNote                *string `json:"reviewNote"`
		} `json:"attributes"`
		Relationships struct {
			Group ToOneRelationship `json:"group"`
		} `json:"relationships"`
	} `json:"data"`
}

// Request builds the request document.
func (p *AutoRenewableSubscriptionCreate) Request() *SubscriptionCreateRequest {
	req := &SubscriptionCreateRequest{}
	req.Data.Type = TypeSubscriptions
	req.Data.Attributes.Name = p.Name
	req.Data.Attributes.ProductID = p.ProductID
	req.Data.Attributes.SubscriptionPeriod = p.SubscriptionPeriod
	req.Data.Attributes.GroupLevel = p.GroupLevel
	req.Data.Attributes.FamilySharable = false
	req.Data.Attributes.AvailableInAllTerritories = true
	req.Data.Attributes.ReviewNote = optional(p.ReviewNote)
	req.Data.Relationships.Group = relationTo(TypeSubscriptionGroups, p.GroupID)

	return req
}
