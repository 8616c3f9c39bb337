package client

import (
	"context"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/internal/http"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// ProfilesClient implements asc.ProfilesClient.
type ProfilesClient struct {
	*CollectionClient[asc.ProfileAttributes]
}

// NewProfilesClient creates a new profiles client.
func NewProfilesClient(httpClient *http.Client) *ProfilesClient {
	return &ProfilesClient{
		CollectionClient: NewCollectionClient[asc.ProfileAttributes](httpClient, constants.APIPathProfiles, "profiles"),
	}
}

// Get implements asc.ProfilesClient.Get.
func (c *ProfilesClient) Get(ctx context.Context, id string) (*asc.ProfileResponse, error) {
	err := asc.RequireParams("get profile").String("profile_id", id).Err()
	if err != nil {
		return nil, err
	}

	return getDocument[asc.ProfileResponse](ctx, c.httpClient, resourcePath(constants.APIPathProfiles, id), "getting profile")
}

// Download implements asc.ProfilesClient.Download. The file is named after
// the profile UUID, which is what Xcode expects.
func (c *ProfilesClient) Download(ctx context.Context, id, dir string) (string, error) {
	err := asc.RequireParams("download profile").
		String("profile_id", id).
		String("dir", dir).
		Err()
	if err != nil {
		return "", err
	}

	profile, err := c.Get(ctx, id)
	if err != nil {
		return "", err
	}

	attributes := profile.Data.Attributes

	name := attributes.UUID
	if name == "" {
		name = profile.Data.ID
	}

	return writeArtifact(dir, name, constants.ProfileExtension, attributes.ProfileContent)
}
