package client

import (
	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/internal/http"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// NewAppsClient creates a client for /v1/apps.
func NewAppsClient(httpClient *http.Client) *CollectionClient[asc.AppAttributes] {
	return NewCollectionClient[asc.AppAttributes](httpClient, constants.APIPathApps, "apps")
}

// NewBuildsClient creates a client for /v1/builds.
func NewBuildsClient(httpClient *http.Client) *CollectionClient[asc.BuildAttributes] {
	return NewCollectionClient[asc.BuildAttributes](httpClient, constants.APIPathBuilds, "builds")
}

// NewBundleIDsClient creates a client for /v1/bundleIds.
func NewBundleIDsClient(httpClient *http.Client) *CollectionClient[asc.BundleIDAttributes] {
	return NewCollectionClient[asc.BundleIDAttributes](httpClient, constants.APIPathBundleIDs, "bundle IDs")
}

// NewDevicesClient creates a client for /v1/devices.
func NewDevicesClient(httpClient *http.Client) *CollectionClient[asc.DeviceAttributes] {
	return NewCollectionClient[asc.DeviceAttributes](httpClient, constants.APIPathDevices, "devices")
}
