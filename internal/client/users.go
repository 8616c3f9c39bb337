package client

import (
	"context"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/internal/http"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// UsersClient implements asc.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// ListInvitations implements asc.UsersClient.ListInvitations.
func (c *UsersClient) ListInvitations(ctx context.Context) (*asc.UserInvitationsResponse, error) {
	return getDocument[asc.UserInvitationsResponse](ctx, c.httpClient, constants.APIPathUserInvitations, "listing user invitations")
}
