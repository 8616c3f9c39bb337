package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/asc/pkg/asc"
)

// newListCommand builds a "list" subcommand that renders a collection.
func newListCommand[A any](
	short, what string,
	list func(ctx context.Context, client asc.Client) (*asc.Document[[]asc.Resource[A]], error),
	view func([]asc.Resource[A]) *table,
) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			doc, err := list(cmd.Context(), client)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", what, err)
			}

			return render(cmd.OutOrStdout(), doc.Data, view(doc.Data))
		}),
	}
}

// newReadCommand builds a command that fetches one document for the id in its first argument.
func newReadCommand[D any](
	use, short string,
	fetch func(ctx context.Context, client asc.Client, id string) (*D, error),
	view func(*D) *table,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			doc, err := fetch(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), doc, view(doc))
		}),
	}
}

// newGroupCommand creates a resource command group.
func newGroupCommand(use, short string, aliases []string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short,
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// NewAppsCommand creates the apps command group.
func NewAppsCommand() *cobra.Command {
	return newGroupCommand("apps", "Manage apps", []string{"app"},
		newListCommand("List apps", "apps",
			func(ctx context.Context, client asc.Client) (*asc.AppsResponse, error) {
				return client.Apps().List(ctx)
			},
			func(apps []asc.Resource[asc.AppAttributes]) *table {
				view := newTable("ID", "Name", "Bundle ID", "SKU", "Primary Locale")
				for _, app := range apps {
					view.add(app.ID, app.Attributes.Name, app.Attributes.BundleID, app.Attributes.SKU, app.Attributes.PrimaryLocale)
				}

				return view
			}),
	)
}

// NewBuildsCommand creates the builds command group.
func NewBuildsCommand() *cobra.Command {
	return newGroupCommand("builds", "Manage builds", []string{"build"},
		newListCommand("List builds", "builds",
			func(ctx context.Context, client asc.Client) (*asc.BuildsResponse, error) {
				return client.Builds().List(ctx)
			},
			func(builds []asc.Resource[asc.BuildAttributes]) *table {
				view := newTable("ID", "Version", "State", "Uploaded", "Expired")
				for _, build := range builds {
					view.add(build.ID, build.Attributes.Version, build.Attributes.ProcessingState,
						formatTime(build.Attributes.UploadedDate), formatBool(build.Attributes.Expired))
				}

				return view
			}),
	)
}

// NewBundleIDsCommand creates the bundle-ids command group.
func NewBundleIDsCommand() *cobra.Command {
	return newGroupCommand("bundle-ids", "Manage bundle identifiers", []string{"bundle-id"},
		newListCommand("List bundle identifiers", "bundle IDs",
			func(ctx context.Context, client asc.Client) (*asc.BundleIDsResponse, error) {
				return client.BundleIDs().List(ctx)
			},
			func(bundleIDs []asc.Resource[asc.BundleIDAttributes]) *table {
				view := newTable("ID", "Name", "Identifier", "Platform")
				for _, bundleID := range bundleIDs {
					view.add(bundleID.ID, bundleID.Attributes.Name, bundleID.Attributes.Identifier, bundleID.Attributes.Platform)
				}

				return view
			}),
	)
}

// NewDevicesCommand creates the devices command group.
func NewDevicesCommand() *cobra.Command {
	return newGroupCommand("devices", "Manage registered devices", []string{"device"},
		newListCommand("List devices", "devices",
			func(ctx context.Context, client asc.Client) (*asc.DevicesResponse, error) {
				return client.Devices().List(ctx)
			},
			func(devices []asc.Resource[asc.DeviceAttributes]) *table {
				view := newTable("ID", "Name", "Platform", "UDID", "Class", "Status")
				for _, device := range devices {
					attrs := device.Attributes
					view.add(device.ID, attrs.Name, attrs.Platform, attrs.UDID, attrs.DeviceClass, attrs.Status)
				}

				return view
			}),
	)
}

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	return newGroupCommand("users", "Manage team users", []string{"user"},
		newListCommand("List pending user invitations", "user invitations",
			func(ctx context.Context, client asc.Client) (*asc.UserInvitationsResponse, error) {
				return client.Users().ListInvitations(ctx)
			},
			func(invitations []asc.Resource[asc.UserInvitationAttributes]) *table {
				view := newTable("ID", "Email", "Name", "Roles", "Expires")
				for _, invitation := range invitations {
					attrs := invitation.Attributes
					view.add(invitation.ID, attrs.Email, strings.TrimSpace(attrs.FirstName+" "+attrs.LastName),
						strings.Join(attrs.Roles, ", "), formatTime(attrs.ExpirationDate))
				}

				return view
			}),
	)
}
