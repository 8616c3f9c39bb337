package commands

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// NewProfilesCommand creates the profiles command group.
func NewProfilesCommand() *cobra.Command {
	return newGroupCommand("profiles", "Manage provisioning profiles", []string{"profile"},
		newListCommand("List provisioning profiles", "profiles",
			func(ctx context.Context, client asc.Client) (*asc.ProfilesResponse, error) {
				return client.Profiles().List(ctx)
			},
			func(profiles []asc.Resource[asc.ProfileAttributes]) *table {
				view := newTable("ID", "Name", "Type", "State", "UUID", "Expires")
				for _, profile := range profiles {
					attrs := profile.Attributes
					view.add(profile.ID, attrs.Name, attrs.ProfileType, attrs.ProfileState,
						attrs.UUID, formatTime(attrs.ExpirationDate))
				}

				return view
			}),
		newProfilesDownloadCommand(),
	)
}

func newProfilesDownloadCommand() *cobra.Command {
	var (
		dir string
		all bool
	)

	cmd := &cobra.Command{
		Use:   "download [PROFILE_ID]",
		Short: "Download provisioning profiles",
		Long:  "Write a profile, or every profile with --all, to <dir>/<uuid>.mobileprovision",
		Args:  cobra.MaximumNArgs(1),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			if all == (len(args) == 1) {
				return ErrProfileSelection
			}

			ids := args
			if all {
				profiles, err := client.Profiles().List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list profiles: %w", err)
				}

				ids = make([]string, 0, len(profiles.Data))
				for _, profile := range profiles.Data {
					ids = append(ids, profile.ID)
				}
			}

			paths, err := downloadProfiles(cmd.Context(), client.Profiles(), ids, dir)
			if err != nil {
				return err
			}

			for _, path := range paths {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			return nil
		}),
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "existing directory to write profiles to")
	cmd.Flags().BoolVar(&all, "all", false, "download every profile")

	return cmd
}

// downloadProfiles downloads ids concurrently and returns the written paths in input order.
// The first failure cancels the remaining downloads.
func downloadProfiles(ctx context.Context, profiles asc.ProfilesClient, ids []string, dir string) ([]string, error) {
	paths := make([]string, len(ids))

	downloads := pool.New().
		WithMaxGoroutines(constants.DefaultConcurrencyLimit).
		WithContext(ctx).
		WithCancelOnError()

	for i, id := range ids {
		downloads.Go(func(ctx context.Context) error {
			path, err := profiles.Download(ctx, id, dir)
			if err != nil {
				return fmt.Errorf("downloading profile %s: %w", id, err)
			}

			paths[i] = path

			return nil
		})
	}

	err := downloads.Wait()
	if err != nil {
		return nil, err
	}

	return paths, nil
}
