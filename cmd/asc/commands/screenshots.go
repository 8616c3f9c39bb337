package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// NewScreenshotsCommand creates the review screenshots command group.
func NewScreenshotsCommand() *cobra.Command {
	return newGroupCommand("screenshots", "Manage in-app purchase review screenshots", []string{"screenshot"},
		newScreenshotsGetCommand(),
		newScreenshotsUploadCommand(),
		newScreenshotsDeleteCommand(),
	)
}

func screenshotView(screenshot asc.Resource[asc.ReviewScreenshotAttributes]) *table {
	attrs := screenshot.Attributes

	state := constants.NotAvailable
	if attrs.AssetDeliveryState != nil {
		state = attrs.AssetDeliveryState.State
	}

	view := newTable("Property", "Value")
	view.add("ID", screenshot.ID)
	view.add("File Name", attrs.FileName)
	view.add("File Size", strconv.FormatInt(attrs.FileSize, 10))
	view.add("Checksum", orNotAvailable(attrs.SourceFileChecksum))
	view.add("Delivery State", state)

	return view
}

func newScreenshotsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SCREENSHOT_ID",
		Short: "Show a review screenshot",
		Args:  cobra.ExactArgs(1),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			screenshot, err := client.ReviewScreenshots().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get screenshot: %w", err)
			}

			return render(cmd.OutOrStdout(), screenshot.Data, screenshotView(screenshot.Data))
		}),
	}
}

func newScreenshotsUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload IAP_ID FILE",
		Short: "Upload a review screenshot",
		Long:  "Reserve, upload and commit the review screenshot of an in-app purchase",
		Args:  cobra.ExactArgs(2),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			screenshot, err := client.ReviewScreenshots().Upload(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to upload screenshot: %w", err)
			}

			return render(cmd.OutOrStdout(), screenshot.Data, screenshotView(screenshot.Data))
		}),
	}
}

func newScreenshotsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete SCREENSHOT_ID",
		Short: "Delete a review screenshot",
		Args:  cobra.ExactArgs(1),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			err := client.ReviewScreenshots().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete screenshot: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted screenshot %s\n", args[0])

			return nil
		}),
	}
}
