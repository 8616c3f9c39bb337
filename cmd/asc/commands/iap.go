package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// NewIAPCommand creates the in-app purchases command group.
func NewIAPCommand() *cobra.Command {
	return newGroupCommand("iap", "Manage in-app purchases", []string{"in-app-purchases"},
		newIAPListCommand(),
		newIAPCreateCommand(),
		newIAPLocalizationsCommand(),
		newIAPCreateLocalizationCommand(),
		newIAPPricePointsCommand(),
		newIAPPriceScheduleCommand(),
		newIAPCreatePriceScheduleCommand(),
		newIAPManualPricesCommand(),
		newIAPSubmitCommand(),
	)
}

func iapView(purchases []asc.Resource[asc.InAppPurchaseAttributes]) *table {
	view := newTable("ID", "Name", "Product ID", "Type", "State")
	for _, purchase := range purchases {
		attrs := purchase.Attributes
		view.add(purchase.ID, attrs.Name, attrs.ProductID, attrs.InAppPurchaseType, orNotAvailable(attrs.State))
	}

	return view
}

func newIAPListCommand() *cobra.Command {
	var appID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List in-app purchases of an app",
		Long:  "List in-app purchases of --app-id, or of the configured app",
		Args:  cobra.NoArgs,
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			purchases, err := client.InAppPurchases().List(cmd.Context(), appID)
			if err != nil {
				return fmt.Errorf("failed to list in-app purchases: %w", err)
			}

			return render(cmd.OutOrStdout(), purchases.Data, iapView(purchases.Data))
		}),
	}

	cmd.Flags().StringVar(&appID, "app-id", "", "app ID (defaults to the configured app)")

	return cmd
}

func newIAPCreateCommand() *cobra.Command {
	params := &asc.NonRenewingSubscriptionCreate{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a non-renewing subscription",
		Long:  "Create a non-renewing subscription available in all territories",
		Args:  cobra.NoArgs,
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			created, err := client.InAppPurchases().CreateNonRenewingSubscription(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to create in-app purchase: %w", err)
			}

			return render(cmd.OutOrStdout(), created.Data, iapView([]asc.Resource[asc.InAppPurchaseAttributes]{created.Data}))
		}),
	}

	cmd.Flags().StringVar(&params.AppID, "app-id", "", "app ID (defaults to the configured app)")
	cmd.Flags().StringVar(&params.Name, "name", "", "reference name")
	cmd.Flags().StringVar(&params.ProductID, "product-id", "", "product identifier")
	cmd.Flags().StringVar(&params.ReviewNote, "review-note", "", "note for App Review")

	return cmd
}

func localizationsView(localizations []asc.Resource[asc.InAppPurchaseLocalizationAttributes]) *table {
	view := newTable("ID", "Locale", "Name", "Description", "State")
	for _, localization := range localizations {
		attrs := localization.Attributes
		view.add(localization.ID, attrs.Locale, attrs.Name, attrs.Description, orNotAvailable(attrs.State))
	}

	return view
}

func newIAPLocalizationsCommand() *cobra.Command {
	return newReadCommand("localizations IAP_ID", "List localizations of an in-app purchase",
		func(ctx context.Context, client asc.Client, iapID string) (*asc.InAppPurchaseLocalizationsResponse, error) {
			return client.InAppPurchases().ListLocalizations(ctx, iapID)
		},
		func(doc *asc.InAppPurchaseLocalizationsResponse) *table {
			return localizationsView(doc.Data)
		})
}

func newIAPCreateLocalizationCommand() *cobra.Command {
	params := &asc.InAppPurchaseLocalizationCreate{}

	cmd := &cobra.Command{
		Use:   "create-localization IAP_ID",
		Short: "Localize an in-app purchase",
		Args:  cobra.ExactArgs(1),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			params.InAppPurchaseID = args[0]

			created, err := client.InAppPurchases().CreateLocalization(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to create localization: %w", err)
			}

			view := localizationsView([]asc.Resource[asc.InAppPurchaseLocalizationAttributes]{created.Data})

			return render(cmd.OutOrStdout(), created.Data, view)
		}),
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "localized display name")
	cmd.Flags().StringVar(&params.Locale, "locale", "", "locale, for example en-US")
	cmd.Flags().StringVar(&params.Description, "description", "", "localized description")

	return cmd
}

func newIAPPricePointsCommand() *cobra.Command {
	return newReadCommand("price-points IAP_ID", "List price points of an in-app purchase",
		func(ctx context.Context, client asc.Client, iapID string) (*asc.PricePointsResponse, error) {
			return client.InAppPurchases().ListPricePoints(ctx, iapID)
		},
		func(doc *asc.PricePointsResponse) *table {
			view := newTable("ID", "Customer Price", "Proceeds")
			for _, point := range doc.Data {
				view.add(point.ID, point.Attributes.CustomerPrice, point.Attributes.Proceeds)
			}

			return view
		})
}

func newIAPPriceScheduleCommand() *cobra.Command {
	return newReadCommand("price-schedule IAP_ID", "Show the price schedule of an in-app purchase",
		func(ctx context.Context, client asc.Client, iapID string) (*asc.PriceScheduleResponse, error) {
			return client.InAppPurchases().GetPriceSchedule(ctx, iapID)
		},
		func(doc *asc.PriceScheduleResponse) *table {
			view := newTable("ID", "Type")
			view.add(doc.Data.ID, doc.Data.Type)

			return view
		})
}

func newIAPCreatePriceScheduleCommand() *cobra.Command {
	params := &asc.PriceScheduleCreate{}

	cmd := &cobra.Command{
		Use:   "create-price-schedule IAP_ID",
		Short: "Set the manual price of an in-app purchase",
		Long:  "Create a price schedule with a single manual price starting immediately",
		Args:  cobra.ExactArgs(1),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			params.InAppPurchaseID = args[0]

			created, err := client.InAppPurchases().CreatePriceSchedule(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to create price schedule: %w", err)
			}

			view := newTable("ID", "Type")
			view.add(created.Data.ID, created.Data.Type)

			return render(cmd.OutOrStdout(), created.Data, view)
		}),
	}

	cmd.Flags().StringVar(&params.PricePointID, "price-point-id", "", "price point ID from 'iap price-points'")
	cmd.Flags().StringVar(&params.Price, "price", "", "customer price, for example 0.99")

	return cmd
}

func newIAPManualPricesCommand() *cobra.Command {
	return newReadCommand("manual-prices IAP_ID", "List manual prices of an in-app purchase",
		func(ctx context.Context, client asc.Client, iapID string) (*asc.PricesResponse, error) {
			return client.InAppPurchases().ListManualPrices(ctx, iapID)
		},
		func(doc *asc.PricesResponse) *table {
			view := newTable("ID", "Start", "End", "Manual")
			for _, price := range doc.Data {
				view.add(price.ID, optionalDate(price.Attributes.StartDate), optionalDate(price.Attributes.EndDate),
					formatBool(price.Attributes.Manual))
			}

			return view
		})
}

func newIAPSubmitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "submit IAP_ID",
		Short: "Submit an in-app purchase for review",
		Args:  cobra.ExactArgs(1),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			submission, err := client.InAppPurchases().SubmitForReview(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to submit in-app purchase: %w", err)
			}

			view := newTable("ID", "Type")
			view.add(submission.Data.ID, submission.Data.Type)

			return render(cmd.OutOrStdout(), submission.Data, view)
		}),
	}
}

func optionalDate(value *string) string {
	if value == nil {
		return constants.NotAvailable
	}

	return *value
}
