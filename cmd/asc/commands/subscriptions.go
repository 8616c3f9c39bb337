package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/asc/pkg/asc"
)

// NewSubscriptionGroupsCommand creates the subscription groups command group.
func NewSubscriptionGroupsCommand() *cobra.Command {
	return newGroupCommand("subscription-groups", "Manage subscription groups", []string{"sg"},
		newSubscriptionGroupsListCommand(),
		newSubscriptionGroupsGetCommand(),
		newSubscriptionGroupsCreateCommand(),
		newSubscriptionGroupsDeleteCommand(),
		newSubscriptionGroupsLocalizationsCommand(),
		newSubscriptionGroupsSubscriptionsCommand(),
	)
}

func groupsView(groups []asc.Resource[asc.SubscriptionGroupAttributes]) *table {
	view := newTable("ID", "Reference Name")
	for _, group := range groups {
		view.add(group.ID, group.Attributes.ReferenceName)
	}

	return view
}

func subscriptionsView(subscriptions []asc.Resource[asc.SubscriptionAttributes]) *table {
	view := newTable("ID", "Name", "Product ID", "Period", "Level", "State")
	for _, subscription := range subscriptions {
		attrs := subscription.Attributes
		view.add(subscription.ID, attrs.Name, attrs.ProductID, attrs.SubscriptionPeriod,
			strconv.Itoa(attrs.GroupLevel), orNotAvailable(attrs.State))
	}

	return view
}

func newSubscriptionGroupsListCommand() *cobra.Command {
	var appID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscription groups of an app",
		Long:  "List subscription groups of --app-id, or of the configured app",
		Args:  cobra.NoArgs,
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			groups, err := client.SubscriptionGroups().List(cmd.Context(), appID)
			if err != nil {
				return fmt.Errorf("failed to list subscription groups: %w", err)
			}

			return render(cmd.OutOrStdout(), groups.Data, groupsView(groups.Data))
		}),
	}

	cmd.Flags().StringVar(&appID, "app-id", "", "app ID (defaults to the configured app)")

	return cmd
}

func newSubscriptionGroupsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get GROUP_ID",
		Short: "Show a subscription group",
		Args:  cobra.ExactArgs(1),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			group, err := client.SubscriptionGroups().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get subscription group: %w", err)
			}

			return render(cmd.OutOrStdout(), group.Data, groupsView([]asc.Resource[asc.SubscriptionGroupAttributes]{group.Data}))
		}),
	}
}

func newSubscriptionGroupsCreateCommand() *cobra.Command {
	params := &asc.SubscriptionGroupCreate{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a subscription group",
		Args:  cobra.NoArgs,
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			group, err := client.SubscriptionGroups().Create(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to create subscription group: %w", err)
			}

			return render(cmd.OutOrStdout(), group.Data, groupsView([]asc.Resource[asc.SubscriptionGroupAttributes]{group.Data}))
		}),
	}

	cmd.Flags().StringVar(&params.AppID, "app-id", "", "app ID (defaults to the configured app)")
	cmd.Flags().StringVar(&params.ReferenceName, "name", "", "reference name")

	return cmd
}

func newSubscriptionGroupsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete GROUP_ID",
		Short: "Delete a subscription group",
		Args:  cobra.ExactArgs(1),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			err := client.SubscriptionGroups().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete subscription group: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted subscription group %s\n", args[0])

			return nil
		}),
	}
}

func newSubscriptionGroupsLocalizationsCommand() *cobra.Command {
	return newReadCommand("localizations GROUP_ID", "List localizations of a subscription group",
		func(ctx context.Context, client asc.Client, groupID string) (*asc.SubscriptionGroupLocalizationsResponse, error) {
			return client.SubscriptionGroups().ListLocalizations(ctx, groupID)
		},
		func(doc *asc.SubscriptionGroupLocalizationsResponse) *table {
			view := newTable("ID", "Locale", "Name", "Custom App Name", "State")
			for _, localization := range doc.Data {
				attrs := localization.Attributes
				view.add(localization.ID, attrs.Locale, attrs.Name, attrs.CustomAppName, orNotAvailable(attrs.State))
			}

			return view
		})
}

func newSubscriptionGroupsSubscriptionsCommand() *cobra.Command {
	return newReadCommand("subscriptions GROUP_ID", "List subscriptions in a group",
		func(ctx context.Context, client asc.Client, groupID string) (*asc.SubscriptionsResponse, error) {
			return client.SubscriptionGroups().ListSubscriptions(ctx, groupID)
		},
		func(doc *asc.SubscriptionsResponse) *table {
			return subscriptionsView(doc.Data)
		})
}

// NewSubscriptionsCommand creates the subscriptions command group.
func NewSubscriptionsCommand() *cobra.Command {
	return newGroupCommand("subscriptions", "Manage auto-renewable subscriptions", []string{"subscription"},
		newSubscriptionsCreateCommand(),
	)
}

func newSubscriptionsCreateCommand() *cobra.Command {
	params := &asc.AutoRenewableSubscriptionCreate{}

	cmd := &cobra.Command{
		Use:   "create GROUP_ID",
		Short: "Create an auto-renewable subscription",
		Long:  "Create an auto-renewable subscription in a group. Periods: " + strings.Join(asc.SubscriptionPeriods, ", "),
		Args:  cobra.ExactArgs(1),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			params.GroupID = args[0]

			created, err := client.Subscriptions().CreateAutoRenewable(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to create subscription: %w", err)
			}

			return render(cmd.OutOrStdout(), created.Data, subscriptionsView([]asc.Resource[asc.SubscriptionAttributes]{created.Data}))
		}),
	}

	cmd.Flags().StringVar(&params.Name, "name", "", "reference name")
	cmd.Flags().StringVar(&params.ProductID, "product-id", "", "product identifier")
	cmd.Flags().StringVar(&params.SubscriptionPeriod, "period", "ONE_MONTH", "subscription period")
	cmd.Flags().IntVar(&params.GroupLevel, "group-level", 1, "level within the group, 1 is the highest")
	cmd.Flags().StringVar(&params.ReviewNote, "review-note", "", "note for App Review")

	return cmd
}
