package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/asc/pkg/asc"
)

// NewTokenCommand creates the token command.
func NewTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token",
		Long:  "Sign a token with the configured API key and print it, for use with curl and other tools",
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			token, err := client.GetToken(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get token: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)

			return nil
		}),
	}
}
