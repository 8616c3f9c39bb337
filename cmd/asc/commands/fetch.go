package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

// NewFetchCommand creates the fetch command.
func NewFetchCommand() *cobra.Command {
	var (
		data    string
		file    string
		include bool
	)

	cmd := &cobra.Command{
		Use:   "fetch METHOD PATH",
		Short: "Call an arbitrary API path",
		Long: `Perform one authenticated request and print the response body as received.

Compressed report downloads (application/a-gzip) are inflated before printing.
For PUT, PATH is the absolute upload URL and --file supplies the body.`,
		Example: `  asc fetch GET /v1/apps
  asc fetch GET "/v1/salesReports?filter[frequency]=DAILY&filter[reportType]=SALES&filter[reportSubType]=SUMMARY&filter[vendorNumber]=12345678"
  asc fetch PATCH /v1/apps/123 --data '{"data":{"type":"apps","id":"123","attributes":{}}}'`,
		Args: cobra.ExactArgs(2),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			method, path := args[0], args[1]

			body, err := fetchBody(data, file)
			if err != nil {
				return err
			}

			resp, err := client.Fetch(cmd.Context(), method, path, body)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if include {
				_, _ = fmt.Fprintf(out, "HTTP %d\n", resp.StatusCode)
			}

			_, _ = out.Write(resp.Body)

			if !resp.IsSuccess() {
				return asc.ParseResponseError(resp.StatusCode, resp.Body)
			}

			return nil
		}),
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file to send as the request body")
	cmd.Flags().BoolVarP(&include, "include", "i", false, "print the status line before the body")

	return cmd
}

// fetchBody returns the request body for --data or --file, or nil for none.
func fetchBody(data, file string) (interface{}, error) {
	if data != "" {
		if !json.Valid([]byte(data)) {
			return nil, constants.ErrInvalidJSONData
		}

		return []byte(data), nil
	}

	if file != "" {
		// #nosec G304 -- the path is supplied by the operator
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}

		return content, nil
	}

	return nil, nil
}
