package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/asc/pkg/asc"
)

// NewCertificatesCommand creates the certificates command group.
func NewCertificatesCommand() *cobra.Command {
	return newGroupCommand("certificates", "Manage signing certificates", []string{"certificate", "certs"},
		newListCommand("List certificates", "certificates",
			func(ctx context.Context, client asc.Client) (*asc.CertificatesResponse, error) {
				return client.Certificates().List(ctx)
			},
			func(certificates []asc.Resource[asc.CertificateAttributes]) *table {
				view := newTable("ID", "Name", "Type", "Platform", "Serial Number", "Expires")
				for _, certificate := range certificates {
					attrs := certificate.Attributes
					view.add(certificate.ID, attrs.Name, attrs.CertificateType, attrs.Platform,
						attrs.SerialNumber, formatTime(attrs.ExpirationDate))
				}

				return view
			}),
		newCertificatesDownloadCommand(),
	)
}

func newCertificatesDownloadCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "download CERTIFICATE_ID",
		Short: "Download a certificate",
		Long:  "Write the certificate to <dir>/<name>.cer",
		Args:  cobra.ExactArgs(1),
		RunE: clientRunE(func(cmd *cobra.Command, client asc.Client, args []string) error {
			path, err := client.Certificates().Download(cmd.Context(), args[0], dir)
			if err != nil {
				return fmt.Errorf("failed to download certificate: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		}),
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "existing directory to write the certificate to")

	return cmd
}
