package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-logr/stdr"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/asc/internal/constants"
	"github.com/fivetwenty-io/asc/pkg/asc"
	"github.com/fivetwenty-io/asc/pkg/ascclient"
)

// ErrProfileSelection is returned when profiles download gets both or neither of an id and --all.
var ErrProfileSelection = errors.New("specify either a PROFILE_ID or --all")

// Version is reported in the User-Agent header; main overrides it at build time.
var Version = "dev"

const (
	defaultJSONIndent = "  "
	dateLayout        = "2006-01-02 15:04:05"
)

// table is a rendered view of a result: column headers plus one row per item.
type table struct {
	headers []any
	rows    [][]string
}

func newTable(headers ...any) *table {
	return &table{headers: headers}
}

func (t *table) add(row ...string) {
	t.rows = append(t.rows, row)
}

// outputFormat returns --output when set, otherwise table on a terminal and json when piped.
func outputFormat() string {
	if format := viper.GetString("output"); format != "" {
		return format
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return constants.FormatTable
	}

	return constants.FormatJSON
}

// render writes data as json or yaml, or view as a table.
func render(writer io.Writer, data interface{}, view *table) error {
	switch format := outputFormat(); format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", defaultJSONIndent)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}

		return nil
	case constants.FormatYAML:
		err := yaml.NewEncoder(writer).Encode(data)
		if err != nil {
			return fmt.Errorf("encoding YAML output: %w", err)
		}

		return nil
	case constants.FormatTable:
		return renderTable(writer, view)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedOutputFormat, format)
	}
}

func renderTable(writer io.Writer, view *table) error {
	if len(view.rows) == 0 {
		_, _ = fmt.Fprintln(writer, "No results found")

		return nil
	}

	tbl := tablewriter.NewWriter(writer)
	tbl.Header(view.headers...)

	for _, row := range view.rows {
		_ = tbl.Append(row)
	}

	err := tbl.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// newLogger returns a stderr logger; verbose output includes request tracing.
func newLogger(verbose bool) asc.Logger {
	if verbose {
		stdr.SetVerbosity(1)
	}

	return asc.NewLogrLogger(stdr.New(log.New(os.Stderr, "", log.LstdFlags)))
}

// clientConfig assembles the client configuration from flags, environment and the config file.
func clientConfig() (*asc.Config, error) {
	config := loadConfig()
	verbose := viper.GetBool("verbose")

	ascConfig := &asc.Config{
		BaseURL:        config.API,
		KeyID:          config.KeyID,
		IssuerID:       config.IssuerID,
		PrivateKeyPath: config.PrivateKeyPath,
		AccessToken:    viper.GetString("token"),
		AppID:          config.AppID,
		UserAgent:      constants.DefaultUserAgent + "/" + Version,
		Debug:          verbose,
		Logger:         newLogger(verbose),
	}

	if ascConfig.AccessToken == "" &&
		(ascConfig.KeyID == "" || ascConfig.IssuerID == "" || ascConfig.PrivateKeyPath == "") {
		return nil, constants.ErrNoCredentialsConfigured
	}

	return ascConfig, nil
}

// newClient creates an API client for a command.
func newClient() (asc.Client, error) {
	config, err := clientConfig()
	if err != nil {
		return nil, err
	}

	client, err := ascclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// clientRunE adapts a command body that needs a client to cobra's RunE.
func clientRunE(run func(cmd *cobra.Command, client asc.Client, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		return run(cmd, client, args)
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return constants.NotAvailable
	}

	return t.Format(dateLayout)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
