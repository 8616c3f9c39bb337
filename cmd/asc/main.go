package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/asc/cmd/asc/commands"
	"github.com/fivetwenty-io/asc/pkg/asc"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "asc",
	Short: "App Store Connect API CLI",
	Long: `A command-line interface for the App Store Connect API.

Authenticate with an API key from Users and Access > Integrations: set the key
ID, issuer ID and the path of the downloaded .p8 file with 'asc config set', the
ASC_KEY_ID, ASC_ISSUER_ID and ASC_PRIVATE_KEY_PATH variables, or flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.asc/config.yml)")
	flags.StringP("api", "a", "", "API base URL (default "+asc.DefaultBaseURL+")")
	flags.StringP("token", "t", "", "pre-issued bearer token, bypasses key signing")
	flags.String("key-id", "", "API key ID")
	flags.String("issuer-id", "", "API key issuer ID")
	flags.String("private-key-path", "", "path of the .p8 private key")
	flags.String("app-id", "", "default app ID for app-scoped commands")
	flags.StringP("output", "o", "", "output format (table, json, yaml); table on a terminal, json otherwise")
	flags.BoolP("verbose", "v", false, "log requests and token generation to stderr")

	// Bind flags to viper
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("api", flags.Lookup("api"))
	_ = viper.BindPFlag("token", flags.Lookup("token"))
	_ = viper.BindPFlag("key_id", flags.Lookup("key-id"))
	_ = viper.BindPFlag("issuer_id", flags.Lookup("issuer-id"))
	_ = viper.BindPFlag("private_key_path", flags.Lookup("private-key-path"))
	_ = viper.BindPFlag("app_id", flags.Lookup("app-id"))
	_ = viper.BindPFlag("output", flags.Lookup("output"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))

	commands.Version = version

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewTokenCommand())
	rootCmd.AddCommand(commands.NewFetchCommand())
	rootCmd.AddCommand(commands.NewAppsCommand())
	rootCmd.AddCommand(commands.NewBuildsCommand())
	rootCmd.AddCommand(commands.NewBundleIDsCommand())
	rootCmd.AddCommand(commands.NewCertificatesCommand())
	rootCmd.AddCommand(commands.NewDevicesCommand())
	rootCmd.AddCommand(commands.NewProfilesCommand())
	rootCmd.AddCommand(commands.NewUsersCommand())
	rootCmd.AddCommand(commands.NewIAPCommand())
	rootCmd.AddCommand(commands.NewScreenshotsCommand())
	rootCmd.AddCommand(commands.NewSubscriptionGroupsCommand())
	rootCmd.AddCommand(commands.NewSubscriptionsCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.asc/config.yml
		viper.AddConfigPath(filepath.Join(home, ".asc"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// ASC_KEY_ID, ASC_ISSUER_ID, ASC_PRIVATE_KEY_PATH, ASC_APP_ID, ASC_API, ...
	viper.SetEnvPrefix("ASC")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
