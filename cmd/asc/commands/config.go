package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/asc/internal/constants"
)

const (
	configDirName  = ".asc"
	configFileName = "config.yml"
)

// Config represents the persisted CLI configuration.
type Config struct {
	API            string `json:"api,omitempty"              yaml:"api,omitempty"`
	KeyID          string `json:"key_id,omitempty"           yaml:"key_id,omitempty"`
	IssuerID       string `json:"issuer_id,omitempty"        yaml:"issuer_id,omitempty"`
	PrivateKeyPath string `json:"private_key_path,omitempty" yaml:"private_key_path,omitempty"`
	AppID          string `json:"app_id,omitempty"           yaml:"app_id,omitempty"`
	Output         string `json:"output,omitempty"           yaml:"output,omitempty"`
}

// configHandlers maps settable keys to the field they update.
var configHandlers = map[string]func(*Config, string){
	"api":              func(c *Config, v string) { c.API = v },
	"key_id":           func(c *Config, v string) { c.KeyID = v },
	"issuer_id":        func(c *Config, v string) { c.IssuerID = v },
	"private_key_path": func(c *Config, v string) { c.PrivateKeyPath = v },
	"app_id":           func(c *Config, v string) { c.AppID = v },
	"output":           func(c *Config, v string) { c.Output = v },
}

// ConfigKeys lists the keys accepted by 'config set', sorted.
func ConfigKeys() []string {
	keys := make([]string, 0, len(configHandlers))
	for key := range configHandlers {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and update the API key and defaults stored in ~/.asc/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after applying flags and ASC_* environment variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			view := newTable("Property", "Value")
			view.add("API", orNotAvailable(config.API))
			view.add("Key ID", orNotAvailable(config.KeyID))
			view.add("Issuer ID", orNotAvailable(config.IssuerID))
			view.add("Private Key Path", orNotAvailable(config.PrivateKeyPath))
			view.add("App ID", orNotAvailable(config.AppID))
			view.add("Output", orNotAvailable(config.Output))

			if viper.GetString("token") != "" {
				view.add("Token", constants.MaskedSecret)
			}

			return render(cmd.OutOrStdout(), config, view)
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Valid keys: api, app_id, issuer_id, key_id, output, private_key_path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	handler, exists := configHandlers[key]
	if !exists {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	handler(config, value)

	return nil
}

func loadConfig() *Config {
	return &Config{
		API:            viper.GetString("api"),
		KeyID:          viper.GetString("key_id"),
		IssuerID:       viper.GetString("issuer_id"),
		PrivateKeyPath: viper.GetString("private_key_path"),
		AppID:          viper.GetString("app_id"),
		Output:         viper.GetString("output"),
	}
}

// configFilePath returns the file in use, or ~/.asc/config.yml when none was read.
func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, configDirName, configFileName), nil
}

func saveConfig(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
