package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fivetwenty-io/aci-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration persisted in ~/.aci/config.yml.
// The password is deliberately absent.
type Config struct {
	Server    string `json:"server,omitempty"    yaml:"server,omitempty"`
	Username  string `json:"username,omitempty"  yaml:"username,omitempty"`
	VerifyTLS bool   `json:"verify_tls"          yaml:"verify_tls"`
	Timeout   string `json:"timeout,omitempty"   yaml:"timeout,omitempty"`
	RetryMax  int    `json:"retry_max,omitempty" yaml:"retry_max,omitempty"`
	Output    string `json:"output,omitempty"    yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the ACI CLI config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective CLI configuration (file, environment and flags)",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			switch viper.GetString("output") {
			case constants.FormatJSON, constants.FormatYAML:
				return renderValue(cmd.OutOrStdout(), viper.GetString("output"), config)
			default:
				return displayConfigTable(cmd, config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of: server, username, verify_tls, timeout, retry_max, output",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func loadConfig() *Config {
	return &Config{
		Server:    viper.GetString("server"),
		Username:  viper.GetString("username"),
		VerifyTLS: viper.GetBool("verify_tls"),
		Timeout:   viper.GetDuration("timeout").String(),
		RetryMax:  viper.GetInt("retry_max"),
		Output:    viper.GetString("output"),
	}
}

// setConfigValue validates value and stores it under key.
func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "server":
		config.Server = value
	case "username":
		config.Username = value
	case "password":
		return constants.ErrPasswordNotStorable
	case "verify_tls":
		verify, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: verify_tls %q: %w", constants.ErrInvalidConfigValue, value, err)
		}

		config.VerifyTLS = verify
	case "timeout":
		_, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: timeout %q: %w", constants.ErrInvalidConfigValue, value, err)
		}

		config.Timeout = value
	case "retry_max":
		retryMax, err := strconv.Atoi(value)
		if err != nil || retryMax < 0 {
			return fmt.Errorf("%w: retry_max %q must be a non-negative integer", constants.ErrInvalidConfigValue, value)
		}

		config.RetryMax = retryMax
	case "output":
		err := validateOutputFormat(value)
		if err != nil {
			return err
		}

		config.Output = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".aci")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	return writeConfigFile(configFile, config)
}

func writeConfigFile(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(cmd *cobra.Command, config *Config) error {
	server := config.Server
	if server == "" {
		server = constants.NotAvailable
	}

	username := config.Username
	if username == "" {
		username = constants.NotAvailable
	}

	password := constants.NotAvailable
	if viper.GetString("password") != "" {
		password = constants.MaskedSecret
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Property", "Value")
	_ = table.Append("Server", server)
	_ = table.Append("Username", username)
	_ = table.Append("Password", password)
	_ = table.Append("Verify TLS", strconv.FormatBool(config.VerifyTLS))
	_ = table.Append("Timeout", config.Timeout)
	_ = table.Append("Retry Max", strconv.Itoa(config.RetryMax))
	_ = table.Append("Output", config.Output)
	_ = table.Append("Config File", configFileOrDefault())

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func configFileOrDefault() string {
	if file := viper.ConfigFileUsed(); file != "" {
		return file
	}

	return constants.NotAvailable
}
