package commands

import (
	"fmt"

	"github.com/fivetwenty-io/aci-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a controller",
		Long:  "Authenticate against the controller's aaaLogin endpoint and report the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			if save {
				config := loadConfig()
				config.Server = client.Server()
				config.Username = viper.GetString("username")

				err = saveConfigStruct(config)
				if err != nil {
					return fmt.Errorf("failed to save configuration: %w", err)
				}
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			result := struct {
				Server   string `json:"server"   yaml:"server"`
				Username string `json:"username" yaml:"username"`
				Token    string `json:"token"    yaml:"token"`
			}{
				Server:   client.Server(),
				Username: viper.GetString("username"),
				Token:    constants.MaskedSecret,
			}

			if format != constants.FormatTable {
				return renderValue(cmd.OutOrStdout(), format, result)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Property", "Value")
			_ = table.Append("Server", result.Server)
			_ = table.Append("Username", result.Username)
			_ = table.Append("Token", result.Token)

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "store server and username in the config file")

	return cmd
}
