package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fivetwenty-io/aci-client/internal/constants"
	"github.com/fivetwenty-io/aci-client/pkg/aci"
	"github.com/fivetwenty-io/aci-client/pkg/aciclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// newClient builds a logged-in client. Tests replace it.
var newClient = func(ctx context.Context, config *aci.Config) (aci.Client, error) {
	return aciclient.New(ctx, config)
}

// passwordReader reads a password without echo. Tests replace it.
var passwordReader = func(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd()) // #nosec G115 -- file descriptors fit in int

	if !term.IsTerminal(fd) {
		return "", constants.ErrNoPasswordProvided
	}

	_, _ = fmt.Fprint(prompt, "Password: ")

	password, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(prompt)

	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(password), nil
}

// buildClientConfig resolves server, credentials and transport settings from
// flags, ACI_* environment variables and the config file, in that order.
func buildClientConfig(cmd *cobra.Command) (*aci.Config, error) {
	server := viper.GetString("server")
	if server == "" {
		return nil, constants.ErrNoServerConfigured
	}

	username := viper.GetString("username")
	if username == "" {
		return nil, constants.ErrNoUsernameConfigured
	}

	password := viper.GetString("password")
	if password == "" {
		var err error

		password, err = passwordReader(cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
	}

	verbose := viper.GetBool("verbose")

	return &aci.Config{
		Server:      server,
		Username:    username,
		Password:    password,
		VerifyTLS:   viper.GetBool("verify_tls"),
		HTTPTimeout: viper.GetDuration("timeout"),
		RetryMax:    viper.GetInt("retry_max"),
		Debug:       verbose,
		Logger:      NewSlogLogger(cmd.ErrOrStderr(), verbose),
	}, nil
}

func createClient(cmd *cobra.Command) (aci.Client, error) {
	config, err := buildClientConfig(cmd)
	if err != nil {
		return nil, err
	}

	client, err := newClient(commandContext(cmd), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

func outputFormat() (string, error) {
	format := viper.GetString("output")
	if format == "" {
		return constants.FormatTable, nil
	}

	err := validateOutputFormat(format)
	if err != nil {
		return "", err
	}

	return format, nil
}
