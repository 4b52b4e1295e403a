package commands

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fivetwenty-io/aci-client/internal/constants"
	"github.com/fivetwenty-io/aci-client/internal/fixture"
	"github.com/fivetwenty-io/aci-client/pkg/aci"
	"github.com/fivetwenty-io/aci-client/pkg/aciclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useFixture points the CLI at exec and sets credentials. Tests calling it
// share viper and newClient, so they must not run in parallel.
func useFixture(t *testing.T, exec *fixture.Executor, format string) {
	t.Helper()

	previous := newClient

	t.Cleanup(func() {
		newClient = previous

		viper.Reset()
	})

	newClient = func(ctx context.Context, config *aci.Config) (aci.Client, error) {
		config.Executor = exec

		return aciclient.New(ctx, config)
	}

	viper.Set("server", "apic.example.com")
	viper.Set("username", "admin")
	viper.Set("password", "secret")
	viper.Set("output", format)
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestCommandStructure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{cmd: NewLoginCommand(), use: "login", flags: []string{"save"}},
		{cmd: NewGetCommand(), use: "get [PATH]", flags: []string{"dn"}},
		{cmd: NewListCommand(), use: "list CLASS"},
		{cmd: NewTenantsCommand(), use: "tenants"},
		{cmd: NewPostCommand(), use: "post [PATH]", flags: []string{"file", "data"}},
		{cmd: NewSnapshotCommand(), use: "snapshot", flags: []string{"description", "target-dn"}},
		{cmd: NewVersionCommand("1.0.0", "abc", "today"), use: "version"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.use, tt.cmd.Use)
		assert.NotEmpty(t, tt.cmd.Short)
		assert.NotNil(t, tt.cmd.RunE, "%s should have RunE", tt.use)

		for _, flagName := range tt.flags {
			assert.NotNil(t, tt.cmd.Flags().Lookup(flagName), "%s: flag %s should exist", tt.use, flagName)
		}
	}

	assert.Equal(t, []string{"fvTenant"}, NewTenantsCommand().Aliases)

	config := NewConfigCommand()

	var names []string
	for _, sub := range config.Commands() {
		names = append(names, sub.Name())
	}

	assert.ElementsMatch(t, []string{"show", "set"}, names)
}

//nolint:paralleltest // mutates viper and newClient
func TestTenantsCommand(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		useFixture(t, fixture.New(fixture.Login(fixture.LoginTokenBody), fixture.TenantList("infra", "common")), constants.FormatTable)

		out, err := runCommand(t, NewTenantsCommand())
		require.NoError(t, err)
		assert.Contains(t, out, "infra")
		assert.Contains(t, out, "uni/tn-common")
		assert.Contains(t, out, constants.NotAvailable)
	})

	t.Run("json", func(t *testing.T) {
		useFixture(t, fixture.New(fixture.Login(fixture.LoginTokenBody), fixture.TenantList("infra")), constants.FormatJSON)

		out, err := runCommand(t, NewTenantsCommand())
		require.NoError(t, err)
		assert.JSONEq(t, `[{"dn":"uni/tn-infra","name":"infra","descr":"","nameAlias":""}]`, out)
	})

	t.Run("login failure", func(t *testing.T) {
		useFixture(t, fixture.New(fixture.Login(fixture.LoginNullBody)), constants.FormatTable)

		_, err := runCommand(t, NewTenantsCommand())
		require.ErrorIs(t, err, aci.ErrTokenNull)
	})
}

//nolint:paralleltest // mutates viper and newClient
func TestGetCommand(t *testing.T) {
	t.Run("path", func(t *testing.T) {
		useFixture(t, fixture.New(fixture.Login(fixture.LoginTokenBody), fixture.TenantList("infra")), constants.FormatJSON)

		out, err := runCommand(t, NewGetCommand(), "class/fvTenant.json")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"fvTenant":{"attributes":{"dn":"uni/tn-infra","name":"infra"}}}]`, out)
	})

	t.Run("dn", func(t *testing.T) {
		useFixture(t, fixture.New(
			fixture.Login(fixture.LoginTokenBody),
			fixture.Get("mo/uni/tn-infra.json", fixture.Tenants("infra")),
		), constants.FormatTable)

		out, err := runCommand(t, NewGetCommand(), "--dn", "uni/tn-infra")
		require.NoError(t, err)
		assert.Contains(t, out, "fvTenant")
		assert.Contains(t, out, "uni/tn-infra")
	})

	t.Run("unknown path", func(t *testing.T) {
		useFixture(t, fixture.New(fixture.Login(fixture.LoginTokenBody)), constants.FormatTable)

		_, err := runCommand(t, NewGetCommand(), "class/fvBD.json")
		require.ErrorIs(t, err, fixture.ErrNoFixture)
	})

	t.Run("dn with path", func(t *testing.T) {
		exec := fixture.New(fixture.Login(fixture.LoginTokenBody))
		useFixture(t, exec, constants.FormatJSON)

		_, err := runCommand(t, NewGetCommand(), "--dn", "uni/tn-infra", "class/fvTenant.json")
		require.ErrorIs(t, err, constants.ErrDNWithPath)
		assert.Empty(t, exec.Requests())
	})
}

//nolint:paralleltest // mutates viper and newClient
func TestListCommand(t *testing.T) {
	useFixture(t, fixture.New(fixture.Login(fixture.LoginTokenBody), fixture.TenantList()), constants.FormatTable)

	out, err := runCommand(t, NewListCommand(), "fvTenant")
	require.NoError(t, err)
	assert.Contains(t, out, "No objects found")
}

//nolint:paralleltest // mutates viper and newClient
func TestPostCommand(t *testing.T) {
	const epg = `{"fvAEPg":{"attributes":{"dn":"uni/tn-TEST/ap-TEST/epg-TEST","name":"TEST"}}}`

	t.Run("inline document", func(t *testing.T) {
		exec := fixture.New(
			fixture.Login(fixture.LoginTokenBody),
			fixture.Post("mo.json", "fvAEPg", fixture.AckBody).ExpectingBody(epg),
		)
		useFixture(t, exec, constants.FormatJSON)

		out, err := runCommand(t, NewPostCommand(), "--data", epg)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, out)
	})

	t.Run("stdin", func(t *testing.T) {
		useFixture(t, fixture.New(
			fixture.Login(fixture.LoginTokenBody),
			fixture.Post("mo.json", "fvAEPg", fixture.AckBody),
		), constants.FormatJSON)

		cmd := NewPostCommand()
		cmd.SetIn(strings.NewReader(epg))

		_, err := runCommand(t, cmd, "-f", "-")
		require.NoError(t, err)
	})

	t.Run("invalid document", func(t *testing.T) {
		useFixture(t, fixture.New(fixture.Login(fixture.LoginTokenBody)), constants.FormatJSON)

		_, err := runCommand(t, NewPostCommand(), "--data", `{"fvAEPg":`)
		require.ErrorIs(t, err, aci.ErrInvalidBody)
	})

	t.Run("missing document", func(t *testing.T) {
		useFixture(t, fixture.New(fixture.Login(fixture.LoginTokenBody)), constants.FormatJSON)

		_, err := runCommand(t, NewPostCommand())
		require.ErrorIs(t, err, constants.ErrNoDocumentProvided)
	})
}

//nolint:paralleltest // mutates viper and newClient
func TestSnapshotCommand(t *testing.T) {
	description := "nightly"

	expected, err := aci.NewSnapshotDocument(aci.SnapshotOptions{Description: &description})
	require.NoError(t, err)

	useFixture(t, fixture.New(
		fixture.Login(fixture.LoginTokenBody),
		fixture.Post("mo.json", aci.ClassConfigExport, fixture.AckBody).ExpectingBody(string(expected)),
	), constants.FormatTable)

	out, err := runCommand(t, NewSnapshotCommand(), "--description", "nightly")
	require.NoError(t, err)
	assert.Contains(t, out, aci.SnapshotPolicyDN)
	assert.Contains(t, out, "by aci-client - nightly")
}

//nolint:paralleltest // mutates viper and newClient
func TestLoginCommand(t *testing.T) {
	useFixture(t, fixture.New(fixture.Login(fixture.LoginTokenBody)), constants.FormatJSON)

	out, err := runCommand(t, NewLoginCommand())
	require.NoError(t, err)
	assert.JSONEq(t, `{"server":"apic.example.com","username":"admin","token":"***"}`, out)
	assert.NotContains(t, out, "TOKEN")
}

//nolint:paralleltest // mutates viper
func TestBuildClientConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{}

	_, err := buildClientConfig(cmd)
	require.ErrorIs(t, err, constants.ErrNoServerConfigured)

	viper.Set("server", "apic.example.com")

	_, err = buildClientConfig(cmd)
	require.ErrorIs(t, err, constants.ErrNoUsernameConfigured)

	viper.Set("username", "admin")

	previous := passwordReader

	t.Cleanup(func() { passwordReader = previous })

	passwordReader = func(_ io.Writer) (string, error) {
		return "", constants.ErrNoPasswordProvided
	}

	_, err = buildClientConfig(cmd)
	require.ErrorIs(t, err, constants.ErrNoPasswordProvided)

	passwordReader = func(_ io.Writer) (string, error) {
		return "prompted", nil
	}

	viper.Set("retry_max", 3)
	viper.Set("verify_tls", true)

	config, err := buildClientConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "prompted", config.Password)
	assert.Equal(t, 3, config.RetryMax)
	assert.True(t, config.VerifyTLS)
	assert.NotNil(t, config.Logger)
}
