package commands

import (
	"github.com/fivetwenty-io/aci-client/internal/constants"
	"github.com/fivetwenty-io/aci-client/pkg/aci"
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	var dn string

	cmd := &cobra.Command{
		Use:   "get [PATH]",
		Short: "Read an API path",
		Long:  "GET an API-relative path such as class/fvTenant.json, or a managed object with --dn",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dn == "" && len(args) == 0 {
				return cmd.Usage()
			}

			if dn != "" && len(args) > 0 {
				return constants.ErrDNWithPath
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			if dn != "" {
				wrappers, err := client.GetManagedObject(ctx, dn)
				if err != nil {
					return err
				}

				return renderWrappers(cmd.OutOrStdout(), format, wrappers)
			}

			imdata, err := client.GetJSON(ctx, args[0])
			if err != nil {
				return err
			}

			return renderImdata(cmd.OutOrStdout(), format, imdata)
		},
	}

	cmd.Flags().StringVar(&dn, "dn", "", "distinguished name of a managed object")

	return cmd
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list CLASS",
		Short: "List objects of a class",
		Long:  "List every managed object of a class, for example fvTenant or fvBD",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			wrappers, err := client.ListClass(commandContext(cmd), args[0])
			if err != nil {
				return err
			}

			return renderWrappers(cmd.OutOrStdout(), format, wrappers)
		},
	}
}

// NewTenantsCommand creates the tenants command.
func NewTenantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "tenants",
		Aliases: []string{aci.ClassTenant},
		Short:   "List tenants",
		Long:    "List every tenant with its name, distinguished name and description",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			tenants, err := client.Tenants(commandContext(cmd))
			if err != nil {
				return err
			}

			return renderTenants(cmd.OutOrStdout(), format, tenants)
		},
	}
}
