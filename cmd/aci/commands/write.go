package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/aci-client/internal/constants"
	"github.com/fivetwenty-io/aci-client/pkg/aci"
	"github.com/spf13/cobra"
)

// NewPostCommand creates the post command.
func NewPostCommand() *cobra.Command {
	var (
		file string
		data string
	)

	cmd := &cobra.Command{
		Use:   "post [PATH]",
		Short: "Post a managed-object document",
		Long: `POST a JSON document to an API path (mo.json by default).

The document has a single top-level key naming the class being created or
modified, for example:

  {"fvTenant":{"attributes":{"dn":"uni/tn-demo","name":"demo"}}}`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := constants.ManagedObjectPath
			if len(args) == 1 {
				path = args[0]
			}

			body, err := readDocument(cmd.InOrStdin(), file, data)
			if err != nil {
				return err
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			imdata, err := client.PostJSON(commandContext(cmd), path, body)
			if err != nil {
				return err
			}

			return renderImdata(cmd.OutOrStdout(), format, imdata)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the document from a file (- for stdin)")
	cmd.Flags().StringVarP(&data, "data", "d", "", "inline JSON document")

	return cmd
}

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand() *cobra.Command {
	var (
		description string
		targetDN    string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Trigger a configuration snapshot",
		Long:  "Create or retrigger the " + aci.SnapshotPolicyName + " configuration export policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts aci.SnapshotOptions

			if cmd.Flags().Changed("description") {
				opts.Description = &description
			}

			if cmd.Flags().Changed("target-dn") {
				opts.TargetDN = &targetDN
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := createClient(cmd)
			if err != nil {
				return err
			}

			imdata, err := client.Snapshot(commandContext(cmd), opts)
			if err != nil {
				return err
			}

			if format == constants.FormatTable {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Snapshot triggered: %s (%s)\n",
					aci.SnapshotPolicyDN, aci.SnapshotDescription(opts.Description))

				return nil
			}

			return renderImdata(cmd.OutOrStdout(), format, imdata)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "snapshot description")
	cmd.Flags().StringVar(&targetDN, "target-dn", "", "limit the export to this subtree")

	return cmd
}

// readDocument returns the inline document, or the contents of file.
func readDocument(stdin io.Reader, file, data string) ([]byte, error) {
	switch {
	case data != "":
		return []byte(data), nil
	case file == "-":
		body, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return body, nil
	case file != "":
		return readDocumentFile(file)
	default:
		return nil, constants.ErrNoDocumentProvided
	}
}

func readDocumentFile(file string) ([]byte, error) {
	if strings.Contains(file, "..") {
		return nil, fmt.Errorf("%w: %s", constants.ErrDirectoryTraversalDetected, file)
	}

	cleaned := filepath.Clean(file)

	info, err := os.Stat(cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to access file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", constants.ErrNotRegularFile, cleaned)
	}

	// #nosec G304 -- path validated above
	body, err := os.ReadFile(cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return body, nil
}
