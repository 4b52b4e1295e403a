package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fivetwenty-io/aci-client/internal/constants"
	"github.com/fivetwenty-io/aci-client/pkg/aci"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const defaultJSONIndent = "  "

func validateOutputFormat(format string) error {
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, format)
	}
}

// renderValue writes value as JSON or YAML.
func renderValue(w io.Writer, format string, value interface{}) error {
	switch format {
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() {
			_ = encoder.Close()
		}()

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		return nil
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", defaultJSONIndent)

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}

		return nil
	}
}

// renderImdata prints a raw imdata array. Tables show one row per class
// wrapper; anything that is not a list of wrappers falls back to JSON.
func renderImdata(w io.Writer, format string, imdata json.RawMessage) error {
	switch format {
	case constants.FormatJSON:
		return renderRawJSON(w, imdata)
	case constants.FormatYAML:
		var value interface{}

		err := json.Unmarshal(imdata, &value)
		if err != nil {
			return fmt.Errorf("decoding imdata: %w", err)
		}

		return renderValue(w, constants.FormatYAML, value)
	default:
		wrappers, err := aci.DecodeWrappers(imdata)
		if err != nil {
			return renderRawJSON(w, imdata)
		}

		return renderWrappersTable(w, wrappers)
	}
}

// renderWrappers prints decoded class wrappers in their wire shape.
func renderWrappers(w io.Writer, format string, wrappers []aci.ClassWrapper) error {
	if format == constants.FormatTable {
		return renderWrappersTable(w, wrappers)
	}

	imdata, err := json.Marshal(wrappers)
	if err != nil {
		return fmt.Errorf("encoding objects: %w", err)
	}

	return renderImdata(w, format, imdata)
}

func renderRawJSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer

	err := json.Indent(&buf, raw, "", defaultJSONIndent)
	if err != nil {
		return fmt.Errorf("formatting json: %w", err)
	}

	buf.WriteByte('\n')

	_, err = buf.WriteTo(w)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

func renderWrappersTable(w io.Writer, wrappers []aci.ClassWrapper) error {
	if len(wrappers) == 0 {
		_, _ = fmt.Fprintln(w, "No objects found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Class", "DN", "Name")

	for _, wrapper := range wrappers {
		_ = table.Append(wrapper.Class, orNotAvailable(wrapper.DN()), orNotAvailable(wrapper.Attribute("name")))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderTenants(w io.Writer, format string, tenants []aci.Tenant) error {
	if format != constants.FormatTable {
		return renderValue(w, format, tenants)
	}

	if len(tenants) == 0 {
		_, _ = fmt.Fprintln(w, "No tenants found")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Name", "DN", "Description")

	for _, tenant := range tenants {
		_ = table.Append(tenant.Name, tenant.DN, orNotAvailable(tenant.Description))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
