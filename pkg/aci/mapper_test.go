package aci_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fivetwenty-io/aci-client/pkg/aci"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tenantUsage struct {
	Name  string
	Bytes uint64
}

var tenantUsageMapper = aci.NewMapper(aci.ClassTenant,
	aci.Field("name", aci.String, func(r *tenantUsage, v string) { r.Name = v }),
	aci.Field("bytes", aci.Uint, func(r *tenantUsage, v uint64) { r.Bytes = v }),
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestMapper_Decode(t *testing.T) {
	t.Parallel()

	t.Run("decodes every declared field", func(t *testing.T) {
		t.Parallel()

		record, err := tenantUsageMapper.Decode(json.RawMessage(`{"fvTenant":{"attributes":{"name":"TenantName","bytes":500}}}`))
		require.NoError(t, err)
		assert.Equal(t, "TenantName", record.Name)
		assert.Equal(t, uint64(500), record.Bytes)
	})

	t.Run("missing field names the field", func(t *testing.T) {
		t.Parallel()

		record, err := tenantUsageMapper.Decode(json.RawMessage(`{"fvTenant":{"attributes":{"name":"TenantName"}}}`))
		require.Error(t, err)
		require.ErrorIs(t, err, aci.ErrMapping)
		require.ErrorIs(t, err, aci.ErrFieldAbsent)

		field, ok := aci.MappingField(err)
		require.True(t, ok)
		assert.Equal(t, "bytes", field)
		assert.Equal(t, tenantUsage{}, record, "result must not be partially populated")
	})

	t.Run("wrong JSON type fails", func(t *testing.T) {
		t.Parallel()

		_, err := tenantUsageMapper.Decode(json.RawMessage(`{"fvTenant":{"attributes":{"name":"TenantName","bytes":"500"}}}`))
		require.ErrorIs(t, err, aci.ErrFieldType)

		field, _ := aci.MappingField(err)
		assert.Equal(t, "bytes", field)
	})

	t.Run("first failing field is reported", func(t *testing.T) {
		t.Parallel()

		_, err := tenantUsageMapper.Decode(json.RawMessage(`{"fvTenant":{"attributes":{"name":7}}}`))

		field, ok := aci.MappingField(err)
		require.True(t, ok)
		assert.Equal(t, "name", field)
	})

	t.Run("negative number is out of range", func(t *testing.T) {
		t.Parallel()

		_, err := tenantUsageMapper.Decode(json.RawMessage(`{"fvTenant":{"attributes":{"name":"a","bytes":-1}}}`))
		require.ErrorIs(t, err, aci.ErrFieldRange)
	})

	t.Run("fractional number is out of range", func(t *testing.T) {
		t.Parallel()

		_, err := tenantUsageMapper.Decode(json.RawMessage(`{"fvTenant":{"attributes":{"name":"a","bytes":1.5}}}`))
		require.ErrorIs(t, err, aci.ErrFieldRange)
	})

	t.Run("null required field is a type error", func(t *testing.T) {
		t.Parallel()

		_, err := tenantUsageMapper.Decode(json.RawMessage(`{"fvTenant":{"attributes":{"name":null,"bytes":1}}}`))
		require.ErrorIs(t, err, aci.ErrFieldType)
	})

	t.Run("other class reports first field absent", func(t *testing.T) {
		t.Parallel()

		_, err := tenantUsageMapper.Decode(json.RawMessage(`{"fvBD":{"attributes":{"name":"a","bytes":1}}}`))

		field, ok := aci.MappingField(err)
		require.True(t, ok)
		assert.Equal(t, "name", field)
	})

	t.Run("optional fields may be absent or null", func(t *testing.T) {
		t.Parallel()

		tenant, err := aci.TenantMapper.Decode(json.RawMessage(`{"fvTenant":{"attributes":{"dn":"uni/tn-a","name":"a","descr":null}}}`))
		require.NoError(t, err)
		assert.Equal(t, aci.Tenant{DN: "uni/tn-a", Name: "a"}, tenant)
	})
}

func TestMapper_DecodeAll(t *testing.T) {
	t.Parallel()

	t.Run("keeps order", func(t *testing.T) {
		t.Parallel()

		tenants, err := aci.TenantMapper.DecodeAll(json.RawMessage(`[
			{"fvTenant":{"attributes":{"dn":"uni/tn-infra","name":"infra"}}},
			{"fvTenant":{"attributes":{"dn":"uni/tn-common","name":"common","descr":"shared"}}}
		]`))
		require.NoError(t, err)
		require.Len(t, tenants, 2)
		assert.Equal(t, "infra", tenants[0].Name)
		assert.Equal(t, "common", tenants[1].Name)
		assert.Equal(t, "shared", tenants[1].Description)
	})

	t.Run("reports failing element", func(t *testing.T) {
		t.Parallel()

		_, err := aci.TenantMapper.DecodeAll(json.RawMessage(`[
			{"fvTenant":{"attributes":{"dn":"uni/tn-infra","name":"infra"}}},
			{"fvTenant":{"attributes":{"dn":"uni/tn-common"}}}
		]`))
		require.ErrorIs(t, err, aci.ErrMapping)
		assert.Contains(t, err.Error(), "imdata[1]")
	})

	t.Run("not an array", func(t *testing.T) {
		t.Parallel()

		_, err := aci.TenantMapper.DecodeAll(json.RawMessage(`{}`))
		require.Error(t, err)
	})
}

func TestMapper_DecodeWrapper(t *testing.T) {
	t.Parallel()

	wrapper := aci.NewClassWrapper(aci.ClassTenant, map[string]interface{}{
		"dn":   "uni/tn-a",
		"name": "a",
	})

	tenant, err := aci.TenantMapper.DecodeWrapper(wrapper)
	require.NoError(t, err)
	assert.Equal(t, "uni/tn-a", tenant.DN)
}

func TestMapper_Metadata(t *testing.T) {
	t.Parallel()

	assert.Equal(t, aci.ClassTenant, aci.TenantMapper.Class())
	assert.Equal(t, []string{"dn", "name", "descr", "nameAlias"}, aci.TenantMapper.Fields())

	field := aci.Optional(aci.Field("descr", aci.String, func(tn *aci.Tenant, v string) { tn.Description = v }))
	assert.Equal(t, "descr", field.Name())
	assert.False(t, field.Required())
}

//nolint:funlen // Table-driven extractor cases
func TestExtractors(t *testing.T) {
	t.Parallel()

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		value, err := aci.String(json.RawMessage(`"x"`))
		require.NoError(t, err)
		assert.Equal(t, "x", value)

		_, err = aci.String(json.RawMessage(`1`))
		require.ErrorIs(t, err, aci.ErrFieldType)
	})

	t.Run("int", func(t *testing.T) {
		t.Parallel()

		value, err := aci.Int(json.RawMessage(`-42`))
		require.NoError(t, err)
		assert.Equal(t, int64(-42), value)

		_, err = aci.Int(json.RawMessage(`"42"`))
		require.ErrorIs(t, err, aci.ErrFieldType)
	})

	t.Run("bool", func(t *testing.T) {
		t.Parallel()

		value, err := aci.Bool(json.RawMessage(`true`))
		require.NoError(t, err)
		assert.True(t, value)

		_, err = aci.Bool(json.RawMessage(`"yes"`))
		require.ErrorIs(t, err, aci.ErrFieldType)
	})

	t.Run("numeric string", func(t *testing.T) {
		t.Parallel()

		value, err := aci.NumericString(json.RawMessage(`"600"`))
		require.NoError(t, err)
		assert.Equal(t, uint64(600), value)

		_, err = aci.NumericString(json.RawMessage(`"abc"`))
		require.ErrorIs(t, err, aci.ErrFieldRange)

		_, err = aci.NumericString(json.RawMessage(`600`))
		require.ErrorIs(t, err, aci.ErrFieldType)
	})

	t.Run("number or numeric string", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{`600`, `"600"`} {
			value, err := aci.UintOrNumericString(json.RawMessage(raw))
			require.NoError(t, err, raw)
			assert.Equal(t, uint64(600), value)
		}

		_, err := aci.UintOrNumericString(json.RawMessage(`true`))
		require.ErrorIs(t, err, aci.ErrFieldType)
	})

	t.Run("enum", func(t *testing.T) {
		t.Parallel()

		extract := aci.Enum("json", "xml")

		value, err := extract(json.RawMessage(`"xml"`))
		require.NoError(t, err)
		assert.Equal(t, "xml", value)

		_, err = extract(json.RawMessage(`"yaml"`))
		require.ErrorIs(t, err, aci.ErrFieldRange)
	})

	t.Run("custom extractor plugs in", func(t *testing.T) {
		t.Parallel()

		errShort := errors.New("too short")

		longString := func(raw json.RawMessage) (string, error) {
			value, err := aci.String(raw)
			if err != nil {
				return "", err
			}

			if len(value) < 3 {
				return "", errShort
			}

			return value, nil
		}

		mapper := aci.NewMapper("fvBD",
			aci.Field("name", longString, func(r *tenantUsage, v string) { r.Name = v }),
		)

		_, err := mapper.Decode(json.RawMessage(`{"fvBD":{"attributes":{"name":"ab"}}}`))
		require.ErrorIs(t, err, errShort)
		require.ErrorIs(t, err, aci.ErrMapping)
	})
}
