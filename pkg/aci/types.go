package aci

import (
	"encoding/json"
	"fmt"
)

// Tenant is an fvTenant managed object.
type Tenant struct {
	DN          string `json:"dn"          yaml:"dn"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"descr"       yaml:"descr"`
	NameAlias   string `json:"nameAlias"   yaml:"nameAlias"`
}

// TenantMapper decodes fvTenant wrappers.
var TenantMapper = NewMapper(ClassTenant,
	Field("dn", String, func(t *Tenant, v string) { t.DN = v }),
	Field("name", String, func(t *Tenant, v string) { t.Name = v }),
	Optional(Field("descr", String, func(t *Tenant, v string) { t.Description = v })),
	Optional(Field("nameAlias", String, func(t *Tenant, v string) { t.NameAlias = v })),
)

// ConfigExportPolicy is a configExportP managed object.
type ConfigExportPolicy struct {
	DN               string `json:"dn"               yaml:"dn"`
	Name             string `json:"name"             yaml:"name"`
	Description      string `json:"descr"            yaml:"descr"`
	AdminState       string `json:"adminSt"          yaml:"adminSt"`
	Format           string `json:"format"           yaml:"format"`
	TargetDN         string `json:"targetDn"         yaml:"targetDn"`
	MaxSnapshotCount string `json:"maxSnapshotCount" yaml:"maxSnapshotCount"`
}

// ConfigExportMapper decodes configExportP wrappers.
var ConfigExportMapper = NewMapper(ClassConfigExport,
	Field("name", String, func(p *ConfigExportPolicy, v string) { p.Name = v }),
	Field("adminSt", Enum(AdminStateTriggered, AdminStateUntriggered), func(p *ConfigExportPolicy, v string) { p.AdminState = v }),
	Field("format", Enum(FormatJSON, FormatXML), func(p *ConfigExportPolicy, v string) { p.Format = v }),
	Optional(Field("dn", String, func(p *ConfigExportPolicy, v string) { p.DN = v })),
	Optional(Field("descr", String, func(p *ConfigExportPolicy, v string) { p.Description = v })),
	Optional(Field("targetDn", String, func(p *ConfigExportPolicy, v string) { p.TargetDN = v })),
	Optional(Field("maxSnapshotCount", String, func(p *ConfigExportPolicy, v string) { p.MaxSnapshotCount = v })),
)

// LoginResult holds the aaaLogin attributes the client keeps.
type LoginResult struct {
	Token                 string `json:"token"                 yaml:"-"`
	UserName              string `json:"userName"              yaml:"userName"`
	Version               string `json:"version"               yaml:"version"`
	RefreshTimeoutSeconds uint64 `json:"refreshTimeoutSeconds" yaml:"refreshTimeoutSeconds"`
}

// loginMapper decodes the informational aaaLogin attributes. The token is
// extracted separately by LoginToken so each failure has its own error.
var loginMapper = NewMapper(ClassLogin,
	Optional(Field("userName", String, func(r *LoginResult, v string) { r.UserName = v })),
	Optional(Field("version", String, func(r *LoginResult, v string) { r.Version = v })),
	Optional(Field("refreshTimeoutSeconds", UintOrNumericString, func(r *LoginResult, v uint64) { r.RefreshTimeoutSeconds = v })),
)

// LoginDocument builds the aaaUser document posted to aaaLogin.json.
func LoginDocument(username, password string) ([]byte, error) {
	return EncodeObject(NewClassWrapper(ClassUser, map[string]interface{}{
		"name": username,
		"pwd":  password,
	}))
}

// LoginToken extracts imdata[0].aaaLogin.attributes.token. Only the token is
// set on the result; see LoginDetails.
func LoginToken(imdata json.RawMessage) (*LoginResult, error) {
	var items []map[string]struct {
		Attributes map[string]json.RawMessage `json:"attributes"`
	}

	err := json.Unmarshal(imdata, &items)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing imdata: %w", ErrLoginFailed, err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty imdata", ErrLoginFailed)
	}

	if apiErr := ErrorFromImdata(imdata); apiErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, apiErr)
	}

	wrapper, ok := items[0][ClassLogin]
	if !ok {
		return nil, fmt.Errorf("%w: no %s in response", ErrLoginFailed, ClassLogin)
	}

	raw, ok := wrapper.Attributes["token"]
	if !ok {
		return nil, ErrTokenMissing
	}

	if isNull(raw) {
		return nil, ErrTokenNull
	}

	token, err := String(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenNotString, err)
	}

	if token == "" {
		return nil, ErrTokenEmpty
	}

	return &LoginResult{Token: token}, nil
}

// LoginDetails maps the informational aaaLogin attributes (userName, version,
// refreshTimeoutSeconds). A mapping error here never invalidates the token.
func LoginDetails(imdata json.RawMessage) (LoginResult, error) {
	var items []json.RawMessage

	err := json.Unmarshal(imdata, &items)
	if err != nil || len(items) == 0 {
		return LoginResult{}, fmt.Errorf("%w: parsing imdata", ErrMapping)
	}

	return loginMapper.Decode(items[0])
}
