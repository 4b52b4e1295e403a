package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single round trip.
	DefaultHTTPTimeout = 30 * time.Second
)

// Transport retry bounds, applied only when retries are enabled explicitly.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Controller API paths, relative to https://{server}/api/.
const (
	// APIPrefix is the path prefix every request shares.
	APIPrefix = "/api/"

	// LoginPath is the aaaLogin endpoint.
	LoginPath = "aaaLogin.json"

	// ManagedObjectPath is the generic managed-object write endpoint.
	ManagedObjectPath = "mo.json"

	// ClassPathFormat lists every object of a class.
	ClassPathFormat = "class/%s.json"

	// ManagedObjectPathFormat reads one object by dn.
	ManagedObjectPathFormat = "mo/%s.json"
)

// Session constants.
const (
	// SessionCookieName is the cookie the controller reads the token from.
	SessionCookieName = "APIC-cookie"

	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "aci-client"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)
