package constants

import "errors"

// Configuration errors.
var (
	ErrNoServerConfigured   = errors.New("no controller configured, use --server or 'aci config set server <host>'")
	ErrNoUsernameConfigured = errors.New("no username configured, use --username or 'aci config set username <name>'")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrInvalidConfigValue   = errors.New("invalid configuration value")
	ErrPasswordNotStorable  = errors.New("the password is never written to the config file, use ACI_PASSWORD")
	ErrNoPasswordProvided   = errors.New("no password provided, use --password, ACI_PASSWORD or an interactive terminal")
)

// Validation errors.
var (
	ErrInvalidOutputFormat        = errors.New("invalid output format, use table, json or yaml")
	ErrDirectoryTraversalDetected = errors.New("directory traversal detected in file path")
	ErrNotRegularFile             = errors.New("path is not a regular file")
	ErrNoDocumentProvided         = errors.New("no document provided, use --file or --data")
	ErrDNWithPath                 = errors.New("--dn and a PATH argument cannot be combined")
)
