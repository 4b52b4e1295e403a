package aci

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SessionClient covers the login lifecycle.
type SessionClient interface {
	Authenticate(ctx context.Context) error
	Token() string
	Server() string
	CookieJar() http.CookieJar
}

// ReadClient covers GET requests against the managed-object tree.
type ReadClient interface {
	GetJSON(ctx context.Context, path string) (json.RawMessage, error)
	GetEnvelope(ctx context.Context, path string) (*Envelope, error)
	ListClass(ctx context.Context, className string) ([]ClassWrapper, error)
	GetManagedObject(ctx context.Context, dn string) ([]ClassWrapper, error)
	Tenants(ctx context.Context) ([]Tenant, error)
}

// WriteClient covers POST requests creating or modifying managed objects.
type WriteClient interface {
	PostJSON(ctx context.Context, path string, body []byte) (json.RawMessage, error)
	PostObject(ctx context.Context, path string, obj ClassWrapper) (json.RawMessage, error)
}

// AdminClient provides administrative operations built on the write path.
type AdminClient interface {
	Snapshot(ctx context.Context, opts SnapshotOptions) (json.RawMessage, error)
}

type Client interface {
	SessionClient
	ReadClient
	WriteClient
	AdminClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// # Authentication
//
// The controller issues a session token in exchange for Username/Password at
// aaaLogin.json. The token is stored once per successful login and attached to
// every later request through the session cookie jar. It is never refreshed
// automatically; call Authenticate again when the controller rejects it.
//
// # Timeouts, retries, and TLS
//
// Per-request deadlines are controlled via the context passed to each method.
// HTTPTimeout bounds a single round trip when set. The client sends every
// request exactly once unless RetryMax is set explicitly. Fabric controllers
// usually present self-signed certificates, so certificate verification is
// off unless VerifyTLS is true.
type Config struct {
	// Server: controller address, host or host:port. A scheme and trailing
	// slash are stripped by aciclient.New.
	Server string
	// Username: account used for aaaLogin.
	Username string
	// Password: password for Username. It is sent only in the login body.
	Password string

	// VerifyTLS: when true the production transport validates the controller
	// certificate chain.
	VerifyTLS bool
	// HTTPTimeout: optional per round-trip timeout of the production transport.
	HTTPTimeout time.Duration
	// RetryMax: opt-in transport retries for connection errors and 5xx. Zero
	// (the default) sends each request once.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger

	// Executor: replaces the production HTTPS transport. Tests pass a
	// fixture-backed executor here.
	Executor Executor
	// MetricsRegisterer: when set, request counters and latency histograms
	// are registered here.
	MetricsRegisterer prometheus.Registerer
}
