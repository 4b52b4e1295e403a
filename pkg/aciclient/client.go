package aciclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/aci-client/internal/client"
	"github.com/fivetwenty-io/aci-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/aci-client/internal/http"
	"github.com/fivetwenty-io/aci-client/internal/session"
	"github.com/fivetwenty-io/aci-client/pkg/aci"
)

// Authenticator is a client that has not logged in yet.
type Authenticator interface {
	aci.Client
	Login(ctx context.Context) (*aci.LoginResult, error)
}

// New creates a client and logs in. If login fails no client is returned.
func New(ctx context.Context, config *aci.Config) (aci.Client, error) {
	if config == nil {
		return nil, aci.ErrConfigRequired
	}

	if config.Username == "" {
		return nil, aci.ErrUsernameRequired
	}

	cli, err := NewUnauthenticated(config)
	if err != nil {
		return nil, err
	}

	err = cli.Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("logging in to %s: %w", cli.Server(), err)
	}

	return cli, nil
}

// NewUnauthenticated creates a client without performing any I/O. Callers
// must call Authenticate (or Login) before issuing requests, and may retry it.
func NewUnauthenticated(config *aci.Config) (Authenticator, error) {
	if config == nil {
		return nil, aci.ErrConfigRequired
	}

	server := NormalizeServer(config.Server)
	if server == "" {
		return nil, aci.ErrServerRequired
	}

	sess, err := session.New(server, config.Username, config.Password)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	executor, err := newExecutor(config, sess)
	if err != nil {
		return nil, err
	}

	cli, err := client.New(config, sess, executor)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithPassword creates a logged-in client for server with default settings.
func NewWithPassword(ctx context.Context, server, username, password string) (aci.Client, error) {
	return New(ctx, &aci.Config{
		Server:   server,
		Username: username,
		Password: password,
	})
}

// NormalizeServer strips any scheme, path and trailing slash from server,
// leaving host or host:port.
func NormalizeServer(server string) string {
	server = strings.TrimSpace(server)
	server = strings.TrimPrefix(server, "https://")
	server = strings.TrimPrefix(server, "http://")

	if idx := strings.Index(server, "/"); idx >= 0 {
		server = server[:idx]
	}

	return server
}

// newExecutor returns the configured executor, or the production transport
// sharing the session's cookie jar, optionally wrapped with metrics.
func newExecutor(config *aci.Config, sess *session.Session) (aci.Executor, error) {
	executor := config.Executor
	if executor == nil {
		executor = internalhttp.NewClient(createHTTPClientOptions(config, sess)...)
	}

	if config.MetricsRegisterer == nil {
		return executor, nil
	}

	instrumented, err := internalhttp.Instrument(executor, config.MetricsRegisterer)
	if err != nil {
		return nil, fmt.Errorf("instrumenting executor: %w", err)
	}

	return instrumented, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *aci.Config, sess *session.Session) []internalhttp.Option {
	httpOpts := []internalhttp.Option{
		internalhttp.WithCookieJar(sess.Jar()),
		internalhttp.WithTLSVerify(config.VerifyTLS),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	timeout := constants.DefaultHTTPTimeout
	if config.HTTPTimeout > 0 {
		timeout = config.HTTPTimeout
	}

	httpOpts = append(httpOpts, internalhttp.WithTimeout(timeout))

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}
