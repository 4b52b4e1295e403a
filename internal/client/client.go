package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/aci-client/internal/constants"
	"github.com/fivetwenty-io/aci-client/internal/session"
	"github.com/fivetwenty-io/aci-client/pkg/aci"
)

// Static errors for err113 compliance.
var (
	ErrExecutorRequired = errors.New("executor is required")
)

// Client implements the aci.Client interface.
type Client struct {
	executor aci.Executor
	session  *session.Session
	requests *RequestBuilder
	logger   aci.Logger
}

var _ aci.Client = (*Client)(nil)

// New creates an unauthenticated client. It performs no I/O; call
// Authenticate before issuing requests.
func New(config *aci.Config, sess *session.Session, executor aci.Executor) (*Client, error) {
	if config == nil {
		return nil, aci.ErrConfigRequired
	}

	if sess == nil || sess.Server() == "" {
		return nil, aci.ErrServerRequired
	}

	if executor == nil {
		return nil, ErrExecutorRequired
	}

	return &Client{
		executor: executor,
		session:  sess,
		requests: NewRequestBuilder(sess.Server()),
		logger:   config.Logger,
	}, nil
}

// Authenticate implements aci.SessionClient.Authenticate. A successful login
// replaces any previous token; a failed one leaves the session unchanged.
func (c *Client) Authenticate(ctx context.Context) error {
	_, err := c.Login(ctx)

	return err
}

// Login authenticates like Authenticate and also returns the login details.
func (c *Client) Login(ctx context.Context) (*aci.LoginResult, error) {
	if c.session.Username() == "" {
		return nil, fmt.Errorf("%w: %w", aci.ErrLoginFailed, aci.ErrUsernameRequired)
	}

	body, err := aci.LoginDocument(c.session.Username(), c.session.Password())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", aci.ErrLoginFailed, err)
	}

	resp, err := c.executor.Execute(ctx, c.requests.Post(constants.LoginPath, body))
	if err != nil {
		return nil, fmt.Errorf("authenticating: %w", err)
	}

	envelope, err := aci.DecodeEnvelope(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", aci.ErrLoginFailed, err)
	}

	result, err := aci.LoginToken(envelope.Imdata)
	if err != nil {
		c.logWarn("Login rejected", map[string]interface{}{
			"server":      c.session.Server(),
			"username":    c.session.Username(),
			"status_code": resp.StatusCode,
		})

		return nil, err
	}

	details, err := aci.LoginDetails(envelope.Imdata)
	if err != nil {
		c.logDebug("Ignoring login details", map[string]interface{}{
			"server": c.session.Server(),
			"error":  err.Error(),
		})
	} else {
		details.Token = result.Token
		result = &details
	}

	err = c.session.SetToken(c.requests.BaseURL(), result.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", aci.ErrLoginFailed, err)
	}

	c.logInfo("Authenticated", map[string]interface{}{
		"server":   c.session.Server(),
		"username": c.session.Username(),
		"version":  result.Version,
	})

	return result, nil
}

// Token implements aci.SessionClient.Token.
func (c *Client) Token() string {
	return c.session.Token()
}

// Server implements aci.SessionClient.Server.
func (c *Client) Server() string {
	return c.session.Server()
}

// CookieJar implements aci.SessionClient.CookieJar.
func (c *Client) CookieJar() http.CookieJar {
	return c.session.Jar()
}

// GetJSON implements aci.ReadClient.GetJSON.
func (c *Client) GetJSON(ctx context.Context, path string) (json.RawMessage, error) {
	envelope, err := c.GetEnvelope(ctx, path)
	if err != nil {
		return nil, err
	}

	return envelope.Imdata, nil
}

// GetEnvelope implements aci.ReadClient.GetEnvelope.
func (c *Client) GetEnvelope(ctx context.Context, path string) (*aci.Envelope, error) {
	if !c.session.Authenticated() {
		return nil, fmt.Errorf("getting %s: %w", path, aci.ErrNotAuthenticated)
	}

	resp, err := c.executor.Execute(ctx, c.requests.Get(path))
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", path, err)
	}

	envelope, err := aci.DecodeEnvelope(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: getting %s: %w", aci.ErrReadFailed, path, err)
	}

	if envelope.Partial() {
		c.logDebug("Partial result", map[string]interface{}{
			"path":        path,
			"returned":    envelope.Len(),
			"total_count": envelope.TotalCount,
		})
	}

	return envelope, nil
}

// ListClass implements aci.ReadClient.ListClass.
func (c *Client) ListClass(ctx context.Context, className string) ([]aci.ClassWrapper, error) {
	envelope, err := c.GetEnvelope(ctx, fmt.Sprintf(constants.ClassPathFormat, className))
	if err != nil {
		return nil, err
	}

	wrappers, err := envelope.Wrappers()
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", className, err)
	}

	return wrappers, nil
}

// GetManagedObject implements aci.ReadClient.GetManagedObject.
func (c *Client) GetManagedObject(ctx context.Context, dn string) ([]aci.ClassWrapper, error) {
	envelope, err := c.GetEnvelope(ctx, fmt.Sprintf(constants.ManagedObjectPathFormat, dn))
	if err != nil {
		return nil, err
	}

	wrappers, err := envelope.Wrappers()
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", dn, err)
	}

	return wrappers, nil
}

// Tenants implements aci.ReadClient.Tenants.
func (c *Client) Tenants(ctx context.Context) ([]aci.Tenant, error) {
	imdata, err := c.GetJSON(ctx, fmt.Sprintf(constants.ClassPathFormat, aci.ClassTenant))
	if err != nil {
		return nil, err
	}

	tenants, err := aci.TenantMapper.DecodeAll(imdata)
	if err != nil {
		return nil, fmt.Errorf("mapping tenants: %w", err)
	}

	return tenants, nil
}

// PostJSON implements aci.WriteClient.PostJSON.
func (c *Client) PostJSON(ctx context.Context, path string, body []byte) (json.RawMessage, error) {
	document, err := aci.ParseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("posting %s: %w", path, err)
	}

	if !c.session.Authenticated() {
		return nil, fmt.Errorf("posting %s: %w", path, aci.ErrNotAuthenticated)
	}

	resp, err := c.executor.Execute(ctx, c.requests.Post(path, document))
	if err != nil {
		return nil, fmt.Errorf("posting %s: %w", path, err)
	}

	envelope, err := aci.DecodeEnvelope(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: posting %s: %w", aci.ErrWriteFailed, path, err)
	}

	return envelope.Imdata, nil
}

// PostObject implements aci.WriteClient.PostObject.
func (c *Client) PostObject(ctx context.Context, path string, obj aci.ClassWrapper) (json.RawMessage, error) {
	body, err := aci.EncodeObject(obj)
	if err != nil {
		return nil, fmt.Errorf("posting %s: %w", path, err)
	}

	return c.PostJSON(ctx, path, body)
}

// Snapshot implements aci.AdminClient.Snapshot.
func (c *Client) Snapshot(ctx context.Context, opts aci.SnapshotOptions) (json.RawMessage, error) {
	body, err := aci.NewSnapshotDocument(opts)
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}

	imdata, err := c.PostJSON(ctx, constants.ManagedObjectPath, body)
	if err != nil {
		return nil, fmt.Errorf("triggering snapshot: %w", err)
	}

	c.logInfo("Snapshot triggered", map[string]interface{}{
		"server": c.session.Server(),
		"dn":     aci.SnapshotPolicyDN,
	})

	return imdata, nil
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

func (c *Client) logInfo(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, fields)
	}
}

func (c *Client) logWarn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}
