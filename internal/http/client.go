// Package http is the production transport: an aci.Executor backed by a real
// HTTPS client.
package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fivetwenty-io/aci-client/internal/constants"
	"github.com/fivetwenty-io/aci-client/pkg/aci"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// ErrTransport wraps every failure to obtain a response from the controller.
// Static errors for err113 compliance.
var (
	ErrTransport = errors.New("transport failure")
)

// Client implements aci.Executor over HTTPS.
type Client struct {
	client    *retryablehttp.Client
	logger    aci.Logger
	debug     bool
	userAgent string

	verifyTLS    bool
	timeout      time.Duration
	jar          http.CookieJar
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

var _ aci.Executor = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug request/response logging.
func WithLogger(logger aci.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithCookieJar installs the credential store that attaches the session
// cookie to every request.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithTLSVerify turns controller certificate validation on or off. It is off
// by default because fabric controllers ship self-signed certificates.
func WithTLSVerify(verify bool) Option {
	return func(c *Client) {
		c.verifyTLS = verify
	}
}

// WithRetryConfig opts in to transport retries on connection errors and 5xx.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// NewClient builds the production executor. Without options it sends every
// request exactly once and does not verify the controller certificate.
func NewClient(opts ...Option) *Client {
	c := &Client{
		userAgent: constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !c.verifyTLS, // #nosec G402 -- self-signed controller certificates; opt in with WithTLSVerify
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.RetryMax = c.retryMax
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient = &http.Client{
		Transport: transport,
		Jar:       c.jar,
		Timeout:   c.timeout,
	}

	if c.retryWaitMin > 0 {
		retryClient.RetryWaitMin = c.retryWaitMin
	}

	if c.retryWaitMax > 0 {
		retryClient.RetryWaitMax = c.retryWaitMax
	}

	c.client = retryClient

	return c
}

// Execute implements aci.Executor. Any response that arrives is returned as
// is, whatever its status code.
func (c *Client) Execute(ctx context.Context, req *aci.Request) (*aci.Response, error) {
	var body interface{}
	if req.Body != nil {
		body = req.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range req.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	httpReq.Header.Set("Accept", "application/json")

	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	requestID := newRequestID()
	start := time.Now()

	c.logRequest(requestID, req)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, redactURL(req.URL), err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}

	c.logResponse(requestID, req, resp.StatusCode, time.Since(start))

	return &aci.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}, nil
}

func (c *Client) logRequest(requestID string, req *aci.Request) {
	if !c.debug || c.logger == nil {
		return
	}

	// Bodies are not logged: the login body carries the password.
	c.logger.Debug("HTTP Request", map[string]interface{}{
		"request_id": requestID,
		"method":     req.Method,
		"url":        redactURL(req.URL),
		"body_bytes": len(req.Body),
	})
}

func (c *Client) logResponse(requestID string, req *aci.Request, status int, elapsed time.Duration) {
	if !c.debug || c.logger == nil {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"request_id":  requestID,
		"method":      req.Method,
		"url":         redactURL(req.URL),
		"status_code": status,
		"duration":    elapsed.String(),
	})
}

// newRequestID returns a UUIDv7, or an empty string if the system random
// source fails.
func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return ""
	}

	return id.String()
}

// redactURL drops any userinfo from rawURL.
func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	return parsed.Redacted()
}
