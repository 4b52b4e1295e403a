package client

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/aci-client/internal/constants"
	"github.com/fivetwenty-io/aci-client/pkg/aci"
)

// RequestBuilder turns API-relative paths into requests against
// https://{server}/api/{path}. The session token is not added here; the
// executor's cookie jar attaches it.
type RequestBuilder struct {
	server string
}

// NewRequestBuilder creates a builder for server (host or host:port).
func NewRequestBuilder(server string) *RequestBuilder {
	return &RequestBuilder{server: server}
}

// BaseURL returns https://{server}/, the scope of the session cookie.
func (b *RequestBuilder) BaseURL() *url.URL {
	return &url.URL{Scheme: "https", Host: b.server, Path: "/"}
}

// URL returns the absolute URL for path. Any query string on path is kept.
func (b *RequestBuilder) URL(path string) string {
	return "https://" + b.server + constants.APIPrefix + strings.TrimPrefix(path, "/")
}

// Get builds a GET request for path.
func (b *RequestBuilder) Get(path string) *aci.Request {
	return &aci.Request{
		Method:  http.MethodGet,
		URL:     b.URL(path),
		Headers: http.Header{},
	}
}

// Post builds a POST request carrying body.
func (b *RequestBuilder) Post(path string, body []byte) *aci.Request {
	return &aci.Request{
		Method:  http.MethodPost,
		URL:     b.URL(path),
		Headers: http.Header{"Content-Type": []string{"application/json"}},
		Body:    body,
	}
}
