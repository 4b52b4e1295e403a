// Package fixture provides a deterministic aci.Executor backed by static
// responses. It is a closed world: any request without a registered fixture
// fails.
package fixture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/fivetwenty-io/aci-client/internal/constants"
	"github.com/fivetwenty-io/aci-client/pkg/aci"
)

// Static errors for err113 compliance.
var (
	ErrNoFixture    = errors.New("no fixture registered")
	ErrBodyMismatch = errors.New("posted body does not match fixture")
)

// Route is one canned response. Writes are matched on Path plus the single
// top-level class key of the posted document.
type Route struct {
	Method string
	Path   string
	Class  string
	Status int
	Body   []byte

	// ExpectBody, when set, must be JSON-equal to the posted body.
	ExpectBody []byte
}

// Get registers a canned GET response for path (relative to /api/).
func Get(path, body string) Route {
	return Route{Method: http.MethodGet, Path: path, Status: http.StatusOK, Body: []byte(body)}
}

// Post registers a canned POST response for path and the document's class.
func Post(path, className, body string) Route {
	return Route{Method: http.MethodPost, Path: path, Class: className, Status: http.StatusOK, Body: []byte(body)}
}

// ExpectingBody returns a copy of r that asserts the posted document.
func (r Route) ExpectingBody(body string) Route {
	r.ExpectBody = []byte(body)

	return r
}

// WithStatus returns a copy of r answering with status.
func (r Route) WithStatus(status int) Route {
	r.Status = status

	return r
}

// Executor implements aci.Executor over a fixed set of routes.
type Executor struct {
	mutex    sync.Mutex
	routes   []Route
	requests []aci.Request
}

var _ aci.Executor = (*Executor)(nil)

// New creates an executor serving routes.
func New(routes ...Route) *Executor {
	return &Executor{routes: routes}
}

// Handle adds a route.
func (e *Executor) Handle(route Route) *Executor {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.routes = append(e.routes, route)

	return e
}

// Requests returns a copy of every request received, in order.
func (e *Executor) Requests() []aci.Request {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	out := make([]aci.Request, len(e.requests))
	copy(out, e.requests)

	return out
}

// Execute implements aci.Executor.
func (e *Executor) Execute(ctx context.Context, req *aci.Request) (*aci.Response, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}

	path, err := apiPath(req.URL)
	if err != nil {
		return nil, err
	}

	var className string

	if req.Method != http.MethodGet {
		classes, err := aci.TopLevelClasses(req.Body)
		if err != nil {
			return nil, fmt.Errorf("fixture: %s %s: %w", req.Method, path, err)
		}

		if len(classes) == 1 {
			className = classes[0]
		}
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.requests = append(e.requests, *req)

	for _, route := range e.routes {
		if route.Method != req.Method || route.Path != path || route.Class != className {
			continue
		}

		if route.ExpectBody != nil && !jsonEqual(route.ExpectBody, req.Body) {
			return nil, fmt.Errorf("%w: %s %s: got %s", ErrBodyMismatch, req.Method, path, req.Body)
		}

		return &aci.Response{
			StatusCode: route.Status,
			Headers:    http.Header{"Content-Type": []string{"application/json"}},
			Body:       route.Body,
		}, nil
	}

	if className != "" {
		return nil, fmt.Errorf("%w: %s %s (%s)", ErrNoFixture, req.Method, path, className)
	}

	return nil, fmt.Errorf("%w: %s %s", ErrNoFixture, req.Method, path)
}

// apiPath returns the URL path with the /api/ prefix removed.
func apiPath(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("fixture: parsing url: %w", err)
	}

	return strings.TrimPrefix(parsed.Path, constants.APIPrefix), nil
}

func jsonEqual(a, b []byte) bool {
	var left, right interface{}

	if json.Unmarshal(a, &left) != nil || json.Unmarshal(b, &right) != nil {
		return false
	}

	return reflect.DeepEqual(left, right)
}
