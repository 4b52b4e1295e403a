package aci

import (
	"context"
	"net/http"
)

// Request is a fully prepared HTTP request handed to an Executor.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Body    []byte
}

// Response is what an Executor returns for a request that reached the
// controller. Status codes are not interpreted at this layer.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Executor sends a prepared request and returns the response or a transport
// error. It is the only capability the client needs from the network, which
// lets tests substitute a fixture-backed implementation.
type Executor interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, req *Request) (*Response, error)

// Execute implements Executor.
func (f ExecutorFunc) Execute(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
