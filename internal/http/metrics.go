package http

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fivetwenty-io/aci-client/pkg/aci"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "aci_client"
	codeTransportErr = "error"
)

// InstrumentedExecutor wraps an aci.Executor with Prometheus request counters
// and a latency histogram labelled by method and status code.
type InstrumentedExecutor struct {
	next     aci.Executor
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

var _ aci.Executor = (*InstrumentedExecutor)(nil)

// Instrument registers the client metrics on reg and returns the decorated
// executor. Registering twice on the same registry reuses the collectors.
func Instrument(next aci.Executor, reg prometheus.Registerer) (*InstrumentedExecutor, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "requests_total",
		Help:      "Requests sent to the controller, by method and status code.",
	}, []string{"method", "code"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "request_duration_seconds",
		Help:      "Round-trip latency of controller requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	var err error

	requests, err = registerOrReuse(reg, requests)
	if err != nil {
		return nil, err
	}

	latency, err = registerOrReuse(reg, latency)
	if err != nil {
		return nil, err
	}

	return &InstrumentedExecutor{
		next:     next,
		requests: requests,
		latency:  latency,
	}, nil
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		existing, ok := already.ExistingCollector.(C)
		if ok {
			return existing, nil
		}
	}

	return collector, fmt.Errorf("registering metrics: %w", err)
}

// Execute implements aci.Executor.
func (e *InstrumentedExecutor) Execute(ctx context.Context, req *aci.Request) (*aci.Response, error) {
	start := time.Now()
	resp, err := e.next.Execute(ctx, req)

	e.latency.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	code := codeTransportErr
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}

	e.requests.WithLabelValues(req.Method, code).Inc()

	return resp, err
}
