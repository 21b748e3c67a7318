package metrics

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/prometheus/client_golang/prometheus"
)

const RPCClientSubsystem = "rpc_client"

// RPCClientMetricer records client-side RPC request metrics.
type RPCClientMetricer interface {
	RecordRPCClientRequest(method string) func(err error)
}

// RPCClientMetrics tracks requests, durations and error-labelled responses
// of one RPC client. Do not remove labels or change settings, dashboards
// depend on them.
type RPCClientMetrics struct {
	requestsTotal          *prometheus.CounterVec
	requestDurationSeconds *prometheus.HistogramVec
	responsesTotal         *prometheus.CounterVec
}

var _ RPCClientMetricer = (*RPCClientMetrics)(nil)

// MakeRPCClientMetrics creates RPC client metrics under the given namespace.
// This struct is intended to be embedded into a larger metrics struct.
func MakeRPCClientMetrics(ns string, factory Factory) RPCClientMetrics {
	return RPCClientMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: RPCClientSubsystem,
			Name:      "requests_total",
			Help:      "Total RPC requests initiated",
		}, []string{
			"method",
		}),
		requestDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: RPCClientSubsystem,
			Name:      "request_duration_seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			Help:      "Histogram of RPC client request durations",
		}, []string{
			"method",
		}),
		responsesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: RPCClientSubsystem,
			Name:      "responses_total",
			Help:      "Total RPC request responses received",
		}, []string{
			"method",
			"error",
		}),
	}
}

// RecordRPCClientRequest counts one initiated request and returns the
// callback recording its outcome and duration.
func (m *RPCClientMetrics) RecordRPCClientRequest(method string) func(err error) {
	m.requestsTotal.WithLabelValues(method).Inc()
	timer := prometheus.NewTimer(m.requestDurationSeconds.WithLabelValues(method))
	return func(err error) {
		m.recordRPCClientResponse(method, err)
		timer.ObserveDuration()
	}
}

func (m *RPCClientMetrics) recordRPCClientResponse(method string, err error) {
	var errStr string
	var rpcErr rpc.Error
	var httpErr rpc.HTTPError
	if err == nil {
		errStr = "<nil>"
	} else if errors.As(err, &rpcErr) {
		errStr = fmt.Sprintf("rpc_%d", rpcErr.ErrorCode())
	} else if errors.As(err, &httpErr) {
		errStr = fmt.Sprintf("http_%d", httpErr.StatusCode)
	} else {
		errStr = "<unknown>"
	}
	m.responsesTotal.WithLabelValues(method, errStr).Inc()
}
