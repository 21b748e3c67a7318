package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Factory creates pre-registered metric vectors.
type Factory interface {
	NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec
	NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec
}

type factory struct {
	registry prometheus.Registerer
}

// With returns a Factory registering everything it creates with registry.
func With(registry prometheus.Registerer) Factory {
	return &factory{registry: registry}
}

func (f *factory) NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(opts, labelNames)
	f.registry.MustRegister(vec)
	return vec
}

func (f *factory) NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	vec := prometheus.NewHistogramVec(opts, labelNames)
	f.registry.MustRegister(vec)
	return vec
}

// NewRegistry returns a fresh registry with the standard process and Go
// runtime collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())
	return registry
}
