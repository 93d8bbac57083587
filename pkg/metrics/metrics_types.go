package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics of one polarization run
type Registry struct {
	// Input metrics
	LoadDuration *prometheus.HistogramVec
	RowsLoaded   *prometheus.CounterVec
	RowsSkipped  *prometheus.CounterVec

	// Filtered graph metrics
	GraphNodes       prometheus.Gauge
	GraphEdges       prometheus.Gauge
	GraphCommunities prometheus.Gauge

	// Pair pipeline metrics
	PairsTotal         *prometheus.CounterVec
	PairDuration       prometheus.Histogram
	PairInternalNodes  prometheus.Histogram
	PairBoundaryNodes  prometheus.Histogram
	ExcludedNodesTotal prometheus.Counter

	// Output metrics
	SinkWritesTotal *prometheus.CounterVec

	// System metrics
	RunDurationSeconds prometheus.Gauge
	GoRoutines         prometheus.Gauge
	MemoryAllocBytes   prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initPipelineMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
