package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var countBuckets = []float64{1, 10, 100, 1000, 10000, 100000}

func (r *Registry) initPipelineMetrics() {
	r.LoadDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "polarization_load_duration_seconds",
			Help:    "Time spent reading an input table",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"table"},
	)

	r.RowsLoaded = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "polarization_rows_loaded_total",
			Help: "Rows read from each input table",
		},
		[]string{"table"},
	)

	r.RowsSkipped = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "polarization_rows_skipped_total",
			Help: "Rows dropped while loading, by reason",
		},
		[]string{"table", "reason"},
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "polarization_graph_nodes",
			Help: "Labelled nodes retained after community filtering",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "polarization_graph_edges",
			Help: "Edges retained after community filtering",
		},
	)

	r.GraphCommunities = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "polarization_graph_communities",
			Help: "Communities retained after filtering",
		},
	)

	r.PairsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "polarization_pairs_total",
			Help: "Community pairs analysed, by whether a polarization was defined",
		},
		[]string{"status"},
	)

	r.PairDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "polarization_pair_duration_seconds",
			Help:    "Time to analyse one community pair",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		},
	)

	r.PairInternalNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "polarization_pair_internal_nodes",
			Help:    "Internal nodes found per community pair",
			Buckets: countBuckets,
		},
	)

	r.PairBoundaryNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "polarization_pair_boundary_nodes",
			Help:    "Boundary nodes found per community pair",
			Buckets: countBuckets,
		},
	)

	r.ExcludedNodesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "polarization_excluded_nodes_total",
			Help: "Boundary nodes left out of a pair average because no edge was counted for them",
		},
	)

	r.SinkWritesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "polarization_sink_writes_total",
			Help: "Result writes per output sink",
		},
		[]string{"sink", "status"},
	)
}
