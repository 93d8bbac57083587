package metrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pair status label values
const (
	StatusDefined = "defined"
	StatusMissing = "missing"
)

// RecordLoad records reading one input table
func (r *Registry) RecordLoad(table string, rows int, duration time.Duration) {
	r.LoadDuration.WithLabelValues(table).Observe(duration.Seconds())
	r.RowsLoaded.WithLabelValues(table).Add(float64(rows))
}

// RecordSkipped counts rows dropped while loading
func (r *Registry) RecordSkipped(table, reason string, rows int) {
	if rows == 0 {
		return
	}
	r.RowsSkipped.WithLabelValues(table, reason).Add(float64(rows))
}

// SetGraphSize records the size of the filtered graph
func (r *Registry) SetGraphSize(nodes, edges, communities int) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.GraphCommunities.Set(float64(communities))
}

// RecordPair records the analysis of one community pair
func (r *Registry) RecordPair(defined bool, internal, boundary, excluded int, duration time.Duration) {
	status := StatusMissing
	if defined {
		status = StatusDefined
	}
	r.PairsTotal.WithLabelValues(status).Inc()
	r.PairDuration.Observe(duration.Seconds())
	r.PairInternalNodes.Observe(float64(internal))
	r.PairBoundaryNodes.Observe(float64(boundary))
	if excluded > 0 {
		r.ExcludedNodesTotal.Add(float64(excluded))
	}
}

// RecordSinkWrite records one write to an output sink
func (r *Registry) RecordSinkWrite(sink string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.SinkWritesTotal.WithLabelValues(sink, status).Inc()
}

// FinishRun captures run-level system metrics
func (r *Registry) FinishRun(elapsed time.Duration) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.RunDurationSeconds.Set(elapsed.Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}

// WriteTextfile writes every metric in the Prometheus text format, suitable
// for the node exporter textfile collector
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
