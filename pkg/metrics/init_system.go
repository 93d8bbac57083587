package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSystemMetrics() {
	r.RunDurationSeconds = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "polarization_run_duration_seconds",
			Help: "Wall time of the whole run",
		},
	)

	r.GoRoutines = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "polarization_goroutines",
			Help: "Number of goroutines at the end of the run",
		},
	)

	r.MemoryAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "polarization_memory_alloc_bytes",
			Help: "Bytes of allocated heap objects at the end of the run",
		},
	)
}
