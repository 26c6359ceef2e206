// Package metrics counts what a generation run wrote to the board document.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of one process. Each Metrics owns
// its registry so several engines can coexist in tests.
type Metrics struct {
	Registry *prometheus.Registry

	TracesCreated    *prometheus.CounterVec
	ViasCreated      *prometheus.CounterVec
	TracesRemoved    prometheus.Counter
	ViasRemoved      prometheus.Counter
	FootprintsPlaced prometheus.Counter
	RunDuration      prometheus.Histogram
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		TracesCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ringroute_traces_created_total",
			Help: "Trace segments appended to the board document, by generation phase",
		}, []string{"phase"}),
		ViasCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ringroute_vias_created_total",
			Help: "Vias appended to the board document, by generation phase",
		}, []string{"phase"}),
		TracesRemoved: f.NewCounter(prometheus.CounterOpts{
			Name: "ringroute_traces_removed_total",
			Help: "Trace segments removed by the region eraser",
		}),
		ViasRemoved: f.NewCounter(prometheus.CounterOpts{
			Name: "ringroute_vias_removed_total",
			Help: "Vias removed by the region eraser",
		}),
		FootprintsPlaced: f.NewCounter(prometheus.CounterOpts{
			Name: "ringroute_footprints_placed_total",
			Help: "LED footprints positioned",
		}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ringroute_run_duration_seconds",
			Help:    "Wall time of a full erase and redraw",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
}

// ObserveCreated records appended geometry for a phase. Safe on nil.
func (m *Metrics) ObserveCreated(phase string, traces, vias int) {
	if m == nil {
		return
	}
	m.TracesCreated.WithLabelValues(phase).Add(float64(traces))
	m.ViasCreated.WithLabelValues(phase).Add(float64(vias))
}

// ObserveErase records removed geometry. Safe on nil.
func (m *Metrics) ObserveErase(traces, vias int) {
	if m == nil {
		return
	}
	m.TracesRemoved.Add(float64(traces))
	m.ViasRemoved.Add(float64(vias))
}

// ObservePlacement records positioned footprints. Safe on nil.
func (m *Metrics) ObservePlacement(n int) {
	if m == nil {
		return
	}
	m.FootprintsPlaced.Add(float64(n))
}

// ObserveRun records the duration of a run. Safe on nil.
func (m *Metrics) ObserveRun(d time.Duration) {
	if m == nil {
		return
	}
	m.RunDuration.Observe(d.Seconds())
}

// WriteTextfile writes all collectors in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
