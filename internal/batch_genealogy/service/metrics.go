package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the service-level Prometheus collectors.
type Metrics struct {
	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	cacheLookups  *prometheus.CounterVec
	queries       *prometheus.CounterVec
	cycles        prometheus.Gauge
}

// NewMetrics registers the collectors on reg. A nil reg yields collectors
// that are never exported.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		builds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "genealogy",
			Subsystem: "graph",
			Name:      "builds_total",
			Help:      "Graph builds by outcome",
		}, []string{"status"}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "genealogy",
			Subsystem: "graph",
			Name:      "build_duration_seconds",
			Help:      "Time to validate and build a genealogy graph",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "genealogy",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Graph cache lookups by result (hit, miss, error)",
		}, []string{"result"}),
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "genealogy",
			Subsystem: "query",
			Name:      "requests_total",
			Help:      "Traceability queries by operation and status",
		}, []string{"op", "status"}),
		cycles: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "genealogy",
			Subsystem: "audit",
			Name:      "cycles",
			Help:      "Cycles found by the last audit across all datasets",
		}),
	}
}

func (m *Metrics) query(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.queries.WithLabelValues(op, status).Inc()
}
