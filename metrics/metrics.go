// Package metrics exposes parse, reparse and node cache activity to
// Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dhamidi/greenleaf/reparse"
	"github.com/dhamidi/greenleaf/tree"
)

const namespace = "greenleaf"

// Metrics owns a private registry so that several servers in one process
// never clash over collector names.
type Metrics struct {
	registry *prometheus.Registry

	parses       prometheus.Counter
	parseSeconds prometheus.Histogram
	reparses     *prometheus.CounterVec
	mismatches   prometheus.Counter
	syntaxErrors prometheus.Gauge
}

// New registers the greenleaf collectors. cache may be nil.
func New(cache *tree.NodeCache) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		parses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parses_total",
			Help:      "Full parses performed.",
		}),
		parseSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Time spent in full parses and reparses.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		reparses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reparses_total",
			Help:      "Reparses after an edit, by the strategy that produced the tree.",
		}, []string{"strategy"}),
		mismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reparse_mismatches_total",
			Help:      "Incremental reparses rejected by validation.",
		}),
		syntaxErrors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "syntax_errors",
			Help:      "Syntax errors in the most recently parsed tree.",
		}),
	}
	m.registry.MustRegister(m.parses, m.parseSeconds, m.reparses, m.mismatches, m.syntaxErrors)
	if cache != nil {
		m.registry.MustRegister(NewCacheCollector(cache))
	}
	return m
}

// ObserveParse records a full parse that took d.
func (m *Metrics) ObserveParse(t *tree.Tree, d time.Duration) {
	m.parses.Inc()
	m.parseSeconds.Observe(d.Seconds())
	m.syntaxErrors.Set(float64(len(t.Errors())))
}

// ObserveReparse records the outcome of a reparse. It has the signature
// reparse.WithObserver expects.
func (m *Metrics) ObserveReparse(strategy reparse.Strategy, mismatch bool) {
	m.reparses.WithLabelValues(strategy.String()).Inc()
	if mismatch {
		m.mismatches.Inc()
	}
}

// ObserveReparseTree records the duration and error count of a reparse.
func (m *Metrics) ObserveReparseTree(t *tree.Tree, d time.Duration) {
	m.parseSeconds.Observe(d.Seconds())
	m.syntaxErrors.Set(float64(len(t.Errors())))
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
