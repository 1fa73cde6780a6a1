// Package metrics exposes scan counters and latencies to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/gavinalvarezz/PhishBotAgent/internal/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "phishbot"

// Recorder implements core.Recorder on its own registry
type Recorder struct {
	registry *prometheus.Registry

	scans    *prometheus.CounterVec
	signals  *prometheus.CounterVec
	errors   *prometheus.CounterVec
	scores   prometheus.Histogram
	duration prometheus.Histogram
}

// NewRecorder creates a recorder and registers its collectors. Process and Go
// runtime collectors are registered too when withRuntime is set.
func NewRecorder(withRuntime bool) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Completed scans by advisory tier.",
		}, []string{"tier", "cached"}),
		signals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_total",
			Help:      "Risk signals seen in scanned email.",
		}, []string{"signal"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_errors_total",
			Help:      "Rejected scan requests by kind.",
		}, []string{"kind"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "risk_score",
			Help:      "Distribution of risk scores.",
			Buckets:   []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Time spent scoring a single email.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	r.registry.MustRegister(r.scans, r.signals, r.errors, r.scores, r.duration)
	if withRuntime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

// ObserveScan records a completed scan
func (r *Recorder) ObserveScan(report *core.Report, elapsed time.Duration) {
	cached := "false"
	if report.Cached {
		cached = "true"
	}
	r.scans.WithLabelValues(string(report.Advice.Tier), cached).Inc()
	r.scores.Observe(float64(report.Result.Score))
	r.duration.Observe(elapsed.Seconds())

	res := report.Result
	if n := len(res.MatchedDanger); n > 0 {
		r.signals.WithLabelValues("danger_phrase").Add(float64(n))
	}
	if n := len(res.MatchedSafe); n > 0 {
		r.signals.WithLabelValues("safe_phrase").Add(float64(n))
	}
	if res.Reputation == core.ReputationSuspicious {
		r.signals.WithLabelValues("suspicious_sender").Inc()
	}
	if res.Spoofed {
		r.signals.WithLabelValues("spoofed_sender").Inc()
	}
	if res.CredentialTrap {
		r.signals.WithLabelValues("credential_trap").Inc()
	}
}

// ObserveError records a rejected scan
func (r *Recorder) ObserveError(kind string) {
	r.errors.WithLabelValues(kind).Inc()
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
