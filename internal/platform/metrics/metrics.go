// Package metrics records probe metrics in a private Prometheus registry and
// writes them in the text exposition format, for node_exporter's textfile
// collector or for archiving next to the scan results. No port is opened.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"subprobe/internal/core/domain"
	"subprobe/internal/core/ports"
)

// Compile-time interface check.
var _ ports.ProbeObserver = (*Recorder)(nil)

// Recorder implements ports.ProbeObserver and keeps counters per outcome,
// a latency histogram per scheme and run-level gauges.
type Recorder struct {
	registry *prometheus.Registry

	// Counters
	attemptsTotal   *prometheus.CounterVec
	candidatesTotal *prometheus.CounterVec

	// Gauges
	peakInFlight        prometheus.Gauge
	liveHosts           prometheus.Gauge
	scanDurationSeconds prometheus.Gauge
	candidatesPlanned   prometheus.Gauge

	// Histograms
	attemptSeconds *prometheus.HistogramVec
}

// Options configures the recorder.
type Options struct {
	// Namespace prefixes every metric name (default: "subprobe").
	Namespace string

	// ConstLabels are attached to every metric (e.g. domain, mode).
	ConstLabels prometheus.Labels
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder(opts Options) (*Recorder, error) {
	if opts.Namespace == "" {
		opts.Namespace = "subprobe"
	}

	r := &Recorder{registry: prometheus.NewRegistry()}
	if err := r.initMetrics(opts); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return r, nil
}

func (r *Recorder) initMetrics(opts Options) error {
	ns, labels := opts.Namespace, opts.ConstLabels

	r.attemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   ns,
			Name:        "attempts_total",
			Help:        "Probe attempts by scheme and outcome",
			ConstLabels: labels,
		},
		[]string{"scheme", "outcome"},
	)

	r.candidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   ns,
			Name:        "candidates_total",
			Help:        "Candidates resolved by final outcome",
			ConstLabels: labels,
		},
		[]string{"outcome"},
	)

	r.peakInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   ns,
		Name:        "in_flight_peak",
		Help:        "Peak number of candidates probed at the same time",
		ConstLabels: labels,
	})

	r.liveHosts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   ns,
		Name:        "live_hosts",
		Help:        "Live hosts discovered in the last run",
		ConstLabels: labels,
	})

	r.scanDurationSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   ns,
		Name:        "scan_duration_seconds",
		Help:        "Wall time of the last run in seconds",
		ConstLabels: labels,
	})

	r.candidatesPlanned = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   ns,
		Name:        "candidates_planned",
		Help:        "Candidates generated for the last run",
		ConstLabels: labels,
	})

	r.attemptSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   ns,
			Name:        "attempt_duration_seconds",
			Help:        "Probe attempt latency in seconds",
			Buckets:     []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			ConstLabels: labels,
		},
		[]string{"scheme"},
	)

	collectors := []prometheus.Collector{
		r.attemptsTotal,
		r.candidatesTotal,
		r.peakInFlight,
		r.liveHosts,
		r.scanDurationSeconds,
		r.candidatesPlanned,
		r.attemptSeconds,
	}
	for _, c := range collectors {
		if err := r.registry.Register(c); err != nil {
			return err
		}
	}

	// Every outcome shows up, even at zero
	for _, kind := range domain.OutcomeKinds {
		r.candidatesTotal.WithLabelValues(kind.String())
	}
	return nil
}

// AttemptFinished implements ports.ProbeObserver.
func (r *Recorder) AttemptFinished(_ domain.Candidate, attempt domain.Outcome) {
	scheme := attempt.Scheme
	if scheme == "" {
		scheme = "none"
	}
	r.attemptsTotal.WithLabelValues(scheme, attempt.Kind.String()).Inc()
	r.attemptSeconds.WithLabelValues(scheme).Observe(attempt.Duration.Seconds())
}

// CandidateFinished implements ports.ProbeObserver.
func (r *Recorder) CandidateFinished(result domain.Result) {
	r.candidatesTotal.WithLabelValues(result.Outcome.Kind.String()).Inc()
}

// Finish records run-level gauges from a completed summary.
func (r *Recorder) Finish(summary *domain.ScanSummary) {
	r.candidatesPlanned.Set(float64(summary.Candidates))
	r.liveHosts.Set(float64(summary.Found()))
	r.scanDurationSeconds.Set(summary.Elapsed.Seconds())
	r.peakInFlight.Set(float64(summary.PeakInFlight))
}

// WriteTextfile writes the current metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}

// Registry exposes the underlying registry (tests, embedding).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
