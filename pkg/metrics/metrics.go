package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/passcheck/pkg/report"
)

var ErrWriteTextfile = errors.New("failed to write metrics textfile")

// Metrics provides observability for validation runs.
type Metrics struct {
	registry *prometheus.Registry

	// Records parsed from the input
	RecordsRead prometheus.Counter

	// Validation outcomes by mode and result
	Outcomes *prometheus.CounterVec

	// Violations by kind and key
	Violations *prometheus.CounterVec

	// Inputs rejected before validation, by reason
	ParseFailures *prometheus.CounterVec

	// Whole run latency
	RunDuration prometheus.Histogram
}

// New registers all collectors on reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RecordsRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "passcheck_records_read_total",
			Help: "Total records assembled from input batches",
		}),

		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "passcheck_records_validated_total",
			Help: "Total validated records by mode and result",
		}, []string{"mode", "result"}), // result: "valid", "invalid"

		Violations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "passcheck_violations_total",
			Help: "Total validation violations by kind and key",
		}, []string{"kind", "key"}),

		ParseFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "passcheck_parse_failures_total",
			Help: "Total batches rejected while reading, by reason",
		}, []string{"reason"}),

		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "passcheck_run_duration_seconds",
			Help:    "Duration of a full read and validate run",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// IncrementParseFailure records a batch that could not be read.
func (m *Metrics) IncrementParseFailure(reason string) {
	if m != nil {
		m.ParseFailures.WithLabelValues(reason).Inc()
	}
}

// ObserveReport records the counts of a finished run.
func (m *Metrics) ObserveReport(r report.Report) {
	if m == nil {
		return
	}

	m.RecordsRead.Add(float64(r.Total))
	m.Outcomes.WithLabelValues(r.Mode.String(), "valid").Add(float64(r.Valid))
	m.Outcomes.WithLabelValues(r.Mode.String(), "invalid").Add(float64(r.Invalid))
	for _, rec := range r.Records {
		for _, v := range rec.Violations {
			m.Violations.WithLabelValues(v.Kind, v.Key).Inc()
		}
	}
	m.RunDuration.Observe(r.Duration().Seconds())
}

// ObserveRunDuration records the total run duration when no report exists.
func (m *Metrics) ObserveRunDuration(d time.Duration) {
	if m != nil {
		m.RunDuration.Observe(d.Seconds())
	}
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Join(ErrWriteTextfile, err)
	}
	return nil
}
