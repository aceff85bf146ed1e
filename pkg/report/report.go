package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/passcheck/pkg/passport"
)

// Report summarizes one validation run.
type Report struct {
	RunID      uuid.UUID      `json:"run_id" yaml:"run_id"`
	Source     string         `json:"source" yaml:"source"`
	Mode       passport.Mode  `json:"mode" yaml:"mode"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time      `json:"finished_at" yaml:"finished_at"`
	Total      int            `json:"total" yaml:"total"`
	Valid      int            `json:"valid" yaml:"valid"`
	Invalid    int            `json:"invalid" yaml:"invalid"`
	ByKind     map[string]int `json:"by_kind" yaml:"by_kind"`
	ByKey      map[string]int `json:"by_key" yaml:"by_key"`
	Records    []RecordResult `json:"records,omitempty" yaml:"records,omitempty"`
}

// RecordResult is the outcome for a single record, in input order.
type RecordResult struct {
	Index      int              `json:"index" yaml:"index"`
	Valid      bool             `json:"valid" yaml:"valid"`
	Violations []ViolationEntry `json:"violations,omitempty" yaml:"violations,omitempty"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// ViolationEntry is the serializable form of passport.Violation.
type ViolationEntry struct {
	Kind  string `json:"kind" yaml:"kind"`
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Option adjusts a report while it is built.
type Option func(*Report)

// WithTiming records when the run started and finished.
func WithTiming(started, finished time.Time) Option {
	return func(r *Report) {
		r.StartedAt = started.UTC()
		r.FinishedAt = finished.UTC()
	}
}

// NewRunID returns a time-ordered run identifier.
func NewRunID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// Build aggregates per-record validation results. results[i] is the error
// returned by validating record i, nil for a valid record.
func Build(runID uuid.UUID, source string, mode passport.Mode, results []error, opts ...Option) Report {
	now := time.Now().UTC()
	r := Report{
		RunID:      runID,
		Source:     source,
		Mode:       mode,
		StartedAt:  now,
		FinishedAt: now,
		Total:      len(results),
		ByKind:     make(map[string]int),
		ByKey:      make(map[string]int),
		Records:    make([]RecordResult, 0, len(results)),
	}

	for i, err := range results {
		res := RecordResult{Index: i, Valid: err == nil}
		if err == nil {
			r.Valid++
			r.Records = append(r.Records, res)
			continue
		}

		r.Invalid++
		vs := passport.ExtractViolations(err)
		if vs == nil {
			res.Error = err.Error()
		}
		for _, v := range vs {
			res.Violations = append(res.Violations, ViolationEntry{
				Kind:  string(v.Kind),
				Key:   string(v.Key),
				Value: v.Value,
			})
			r.ByKind[string(v.Kind)]++
			r.ByKey[string(v.Key)]++
		}
		r.Records = append(r.Records, res)
	}

	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Duration is the wall time of the run.
func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Failed returns only the invalid records.
func (r Report) Failed() []RecordResult {
	var out []RecordResult
	for _, rec := range r.Records {
		if !rec.Valid {
			out = append(out, rec)
		}
	}
	return out
}

// ViolationCount is the total number of violations across all records.
func (r Report) ViolationCount() int {
	n := 0
	for _, c := range r.ByKind {
		n += c
	}
	return n
}
