// Package metrics exposes Prometheus collectors describing ingestion runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/feral-file/yield-ingester/internal/domain"
)

const namespace = "yield_ingester"

// Run outcomes
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Record outcomes
const (
	OutcomeIngested = "ingested"
	OutcomeSkipped  = "skipped"
	OutcomeSynced   = "synced"
)

// Recorder collects run metrics
type Recorder struct {
	runs        *prometheus.CounterVec
	records     *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	lastSuccess *prometheus.GaugeVec
}

// NewRecorder creates the collectors and registers them with reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Ingestion stage executions by stage and status",
			},
			[]string{"stage", "status"},
		),
		records: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_total",
				Help:      "Feed records processed by stage and outcome",
			},
			[]string{"stage", "outcome"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of ingestion stages",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"stage"},
		),
		lastSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful stage completion",
			},
			[]string{"stage"},
		),
	}

	reg.MustRegister(r.runs, r.records, r.runDuration, r.lastSuccess)
	return r
}

// ObserveStage records the outcome and duration of one stage
func (r *Recorder) ObserveStage(stage domain.Stage, err error, started, finished time.Time) {
	if r == nil {
		return
	}

	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	r.runs.WithLabelValues(string(stage), status).Inc()
	r.runDuration.WithLabelValues(string(stage)).Observe(finished.Sub(started).Seconds())
	if err == nil {
		r.lastSuccess.WithLabelValues(string(stage)).Set(float64(finished.Unix()))
	}
}

// AddRecords adds n records with the given outcome
func (r *Recorder) AddRecords(stage domain.Stage, outcome string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.records.WithLabelValues(string(stage), outcome).Add(float64(n))
}
