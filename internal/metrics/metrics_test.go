package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/yield-ingester/internal/domain"
)

func TestRecorder_ObserveStage(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	started := time.Unix(1716508800, 0)
	finished := started.Add(3 * time.Second)

	r.ObserveStage(domain.StagePools, nil, started, finished)
	r.ObserveStage(domain.StageProtocols, errors.New("boom"), started, finished)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("pools", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("protocols", StatusFailure)))
	assert.Equal(t, float64(finished.Unix()), testutil.ToFloat64(r.lastSuccess.WithLabelValues("pools")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.lastSuccess.WithLabelValues("protocols")))
}

func TestRecorder_AddRecords(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.AddRecords(domain.StagePools, OutcomeIngested, 3)
	r.AddRecords(domain.StagePools, OutcomeSkipped, 0)
	r.AddRecords(domain.StagePools, OutcomeIngested, 2)

	assert.Equal(t, 5.0, testutil.ToFloat64(r.records.WithLabelValues("pools", OutcomeIngested)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.records.WithLabelValues("pools", OutcomeSkipped)))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveStage(domain.StagePools, nil, time.Now(), time.Now())
		r.AddRecords(domain.StagePools, OutcomeIngested, 1)
	})
}

func TestServer_Endpoints(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)
	r.AddRecords(domain.StagePools, OutcomeIngested, 1)

	srv := NewServer(":0", reg, false)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `yield_ingester_records_total{outcome="ingested",stage="pools"} 1`)
}
