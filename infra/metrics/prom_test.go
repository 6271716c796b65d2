package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/gridsim/core/metrics"
)

func TestPromSinkRecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordRun(coremetrics.RunEvent{
		RunID:           "r1",
		Source:          "default",
		Outcome:         coremetrics.OutcomeOK,
		Steps:           2,
		TotalDemand:     294.5,
		TotalGeneration: 300,
		TotalStorage:    104.5,
		Storage:         []float64{47.5, 57},
		Duration:        time.Millisecond,
	}))
	require.NoError(t, sink.RecordRun(coremetrics.RunEvent{Source: "upload", Outcome: coremetrics.OutcomeMalformedUpload}))

	expected := `
# HELP grid_simulation_runs_total Total number of simulation runs
# TYPE grid_simulation_runs_total counter
grid_simulation_runs_total{outcome="malformed_upload",source="upload"} 1
grid_simulation_runs_total{outcome="ok",source="default"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(sink.runs, strings.NewReader(expected)))
	assert.Equal(t, 104.5, testutil.ToFloat64(sink.totals.WithLabelValues("storage")))
	assert.Equal(t, 294.5, testutil.ToFloat64(sink.totals.WithLabelValues("demand")))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.storage))
}

func TestPromSinkReRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, second.RecordRun(coremetrics.RunEvent{Source: "default", Outcome: coremetrics.OutcomeInvalidInput}))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.runs.WithLabelValues("default", coremetrics.OutcomeInvalidInput)))
}

func TestHandlerServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	require.NoError(t, sink.RecordRun(coremetrics.RunEvent{Source: "config", Outcome: coremetrics.OutcomeOK}))

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `grid_simulation_runs_total{outcome="ok",source="config"} 1`)
}

type countSink struct{ n int }

func (c *countSink) RecordRun(coremetrics.RunEvent) error {
	c.n++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1, s2 := &countSink{}, &countSink{}
	m := NewMultiSink(s1, s2, coremetrics.NopSink{})
	require.NoError(t, m.RecordRun(coremetrics.RunEvent{}))
	assert.Equal(t, 1, s1.n)
	assert.Equal(t, 1, s2.n)
}
