package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/gridsim/core/metrics"
)

type captureLogger struct {
	msgs []string
}

func (c *captureLogger) Debugf(string, ...any)         {}
func (c *captureLogger) Debugw(string, map[string]any) {}
func (c *captureLogger) Infof(string, ...any)          {}
func (c *captureLogger) Infow(msg string, _ map[string]any) {
	c.msgs = append(c.msgs, msg)
}
func (c *captureLogger) Warnf(string, ...any)  {}
func (c *captureLogger) Errorf(string, ...any) {}

func TestNewSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	log := &captureLogger{}

	sink, err := NewSink(coremetrics.Config{}, reg, log)
	require.NoError(t, err)
	assert.IsType(t, coremetrics.NopSink{}, sink)

	sink, err = NewSink(coremetrics.Config{PrometheusEnabled: true}, reg, log)
	require.NoError(t, err)
	assert.IsType(t, &PromSink{}, sink)

	sink, err = NewSink(coremetrics.Config{PrometheusEnabled: true, LogRuns: true}, reg, log)
	require.NoError(t, err)
	multi, ok := sink.(*MultiSink)
	require.True(t, ok)
	assert.Len(t, multi.Sinks, 2)

	require.NoError(t, sink.RecordRun(coremetrics.RunEvent{Source: "default", Outcome: coremetrics.OutcomeOK}))
	assert.Equal(t, []string{"run recorded"}, log.msgs)
}
