package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/covid-monitor/metrics"
)

func TestCount(t *testing.T) {
	r := metrics.New("run-1")
	r.Count("observations", 20)
	r.Count("observations", 5)
	r.Count("uploads", 1)

	assert.Equal(t, map[string]int64{
		"covid_monitor.observations": 25,
		"covid_monitor.uploads":      1,
	}, r.Counters())
}

func TestStage(t *testing.T) {
	r := metrics.New("run-1")
	sw := r.Stage("load")
	sw.Stop()

	durations := r.Durations()
	_, ok := durations["covid_monitor.stage.load"]
	assert.True(t, ok, "load stage not timed")

	assert.NotPanics(t, r.Log)
}
