package metrics

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

const (
	logPrefix = "metrics"
	ScopeName = "covid_monitor"
	stageName = "stage"
)

// Recorder - in memory metrics of a single run
type Recorder struct {
	scope tally.TestScope
}

// New - new recorder tagged with the run id
func New(runID string) *Recorder {
	return &Recorder{
		scope: tally.NewTestScope(ScopeName, map[string]string{"run": runID}),
	}
}

// Stage starts the timer of a pipeline stage, stop it when the stage ends.
func (r *Recorder) Stage(name string) tally.Stopwatch {
	return r.scope.SubScope(stageName).Timer(name).Start()
}

func (r *Recorder) Count(name string, n int) {
	r.scope.Counter(name).Inc(int64(n))
}

// Counters returns counter values by name.
func (r *Recorder) Counters() map[string]int64 {
	result := make(map[string]int64)
	for _, c := range r.scope.Snapshot().Counters() {
		result[c.Name()] += c.Value()
	}
	return result
}

// Durations returns the total time of every stage by name.
func (r *Recorder) Durations() map[string]time.Duration {
	result := make(map[string]time.Duration)
	for _, t := range r.scope.Snapshot().Timers() {
		for _, d := range t.Values() {
			result[t.Name()] += d
		}
	}
	return result
}

// Log writes the snapshot of every metric.
func (r *Recorder) Log() {
	fields := log.Fields{
		"prefix": logPrefix,
	}

	counters := r.Counters()
	for _, name := range sortedKeys(counters) {
		fields[name] = counters[name]
	}

	durations := r.Durations()
	for name, d := range durations {
		fields[name] = d.Round(time.Millisecond).String()
	}

	log.WithFields(fields).Info("run metrics")
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
