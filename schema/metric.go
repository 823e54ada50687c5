package schema

import "fmt"

type MetricKind string

const (
	Deaths MetricKind = "deaths"
	Cases  MetricKind = "cases"
)

// Metric - a cumulative series published by the data provider, with the
// threshold used to align countries on their first significant day
type Metric struct {
	Kind      MetricKind
	Threshold float64
}

func (m Metric) String() string {
	return fmt.Sprintf("%s(>=%g)", m.Kind, m.Threshold)
}
