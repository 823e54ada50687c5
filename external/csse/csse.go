package csse

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/covid-monitor/schema"
)

// Loader - interface to read a global time series snapshot of the CSSE
// data-set into country level observations
type Loader interface {
	Load(ctx context.Context, metric schema.Metric) ([]schema.Observation, error)
}

const (
	logPrefix = "csse"
)

var (
	ErrMissingInput   = fmt.Errorf("missing input file")
	ErrMalformedInput = fmt.Errorf("malformed input file")
)
