package series

import (
	"time"

	"github.com/bitmark-inc/covid-monitor/consts"
	"github.com/bitmark-inc/covid-monitor/schema"
)

// restOfWorld sums, per date, every country which is not requested
func restOfWorld(observations []schema.Observation, requested map[string]struct{}) []schema.Record {
	totals := make(map[time.Time]float64)
	for _, o := range observations {
		if _, ok := requested[o.Country]; ok {
			continue
		}
		totals[o.Date] += o.Value
	}

	records := make([]schema.Record, 0, len(totals))
	for d, v := range totals {
		records = append(records, newRecord(consts.RestOfWorld, schema.Observation{
			Date:  d,
			Value: v,
		}))
	}
	return records
}
