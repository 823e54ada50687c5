package series

import (
	"sort"
	"time"

	"github.com/bitmark-inc/covid-monitor/schema"
)

func sortRecords(records []schema.Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

// daysSince counts consecutive days at or above threshold. Any day below
// threshold resets the count to zero.
func daysSince(records []schema.Record, threshold float64) {
	count := 0
	for i := range records {
		if records[i].Value < threshold {
			count = 0
		} else {
			count++
		}
		records[i].DaysSince = count
	}
}

// dailyChange is the first difference of a date ordered series, missing
// for the first day
func dailyChange(records []schema.Record) {
	for i := range records {
		if i == 0 {
			records[i].DailyChange = schema.NullFloat{}
			continue
		}
		records[i].DailyChange = schema.Float(records[i].Value - records[i-1].Value)
	}
}

// percentOfGlobal divides each daily change by the sum of daily changes of
// all countries on the same date
func percentOfGlobal(records []schema.Record) {
	type total struct {
		sum   float64
		count int
	}

	totals := make(map[time.Time]*total)
	for _, r := range records {
		if !r.DailyChange.Valid {
			continue
		}
		t, ok := totals[r.Date]
		if !ok {
			t = &total{}
			totals[r.Date] = t
		}
		t.sum += r.DailyChange.Float64
		t.count++
	}

	for i, r := range records {
		t, ok := totals[r.Date]
		if !ok || t.count == 0 {
			records[i].PercentOfGlobal = schema.NullFloat{}
			continue
		}
		records[i].PercentOfGlobal = Share(r.DailyChange, t.sum)
	}
}

// Share returns part / total in percent. It is missing when part is missing
// or total is not positive, a zero or negative total only comes from
// corrections of cumulative counts.
func Share(part schema.NullFloat, total float64) schema.NullFloat {
	if !part.Valid || total <= 0 {
		return schema.NullFloat{}
	}
	return schema.Float(part.Float64 / total * 100)
}
