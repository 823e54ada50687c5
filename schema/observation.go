package schema

import (
	"time"
)

const DateLayout = "2006-01-02"

// Observation - cumulative count of one country (or province) on one day
type Observation struct {
	Country  string    `json:"country"`
	Province string    `json:"province,omitempty"`
	Date     time.Time `json:"date"`
	Value    float64   `json:"value"`
}

// Record - observation augmented with derived daily metrics
type Record struct {
	Country         string    `json:"country"`
	Date            time.Time `json:"date"`
	Value           float64   `json:"value"`
	DateString      string    `json:"date_string"`
	DaysSince       int       `json:"days_since"`
	DailyChange     NullFloat `json:"daily_change"`
	PercentOfGlobal NullFloat `json:"percent_of_global"`
}

// Frame - reshaped long table of one metric
type Frame struct {
	Metric    Metric
	Countries []string
	Records   []Record
}

// CountryRecords returns the date ordered records of a single country.
func (f *Frame) CountryRecords(country string) []Record {
	records := make([]Record, 0)
	for _, r := range f.Records {
		if r.Country == country {
			records = append(records, r)
		}
	}
	return records
}

// Dates returns every distinct date of the frame in ascending order.
func (f *Frame) Dates() []time.Time {
	seen := make(map[time.Time]struct{})
	dates := make([]time.Time, 0)
	for _, r := range f.Records {
		if _, ok := seen[r.Date]; ok {
			continue
		}
		seen[r.Date] = struct{}{}
		dates = append(dates, r.Date)
	}
	SortDates(dates)
	return dates
}
