package series

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-monitor/consts"
	"github.com/bitmark-inc/covid-monitor/schema"
)

const (
	logPrefix = "series"
)

var (
	ErrNoCountry            = fmt.Errorf("no country requested")
	ErrDuplicateObservation = fmt.Errorf("duplicate observation")
)

// Reshape filters country level observations to the requested countries and
// derives the daily metrics of every country. The single country "all"
// requests every country of the data-set, and "Rest of World" requests the
// sum of every country not requested.
func Reshape(observations []schema.Observation, metric schema.Metric, countries []string) (*schema.Frame, error) {
	if len(countries) == 0 {
		return nil, ErrNoCountry
	}

	available := countryOrder(observations)
	if len(countries) == 1 && countries[0] == consts.AllCountries {
		countries = available
	}

	requested := make(map[string]struct{}, len(countries))
	unique := make([]string, 0, len(countries))
	for _, c := range countries {
		if _, dup := requested[c]; dup {
			continue
		}
		requested[c] = struct{}{}
		unique = append(unique, c)
	}
	countries = unique

	partitions := make(map[string][]schema.Record)
	for _, o := range observations {
		if _, ok := requested[o.Country]; !ok {
			continue
		}
		partitions[o.Country] = append(partitions[o.Country], newRecord(o.Country, o))
	}

	if _, ok := requested[consts.RestOfWorld]; ok {
		if _, exist := partitions[consts.RestOfWorld]; !exist {
			partitions[consts.RestOfWorld] = restOfWorld(observations, requested)
		}
	}

	frame := &schema.Frame{
		Metric:    metric,
		Countries: make([]string, 0, len(countries)),
		Records:   make([]schema.Record, 0, len(observations)),
	}

	for _, c := range countries {
		records, ok := partitions[c]
		if !ok || len(records) == 0 {
			log.WithFields(log.Fields{
				"prefix":  logPrefix,
				"metric":  metric.Kind,
				"country": c,
			}).Warn("no data for requested country")
			continue
		}

		sortRecords(records)
		if err := checkDuplicate(records); nil != err {
			return nil, err
		}

		daysSince(records, metric.Threshold)
		dailyChange(records)

		frame.Countries = append(frame.Countries, c)
		frame.Records = append(frame.Records, records...)
	}

	percentOfGlobal(frame.Records)

	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"metric":    metric.Kind,
		"countries": len(frame.Countries),
		"records":   len(frame.Records),
	}).Debug("reshape observations")

	return frame, nil
}

func newRecord(country string, o schema.Observation) schema.Record {
	return schema.Record{
		Country:    country,
		Date:       o.Date,
		Value:      o.Value,
		DateString: o.Date.Format(schema.DateLayout),
	}
}

// countryOrder returns distinct countries in order of first appearance
func countryOrder(observations []schema.Observation) []string {
	seen := make(map[string]struct{})
	countries := make([]string, 0)
	for _, o := range observations {
		if _, ok := seen[o.Country]; ok {
			continue
		}
		seen[o.Country] = struct{}{}
		countries = append(countries, o.Country)
	}
	return countries
}

func checkDuplicate(records []schema.Record) error {
	for i := 1; i < len(records); i++ {
		if records[i].Date.Equal(records[i-1].Date) {
			return fmt.Errorf("%w: %s on %s", ErrDuplicateObservation, records[i].Country, records[i].DateString)
		}
	}
	return nil
}
