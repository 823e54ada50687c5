package csse

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-monitor/consts"
	"github.com/bitmark-inc/covid-monitor/schema"
)

const byteOrderMark = "\ufeff"

type timeSeries struct {
	dataDir string
}

func (t timeSeries) Load(ctx context.Context, metric schema.Metric) ([]schema.Observation, error) {
	path, err := consts.TimeSeriesFile(t.dataDir, metric.Kind)
	if nil != err {
		return nil, fmt.Errorf("%w: %w", ErrMissingInput, err)
	}

	if err := ctx.Err(); nil != err {
		return nil, err
	}

	f, err := os.Open(path)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"file":   path,
			"error":  err,
		}).Error("open time series")
		return nil, fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	defer f.Close()

	provinces, err := Parse(f)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"file":   path,
			"error":  err,
		}).Error("parse time series")
		return nil, err
	}

	countries := aggregateCountry(provinces)

	log.WithFields(log.Fields{
		"prefix":       logPrefix,
		"metric":       metric.Kind,
		"file":         path,
		"rows":         len(provinces),
		"observations": len(countries),
	}).Debug("load time series")

	return countries, nil
}

type dateColumn struct {
	index int
	date  time.Time
}

// Parse reads a wide time series csv, one row per province and one column
// per date, into province level observations.
func Parse(r io.Reader) ([]schema.Observation, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if nil != err {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	provinceIndex, countryIndex := -1, -1
	dates := make([]dateColumn, 0)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, byteOrderMark))
		switch name {
		case consts.ProvinceColumn:
			provinceIndex = i
		case consts.CountryColumn:
			countryIndex = i
		default:
			if d, err := time.Parse(consts.HeaderDateLayout, name); nil == err {
				dates = append(dates, dateColumn{index: i, date: d})
			}
		}
	}

	if provinceIndex < 0 || countryIndex < 0 {
		return nil, fmt.Errorf("%w: expect columns %q and %q", ErrMalformedInput, consts.ProvinceColumn, consts.CountryColumn)
	}

	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: no date column", ErrMalformedInput)
	}

	observations := make([]schema.Observation, 0)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if nil != err {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}

		line, _ := reader.FieldPos(0)
		country := strings.TrimSpace(row[countryIndex])
		if country == "" {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"line":   line,
			}).Warn("skip row without country")
			continue
		}
		province := strings.TrimSpace(row[provinceIndex])

		for _, d := range dates {
			raw := strings.TrimSpace(row[d.index])

			// upstream leaves a few cells empty, count them as no case
			value := float64(0)
			if raw != "" {
				value, err = strconv.ParseFloat(raw, 64)
				if nil != err {
					return nil, fmt.Errorf("%w: line %d, column %q: %q is not a number", ErrMalformedInput, line, header[d.index], raw)
				}
			}

			observations = append(observations, schema.Observation{
				Country:  country,
				Province: province,
				Date:     d.date,
				Value:    value,
			})
		}
	}

	return observations, nil
}

// aggregateCountry sums provinces up to their country, sorted by country
// and date
func aggregateCountry(data []schema.Observation) []schema.Observation {
	countryMapping := make(map[string]map[time.Time]float64)
	for _, d := range data {
		if _, ok := countryMapping[d.Country]; !ok {
			countryMapping[d.Country] = make(map[time.Time]float64)
		}
		countryMapping[d.Country][d.Date] += d.Value
	}

	countries := make([]string, 0, len(countryMapping))
	for c := range countryMapping {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	result := make([]schema.Observation, 0)
	for _, c := range countries {
		dates := make([]time.Time, 0, len(countryMapping[c]))
		for d := range countryMapping[c] {
			dates = append(dates, d)
		}
		schema.SortDates(dates)

		for _, d := range dates {
			result = append(result, schema.Observation{
				Country: c,
				Date:    d,
				Value:   countryMapping[c][d],
			})
		}
	}

	return result
}

// NewTimeSeries - new loader reading a local checkout of the CSSE repository
func NewTimeSeries(dataDir string) Loader {
	return &timeSeries{
		dataDir: dataDir,
	}
}
