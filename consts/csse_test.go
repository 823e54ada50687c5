package consts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/covid-monitor/consts"
	"github.com/bitmark-inc/covid-monitor/schema"
)

func TestTimeSeriesFile(t *testing.T) {
	mapping := map[schema.MetricKind]string{
		schema.Deaths: "/data/COVID-19/csse_covid_19_data/csse_covid_19_time_series/time_series_covid19_deaths_global.csv",
		schema.Cases:  "/data/COVID-19/csse_covid_19_data/csse_covid_19_time_series/time_series_covid19_confirmed_global.csv",
	}

	for kind, expected := range mapping {
		actual, err := consts.TimeSeriesFile("/data/COVID-19", kind)
		assert.NoError(t, err)
		assert.Equal(t, expected, actual, "wrong path")
	}
}

func TestTimeSeriesFileUnknownMetric(t *testing.T) {
	_, err := consts.TimeSeriesFile("/data/COVID-19", schema.MetricKind("recovered"))
	assert.Error(t, err)
}
