package consts

import (
	"fmt"
	"path/filepath"

	"github.com/bitmark-inc/covid-monitor/schema"
)

const (
	// RestOfWorld - synthetic country summing every country not requested
	RestOfWorld = "Rest of World"
	// AllCountries - requests every country of the data-set
	AllCountries = "all"

	ProvinceColumn   = "Province/State"
	CountryColumn    = "Country/Region"
	HeaderDateLayout = "1/2/06"

	TimeSeriesDir = "csse_covid_19_data/csse_covid_19_time_series"
)

var timeSeriesFiles = map[schema.MetricKind]string{
	schema.Deaths: "time_series_covid19_deaths_global.csv",
	schema.Cases:  "time_series_covid19_confirmed_global.csv",
}

// TimeSeriesFile - path of the global time series csv of a metric inside a
// local checkout of the CSSE repository
func TimeSeriesFile(dataDir string, kind schema.MetricKind) (string, error) {
	name, ok := timeSeriesFiles[kind]
	if !ok {
		return "", fmt.Errorf("%s not exist", kind)
	}
	return filepath.Join(dataDir, TimeSeriesDir, name), nil
}
