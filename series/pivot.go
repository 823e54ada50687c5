package series

import (
	"github.com/bitmark-inc/covid-monitor/schema"
)

// Pivot turns a frame into a wide table with one row per date and one column
// per field and country. Missing country and date combinations stay missing.
func Pivot(frame *schema.Frame) *schema.Table {
	table := schema.NewTable(frame.Metric, frame.Dates())

	byCountry := make(map[string][]schema.Record, len(frame.Countries))
	for _, r := range frame.Records {
		byCountry[r.Country] = append(byCountry[r.Country], r)
	}

	for _, field := range schema.Fields {
		for _, c := range frame.Countries {
			column := schema.ColumnName(field, c)
			for _, r := range byCountry[c] {
				table.Set(column, r.Date, cell(field, r))
			}
		}
	}

	return table
}

func cell(field string, r schema.Record) schema.NullFloat {
	switch field {
	case schema.FieldValues:
		return schema.Float(r.Value)
	case schema.FieldDaysSince:
		return schema.Float(float64(r.DaysSince))
	case schema.FieldDailyChange:
		return r.DailyChange
	case schema.FieldPercentOfGlobal:
		return r.PercentOfGlobal
	default:
		return schema.NullFloat{}
	}
}

// Unpivot recovers the (country, date, value) observations of a wide table.
func Unpivot(table *schema.Table) []schema.Observation {
	observations := make([]schema.Observation, 0)
	for _, column := range table.Columns {
		field, country, ok := schema.SplitColumnName(column)
		if !ok || field != schema.FieldValues {
			continue
		}

		cells, _ := table.Column(column)
		for i, v := range cells {
			if !v.Valid {
				continue
			}
			observations = append(observations, schema.Observation{
				Country: country,
				Date:    table.Dates[i],
				Value:   v.Float64,
			})
		}
	}
	return observations
}
