package series

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/covid-monitor/consts"
	"github.com/bitmark-inc/covid-monitor/schema"
)

func TestPivot(t *testing.T) {
	obs := concat(
		observations("France", 5, 5, 9),
		observations("Italy", 10),
	)
	frame, err := Reshape(obs, deaths, []string{"France", "Italy"})
	require.NoError(t, err)

	table := Pivot(frame)
	assert.Len(t, table.Dates, 3)
	assert.Equal(t, []string{
		"Values_France", "Values_Italy",
		"DaysSince_France", "DaysSince_Italy",
		"DailyChange_France", "DailyChange_Italy",
		"PercentOfGlobal_France", "PercentOfGlobal_Italy",
	}, table.Columns)

	values, ok := table.Column("Values_France")
	require.True(t, ok)
	assert.Equal(t, []schema.NullFloat{schema.Float(5), schema.Float(5), schema.Float(9)}, values)

	// italy has no data after the first day, no fill
	italy, _ := table.Column("Values_Italy")
	assert.Equal(t, []schema.NullFloat{schema.Float(10), {}, {}}, italy)

	days, _ := table.Column("DaysSince_France")
	assert.Equal(t, []schema.NullFloat{schema.Float(1), schema.Float(2), schema.Float(3)}, days)

	change, _ := table.Column("DailyChange_France")
	assert.Equal(t, []schema.NullFloat{{}, schema.Float(0), schema.Float(4)}, change)
}

func TestPivotUnpivotRoundTrip(t *testing.T) {
	obs := concat(
		observations("France", 5, 7, 12, 20),
		observations("Italy", 10, 30, 31),
		observations("Peru", 3, 3, 8, 9),
	)
	frame, err := Reshape(obs, deaths, []string{"France", "Italy", consts.RestOfWorld})
	require.NoError(t, err)

	expected := make([]schema.Observation, 0, len(frame.Records))
	for _, r := range frame.Records {
		expected = append(expected, schema.Observation{Country: r.Country, Date: r.Date, Value: r.Value})
	}

	actual := Unpivot(Pivot(frame))
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
