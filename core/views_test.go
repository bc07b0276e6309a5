package core

import (
	"testing"

	"github.com/huangsam/airspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewDataset(t *testing.T) *Dataset {
	t.Helper()
	var nyc, bogota []schema.Reading
	for h := range 24 {
		nyc = append(nyc, pm25(at(1, h), float64(h)))
		bogota = append(bogota, both(at(1, h), float64(2*h+1), float64(3*h)))
	}
	return mustDataset(t,
		mustSeries(t, schema.StationNYC, nyc...),
		mustSeries(t, schema.StationBogota, bogota...),
	)
}

func TestSampledSeries(t *testing.T) {
	ds := viewDataset(t)
	s, err := ds.Get(schema.StationBogota)
	require.NoError(t, err)

	got, err := SampledSeries(s, schema.PM10, 6)
	require.NoError(t, err)
	assert.Equal(t, schema.StationBogota, got.Station)
	assert.Equal(t, schema.PM10, got.Pollutant)
	assert.Equal(t, 6, got.Stride)
	require.Len(t, got.Points, 4)
	assert.Equal(t, "2016-09-01 06:00:00", got.Points[1].Date)
	assert.Equal(t, 18.0, got.Points[1].Value)

	nyc, err := ds.Get(schema.StationNYC)
	require.NoError(t, err)
	_, err = SampledSeries(nyc, schema.PM10, 6)
	assert.ErrorIs(t, err, schema.ErrPollutantUnavailable)
}

func TestViews_CarryStationAndPollutant(t *testing.T) {
	ds := viewDataset(t)
	s, err := ds.Get(schema.StationNYC)
	require.NoError(t, err)

	daily, err := DailyView(s, schema.PM25)
	require.NoError(t, err)
	assert.Equal(t, schema.StationNYC, daily.Station)
	require.Len(t, daily.Days, 1)
	assert.Equal(t, 11.5, daily.Days[0].Value)

	hourly, err := HourlyView(s, schema.PM25)
	require.NoError(t, err)
	assert.Len(t, hourly.Hours, 24)

	monthly, err := MonthlyView(s, schema.PM25)
	require.NoError(t, err)
	require.Len(t, monthly.Months, 1)
	assert.Equal(t, "Sep", monthly.Months[0].Month)
}

func TestCompareStations_SamplesRecordsOnly(t *testing.T) {
	ds := viewDataset(t)
	got, err := CompareStations(ds, schema.PM25, 6)
	require.NoError(t, err)
	assert.Equal(t, 24, got.TotalCount)
	assert.Equal(t, 0, got.GreaterCount)
	assert.InDelta(t, 1.0, got.Correlation, 1e-9)
	assert.Len(t, got.Records, 4)

	_, err = CompareStations(ds, schema.PM10, 6)
	assert.ErrorIs(t, err, schema.ErrPollutantUnavailable)
}

func TestSampledSummary(t *testing.T) {
	got, err := SampledSummary(viewDataset(t), 20)
	require.NoError(t, err)
	assert.Equal(t, 24, got.Comparison.TotalCount)
	assert.Len(t, got.Comparison.Records, 2)
	assert.Equal(t, schema.StationBogota, got.BogotaStats.City)
}
