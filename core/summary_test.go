package core

import (
	"testing"

	"github.com/huangsam/airspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	nyc, bogota := comparisonFixture(t)
	ds := mustDataset(t, nyc, bogota)

	got, err := Summarize(ds)
	require.NoError(t, err)

	assert.Equal(t, schema.StationNYC, got.NYCStats.City)
	assert.Equal(t, 4, got.NYCStats.PM25.Count)
	assert.Nil(t, got.NYCStats.PM10)
	require.NotNil(t, got.BogotaStats.PM10)
	assert.Equal(t, schema.StationBogota, got.BogotaCompliance.City)
	assert.NotNil(t, got.BogotaCompliance.PM10Compliance)
	assert.Nil(t, got.NYCCompliance.PM10Compliance)
	assert.Equal(t, 3, got.Comparison.TotalCount)
	assert.InDelta(t, 0.6702082814407995, got.Comparison.Correlation, 1e-9)
}

func TestSummarize_FailsWhenAnyPartFails(t *testing.T) {
	nyc := mustSeries(t, schema.StationNYC, pm25(at(1, 0), 1), pm25(at(1, 1), 2))
	bogota := mustSeries(t, schema.StationBogota, both(at(2, 0), 1, 2), both(at(2, 1), 3, 4))

	_, err := Summarize(mustDataset(t, nyc, bogota))
	assert.ErrorIs(t, err, schema.ErrUndefinedCorrelation)
}
