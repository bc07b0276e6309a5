package core

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/huangsam/airspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected schema.BasicStats
	}{
		{
			name:   "even count interpolates median",
			values: []float64{4, 1, 3, 2},
			expected: schema.BasicStats{
				Mean: 2.5, Median: 2.5, Std: math.Sqrt(5.0 / 3.0), Min: 1, Max: 4, Count: 4,
			},
		},
		{
			name:     "odd count takes middle value",
			values:   []float64{3, 1, 2},
			expected: schema.BasicStats{Mean: 2, Median: 2, Std: 1, Min: 1, Max: 3, Count: 3},
		},
		{
			name:     "single observation has zero std",
			values:   []float64{7},
			expected: schema.BasicStats{Mean: 7, Median: 7, Std: 0, Min: 7, Max: 7, Count: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readings := make([]schema.Reading, len(tt.values))
			for i, v := range tt.values {
				readings[i] = pm25(at(1, i), v)
			}
			got, err := BasicStats(mustSeries(t, schema.StationNYC, readings...), schema.PM25)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected.Mean, got.Mean, 1e-9)
			assert.InDelta(t, tt.expected.Median, got.Median, 1e-9)
			assert.InDelta(t, tt.expected.Std, got.Std, 1e-9)
			assert.Equal(t, tt.expected.Min, got.Min)
			assert.Equal(t, tt.expected.Max, got.Max)
			assert.Equal(t, tt.expected.Count, got.Count)
		})
	}
}

func TestBasicStats_Errors(t *testing.T) {
	nyc := mustSeries(t, schema.StationNYC, pm25(at(1, 0), 1))
	_, err := BasicStats(nyc, schema.PM10)
	assert.ErrorIs(t, err, schema.ErrPollutantUnavailable)
	var unavailable *schema.PollutantUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, schema.StationNYC, unavailable.Station)

	empty := mustSeries(t, schema.StationBogota)
	_, err = BasicStats(empty, schema.PM10)
	assert.ErrorIs(t, err, schema.ErrEmptySeries)
}

func TestBasicStats_MedianBetweenMinAndMax(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	for trial := range 50 {
		n := 1 + rng.IntN(200)
		readings := make([]schema.Reading, n)
		start := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := range readings {
			readings[i] = both(start.Add(time.Duration(i)*time.Hour), rng.Float64()*80, rng.Float64()*200)
		}
		s := mustSeries(t, schema.StationBogota, readings...)
		for _, p := range schema.AllPollutants {
			st, err := BasicStats(s, p)
			require.NoError(t, err)
			assert.LessOrEqual(t, st.Min, st.Median, "trial %d %s", trial, p)
			assert.LessOrEqual(t, st.Median, st.Max, "trial %d %s", trial, p)
			assert.GreaterOrEqual(t, st.Std, 0.0)
		}
	}
}

func TestStationStats(t *testing.T) {
	nyc := mustSeries(t, schema.StationNYC, pm25(at(1, 0), 2), pm25(at(1, 1), 4))
	got, err := StationStats(nyc)
	require.NoError(t, err)
	assert.Equal(t, schema.StationNYC, got.City)
	assert.Equal(t, 3.0, got.PM25.Mean)
	assert.Nil(t, got.PM10)

	bogota := mustSeries(t, schema.StationBogota, both(at(1, 0), 20, 50), both(at(1, 1), 30, 70))
	got, err = StationStats(bogota)
	require.NoError(t, err)
	require.NotNil(t, got.PM10)
	assert.Equal(t, 60.0, got.PM10.Mean)
	assert.Equal(t, 2, got.PM10.Count)
}
