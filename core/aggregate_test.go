package core

import (
	"slices"
	"testing"
	"time"

	"github.com/huangsam/airspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyAverages_ChronologicalWithoutZeroFill(t *testing.T) {
	s := mustSeries(t, schema.StationNYC,
		pm25(at(3, 5), 30),
		pm25(at(1, 12), 20),
		pm25(at(1, 0), 10),
	)

	got, err := DailyAverages(s, schema.PM25)
	require.NoError(t, err)
	require.Len(t, got, 2, "day 2 has no readings and must not appear")

	assert.Equal(t, "2016-09-01", got[0].Date)
	assert.Equal(t, 15.0, got[0].Value)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, at(1, 0), got[0].Day)

	assert.Equal(t, "2016-09-03", got[1].Date)
	assert.Equal(t, 30.0, got[1].Value)
	assert.Equal(t, 1, got[1].Count)
}

func TestDailyAverages_NeverMoreThanDistinctDates(t *testing.T) {
	var readings []schema.Reading
	dates := map[string]struct{}{}
	start := time.Date(2016, 12, 30, 18, 0, 0, 0, time.UTC)
	for i := range 100 {
		ts := start.Add(time.Duration(i*3) * time.Hour)
		readings = append(readings, pm25(ts, float64(i)))
		dates[ts.Format(schema.DateLayout)] = struct{}{}
	}
	got, err := DailyAverages(mustSeries(t, schema.StationNYC, readings...), schema.PM25)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), len(dates))
	assert.Len(t, got, len(dates))
	assert.True(t, slices.IsSortedFunc(got, func(a, b schema.DailyAverage) int { return a.Day.Compare(b.Day) }))
}

func TestDailyAverages_EmptySeries(t *testing.T) {
	got, err := DailyAverages(mustSeries(t, schema.StationNYC), schema.PM25)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHourlyPattern_CountsMatchBasicStats(t *testing.T) {
	var readings []schema.Reading
	for day := 1; day <= 2; day++ {
		for h := range 24 {
			readings = append(readings, pm25(at(day, h), float64(h)))
		}
	}
	s := mustSeries(t, schema.StationNYC, readings...)

	got, err := HourlyPattern(s, schema.PM25)
	require.NoError(t, err)
	require.Len(t, got, 24)

	total := 0
	for i, h := range got {
		assert.Equal(t, i, h.Hour)
		assert.Equal(t, float64(i), h.Value)
		assert.Equal(t, 2, h.Count)
		total += h.Count
	}

	st, err := BasicStats(s, schema.PM25)
	require.NoError(t, err)
	assert.Equal(t, st.Count, total)
}

func TestHourlyPattern_OmitsEmptyHours(t *testing.T) {
	s := mustSeries(t, schema.StationBogota,
		both(at(1, 5), 10, 40),
		both(at(2, 3), 20, 60),
		both(at(3, 3), 40, 80),
	)
	got, err := HourlyPattern(s, schema.PM10)
	require.NoError(t, err)
	assert.Equal(t, []schema.HourlyAverage{
		{Hour: 3, Value: 70, Count: 2},
		{Hour: 5, Value: 40, Count: 1},
	}, got)
}

func TestMonthlyPattern_CalendarOrder(t *testing.T) {
	// One reading a day for a year starting in July, so encounter order is Jul..Jun.
	start := time.Date(2016, time.July, 1, 12, 0, 0, 0, time.UTC)
	var readings []schema.Reading
	for i := range 365 {
		ts := start.AddDate(0, 0, i)
		readings = append(readings, pm25(ts, float64(ts.Month())))
	}

	got, err := MonthlyPattern(mustSeries(t, schema.StationNYC, readings...), schema.PM25)
	require.NoError(t, err)
	require.Len(t, got, 12)
	for i, m := range got {
		assert.Equal(t, schema.MonthNames[i], m.Month)
		assert.Equal(t, i+1, m.Index)
		assert.Equal(t, float64(i+1), m.Value)
	}
}

func TestMonthlyPattern_OmitsEmptyMonths(t *testing.T) {
	s := mustSeries(t, schema.StationNYC,
		pm25(time.Date(2016, time.November, 3, 0, 0, 0, 0, time.UTC), 8),
		pm25(time.Date(2017, time.February, 3, 0, 0, 0, 0, time.UTC), 4),
		pm25(time.Date(2016, time.February, 3, 0, 0, 0, 0, time.UTC), 2),
	)
	got, err := MonthlyPattern(s, schema.PM25)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Feb", got[0].Month)
	assert.Equal(t, 3.0, got[0].Value)
	assert.Equal(t, "Nov", got[1].Month)
}

func TestPatterns_RejectMissingPollutant(t *testing.T) {
	s := mustSeries(t, schema.StationNYC, pm25(at(1, 0), 1))
	_, err := HourlyPattern(s, schema.PM10)
	assert.ErrorIs(t, err, schema.ErrPollutantUnavailable)
	_, err = MonthlyPattern(s, schema.PM10)
	assert.ErrorIs(t, err, schema.ErrPollutantUnavailable)
	_, err = DailyAverages(s, schema.PM10)
	assert.ErrorIs(t, err, schema.ErrPollutantUnavailable)
	_, err = TimeSeries(s, schema.PM10)
	assert.ErrorIs(t, err, schema.ErrPollutantUnavailable)
}

func TestTimeSeries_LazyAndRestartable(t *testing.T) {
	s := mustSeries(t, schema.StationBogota,
		both(at(1, 0), 1, 10),
		both(at(1, 1), 2, 20),
		both(at(1, 2), 3, 30),
	)
	seq, err := TimeSeries(s, schema.PM10)
	require.NoError(t, err)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "2016-09-01 01:00:00", first[1].Date)
	assert.Equal(t, 20.0, first[1].Value)

	// Early exit stops iteration.
	n := 0
	for range seq {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestEvery(t *testing.T) {
	seq := slices.Values([]int{0, 1, 2, 3, 4, 5, 6})
	assert.Equal(t, []int{0, 3, 6}, slices.Collect(Every(seq, 3)))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, slices.Collect(Every(seq, 1)))
	assert.Equal(t, []int{0, 6}, slices.Collect(Every(seq, 6)))

	assert.Equal(t, []int{0, 3, 6}, EverySlice([]int{0, 1, 2, 3, 4, 5, 6}, 3))
	assert.Empty(t, EverySlice([]int{}, 20))
	assert.Len(t, EverySlice(make([]int, 41), 20), 3)
	assert.Len(t, EverySlice(make([]int, 40), 20), 2)
}
