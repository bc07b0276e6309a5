package core

import (
	"testing"
	"time"

	"github.com/huangsam/airspot/schema"
	"github.com/stretchr/testify/require"
)

// at returns an hourly timestamp in September 2016.
func at(day, hour int) time.Time {
	return time.Date(2016, time.September, day, hour, 0, 0, 0, time.UTC)
}

func pm25(t time.Time, v float64) schema.Reading {
	return schema.Reading{Time: t, PM25: v}
}

func both(t time.Time, v25, v10 float64) schema.Reading {
	return schema.Reading{Time: t, PM25: v25, PM10: v10}
}

func mustSeries(t *testing.T, station schema.Station, readings ...schema.Reading) *Series {
	t.Helper()
	s, err := NewSeries(station, readings)
	require.NoError(t, err)
	return s
}

func mustDataset(t *testing.T, series ...*Series) *Dataset {
	t.Helper()
	ds, err := NewDataset(series...)
	require.NoError(t, err)
	return ds
}
