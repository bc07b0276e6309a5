package sample

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/huangsam/airspot/internal/loader"
	"github.com/huangsam/airspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultGenerator() Generator {
	return Generator{
		Start: time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2017, 4, 1, 0, 0, 0, 0, time.UTC),
		Seed:  42,
	}
}

func TestTimestamps_Inclusive(t *testing.T) {
	g := defaultGenerator()
	ts := g.Timestamps()
	// 212 days of hours plus the closing midnight.
	require.Len(t, ts, 212*24+1)
	assert.Equal(t, g.Start, ts[0])
	assert.Equal(t, g.End, ts[len(ts)-1])

	assert.Nil(t, Generator{Start: g.End, End: g.Start}.Timestamps())
	assert.Len(t, Generator{Start: g.Start, End: g.Start}.Timestamps(), 1)
}

func TestSeasonal(t *testing.T) {
	s := Seasonal(5)
	assert.InDelta(t, 0, s[0], 1e-9)
	assert.InDelta(t, 5, s[1], 1e-9)
	assert.InDelta(t, 0, s[2], 1e-9)
	assert.InDelta(t, -5, s[3], 1e-9)
	assert.InDelta(t, 0, s[4], 1e-9)
	assert.Equal(t, []float64{0}, Seasonal(1))
	assert.Empty(t, Seasonal(0))
}

func TestGenerate(t *testing.T) {
	data, err := defaultGenerator().Generate()
	require.NoError(t, err)

	nyc, bogota := data[schema.StationNYC], data[schema.StationBogota]
	require.Len(t, nyc, 5089)
	require.Len(t, bogota, 5089)

	var nycSum, bogotaSum float64
	for i := range nyc {
		assert.Equal(t, nyc[i].Time, bogota[i].Time)
		assert.GreaterOrEqual(t, nyc[i].PM25, 0.0)
		assert.Zero(t, nyc[i].PM10)
		assert.GreaterOrEqual(t, bogota[i].PM25, 0.0)
		assert.GreaterOrEqual(t, bogota[i].PM10, 0.0)
		assert.Equal(t, math.Round(bogota[i].PM10*100)/100, bogota[i].PM10)
		nycSum += nyc[i].PM25
		bogotaSum += bogota[i].PM25
	}
	// Loose bounds on the means of N(10,5) and N(25,10) after clamping.
	assert.InDelta(t, 10.5, nycSum/float64(len(nyc)), 1.5)
	assert.InDelta(t, 25, bogotaSum/float64(len(bogota)), 1.5)
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := defaultGenerator().Generate()
	require.NoError(t, err)
	b, err := defaultGenerator().Generate()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other := defaultGenerator()
	other.Seed = 7
	c, err := other.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a[schema.StationNYC], c[schema.StationNYC])
}

func TestGenerate_InvalidRange(t *testing.T) {
	g := defaultGenerator()
	g.Start, g.End = g.End, g.Start
	_, err := g.Generate()
	assert.Error(t, err)
}

func TestWriteFiles_LoadsBack(t *testing.T) {
	g := defaultGenerator()
	g.End = g.Start.Add(47 * time.Hour)
	data, err := g.Generate()
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := WriteFiles(dir, data)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	src := loader.NewFileSource(dir, nil)
	for _, station := range schema.AllStations {
		got, err := src.LoadReadings(context.Background(), station)
		require.NoError(t, err)
		assert.Equal(t, data[station], got, station.String())
	}
}

func TestWriteFiles_MissingStation(t *testing.T) {
	_, err := WriteFiles(t.TempDir(), map[schema.Station][]schema.Reading{})
	assert.ErrorContains(t, err, "no generated readings for NYC")
}
