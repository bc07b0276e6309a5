package core

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/huangsam/airspot/schema"
)

// Series is the immutable, timestamp-ordered readings of one station.
type Series struct {
	station  schema.Station
	readings []schema.Reading
}

// NewSeries builds a Series from loaded readings. The input is copied and stable-sorted
// by timestamp, so duplicate timestamps keep their load order. PM10 is cleared for
// stations that do not measure it so every element shares the station's shape.
func NewSeries(station schema.Station, readings []schema.Reading) (*Series, error) {
	if !station.Valid() {
		return nil, &schema.UnknownStationError{Name: station.String()}
	}
	sorted := slices.Clone(readings)
	slices.SortStableFunc(sorted, func(a, b schema.Reading) int {
		return a.Time.Compare(b.Time)
	})
	if !station.HasPM10() {
		for i := range sorted {
			sorted[i].PM10 = 0
		}
	}
	return &Series{station: station, readings: sorted}, nil
}

// Station returns the station the series belongs to.
func (s *Series) Station() schema.Station {
	return s.station
}

// Len returns the number of readings.
func (s *Series) Len() int {
	return len(s.readings)
}

// Carries reports whether the series has values for pollutant p.
func (s *Series) Carries(p schema.Pollutant) bool {
	return s.station.Carries(p)
}

// Span returns the first and last timestamps. Both are zero for an empty series.
func (s *Series) Span() (first, last time.Time) {
	if len(s.readings) == 0 {
		return time.Time{}, time.Time{}
	}
	return s.readings[0].Time, s.readings[len(s.readings)-1].Time
}

// Readings yields every reading in timestamp order.
func (s *Series) Readings() iter.Seq[schema.Reading] {
	return slices.Values(s.readings)
}

// require fails when the series does not measure p.
func (s *Series) require(p schema.Pollutant) error {
	if !s.Carries(p) {
		return &schema.PollutantUnavailableError{Station: s.station, Pollutant: p}
	}
	return nil
}

// values returns a fresh slice of the pollutant column.
func (s *Series) values(p schema.Pollutant) []float64 {
	out := make([]float64, len(s.readings))
	for i, r := range s.readings {
		out[i] = r.Value(p)
	}
	return out
}

// Dataset holds one Series per station. It is built once at startup and shared
// read-only by every command, request and tool call.
type Dataset struct {
	series map[schema.Station]*Series
}

// NewDataset assembles a Dataset. Every station must be present exactly once.
func NewDataset(series ...*Series) (*Dataset, error) {
	m := make(map[schema.Station]*Series, len(schema.AllStations))
	for _, s := range series {
		if s == nil {
			return nil, fmt.Errorf("nil series")
		}
		if _, dup := m[s.station]; dup {
			return nil, fmt.Errorf("duplicate series for station %s", s.station)
		}
		m[s.station] = s
	}
	for _, st := range schema.AllStations {
		if _, ok := m[st]; !ok {
			return nil, fmt.Errorf("missing series for station %s", st)
		}
	}
	return &Dataset{series: m}, nil
}

// Get returns the series of a station.
func (d *Dataset) Get(station schema.Station) (*Series, error) {
	s, ok := d.series[station]
	if !ok {
		return nil, &schema.UnknownStationError{Name: station.String()}
	}
	return s, nil
}

// Lookup resolves a station name and returns its series.
func (d *Dataset) Lookup(name string) (*Series, error) {
	station, err := schema.ParseStation(name)
	if err != nil {
		return nil, err
	}
	return d.Get(station)
}
