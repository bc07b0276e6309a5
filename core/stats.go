package core

import (
	"slices"

	"github.com/huangsam/airspot/schema"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BasicStats computes descriptive statistics of one pollutant over the whole series.
//
// Conventions:
//   - std is the sample standard deviation (N-1 denominator), reported as 0 for a
//     single observation instead of NaN.
//   - median interpolates linearly between the two middle order statistics for even counts.
func BasicStats(s *Series, p schema.Pollutant) (schema.BasicStats, error) {
	if err := s.require(p); err != nil {
		return schema.BasicStats{}, err
	}
	values := s.values(p)
	if len(values) == 0 {
		return schema.BasicStats{}, &schema.EmptySeriesError{Station: s.station, Op: "basic stats"}
	}

	std := 0.0
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return schema.BasicStats{
		Mean:   stat.Mean(values, nil),
		Median: median(sorted),
		Std:    std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Count:  len(values),
	}, nil
}

// StationStats computes BasicStats for every pollutant the station measures.
func StationStats(s *Series) (schema.StationStats, error) {
	pm25, err := BasicStats(s, schema.PM25)
	if err != nil {
		return schema.StationStats{}, err
	}
	out := schema.StationStats{City: s.station, PM25: pm25}
	if s.Carries(schema.PM10) {
		pm10, err := BasicStats(s, schema.PM10)
		if err != nil {
			return schema.StationStats{}, err
		}
		out.PM10 = &pm10
	}
	return out, nil
}

// median expects sorted, non-empty input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
