package core

import (
	"slices"

	"github.com/huangsam/airspot/schema"
)

// SampledSeries returns the time series of one pollutant keeping every stride-th point.
func SampledSeries(s *Series, p schema.Pollutant, stride int) (schema.SeriesResult, error) {
	seq, err := TimeSeries(s, p)
	if err != nil {
		return schema.SeriesResult{}, err
	}
	return schema.SeriesResult{
		Station:   s.station,
		Pollutant: p,
		Stride:    max(stride, 1),
		Points:    slices.Collect(Every(seq, stride)),
	}, nil
}

// DailyView wraps DailyAverages with its station and pollutant.
func DailyView(s *Series, p schema.Pollutant) (schema.DailyResult, error) {
	days, err := DailyAverages(s, p)
	if err != nil {
		return schema.DailyResult{}, err
	}
	return schema.DailyResult{Station: s.station, Pollutant: p, Days: days}, nil
}

// HourlyView wraps HourlyPattern with its station and pollutant.
func HourlyView(s *Series, p schema.Pollutant) (schema.HourlyResult, error) {
	hours, err := HourlyPattern(s, p)
	if err != nil {
		return schema.HourlyResult{}, err
	}
	return schema.HourlyResult{Station: s.station, Pollutant: p, Hours: hours}, nil
}

// MonthlyView wraps MonthlyPattern with its station and pollutant.
func MonthlyView(s *Series, p schema.Pollutant) (schema.MonthlyResult, error) {
	months, err := MonthlyPattern(s, p)
	if err != nil {
		return schema.MonthlyResult{}, err
	}
	return schema.MonthlyResult{Station: s.station, Pollutant: p, Months: months}, nil
}

// CompareStations compares NYC against Bogota and keeps every stride-th joined record.
// Counts and correlation still cover the full join.
func CompareStations(ds *Dataset, p schema.Pollutant, stride int) (schema.ComparisonResult, error) {
	nyc, err := ds.Get(schema.StationNYC)
	if err != nil {
		return schema.ComparisonResult{}, err
	}
	bogota, err := ds.Get(schema.StationBogota)
	if err != nil {
		return schema.ComparisonResult{}, err
	}
	result, err := Compare(nyc, bogota, p)
	if err != nil {
		return schema.ComparisonResult{}, err
	}
	return result.WithRecords(EverySlice(result.Records, stride)), nil
}

// SampledSummary is Summarize with the comparison records thinned to every stride-th.
func SampledSummary(ds *Dataset, stride int) (schema.Summary, error) {
	out, err := Summarize(ds)
	if err != nil {
		return schema.Summary{}, err
	}
	out.Comparison = out.Comparison.WithRecords(EverySlice(out.Comparison.Records, stride))
	return out, nil
}
