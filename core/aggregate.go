package core

import (
	"iter"
	"time"

	"github.com/huangsam/airspot/core/agg"
	"github.com/huangsam/airspot/schema"
)

// civilDate is a calendar date taken from a reading's own wall-clock timestamp.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

// DailyAverages returns the mean of each calendar day present in the series, oldest first.
// Days without readings produce no entry.
func DailyAverages(s *Series, p schema.Pollutant) ([]schema.DailyAverage, error) {
	if err := s.require(p); err != nil {
		return nil, err
	}

	// Readings are sorted, so first-seen order is chronological.
	days := agg.NewGrouped[civilDate]()
	for _, r := range s.readings {
		days.Add(dateOf(r.Time), r.Value(p))
	}
	loc := time.UTC
	if len(s.readings) > 0 {
		loc = s.readings[0].Time.Location()
	}

	out := make([]schema.DailyAverage, 0, days.Len())
	for d, m := range days.All() {
		day := time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
		out = append(out, schema.DailyAverage{
			Day:   day,
			Date:  day.Format(schema.DateLayout),
			Value: m.Value(),
			Count: m.Count(),
		})
	}
	return out, nil
}

// HourlyPattern returns the mean per hour of day (0-23) across every date.
// Hours without readings are omitted.
func HourlyPattern(s *Series, p schema.Pollutant) ([]schema.HourlyAverage, error) {
	if err := s.require(p); err != nil {
		return nil, err
	}

	hours := agg.NewFixed(24)
	for _, r := range s.readings {
		hours.Add(r.Time.Hour(), r.Value(p))
	}

	out := make([]schema.HourlyAverage, 0, 24)
	for h, m := range hours.NonEmpty() {
		out = append(out, schema.HourlyAverage{Hour: h, Value: m.Value(), Count: m.Count()})
	}
	return out, nil
}

// MonthlyPattern returns the mean per calendar month across every year, Jan to Dec.
// Months without readings are omitted.
func MonthlyPattern(s *Series, p schema.Pollutant) ([]schema.MonthlyAverage, error) {
	if err := s.require(p); err != nil {
		return nil, err
	}

	months := agg.NewFixed(12)
	for _, r := range s.readings {
		months.Add(int(r.Time.Month())-1, r.Value(p))
	}

	out := make([]schema.MonthlyAverage, 0, 12)
	for i, m := range months.NonEmpty() {
		out = append(out, schema.MonthlyAverage{
			Index: i + 1,
			Month: schema.MonthNames[i],
			Value: m.Value(),
			Count: m.Count(),
		})
	}
	return out, nil
}

// TimeSeries returns the full-resolution series of one pollutant. The sequence is lazy
// and may be ranged over any number of times.
func TimeSeries(s *Series, p schema.Pollutant) (iter.Seq[schema.Point], error) {
	if err := s.require(p); err != nil {
		return nil, err
	}
	return func(yield func(schema.Point) bool) {
		for _, r := range s.readings {
			if !yield(schema.NewPoint(r.Time, r.Value(p))) {
				return
			}
		}
	}, nil
}

// Every keeps elements 0, stride, 2*stride, ... of seq. A stride below 2 keeps everything.
func Every[T any](seq iter.Seq[T], stride int) iter.Seq[T] {
	if stride < 2 {
		return seq
	}
	return func(yield func(T) bool) {
		i := 0
		for v := range seq {
			if i%stride == 0 && !yield(v) {
				return
			}
			i++
		}
	}
}

// EverySlice is Every over a slice, collected.
func EverySlice[T any](items []T, stride int) []T {
	if stride < 2 {
		return items
	}
	out := make([]T, 0, (len(items)+stride-1)/stride)
	for i := 0; i < len(items); i += stride {
		out = append(out, items[i])
	}
	return out
}
