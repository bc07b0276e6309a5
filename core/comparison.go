package core

import (
	"fmt"
	"math"

	"github.com/huangsam/airspot/schema"
	"gonum.org/v1/gonum/stat"
)

// Compare joins two series on exact timestamp equality and compares one pollutant.
//
// Timestamps present in only one series are dropped. A timestamp repeated in both
// series yields every pairing, in the order of a. Correlation is Pearson's r over the
// joined values; it fails with UndefinedCorrelationError when the join is empty or either
// joined column has zero variance.
func Compare(a, b *Series, p schema.Pollutant) (schema.ComparisonResult, error) {
	if err := a.require(p); err != nil {
		return schema.ComparisonResult{}, err
	}
	if err := b.require(p); err != nil {
		return schema.ComparisonResult{}, err
	}

	records := joinOnTimestamp(a, b, p)
	if len(records) == 0 {
		return schema.ComparisonResult{}, &schema.UndefinedCorrelationError{
			Reason: fmt.Sprintf("%s and %s share no timestamps", a.station, b.station),
			Empty:  true,
		}
	}

	xs := make([]float64, len(records))
	ys := make([]float64, len(records))
	greater := 0
	for i, r := range records {
		xs[i], ys[i] = r.A, r.B
		if r.AGreater {
			greater++
		}
	}

	corr, err := pearson(xs, ys, a.station, b.station)
	if err != nil {
		return schema.ComparisonResult{}, err
	}

	return schema.ComparisonResult{
		StationA:       a.station,
		StationB:       b.station,
		Pollutant:      p,
		Correlation:    corr,
		GreaterCount:   greater,
		TotalCount:     len(records),
		GreaterPercent: percent(greater, len(records)),
		Records:        records,
	}, nil
}

func joinOnTimestamp(a, b *Series, p schema.Pollutant) []schema.ComparisonRecord {
	index := make(map[int64][]int, len(b.readings))
	for i, r := range b.readings {
		key := r.Time.UnixNano()
		index[key] = append(index[key], i)
	}

	records := make([]schema.ComparisonRecord, 0, min(len(a.readings), len(b.readings)))
	for _, ra := range a.readings {
		for _, j := range index[ra.Time.UnixNano()] {
			va, vb := ra.Value(p), b.readings[j].Value(p)
			records = append(records, schema.ComparisonRecord{
				Time:     ra.Time,
				Date:     ra.Time.Format(schema.TimestampLayout),
				A:        va,
				B:        vb,
				AGreater: va > vb,
			})
		}
	}
	return records
}

func pearson(xs, ys []float64, a, b schema.Station) (float64, error) {
	if len(xs) < 2 {
		return 0, &schema.UndefinedCorrelationError{Reason: "a single joined observation has zero variance"}
	}
	if !(stat.Variance(xs, nil) > 0) {
		return 0, &schema.UndefinedCorrelationError{Reason: fmt.Sprintf("%s values have zero variance", a)}
	}
	if !(stat.Variance(ys, nil) > 0) {
		return 0, &schema.UndefinedCorrelationError{Reason: fmt.Sprintf("%s values have zero variance", b)}
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, &schema.UndefinedCorrelationError{Reason: "correlation is not finite"}
	}
	return r, nil
}
