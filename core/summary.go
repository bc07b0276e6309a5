package core

import (
	"github.com/huangsam/airspot/schema"
	"golang.org/x/sync/errgroup"
)

// Summarize composes stats, compliance and the NYC/Bogota PM2.5 comparison.
// Any failing part fails the whole summary.
func Summarize(ds *Dataset) (schema.Summary, error) {
	nyc, err := ds.Get(schema.StationNYC)
	if err != nil {
		return schema.Summary{}, err
	}
	bogota, err := ds.Get(schema.StationBogota)
	if err != nil {
		return schema.Summary{}, err
	}

	// Each goroutine writes a distinct field.
	var out schema.Summary
	var g errgroup.Group
	g.Go(func() (err error) {
		out.NYCStats, err = StationStats(nyc)
		return err
	})
	g.Go(func() (err error) {
		out.BogotaStats, err = StationStats(bogota)
		return err
	})
	g.Go(func() (err error) {
		out.NYCCompliance, err = CheckLimits(nyc)
		return err
	})
	g.Go(func() (err error) {
		out.BogotaCompliance, err = CheckLimits(bogota)
		return err
	})
	g.Go(func() (err error) {
		out.Comparison, err = Compare(nyc, bogota, schema.PM25)
		return err
	})
	if err := g.Wait(); err != nil {
		return schema.Summary{}, err
	}
	return out, nil
}
