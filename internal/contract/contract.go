// Package contract provides interfaces and shared utilities for the Airspot CLI's internal architecture.
package contract

import (
	"context"
	"fmt"

	"github.com/huangsam/airspot/core"
	"github.com/huangsam/airspot/schema"
	"golang.org/x/sync/errgroup"
)

// ReadingSource supplies the raw readings of one station.
// This allows the dataset to be built from files or a database alike.
type ReadingSource interface {
	// LoadReadings returns every reading stored for the station, in any order.
	LoadReadings(ctx context.Context, station schema.Station) ([]schema.Reading, error)
}

// ReadingStore defines the SQL-backed reading source and its maintenance operations.
type ReadingStore interface {
	ReadingSource

	// Import replaces the station's readings and returns the number of rows written.
	Import(ctx context.Context, station schema.Station, readings []schema.Reading) (int, error)

	// Status returns per-station row counts and time ranges.
	Status(ctx context.Context) (schema.SourceStatus, error)

	// Clear removes every stored reading.
	Clear(ctx context.Context) error

	// Close closes the underlying connection
	Close() error
}

// AirQualityProvider answers worldwide air quality lookups.
type AirQualityProvider interface {
	// SearchCity geocodes "city" or "city,CC" and returns its current air quality.
	SearchCity(ctx context.Context, query string) (schema.CityAirQuality, error)

	// ByCoordinates returns the current air quality at a point.
	ByCoordinates(ctx context.Context, lat, lon float64) (schema.CoordinatesAirQuality, error)

	// CityForecast geocodes a city and returns its hourly forecast.
	CityForecast(ctx context.Context, query string) (schema.CityForecast, error)

	// PopularCities returns the air quality of the well-known cities list.
	PopularCities(ctx context.Context) (schema.PopularCities, error)

	// DemoMode reports whether results are synthetic.
	DemoMode() bool
}

// LoadDataset loads both stations from src concurrently and builds the immutable dataset.
func LoadDataset(ctx context.Context, src ReadingSource) (*core.Dataset, error) {
	series := make([]*core.Series, len(schema.AllStations))
	g, ctx := errgroup.WithContext(ctx)
	for i, station := range schema.AllStations {
		g.Go(func() error {
			readings, err := src.LoadReadings(ctx, station)
			if err != nil {
				return fmt.Errorf("loading %s: %w", station, err)
			}
			s, err := core.NewSeries(station, readings)
			if err != nil {
				return err
			}
			series[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return core.NewDataset(series...)
}
