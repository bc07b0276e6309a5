package contract

import (
	"context"

	"github.com/huangsam/airspot/schema"
	"github.com/stretchr/testify/mock"
)

// MockReadingStore is a mock implementation of ReadingStore for testing.
type MockReadingStore struct {
	mock.Mock
}

var _ ReadingStore = &MockReadingStore{} // Compile-time check

// LoadReadings implements the ReadingSource interface.
func (m *MockReadingStore) LoadReadings(ctx context.Context, station schema.Station) ([]schema.Reading, error) {
	args := m.Called(ctx, station)
	readings, _ := args.Get(0).([]schema.Reading)
	return readings, args.Error(1)
}

// Import implements the ReadingStore interface.
func (m *MockReadingStore) Import(ctx context.Context, station schema.Station, readings []schema.Reading) (int, error) {
	args := m.Called(ctx, station, readings)
	return args.Int(0), args.Error(1)
}

// Status implements the ReadingStore interface.
func (m *MockReadingStore) Status(ctx context.Context) (schema.SourceStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.SourceStatus), args.Error(1)
}

// Clear implements the ReadingStore interface.
func (m *MockReadingStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close implements the ReadingStore interface.
func (m *MockReadingStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockAirQualityProvider is a mock implementation of AirQualityProvider for testing.
type MockAirQualityProvider struct {
	mock.Mock
}

var _ AirQualityProvider = &MockAirQualityProvider{} // Compile-time check

// SearchCity implements the AirQualityProvider interface.
func (m *MockAirQualityProvider) SearchCity(ctx context.Context, query string) (schema.CityAirQuality, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(schema.CityAirQuality), args.Error(1)
}

// ByCoordinates implements the AirQualityProvider interface.
func (m *MockAirQualityProvider) ByCoordinates(ctx context.Context, lat, lon float64) (schema.CoordinatesAirQuality, error) {
	args := m.Called(ctx, lat, lon)
	return args.Get(0).(schema.CoordinatesAirQuality), args.Error(1)
}

// CityForecast implements the AirQualityProvider interface.
func (m *MockAirQualityProvider) CityForecast(ctx context.Context, query string) (schema.CityForecast, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(schema.CityForecast), args.Error(1)
}

// PopularCities implements the AirQualityProvider interface.
func (m *MockAirQualityProvider) PopularCities(ctx context.Context) (schema.PopularCities, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.PopularCities), args.Error(1)
}

// DemoMode implements the AirQualityProvider interface.
func (m *MockAirQualityProvider) DemoMode() bool {
	return m.Called().Bool(0)
}
