// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the commands.
type OutWriter struct {
	cfg *contract.Config
}

// NewOutWriter creates a new instance of the output writer bound to cfg.
func NewOutWriter(cfg *contract.Config) *OutWriter {
	return &OutWriter{cfg: cfg}
}

// WriteStats prints descriptive statistics.
func (ow *OutWriter) WriteStats(stats schema.StationStats) error {
	return PrintStationStats(stats, ow.cfg)
}

// WriteTimeSeries prints a downsampled time series.
func (ow *OutWriter) WriteTimeSeries(result schema.SeriesResult) error {
	return PrintTimeSeries(result, ow.cfg)
}

// WriteDaily prints daily averages.
func (ow *OutWriter) WriteDaily(result schema.DailyResult) error {
	return PrintDailyAverages(result, ow.cfg)
}

// WriteHourly prints the hour-of-day pattern.
func (ow *OutWriter) WriteHourly(result schema.HourlyResult) error {
	return PrintHourlyPattern(result, ow.cfg)
}

// WriteMonthly prints the month-of-year pattern.
func (ow *OutWriter) WriteMonthly(result schema.MonthlyResult) error {
	return PrintMonthlyPattern(result, ow.cfg)
}

// WriteCompliance prints a WHO guideline check.
func (ow *OutWriter) WriteCompliance(report schema.ComplianceReport) error {
	return PrintComplianceReport(report, ow.cfg)
}

// WriteComparison prints a cross-station comparison.
func (ow *OutWriter) WriteComparison(result schema.ComparisonResult) error {
	return PrintComparison(result, ow.cfg)
}

// WriteSummary prints the combined summary.
func (ow *OutWriter) WriteSummary(summary schema.Summary) error {
	return PrintSummary(summary, ow.cfg)
}

// WriteRealtime prints simulated readings.
func (ow *OutWriter) WriteRealtime(readings []schema.RealtimeReading) error {
	return PrintRealtimeReadings(readings, ow.cfg)
}

// WriteCities prints worldwide city lookups.
func (ow *OutWriter) WriteCities(cities []schema.CityAirQuality) error {
	return PrintCityAirQuality(cities, ow.cfg)
}

// WriteCoordinates prints a coordinate lookup.
func (ow *OutWriter) WriteCoordinates(result schema.CoordinatesAirQuality) error {
	return PrintCoordinatesAirQuality(result, ow.cfg)
}

// WriteForecast prints a city forecast.
func (ow *OutWriter) WriteForecast(result schema.CityForecast) error {
	return PrintCityForecast(result, ow.cfg)
}

// WriteStatus prints the database source status.
func (ow *OutWriter) WriteStatus(status schema.SourceStatus) error {
	return PrintSourceStatus(status, ow.cfg)
}
