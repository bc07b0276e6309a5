// Package parquet provides data structures and functions for exporting airspot
// results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/airspot/schema"
	"github.com/parquet-go/parquet-go"
)

// ReadingRow is one point of an exported time series.
type ReadingRow struct {
	// Station is the public station name (NYC, Bogota)
	Station string `parquet:"station,snappy,dict"`

	// Pollutant is PM2.5 or PM10
	Pollutant string `parquet:"pollutant,snappy,dict"`

	// ObservedAt is the naive wall-clock timestamp of the reading, stored as UTC
	ObservedAt time.Time `parquet:"observed_at,snappy"`

	Value float64 `parquet:"value,snappy"`
}

// DailyAverageRow is the mean of one calendar day.
type DailyAverageRow struct {
	Station   string  `parquet:"station,snappy,dict"`
	Pollutant string  `parquet:"pollutant,snappy,dict"`
	Date      string  `parquet:"date,snappy"`
	Value     float64 `parquet:"value,snappy"`

	// Count is the number of readings averaged into Value
	Count int32 `parquet:"count,snappy"`
}

// ExceedanceRow is a day whose mean exceeded the WHO 24-hour guideline.
type ExceedanceRow struct {
	Station    string  `parquet:"station,snappy,dict"`
	Pollutant  string  `parquet:"pollutant,snappy,dict"`
	Date       string  `parquet:"date,snappy"`
	Value      float64 `parquet:"value,snappy"`
	Limit      float64 `parquet:"limit,snappy"`
	ExceededBy float64 `parquet:"exceeded_by,snappy"`
}

// ComparisonRow is one timestamp present in both compared series.
type ComparisonRow struct {
	ObservedAt time.Time `parquet:"observed_at,snappy"`
	Pollutant  string    `parquet:"pollutant,snappy,dict"`
	StationA   string    `parquet:"station_a,snappy,dict"`
	StationB   string    `parquet:"station_b,snappy,dict"`
	ValueA     float64   `parquet:"value_a,snappy"`
	ValueB     float64   `parquet:"value_b,snappy"`
	AGreater   bool      `parquet:"a_greater,snappy"`
}

// writeRows writes rows to a new Parquet file at outputPath.
// The schema is derived from the struct tags of T.
func writeRows[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(rows); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// WriteReadingsParquet writes time series rows to a Parquet file.
func WriteReadingsParquet(data []ReadingRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteDailyAveragesParquet writes daily average rows to a Parquet file.
func WriteDailyAveragesParquet(data []DailyAverageRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteExceedancesParquet writes exceedance rows to a Parquet file.
func WriteExceedancesParquet(data []ExceedanceRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteComparisonParquet writes comparison rows to a Parquet file.
func WriteComparisonParquet(data []ComparisonRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// ConvertPoints converts time series points for Parquet export.
func ConvertPoints(station schema.Station, p schema.Pollutant, points []schema.Point) []ReadingRow {
	result := make([]ReadingRow, len(points))
	for i, pt := range points {
		result[i] = ReadingRow{
			Station:    station.String(),
			Pollutant:  string(p),
			ObservedAt: pt.Time,
			Value:      pt.Value,
		}
	}
	return result
}

// ConvertDailyAverages converts daily averages for Parquet export.
func ConvertDailyAverages(station schema.Station, p schema.Pollutant, days []schema.DailyAverage) []DailyAverageRow {
	result := make([]DailyAverageRow, len(days))
	for i, d := range days {
		result[i] = DailyAverageRow{
			Station:   station.String(),
			Pollutant: string(p),
			Date:      d.Date,
			Value:     d.Value,
			Count:     int32(d.Count),
		}
	}
	return result
}

// ConvertExceedances converts the PM2.5 exceedances of a compliance report for Parquet export.
func ConvertExceedances(report schema.ComplianceReport) []ExceedanceRow {
	result := make([]ExceedanceRow, len(report.Exceedances))
	for i, e := range report.Exceedances {
		result[i] = ExceedanceRow{
			Station:    report.City.String(),
			Pollutant:  string(schema.PM25),
			Date:       e.Date,
			Value:      e.Value,
			Limit:      e.Limit,
			ExceededBy: e.ExceededBy,
		}
	}
	return result
}

// ConvertComparison converts comparison records for Parquet export.
func ConvertComparison(result schema.ComparisonResult) []ComparisonRow {
	rows := make([]ComparisonRow, len(result.Records))
	for i, r := range result.Records {
		rows[i] = ComparisonRow{
			ObservedAt: r.Time,
			Pollutant:  string(result.Pollutant),
			StationA:   result.StationA.String(),
			StationB:   result.StationB.String(),
			ValueA:     r.A,
			ValueB:     r.B,
			AGreater:   r.AGreater,
		}
	}
	return rows
}
