package cmd

import (
	"errors"
	"fmt"

	"github.com/huangsam/airspot/core"
	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/internal/outwriter"
	"github.com/huangsam/airspot/internal/realtime"
	"github.com/huangsam/airspot/schema"
	"github.com/spf13/cobra"
)

// statsCmd prints the descriptive statistics of one station.
var statsCmd = &cobra.Command{
	Use:   "stats <station>",
	Short: "Show mean, median, std, min and max per pollutant",
	Long: `Compute descriptive statistics for every pollutant the station measures.

NYC carries PM2.5 only. Bogota carries PM2.5 and PM10.

Examples:
  # Statistics for NYC
  airspot stats nyc

  # Bogota as JSON with three decimals
  airspot stats bogota --output json --precision 3`,
	Args:    cobra.ExactArgs(1),
	PreRunE: stationSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		stats, err := core.StationStats(mustLoadStation())
		if err != nil {
			contract.LogFatal("Failed to compute statistics", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteStats(stats); err != nil {
			contract.LogFatal("Failed to write statistics", err)
		}
	},
}

// timeseriesCmd prints the raw hourly series, thinned to every Nth point.
var timeseriesCmd = &cobra.Command{
	Use:   "timeseries <station>",
	Short: "Show the hourly readings of one pollutant",
	Long: `List the hourly readings of one pollutant in timestamp order.

The series is thinned to every Nth reading with --stride (default 6).

Examples:
  # Every sixth PM2.5 reading at NYC
  airspot timeseries nyc

  # Every PM10 reading at Bogota, as CSV
  airspot timeseries bogota --pollutant PM10 --stride 1 --output csv

  # Export to Parquet
  airspot timeseries bogota --output parquet --output-file bogota.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: stationSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.SampledSeries(mustLoadStation(), cfg.Pollutant, cfg.Stride)
		if err != nil {
			contract.LogFatal("Failed to build time series", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteTimeSeries(result); err != nil {
			contract.LogFatal("Failed to write time series", err)
		}
	},
}

// dailyCmd prints the calendar-day means.
var dailyCmd = &cobra.Command{
	Use:   "daily <station>",
	Short: "Show daily averages of one pollutant",
	Long: `Average the readings of each calendar day. Days without readings are omitted.

Examples:
  # Daily PM2.5 means at NYC
  airspot daily nyc

  # Daily PM10 means at Bogota
  airspot daily bogota -p PM10`,
	Args:    cobra.ExactArgs(1),
	PreRunE: stationSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.DailyView(mustLoadStation(), cfg.Pollutant)
		if err != nil {
			contract.LogFatal("Failed to compute daily averages", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteDaily(result); err != nil {
			contract.LogFatal("Failed to write daily averages", err)
		}
	},
}

// hourlyCmd prints the average by hour of day.
var hourlyCmd = &cobra.Command{
	Use:   "hourly <station>",
	Short: "Show the average by hour of day",
	Long: `Average the readings of each hour of the day (0-23) over the whole period.

Examples:
  # Diurnal PM2.5 pattern at Bogota
  airspot hourly bogota

  # Fixed-width bars for a narrow terminal
  airspot hourly nyc --width 80`,
	Args:    cobra.ExactArgs(1),
	PreRunE: stationSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.HourlyView(mustLoadStation(), cfg.Pollutant)
		if err != nil {
			contract.LogFatal("Failed to compute hourly pattern", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteHourly(result); err != nil {
			contract.LogFatal("Failed to write hourly pattern", err)
		}
	},
}

// monthlyCmd prints the average by calendar month.
var monthlyCmd = &cobra.Command{
	Use:   "monthly <station>",
	Short: "Show the average by calendar month",
	Long: `Average the readings of each calendar month, listed January to December.
Months without readings are omitted.

Examples:
  # Seasonal PM2.5 pattern at NYC
  airspot monthly nyc`,
	Args:    cobra.ExactArgs(1),
	PreRunE: stationSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.MonthlyView(mustLoadStation(), cfg.Pollutant)
		if err != nil {
			contract.LogFatal("Failed to compute monthly pattern", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteMonthly(result); err != nil {
			contract.LogFatal("Failed to write monthly pattern", err)
		}
	},
}

// complianceCmd checks the station against the WHO guidelines, optionally gating CI.
var complianceCmd = &cobra.Command{
	Use:   "compliance <station>",
	Short: "Check the station against the WHO 2021 guidelines",
	Long: `Compare the period mean with the WHO annual guideline and list the days whose
mean exceeds the 24-hour guideline.

PM2.5: annual 5 µg/m³, 24-hour 15 µg/m³
PM10:  annual 15 µg/m³, 24-hour 45 µg/m³ (Bogota only)

With --strict the command exits with status 1 when an annual guideline is exceeded,
which makes it usable as a pipeline gate.

Examples:
  # Compliance report for Bogota
  airspot compliance bogota

  # Fail the build when NYC exceeds the annual guideline
  airspot compliance nyc --strict`,
	Args:    cobra.ExactArgs(1),
	PreRunE: stationSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		report, err := core.CheckLimits(mustLoadStation())
		if err != nil {
			contract.LogFatal("Failed to check limits", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteCompliance(report); err != nil {
			contract.LogFatal("Failed to write compliance report", err)
		}
		if cfg.Strict {
			if err := annualViolation(report); err != nil {
				contract.LogFatal("Compliance check failed", err)
			}
		}
	},
}

// annualViolation reports which annual guidelines the station exceeds.
func annualViolation(report schema.ComplianceReport) error {
	var errs []error
	if !report.AnnualCompliant {
		errs = append(errs, fmt.Errorf("%s PM2.5 annual mean %.2f exceeds %.1f", report.City, report.PM25AnnualMean, report.AnnualLimit))
	}
	if report.PM10Compliance != nil && !report.PM10AnnualCompliant {
		errs = append(errs, fmt.Errorf("%s PM10 annual mean %.2f exceeds %.1f", report.City, report.PM10AnnualMean, report.PM10AnnualLimit))
	}
	return errors.Join(errs...)
}

// compareCmd correlates the two stations.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare NYC and Bogota on matching timestamps",
	Long: `Join the two stations on identical timestamps and report the Pearson correlation
and how often each station had the higher reading.

The joined records are thinned to every Nth record with --stride (default 6). The
correlation and counts always use every record.

Examples:
  # Compare PM2.5
  airspot compare

  # Keep every joined record as CSV
  airspot compare --stride 1 --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ds, err := loadDataset(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to load readings", err)
		}
		result, err := core.CompareStations(ds, cfg.Pollutant, cfg.Stride)
		if err != nil {
			contract.LogFatal("Failed to compare stations", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteComparison(result); err != nil {
			contract.LogFatal("Failed to write comparison", err)
		}
	},
}

// summaryCmd composes statistics, compliance and comparison in one report.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show statistics, compliance and comparison for both stations",
	Long: `Compose the statistics and WHO compliance of both stations with the PM2.5
comparison. The comparison keeps every 20th joined record.

Examples:
  # Full summary
  airspot summary

  # Summary as JSON for a dashboard
  airspot summary --output json --output-file summary.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ds, err := loadDataset(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to load readings", err)
		}
		summary, err := core.SampledSummary(ds, contract.DefaultSummaryStride)
		if err != nil {
			contract.LogFatal("Failed to summarize", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteSummary(summary); err != nil {
			contract.LogFatal("Failed to write summary", err)
		}
	},
}

// realtimeCmd draws simulated current readings.
var realtimeCmd = &cobra.Command{
	Use:   "realtime <station>",
	Short: "Draw simulated current readings",
	Long: `Draw simulated current readings around the station's historical PM2.5
statistics. Readings during rush hours (7-9 and 17-19) are scaled up by 30%.

Examples:
  # One simulated reading
  airspot realtime nyc

  # Ten readings from Bogota as JSON
  airspot realtime bogota --count 10 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: stationSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ds, err := loadDataset(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to load readings", err)
		}
		sim, err := realtime.NewSimulator(ds)
		if err != nil {
			contract.LogFatal("Failed to start simulator", err)
		}
		readings := make([]schema.RealtimeReading, 0, cfg.Count)
		for range cfg.Count {
			reading, err := sim.Reading(cfg.Station)
			if err != nil {
				contract.LogFatal("Failed to draw reading", err)
			}
			readings = append(readings, reading)
		}
		if err := outwriter.NewOutWriter(cfg).WriteRealtime(readings); err != nil {
			contract.LogFatal("Failed to write readings", err)
		}
	},
}
