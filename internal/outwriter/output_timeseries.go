package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/internal/parquet"
	"github.com/huangsam/airspot/schema"
)

// PrintTimeSeries outputs a time series, dispatching based on the output format configured.
func PrintTimeSeries(result schema.SeriesResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, "time series", renderers{
		json: func(w io.Writer) error { return writeJSON(w, result) },
		csv: func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"date", "station", "pollutant", "value"}, func(cw *csv.Writer) error {
				return writeCSVResultsForTimeSeries(cw, result, fmtFloat)
			})
		},
		table: func(w io.Writer) error { return writeTimeSeriesTable(w, result, fmtFloat) },
		parquet: func(path string) error {
			return parquet.WriteReadingsParquet(parquet.ConvertPoints(result.Station, result.Pollutant, result.Points), path)
		},
	})
}

func writeCSVResultsForTimeSeries(w *csv.Writer, result schema.SeriesResult, fmtFloat func(float64) string) error {
	for _, p := range result.Points {
		if err := w.Write([]string{p.Date, result.Station.String(), string(result.Pollutant), fmtFloat(p.Value)}); err != nil {
			return err
		}
	}
	return nil
}

func writeTimeSeriesTable(w io.Writer, result schema.SeriesResult, fmtFloat func(float64) string) error {
	data := make([][]string, 0, len(result.Points))
	for _, p := range result.Points {
		data = append(data, []string{p.Date, fmtFloat(p.Value)})
	}
	if err := renderTable(w, []string{"Timestamp", string(result.Pollutant)}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s: %d points (every %d readings)\n", result.Station, result.Pollutant, len(result.Points), result.Stride)
	return err
}

// PrintDailyAverages outputs daily averages, dispatching based on the output format configured.
func PrintDailyAverages(result schema.DailyResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return dispatch(cfg, "daily averages", renderers{
		json: func(w io.Writer) error { return writeJSON(w, result) },
		csv: func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"date", "station", "pollutant", "value", "count"}, func(cw *csv.Writer) error {
				for _, d := range result.Days {
					row := []string{d.Date, result.Station.String(), string(result.Pollutant), fmtFloat(d.Value), fmt.Sprintf(intFmt, d.Count)}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		},
		table: func(w io.Writer) error { return writeDailyTable(w, result, fmtFloat, intFmt) },
		parquet: func(path string) error {
			return parquet.WriteDailyAveragesParquet(parquet.ConvertDailyAverages(result.Station, result.Pollutant, result.Days), path)
		},
	})
}

func writeDailyTable(w io.Writer, result schema.DailyResult, fmtFloat func(float64) string, intFmt string) error {
	limit := result.Pollutant.DailyLimit()
	data := make([][]string, 0, len(result.Days))
	exceeded := 0
	for _, d := range result.Days {
		mark := ""
		if d.Value > limit {
			mark = "▲"
			exceeded++
		}
		data = append(data, []string{d.Date, fmtFloat(d.Value), fmt.Sprintf(intFmt, d.Count), mark})
	}
	if err := renderTable(w, []string{"Date", "Mean", "Readings", ">24h"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s: %d days, %d above the WHO 24h guideline of %g μg/m³\n",
		result.Station, result.Pollutant, len(result.Days), exceeded, limit)
	return err
}
