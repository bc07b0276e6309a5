package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/schema"
)

// PrintStationStats outputs the descriptive statistics of a station.
func PrintStationStats(stats schema.StationStats, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return dispatch(cfg, "station stats", renderers{
		json: func(w io.Writer) error { return writeJSON(w, stats) },
		csv: func(w io.Writer) error {
			return writeCSVWithHeader(w, statsHeader, func(cw *csv.Writer) error {
				return writeCSVResultsForStats(cw, stats, fmtFloat, intFmt)
			})
		},
		table: func(w io.Writer) error { return writeStatsTable(w, stats, fmtFloat, intFmt) },
	})
}

var statsHeader = []string{"city", "pollutant", "mean", "median", "std", "min", "max", "count"}

type pollutantStats struct {
	pollutant schema.Pollutant
	values    schema.BasicStats
}

// statsRows flattens the per-pollutant blocks in display order.
func statsRows(stats schema.StationStats) []pollutantStats {
	rows := []pollutantStats{{schema.PM25, stats.PM25}}
	if stats.PM10 != nil {
		rows = append(rows, pollutantStats{schema.PM10, *stats.PM10})
	}
	return rows
}

func writeCSVResultsForStats(w *csv.Writer, stats schema.StationStats, fmtFloat func(float64) string, intFmt string) error {
	for _, r := range statsRows(stats) {
		row := []string{
			stats.City.String(),
			string(r.pollutant),
			fmtFloat(r.values.Mean),
			fmtFloat(r.values.Median),
			fmtFloat(r.values.Std),
			fmtFloat(r.values.Min),
			fmtFloat(r.values.Max),
			fmt.Sprintf(intFmt, r.values.Count),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeStatsTable(w io.Writer, stats schema.StationStats, fmtFloat func(float64) string, intFmt string) error {
	var data [][]string
	for _, r := range statsRows(stats) {
		data = append(data, []string{
			string(r.pollutant),
			fmtFloat(r.values.Mean),
			fmtFloat(r.values.Median),
			fmtFloat(r.values.Std),
			fmtFloat(r.values.Min),
			fmtFloat(r.values.Max),
			fmt.Sprintf(intFmt, r.values.Count),
		})
	}
	if err := renderTable(w, []string{"Pollutant", "Mean", "Median", "Std", "Min", "Max", "Count"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Station %s (%s), values in μg/m³\n", stats.City, stats.City.Site())
	return err
}
