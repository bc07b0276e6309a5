package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/internal/parquet"
	"github.com/huangsam/airspot/schema"
)

// PrintComparison outputs the cross-station comparison, dispatching based on the output format configured.
// Records are expected to be downsampled already; the headline numbers describe the full join.
func PrintComparison(result schema.ComparisonResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, "comparison", renderers{
		json: func(w io.Writer) error { return writeJSON(w, result) },
		csv: func(w io.Writer) error {
			header := []string{"date", result.StationA.Key(), result.StationB.Key(), "a_greater"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range result.Records {
					if err := cw.Write([]string{r.Date, fmtFloat(r.A), fmtFloat(r.B), strconv.FormatBool(r.AGreater)}); err != nil {
						return err
					}
				}
				return nil
			})
		},
		table:   func(w io.Writer) error { return writeComparisonTable(w, result, fmtFloat) },
		parquet: func(path string) error { return parquet.WriteComparisonParquet(parquet.ConvertComparison(result), path) },
	})
}

func writeComparisonTable(w io.Writer, result schema.ComparisonResult, fmtFloat func(float64) string) error {
	data := make([][]string, 0, len(result.Records))
	for _, r := range result.Records {
		mark := ""
		if r.AGreater {
			mark = "▲"
		}
		data = append(data, []string{r.Date, fmtFloat(r.A), fmtFloat(r.B), mark})
	}
	headers := []string{"Timestamp", result.StationA.String(), result.StationB.String(), result.StationA.String() + " higher"}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s vs %s on %s: correlation %s, %s higher in %d of %d hours (%s%%)\n",
		result.StationA, result.StationB, result.Pollutant, fmtFloat(result.Correlation),
		result.StationA, result.GreaterCount, result.TotalCount, fmtFloat(result.GreaterPercent))
	return err
}

// PrintSummary outputs the combined view of both stations. CSV flattens it to one row per metric.
func PrintSummary(summary schema.Summary, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, "summary", renderers{
		json: func(w io.Writer) error { return writeJSON(w, summary) },
		csv: func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"metric", schema.StationNYC.Key(), schema.StationBogota.Key()}, func(cw *csv.Writer) error {
				return cw.WriteAll(summaryRows(summary, fmtFloat, contract.GetComplianceLabel))
			})
		},
		table: func(w io.Writer) error { return writeSummaryTable(w, summary, cfg, fmtFloat) },
	})
}

func summaryRows(s schema.Summary, fmtFloat func(float64) string, label func(bool) string) [][]string {
	rows := [][]string{
		{"PM2.5 mean", fmtFloat(s.NYCStats.PM25.Mean), fmtFloat(s.BogotaStats.PM25.Mean)},
		{"PM2.5 median", fmtFloat(s.NYCStats.PM25.Median), fmtFloat(s.BogotaStats.PM25.Median)},
		{"PM2.5 max", fmtFloat(s.NYCStats.PM25.Max), fmtFloat(s.BogotaStats.PM25.Max)},
		{"Readings", strconv.Itoa(s.NYCStats.PM25.Count), strconv.Itoa(s.BogotaStats.PM25.Count)},
		{"PM2.5 annual guideline", label(s.NYCCompliance.AnnualCompliant), label(s.BogotaCompliance.AnnualCompliant)},
		{
			"PM2.5 days over 24h limit",
			strconv.Itoa(s.NYCCompliance.ExceedanceCount),
			strconv.Itoa(s.BogotaCompliance.ExceedanceCount),
		},
	}
	if pm10 := s.BogotaStats.PM10; pm10 != nil {
		rows = append(rows, []string{"PM10 mean", "-", fmtFloat(pm10.Mean)})
	}
	if pm10 := s.BogotaCompliance.PM10Compliance; pm10 != nil {
		rows = append(rows, []string{"PM10 annual guideline", "-", label(pm10.PM10AnnualCompliant)})
	}
	return rows
}

func writeSummaryTable(w io.Writer, s schema.Summary, cfg *contract.Config, fmtFloat func(float64) string) error {
	label, _ := labels(cfg)
	if err := renderTable(w, []string{"Metric", schema.StationNYC.String(), schema.StationBogota.String()}, summaryRows(s, fmtFloat, label)); err != nil {
		return err
	}
	c := s.Comparison
	_, err := fmt.Fprintf(w, "PM2.5 correlation %s, %s higher in %s%% of %d shared hours\n",
		fmtFloat(c.Correlation), c.StationA, fmtFloat(c.GreaterPercent), c.TotalCount)
	return err
}
