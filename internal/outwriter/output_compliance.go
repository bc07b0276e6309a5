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

// PrintComplianceReport outputs a WHO guideline check. CSV and Parquet carry the exceedance days.
func PrintComplianceReport(report schema.ComplianceReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg, "compliance report", renderers{
		json: func(w io.Writer) error { return writeJSON(w, report) },
		csv: func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"date", "station", "value", "limit", "exceeded_by"}, func(cw *csv.Writer) error {
				for _, e := range report.Exceedances {
					row := []string{e.Date, report.City.String(), fmtFloat(e.Value), fmtFloat(e.Limit), fmtFloat(e.ExceededBy)}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		},
		table: func(w io.Writer) error { return writeComplianceTable(w, report, cfg, fmtFloat) },
		parquet: func(path string) error {
			return parquet.WriteExceedancesParquet(parquet.ConvertExceedances(report), path)
		},
	})
}

func complianceRows(report schema.ComplianceReport, fmtFloat func(float64) string, label func(bool) string) [][]string {
	data := [][]string{
		{"PM2.5 annual mean", fmtFloat(report.PM25AnnualMean), fmtFloat(report.AnnualLimit), label(report.AnnualCompliant)},
		{
			"PM2.5 days over 24h limit",
			fmt.Sprintf("%d / %d (%s%%)", report.ExceedanceCount, report.TotalDays, fmtFloat(report.ExceedancePercent)),
			fmtFloat(report.DailyLimit),
			label(report.ExceedanceCount == 0),
		},
	}
	if pm10 := report.PM10Compliance; pm10 != nil {
		data = append(data,
			[]string{"PM10 annual mean", fmtFloat(pm10.PM10AnnualMean), fmtFloat(pm10.PM10AnnualLimit), label(pm10.PM10AnnualCompliant)},
			[]string{"PM10 days over 24h limit", strconv.Itoa(pm10.PM10ExceedanceCount), fmtFloat(pm10.PM10DailyLimit), label(pm10.PM10ExceedanceCount == 0)},
		)
	}
	return data
}

func writeComplianceTable(w io.Writer, report schema.ComplianceReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	label, _ := labels(cfg)
	if err := renderTable(w, []string{"Check", "Value", "WHO Limit", "Status"}, complianceRows(report, fmtFloat, label)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s annual guidelines: %s\n", report.City, label(report.Compliant()))
	return err
}
