package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/schema"
)

// bucket is one row of a pattern table.
type bucket struct {
	label string
	value float64
	count int
}

// PrintHourlyPattern outputs the hourly pattern, dispatching based on the output format configured.
func PrintHourlyPattern(result schema.HourlyResult, cfg *contract.Config) error {
	buckets := make([]bucket, len(result.Hours))
	for i, h := range result.Hours {
		buckets[i] = bucket{fmt.Sprintf("%02d:00", h.Hour), h.Value, h.Count}
	}
	return printPattern(cfg, "hourly pattern", result, "hour", result.Station, result.Pollutant, buckets)
}

// PrintMonthlyPattern outputs the monthly pattern, dispatching based on the output format configured.
func PrintMonthlyPattern(result schema.MonthlyResult, cfg *contract.Config) error {
	buckets := make([]bucket, len(result.Months))
	for i, m := range result.Months {
		buckets[i] = bucket{m.Month, m.Value, m.Count}
	}
	return printPattern(cfg, "monthly pattern", result, "month", result.Station, result.Pollutant, buckets)
}

func printPattern(cfg *contract.Config, what string, payload any, key string, station schema.Station, p schema.Pollutant, buckets []bucket) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	return dispatch(cfg, what, renderers{
		json: func(w io.Writer) error { return writeJSON(w, payload) },
		csv: func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{key, "station", "pollutant", "value", "count"}, func(cw *csv.Writer) error {
				for _, b := range buckets {
					if err := cw.Write([]string{b.label, station.String(), string(p), fmtFloat(b.value), strconv.Itoa(b.count)}); err != nil {
						return err
					}
				}
				return nil
			})
		},
		table: func(w io.Writer) error {
			return writePatternTable(w, buckets, GetMaxBarWidth(cfg), fmtFloat, intFmt, fmt.Sprintf("%s %s %s", station, p, what))
		},
	})
}

func writePatternTable(w io.Writer, buckets []bucket, barWidth int, fmtFloat func(float64) string, intFmt string, caption string) error {
	peak := 0.0
	for _, b := range buckets {
		peak = max(peak, b.value)
	}

	data := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		data = append(data, []string{b.label, fmtFloat(b.value), fmt.Sprintf(intFmt, b.count), renderBar(b.value, peak, barWidth)})
	}
	if err := renderTable(w, []string{"Bucket", "Mean", "Readings", ""}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s, peak %s μg/m³\n", caption, fmtFloat(peak))
	return err
}
