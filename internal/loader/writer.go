package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/huangsam/airspot/schema"
)

// Write renders readings in station file format, header first.
func Write(w io.Writer, station schema.Station, readings []schema.Reading) error {
	writer := csv.NewWriter(w)
	writer.Comma = Delimiter

	header := []string{ColDate, ColTime, ColPM25}
	if station.HasPM10() {
		header = append(header, ColPM10)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, r := range readings {
		row[0] = r.Time.Format(schema.DateLayout)
		row[1] = r.Time.Format("15:04:05")
		row[2] = formatValue(r.PM25)
		if station.HasPM10() {
			row[3] = formatValue(r.PM10)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes a station file named after the station into dir.
func WriteFile(dir string, station schema.Station, readings []schema.Reading) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	path := filepath.Join(dir, station.DataFile())
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Write(file, station, readings); err != nil {
		_ = file.Close()
		return "", err
	}
	return path, file.Close()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
