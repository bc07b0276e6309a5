// Package loader reads and writes the pipe-delimited station files.
//
// A station file starts with a header naming its columns, Date|Time|PM2.5 for NYC and
// Date|Time|PM2.5|PM10 for Bogota. Column order is taken from the header.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/airspot/schema"
)

// Column names used in station file headers.
const (
	ColDate = "Date"
	ColTime = "Time"
	ColPM25 = "PM2.5"
	ColPM10 = "PM10"
)

// Delimiter separates fields in a station file.
const Delimiter = '|'

// timestampLayouts are tried in order against Date + " " + Time.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
}

// ErrNoReadings is returned when a file holds no usable rows.
var ErrNoReadings = errors.New("no readings")

// LineError locates a parse failure inside a station file.
type LineError struct {
	File string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// FileSource loads station series from a data directory.
type FileSource struct {
	dir    string
	logger *slog.Logger
}

// NewFileSource creates a source reading from dir.
func NewFileSource(dir string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileSource{dir: dir, logger: logger}
}

// Path returns the file a station is read from.
func (f *FileSource) Path(station schema.Station) string {
	return filepath.Join(f.dir, station.DataFile())
}

// LoadReadings implements contract.ReadingSource.
func (f *FileSource) LoadReadings(ctx context.Context, station schema.Station) ([]schema.Reading, error) {
	if !station.Valid() {
		return nil, &schema.UnknownStationError{Name: station.String()}
	}
	path := f.Path(station)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening station file: %w", err)
	}
	defer func() { _ = file.Close() }()

	readings, err := parse(ctx, file, path, station, f.logger)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("loaded station file", "station", station, "path", path, "rows", len(readings))
	return readings, nil
}

// Parse reads a station file from r. Rows with a blank pollutant value are skipped;
// any other malformed row fails the whole parse.
func Parse(r io.Reader, station schema.Station, logger *slog.Logger) ([]schema.Reading, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return parse(context.Background(), r, station.DataFile(), station, logger)
}

type columns struct {
	date, time, pm25, pm10 int
}

func parseHeader(header []string, station schema.Station) (columns, error) {
	cols := columns{-1, -1, -1, -1}
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case ColDate:
			cols.date = i
		case ColTime:
			cols.time = i
		case ColPM25:
			cols.pm25 = i
		case ColPM10:
			cols.pm10 = i
		}
	}

	var missing []string
	if cols.date < 0 {
		missing = append(missing, ColDate)
	}
	if cols.time < 0 {
		missing = append(missing, ColTime)
	}
	if cols.pm25 < 0 {
		missing = append(missing, ColPM25)
	}
	if station.HasPM10() && cols.pm10 < 0 {
		missing = append(missing, ColPM10)
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("header is missing column(s) %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parse(ctx context.Context, r io.Reader, name string, station schema.Station, logger *slog.Logger) ([]schema.Reading, error) {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", name, ErrNoReadings)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", name, err)
	}
	cols, err := parseHeader(header, station)
	if err != nil {
		return nil, &LineError{File: name, Line: 1, Err: err}
	}

	var readings []schema.Reading
	skipped := 0
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		line, _ := reader.FieldPos(0)
		if len(readings)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		reading, ok, err := parseRecord(rec, cols, station)
		if err != nil {
			return nil, &LineError{File: name, Line: line, Err: err}
		}
		if !ok {
			skipped++
			logger.Warn("skipping row with blank value", "file", name, "line", line)
			continue
		}
		readings = append(readings, reading)
	}

	if len(readings) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoReadings)
	}
	if skipped > 0 {
		logger.Info("skipped incomplete rows", "file", name, "skipped", skipped, "kept", len(readings))
	}
	return readings, nil
}

// parseRecord returns ok=false for a row whose pollutant value is blank.
func parseRecord(rec []string, cols columns, station schema.Station) (schema.Reading, bool, error) {
	ts, err := parseTimestamp(rec[cols.date], rec[cols.time])
	if err != nil {
		return schema.Reading{}, false, err
	}

	pm25, ok, err := parseValue(rec[cols.pm25], ColPM25)
	if err != nil || !ok {
		return schema.Reading{}, ok, err
	}
	reading := schema.Reading{Time: ts, PM25: pm25}

	if station.HasPM10() {
		pm10, ok, err := parseValue(rec[cols.pm10], ColPM10)
		if err != nil || !ok {
			return schema.Reading{}, ok, err
		}
		reading.PM10 = pm10
	}
	return reading, true, nil
}

// parseTimestamp reads the wall-clock time as written, pinned to UTC.
func parseTimestamp(date, clock string) (time.Time, error) {
	raw := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

func parseValue(field, column string) (float64, bool, error) {
	field = strings.TrimSpace(field)
	if field == "" || strings.EqualFold(field, "nan") {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s value %q", column, field)
	}
	if v < 0 {
		return 0, false, fmt.Errorf("negative %s value %g", column, v)
	}
	return v, true, nil
}
