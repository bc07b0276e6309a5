package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/schema"
)

// PrintSourceStatus outputs the state of the database reading source.
func PrintSourceStatus(status schema.SourceStatus, cfg *contract.Config) error {
	return dispatch(cfg, "database status", renderers{
		json: func(w io.Writer) error { return writeJSON(w, status) },
		csv: func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"backend", "schema_version", "station", "rows", "first", "last"}, func(cw *csv.Writer) error {
				for _, s := range status.Stations {
					first, last := statusRange(s)
					row := []string{
						string(status.Backend),
						strconv.FormatUint(uint64(status.Version), 10),
						s.Station.String(),
						strconv.Itoa(s.Rows),
						first,
						last,
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		},
		table: func(w io.Writer) error { return writeStatusTable(w, status) },
	})
}

// statusRange renders the first and last timestamps. An empty station has no range.
func statusRange(s schema.StationStatus) (first, last string) {
	if s.Rows == 0 {
		return "", ""
	}
	return s.First.Format(schema.TimestampLayout), s.Last.Format(schema.TimestampLayout)
}

func writeStatusTable(w io.Writer, status schema.SourceStatus) error {
	data := make([][]string, 0, len(status.Stations))
	for _, s := range status.Stations {
		first, last := statusRange(s)
		data = append(data, []string{s.Station.String(), strconv.Itoa(s.Rows), first, last})
	}
	if err := renderTable(w, []string{"Station", "Rows", "First", "Last"}, data); err != nil {
		return err
	}

	state := "connected"
	if !status.Connected {
		state = "unreachable"
	}
	version := strconv.FormatUint(uint64(status.Version), 10)
	if status.Version == 0 {
		version = "none (run 'airspot db migrate')"
	}
	if status.Dirty {
		version += " (dirty)"
	}
	_, err := fmt.Fprintf(w, "Backend: %s (%s), schema version: %s\n", status.Backend, state, version)
	return err
}
