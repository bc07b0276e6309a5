package schema

import "time"

// StationStatus describes the readings a database source holds for one station.
type StationStatus struct {
	Station Station   `json:"station"`
	Rows    int       `json:"rows"`
	First   time.Time `json:"first"`
	Last    time.Time `json:"last"`
}

// SourceStatus describes a database reading source.
type SourceStatus struct {
	Backend   DatabaseBackend `json:"backend"`
	Connected bool            `json:"connected"`
	Version   uint            `json:"schema_version"`
	Dirty     bool            `json:"dirty"`
	Stations  []StationStatus `json:"stations"`
}
