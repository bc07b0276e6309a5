package schema

import (
	"fmt"
	"strings"
)

// Station identifies one of the two fixed monitoring stations.
type Station int

// The monitoring stations. The zero value is deliberately invalid.
const (
	StationNYC Station = iota + 1
	StationBogota
)

// AllStations lists every station in display order.
var AllStations = []Station{StationNYC, StationBogota}

// String returns the public station name.
func (s Station) String() string {
	switch s {
	case StationNYC:
		return "NYC"
	case StationBogota:
		return "Bogota"
	default:
		return fmt.Sprintf("Station(%d)", int(s))
	}
}

// Valid reports whether s is one of the fixed stations.
func (s Station) Valid() bool {
	return s == StationNYC || s == StationBogota
}

// Key is the lower-case form used in JSON object keys and table names.
func (s Station) Key() string {
	return strings.ToLower(s.String())
}

// Site is the human-readable monitoring site.
func (s Station) Site() string {
	switch s {
	case StationNYC:
		return "New York - Queens College"
	case StationBogota:
		return "Bogota - San Cristobal"
	default:
		return ""
	}
}

// DataFile is the pipe-delimited file the station is loaded from.
func (s Station) DataFile() string {
	switch s {
	case StationNYC:
		return "StationData-NY_QueensCollege.txt"
	case StationBogota:
		return "StationData-Bogota_SanCristobal.txt"
	default:
		return ""
	}
}

// HasPM10 reports whether the station measures PM10.
func (s Station) HasPM10() bool {
	return s == StationBogota
}

// Carries reports whether the station measures pollutant p.
func (s Station) Carries(p Pollutant) bool {
	switch p {
	case PM25:
		return s.Valid()
	case PM10:
		return s.HasPM10()
	default:
		return false
	}
}

// Pollutants lists the pollutants the station measures.
func (s Station) Pollutants() []Pollutant {
	if s.HasPM10() {
		return []Pollutant{PM25, PM10}
	}
	return []Pollutant{PM25}
}

// MarshalText renders the station by name.
func (s Station) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &UnknownStationError{Name: s.String()}
	}
	return []byte(s.String()), nil
}

// UnmarshalText resolves a station by name.
func (s *Station) UnmarshalText(text []byte) error {
	st, err := ParseStation(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseStation resolves a station name case-insensitively.
// Anything other than the two fixed names is rejected.
func ParseStation(name string) (Station, error) {
	trimmed := strings.TrimSpace(name)
	for _, s := range AllStations {
		if strings.EqualFold(trimmed, s.String()) {
			return s, nil
		}
	}
	return 0, &UnknownStationError{Name: name}
}

// ParsePollutant resolves a pollutant name or one of its aliases.
func ParsePollutant(name string) (Pollutant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pm2.5", "pm25", "pm2_5":
		return PM25, nil
	case "pm10":
		return PM10, nil
	default:
		return "", &PollutantUnavailableError{Pollutant: Pollutant(name)}
	}
}

// Key is the lower-case JSON key for the pollutant.
func (p Pollutant) Key() string {
	if p == PM25 {
		return "pm25"
	}
	return strings.ToLower(string(p))
}

// AnnualLimit returns the WHO annual guideline for the pollutant.
func (p Pollutant) AnnualLimit() float64 {
	if p == PM10 {
		return WHOPM10Annual
	}
	return WHOPM25Annual
}

// DailyLimit returns the WHO 24-hour guideline for the pollutant.
func (p Pollutant) DailyLimit() float64 {
	if p == PM10 {
		return WHOPM10Daily
	}
	return WHOPM25Daily
}
