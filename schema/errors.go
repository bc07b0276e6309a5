package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for the query operations. The typed errors below match them with errors.Is.
var (
	ErrUnknownStation       = errors.New("unknown station")
	ErrPollutantUnavailable = errors.New("pollutant unavailable")
	ErrEmptySeries          = errors.New("empty series")
	ErrUndefinedCorrelation = errors.New("undefined correlation")
)

// UnknownStationError is returned for a station name outside the fixed set.
type UnknownStationError struct {
	Name string
}

func (e *UnknownStationError) Error() string {
	return fmt.Sprintf("unknown station %q: must be NYC or Bogota", e.Name)
}

// Is matches ErrUnknownStation.
func (e *UnknownStationError) Is(target error) bool { return target == ErrUnknownStation }

// PollutantUnavailableError is returned when a station does not measure the pollutant,
// or when the pollutant name itself is not recognized.
type PollutantUnavailableError struct {
	Station   Station
	Pollutant Pollutant
}

func (e *PollutantUnavailableError) Error() string {
	if !e.Station.Valid() {
		return fmt.Sprintf("pollutant %q unavailable: must be PM2.5 or PM10", string(e.Pollutant))
	}
	return fmt.Sprintf("pollutant %s unavailable for station %s", e.Pollutant, e.Station)
}

// Is matches ErrPollutantUnavailable.
func (e *PollutantUnavailableError) Is(target error) bool { return target == ErrPollutantUnavailable }

// EmptySeriesError is returned when a mean or ratio would divide by zero.
type EmptySeriesError struct {
	Station Station
	Op      string
}

func (e *EmptySeriesError) Error() string {
	return fmt.Sprintf("%s: series for %s has no observations", e.Op, e.Station)
}

// Is matches ErrEmptySeries.
func (e *EmptySeriesError) Is(target error) bool { return target == ErrEmptySeries }

// UndefinedCorrelationError is returned when the joined columns cannot be correlated.
type UndefinedCorrelationError struct {
	Reason string
	// Empty is set when the join produced no rows.
	Empty bool
}

func (e *UndefinedCorrelationError) Error() string {
	return "correlation undefined: " + e.Reason
}

// Is matches ErrUndefinedCorrelation, and ErrEmptySeries for an empty join.
func (e *UndefinedCorrelationError) Is(target error) bool {
	return target == ErrUndefinedCorrelation || (e.Empty && target == ErrEmptySeries)
}
