package schema

import "time"

// Reading is one hourly measurement. PM10 is meaningful only for stations that measure it.
type Reading struct {
	Time time.Time
	PM25 float64
	PM10 float64
}

// Value returns the reading for pollutant p.
func (r Reading) Value(p Pollutant) float64 {
	if p == PM10 {
		return r.PM10
	}
	return r.PM25
}

// Point is one element of an exported time series.
type Point struct {
	Time  time.Time `json:"-"`
	Date  string    `json:"date"`
	Value float64   `json:"value"`
}

// NewPoint builds a Point with its rendered timestamp.
func NewPoint(t time.Time, v float64) Point {
	return Point{Time: t, Date: t.Format(TimestampLayout), Value: v}
}

// DailyAverage is the mean of all readings on one calendar day.
type DailyAverage struct {
	Day   time.Time `json:"-"`
	Date  string    `json:"date"`
	Value float64   `json:"value"`
	Count int       `json:"count"`
}

// HourlyAverage is the mean of all readings at one hour of day, across every date.
type HourlyAverage struct {
	Hour  int     `json:"hour"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// MonthlyAverage is the mean of all readings in one calendar month, across every year.
type MonthlyAverage struct {
	Index int     `json:"-"` // 1 = January
	Month string  `json:"month"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// BasicStats holds descriptive statistics for one pollutant.
type BasicStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// StationStats groups the basic statistics of every pollutant a station measures.
type StationStats struct {
	City Station     `json:"city"`
	PM25 BasicStats  `json:"pm25"`
	PM10 *BasicStats `json:"pm10,omitempty"`
}
