// Package realtime simulates current readings from the historical statistics of each station.
package realtime

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/huangsam/airspot/core"
	"github.com/huangsam/airspot/schema"
	"gonum.org/v1/gonum/stat/distuv"
)

// RushHourFactor scales the mean during the morning and evening commute.
const RushHourFactor = 1.3

// spreadFactor narrows the historical std for a single simulated draw.
const spreadFactor = 0.5

type categoryBound struct {
	upTo float64
	cat  schema.AQICategory
}

// US EPA PM2.5 breakpoints.
var categories = []categoryBound{
	{12, schema.AQICategory{Level: "Good", Color: "#00e400"}},
	{35.4, schema.AQICategory{Level: "Moderate", Color: "#ffff00"}},
	{55.4, schema.AQICategory{Level: "Unhealthy for Sensitive Groups", Color: "#ff7e00"}},
	{150.4, schema.AQICategory{Level: "Unhealthy", Color: "#ff0000"}},
	{250.4, schema.AQICategory{Level: "Very Unhealthy", Color: "#8f3f97"}},
}

var hazardous = schema.AQICategory{Level: "Hazardous", Color: "#7e0023"}

// Category returns the US EPA category of a PM2.5 concentration.
func Category(pm25 float64) schema.AQICategory {
	for _, b := range categories {
		if pm25 <= b.upTo {
			return b.cat
		}
	}
	return hazardous
}

// HourFactor returns RushHourFactor for hours 7-9 and 17-19, else 1.
func HourFactor(hour int) float64 {
	if (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19) {
		return RushHourFactor
	}
	return 1
}

// Simulator draws readings around each station's historical mean.
// It is safe for concurrent use.
type Simulator struct {
	mu    sync.Mutex
	src   rand.Source
	rng   *rand.Rand
	now   func() time.Time
	stats map[schema.Station]schema.StationStats
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSource sets the random source.
func WithSource(src rand.Source) Option {
	return func(s *Simulator) { s.src = src }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// NewSimulator precomputes the baseline statistics of every station in ds.
func NewSimulator(ds *core.Dataset, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		now:   time.Now,
		stats: make(map[schema.Station]schema.StationStats, len(schema.AllStations)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	s.rng = rand.New(s.src)

	for _, station := range schema.AllStations {
		series, err := ds.Get(station)
		if err != nil {
			return nil, err
		}
		st, err := core.StationStats(series)
		if err != nil {
			return nil, fmt.Errorf("baseline for %s: %w", station, err)
		}
		s.stats[station] = st
	}
	return s, nil
}

// Reading simulates the current reading of one station.
func (s *Simulator) Reading(station schema.Station) (schema.RealtimeReading, error) {
	st, ok := s.stats[station]
	if !ok {
		return schema.RealtimeReading{}, &schema.UnknownStationError{Name: station.String()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	factor := HourFactor(now.Hour())

	pm25 := s.draw(st.PM25, factor)
	out := schema.RealtimeReading{
		City:         station,
		Timestamp:    now,
		PM25:         pm25,
		AQICategory:  Category(pm25),
		WHOCompliant: pm25 <= schema.WHOPM25Annual,
		Alert:        pm25 > schema.WHOPM25Daily,
		Trend:        schema.AllTrends[s.rng.IntN(len(schema.AllTrends))],
	}

	if st.PM10 != nil {
		pm10 := s.draw(*st.PM10, factor)
		compliant := pm10 <= schema.WHOPM10Annual
		alert := pm10 > schema.WHOPM10Daily
		out.PM10 = &pm10
		out.PM10WHOCompliant = &compliant
		out.PM10Alert = &alert
	}
	return out, nil
}

// Snapshot simulates both stations at once.
func (s *Simulator) Snapshot() (schema.StreamSnapshot, error) {
	nyc, err := s.Reading(schema.StationNYC)
	if err != nil {
		return schema.StreamSnapshot{}, err
	}
	bogota, err := s.Reading(schema.StationBogota)
	if err != nil {
		return schema.StreamSnapshot{}, err
	}
	return schema.StreamSnapshot{NYC: nyc, Bogota: bogota, Timestamp: s.now()}, nil
}

// draw must be called with mu held.
func (s *Simulator) draw(base schema.BasicStats, factor float64) float64 {
	normal := distuv.Normal{Mu: base.Mean * factor, Sigma: base.Std * spreadFactor, Src: s.src}
	return round2(math.Max(0, normal.Rand()))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
