// Package sample generates synthetic station files for demos and tests.
package sample

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/huangsam/airspot/internal/loader"
	"github.com/huangsam/airspot/schema"
	"gonum.org/v1/gonum/stat/distuv"
)

// Amplitude of the yearly sine wave added to every station.
const seasonalAmplitude = 5

// Generator produces hourly readings between Start and End, both inclusive.
type Generator struct {
	Start time.Time
	End   time.Time
	Seed  uint64
}

// Timestamps returns every hour from Start to End inclusive.
func (g Generator) Timestamps() []time.Time {
	if g.End.Before(g.Start) {
		return nil
	}
	n := int(g.End.Sub(g.Start)/time.Hour) + 1
	out := make([]time.Time, n)
	for i := range out {
		out[i] = g.Start.Add(time.Duration(i) * time.Hour)
	}
	return out
}

// Seasonal returns the sine wave over n samples, starting and ending at 0.
func Seasonal(n int) []float64 {
	out := make([]float64, n)
	if n < 2 {
		return out
	}
	for i := range out {
		out[i] = seasonalAmplitude * math.Sin(2*math.Pi*float64(i)/float64(n-1))
	}
	return out
}

// Generate draws the readings of both stations. The same seed always yields the same data.
func (g Generator) Generate() (map[schema.Station][]schema.Reading, error) {
	times := g.Timestamps()
	if len(times) == 0 {
		return nil, fmt.Errorf("start %s must not be after end %s", g.Start.Format(schema.TimestampLayout), g.End.Format(schema.TimestampLayout))
	}
	n := len(times)
	seasonal := Seasonal(n)
	src := rand.NewPCG(g.Seed, g.Seed)

	nycDist := distuv.Normal{Mu: 10, Sigma: 5, Src: src}
	nyc := make([]schema.Reading, n)
	for i, ts := range times {
		nyc[i] = schema.Reading{Time: ts, PM25: round2(math.Max(0, nycDist.Rand()+seasonal[i]))}
	}

	// Bogota PM10 tracks the raw PM2.5 draw before the seasonal shift.
	raw := make([]float64, n)
	pm25Dist := distuv.Normal{Mu: 25, Sigma: 10, Src: src}
	for i := range raw {
		raw[i] = pm25Dist.Rand()
	}
	noise := distuv.Normal{Mu: 0, Sigma: 5, Src: src}
	bogota := make([]schema.Reading, n)
	for i, ts := range times {
		pm10 := raw[i]*2.5 + noise.Rand()
		bogota[i] = schema.Reading{
			Time: ts,
			PM25: round2(math.Max(0, raw[i]+2*seasonal[i])),
			PM10: round2(math.Max(0, pm10+3*seasonal[i])),
		}
	}

	return map[schema.Station][]schema.Reading{
		schema.StationNYC:    nyc,
		schema.StationBogota: bogota,
	}, nil
}

// WriteFiles writes one loader-format file per station into dir and returns the paths in station order.
func WriteFiles(dir string, data map[schema.Station][]schema.Reading) ([]string, error) {
	paths := make([]string, 0, len(schema.AllStations))
	for _, station := range schema.AllStations {
		readings, ok := data[station]
		if !ok {
			return nil, fmt.Errorf("no generated readings for %s", station)
		}
		path, err := loader.WriteFile(dir, station, readings)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", station, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
