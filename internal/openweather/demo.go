package openweather

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/huangsam/airspot/schema"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/stat/distuv"
)

const demoForecastHours = 24

var titleCaser = cases.Title(language.Und)

func (c *Client) demoGeocode(city City) schema.Location {
	if loc, ok := demoLocations[strings.ToLower(city.Name)]; ok {
		return loc
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return schema.Location{
		Lat:     c.uniform(-60, 60),
		Lon:     c.uniform(-180, 180),
		Name:    titleCaser.String(city.Name),
		Country: "XX",
	}
}

func (c *Client) demoAirQuality() schema.AirQuality {
	c.mu.Lock()
	defer c.mu.Unlock()

	aqi := rand.New(c.src).IntN(5) + 1
	pm25 := c.uniform(0, 35)
	if aqi > 2 {
		pm25 = c.uniform(5, 150)
	}
	pm25 = round2(pm25)
	pm10 := round2(pm25 * c.uniform(1.2, 2.0))

	return schema.AirQuality{
		AQI:              aqi,
		AQILevel:         AQILevel(aqi),
		PM25:             pm25,
		PM10:             pm10,
		NO2:              round2(c.uniform(0, 100)),
		SO2:              round2(c.uniform(0, 50)),
		CO:               round2(c.uniform(100, 1000)),
		O3:               round2(c.uniform(0, 100)),
		NH3:              round2(c.uniform(0, 20)),
		WHOPM25Compliant: pm25 <= schema.WHOPM25Daily,
		WHOPM10Compliant: pm10 <= schema.WHOPM10Daily,
		Timestamp:        c.now(),
	}
}

func (c *Client) demoForecast() []schema.ForecastItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	rng := rand.New(c.src)
	base := c.now()
	items := make([]schema.ForecastItem, 0, demoForecastHours)
	for i := range demoForecastHours {
		aqi := rng.IntN(5) + 1
		pm25 := c.uniform(0, 35)
		if aqi > 2 {
			pm25 = c.uniform(5, 100)
		}
		items = append(items, schema.ForecastItem{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			AQI:       aqi,
			AQILevel:  AQILevel(aqi),
			PM25:      round2(pm25),
			PM10:      round2(pm25 * c.uniform(1.2, 2.0)),
			NO2:       round2(c.uniform(0, 100)),
			SO2:       round2(c.uniform(0, 50)),
		})
	}
	return items
}

// uniform must be called with mu held.
func (c *Client) uniform(lo, hi float64) float64 {
	return distuv.Uniform{Min: lo, Max: hi, Src: c.src}.Rand()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
