package openweather

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/huangsam/airspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fakeAPI serves the three endpoints the client uses. Cities in missing answer 404.
func fakeAPI(t *testing.T, missing ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		q := r.URL.Query().Get("q")
		name, country, _ := strings.Cut(q, ",")
		for _, m := range missing {
			if strings.EqualFold(name, m) {
				http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
				return
			}
		}
		if country == "" {
			country = "GB"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"coord": map[string]float64{"lat": 51.51, "lon": -0.13},
			"name":  name,
			"sys":   map[string]string{"country": country},
		})
	})
	pollution := func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "51.51", r.URL.Query().Get("lat"))
		assert.Equal(t, "-0.13", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(`{"list":[
			{"dt":1710082800,"main":{"aqi":2},"components":{"co":201.94,"no2":18.51,"o3":68.66,"so2":0.64,"pm2_5":12.5,"pm10":50.2,"nh3":0.12}},
			{"dt":1710086400,"main":{"aqi":7},"components":{"pm2_5":3,"pm10":4}}
		]}`))
	}
	mux.HandleFunc("/air_pollution", pollution)
	mux.HandleFunc("/air_pollution/forecast", pollution)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestAQILevel(t *testing.T) {
	assert.Equal(t, "Good", AQILevel(1).Level)
	assert.Equal(t, "#ff7e00", AQILevel(3).Color)
	assert.Equal(t, "Health alert: everyone may experience serious effects", AQILevel(5).Description)
	assert.Equal(t, AQILevel(1), AQILevel(0))
	assert.Equal(t, AQILevel(1), AQILevel(9))
}

func TestParseCity(t *testing.T) {
	assert.Equal(t, City{Name: "London", Country: "GB"}, ParseCity("London, GB"))
	assert.Equal(t, City{Name: "New York"}, ParseCity(" New York "))
	assert.Equal(t, "London,GB", City{"London", "GB"}.Query())
	assert.Equal(t, "Tokyo", City{Name: "Tokyo"}.Query())
}

func TestClient_SearchCity(t *testing.T) {
	srv, _ := fakeAPI(t)
	c := NewClient(srv.URL+"/", "secret", WithClock(fixedClock))
	assert.False(t, c.DemoMode())

	got, err := c.SearchCity(context.Background(), "London,GB")
	require.NoError(t, err)
	assert.Equal(t, schema.Location{Lat: 51.51, Lon: -0.13, Name: "London", Country: "GB"}, got.Location)
	assert.Equal(t, fixedNow, got.Timestamp)

	aq := got.AirQuality
	assert.Equal(t, 2, aq.AQI)
	assert.Equal(t, "Fair", aq.AQILevel.Level)
	assert.Equal(t, 12.5, aq.PM25)
	assert.Equal(t, 50.2, aq.PM10)
	assert.Equal(t, 201.94, aq.CO)
	assert.True(t, aq.WHOPM25Compliant)
	assert.False(t, aq.WHOPM10Compliant)
	assert.Equal(t, time.Unix(1710082800, 0).UTC(), aq.Timestamp)
}

func TestClient_CityForecast(t *testing.T) {
	srv, _ := fakeAPI(t)
	c := NewClient(srv.URL, "secret", WithClock(fixedClock))

	got, err := c.CityForecast(context.Background(), "London")
	require.NoError(t, err)
	require.Len(t, got.Forecast, 2)
	assert.Equal(t, 12.5, got.Forecast[0].PM25)
	assert.Equal(t, 7, got.Forecast[1].AQI)
	assert.Equal(t, "Good", got.Forecast[1].AQILevel.Level, "unknown index falls back to level 1")
}

func TestClient_ByCoordinates(t *testing.T) {
	srv, _ := fakeAPI(t)
	c := NewClient(srv.URL, "secret", WithClock(fixedClock))

	got, err := c.ByCoordinates(context.Background(), 51.51, -0.13)
	require.NoError(t, err)
	assert.Equal(t, schema.Coordinates{Lat: 51.51, Lon: -0.13}, got.Coordinates)
	assert.Equal(t, 12.5, got.AirQuality.PM25)
}

func TestClient_CityNotFound(t *testing.T) {
	srv, _ := fakeAPI(t, "Atlantis")
	c := NewClient(srv.URL, "secret")

	_, err := c.SearchCity(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, "/weather", status.Endpoint)

	_, err = c.SearchCity(context.Background(), " ,GB")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClient_PopularCitiesSkipsFailures(t *testing.T) {
	srv, _ := fakeAPI(t, "Tokyo", "Berlin")
	c := NewClient(srv.URL, "secret", WithClock(fixedClock))

	got, err := c.PopularCities(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Cities, PopularCityLimit-2)

	var names []string
	for _, city := range got.Cities {
		names = append(names, city.Location.Name)
	}
	assert.Equal(t, []string{"London", "Paris", "New York", "Beijing", "Delhi", "Mumbai", "Sydney", "Madrid"}, names)
	assert.Equal(t, fixedNow, got.Timestamp)
}

func TestClient_PopularCitiesCanceled(t *testing.T) {
	srv, _ := fakeAPI(t)
	c := NewClient(srv.URL, "secret")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.PopularCities(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDemoMode_NeverCallsNetwork(t *testing.T) {
	srv, calls := fakeAPI(t)
	c := NewClient(srv.URL, "", WithSource(rand.NewPCG(1, 2)), WithClock(fixedClock))
	require.True(t, c.DemoMode())
	ctx := context.Background()

	london, err := c.SearchCity(ctx, "london")
	require.NoError(t, err)
	assert.Equal(t, schema.Location{Lat: 51.5074, Lon: -0.1278, Name: "London", Country: "GB"}, london.Location)

	_, err = c.CityForecast(ctx, "Tokyo")
	require.NoError(t, err)
	_, err = c.ByCoordinates(ctx, 1, 2)
	require.NoError(t, err)
	popular, err := c.PopularCities(ctx)
	require.NoError(t, err)
	assert.Len(t, popular.Cities, PopularCityLimit)

	assert.Zero(t, calls.Load())
}

func TestDemoMode_UnknownCity(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", WithSource(rand.NewPCG(3, 4)))
	for range 50 {
		loc, err := c.Geocode(context.Background(), City{Name: "san juan de pasto"})
		require.NoError(t, err)
		assert.Equal(t, "San Juan De Pasto", loc.Name)
		assert.Equal(t, "XX", loc.Country)
		assert.GreaterOrEqual(t, loc.Lat, -60.0)
		assert.LessOrEqual(t, loc.Lat, 60.0)
		assert.GreaterOrEqual(t, loc.Lon, -180.0)
		assert.LessOrEqual(t, loc.Lon, 180.0)
	}
}

func TestDemoMode_AirQualityRanges(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", WithSource(rand.NewPCG(5, 6)), WithClock(fixedClock))
	for range 200 {
		aq, err := c.CurrentAirQuality(context.Background(), 0, 0)
		require.NoError(t, err)
		require.GreaterOrEqual(t, aq.AQI, 1)
		require.LessOrEqual(t, aq.AQI, 5)
		assert.Equal(t, AQILevel(aq.AQI), aq.AQILevel)
		if aq.AQI > 2 {
			assert.GreaterOrEqual(t, aq.PM25, 5.0)
			assert.LessOrEqual(t, aq.PM25, 150.0)
		} else {
			assert.LessOrEqual(t, aq.PM25, 35.0)
		}
		assert.GreaterOrEqual(t, aq.PM10, aq.PM25)
		assert.GreaterOrEqual(t, aq.CO, 100.0)
		assert.Equal(t, aq.PM25 <= schema.WHOPM25Daily, aq.WHOPM25Compliant)
		assert.Equal(t, aq.PM10 <= schema.WHOPM10Daily, aq.WHOPM10Compliant)
		assert.Equal(t, fixedNow, aq.Timestamp)
	}
}

func TestDemoMode_Forecast(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "", WithSource(rand.NewPCG(7, 8)), WithClock(fixedClock))
	items, err := c.Forecast(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, items, 24)
	for i, item := range items {
		assert.Equal(t, fixedNow.Add(time.Duration(i)*time.Hour), item.Timestamp)
		if item.AQI > 2 {
			assert.LessOrEqual(t, item.PM25, 100.0)
		}
	}
}
