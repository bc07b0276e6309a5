// Package openweather looks up worldwide air quality from the OpenWeatherMap API.
// Without an API key the client runs in demo mode and synthesizes every answer locally.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/schema"
	"golang.org/x/sync/errgroup"
)

const defaultHTTPTimeout = 10 * time.Second

// ErrNotFound is matched by lookups the API answered with 404, such as an unknown city.
var ErrNotFound = errors.New("not found")

// StatusError is returned for any non-200 answer.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openweather %s: unexpected status code %d: %s", e.Endpoint, e.Code, e.Body)
}

// Is matches ErrNotFound for a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Client is a contract.AirQualityProvider backed by OpenWeatherMap.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time

	mu  sync.Mutex // guards src for demo draws
	src rand.Source
}

var _ contract.AirQualityProvider = &Client{} // Compile-time check

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default client with a 10s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for skipped lookups.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithSource sets the random source used in demo mode.
func WithSource(src rand.Source) Option {
	return func(c *Client) { c.src = src }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a client for baseURL. An empty apiKey selects demo mode.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.src == nil {
		c.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return c
}

// DemoMode reports whether results are synthetic.
func (c *Client) DemoMode() bool {
	return c.apiKey == ""
}

// ParseCity splits "city" or "city,CC" into a City.
func ParseCity(query string) City {
	name, country, _ := strings.Cut(query, ",")
	return City{Name: strings.TrimSpace(name), Country: strings.TrimSpace(country)}
}

// Geocode resolves a city to coordinates.
func (c *Client) Geocode(ctx context.Context, city City) (schema.Location, error) {
	if city.Name == "" {
		return schema.Location{}, fmt.Errorf("city name is required")
	}
	if c.DemoMode() {
		return c.demoGeocode(city), nil
	}

	var resp struct {
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
	}
	if err := c.get(ctx, "/weather", url.Values{"q": {city.Query()}}, &resp); err != nil {
		return schema.Location{}, err
	}
	return schema.Location{Lat: resp.Coord.Lat, Lon: resp.Coord.Lon, Name: resp.Name, Country: resp.Sys.Country}, nil
}

type pollutionItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	Components struct {
		CO   float64 `json:"co"`
		NO2  float64 `json:"no2"`
		O3   float64 `json:"o3"`
		SO2  float64 `json:"so2"`
		PM25 float64 `json:"pm2_5"`
		PM10 float64 `json:"pm10"`
		NH3  float64 `json:"nh3"`
	} `json:"components"`
}

type pollutionResponse struct {
	List []pollutionItem `json:"list"`
}

// CurrentAirQuality returns the latest observation at a point.
func (c *Client) CurrentAirQuality(ctx context.Context, lat, lon float64) (schema.AirQuality, error) {
	if c.DemoMode() {
		return c.demoAirQuality(), nil
	}

	var resp pollutionResponse
	if err := c.get(ctx, "/air_pollution", coordinates(lat, lon), &resp); err != nil {
		return schema.AirQuality{}, err
	}
	if len(resp.List) == 0 {
		return schema.AirQuality{}, fmt.Errorf("openweather /air_pollution: no air quality data for %v,%v", lat, lon)
	}

	item := resp.List[0]
	comp := item.Components
	return schema.AirQuality{
		AQI:              item.Main.AQI,
		AQILevel:         AQILevel(item.Main.AQI),
		PM25:             comp.PM25,
		PM10:             comp.PM10,
		NO2:              comp.NO2,
		SO2:              comp.SO2,
		CO:               comp.CO,
		O3:               comp.O3,
		NH3:              comp.NH3,
		WHOPM25Compliant: comp.PM25 <= schema.WHOPM25Daily,
		WHOPM10Compliant: comp.PM10 <= schema.WHOPM10Daily,
		Timestamp:        time.Unix(item.Dt, 0).UTC(),
	}, nil
}

// Forecast returns the hourly forecast at a point.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]schema.ForecastItem, error) {
	if c.DemoMode() {
		return c.demoForecast(), nil
	}

	var resp pollutionResponse
	if err := c.get(ctx, "/air_pollution/forecast", coordinates(lat, lon), &resp); err != nil {
		return nil, err
	}
	items := make([]schema.ForecastItem, 0, len(resp.List))
	for _, item := range resp.List {
		items = append(items, schema.ForecastItem{
			Timestamp: time.Unix(item.Dt, 0).UTC(),
			AQI:       item.Main.AQI,
			AQILevel:  AQILevel(item.Main.AQI),
			PM25:      item.Components.PM25,
			PM10:      item.Components.PM10,
			NO2:       item.Components.NO2,
			SO2:       item.Components.SO2,
		})
	}
	return items, nil
}

// SearchCity geocodes the query and returns its current air quality.
func (c *Client) SearchCity(ctx context.Context, query string) (schema.CityAirQuality, error) {
	return c.searchCity(ctx, ParseCity(query))
}

func (c *Client) searchCity(ctx context.Context, city City) (schema.CityAirQuality, error) {
	loc, err := c.Geocode(ctx, city)
	if err != nil {
		return schema.CityAirQuality{}, err
	}
	aq, err := c.CurrentAirQuality(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return schema.CityAirQuality{}, err
	}
	return schema.CityAirQuality{Location: loc, AirQuality: aq, Timestamp: c.now()}, nil
}

// ByCoordinates returns the current air quality at a point.
func (c *Client) ByCoordinates(ctx context.Context, lat, lon float64) (schema.CoordinatesAirQuality, error) {
	aq, err := c.CurrentAirQuality(ctx, lat, lon)
	if err != nil {
		return schema.CoordinatesAirQuality{}, err
	}
	return schema.CoordinatesAirQuality{
		Coordinates: schema.Coordinates{Lat: lat, Lon: lon},
		AirQuality:  aq,
		Timestamp:   c.now(),
	}, nil
}

// CityForecast geocodes the query and returns its forecast.
func (c *Client) CityForecast(ctx context.Context, query string) (schema.CityForecast, error) {
	loc, err := c.Geocode(ctx, ParseCity(query))
	if err != nil {
		return schema.CityForecast{}, err
	}
	items, err := c.Forecast(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return schema.CityForecast{}, err
	}
	return schema.CityForecast{Location: loc, Forecast: items, Timestamp: c.now()}, nil
}

// PopularCities looks up the first PopularCityLimit cities concurrently.
// Cities that fail are logged and left out; the order of PopularCityList is kept.
func (c *Client) PopularCities(ctx context.Context) (schema.PopularCities, error) {
	cities := PopularCityList[:PopularCityLimit]
	results := make([]*schema.CityAirQuality, len(cities))

	var g errgroup.Group
	g.SetLimit(5)
	for i, city := range cities {
		g.Go(func() error {
			res, err := c.searchCity(ctx, city)
			if err != nil {
				c.logger.Warn("skipping popular city", "city", city.Query(), "error", err)
				return nil
			}
			results[i] = &res
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return schema.PopularCities{}, err
	}
	out := schema.PopularCities{Cities: make([]schema.CityAirQuality, 0, len(cities)), Timestamp: c.now()}
	for _, r := range results {
		if r != nil {
			out.Cities = append(out.Cities, *r)
		}
	}
	return out, nil
}

func coordinates(lat, lon float64) url.Values {
	return url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
	}
}

// get issues a GET against the API and decodes a JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("appid", c.apiKey)
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openweather %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}
	return nil
}
