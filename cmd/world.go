package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/internal/outwriter"
	"github.com/huangsam/airspot/schema"
	"github.com/spf13/cobra"
)

var errNoAPIKey = errors.New("no API key set, serving synthetic demo data")

// worldCmd groups the OpenWeatherMap lookups.
var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Look up current air quality anywhere through OpenWeatherMap",
	Long: `Query the OpenWeatherMap air pollution API for cities and coordinates.

Without an API key (--openweather-api-key, AIRSPOT_OPENWEATHER_API_KEY or
OPENWEATHER_API_KEY) every lookup returns synthetic demo data and no request is sent.

Subcommands:
  search   - Current air quality of a city
  forecast - Hourly forecast of a city
  coords   - Current air quality at a latitude and longitude
  popular  - Current air quality of well-known cities

Examples:
  # Current air quality in London
  airspot world search "London,GB"

  # Five-day forecast for Delhi as JSON
  airspot world forecast Delhi --output json`,
}

// worldSetupWrapper runs the shared setup and warns once about demo mode.
func worldSetupWrapper(cmd *cobra.Command, args []string) error {
	if err := sharedSetupWrapper(cmd, args); err != nil {
		return err
	}
	if cfg.OpenWeatherAPIKey == "" {
		contract.LogWarn("OpenWeatherMap", errNoAPIKey)
	}
	return nil
}

// worldSearchCmd looks up the current air quality of a city.
var worldSearchCmd = &cobra.Command{
	Use:   "search <city[,CC]>",
	Short: "Show the current air quality of a city",
	Long: `Geocode a city, optionally qualified by an ISO country code, and show its
current air quality index and pollutant concentrations.

Examples:
  airspot world search Paris
  airspot world search "Springfield,US" --output csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: worldSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		result, err := newProvider().SearchCity(rootCtx, args[0])
		if err != nil {
			contract.LogFatal("Failed to look up city", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteCities([]schema.CityAirQuality{result}); err != nil {
			contract.LogFatal("Failed to write air quality", err)
		}
	},
}

// worldForecastCmd shows the hourly forecast of a city.
var worldForecastCmd = &cobra.Command{
	Use:   "forecast <city[,CC]>",
	Short: "Show the hourly air quality forecast of a city",
	Long: `Geocode a city and show its hourly air quality forecast.

Examples:
  airspot world forecast Tokyo
  airspot world forecast "Bogota,CO" --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: worldSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		result, err := newProvider().CityForecast(rootCtx, args[0])
		if err != nil {
			contract.LogFatal("Failed to fetch forecast", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteForecast(result); err != nil {
			contract.LogFatal("Failed to write forecast", err)
		}
	},
}

// parseLatLon validates a latitude and longitude pair.
func parseLatLon(rawLat, rawLon string) (lat, lon float64, err error) {
	if lat, err = strconv.ParseFloat(strings.TrimSpace(rawLat), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", rawLat, err)
	}
	if lon, err = strconv.ParseFloat(strings.TrimSpace(rawLon), 64); err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", rawLon, err)
	}
	if lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("latitude must be within [-90, 90] (received %g)", lat)
	}
	if lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("longitude must be within [-180, 180] (received %g)", lon)
	}
	return lat, lon, nil
}

// worldCoordsCmd looks up the current air quality at a point.
var worldCoordsCmd = &cobra.Command{
	Use:   "coords <lat> <lon>",
	Short: "Show the current air quality at a latitude and longitude",
	Long: `Show the current air quality at a point. Negative values need "--" first.

Examples:
  airspot world coords 40.7128 -- -74.0060
  airspot world coords 4.711 -- -74.0721 --output json`,
	Args:    cobra.ExactArgs(2),
	PreRunE: worldSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		lat, lon, err := parseLatLon(args[0], args[1])
		if err != nil {
			contract.LogFatal("Invalid coordinates", err)
		}
		result, err := newProvider().ByCoordinates(rootCtx, lat, lon)
		if err != nil {
			contract.LogFatal("Failed to look up coordinates", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteCoordinates(result); err != nil {
			contract.LogFatal("Failed to write air quality", err)
		}
	},
}

// worldPopularCmd shows the well-known cities.
var worldPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "Show the current air quality of well-known cities",
	Long: `Look up ten well-known cities concurrently. Cities that fail are skipped.

Examples:
  airspot world popular
  airspot world popular --output csv --output-file cities.csv`,
	Args:    cobra.NoArgs,
	PreRunE: worldSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := newProvider().PopularCities(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to look up popular cities", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteCities(result.Cities); err != nil {
			contract.LogFatal("Failed to write air quality", err)
		}
	},
}
