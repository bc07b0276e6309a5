package schema

import "time"

// AQICategory is the US EPA category of a PM2.5 concentration.
type AQICategory struct {
	Level string `json:"level"`
	Color string `json:"color"`
}

// RealtimeReading is a simulated current reading for one station.
type RealtimeReading struct {
	City             Station     `json:"city"`
	Timestamp        time.Time   `json:"timestamp"`
	PM25             float64     `json:"pm25"`
	AQICategory      AQICategory `json:"aqi_category"`
	WHOCompliant     bool        `json:"who_compliant"`
	Alert            bool        `json:"alert"`
	Trend            Trend       `json:"trend"`
	PM10             *float64    `json:"pm10,omitempty"`
	PM10WHOCompliant *bool       `json:"pm10_who_compliant,omitempty"`
	PM10Alert        *bool       `json:"pm10_alert,omitempty"`
}

// StreamSnapshot is one frame of the realtime stream.
type StreamSnapshot struct {
	NYC       RealtimeReading `json:"nyc"`
	Bogota    RealtimeReading `json:"bogota"`
	Timestamp time.Time       `json:"timestamp"`
}

// Location is a geocoded city.
type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
}

// Coordinates is a bare latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AQILevel describes an OpenWeatherMap air quality index value (1-5).
type AQILevel struct {
	Level       string `json:"level"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// AirQuality is a current air quality observation for a location.
type AirQuality struct {
	AQI              int       `json:"aqi"`
	AQILevel         AQILevel  `json:"aqi_level"`
	PM25             float64   `json:"pm2_5"`
	PM10             float64   `json:"pm10"`
	NO2              float64   `json:"no2"`
	SO2              float64   `json:"so2"`
	CO               float64   `json:"co"`
	O3               float64   `json:"o3"`
	NH3              float64   `json:"nh3"`
	WHOPM25Compliant bool      `json:"who_pm25_compliant"`
	WHOPM10Compliant bool      `json:"who_pm10_compliant"`
	Timestamp        time.Time `json:"timestamp"`
}

// ForecastItem is one hourly air quality forecast.
type ForecastItem struct {
	Timestamp time.Time `json:"timestamp"`
	AQI       int       `json:"aqi"`
	AQILevel  AQILevel  `json:"aqi_level"`
	PM25      float64   `json:"pm2_5"`
	PM10      float64   `json:"pm10"`
	NO2       float64   `json:"no2"`
	SO2       float64   `json:"so2"`
}

// CityAirQuality is the result of a city search.
type CityAirQuality struct {
	Location   Location   `json:"location"`
	AirQuality AirQuality `json:"air_quality"`
	Timestamp  time.Time  `json:"timestamp"`
}

// CoordinatesAirQuality is the result of a coordinate lookup.
type CoordinatesAirQuality struct {
	Coordinates Coordinates `json:"coordinates"`
	AirQuality  AirQuality  `json:"air_quality"`
	Timestamp   time.Time   `json:"timestamp"`
}

// CityForecast is the forecast for a geocoded city.
type CityForecast struct {
	Location  Location       `json:"location"`
	Forecast  []ForecastItem `json:"forecast"`
	Timestamp time.Time      `json:"timestamp"`
}

// PopularCities is the air quality of a fixed set of well-known cities.
type PopularCities struct {
	Cities    []CityAirQuality `json:"cities"`
	Timestamp time.Time        `json:"timestamp"`
}
