package openweather

import "github.com/huangsam/airspot/schema"

// OpenWeatherMap reports an index from 1 (Good) to 5 (Very Poor).
var aqiLevels = map[int]schema.AQILevel{
	1: {Level: "Good", Color: "#00e400", Description: "Air quality is satisfactory"},
	2: {Level: "Fair", Color: "#ffff00", Description: "Air quality is acceptable"},
	3: {Level: "Moderate", Color: "#ff7e00", Description: "Sensitive groups may experience health effects"},
	4: {Level: "Poor", Color: "#ff0000", Description: "Everyone may begin to experience health effects"},
	5: {Level: "Very Poor", Color: "#8f3f97", Description: "Health alert: everyone may experience serious effects"},
}

// AQILevel describes an index value. Values outside 1-5 are described as level 1.
func AQILevel(aqi int) schema.AQILevel {
	if level, ok := aqiLevels[aqi]; ok {
		return level
	}
	return aqiLevels[1]
}

// City is a query for the geocoding endpoint.
type City struct {
	Name    string
	Country string // ISO 3166 code, optional
}

// Query renders the city as "name" or "name,CC".
func (c City) Query() string {
	if c.Country == "" {
		return c.Name
	}
	return c.Name + "," + c.Country
}

// PopularCityLimit is how many entries of PopularCityList are looked up.
const PopularCityLimit = 10

// PopularCityList holds well-known cities in lookup order.
var PopularCityList = []City{
	{"London", "GB"},
	{"Paris", "FR"},
	{"Tokyo", "JP"},
	{"New York", "US"},
	{"Beijing", "CN"},
	{"Delhi", "IN"},
	{"Mumbai", "IN"},
	{"Sydney", "AU"},
	{"Berlin", "DE"},
	{"Madrid", "ES"},
	{"Los Angeles", "US"},
	{"Mexico City", "MX"},
	{"São Paulo", "BR"},
	{"Cairo", "EG"},
	{"Singapore", "SG"},
}

// Fixed demo coordinates, keyed by lower-case name.
var demoLocations = map[string]schema.Location{
	"london":   {Lat: 51.5074, Lon: -0.1278, Name: "London", Country: "GB"},
	"paris":    {Lat: 48.8566, Lon: 2.3522, Name: "Paris", Country: "FR"},
	"tokyo":    {Lat: 35.6762, Lon: 139.6503, Name: "Tokyo", Country: "JP"},
	"new york": {Lat: 40.7128, Lon: -74.0060, Name: "New York", Country: "US"},
	"beijing":  {Lat: 39.9042, Lon: 116.4074, Name: "Beijing", Country: "CN"},
	"delhi":    {Lat: 28.6139, Lon: 77.2090, Name: "Delhi", Country: "IN"},
	"mumbai":   {Lat: 19.0760, Lon: 72.8777, Name: "Mumbai", Country: "IN"},
	"sydney":   {Lat: -33.8688, Lon: 151.2093, Name: "Sydney", Country: "AU"},
	"berlin":   {Lat: 52.5200, Lon: 13.4050, Name: "Berlin", Country: "DE"},
	"madrid":   {Lat: 40.4168, Lon: -3.7038, Name: "Madrid", Country: "ES"},
}
