package httpapi

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/huangsam/airspot/schema"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type endpoint struct {
	Path        string
	Description string
}

type endpointGroup struct {
	Name      string
	Endpoints []endpoint
}

type stationInfo struct {
	Name     string
	Site     string
	Readings int
}

type indexPage struct {
	Title    string
	Stations []stationInfo
	DemoMode bool
	Groups   []endpointGroup
}

var endpointGroups = []endpointGroup{
	{
		Name: "Historical data",
		Endpoints: []endpoint{
			{"/api/stats/{city}", "Mean, median, std, min, max and count per pollutant"},
			{"/api/timeseries/{city}/{pollutant}?stride=6", "Hourly readings, every Nth point"},
			{"/api/daily/{city}/{pollutant}", "Daily averages"},
			{"/api/hourly/{city}/{pollutant}", "Average by hour of day"},
			{"/api/monthly/{city}/{pollutant}", "Average by calendar month"},
			{"/api/who-limits/{city}", "WHO annual and 24-hour guideline check"},
			{"/api/compare?stride=6", "NYC vs Bogota PM2.5 correlation and head-to-head counts"},
			{"/api/summary", "Stats, compliance and comparison in one response"},
		},
	},
	{
		Name: "Realtime (simulated)",
		Endpoints: []endpoint{
			{"/api/realtime/{city}", "One simulated current reading"},
			{"/api/realtime/stream", "Server-Sent Events with both stations"},
		},
	},
	{
		Name: "Worldwide (OpenWeatherMap)",
		Endpoints: []endpoint{
			{"/api/worldwide/search/{city}", "Current air quality of a city, e.g. London,GB"},
			{"/api/worldwide/coordinates?lat=&lon=", "Current air quality at a point"},
			{"/api/worldwide/forecast/{city}", "Hourly air quality forecast"},
			{"/api/worldwide/popular-cities", "Air quality of well-known cities"},
			{"/api/worldwide/stream?cities=London,Paris", "Server-Sent Events for up to 5 cities"},
		},
	},
	{
		Name: "Service",
		Endpoints: []endpoint{
			{"/healthz", "Liveness and dataset size"},
			{"/metrics", "Prometheus metrics"},
		},
	},
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{
		Title:    "Airspot air quality",
		DemoMode: s.provider.DemoMode(),
		Groups:   endpointGroups,
	}
	for _, station := range schema.AllStations {
		info := stationInfo{Name: station.String(), Site: station.Site()}
		if series, err := s.ds.Get(station); err == nil {
			info.Readings = series.Len()
		}
		page.Stations = append(page.Stations, info)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, page); err != nil {
		s.logger.Error("render index", "path", r.URL.Path, "err", err)
	}
}
