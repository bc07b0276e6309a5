package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/huangsam/airspot/internal/sse"
	"github.com/huangsam/airspot/schema"
	"golang.org/x/sync/errgroup"
)

// DefaultStreamCities is used when /api/worldwide/stream has no cities parameter.
const DefaultStreamCities = "London,Paris,Tokyo,New York,Delhi"

// MaxStreamCities caps how many cities one worldwide stream follows.
const MaxStreamCities = 5

var errCoordinatesRequired = errors.New("latitude and longitude required")

func (s *Server) handleWorldSearch(w http.ResponseWriter, r *http.Request) {
	result, err := s.provider.SearchCity(r.Context(), mux.Vars(r)["city"])
	if err != nil {
		s.fail(w, r, worldStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleWorldForecast(w http.ResponseWriter, r *http.Request) {
	result, err := s.provider.CityForecast(r.Context(), mux.Vars(r)["city"])
	if err != nil {
		s.fail(w, r, worldStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// parseCoordinates reads lat and lon, both required and in range.
func parseCoordinates(r *http.Request) (lat, lon float64, err error) {
	q := r.URL.Query()
	rawLat, rawLon := q.Get("lat"), q.Get("lon")
	if rawLat == "" || rawLon == "" {
		return 0, 0, errCoordinatesRequired
	}
	if lat, err = strconv.ParseFloat(rawLat, 64); err != nil {
		return 0, 0, errCoordinatesRequired
	}
	if lon, err = strconv.ParseFloat(rawLon, 64); err != nil {
		return 0, 0, errCoordinatesRequired
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
	}
	return lat, lon, nil
}

func (s *Server) handleWorldCoordinates(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := parseCoordinates(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	result, err := s.provider.ByCoordinates(r.Context(), lat, lon)
	if err != nil {
		s.fail(w, r, worldStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePopularCities(w http.ResponseWriter, r *http.Request) {
	result, err := s.provider.PopularCities(r.Context())
	if err != nil {
		s.fail(w, r, worldStatus(err), err)
		return
	}
	if result.Cities == nil {
		result.Cities = []schema.CityAirQuality{}
	}
	writeJSON(w, http.StatusOK, result)
}

// streamCities splits the cities parameter, dropping blanks, up to MaxStreamCities.
func streamCities(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultStreamCities
	}
	var cities []string
	for c := range strings.SplitSeq(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
		if len(cities) == MaxStreamCities {
			break
		}
	}
	return cities
}

// cityKey turns "New York" into "new_york".
func cityKey(city string) string {
	return strings.ReplaceAll(strings.ToLower(city), " ", "_")
}

// worldFrame looks every city up concurrently. Cities that fail are left out of the frame.
func (s *Server) worldFrame(ctx context.Context, cities []string) map[string]any {
	results := make([]*schema.CityAirQuality, len(cities))
	var g errgroup.Group
	for i, city := range cities {
		g.Go(func() error {
			res, err := s.provider.SearchCity(ctx, city)
			if err != nil {
				s.logger.Warn("worldwide stream lookup failed", "city", city, "err", err)
				return nil
			}
			results[i] = &res
			return nil
		})
	}
	_ = g.Wait()

	frame := make(map[string]any, len(cities)+1)
	for i, city := range cities {
		if results[i] != nil {
			frame[cityKey(city)] = results[i]
		}
	}
	frame["timestamp"] = s.now()
	return frame
}

// handleWorldStream pushes a frame for the requested cities every WorldInterval
// until the client goes away.
func (s *Server) handleWorldStream(w http.ResponseWriter, r *http.Request) {
	flusher, err := sse.PrepareStream(w)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	cities := streamCities(r.URL.Query().Get("cities"))
	ctx := r.Context()

	ticker := time.NewTicker(s.opts.WorldInterval)
	defer ticker.Stop()
	for {
		msg := sse.Message{ID: s.events.NextID(), Data: s.worldFrame(ctx, cities)}
		if err := sse.WriteMessage(w, msg); err != nil {
			return
		}
		flusher.Flush()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
