package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/huangsam/airspot/core"
	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/schema"
)

// seriesArgs resolves the {city} and {pollutant} path variables.
func (s *Server) seriesArgs(r *http.Request) (*core.Series, schema.Pollutant, error) {
	vars := mux.Vars(r)
	series, err := s.ds.Lookup(vars["city"])
	if err != nil {
		return nil, "", err
	}
	p, err := schema.ParsePollutant(vars["pollutant"])
	if err != nil {
		return nil, "", err
	}
	return series, p, nil
}

// queryInt reads a positive integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer (received %q)", name, raw)
	}
	return v, nil
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	series, err := s.ds.Lookup(mux.Vars(r)["city"])
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	stats, err := core.StationStats(series)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleTimeseries(w http.ResponseWriter, r *http.Request) {
	stride, err := queryInt(r, "stride", contract.DefaultTimeseriesStride)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	series, p, err := s.seriesArgs(r)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	result, err := core.SampledSeries(series, p, stride)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(result.Points))
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	series, p, err := s.seriesArgs(r)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	days, err := core.DailyAverages(series, p)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(days))
}

func (s *Server) handleHourly(w http.ResponseWriter, r *http.Request) {
	series, p, err := s.seriesArgs(r)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	hours, err := core.HourlyPattern(series, p)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(hours))
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	series, p, err := s.seriesArgs(r)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	months, err := core.MonthlyPattern(series, p)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(months))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	stride, err := queryInt(r, "stride", contract.DefaultTimeseriesStride)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	p := schema.PM25
	if raw := r.URL.Query().Get("pollutant"); raw != "" {
		if p, err = schema.ParsePollutant(raw); err != nil {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
	}
	result, err := core.CompareStations(s.ds, p, stride)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleWHOLimits(w http.ResponseWriter, r *http.Request) {
	series, err := s.ds.Lookup(mux.Vars(r)["city"])
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	report, err := core.CheckLimits(series)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := core.SampledSummary(s.ds, contract.DefaultSummaryStride)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleRealtime(w http.ResponseWriter, r *http.Request) {
	station, err := schema.ParseStation(mux.Vars(r)["city"])
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	reading, err := s.sim.Reading(station)
	if err != nil {
		s.fail(w, r, datasetStatus(err), err)
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

type healthResponse struct {
	Status     string         `json:"status"`
	Readings   map[string]int `json:"readings"`
	SSEClients int            `json:"sse_clients"`
	DemoMode   bool           `json:"openweather_demo"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:     "ok",
		Readings:   make(map[string]int, len(schema.AllStations)),
		SSEClients: s.events.ClientCount(),
		DemoMode:   s.provider.DemoMode(),
	}
	for _, station := range schema.AllStations {
		if series, err := s.ds.Get(station); err == nil {
			resp.Readings[station.Key()] = series.Len()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// nonNil keeps empty results encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
