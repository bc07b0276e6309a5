package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/huangsam/airspot/internal/openweather"
	"github.com/huangsam/airspot/schema"
	"github.com/urfave/negroni"
)

// errorBody is the JSON body of every failed request.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: http.StatusText(status), Message: msg})
}

// datasetStatus maps query errors to HTTP status codes.
func datasetStatus(err error) int {
	switch {
	case errors.Is(err, schema.ErrUnknownStation):
		return http.StatusNotFound
	case errors.Is(err, schema.ErrPollutantUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, schema.ErrEmptySeries), errors.Is(err, schema.ErrUndefinedCorrelation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// worldStatus maps OpenWeatherMap failures to HTTP status codes.
func worldStatus(err error) int {
	switch {
	case errors.Is(err, openweather.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "status", status, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	writeError(w, status, err.Error())
}

// requestLogger logs one line per request once the response is written.
func requestLogger(logger *slog.Logger) negroni.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		start := time.Now()
		next(rw, r)

		status := http.StatusOK
		if nw, ok := rw.(negroni.ResponseWriter); ok && nw.Status() != 0 {
			status = nw.Status()
		}
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
		)
	}
}
