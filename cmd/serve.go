package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/internal/httpapi"
	"github.com/huangsam/airspot/internal/openweather"
	"github.com/huangsam/airspot/internal/realtime"
	"github.com/spf13/cobra"
)

// newProvider builds the OpenWeatherMap client. Without an API key it runs in demo mode.
func newProvider() *openweather.Client {
	return openweather.NewClient(cfg.OpenWeatherURL, cfg.OpenWeatherAPIKey, openweather.WithLogger(logger))
}

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API, event streams and metrics over HTTP",
	Long: `Start the HTTP server with the historical endpoints, the simulated realtime
stream, the worldwide OpenWeatherMap lookups and Prometheus metrics.

The server shuts down gracefully on SIGINT or SIGTERM.

Endpoints:
  /api/stats/{city}, /api/timeseries/{city}/{pollutant}, /api/daily/...,
  /api/hourly/..., /api/monthly/..., /api/compare, /api/who-limits/{city},
  /api/summary, /api/realtime/{city}, /api/realtime/stream,
  /api/worldwide/..., /healthz, /metrics

Examples:
  # Serve on the default port 5000
  airspot serve

  # Live OpenWeatherMap data with a faster realtime stream
  OPENWEATHER_API_KEY=... airspot serve --http-addr :8080 --stream-interval 2s

  # Structured logs for a container
  airspot serve --log-level info --log-format json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		ds, err := loadDataset(ctx)
		if err != nil {
			return err
		}
		sim, err := realtime.NewSimulator(ds)
		if err != nil {
			return err
		}
		provider := newProvider()
		if provider.DemoMode() {
			contract.LogWarn("OpenWeatherMap", errNoAPIKey)
		}

		srv := httpapi.NewServer(ds, sim, provider, httpapi.Options{
			Addr:           cfg.HTTPAddr,
			StreamInterval: cfg.StreamInterval,
			Logger:         logger,
		})
		return srv.Run(ctx)
	},
}
