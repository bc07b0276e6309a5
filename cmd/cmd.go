// Package cmd defines the command-line interface for airspot.
package cmd

import (
	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add the analysis subcommands to the root command
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(timeseriesCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(hourlyCmd)
	rootCmd.AddCommand(monthlyCmd)
	rootCmd.AddCommand(complianceCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(realtimeCmd)

	// Add the service, data and info subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(worldCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the db subcommands to the parent db command
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbImportCmd)
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbClearCmd)

	// Add the world subcommands to the parent world command
	worldCmd.AddCommand(worldSearchCmd)
	worldCmd.AddCommand(worldForecastCmd)
	worldCmd.AddCommand(worldCoordsCmd)
	worldCmd.AddCommand(worldPopularCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("data-dir", contract.DefaultDataDir, "Directory holding the station data files")
	rootCmd.PersistentFlags().String("source", string(schema.FileSource), "Reading source: file or database")
	rootCmd.PersistentFlags().String("db-backend", string(schema.SQLiteBackend), "Database backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("log-format", string(contract.LogText), "Log format: text or json")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Command-local flags are bound to Viper in sharedSetup
	for _, c := range []*cobra.Command{timeseriesCmd, dailyCmd, hourlyCmd, monthlyCmd, compareCmd} {
		c.Flags().StringP("pollutant", "p", string(schema.PM25), "Pollutant: PM2.5 or PM10")
	}
	timeseriesCmd.Flags().Int("stride", contract.DefaultTimeseriesStride, "Keep every Nth reading")
	compareCmd.Flags().Int("stride", contract.DefaultTimeseriesStride, "Keep every Nth joined record")
	complianceCmd.Flags().Bool("strict", false, "Exit with status 1 when an annual WHO guideline is exceeded")
	realtimeCmd.Flags().IntP("count", "n", 1, "Number of simulated readings to draw")

	serveCmd.Flags().String("http-addr", contract.DefaultHTTPAddr, "Address the HTTP server listens on")
	serveCmd.Flags().String("stream-interval", contract.DefaultStreamInterval.String(), "Period of the realtime event stream")
	for _, c := range []*cobra.Command{serveCmd, worldCmd} {
		c.PersistentFlags().String("openweather-api-key", "", "OpenWeatherMap API key (empty = demo mode)")
		c.PersistentFlags().String("openweather-url", contract.DefaultOpenWeatherURL, "OpenWeatherMap API base URL")
	}

	dbMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")

	generateCmd.Flags().Uint64("seed", contract.DefaultGenerateSeed, "Random seed")
	generateCmd.Flags().String("start", contract.DefaultGenerateStart, "First day of generated readings (YYYY-MM-DD)")
	generateCmd.Flags().String("end", contract.DefaultGenerateEnd, "Last day of generated readings (YYYY-MM-DD)")
}
