package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/airspot/core"
	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/internal/loader"
	"github.com/huangsam/airspot/internal/readingdb"
	"github.com/huangsam/airspot/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// logger is rebuilt from the validated config in sharedSetup.
var logger = slog.Default()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:   "airspot",
	Short: "Analyze hourly PM2.5/PM10 readings from NYC and Bogota.",
	Long: `Airspot loads hourly particulate readings from two monitoring stations
(NYC Queens College and Bogota San Cristobal) and answers statistics, daily and
seasonal aggregates, WHO compliance and cross-station comparison queries.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in the .env file, the config file and ENV variables if set.
func initConfig() {
	// A missing .env file is fine
	_ = godotenv.Load()

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".airspot") // Name of config file (without extension)
		viper.SetConfigType("yaml")     // We'll use YAML format
		viper.AddConfigPath(".")        // Look in the current directory
		viper.AddConfigPath("$HOME")    // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("AIRSPOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match
	_ = viper.BindEnv("openweather-api-key", "AIRSPOT_OPENWEATHER_API_KEY", "OPENWEATHER_API_KEY")

	// Set defaults in Viper
	viper.SetDefault("data-dir", contract.DefaultDataDir)
	viper.SetDefault("source", schema.FileSource)
	viper.SetDefault("db-backend", schema.SQLiteBackend)
	viper.SetDefault("db-connect", "")
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", "warn")
	viper.SetDefault("log-format", contract.LogText)
	viper.SetDefault("pollutant", schema.PM25)
	viper.SetDefault("stride", contract.DefaultTimeseriesStride)
	viper.SetDefault("count", 1)
	viper.SetDefault("http-addr", contract.DefaultHTTPAddr)
	viper.SetDefault("stream-interval", contract.DefaultStreamInterval.String())
	viper.SetDefault("openweather-url", contract.DefaultOpenWeatherURL)
	viper.SetDefault("target-version", -1)
	viper.SetDefault("seed", contract.DefaultGenerateSeed)
	viper.SetDefault("start", contract.DefaultGenerateStart)
	viper.SetDefault("end", contract.DefaultGenerateEnd)
}

// sharedSetup unmarshals config and runs validation. When stationArg is set, the
// first positional argument names the station.
func sharedSetup(_ context.Context, cmd *cobra.Command, args []string, stationArg bool) error {
	// 1. Bind the running command's own flags. Several commands share flag names
	// such as --pollutant, so binding them once in init would let the last one win.
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding %s flags: %w", cmd.Name(), err)
	}

	// 2. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 3. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 4. Handle positional arguments (which Viper doesn't do).
	input.StationStr = ""
	if stationArg && len(args) > 0 {
		input.StationStr = args[0]
	}

	// 5. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	color.NoColor = !cfg.UseColors
	logger = contract.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return nil
}

// sharedSetupWrapper wraps sharedSetup for commands without a station argument.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args, false)
}

// stationSetupWrapper wraps sharedSetup for commands whose first argument is a station.
func stationSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args, true)
}

// openStore connects to the configured reading database.
func openStore() (*readingdb.Store, error) {
	return readingdb.Open(cfg.DBBackend, cfg.DBConnect)
}

// loadDataset builds the dataset from the configured source.
func loadDataset(ctx context.Context) (*core.Dataset, error) {
	switch cfg.Source {
	case schema.DatabaseSource:
		store, err := openStore()
		if err != nil {
			return nil, err
		}
		defer func() { _ = store.Close() }()
		logger.Debug("loading readings from database", "backend", cfg.DBBackend)
		return contract.LoadDataset(ctx, store)
	default:
		logger.Debug("loading readings from files", "dir", cfg.DataDir)
		return contract.LoadDataset(ctx, loader.NewFileSource(cfg.DataDir, logger))
	}
}

// mustLoadStation loads the dataset and returns the series of the configured station.
func mustLoadStation() *core.Series {
	ds, err := loadDataset(rootCtx)
	if err != nil {
		contract.LogFatal("Failed to load readings", err)
	}
	series, err := ds.Get(cfg.Station)
	if err != nil {
		contract.LogFatal("Failed to select station", err)
	}
	return series
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
