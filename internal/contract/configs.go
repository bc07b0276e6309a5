package contract

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/huangsam/airspot/schema"
)

// Default values for configuration.
const (
	DefaultDataDir          = "data"
	DefaultPrecision        = 2
	MaxPrecision            = 4
	DefaultTimeseriesStride = 6
	DefaultSummaryStride    = 20
	DefaultHTTPAddr         = ":5000"
	DefaultStreamInterval   = 5 * time.Second
	DefaultWorldInterval    = 10 * time.Second
	DefaultOpenWeatherURL   = "http://api.openweathermap.org/data/2.5"
	DefaultGenerateSeed     = 42
	DefaultGenerateStart    = "2016-09-01"
	DefaultGenerateEnd      = "2017-04-01"
	MaxRealtimeCount        = 1000
)

// LogFormat selects the slog handler.
type LogFormat string

// All log formats supported.
const (
	LogText LogFormat = "text" // default
	LogJSON LogFormat = "json"
)

// Config holds the runtime configuration for every command.
// This struct is the "final, validated" config.
type Config struct {
	Station   schema.Station // zero when the command takes no station
	Pollutant schema.Pollutant

	DataDir   string
	Source    schema.DataSource
	DBBackend schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	Stride int
	Strict bool
	Count  int

	HTTPAddr       string
	StreamInterval time.Duration
	LogLevel       slog.Level
	LogFormat      LogFormat

	OpenWeatherAPIKey string // empty means demo mode
	OpenWeatherURL    string

	TargetVersion int

	GenerateSeed  uint64
	GenerateStart time.Time
	GenerateEnd   time.Time
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	StationStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	DataDir    string `mapstructure:"data-dir"`
	Source     string `mapstructure:"source"`
	DBBackend  string `mapstructure:"db-backend"`
	DBConnect  string `mapstructure:"db-connect"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Color      string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`
	LogLevel   string `mapstructure:"log-level"`
	LogFormat  string `mapstructure:"log-format"`

	// --- Fields from analysis command flags ---
	Pollutant string `mapstructure:"pollutant"`
	Stride    int    `mapstructure:"stride"`
	Strict    bool   `mapstructure:"strict"`
	Count     int    `mapstructure:"count"`

	// --- Fields from serveCmd.Flags() ---
	HTTPAddr       string `mapstructure:"http-addr"`
	StreamInterval string `mapstructure:"stream-interval"`

	// --- Fields from worldCmd.PersistentFlags() ---
	OpenWeatherAPIKey string `mapstructure:"openweather-api-key"`
	OpenWeatherURL    string `mapstructure:"openweather-url"`

	// --- Fields from dbMigrateCmd.Flags() ---
	TargetVersion int `mapstructure:"target-version"`

	// --- Fields from generateCmd.Flags() ---
	Seed  uint64 `mapstructure:"seed"`
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// WithStation returns a copy of the Config bound to another station.
func (c *Config) WithStation(s schema.Station) *Config {
	clone := c.Clone()
	clone.Station = s
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateSourceConfigs(cfg, input); err != nil {
		return err
	}
	if err := processAnalysisInputs(cfg, input); err != nil {
		return err
	}
	if err := processServiceInputs(cfg, input); err != nil {
		return err
	}
	if err := processGenerateRange(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the presentation and logging fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	if input.Width < 0 {
		return fmt.Errorf("width must not be negative (received %d)", input.Width)
	}

	level, err := ParseLogLevel(input.LogLevel)
	if err != nil {
		return err
	}
	cfg.LogLevel = level

	cfg.LogFormat = LogFormat(strings.ToLower(input.LogFormat))
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = LogText
	case LogText, LogJSON:
	default:
		return fmt.Errorf("invalid log format '%s'. must be text, json", input.LogFormat)
	}
	return nil
}

// validateSourceConfigs validates where readings come from and the database settings.
func validateSourceConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.DataDir = strings.TrimSpace(input.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}

	cfg.Source = schema.DataSource(strings.ToLower(input.Source))
	if cfg.Source == "" {
		cfg.Source = schema.FileSource
	}
	if _, ok := schema.ValidDataSources[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be file, database", input.Source)
	}

	cfg.DBBackend = schema.DatabaseBackend(strings.ToLower(input.DBBackend))
	if cfg.DBBackend == "" {
		cfg.DBBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.DBBackend]; !ok {
		return fmt.Errorf("invalid db backend '%s'. must be sqlite, mysql, postgresql", input.DBBackend)
	}
	cfg.DBConnect = input.DBConnect
	return ValidateDatabaseConnectionString(cfg.DBBackend, cfg.DBConnect)
}

// processAnalysisInputs resolves the station, pollutant and downsampling options.
func processAnalysisInputs(cfg *Config, input *ConfigRawInput) error {
	if s := strings.TrimSpace(input.StationStr); s != "" {
		station, err := schema.ParseStation(s)
		if err != nil {
			return err
		}
		cfg.Station = station
	}

	cfg.Pollutant = schema.PM25
	if p := strings.TrimSpace(input.Pollutant); p != "" {
		pollutant, err := schema.ParsePollutant(p)
		if err != nil {
			return err
		}
		cfg.Pollutant = pollutant
	}

	if input.Stride < 1 {
		return fmt.Errorf("stride must be at least 1 (received %d)", input.Stride)
	}
	cfg.Stride = input.Stride
	cfg.Strict = input.Strict

	if input.Count < 1 || input.Count > MaxRealtimeCount {
		return fmt.Errorf("count must be greater than 0 and cannot exceed %d (received %d)", MaxRealtimeCount, input.Count)
	}
	cfg.Count = input.Count
	return nil
}

// processServiceInputs handles the HTTP server and OpenWeatherMap settings.
func processServiceInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.HTTPAddr = strings.TrimSpace(input.HTTPAddr)
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultHTTPAddr
	}

	cfg.StreamInterval = DefaultStreamInterval
	if input.StreamInterval != "" {
		d, err := time.ParseDuration(input.StreamInterval)
		if err != nil {
			return fmt.Errorf("invalid stream interval '%s': %w", input.StreamInterval, err)
		}
		if d <= 0 {
			return fmt.Errorf("stream interval must be positive (received %s)", d)
		}
		cfg.StreamInterval = d
	}

	cfg.OpenWeatherAPIKey = strings.TrimSpace(input.OpenWeatherAPIKey)
	cfg.OpenWeatherURL = strings.TrimRight(strings.TrimSpace(input.OpenWeatherURL), "/")
	if cfg.OpenWeatherURL == "" {
		cfg.OpenWeatherURL = DefaultOpenWeatherURL
	}
	if !strings.HasPrefix(cfg.OpenWeatherURL, "http://") && !strings.HasPrefix(cfg.OpenWeatherURL, "https://") {
		return fmt.Errorf("openweather-url must start with http:// or https:// (received %q)", input.OpenWeatherURL)
	}

	if input.TargetVersion < -1 {
		return fmt.Errorf("target-version must be -1 (latest), 0 (rollback all) or a positive version (received %d)", input.TargetVersion)
	}
	cfg.TargetVersion = input.TargetVersion
	return nil
}

// processGenerateRange handles the sample generator's seed and date window.
func processGenerateRange(cfg *Config, input *ConfigRawInput) error {
	cfg.GenerateSeed = input.Seed

	start, end := input.Start, input.End
	if start == "" {
		start = DefaultGenerateStart
	}
	if end == "" {
		end = DefaultGenerateEnd
	}

	var err error
	if cfg.GenerateStart, err = time.Parse(schema.DateLayout, start); err != nil {
		return fmt.Errorf("invalid start date '%s'. Expected YYYY-MM-DD: %w", start, err)
	}
	if cfg.GenerateEnd, err = time.Parse(schema.DateLayout, end); err != nil {
		return fmt.Errorf("invalid end date '%s'. Expected YYYY-MM-DD: %w", end, err)
	}
	if !cfg.GenerateStart.Before(cfg.GenerateEnd) {
		return fmt.Errorf("start date (%s) must be before end date (%s)", start, end)
	}
	return nil
}
