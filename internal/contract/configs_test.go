package contract

import (
	"log/slog"
	"testing"
	"time"

	"github.com/huangsam/airspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput mirrors the flag defaults registered by the CLI.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:    "text",
		Precision: DefaultPrecision,
		Color:     "yes",
		Stride:    1,
		Count:     1,
		Seed:      DefaultGenerateSeed,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError string
	}{
		{name: "valid minimal config", modify: func(*ConfigRawInput) {}},
		{name: "station and pollutant aliases", modify: func(in *ConfigRawInput) {
			in.StationStr = "bogota"
			in.Pollutant = "pm10"
		}},
		{name: "unknown station", modify: func(in *ConfigRawInput) { in.StationStr = "Lima" }, expectError: "unknown station"},
		{name: "unknown pollutant", modify: func(in *ConfigRawInput) { in.Pollutant = "ozone" }, expectError: "unavailable"},
		{name: "invalid precision (negative)", modify: func(in *ConfigRawInput) { in.Precision = -1 }, expectError: "precision"},
		{name: "invalid precision (too high)", modify: func(in *ConfigRawInput) { in.Precision = 5 }, expectError: "precision"},
		{name: "invalid output format", modify: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: "invalid output format"},
		{name: "parquet without file", modify: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: "requires --output-file"},
		{name: "parquet with file", modify: func(in *ConfigRawInput) {
			in.Output = "parquet"
			in.OutputFile = "out.parquet"
		}},
		{name: "invalid color", modify: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: "--color"},
		{name: "negative width", modify: func(in *ConfigRawInput) { in.Width = -3 }, expectError: "width"},
		{name: "invalid stride", modify: func(in *ConfigRawInput) { in.Stride = 0 }, expectError: "stride"},
		{name: "invalid count", modify: func(in *ConfigRawInput) { in.Count = 0 }, expectError: "count"},
		{name: "count too large", modify: func(in *ConfigRawInput) { in.Count = MaxRealtimeCount + 1 }, expectError: "count"},
		{name: "invalid source", modify: func(in *ConfigRawInput) { in.Source = "s3" }, expectError: "invalid source"},
		{name: "invalid db backend", modify: func(in *ConfigRawInput) { in.DBBackend = "oracle" }, expectError: "invalid db backend"},
		{name: "mysql without connection", modify: func(in *ConfigRawInput) { in.DBBackend = "mysql" }, expectError: "db-connect is required"},
		{name: "valid mysql", modify: func(in *ConfigRawInput) {
			in.Source = "database"
			in.DBBackend = "MySQL"
			in.DBConnect = "user:pass@tcp(localhost:3306)/airspot"
		}},
		{name: "invalid log level", modify: func(in *ConfigRawInput) { in.LogLevel = "trace" }, expectError: "log level"},
		{name: "invalid log format", modify: func(in *ConfigRawInput) { in.LogFormat = "xml" }, expectError: "log format"},
		{name: "invalid stream interval", modify: func(in *ConfigRawInput) { in.StreamInterval = "soon" }, expectError: "stream interval"},
		{name: "non-positive stream interval", modify: func(in *ConfigRawInput) { in.StreamInterval = "0s" }, expectError: "positive"},
		{name: "invalid openweather url", modify: func(in *ConfigRawInput) { in.OpenWeatherURL = "ftp://x" }, expectError: "openweather-url"},
		{name: "invalid target version", modify: func(in *ConfigRawInput) { in.TargetVersion = -2 }, expectError: "target-version"},
		{name: "invalid generate start", modify: func(in *ConfigRawInput) { in.Start = "09/01/2016" }, expectError: "invalid start date"},
		{name: "generate range reversed", modify: func(in *ConfigRawInput) {
			in.Start = "2017-04-01"
			in.End = "2016-09-01"
		}, expectError: "must be before"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.modify(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, schema.Station(0), cfg.Station)
	assert.Equal(t, schema.PM25, cfg.Pollutant)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, schema.FileSource, cfg.Source)
	assert.Equal(t, schema.SQLiteBackend, cfg.DBBackend)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, DefaultStreamInterval, cfg.StreamInterval)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, LogText, cfg.LogFormat)
	assert.Equal(t, DefaultOpenWeatherURL, cfg.OpenWeatherURL)
	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Equal(t, uint64(DefaultGenerateSeed), cfg.GenerateSeed)
	assert.Equal(t, time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC), cfg.GenerateStart)
	assert.Equal(t, time.Date(2017, 4, 1, 0, 0, 0, 0, time.UTC), cfg.GenerateEnd)
}

func TestProcessAndValidate_Overrides(t *testing.T) {
	input := validInput()
	input.StationStr = " NYC "
	input.Pollutant = "pm2.5"
	input.Stride = 6
	input.Strict = true
	input.StreamInterval = "250ms"
	input.OpenWeatherURL = "https://example.test/data/2.5/"
	input.OpenWeatherAPIKey = " secret "
	input.LogLevel = "DEBUG"
	input.LogFormat = "json"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.StationNYC, cfg.Station)
	assert.Equal(t, schema.PM25, cfg.Pollutant)
	assert.Equal(t, 6, cfg.Stride)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 250*time.Millisecond, cfg.StreamInterval)
	assert.Equal(t, "https://example.test/data/2.5", cfg.OpenWeatherURL)
	assert.Equal(t, "secret", cfg.OpenWeatherAPIKey)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, LogJSON, cfg.LogFormat)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite accepts empty", schema.SQLiteBackend, "", false},
		{"sqlite accepts path", schema.SQLiteBackend, "/tmp/airspot.db", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)/airspot", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/airspot", true},
		{"mysql missing database", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost user=u password=p dbname=airspot sslmode=disable", false},
		{"postgres missing host", schema.PostgreSQLBackend, "user=u dbname=airspot", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost user=u", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigWithStation(t *testing.T) {
	cfg := &Config{Station: schema.StationNYC, Precision: 3}
	clone := cfg.WithStation(schema.StationBogota)

	assert.Equal(t, schema.StationBogota, clone.Station)
	assert.Equal(t, 3, clone.Precision)
	assert.Equal(t, schema.StationNYC, cfg.Station, "original is untouched")
}
