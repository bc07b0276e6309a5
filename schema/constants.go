package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the SQL backend used as a reading source.
	DatabaseBackend string

	// DataSource represents where station readings are loaded from.
	DataSource string

	// Pollutant represents a measured particulate fraction.
	Pollutant string

	// Trend represents the short-term direction of a simulated reading.
	Trend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// All data sources supported.
const (
	FileSource     DataSource = "file" // default
	DatabaseSource DataSource = "database"
)

// All pollutants supported.
const (
	PM25 Pollutant = "PM2.5"
	PM10 Pollutant = "PM10"
)

// All trends reported by the realtime simulator.
const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// WHO Air Quality Guidelines (2021), in μg/m³.
const (
	WHOPM25Annual = 5.0
	WHOPM25Daily  = 15.0
	WHOPM10Annual = 15.0
	WHOPM10Daily  = 45.0
)

// AllPollutants lists the pollutants in display order.
var AllPollutants = []Pollutant{PM25, PM10}

// AllTrends lists the trends the simulator picks from.
var AllTrends = []Trend{TrendRising, TrendFalling, TrendStable}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// ValidDataSources lists all valid data sources.
var ValidDataSources = map[DataSource]struct{}{
	FileSource:     {},
	DatabaseSource: {},
}

// MonthNames are the bucket keys of the monthly pattern, in calendar order.
var MonthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Layouts used when rendering bucket keys and timestamps.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)
