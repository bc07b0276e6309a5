// Package readingdb stores station readings in SQLite, MySQL or PostgreSQL.
package readingdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// readingsTable holds every imported reading of both stations.
const readingsTable = "airspot_station_readings"

// insertBatchSize bounds the rows sent per INSERT statement.
const insertBatchSize = 500

// Store implements contract.ReadingStore on database/sql.
type Store struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.ReadingStore = &Store{} // Compile-time check

// openDB opens and pings a connection for the backend.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... user=... dbname=...", err)
		}

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}
	return db, nil
}

// Open connects to the backend and makes sure the readings table exists.
func Open(backend schema.DatabaseBackend, connStr string) (*Store, error) {
	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	ddl, err := migrationsFS.ReadFile(fmt.Sprintf("migrations/%s/000001_create_station_readings.up.sql", backend))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to read table schema: %w", err)
	}
	if _, err := db.Exec(string(ddl)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", readingsTable, err)
	}

	return &Store{db: db, backend: backend}, nil
}

// Backend returns the configured backend.
func (s *Store) Backend() schema.DatabaseBackend { return s.backend }

// Import replaces every stored reading of the station in a single transaction.
func (s *Store) Import(ctx context.Context, station schema.Station, readings []schema.Reading) (int, error) {
	if !station.Valid() {
		return 0, &schema.UnknownStationError{Name: station.String()}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE station = %s", s.table(), s.placeholder(1))
	if _, err := tx.ExecContext(ctx, deleteQuery, station.Key()); err != nil {
		return 0, fmt.Errorf("failed to clear %s readings: %w", station, err)
	}

	for start := 0; start < len(readings); start += insertBatchSize {
		batch := readings[start:min(start+insertBatchSize, len(readings))]
		query, args := s.insertQuery(station, batch)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("failed to insert %s readings: %w", station, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return len(readings), nil
}

func (s *Store) insertQuery(station schema.Station, batch []schema.Reading) (string, []any) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (station, observed_at, pm25, pm10) VALUES ", s.table())

	args := make([]any, 0, len(batch)*4)
	for i, r := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 4
		fmt.Fprintf(&sb, "(%s, %s, %s, %s)", s.placeholder(n+1), s.placeholder(n+2), s.placeholder(n+3), s.placeholder(n+4))

		var pm10 sql.NullFloat64
		if station.HasPM10() {
			pm10 = sql.NullFloat64{Float64: r.PM10, Valid: true}
		}
		args = append(args, station.Key(), r.Time.UTC().Format(schema.TimestampLayout), r.PM25, pm10)
	}
	return sb.String(), args
}

// LoadReadings implements contract.ReadingSource. Readings come back in timestamp
// order, ties in import order.
func (s *Store) LoadReadings(ctx context.Context, station schema.Station) ([]schema.Reading, error) {
	if !station.Valid() {
		return nil, &schema.UnknownStationError{Name: station.String()}
	}

	query := fmt.Sprintf("SELECT observed_at, pm25, pm10 FROM %s WHERE station = %s ORDER BY observed_at, id",
		s.table(), s.placeholder(1))
	rows, err := s.db.QueryContext(ctx, query, station.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to query %s readings: %w", station, err)
	}
	defer func() { _ = rows.Close() }()

	var readings []schema.Reading
	for rows.Next() {
		var observed string
		var pm25 float64
		var pm10 sql.NullFloat64
		if err := rows.Scan(&observed, &pm25, &pm10); err != nil {
			return nil, fmt.Errorf("failed to scan %s reading: %w", station, err)
		}
		ts, err := time.ParseInLocation(schema.TimestampLayout, observed, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid stored timestamp %q: %w", observed, err)
		}
		readings = append(readings, schema.Reading{Time: ts, PM25: pm25, PM10: pm10.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s readings: %w", station, err)
	}
	if len(readings) == 0 {
		return nil, fmt.Errorf("no %s readings stored. Run 'airspot db import' first", station)
	}
	return readings, nil
}

// Status returns row counts and time ranges per station along with the schema version.
func (s *Store) Status(ctx context.Context) (schema.SourceStatus, error) {
	status := schema.SourceStatus{Backend: s.backend}
	if err := s.db.PingContext(ctx); err != nil {
		return status, nil
	}
	status.Connected = true

	status.Version, status.Dirty = s.schemaVersion(ctx)

	query := fmt.Sprintf("SELECT COUNT(*), MIN(observed_at), MAX(observed_at) FROM %s WHERE station = %s",
		s.table(), s.placeholder(1))
	for _, station := range schema.AllStations {
		var count int
		var first, last sql.NullString
		if err := s.db.QueryRowContext(ctx, query, station.Key()).Scan(&count, &first, &last); err != nil {
			return status, fmt.Errorf("failed to get %s status: %w", station, err)
		}
		st := schema.StationStatus{Station: station, Rows: count}
		if first.Valid {
			st.First, _ = time.ParseInLocation(schema.TimestampLayout, first.String, time.UTC)
		}
		if last.Valid {
			st.Last, _ = time.ParseInLocation(schema.TimestampLayout, last.String, time.UTC)
		}
		status.Stations = append(status.Stations, st)
	}
	return status, nil
}

// schemaVersion reads the golang-migrate bookkeeping table. A database that was never
// migrated reports version 0.
func (s *Store) schemaVersion(ctx context.Context) (uint, bool) {
	var version int64
	var dirty bool
	err := s.db.QueryRowContext(ctx, "SELECT version, dirty FROM schema_migrations LIMIT 1").Scan(&version, &dirty)
	if err != nil || version < 0 {
		// The table only exists once migrate has run, and is empty after a full rollback.
		return 0, false
	}
	return uint(version), dirty
}

// Clear removes every stored reading.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", s.table())); err != nil {
		return fmt.Errorf("failed to clear readings: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) table() string {
	return quoteTableName(readingsTable, s.backend)
}

func (s *Store) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}
