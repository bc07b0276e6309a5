package readingdb

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/airspot/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "airspot.db")
	store, err := Open(schema.SQLiteBackend, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestStore_ImportAndLoad(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()
	ts := time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC)

	bogota := []schema.Reading{
		{Time: ts.Add(2 * time.Hour), PM25: 30, PM10: 75},
		{Time: ts, PM25: 20, PM10: 50},
		{Time: ts.Add(2 * time.Hour), PM25: 31, PM10: 76}, // duplicate timestamp
	}
	n, err := store.Import(ctx, schema.StationBogota, bogota)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := store.LoadReadings(ctx, schema.StationBogota)
	require.NoError(t, err)
	assert.Equal(t, []schema.Reading{
		{Time: ts, PM25: 20, PM10: 50},
		{Time: ts.Add(2 * time.Hour), PM25: 30, PM10: 75},
		{Time: ts.Add(2 * time.Hour), PM25: 31, PM10: 76},
	}, got)
}

func TestStore_ImportReplacesStation(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()
	ts := time.Date(2017, 1, 1, 12, 0, 0, 0, time.UTC)

	_, err := store.Import(ctx, schema.StationNYC, []schema.Reading{{Time: ts, PM25: 1, PM10: 99}})
	require.NoError(t, err)
	_, err = store.Import(ctx, schema.StationBogota, []schema.Reading{{Time: ts, PM25: 5, PM10: 9}})
	require.NoError(t, err)
	_, err = store.Import(ctx, schema.StationNYC, []schema.Reading{{Time: ts, PM25: 2}, {Time: ts.Add(time.Hour), PM25: 3}})
	require.NoError(t, err)

	nyc, err := store.LoadReadings(ctx, schema.StationNYC)
	require.NoError(t, err)
	assert.Equal(t, []schema.Reading{{Time: ts, PM25: 2}, {Time: ts.Add(time.Hour), PM25: 3}}, nyc)

	bogota, err := store.LoadReadings(ctx, schema.StationBogota)
	require.NoError(t, err)
	assert.Len(t, bogota, 1, "importing NYC leaves Bogota alone")
}

func TestStore_ImportLargeBatch(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()
	start := time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC)

	readings := make([]schema.Reading, insertBatchSize*2+7)
	for i := range readings {
		readings[i] = schema.Reading{Time: start.Add(time.Duration(i) * time.Hour), PM25: float64(i % 40)}
	}
	n, err := store.Import(ctx, schema.StationNYC, readings)
	require.NoError(t, err)
	assert.Equal(t, len(readings), n)

	got, err := store.LoadReadings(ctx, schema.StationNYC)
	require.NoError(t, err)
	assert.Equal(t, readings, got)
}

func TestStore_StatusAndClear(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()
	ts := time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC)

	status, err := store.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Zero(t, status.Version)
	require.Len(t, status.Stations, 2)
	assert.Zero(t, status.Stations[0].Rows)
	assert.True(t, status.Stations[0].First.IsZero())

	_, err = store.Import(ctx, schema.StationNYC, []schema.Reading{
		{Time: ts, PM25: 1},
		{Time: ts.Add(48 * time.Hour), PM25: 2},
	})
	require.NoError(t, err)

	status, err = store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, schema.StationNYC, status.Stations[0].Station)
	assert.Equal(t, 2, status.Stations[0].Rows)
	assert.Equal(t, ts, status.Stations[0].First)
	assert.Equal(t, ts.Add(48*time.Hour), status.Stations[0].Last)
	assert.Equal(t, schema.StationBogota, status.Stations[1].Station)
	assert.Zero(t, status.Stations[1].Rows)

	require.NoError(t, store.Clear(ctx))
	_, err = store.LoadReadings(ctx, schema.StationNYC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "airspot db import")
}

func TestStore_RejectsInvalidStation(t *testing.T) {
	store, _ := newSQLiteStore(t)
	_, err := store.Import(context.Background(), schema.Station(7), nil)
	assert.ErrorIs(t, err, schema.ErrUnknownStation)
	_, err = store.LoadReadings(context.Background(), schema.Station(7))
	assert.ErrorIs(t, err, schema.ErrUnknownStation)
}

func TestOpen_UnsupportedBackend(t *testing.T) {
	_, err := Open(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestMigrate_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")
	var out bytes.Buffer

	require.NoError(t, Migrate(schema.SQLiteBackend, path, -1, &out))
	assert.Contains(t, out.String(), "Successfully migrated from version 0 to version 2")

	out.Reset()
	require.NoError(t, Migrate(schema.SQLiteBackend, path, -1, &out))
	assert.Contains(t, out.String(), "No migration needed")

	store, err := Open(schema.SQLiteBackend, path)
	require.NoError(t, err)
	status, err := store.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(2), status.Version)
	assert.False(t, status.Dirty)
	require.NoError(t, store.Close())

	out.Reset()
	require.NoError(t, Migrate(schema.SQLiteBackend, path, 1, &out))
	assert.Contains(t, out.String(), "Successfully migrated from version 2 to version 1")

	out.Reset()
	require.NoError(t, Migrate(schema.SQLiteBackend, path, 0, &out))
	assert.Contains(t, out.String(), "Successfully rolled back from version 1 to version 0")
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`airspot_station_readings`", quoteTableName(readingsTable, schema.MySQLBackend))
	assert.Equal(t, `"airspot_station_readings"`, quoteTableName(readingsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"airspot_station_readings"`, quoteTableName(readingsTable, schema.SQLiteBackend))
}

func TestInsertQuery_Placeholders(t *testing.T) {
	ts := time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC)
	batch := []schema.Reading{{Time: ts, PM25: 1}, {Time: ts, PM25: 2}}

	pg := &Store{backend: schema.PostgreSQLBackend}
	query, args := pg.insertQuery(schema.StationNYC, batch)
	assert.Contains(t, query, "($1, $2, $3, $4), ($5, $6, $7, $8)")
	assert.Len(t, args, 8)
	assert.Equal(t, "nyc", args[0])
	assert.Equal(t, "2016-09-01 00:00:00", args[1])

	my := &Store{backend: schema.MySQLBackend}
	query, _ = my.insertQuery(schema.StationBogota, batch[:1])
	assert.Contains(t, query, "INSERT INTO `airspot_station_readings`")
	assert.Contains(t, query, "(?, ?, ?, ?)")
}
