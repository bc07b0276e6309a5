package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/internal/loader"
	"github.com/huangsam/airspot/internal/outwriter"
	"github.com/huangsam/airspot/internal/readingdb"
	"github.com/huangsam/airspot/schema"
	"github.com/spf13/cobra"
)

// dbCmd focused on the database reading source.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database reading source",
	Long: `Manage the SQL store that can replace the station files as the reading source.

Readings are imported from the data directory and read back with --source database.

Supported backends: SQLite (default, ~/.airspot.db), MySQL, PostgreSQL

Subcommands:
  migrate - Run database schema migrations
  import  - Load the station files into the database
  status  - Show per-station row counts and time ranges
  clear   - Remove every stored reading

Examples:
  # Import the bundled files into SQLite and analyze from there
  airspot db import --data-dir ./data
  airspot stats nyc --source database

  # Use PostgreSQL
  airspot db migrate --db-backend postgresql --db-connect "host=localhost user=airspot dbname=airspot"`,
}

// dbMigrateCmd runs the embedded migrations.
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations",
	Long: `Apply the embedded schema migrations to the configured backend.

--target-version -1 migrates to the latest version, 0 rolls every migration back
and any positive number migrates to that version.

Examples:
  # Migrate SQLite to the latest version
  airspot db migrate

  # Roll MySQL back to an empty schema
  airspot db migrate --db-backend mysql --db-connect "user:pass@tcp(localhost:3306)/airspot" --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := readingdb.Migrate(cfg.DBBackend, cfg.DBConnect, cfg.TargetVersion, os.Stdout); err != nil {
			contract.LogFatal("Failed to migrate database", err)
		}
	},
}

// dbImportCmd copies the station files into the database.
var dbImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the station files into the database",
	Long: `Parse both station files from the data directory and store them in the database.
Each station's previous readings are replaced in a single transaction.

Examples:
  airspot db import --data-dir ./data
  airspot db import --db-backend mysql --db-connect "user:pass@tcp(localhost:3306)/airspot"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openStore()
		if err != nil {
			contract.LogFatal("Failed to open database", err)
		}
		defer func() { _ = store.Close() }()

		src := loader.NewFileSource(cfg.DataDir, logger)
		for _, station := range schema.AllStations {
			readings, err := src.LoadReadings(rootCtx, station)
			if err != nil {
				contract.LogFatal(fmt.Sprintf("Failed to read %s", src.Path(station)), err)
			}
			n, err := store.Import(rootCtx, station, readings)
			if err != nil {
				contract.LogFatal(fmt.Sprintf("Failed to import %s", station), err)
			}
			fmt.Printf("Imported %d readings for %s into %s.\n", n, station, store.Backend())
		}
	},
}

// dbStatusCmd shows what the database holds.
var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-station row counts and time ranges",
	Long: `Show the backend, the schema version and, per station, the number of stored
readings with the first and last timestamp.

Examples:
  airspot db status
  airspot db status --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openStore()
		if err != nil {
			contract.LogFatal("Failed to open database", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.Status(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get database status", err)
		}
		if err := outwriter.NewOutWriter(cfg).WriteStatus(status); err != nil {
			contract.LogFatal("Failed to write database status", err)
		}
	},
}

// dbClearCmd removes every stored reading.
var dbClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored reading",
	Long: `Delete all readings from the database. The station files are untouched.

WARNING: This action cannot be undone.

Examples:
  airspot db clear`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := openStore()
		if err != nil {
			contract.LogFatal("Failed to open database", err)
		}
		defer func() { _ = store.Close() }()

		if err := store.Clear(rootCtx); err != nil {
			contract.LogFatal("Failed to clear database", err)
		}
		fmt.Println("Database readings cleared successfully.")
	},
}
