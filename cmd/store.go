package cmd

import (
	"fmt"

	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/contract"
	"github.com/ImdataScientistSachin/Bias-Drift-Detector/internal/obslog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeCmd focused on observation store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the observation store",
	Long: `Manage the store that holds logged prediction events.

Supported backends: memory (default, per-process), SQLite, MySQL, PostgreSQL.

Subcommands:
  status  - Show backend, connectivity and observation count
  migrate - Run database schema migrations

Examples:
  # Check the default SQLite store
  biasdrift store status --store-backend sqlite

  # Upgrade the schema after updating biasdrift
  biasdrift store migrate --store-backend sqlite`,
}

// storeStatusCmd shows observation store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display observation store statistics and connection details",
	Long: `Show the configured backend, whether it is reachable, and how many
observations it holds.

Examples:
  # Check the store backing nightly analyses
  biasdrift store status --store-backend postgresql \
    --store-connect "host=db port=5432 user=app dbname=biasdrift"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := obslog.NewStore(cfg.StoreBackend, cfg.StoreConnect)
		if err != nil {
			contract.LogFatal("Failed to open observation store", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.Status()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		fmt.Printf("Backend:      %s\n", status.Backend)
		fmt.Printf("Connected:    %t\n", status.Connected)
		fmt.Printf("Observations: %d\n", status.Observations)
	},
}

// storeMigrateCmd runs database migrations for the observation store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the observation store.

By default, migrates to the latest version. Use --target-version for specific
versions. Migrations require a SQL backend; the memory backend has no schema.

Examples:
  # Migrate to latest version (default)
  biasdrift store migrate --store-backend sqlite

  # Rollback to the initial state
  biasdrift store migrate --store-backend sqlite --target-version 0`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := obslog.MigrateObservations(cfg.StoreBackend, cfg.StoreConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println("Migrations applied successfully.")
	},
}
