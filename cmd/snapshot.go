package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/seralva/gapscope/internal/contract"
	"github.com/seralva/gapscope/internal/snapcache"
	"github.com/seralva/gapscope/schema"
)

// snapshotSetup loads minimal configuration needed for snapshot operations.
// This is used by commands that need snapshot access without full shared setup.
func snapshotSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get snapshot-related config values
	backend := schema.DatabaseBackend(viper.GetString("snapshot-backend"))
	connStr := viper.GetString("snapshot-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize snapshot storage with the loaded config
	if err := snapcache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize snapshot storage: %w", err)
	}

	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr

	return nil
}

// snapshotSetupWrapper wraps snapshotSetup to provide PreRunE for snapshot commands.
func snapshotSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotSetup()
}

// snapshotCmd focused on snapshot management.
//
// Note: Snapshot subcommands use minimal initialization (snapshotSetup) instead
// of the full sharedSetup used by analysis commands. This avoids bundle loading
// and complex config processing for simple snapshot operations.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage input bundle snapshots (enables offline re-analysis)",
	Long: `Manage the bundle snapshots that let analyses re-run without re-fetching data.

Gapscope stores every input bundle it analyzes so repeated runs over the
same niche can work from a frozen copy instead of hitting the collector
again. Frozen bundles also keep reruns byte-identical.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show snapshot statistics and connection info
  clear   - Remove all stored snapshots
  migrate - Run schema migrations for the snapshot table

Examples:
  # Check snapshot status
  gapscope snapshot status

  # Clear snapshots after a collector format change
  gapscope snapshot clear`,
}

// snapshotClearCmd clears stored snapshots.
var snapshotClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored bundle snapshots",
	Long: `Delete all stored bundle snapshots from the configured backend.

Use this when:
- The collector output format changed
- Snapshots may be stale or corrupted
- Testing analysis behavior without snapshots

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the snapshot table

Examples:
  # Clear SQLite snapshots (default)
  gapscope snapshot clear

  # Clear MySQL snapshots (set connection string via env variable)
  GAPSCOPE_SNAPSHOT_BACKEND=mysql GAPSCOPE_SNAPSHOT_DB_CONNECT="..." gapscope snapshot clear`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := snapcache.ClearSnapshots(cfg.SnapshotBackend, snapcache.GetDBFilePath(), cfg.SnapshotDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshots", err)
		}
		fmt.Println("Snapshots cleared successfully.")
	},
}

// snapshotStatusCmd shows snapshot status.
var snapshotStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot statistics and connection details",
	Long: `Show detailed information about stored bundle snapshots.

Displays:
- Backend type and connection status
- Total number of stored snapshots
- Last and oldest snapshot timestamps
- Snapshot database size

Examples:
  # Check snapshot status
  gapscope snapshot status`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := snapcache.Manager.GetSnapshotStore()
		if store == nil {
			contract.LogFatal("Snapshot storage is disabled", fmt.Errorf("backend is none"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
		snapcache.PrintSnapshotStatus(status)
	},
}

// snapshotMigrateCmd runs schema migrations for the snapshot table.
var snapshotMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations for the snapshot table",
	Long: `Apply or roll back schema migrations for the bundle snapshot table.

By default migrates to the latest version. Use --target-version to pin a
specific schema version, or 0 to roll everything back.

Examples:
  # Migrate to latest
  gapscope snapshot migrate

  # Roll back to the initial state
  gapscope snapshot migrate --target-version 0`,
	PreRunE: snapshotSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := snapcache.MigrateSnapshots(cfg.SnapshotBackend, cfg.SnapshotDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run snapshot migrations", err)
		}
	},
}
