package cmd

import (
	"fmt"

	"github.com/parityscope/parityscope/internal/contract"
	"github.com/parityscope/parityscope/internal/history"
	"github.com/parityscope/parityscope/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.HistoryBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.HistoryBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := history.InitHistory(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryConnect = connStr
	cfg.OutputFile = outputFile
	cfg.RunLimit = viper.GetInt("limit")
	if cfg.RunLimit <= 0 {
		cfg.RunLimit = contract.DefaultRunLimit
	}

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get history-related config values
	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.HistoryBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.HistoryBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on run-history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by scoring commands. This avoids payload validation
// and complex config processing for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded scoring runs and exports",
	Long: `Manage historical scoring-run data used for trend tracking and reporting.

When enabled, Parityscope records every scoring run, storing:
- Run metadata (timestamp, basis, duration, payload)
- The equity total and 0-100 diversity score
- The full per-subgroup breakdown (predicted, burden, PDR, points)

This enables longitudinal analysis of trial designs and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run tracking statistics
  list    - List recent scoring runs
  export  - Export data to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  parityscope history status

  # Export for analysis in pandas/DuckDB
  parityscope history export --output-file run-data.parquet`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about recorded scoring runs.

Displays:
- Backend type and connection status
- Total number of scoring runs stored
- Last and oldest run timestamps
- Database table sizes

Examples:
  # Check run tracking status
  parityscope history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := history.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("History store is not initialized", nil)
		}
		status, err := store.Status()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(status)
	},
}

// historyListCmd lists recent scoring runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent scoring runs, newest first",
	Long: `List recorded scoring runs with their totals.

Shows run ID, timestamp, burden basis, the 21-point equity total, and the
0-100 diversity score for the most recent runs. Use --limit to control
how many runs are displayed.

Examples:
  # Show the ten most recent runs (default)
  parityscope history list

  # Show the last fifty runs
  parityscope history list --limit 50`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := history.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("History store is not initialized", nil)
		}
		runs, err := store.ListRuns(cfg.RunLimit)
		if err != nil {
			contract.LogFatal("Failed to list scoring runs", err)
		}
		if len(runs) == 0 {
			fmt.Println("No scoring runs recorded yet.")
			return
		}
		for _, run := range runs {
			fmt.Printf("#%d  %s  basis=%s  equity=%.1f/%d  diversity=%.1f/100\n",
				run.RunID,
				run.RunTime.Format("2006-01-02 15:04:05"),
				run.Basis,
				run.EquityTotal,
				schema.TotalPoints,
				run.DiversityScore,
			)
		}
	},
}

// historyClearCmd clears the recorded runs.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded scoring runs",
	Long: `Delete all stored scoring runs and subgroup score history.

This removes:
- All run metadata and payloads
- Historical equity totals and diversity scores
- Per-subgroup breakdown rows

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  parityscope history export --output-file backup.parquet
  parityscope history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, contract.GetHistoryDBFilePath(), cfg.HistoryConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyExportCmd exports run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all recorded scoring runs to Parquet format for use with analytics tools.

Exports two datasets:
- Scoring runs - metadata and totals for each run
- Run subgroups - the per-subgroup breakdown rows

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  parityscope history export --output-file run-data.parquet

  # Use with DuckDB for analysis
  parityscope history export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.scoring_runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run-history store.

Migrations allow:
- Upgrading to new schema versions when Parityscope is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  parityscope history migrate

  # Migrate to specific version
  parityscope history migrate --target-version 1

  # Rollback to initial state
  parityscope history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(cfg.HistoryBackend, cfg.HistoryConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
