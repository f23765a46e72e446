package history

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/parityscope/parityscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateHistory_NoneBackend(t *testing.T) {
	err := MigrateHistory(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateHistory_UnsupportedBackend(t *testing.T) {
	err := MigrateHistory("mongodb", "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestMigrateHistory_SQLite(t *testing.T) {
	// Create a temporary database file for testing
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_migration.db")

	// Run migration to latest version
	err := MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	// Verify migration was successful by checking the database file exists
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	// Run migration again (should be a no-op)
	err = MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	assert.NoError(t, err)

	// Migrate to a specific version
	err = MigrateHistory(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)

	// Rollback to version 0
	err = MigrateHistory(schema.SQLiteBackend, dbPath, 0)
	assert.NoError(t, err)

	// Migrate back up to the latest version
	err = MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	assert.NoError(t, err)

	// The migrated schema must match what the store itself expects
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	runID, err := store.BeginRun(time.Now(), schema.PrevalenceBasis, "{}")
	require.NoError(t, err)
	assert.Positive(t, runID)
}

func TestMigrationsDirFor(t *testing.T) {
	assert.Equal(t, "migrations/sqlite", migrationsDirFor(schema.SQLiteBackend))
	assert.Equal(t, "migrations/mysql", migrationsDirFor(schema.MySQLBackend))
	assert.Equal(t, "migrations/postgres", migrationsDirFor(schema.PostgreSQLBackend))
}

// TestMigrationSetsPerDialect verifies each backend ships its own
// migration set with aligned versions and dialect-correct syntax.
func TestMigrationSetsPerDialect(t *testing.T) {
	listScripts := func(dir string) []string {
		entries, err := fs.ReadDir(migrationsFS, dir)
		require.NoError(t, err)
		var names []string
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		sort.Strings(names)
		return names
	}

	sqliteScripts := listScripts("migrations/sqlite")
	require.NotEmpty(t, sqliteScripts)

	// Same filenames, so versions and rollback points line up everywhere.
	assert.Equal(t, sqliteScripts, listScripts("migrations/mysql"))
	assert.Equal(t, sqliteScripts, listScripts("migrations/postgres"))

	for _, dir := range []string{"migrations/sqlite", "migrations/mysql", "migrations/postgres"} {
		for _, name := range sqliteScripts {
			data, err := fs.ReadFile(migrationsFS, dir+"/"+name)
			require.NoError(t, err)
			script := string(data)

			// One statement per script, since the pgx and mysql drivers
			// reject multi-statement execs in their default modes.
			assert.Equal(t, 1, strings.Count(script, ";"), "%s/%s", dir, name)

			if dir != "migrations/sqlite" {
				// AUTOINCREMENT is a SQLite-only spelling.
				assert.NotContains(t, script, "AUTOINCREMENT", "%s/%s", dir, name)
			}
		}
	}

	// Server dialects use their own auto-increment and time types.
	mysqlRuns, err := fs.ReadFile(migrationsFS, "migrations/mysql/000001_create_scoring_runs.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(mysqlRuns), "AUTO_INCREMENT")
	assert.Contains(t, string(mysqlRuns), "DATETIME(6)")

	pgRuns, err := fs.ReadFile(migrationsFS, "migrations/postgres/000001_create_scoring_runs.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(pgRuns), "BIGSERIAL")
	assert.Contains(t, string(pgRuns), "TIMESTAMPTZ")

	// MySQL has no CREATE INDEX IF NOT EXISTS and requires ON <table>
	// for DROP INDEX.
	mysqlIdxUp, err := fs.ReadFile(migrationsFS, "migrations/mysql/000003_index_scoring_runs_run_time.up.sql")
	require.NoError(t, err)
	assert.NotContains(t, string(mysqlIdxUp), "IF NOT EXISTS")

	mysqlIdxDown, err := fs.ReadFile(migrationsFS, "migrations/mysql/000003_index_scoring_runs_run_time.down.sql")
	require.NoError(t, err)
	assert.Contains(t, string(mysqlIdxDown), "ON parityscope_scoring_runs")
}

func TestMigrateHistory_SQLiteInMemory(t *testing.T) {
	// Test with in-memory database
	err := MigrateHistory(schema.SQLiteBackend, ":memory:", -1)
	require.NoError(t, err)
}
