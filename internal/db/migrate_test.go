package db_test

import (
	"path/filepath"
	"testing"

	"github.com/dechbar/kpause/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	database, _ := openTestDB(t)
	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))
}

func TestMigrate_AttemptsCascadeOnDelete(t *testing.T) {
	database, _ := openTestDB(t)

	_, err := database.Exec(insertMeasurement, "m1")
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO measurement_attempts (measurement_id, ordinal, seconds) VALUES ('m1', 1, 30)`)
	require.NoError(t, err)

	_, err = database.Exec(`DELETE FROM measurements WHERE id = 'm1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM measurement_attempts`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestMigrate_RejectsUnknownTimeOfDay(t *testing.T) {
	database, _ := openTestDB(t)
	_, err := database.Exec(`INSERT INTO measurements
		(id, measured_at, attempt_count, score, time_of_day, valid, note, created_at)
		VALUES ('x', '2025-06-15T06:30:00Z', 1, 30, 'noon', 0, '', '2025-06-15T06:31:00Z')`)
	assert.Error(t, err)
}

func TestOpenDB_CreatesFileAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kpause.db")

	first, err := db.OpenDB(path)
	require.NoError(t, err)
	_, err = first.Exec(insertMeasurement, "persisted")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := db.OpenDB(path)
	require.NoError(t, err)
	defer second.Close()
	assert.True(t, exists(t, second, "persisted"))
}
