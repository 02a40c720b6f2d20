package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dechbar/kpause/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertMeasurement = `INSERT INTO measurements
	(id, measured_at, attempt_count, score, time_of_day, valid, note, created_at)
	VALUES (?, '2025-06-15T06:30:00Z', 1, 30, 'morning', 1, '', '2025-06-15T06:31:00Z')`

func openTestDB(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func exists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM measurements WHERE id = ?`, id).Scan(&n))
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openTestDB(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertMeasurement, "m1")
		return err
	})
	require.NoError(t, err)
	assert.True(t, exists(t, database, "m1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openTestDB(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertMeasurement, "m2"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, exists(t, database, "m2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openTestDB(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertMeasurement, "m3")
			panic("boom")
		})
	})
	assert.False(t, exists(t, database, "m3"), "row should not exist after panic rollback")
}
