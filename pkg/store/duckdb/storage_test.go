package duckdb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesPeriodRecords(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	db, err := NewDB(Settings{
		DbPath: filepath.Join(tmpDir, "atlas.db"),
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO period_records (date, location, property_type, rent_received) VALUES (?, ?, ?, ?)`,
		"2024-01-01", "Bondi", "Apartment", 3000.0,
	)
	require.NoError(t, err)

	var (
		count int
		other float64
	)
	err = db.QueryRow("SELECT COUNT(*), SUM(other_misc_costs) FROM period_records WHERE location = ?", "Bondi").Scan(&count, &other)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 0.0, other)
}

func TestInTransaction(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	insert := func(ctx context.Context) error {
		tx := GetTransaction(ctx)
		require.NotNil(t, tx)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO period_records (date, location, property_type) VALUES ('2024-01-01', 'Bondi', 'Apartment')`)
		return err
	}

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := InTransaction(ctx, db, func(ctx context.Context) error {
			require.NoError(t, insert(ctx))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM period_records`).Scan(&n))
		assert.Equal(t, 0, n)
	})

	t.Run("commit", func(t *testing.T) {
		require.NoError(t, InTransaction(ctx, db, insert))

		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM period_records`).Scan(&n))
		assert.Equal(t, 1, n)
	})

	assert.Nil(t, GetTransaction(ctx))
}
