package sqlite

import (
	"database/sql"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../../migrations"

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, MigrateUp(db, migrationsDir))
	return NewRunStore(db)
}

func sampleRows() []FeatureRow {
	return []FeatureRow{
		{OperationID: 101, Name: "moments_mean", Value: 3.5, Quality: 0, CalcSeconds: 0.002},
		{OperationID: 102, Name: "moments_std", Value: 0, Quality: 2, CalcSeconds: 0.002},
		{OperationID: 103, Name: "orphan", Value: 0, Quality: 1, CalcSeconds: math.NaN()},
	}
}

func TestRunStore(t *testing.T) {
	t.Parallel()

	t.Run("insert generates run ID and timestamp", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)

		runID, err := store.InsertRun(&Run{
			SeriesName:   "walk",
			SeriesLength: 128,
			Parallel:     true,
			Workers:      4,
		}, sampleRows())
		require.NoError(t, err)
		require.NotEmpty(t, runID)

		got, err := store.GetRun(runID)
		require.NoError(t, err)
		assert.Equal(t, "walk", got.SeriesName)
		assert.Equal(t, 128, got.SeriesLength)
		assert.True(t, got.Parallel)
		assert.NotZero(t, got.CreatedAt)
	})

	t.Run("features round trip including NaN calc time", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)

		runID, err := store.InsertRun(&Run{SeriesName: "s", SeriesLength: 10}, sampleRows())
		require.NoError(t, err)

		rows, err := store.FeaturesByRun(runID)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, "moments_mean", rows[0].Name)
		assert.Equal(t, 3.5, rows[0].Value)
		assert.Equal(t, 0.002, rows[0].CalcSeconds)
		assert.Equal(t, 2, rows[1].Quality)
		assert.True(t, math.IsNaN(rows[2].CalcSeconds), "NULL calc time reads back as NaN")
	})

	t.Run("list runs newest first", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)

		_, err := store.InsertRun(&Run{SeriesName: "a", SeriesLength: 1, CreatedAt: 100}, nil)
		require.NoError(t, err)
		_, err = store.InsertRun(&Run{SeriesName: "b", SeriesLength: 1, CreatedAt: 200}, nil)
		require.NoError(t, err)

		runs, err := store.ListRuns()
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "b", runs[0].SeriesName)
		assert.Equal(t, "a", runs[1].SeriesName)
	})

	t.Run("delete removes run and features", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)

		runID, err := store.InsertRun(&Run{SeriesName: "gone", SeriesLength: 5}, sampleRows())
		require.NoError(t, err)

		require.NoError(t, store.DeleteRun(runID))

		_, err = store.GetRun(runID)
		assert.Error(t, err)

		rows, err := store.FeaturesByRun(runID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("delete unknown run errors", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)
		assert.Error(t, store.DeleteRun("no-such-run"))
	})

	t.Run("get unknown run errors", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)
		_, err := store.GetRun("missing")
		assert.Error(t, err)
	})
}

func TestMigrateVersion(t *testing.T) {
	t.Parallel()

	db, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, MigrateUp(db, migrationsDir))

	version, dirty, err := MigrateVersion(db, migrationsDir)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.GreaterOrEqual(t, version, uint(1))
}

func TestRetryOnBusy(t *testing.T) {
	t.Parallel()

	t.Run("success on first try", func(t *testing.T) {
		t.Parallel()
		calls := 0
		err := retryOnBusy(func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("non-busy errors are not retried", func(t *testing.T) {
		t.Parallel()
		calls := 0
		wantErr := errors.New("constraint violation")
		err := retryOnBusy(func() error {
			calls++
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, calls)
	})

	t.Run("busy errors are retried until success", func(t *testing.T) {
		t.Parallel()
		calls := 0
		err := retryOnBusy(func() error {
			calls++
			if calls < 3 {
				return errors.New("database is locked (5) (SQLITE_BUSY)")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})
}

func TestIsSQLiteBusy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"locked", errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"busy", errors.New("SQLITE_BUSY"), true},
		{"other", sql.ErrNoRows, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isSQLiteBusy(tt.err))
		})
	}
}
