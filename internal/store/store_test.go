package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/p-arndt/sortbench/internal/bench"
	"github.com/p-arndt/sortbench/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testReport(id string) *report.Report {
	return &report.Report{
		RunID:       id,
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Hardware:    report.Hardware{Hostname: "bench-host", CPUModel: "Test CPU", GoVersion: "go1.25"},
		Settings: report.Settings{
			Trials:        200,
			RuntimeLimit:  10 * time.Second,
			Alpha:         0.001,
			DiffThreshold: 0.05,
			Seed:          1<<63 + 5,
		},
		Sizes: []int{10, 100},
		Groups: []report.Group{
			{Name: "Quick sorts", Rows: []report.Row{
				{Algorithm: "quicksort_end", Class: "O(n log n)", Entries: []*report.Entry{
					{Result: bench.Result{Mean: 1500, Stdev: 20, Count: 190, Fastest: true}, CI: 3.4},
					nil,
				}},
				{Algorithm: "quicksort_hybrid", Class: "O(n log n)", Entries: []*report.Entry{
					{Result: bench.Result{Mean: 1510, Stdev: 25, Count: 188, StatTied: true, PracticallyTied: true}, CI: 4.1},
					{Result: bench.Result{Mean: 9000, Stdev: 90, Count: 200, Fastest: true}, CI: 14.8},
				}},
			}},
		},
		Counters: report.Counters{Generated: 800, Executed: 778, Discarded: 22, Late: 2, ExhaustedCells: 1, Workers: 4},
		Runtime:  90 * time.Second,
	}
}

func TestSaveAndGetRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	rep := testReport("run-1")

	require.NoError(t, st.SaveReport(ctx, rep))

	got, err := st.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.ID)
	assert.True(t, rep.GeneratedAt.Equal(got.GeneratedAt))
	assert.Equal(t, "bench-host", got.Hostname)
	assert.Equal(t, "Test CPU", got.CPUModel)
	assert.Equal(t, 200, got.Trials)
	assert.Equal(t, int64(10_000), got.RuntimeLimitMs)
	assert.Equal(t, uint64(1<<63+5), got.Seed)
	assert.Equal(t, 0.001, got.Alpha)
	assert.Equal(t, 778, got.Executed)
	assert.Equal(t, 2, got.Late)
	assert.Equal(t, 4, got.Workers)
	assert.Equal(t, int64(90_000), got.RuntimeMs)
}

func TestGetRunNotFound(t *testing.T) {
	st := newTestStore(t)

	got, err := st.GetRun(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, got)
}

func TestListResults(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.SaveReport(ctx, testReport("run-1")))

	results, err := st.ListResults(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, results, 3)

	first := results[0]
	assert.Equal(t, "Quick sorts", first.Group)
	assert.Equal(t, "quicksort_end", first.Algorithm)
	assert.Equal(t, 10, first.Size)
	assert.Equal(t, 1500.0, first.MeanNs)
	assert.Equal(t, 3.4, first.CINs)
	assert.True(t, first.Fastest)
	assert.False(t, first.StatTied)

	assert.Equal(t, "quicksort_hybrid", results[1].Algorithm)
	assert.True(t, results[1].StatTied)
	assert.True(t, results[1].PracticallyTied)
	assert.Equal(t, 100, results[2].Size)
}

func TestListResultsEmpty(t *testing.T) {
	st := newTestStore(t)

	results, err := st.ListResults(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSaveReportDuplicateRunIsRejected(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.SaveReport(ctx, testReport("run-1")))

	err := st.SaveReport(ctx, testReport("run-1"))
	assert.Error(t, err)

	// the failed transaction must not leave extra rows behind
	results, err := st.ListResults(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestStoreOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	st, err := New(path)
	require.NoError(t, err)
	require.NoError(t, st.SaveReport(context.Background(), testReport("run-disk")))
	require.NoError(t, st.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.GetRun(context.Background(), "run-disk")
	require.NoError(t, err)
	assert.Equal(t, "run-disk", got.ID)
}

func TestRetryOnBusy(t *testing.T) {
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

	calls = 0
	err = retryOnBusy(func() error {
		calls++
		return errors.New("no such table")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
