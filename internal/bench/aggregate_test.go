package bench

import (
	"math"
	"testing"
	"time"

	"github.com/p-arndt/sortbench/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func millis(vals ...int) []time.Duration {
	out := make([]time.Duration, len(vals))
	for i, v := range vals {
		out[i] = time.Duration(v) * time.Millisecond
	}
	return out
}

func TestAggregateDropsOutliers(t *testing.T) {
	var vals []int
	for i := 1; i <= 100; i++ {
		vals = append(vals, 100+i%10)
	}
	vals = append(vals, 10_000)

	r, err := Aggregate(millis(vals...), 30, stats.DefaultOutlierCoefficient)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 100, r.Count)
	assert.InDelta(t, 104.5e6, r.Mean, 1)
	assert.Greater(t, r.Stdev, 0.0)
}

func TestAggregateTooFewSamples(t *testing.T) {
	r, err := Aggregate(millis(1, 2, 3), 30, 3)
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = Aggregate(nil, 2, 3)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestAggregateMinimumAppliesAfterFiltering(t *testing.T) {
	// 10 tight samples and 2 spikes: 12 raw, 10 after filtering.
	samples := millis(10, 10, 11, 11, 10, 11, 10, 11, 10, 11, 900, 950)

	r, err := Aggregate(samples, 11, 3)
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = Aggregate(samples, 10, 3)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 10, r.Count)
}

func TestCompute(t *testing.T) {
	out := &Outcome{Cells: Cells{
		{{Samples: millis(1, 2, 3, 4, 5)}, {Samples: millis(1)}},
	}}
	table, err := Compute(out, 3, 3)
	require.NoError(t, err)
	require.Len(t, table, 1)
	require.NotNil(t, table[0][0])
	assert.Equal(t, 5, table[0][0].Count)
	assert.Nil(t, table[0][1])
}

func TestResultCI(t *testing.T) {
	r := &Result{Mean: 1e6, Stdev: 1e4, Count: 31}
	ci, err := r.CI()
	require.NoError(t, err)
	tv, err := stats.TLookup(30)
	require.NoError(t, err)
	assert.InDelta(t, tv*1e4/math.Sqrt(31), ci, 1e-9)

	_, err = (&Result{Count: 1}).CI()
	assert.ErrorIs(t, err, stats.ErrInvalidDegreesOfFreedom)
}
