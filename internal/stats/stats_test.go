package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 3.0, Mean([]int{6, 2, 3, 1}))
	assert.True(t, math.IsNaN(Mean([]float64{})))
}

func TestStdev(t *testing.T) {
	cases := []struct {
		in   []uint64
		want float64
	}{
		{[]uint64{6, 2, 3, 1}, 2.16},
		{[]uint64{2, 2, 5, 7}, 2.45},
		{[]uint64{2, 4, 4, 4, 5, 5, 7, 9}, 2.14},
	}
	for _, tc := range cases {
		got, err := Stdev(tc.in, Mean(tc.in))
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 0.005, "stdev(%v)", tc.in)
	}
}

func TestStdevTooFewSamples(t *testing.T) {
	_, err := Stdev([]int{4}, 4)
	assert.ErrorIs(t, err, ErrTooFewSamples)
}

func TestQuartilesOdd(t *testing.T) {
	q, err := ComputeQuartiles([]uint64{1, 2, 5, 6, 7, 9, 12, 15, 18, 19, 27})
	require.NoError(t, err)
	assert.Equal(t, Quartiles{Q1: 5, Q2: 9, Q3: 18, IQR: 13}, q)
}

func TestQuartilesEven(t *testing.T) {
	q, err := ComputeQuartiles([]uint64{3, 5, 7, 8, 9, 11, 15, 16, 20, 21})
	require.NoError(t, err)
	assert.Equal(t, Quartiles{Q1: 7, Q2: 10, Q3: 16, IQR: 9}, q)
}

func TestQuartilesUnsortedInputIsNotModified(t *testing.T) {
	in := []time.Duration{27, 1, 19, 2, 18, 5, 15, 6, 12, 7, 9}
	orig := append([]time.Duration(nil), in...)

	q, err := ComputeQuartiles(in)
	require.NoError(t, err)
	assert.Equal(t, Quartiles{Q1: 5, Q2: 9, Q3: 18, IQR: 13}, q)
	assert.Equal(t, orig, in)
}

func TestQuartilesTooFewSamples(t *testing.T) {
	_, err := ComputeQuartiles([]int{1})
	assert.ErrorIs(t, err, ErrTooFewSamples)

	_, err = ComputeQuartiles([]int{})
	assert.ErrorIs(t, err, ErrTooFewSamples)
}

func TestTukey(t *testing.T) {
	q := Quartiles{Q1: -2, Q2: 0, Q3: 2, IQR: 4}
	assert.True(t, Tukey(3, q, 3.0))
	assert.False(t, Tukey(15, q, 3.0))
	assert.True(t, Tukey(14, q, 3.0), "upper fence is inclusive")
	assert.True(t, Tukey(-14, q, 3.0), "lower fence is inclusive")
	assert.False(t, Tukey(-15, q, 3.0))
}

func TestFilterDropsSpikes(t *testing.T) {
	samples := []uint64{2200, 2210, 2190, 2205, 2195, 2202, 112600, 2198}
	q, err := ComputeQuartiles(samples)
	require.NoError(t, err)

	kept := Filter(samples, q, DefaultOutlierCoefficient)
	assert.Len(t, kept, 7)
	assert.NotContains(t, kept, uint64(112600))
	assert.Equal(t, uint64(2200), kept[0], "order is preserved")
}
