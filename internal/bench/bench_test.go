package bench

import (
	"slices"
	"testing"
	"time"

	"github.com/p-arndt/sortbench/internal/algo"
	"github.com/p-arndt/sortbench/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedForUnique(t *testing.T) {
	seen := make(map[uint64]bool)
	for trial := range 100_000 {
		s := SeedFor(2222, trial)
		require.False(t, seen[s], "seed collision at trial %d", trial)
		seen[s] = true
	}
	assert.Equal(t, SeedFor(2222, 17), SeedFor(2222, 17))
	assert.NotEqual(t, SeedFor(1, 0), SeedFor(2, 0))
}

func TestInputDeterministic(t *testing.T) {
	a := Input(1000, 99)
	b := Input(1000, 99)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Input(1000, 100))
	assert.Len(t, Input(0, 1), 0)
}

func TestSizes(t *testing.T) {
	assert.Equal(t, []int{10, 100, 1000, 10_000, 100_000, 1_000_000}, Sizes(10, 1_000_000, 10))
	assert.Equal(t, []int{10, 100, 1000}, Sizes(10, 5000, 10))
	assert.Equal(t, []int{3, 6, 12, 24}, Sizes(3, 24, 2))
	assert.Equal(t, []int{7}, Sizes(7, 7, 10))
	assert.Nil(t, Sizes(0, 10, 10))
	assert.Nil(t, Sizes(10, 5, 10))
	assert.Nil(t, Sizes(10, 100, 1))
}

func TestGenerateJobsRespectsLimits(t *testing.T) {
	algs := []algo.Algorithm{
		{ID: "slow", Class: algo.Quadratic},
		{ID: "fast", Class: algo.Linearithmic},
	}
	limits := algo.DefaultLimits().Merge(map[string]int{algo.Quadratic: 100})
	jobs := GenerateJobs(algs, []int{10, 100, 1000}, 5, limits)

	assert.Len(t, jobs, 2*5+3*5)
	for _, j := range jobs {
		if j.Algorithm == 0 {
			assert.Less(t, j.Size, 2, "quadratic job above its ceiling")
		}
	}
}

func TestShuffleDeterministic(t *testing.T) {
	algs := []algo.Algorithm{{ID: "a"}, {ID: "b"}}
	base := GenerateJobs(algs, []int{1, 2, 3}, 10, algo.DefaultLimits())

	x, y := slices.Clone(base), slices.Clone(base)
	Shuffle(x, 5)
	Shuffle(y, 5)
	assert.Equal(t, x, y)
	assert.ElementsMatch(t, base, x)
	assert.NotEqual(t, base, x)
}

func TestNewOptions(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.SizeLimits = map[string]int{algo.Quadratic: 50}
	opts := NewOptions(cfg)

	assert.Equal(t, []int{10, 100, 1000}, opts.Sizes)
	assert.Equal(t, 2, opts.Workers)
	assert.Equal(t, 5*time.Second, opts.RuntimeLimit)
	assert.Equal(t, 50, opts.Limits.Max(algo.Quadratic))
	assert.Equal(t, uint64(42), opts.Seed)

	cfg.Workers = 0
	assert.GreaterOrEqual(t, NewOptions(cfg).Workers, 1)
}
