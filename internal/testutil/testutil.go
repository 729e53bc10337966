package testutil

import (
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/p-arndt/sortbench/internal/algo"
	"github.com/p-arndt/sortbench/internal/config"
)

// TestConfig returns a Config sized for unit tests: tiny inputs, few trials,
// no settle delay.
func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.MinSize = 10
	cfg.MaxSize = 1000
	cfg.Trials = 40
	cfg.RuntimeLimitMs = 5_000
	cfg.MinAcceptableTrials = 10
	cfg.Seed = 42
	cfg.Workers = 2
	cfg.SettleDelayMs = 0
	cfg.ProgressIntervalMs = 0
	return cfg
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SleepAlgorithm sorts correctly and then sleeps for d on every call.
func SleepAlgorithm(id string, d time.Duration) algo.Algorithm {
	return algo.Algorithm{
		ID:    id,
		Name:  id,
		Class: algo.Linearithmic,
		Sort: func(s []int32) {
			slices.Sort(s)
			time.Sleep(d)
		},
	}
}

// ConstantAlgorithm overwrites every element with the same value. The output is
// non-decreasing but no longer a permutation of the input.
func ConstantAlgorithm(id string) algo.Algorithm {
	return algo.Algorithm{
		ID:    id,
		Name:  id,
		Class: algo.Linear,
		Sort: func(s []int32) {
			for i := range s {
				s[i] = 7
			}
		},
	}
}

// Recorder is an algorithm that remembers every input it was handed.
type Recorder struct {
	mu     sync.Mutex
	inputs [][]int32
}

func (r *Recorder) Algorithm(id string) algo.Algorithm {
	return algo.Algorithm{
		ID:    id,
		Name:  id,
		Class: algo.Linearithmic,
		Sort: func(s []int32) {
			r.mu.Lock()
			r.inputs = append(r.inputs, slices.Clone(s))
			r.mu.Unlock()
			slices.Sort(s)
		},
	}
}

// Inputs returns the recorded inputs sorted lexicographically, so runs with
// different dispatch orders can be compared.
func (r *Recorder) Inputs() [][]int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := slices.Clone(r.inputs)
	slices.SortFunc(out, slices.Compare[[]int32])
	return out
}
