package bench

import (
	"fmt"
	"math"
	"time"

	"github.com/p-arndt/sortbench/internal/stats"
)

// Result summarises the samples of one cell after outlier rejection. Mean and
// Stdev are in nanoseconds.
type Result struct {
	Mean            float64 `json:"mean_ns"`
	Stdev           float64 `json:"stdev_ns"`
	Count           int     `json:"count"`
	Fastest         bool    `json:"fastest"`
	StatTied        bool    `json:"stat_tied"`
	PracticallyTied bool    `json:"practically_tied"`
}

// CI returns the half-width of the 98% confidence interval of the mean, in
// nanoseconds.
func (r *Result) CI() (float64, error) {
	t, err := stats.TLookup(r.Count - 1)
	if err != nil {
		return 0, err
	}
	return t * r.Stdev / math.Sqrt(float64(r.Count)), nil
}

// Table holds one row per algorithm and one column per size. A nil entry means
// the cell did not produce enough data.
type Table [][]*Result

// Aggregate filters outliers with Tukey's fences and summarises what is left.
// Fewer than minAcceptable surviving samples yields no result and no error.
func Aggregate(samples []time.Duration, minAcceptable int, k float64) (*Result, error) {
	if len(samples) < max(2, minAcceptable) {
		return nil, nil
	}
	q, err := stats.ComputeQuartiles(samples)
	if err != nil {
		return nil, err
	}
	kept := stats.Filter(samples, q, k)
	if len(kept) < max(2, minAcceptable) {
		return nil, nil
	}
	mean := stats.Mean(kept)
	sd, err := stats.Stdev(kept, mean)
	if err != nil {
		return nil, err
	}
	return &Result{Mean: mean, Stdev: sd, Count: len(kept)}, nil
}

// Compute aggregates every cell of an outcome.
func Compute(out *Outcome, minAcceptable int, k float64) (Table, error) {
	table := make(Table, len(out.Cells))
	for a, row := range out.Cells {
		table[a] = make([]*Result, len(row))
		for s := range row {
			r, err := Aggregate(row[s].Samples, minAcceptable, k)
			if err != nil {
				return nil, fmt.Errorf("aggregate cell (%d, %d): %w", a, s, err)
			}
			table[a][s] = r
		}
	}
	return table, nil
}
