package bench

import (
	"fmt"
	"math"

	"github.com/p-arndt/sortbench/internal/stats"
)

// Rank compares the member rows of table column by column. It returns a copy
// of table in which, per size, the lowest mean is marked Fastest and every
// other member is marked StatTied when Welch's test cannot tell it apart from
// the fastest at level alpha, and PracticallyTied when its mean is within
// diffThreshold of the fastest. Non-member rows are copied without flags.
func Rank(table Table, members []int, alpha, diffThreshold float64) (Table, error) {
	out := make(Table, len(table))
	for a, row := range table {
		out[a] = make([]*Result, len(row))
		for s, r := range row {
			if r != nil {
				cp := *r
				cp.Fastest, cp.StatTied, cp.PracticallyTied = false, false, false
				out[a][s] = &cp
			}
		}
	}
	if len(out) == 0 {
		return out, nil
	}

	for s := range out[0] {
		best := -1
		for _, a := range members {
			r := out[a][s]
			if r != nil && (best < 0 || r.Mean < out[best][s].Mean) {
				best = a
			}
		}
		if best < 0 {
			continue
		}
		fastest := out[best][s]
		fastest.Fastest = true

		for _, a := range members {
			r := out[a][s]
			if a == best || r == nil {
				continue
			}
			p, diff, err := compare(r, fastest)
			if err != nil {
				return nil, fmt.Errorf("compare row %d at column %d: %w", a, s, err)
			}
			r.StatTied = p >= alpha
			r.PracticallyTied = diff <= diffThreshold
		}
	}
	return out, nil
}

// compare returns the two-tailed p-value and the relative difference of the
// means, taken against the smaller one.
func compare(r, fastest *Result) (p, diff float64, err error) {
	lo, hi := math.Min(r.Mean, fastest.Mean), math.Max(r.Mean, fastest.Mean)
	diff = (hi - lo) / lo
	p, err = stats.TwoSampleTTest(r.Mean, fastest.Mean, r.Stdev, fastest.Stdev, r.Count, fastest.Count, true)
	return p, diff, err
}
