// Package algo holds the candidate sorting algorithms and the complexity-class
// table that caps the input sizes each candidate is benchmarked at.
package algo

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Complexity class tags.
const (
	Quadratic    = "O(n^2)"
	FourThirds   = "O(n^(4/3))"
	ThreeHalves  = "O(n^(3/2))"
	Linearithmic = "O(n log n)"
	Linear       = "O(n)"
)

// Unbounded is the ceiling of classes without a size limit.
const Unbounded = math.MaxInt

// Algorithm is one candidate under test. Sort must sort its argument in place,
// ascending, leaving a permutation of the input.
type Algorithm struct {
	ID    string
	Name  string
	Class string
	Sort  func([]int32)
}

// Limits maps a complexity class tag to the largest size it is run at.
type Limits map[string]int

// DefaultLimits keeps quadratic candidates away from inputs they would take
// minutes to sort.
func DefaultLimits() Limits {
	return Limits{
		Quadratic:    10_000,
		FourThirds:   Unbounded,
		ThreeHalves:  Unbounded,
		Linearithmic: Unbounded,
		Linear:       Unbounded,
	}
}

// Max returns the ceiling for class; classes missing from the table are unbounded.
func (l Limits) Max(class string) int {
	if v, ok := l[class]; ok && v > 0 {
		return v
	}
	return Unbounded
}

// Allows reports whether an algorithm of the given class runs at size.
func (l Limits) Allows(class string, size int) bool {
	return size <= l.Max(class)
}

// Merge returns a copy of l with overrides applied on top.
func (l Limits) Merge(overrides map[string]int) Limits {
	out := make(Limits, len(l)+len(overrides))
	for k, v := range l {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Select returns the algorithms whose IDs are listed, in registry order.
// An empty list selects everything. The first unknown ID in ids is reported.
func Select(all []Algorithm, ids []string) ([]Algorithm, error) {
	if len(ids) == 0 {
		return all, nil
	}
	known := make(map[string]bool, len(all))
	for _, a := range all {
		known[a.ID] = true
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if !known[id] {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, id)
		}
		want[id] = true
	}
	var out []Algorithm
	for _, a := range all {
		if want[a.ID] {
			out = append(out, a)
		}
	}
	return out, nil
}
