// Package stats turns noisy timing samples into comparable summaries:
// quartiles and Tukey fences for outlier rejection, sample mean and standard
// deviation, Welch's two-sample t-test and a Student's t critical-value table.
//
// Every function is pure and safe for concurrent use.
package stats

import (
	"errors"
	"math"
	"slices"
)

// Sentinel errors
var (
	ErrTooFewSamples           = errors.New("too few samples")
	ErrNumericalDivergence     = errors.New("numerical divergence")
	ErrInvalidDegreesOfFreedom = errors.New("invalid degrees of freedom")
)

// DefaultOutlierCoefficient is the Tukey fence multiplier used for timing data.
// Timing noise shows up as rare extreme spikes, so the fences are wide.
const DefaultOutlierCoefficient = 3.0

// Number is any built-in numeric type a sample can be stored as.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Quartiles describes the spread of a data set.
type Quartiles struct {
	Q1  float64 `json:"q1"`
	Q2  float64 `json:"q2"`
	Q3  float64 `json:"q3"`
	IQR float64 `json:"iqr"`
}

// median expects a sorted, non-empty slice.
func median[T Number](sorted []T) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
	}
	return float64(sorted[n/2])
}

// ComputeQuartiles uses the median-of-halves method on a sorted copy of samples.
// For an odd count the middle element belongs to neither half.
func ComputeQuartiles[T Number](samples []T) (Quartiles, error) {
	n := len(samples)
	if n < 2 {
		return Quartiles{}, ErrTooFewSamples
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	upper := n / 2
	if n%2 != 0 {
		upper++
	}
	q1 := median(sorted[:n/2])
	q3 := median(sorted[upper:])
	return Quartiles{
		Q1:  q1,
		Q2:  median(sorted),
		Q3:  q3,
		IQR: q3 - q1,
	}, nil
}

// Tukey reports whether v lies inside the fences q1-k*iqr and q3+k*iqr.
func Tukey[T Number](v T, q Quartiles, k float64) bool {
	x := float64(v)
	return x >= q.Q1-k*q.IQR && x <= q.Q3+k*q.IQR
}

// Filter returns the samples that survive Tukey's fences, in their original order.
func Filter[T Number](samples []T, q Quartiles, k float64) []T {
	kept := make([]T, 0, len(samples))
	for _, s := range samples {
		if Tukey(s, q, k) {
			kept = append(kept, s)
		}
	}
	return kept
}

// Mean returns the arithmetic mean, or NaN for an empty slice.
func Mean[T Number](xs []T) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, x := range xs {
		sum += float64(x)
	}
	return sum / float64(len(xs))
}

// Stdev computes the sample standard deviation around a precomputed mean.
func Stdev[T Number](xs []T, mean float64) (float64, error) {
	if len(xs) < 2 {
		return 0, ErrTooFewSamples
	}
	var sum float64
	for _, x := range xs {
		d := float64(x) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1)), nil
}
