package stats

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/mathx"
)

// Series limits for the hypergeometric evaluation of the t distribution.
// A term this large means cancellation has already eaten the precision we need.
const (
	seriesTolerance = 1e-5
	seriesTermLimit = 1e10
	seriesMaxTerms  = 10_000
)

// TwoSampleTTest runs Welch's unequal-variance t-test on two summarized samples
// and returns the p-value. A zero standard deviation on either side makes the
// statistic undefined; such pairs are reported as distinguishable (p = 0).
func TwoSampleTTest(mean1, mean2, stdev1, stdev2 float64, n1, n2 int, twoTailed bool) (float64, error) {
	if n1 < 2 || n2 < 2 {
		return 0, ErrTooFewSamples
	}
	if !finite(mean1, mean2, stdev1, stdev2) {
		return 0, fmt.Errorf("%w: non-finite summary (means %g, %g; stdevs %g, %g)",
			ErrNumericalDivergence, mean1, mean2, stdev1, stdev2)
	}
	if stdev1 == 0 || stdev2 == 0 {
		return 0, nil
	}
	tails := 1.0
	if twoTailed {
		tails = 2.0
	}

	v1 := stdev1 * stdev1 / float64(n1)
	v2 := stdev2 * stdev2 / float64(n2)
	t := math.Abs(mean1-mean2) / math.Sqrt(v1+v2)
	if t == 0 {
		return 0.5 * tails, nil
	}
	// Welch–Satterthwaite
	df := (v1 + v2) * (v1 + v2) / (v1*v1/float64(n1-1) + v2*v2/float64(n2-1))

	cdf, err := tCDF(t, df)
	if err != nil {
		return 0, err
	}
	p := (1 - cdf) * tails
	if !validProbability(p) {
		return 0, fmt.Errorf("%w: p=%g (t=%g, df=%g)", ErrNumericalDivergence, p, t, df)
	}
	return p, nil
}

// tCDF evaluates the Student's t CDF at t > 0 with df degrees of freedom.
// The hypergeometric form is tried first when it is expected to converge;
// otherwise, or when it fails, the incomplete beta form is used.
func tCDF(t, df float64) (float64, error) {
	if !finite(t, df) {
		return 0, fmt.Errorf("%w: t=%g, df=%g", ErrNumericalDivergence, t, df)
	}
	if t*t < df {
		if s, ok := hyp2f1(0.5, (df+1)/2, 1.5, -t*t/df); ok {
			lnNum, _ := math.Lgamma((df + 1) / 2)
			lnDen, _ := math.Lgamma(df / 2)
			p := round4(0.5 + t*math.Exp(lnNum-lnDen)*s/math.Sqrt(df*math.Pi))
			if validProbability(p) {
				return p, nil
			}
		}
	}

	p := round4(1 - 0.5*mathx.BetaInc(df/(t*t+df), df/2, 0.5))
	if !validProbability(p) {
		return 0, fmt.Errorf("%w: t cdf=%g (t=%g, df=%g)", ErrNumericalDivergence, p, t, df)
	}
	return p, nil
}

// hyp2f1 sums the Gauss hypergeometric series 2F1(a, b; c; z) term by term.
// ok is false if the terms grow past seriesTermLimit, stop being finite, or
// the series has not converged after seriesMaxTerms terms.
func hyp2f1(a, b, c, z float64) (sum float64, ok bool) {
	if c <= 0 {
		return 0, false
	}
	term := 1.0
	for n := 0; ; n++ {
		if math.IsNaN(term) || math.IsInf(term, 0) || math.Abs(term) >= seriesTermLimit {
			return 0, false
		}
		sum += term
		if math.Abs(term) < seriesTolerance {
			break
		}
		if n >= seriesMaxTerms {
			return 0, false
		}
		k := float64(n)
		term *= (a + k) * (b + k) / ((c + k) * (k + 1)) * z
	}
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0, false
	}
	return sum, true
}

// round4 rounds to four decimal places to hide floating-point jitter.
func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

func validProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
