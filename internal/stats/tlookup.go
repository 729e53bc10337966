package stats

import "fmt"

// Critical values of Student's t for a two-sided 98% confidence interval.
var (
	t98Exact = [...]float64{
		31.821, 6.965, 4.541, 3.747, 3.365, 3.143, 2.998, 2.896, 2.821, 2.764,
		2.718, 2.681, 2.650, 2.624, 2.602, 2.583, 2.567, 2.552, 2.539, 2.528,
		2.518, 2.508, 2.500, 2.492, 2.485, 2.479, 2.473, 2.467, 2.462, 2.457,
	}
	t98Decades = map[int]float64{
		40:  2.423,
		50:  2.403,
		60:  2.390,
		70:  2.381,
		80:  2.374,
		90:  2.368,
		100: 2.364,
	}
)

// t98Asymptotic is the normal-approximation row used past df = 100.
const t98Asymptotic = 2.326

// TLookup returns the critical t value for a 98% confidence interval.
// Between 31 and 100 degrees of freedom df is rounded up to the next tabulated
// decade, so the returned interval is never narrower than 98%.
func TLookup(df int) (float64, error) {
	switch {
	case df < 1:
		return 0, fmt.Errorf("%w: %d", ErrInvalidDegreesOfFreedom, df)
	case df <= len(t98Exact):
		return t98Exact[df-1], nil
	case df <= 100:
		return t98Decades[(df+9)/10*10], nil
	default:
		return t98Asymptotic, nil
	}
}
