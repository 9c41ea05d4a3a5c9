// SPDX-License-Identifier: MIT

package ranksum

import (
	"errors"
	"fmt"
)

// ErrDegenerateSample is returned when the test is undefined for the inputs:
// an empty sample, or a pooled sample with zero rank variance.
var ErrDegenerateSample = errors.New("ranksum: degenerate sample")

// ErrEmptySample refines ErrDegenerateSample for a sample with no values.
// errors.Is matches both sentinels.
var ErrEmptySample = fmt.Errorf("%w: empty sample", ErrDegenerateSample)

// ErrConstantSample refines ErrDegenerateSample for pooled data where every
// value is identical.
var ErrConstantSample = fmt.Errorf("%w: all values identical", ErrDegenerateSample)

// ErrNonFinite is returned when a sample contains NaN or ±Inf.
var ErrNonFinite = errors.New("ranksum: non-finite value in sample")

// Alternative selects the alternative hypothesis.
type Alternative int

const (
	// TwoSided tests whether the distributions differ in either direction.
	TwoSided Alternative = iota

	// Greater tests whether x is stochastically greater than y.
	Greater

	// Less tests whether x is stochastically less than y.
	Less
)

// String returns the scipy-style name of the alternative.
func (a Alternative) String() string {
	switch a {
	case TwoSided:
		return "two-sided"
	case Greater:
		return "greater"
	case Less:
		return "less"
	default:
		return fmt.Sprintf("Alternative(%d)", int(a))
	}
}

// Method selects how the p-value is computed.
type Method int

const (
	// Auto picks Exact for small tie-free samples and Asymptotic otherwise.
	Auto Method = iota

	// Exact enumerates the null distribution of U.
	Exact

	// Asymptotic uses the tie-corrected normal approximation.
	Asymptotic
)

// String returns the lower-case method name.
func (m Method) String() string {
	switch m {
	case Auto:
		return "auto"
	case Exact:
		return "exact"
	case Asymptotic:
		return "asymptotic"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Result is the outcome of one Mann–Whitney U test.
//
// Fields:
//   - U      — statistic of the first sample, U1 = R1 − n1(n1+1)/2.
//   - P      — p-value in [0, 1] under the configured alternative.
//   - Method — the method actually used (never Auto).
//   - Ties   — true when the pooled sample contained tied values.
type Result struct {
	U      float64
	P      float64
	Method Method
	Ties   bool
}

// Options configures MannWhitneyU.
//   - Alternative: hypothesis direction (default TwoSided).
//   - Method:      p-value method (default Auto).
//   - Continuity:  apply the 0.5 continuity correction in the asymptotic method (default true).
type Options struct {
	Alternative Alternative
	Method      Method
	Continuity  bool
}

// DefaultOptions returns the two-sided, auto-method, continuity-corrected
// configuration.
func DefaultOptions() Options {
	return Options{
		Alternative: TwoSided,
		Method:      Auto,
		Continuity:  true,
	}
}

// exactThreshold is the sample size at or below which Auto may choose Exact.
const exactThreshold = 8
