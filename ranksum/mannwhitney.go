// SPDX-License-Identifier: MIT

package ranksum

import (
	"fmt"
	"math"
	"slices"
)

// MannWhitneyU runs the Mann–Whitney U test on samples x and y.
//
// Steps:
//  1. Validate both samples are non-empty and finite.
//  2. Rank the pooled sample (average ranks for ties) and collect tie sizes.
//  3. U1 = R1 − n1(n1+1)/2, U2 = n1·n2 − U1.
//  4. Pick U by alternative: max(U1,U2) two-sided, U1 greater, U2 less.
//  5. p = sf(U) from the exact or normal null distribution; doubled for
//     two-sided and clipped to [0, 1].
//
// Errors:
//   - ErrEmptySample, ErrConstantSample (both match ErrDegenerateSample).
//   - ErrNonFinite for NaN/±Inf values.
//   - An error for Exact requested on tied data.
func MannWhitneyU(x, y []float64, opts Options) (Result, error) {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return Result{}, ErrEmptySample
	}
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, ErrNonFinite
		}
	}
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, ErrNonFinite
		}
	}

	pooled := make([]float64, 0, n1+n2)
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)
	ranks, tieTerm := Rank(pooled)

	n := float64(n1 + n2)
	if tieTerm == n*n*n-n {
		// One tie group spanning the whole pooled sample: zero variance.
		return Result{}, ErrConstantSample
	}

	var r1 float64
	for i := 0; i < n1; i++ {
		r1 += ranks[i]
	}
	fn1, fn2 := float64(n1), float64(n2)
	u1 := r1 - fn1*(fn1+1)/2
	u2 := fn1*fn2 - u1
	ties := tieTerm > 0

	method := opts.Method
	if method == Auto {
		method = chooseMethod(n1, n2, ties)
	}
	if method == Exact && ties {
		return Result{}, fmt.Errorf("ranksum: exact method requested on tied data")
	}

	var u float64
	switch opts.Alternative {
	case Greater:
		u = u1
	case Less:
		u = u2
	default:
		u = math.Max(u1, u2)
	}

	var p float64
	switch method {
	case Exact:
		p = exactSF(int(math.Round(u)), n1, n2)
	default:
		p = asymptoticSF(u, fn1, fn2, tieTerm, opts.Continuity)
	}
	if opts.Alternative == TwoSided {
		p *= 2
	}
	p = math.Min(math.Max(p, 0), 1)

	return Result{U: u1, P: p, Method: method, Ties: ties}, nil
}

// chooseMethod mirrors the common small-sample rule: exact unless both
// samples are large or the data contain ties.
func chooseMethod(n1, n2 int, ties bool) Method {
	if n1 > exactThreshold && n2 > exactThreshold {
		return Asymptotic
	}
	if ties {
		return Asymptotic
	}

	return Exact
}

// asymptoticSF returns P(U ≥ u) under the normal approximation.
func asymptoticSF(u, n1, n2, tieTerm float64, continuity bool) float64 {
	n := n1 + n2
	mu := n1 * n2 / 2
	sigma := math.Sqrt(n1 * n2 / 12 * ((n + 1) - tieTerm/(n*(n-1))))

	num := u - mu
	if continuity {
		num -= 0.5
	}
	z := num / sigma

	return 0.5 * math.Erfc(z/math.Sqrt2)
}

// Rank assigns 1-based ranks to values, averaging over ties, and returns
// Σ(t³ − t) over tie groups of size t (0 when all values are distinct).
// The sort is stable, so equal inputs always produce equal outputs.
//
// Complexity: O(N log N).
func Rank(values []float64) ([]float64, float64) {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case values[a] < values[b]:
			return -1
		case values[a] > values[b]:
			return 1
		default:
			return 0
		}
	})

	ranks := make([]float64, n)
	var tieTerm float64
	for i := 0; i < n; {
		j := i + 1
		for j < n && values[idx[j]] == values[idx[i]] {
			j++
		}
		// Positions i..j-1 share the average of ranks i+1..j.
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		if t := float64(j - i); t > 1 {
			tieTerm += t*t*t - t
		}
		i = j
	}

	return ranks, tieTerm
}
