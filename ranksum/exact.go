// SPDX-License-Identifier: MIT

package ranksum

// exactCounts returns, for u in [0, n1·n2], the number of arrangements of n1
// x-values and n2 y-values (no ties) whose statistic equals u.
//
// Recurrence on the last element of the arrangement:
//
//	N(m, n, u) = N(m−1, n, u−n)   // last is an x: it beats all n y-values
//	           + N(m, n−1, u)     // last is a y: contributes nothing
//
// with N(0, n, 0) = N(m, 0, 0) = 1. The distribution is symmetric in (n1, n2),
// so the smaller size drives the inner dimension.
//
// Counts are kept in float64: C(N, n1) overflows int64 long before the
// relative precision of float64 matters for a p-value.
func exactCounts(n1, n2 int) []float64 {
	m1, m2 := min(n1, n2), max(n1, n2)

	prev := make([][]float64, m1+1) // distributions for (m, n−1)
	for m := range prev {
		prev[m] = []float64{1}
	}
	for n := 1; n <= m2; n++ {
		cur := make([][]float64, m1+1)
		cur[0] = []float64{1}
		for m := 1; m <= m1; m++ {
			d := make([]float64, m*n+1)
			copy(d, prev[m])
			for v, c := range cur[m-1] {
				d[v+n] += c
			}
			cur[m] = d
		}
		prev = cur
	}

	return prev[m1]
}

// exactSF returns P(U ≥ k) under the exact null distribution.
func exactSF(k, n1, n2 int) float64 {
	counts := exactCounts(n1, n2)
	if k <= 0 {
		return 1
	}
	if k >= len(counts) {
		return 0
	}

	var total, tail float64
	for u, c := range counts {
		total += c
		if u >= k {
			tail += c
		}
	}

	return tail / total
}
