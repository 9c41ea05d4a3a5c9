// SPDX-License-Identifier: MIT

package fdr

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
)

// Adjust returns adjusted p-values in input order under method.
//
// Errors:
//   - ErrEmptyInput for an empty sequence.
//   - ErrInvalidPValue for NaN or values outside [0, 1].
func Adjust(p []float64, method Method) ([]float64, error) {
	if len(p) == 0 {
		return nil, ErrEmptyInput
	}
	for k, v := range p {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, fmt.Errorf("position %d: %v: %w", k, v, ErrInvalidPValue)
		}
	}

	m := float64(len(p))
	switch method {
	case MethodBonferroni:
		return lo.Map(p, func(v float64, _ int) float64 { return math.Min(1, v*m) }), nil
	case MethodBY:
		return stepUp(p, m*harmonic(len(p))), nil
	default:
		return stepUp(p, m), nil
	}
}

// BenjaminiHochberg returns BH-adjusted p-values in input order.
func BenjaminiHochberg(p []float64) ([]float64, error) {
	return Adjust(p, MethodBH)
}

// BenjaminiYekutieli returns BY-adjusted p-values in input order.
func BenjaminiYekutieli(p []float64) ([]float64, error) {
	return Adjust(p, MethodBY)
}

// Bonferroni returns Bonferroni-adjusted p-values in input order.
func Bonferroni(p []float64) ([]float64, error) {
	return Adjust(p, MethodBonferroni)
}

// stepUp applies q(k) = min_{l≥k} p(l)·scale/l over the ascending order.
// Implementation:
//   - Stage 1: stable sort of positions by (p, position).
//   - Stage 2: scale each sorted value by scale/rank.
//   - Stage 3: Monotone from the largest rank down, clamp to 1, scatter back.
//
// Complexity: O(m log m).
func stepUp(p []float64, scale float64) []float64 {
	order := lo.Range(len(p))
	slices.SortStableFunc(order, func(a, b int) int {
		if c := cmp.Compare(p[a], p[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	scaled := make([]float64, len(p))
	for k, pos := range order {
		scaled[k] = p[pos] * scale / float64(k+1)
	}
	scaled = Monotone(scaled)

	out := make([]float64, len(p))
	for k, pos := range order {
		out[pos] = scaled[k]
	}

	return out
}

// Monotone returns a copy of sorted-rank values where each entry is replaced
// by the minimum of itself and every later entry, clamped to 1.
// Applying it to its own output changes nothing.
func Monotone(q []float64) []float64 {
	out := make([]float64, len(q))
	running := 1.0
	for k := len(q) - 1; k >= 0; k-- {
		running = math.Min(running, q[k])
		out[k] = running
	}

	return out
}

// Reject reports, per position, whether the adjusted value is at or below alpha.
func Reject(adjusted []float64, alpha float64) []bool {
	return lo.Map(adjusted, func(q float64, _ int) bool { return q <= alpha })
}

// harmonic returns Σ_{i=1..m} 1/i.
func harmonic(m int) float64 {
	var c float64
	for i := 1; i <= m; i++ {
		c += 1 / float64(i)
	}

	return c
}
