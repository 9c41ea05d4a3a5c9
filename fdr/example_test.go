// SPDX-License-Identifier: MIT

package fdr_test

import (
	"fmt"

	"github.com/katalvlaran/connstat/fdr"
)

// ExampleBenjaminiHochberg adjusts five p-values and applies alpha = 0.05.
func ExampleBenjaminiHochberg() {
	raw := []float64{0.01, 0.02, 0.03, 0.04, 0.50}
	q, err := fdr.BenjaminiHochberg(raw)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for k := range q {
		fmt.Printf("%.2f → %.2f\n", raw[k], q[k])
	}
	fmt.Println(fdr.Reject(q, 0.05))
	// Output:
	// 0.01 → 0.05
	// 0.02 → 0.05
	// 0.03 → 0.05
	// 0.04 → 0.05
	// 0.50 → 0.50
	// [true true true true false]
}
