// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/connstat/matrix"
)

// ExampleFit shows the truncate/pad harmonization of two connectomes with
// different node counts onto a common 3×3 shape.
func ExampleFit() {
	big, _ := matrix.ReadDelimited(strings.NewReader("0 1 2 3\n1 0 4 5\n2 4 0 6\n3 5 6 0\n"))
	small, _ := matrix.ReadDelimited(strings.NewReader("0,7\n7,0\n"))

	a, changedA, _ := matrix.Fit(big, 3)
	b, changedB, _ := matrix.Fit(small, 3)

	fmt.Print(a)
	fmt.Print(b)
	fmt.Println(changedA, changedB)

	// Output:
	// [0, 1, 2]
	// [1, 0, 4]
	// [2, 4, 0]
	// [0, 7, 0]
	// [7, 0, 0]
	// [0, 0, 0]
	// true true
}

// ExampleFromUpperTriangle rebuilds a symmetric matrix from its flattened
// strict upper triangle and writes it as CSV.
func ExampleFromUpperTriangle() {
	m, _ := matrix.FromUpperTriangle([]float64{0.01, 0.5, 0.04}, 3)
	_ = matrix.WriteDelimited(os.Stdout, m)

	// Output:
	// 0,0.01,0.5
	// 0.01,0,0.04
	// 0.5,0.04,0
}
