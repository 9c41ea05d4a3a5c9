// SPDX-License-Identifier: MIT

package significance_test

import (
	"fmt"
	"os"

	"github.com/katalvlaran/connstat/matrix"
	"github.com/katalvlaran/connstat/significance"
)

// ExampleExtract keeps only the (0,2) edge of a 4-node corrected matrix.
func ExampleExtract() {
	corrected, _ := matrix.FromUpperTriangle([]float64{
		0.90, 0.01, 0.40, // (0,1) (0,2) (0,3)
		0.70, 0.06, //       (1,2) (1,3)
		0.20, //             (2,3)
	}, 4)

	edges, err := significance.Extract(corrected, 0.05)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	_ = significance.WriteCSV(os.Stdout, edges)
	// Output:
	// Region 1,Region 2
	// 0,2
}
