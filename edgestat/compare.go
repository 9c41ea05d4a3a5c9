// SPDX-License-Identifier: MIT

package edgestat

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/connstat/cohort"
	"github.com/katalvlaran/connstat/matrix"
	"github.com/katalvlaran/connstat/ranksum"
)

const opCompare = "Compare"

// Compare runs the per-edge rank-sum test between the case and control cohorts.
// Implementation:
//   - Stage 1: validate both cohorts are non-empty and share one p×p shape.
//   - Stage 2: for each row i (parallel), test every j>i and write (i,j),(j,i).
//   - Stage 3: merge per-row degenerate lists in row order.
//
// Returns:
//   - *matrix.Dense: symmetric p-value matrix with zero diagonal.
//   - *Report:       tested count and degenerate edges.
//
// Errors:
//   - ErrEmptyCohort, matrix.ErrDimensionMismatch.
//   - ErrDegenerateEdge (with the edge) under WithFailOnDegenerate.
//   - ctx.Err() on cancellation.
//
// Complexity:
//   - Time O(p²·n log n) for n = total entities, Space O(p² + n).
func Compare(ctx context.Context, cases, controls *cohort.Cohort, opts ...Option) (*matrix.Dense, *Report, error) {
	o := gatherOptions(opts...)

	// Stage 1: validate.
	for _, c := range []*cohort.Cohort{cases, controls} {
		if c.Size() == 0 {
			return nil, nil, fmt.Errorf("%s: %s: %w", opCompare, label(c), ErrEmptyCohort)
		}
		if err := c.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", opCompare, err)
		}
	}
	p := cases.Dim()
	if controls.Dim() != p {
		return nil, nil, fmt.Errorf("%s: case %dx%d vs control %dx%d: %w",
			opCompare, p, p, controls.Dim(), controls.Dim(), matrix.ErrDimensionMismatch)
	}

	out, err := matrix.NewDense(p, p)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opCompare, err)
	}

	// Stage 2: rows in parallel. Row i owns cells (i,j) and (j,i) for j>i.
	degenerate := make([][]matrix.Pair, p)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i := 0; i < p-1; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			x := make([]float64, cases.Size())
			y := make([]float64, controls.Size())
			for j := i + 1; j < p; j++ {
				fill(x, cases, i, j)
				fill(y, controls, i, j)

				pv := SentinelP
				res, err := ranksum.MannWhitneyU(x, y, o.Test)
				switch {
				case errors.Is(err, ranksum.ErrDegenerateSample):
					if o.FailOnDegenerate {
						return fmt.Errorf("%s: edge (%d,%d): %w: %w", opCompare, i, j, ErrDegenerateEdge, err)
					}
					degenerate[i] = append(degenerate[i], matrix.Pair{I: i, J: j})
				case err != nil:
					return fmt.Errorf("%s: edge (%d,%d): %w", opCompare, i, j, err)
				default:
					pv = res.P
				}
				if err = out.Set(i, j, pv); err != nil {
					return err
				}
				if err = out.Set(j, i, pv); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, nil, err
	}

	// Stage 3: merge.
	return out, &Report{
		Tested:     matrix.TriangleLen(p),
		Degenerate: lo.Flatten(degenerate),
	}, nil
}

// fill copies the (i,j) value of every entity into dst.
// Entities were validated as p×p, so At cannot fail here.
func fill(dst []float64, c *cohort.Cohort, i, j int) {
	for k, e := range c.Entities {
		dst[k], _ = e.Matrix.At(i, j)
	}
}

func label(c *cohort.Cohort) string {
	if c == nil || c.Label == "" {
		return "cohort"
	}

	return c.Label
}
