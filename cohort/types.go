// SPDX-License-Identifier: MIT

package cohort

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/connstat/matrix"
)

// Sentinel errors. Callers match with errors.Is.
var (
	// ErrMissingResource marks an entity without a matrix resource. Non-fatal
	// inside Store.Load: the entity is skipped and reported.
	ErrMissingResource = errors.New("cohort: missing matrix resource")

	// ErrEmptyCohort is returned when a cohort has zero entities after loading.
	ErrEmptyCohort = errors.New("cohort: cohort is empty")

	// ErrNoEntities is returned when Load is called without identifiers.
	ErrNoEntities = errors.New("cohort: no entity identifiers")

	// ErrInvalidPredicate is returned by ParsePredicate for unusable rules.
	ErrInvalidPredicate = errors.New("cohort: invalid group rule")
)

// Group labels used for the two cohorts.
const (
	LabelCase    = "case"
	LabelControl = "control"
)

// Entity is one subject and its harmonized connectivity matrix.
// The matrix is owned by the entity and must be treated as read-only.
type Entity struct {
	ID     string
	Matrix *matrix.Dense
}

// Cohort is an ordered group of entities sharing a label.
type Cohort struct {
	Label    string
	Entities []Entity
}

// Size returns the number of entities.
func (c *Cohort) Size() int {
	if c == nil {
		return 0
	}

	return len(c.Entities)
}

// IDs returns entity identifiers in cohort order.
func (c *Cohort) IDs() []string {
	if c == nil {
		return nil
	}

	return lo.Map(c.Entities, func(e Entity, _ int) string { return e.ID })
}

// Dim returns the shared matrix dimension p, or 0 for an empty cohort.
func (c *Cohort) Dim() int {
	if c.Size() == 0 || c.Entities[0].Matrix == nil {
		return 0
	}

	return c.Entities[0].Matrix.Rows()
}

// Validate checks the cohort is non-empty and every matrix is p×p for one p.
func (c *Cohort) Validate() error {
	if c.Size() == 0 {
		label := LabelCase
		if c != nil {
			label = c.Label
		}
		return fmt.Errorf("%s: %w", label, ErrEmptyCohort)
	}
	p := c.Dim()
	for _, e := range c.Entities {
		if e.Matrix == nil {
			return fmt.Errorf("%s/%s: %w", c.Label, e.ID, matrix.ErrNilMatrix)
		}
		if e.Matrix.Rows() != p || e.Matrix.Cols() != p {
			return fmt.Errorf("%s/%s: %dx%d, want %dx%d: %w",
				c.Label, e.ID, e.Matrix.Rows(), e.Matrix.Cols(), p, p, matrix.ErrDimensionMismatch)
		}
	}

	return nil
}

// Reshape records an entity whose matrix was truncated or padded.
type Reshape struct {
	ID       string
	FromRows int
	FromCols int
	To       int
}

// LoadReport aggregates the non-fatal outcomes of Store.Load.
//
// Fields:
//   - Requested — identifiers after de-duplication, in input order.
//   - Skipped   — identifiers without a matrix resource.
//   - Reshaped  — entities harmonized by truncation or padding.
//   - Dim       — the common shape p used for the run.
type LoadReport struct {
	Requested []string
	Skipped   []string
	Reshaped  []Reshape
	Dim       int
}
