// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/connstat/cohort"
	"github.com/katalvlaran/connstat/fdr"
	"github.com/katalvlaran/connstat/matrix"
	"github.com/katalvlaran/connstat/metrics"
	"github.com/katalvlaran/connstat/significance"
)

// ErrAlreadyRun is returned when Run is called on a Runner that left Pending.
var ErrAlreadyRun = errors.New("pipeline: runner already used")

// Stage is a state of the run lifecycle.
type Stage int

const (
	Pending Stage = iota
	Loaded
	Tested
	Corrected
	Extracted
	Failed
)

// String returns the lower-case state name.
func (s Stage) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Tested:
		return "tested"
	case Corrected:
		return "corrected"
	case Extracted:
		return "extracted"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Step returns the name of the work that leads into s: "load", "test",
// "correct" or "extract". Other states have no step.
func (s Stage) Step() string {
	switch s {
	case Loaded:
		return "load"
	case Tested:
		return "test"
	case Corrected:
		return "correct"
	case Extracted:
		return "extract"
	default:
		return ""
	}
}

// StageError reports which stage (and, when known, which cohort) failed.
// Stage is the state the run was trying to reach.
type StageError struct {
	Stage  Stage
	Cohort string
	Err    error
}

func (e *StageError) Error() string {
	if e.Cohort != "" {
		return fmt.Sprintf("pipeline: %s failed for %s cohort: %v", e.Stage.Step(), e.Cohort, e.Err)
	}

	return fmt.Sprintf("pipeline: %s failed: %v", e.Stage.Step(), e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Loader produces the two cohorts. *cohort.Store implements it.
type Loader interface {
	Load(ctx context.Context, ids []string) (*cohort.Cohort, *cohort.Cohort, *cohort.LoadReport, error)
}

// Options configures a Runner.
//   - Alpha:            significance threshold in (0,1) (default 0.05).
//   - Correction:       multiple-comparison method (default BH).
//   - Workers:          edge-test concurrency; 0 keeps the engine default.
//   - FailOnDegenerate: abort on the first degenerate edge.
//   - Logger:           run logger (default discards).
//   - Metrics:          optional collectors; nil disables metrics.
type Options struct {
	Alpha            float64
	Correction       fdr.Method
	Workers          int
	FailOnDegenerate bool
	Logger           logrus.FieldLogger
	Metrics          *metrics.Metrics
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		Alpha:      significance.DefaultAlpha,
		Correction: fdr.MethodBH,
		Logger:     cohort.DiscardLogger(),
	}
}

// Summary aggregates the non-fatal outcomes of a run; it is reported once.
type Summary struct {
	Dim         int
	Cases       int
	Controls    int
	Skipped     int
	Reshaped    int
	Tested      int
	Degenerate  int
	Significant int
}

// Result holds every artifact of a successful run.
type Result struct {
	RunID      string
	Raw        *matrix.Dense
	Corrected  *matrix.Dense
	Edges      []significance.Edge
	Load       *cohort.LoadReport
	Degenerate []matrix.Pair
	Summary    Summary
}
