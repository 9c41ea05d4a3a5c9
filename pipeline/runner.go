// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/connstat/cohort"
	"github.com/katalvlaran/connstat/edgestat"
	"github.com/katalvlaran/connstat/fdr"
	"github.com/katalvlaran/connstat/significance"
)

// Runner executes one comparison: Pending → Loaded → Tested → Corrected →
// Extracted, or → Failed from any state. A Runner is single-use.
type Runner struct {
	loader Loader
	ids    []string
	opts   Options
	state  Stage
	runID  string
	log    logrus.FieldLogger
}

// NewRunner builds a Runner over ids. Panics on a nil loader or an alpha
// outside (0,1).
func NewRunner(loader Loader, ids []string, opts Options) *Runner {
	if loader == nil {
		panic("pipeline: NewRunner(nil loader)")
	}
	if !(opts.Alpha > 0 && opts.Alpha < 1) {
		panic(fmt.Sprintf("pipeline: NewRunner alpha=%v outside (0,1)", opts.Alpha))
	}
	if opts.Logger == nil {
		opts.Logger = cohort.DiscardLogger()
	}
	runID := uuid.NewString()

	return &Runner{
		loader: loader,
		ids:    append([]string(nil), ids...),
		opts:   opts,
		state:  Pending,
		runID:  runID,
		log:    opts.Logger.WithField("run_id", runID),
	}
}

// State returns the current lifecycle state.
func (r *Runner) State() Stage { return r.state }

// RunID returns the identifier attached to every log line of this run.
func (r *Runner) RunID() string { return r.runID }

// Run executes every stage in order.
//
// Errors:
//   - ErrAlreadyRun when called twice.
//   - *StageError wrapping the first fatal error; no later stage runs.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.state != Pending {
		return nil, ErrAlreadyRun
	}
	res := &Result{RunID: r.runID}
	r.log.WithField("entities", len(r.ids)).Info("run started")

	// Load.
	var cases, controls *cohort.Cohort
	err := r.stage(Loaded, func() error {
		var err error
		cases, controls, res.Load, err = r.loader.Load(ctx, r.ids)
		return err
	})
	if err != nil {
		return nil, r.fail(Pending, emptyCohortLabel(err, cases), err)
	}
	if res.Load == nil {
		res.Load = &cohort.LoadReport{Dim: cases.Dim()}
	}
	res.Summary.Dim = res.Load.Dim
	res.Summary.Cases, res.Summary.Controls = cases.Size(), controls.Size()
	res.Summary.Skipped, res.Summary.Reshaped = len(res.Load.Skipped), len(res.Load.Reshaped)
	r.observeLoad(res)

	// Test.
	err = r.stage(Tested, func() error {
		opts := []edgestat.Option{}
		if r.opts.Workers > 0 {
			opts = append(opts, edgestat.WithWorkers(r.opts.Workers))
		}
		if r.opts.FailOnDegenerate {
			opts = append(opts, edgestat.WithFailOnDegenerate())
		}
		raw, rep, err := edgestat.Compare(ctx, cases, controls, opts...)
		if err != nil {
			return err
		}
		res.Raw, res.Degenerate = raw, rep.Degenerate
		res.Summary.Tested, res.Summary.Degenerate = rep.Tested, len(rep.Degenerate)
		return nil
	})
	if err != nil {
		return nil, r.fail(Loaded, "", err)
	}

	// Correct.
	err = r.stage(Corrected, func() error {
		var err error
		res.Corrected, err = fdr.Correct(res.Raw, fdr.WithMethod(r.opts.Correction))
		return err
	})
	if err != nil {
		return nil, r.fail(Tested, "", err)
	}

	// Extract.
	err = r.stage(Extracted, func() error {
		var err error
		res.Edges, err = significance.Extract(res.Corrected, r.opts.Alpha)
		res.Summary.Significant = len(res.Edges)
		return err
	})
	if err != nil {
		return nil, r.fail(Corrected, "", err)
	}

	r.report(res)

	return res, nil
}

// stage runs fn, times it, and advances to next on success.
func (r *Runner) stage(next Stage, fn func() error) error {
	start := time.Now()
	err := fn()
	if m := r.opts.Metrics; m != nil {
		m.ObserveStage(next.Step(), time.Since(start))
	}
	if err != nil {
		return err
	}
	r.state = next
	r.log.WithFields(logrus.Fields{"stage": next.Step(), "elapsed": time.Since(start)}).Debug("stage complete")

	return nil
}

// fail moves to Failed and wraps err with the stage that was being entered.
func (r *Runner) fail(from Stage, cohortLabel string, err error) error {
	r.state = Failed
	stage := from + 1
	if m := r.opts.Metrics; m != nil {
		m.RunFailures.WithLabelValues(stage.Step()).Inc()
	}
	se := &StageError{Stage: stage, Cohort: cohortLabel, Err: err}
	r.log.WithError(err).WithField("stage", stage.Step()).Error("run failed")

	return se
}

func (r *Runner) observeLoad(res *Result) {
	m := r.opts.Metrics
	if m == nil {
		return
	}
	m.EntitiesLoaded.WithLabelValues(cohort.LabelCase).Add(float64(res.Summary.Cases))
	m.EntitiesLoaded.WithLabelValues(cohort.LabelControl).Add(float64(res.Summary.Controls))
	m.EntitiesSkipped.Add(float64(res.Summary.Skipped))
	m.EntitiesReshaped.Add(float64(res.Summary.Reshaped))
}

// report emits the end-of-run summary once.
func (r *Runner) report(res *Result) {
	s := res.Summary
	if m := r.opts.Metrics; m != nil {
		m.EdgesTested.Add(float64(s.Tested))
		m.EdgesDegenerate.Add(float64(s.Degenerate))
		m.EdgesSignificant.Add(float64(s.Significant))
	}
	r.log.WithFields(logrus.Fields{
		"dim":         s.Dim,
		"case":        s.Cases,
		"control":     s.Controls,
		"skipped":     s.Skipped,
		"reshaped":    s.Reshaped,
		"tested":      s.Tested,
		"degenerate":  s.Degenerate,
		"significant": s.Significant,
		"alpha":       r.opts.Alpha,
		"correction":  r.opts.Correction.String(),
	}).Info("run complete")
}

// emptyCohortLabel names the empty cohort when loading failed for that reason.
func emptyCohortLabel(err error, cases *cohort.Cohort) string {
	if !errors.Is(err, cohort.ErrEmptyCohort) {
		return ""
	}
	if cases == nil || cases.Size() == 0 {
		return cohort.LabelCase
	}

	return cohort.LabelControl
}
