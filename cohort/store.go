// SPDX-License-Identifier: MIT

package cohort

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/connstat/matrix"
)

// Store loads and partitions entity matrices.
type Store struct {
	src       Source
	isControl Predicate
	opts      Options
}

// NewStore builds a Store. Panics on a nil source or predicate.
func NewStore(src Source, isControl Predicate, opts ...Option) *Store {
	if src == nil {
		panic("cohort: NewStore(nil source)")
	}
	if isControl == nil {
		panic("cohort: NewStore(nil predicate)")
	}

	return &Store{src: src, isControl: isControl, opts: gatherOptions(opts...)}
}

// slot is the per-index outcome of one parallel read.
type slot struct {
	raw     *matrix.Dense
	missing bool
}

// Load reads every entity in ids and returns the case and control cohorts.
// Implementation:
//   - Stage 1: de-duplicate ids (first occurrence wins) and read all matrices
//     in parallel into per-index slots; missing resources are marked, any
//     other failure cancels the group.
//   - Stage 2: pick p (TargetShape, or the first square matrix in input
//     order) and harmonize each matrix with matrix.Fit.
//   - Stage 3: partition by the predicate, preserving input order.
//
// The LoadReport is returned even on error when it holds useful diagnostics.
//
// Errors:
//   - ErrNoEntities for an empty id list.
//   - matrix.ErrMalformed / matrix.ErrNaNInf for unreadable resources.
//   - ErrEmptyCohort when either cohort ends up empty.
//   - ctx.Err() on cancellation.
func (s *Store) Load(ctx context.Context, ids []string) (*Cohort, *Cohort, *LoadReport, error) {
	ids = lo.Uniq(ids)
	if len(ids) == 0 {
		return nil, nil, nil, ErrNoEntities
	}
	report := &LoadReport{Requested: ids}
	log := s.opts.Logger

	// Stage 1: parallel read.
	slots := make([]slot, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := s.read(id)
			if errors.Is(err, ErrMissingResource) {
				slots[i].missing = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("entity %s: %w", id, err)
			}
			slots[i].raw = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, report, err
	}

	for i, id := range ids {
		if slots[i].missing {
			report.Skipped = append(report.Skipped, id)
			log.WithField("entity", id).Warn("matrix resource missing, entity skipped")
		}
	}

	// Stage 2: harmonize.
	p := s.opts.TargetShape
	if p == 0 {
		first, ok := lo.Find(slots, func(sl slot) bool { return sl.raw != nil && sl.raw.Rows() == sl.raw.Cols() })
		if !ok {
			return nil, nil, report, fmt.Errorf("no square matrix to infer shape from: %w", ErrEmptyCohort)
		}
		p = first.raw.Rows()
	}
	report.Dim = p

	entities := make([]Entity, 0, len(ids))
	for i, id := range ids {
		if slots[i].raw == nil {
			continue
		}
		raw := slots[i].raw
		fitted, changed, err := matrix.Fit(raw, p)
		if err != nil {
			return nil, nil, report, fmt.Errorf("entity %s: %w", id, err)
		}
		if changed {
			report.Reshaped = append(report.Reshaped, Reshape{ID: id, FromRows: raw.Rows(), FromCols: raw.Cols(), To: p})
			log.WithFields(logrus.Fields{
				"entity": id,
				"from":   fmt.Sprintf("%dx%d", raw.Rows(), raw.Cols()),
				"to":     fmt.Sprintf("%dx%d", p, p),
			}).Warn("matrix reshaped to common dimension")
		}
		entities = append(entities, Entity{ID: id, Matrix: fitted})
	}

	// Stage 3: partition.
	isControl := func(e Entity, _ int) bool { return s.isControl(e.ID) }
	controls := &Cohort{Label: LabelControl, Entities: lo.Filter(entities, isControl)}
	cases := &Cohort{Label: LabelCase, Entities: lo.Reject(entities, isControl)}

	log.WithFields(logrus.Fields{
		"case":     cases.Size(),
		"control":  controls.Size(),
		"skipped":  len(report.Skipped),
		"reshaped": len(report.Reshaped),
		"dim":      p,
	}).Info("cohorts loaded")

	if err := cases.Validate(); err != nil {
		return cases, controls, report, err
	}
	if err := controls.Validate(); err != nil {
		return cases, controls, report, err
	}

	return cases, controls, report, nil
}

// read opens and parses one resource.
func (s *Store) read(id string) (*matrix.Dense, error) {
	rc, err := s.src.Open(id)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%v: %w", err, ErrMissingResource)
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return matrix.ReadDelimited(rc, s.opts.MatrixOpts...)
}
