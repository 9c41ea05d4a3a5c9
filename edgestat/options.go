// SPDX-License-Identifier: MIT

package edgestat

import (
	"errors"
	"runtime"

	"github.com/katalvlaran/connstat/matrix"
	"github.com/katalvlaran/connstat/ranksum"
)

var (
	// ErrEmptyCohort is returned when either cohort has no entities.
	ErrEmptyCohort = errors.New("edgestat: empty cohort")

	// ErrDegenerateEdge is returned under WithFailOnDegenerate.
	ErrDegenerateEdge = errors.New("edgestat: degenerate edge")
)

// SentinelP is stored for edges where the test is undefined.
const SentinelP = 1.0

// Option configures Compare.
type Option func(*Options)

// Options holds engine settings.
//   - Workers:           concurrent row workers (default GOMAXPROCS).
//   - FailOnDegenerate:  abort on the first degenerate edge.
//   - Test:              rank-sum options (default two-sided, auto method).
type Options struct {
	Workers          int
	FailOnDegenerate bool
	Test             ranksum.Options
}

// WithWorkers bounds concurrency. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("edgestat: WithWorkers(n<1)")
	}

	return func(o *Options) { o.Workers = n }
}

// WithFailOnDegenerate turns degenerate edges into a fatal error.
func WithFailOnDegenerate() Option {
	return func(o *Options) { o.FailOnDegenerate = true }
}

// WithTestOptions replaces the rank-sum configuration.
func WithTestOptions(t ranksum.Options) Option {
	return func(o *Options) { o.Test = t }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		Workers: runtime.GOMAXPROCS(0),
		Test:    ranksum.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Report lists non-fatal per-edge outcomes.
//   - Tested:     number of edges evaluated, p(p−1)/2.
//   - Degenerate: edges that received SentinelP, ascending (i,j).
type Report struct {
	Tested     int
	Degenerate []matrix.Pair
}
