// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for numeric policy and delimited I/O.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultDelimiter separates values when writing delimited matrices.
	DefaultDelimiter = ','

	// DefaultPrecision is the strconv precision used when writing values;
	// -1 selects the shortest representation that round-trips exactly.
	DefaultPrecision = -1
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid   = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicDelimiterInvalid = "matrix: WithDelimiter: delimiter must not be a newline, digit, sign or dot"
	panicPrecisionInvalid = "matrix: WithPrecision: precision must be >= -1"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
	delimiter      rune    // DefaultDelimiter
	precision      int     // DefaultPrecision
}

// WithEpsilon sets the numeric tolerance eps used by structural checks
// (ValidateSymmetric, ValidateZeroDiagonal).
//
// Errors:
//   - Panics with a stable message when eps is NaN, ±Inf or negative.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
// When enabled, ReadDelimited rejects NaN/±Inf cells and matrices it builds
// reject them on Set.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation (use with care).
// This flag propagates only on creation; existing matrices are unaffected.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithDelimiter sets the separator used by WriteDelimited.
//
// Errors:
//   - Panics when r would make the output ambiguous to ReadDelimited.
func WithDelimiter(r rune) Option {
	switch {
	case r == '\n' || r == '\r':
		panic(panicDelimiterInvalid)
	case r >= '0' && r <= '9':
		panic(panicDelimiterInvalid)
	case r == '-' || r == '+' || r == '.':
		panic(panicDelimiterInvalid)
	}

	return func(o *Options) { o.delimiter = r }
}

// WithPrecision sets the number of significant digits written per value
// ('g' format). -1 keeps the shortest exact representation.
func WithPrecision(prec int) Option {
	if prec < -1 {
		panic(panicPrecisionInvalid)
	}

	return func(o *Options) { o.precision = prec }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		delimiter:      DefaultDelimiter,
		precision:      DefaultPrecision,
	}
}

// gatherOptions applies setters over the defaults in order; later setters win.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
