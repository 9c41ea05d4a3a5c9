// SPDX-License-Identifier: MIT

package fdr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned when there is nothing to correct (p < 2).
	ErrEmptyInput = errors.New("fdr: no p-values to correct")

	// ErrInvalidPValue is returned for NaN or values outside [0, 1].
	ErrInvalidPValue = errors.New("fdr: p-value outside [0, 1]")

	// ErrUnknownMethod is returned by ParseMethod for unrecognized names.
	ErrUnknownMethod = errors.New("fdr: unknown correction method")
)

// Method selects the multiple-comparison adjustment.
type Method int

const (
	MethodBH Method = iota
	MethodBY
	MethodBonferroni
)

// String returns the configuration name of the method.
func (m Method) String() string {
	switch m {
	case MethodBH:
		return "bh"
	case MethodBY:
		return "by"
	case MethodBonferroni:
		return "bonferroni"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a configuration name to a Method. Matching is
// case-insensitive; "fdr_bh" and "fdr_by" are accepted aliases.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bh", "fdr_bh", "benjamini-hochberg":
		return MethodBH, nil
	case "by", "fdr_by", "benjamini-yekutieli":
		return MethodBY, nil
	case "bonferroni":
		return MethodBonferroni, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownMethod)
	}
}

// Option configures Correct.
type Option func(*Options)

// Options holds correction settings.
type Options struct {
	Method Method
}

// WithMethod selects the adjustment. Panics on an undefined Method.
func WithMethod(m Method) Option {
	if m < MethodBH || m > MethodBonferroni {
		panic(fmt.Sprintf("fdr: WithMethod(%d) undefined", int(m)))
	}

	return func(o *Options) { o.Method = m }
}

func gatherOptions(opts ...Option) Options {
	o := Options{Method: MethodBH}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
