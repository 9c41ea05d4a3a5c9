// SPDX-License-Identifier: MIT

package cohort

import (
	"io"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/connstat/matrix"
)

// Option configures a Store.
type Option func(*Options)

// Options holds Store configuration.
//   - TargetShape: common dimension p; 0 infers p from the first square matrix.
//   - Workers:     parallel readers (default runtime.GOMAXPROCS(0)).
//   - Logger:      receives skip/reshape warnings (default discards).
//   - MatrixOpts:  forwarded to matrix.ReadDelimited.
type Options struct {
	TargetShape int
	Workers     int
	Logger      logrus.FieldLogger
	MatrixOpts  []matrix.Option
}

// WithTargetShape fixes the common dimension p. Panics if p < 0.
func WithTargetShape(p int) Option {
	if p < 0 {
		panic("cohort: WithTargetShape(p<0)")
	}

	return func(o *Options) { o.TargetShape = p }
}

// WithWorkers bounds concurrent reads. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("cohort: WithWorkers(n<1)")
	}

	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMatrixOptions forwards parser options to matrix.ReadDelimited.
func WithMatrixOptions(opts ...matrix.Option) Option {
	return func(o *Options) { o.MatrixOpts = append(o.MatrixOpts, opts...) }
}

// DiscardLogger returns a logrus logger writing nowhere.
func DiscardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  DiscardLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
