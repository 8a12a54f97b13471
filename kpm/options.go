package kpm

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/qkpm/statevec"
)

// DEFAULTS - single source of truth for zero-option behavior.
const (
	// DefaultConcurrency runs realizations sequentially, bounding live
	// recursion buffers to a single set.
	DefaultConcurrency = 1

	// DefaultKernel is Jackson damping, the standard choice for DOS.
	DefaultKernel = Jackson

	// DefaultLorentzLambda is the conventional λ for the Lorentz kernel.
	DefaultLorentzLambda = 4.0

	// DefaultEvolveTol truncates the U(dt) Bessel series once two
	// consecutive coefficients drop below this magnitude.
	DefaultEvolveTol = 1e-14

	// DefaultMaxEvolveOrder caps the U(dt) expansion order as a safety net
	// for very large dt.
	DefaultMaxEvolveOrder = 4096
)

// Internal panic messages (no magic strings).
const (
	panicConcurrencyInvalid = "kpm: WithConcurrency: k must be >= 1"
	panicLambdaInvalid      = "kpm: WithLorentzLambda: lambda must be > 0"
	panicProbeNil           = "kpm: WithProbe: prep must be non-nil"
	panicKernelInvalid      = "kpm: WithKernel: unknown kernel"
)

// Option mutates internal options. Constructors panic only on nonsensical
// values (programmer error); runtime conditions surface as errors from the
// drivers themselves.
type Option func(*Options)

// Options stores the effective configuration after applying Option
// setters. Fields are unexported; public entry points accept ...Option.
type Options struct {
	log           zerolog.Logger
	concurrency   int
	kernel        Kernel
	lorentzLambda float64
	evolveTol     float64
	maxOrder      int
	prep          func(realization int, v *statevec.Vector) error
}

// WithLogger attaches a structured logger to the driver; the default is
// zerolog.Nop(). Drivers log run parameters at Debug and anomalies at Warn.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Options) { o.log = log }
}

// WithConcurrency allows up to k realizations to run concurrently, each
// owning its own recursion buffers and local accumulator; accumulators
// merge in realization order after all complete. k must be >= 1.
func WithConcurrency(k int) Option {
	if k < 1 {
		panic(panicConcurrencyInvalid)
	}

	return func(o *Options) { o.concurrency = k }
}

// WithKernel selects the damping kernel applied to averaged moments.
func WithKernel(k Kernel) Option {
	if k != Jackson && k != Lorentz && k != Dirichlet {
		panic(panicKernelInvalid)
	}

	return func(o *Options) { o.kernel = k }
}

// WithLorentzLambda sets the λ parameter of the Lorentz kernel (ignored by
// the other kernels). lambda must be > 0.
func WithLorentzLambda(lambda float64) Option {
	if !(lambda > 0) {
		panic(panicLambdaInvalid)
	}

	return func(o *Options) { o.lorentzLambda = lambda }
}

// WithProbe overrides probe generation: prep is called once per
// realization with a zeroed vector to fill. The default draws a fresh
// random-phase probe from the realization's derived stream. Intended for
// deterministic closed-form checks and custom probe distributions.
func WithProbe(prep func(realization int, v *statevec.Vector) error) Option {
	if prep == nil {
		panic(panicProbeNil)
	}

	return func(o *Options) { o.prep = prep }
}

// gatherOptions applies user setters on top of the documented defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		log:           zerolog.Nop(),
		concurrency:   DefaultConcurrency,
		kernel:        DefaultKernel,
		lorentzLambda: DefaultLorentzLambda,
		evolveTol:     DefaultEvolveTol,
		maxOrder:      DefaultMaxEvolveOrder,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
