package kpm

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNilHamiltonian indicates a nil Hamiltonian collaborator.
	ErrNilHamiltonian = errors.New("kpm: nil hamiltonian")

	// ErrBadParams indicates Params that fail validation.
	ErrBadParams = errors.New("kpm: invalid parameters")

	// ErrNumericAnomaly indicates a NaN or ±Inf surfaced in an accumulated
	// observable. The run aborts; values are never clamped or masked, since
	// the anomaly signals instability in the rescaling or recursion.
	ErrNumericAnomaly = errors.New("kpm: non-finite value in accumulated observable")

	// ErrNoVelocity indicates the Hamiltonian does not expose the velocity
	// apply the VAC driver requires.
	ErrNoVelocity = errors.New("kpm: hamiltonian has no velocity capability")

	// ErrNoCommutator indicates the Hamiltonian does not expose the position
	// commutator apply the MSD driver requires.
	ErrNoCommutator = errors.New("kpm: hamiltonian has no commutator capability")
)

// Params is the read-only parameter set of one observable computation.
// The zero value is invalid; drivers validate before touching any buffer.
type Params struct {
	// Moments is the Chebyshev expansion depth K (DOS). Minimum 2.
	Moments int

	// Realizations is the number R of independent random-phase probes.
	Realizations int

	// TimeSteps is the number of evolution steps M (VAC/MSD only).
	TimeSteps int

	// TimeStep is the evolution step dt in rescaled units ħ/s, where s is
	// the spectral half-width absorbed by the [-1,1] rescaling.
	TimeStep float64

	// Seed drives the probe streams. 0 selects a fixed default seed, so
	// runs are reproducible by default; vary Seed for fresh statistics.
	Seed int64

	// Workers is the parallel partition width of the vector kernels.
	// 0 selects runtime.NumCPU.
	Workers int
}

// validate checks the fields a driver is about to consume. needTime adds
// the VAC/MSD evolution fields.
func (p Params) validate(needTime bool) error {
	if p.Moments < 2 {
		return ErrBadParams
	}
	if p.Realizations < 1 {
		return ErrBadParams
	}
	if needTime {
		if p.TimeSteps < 1 {
			return ErrBadParams
		}
		if !(p.TimeStep > 0) || math.IsInf(p.TimeStep, 1) {
			return ErrBadParams
		}
	}

	return nil
}

// DOSResult holds the moment sequence of one DOS computation.
type DOSResult struct {
	// Raw is the realization-averaged moment sequence μ_k, k = 0..K-1.
	Raw []float64

	// Moments is Raw with the damping factors applied: g_k·μ_k. This is
	// the sequence a DOS curve is reconstructed from.
	Moments []float64

	// Mu1Samples records each realization's μ₁ estimate, the convergence
	// diagnostic of the stochastic trace.
	Mu1Samples []float64

	// EMin, EMax are the raw spectral bounds used for energy back-mapping.
	EMin, EMax float64
}

// Mu1StdErr returns the standard error of the μ₁ estimate across
// realizations; it shrinks as 1/√R for a fixed Hamiltonian.
func (r *DOSResult) Mu1StdErr() float64 {
	n := len(r.Mu1Samples)
	if n < 2 {
		return 0
	}

	return math.Sqrt(stat.Variance(r.Mu1Samples, nil) / float64(n))
}

// Reconstruct sums the damped Chebyshev series into a DOS curve on the
// given raw-energy grid:
//
//	ρ(E) = (1/(π·s·√(1−x²))) · (m₀ + 2·Σ_{k≥1} m_k·T_k(x)),  x = (E−c)/s
//
// Energies outside the open interval (EMin, EMax) map to exactly 0.
func (r *DOSResult) Reconstruct(energies []float64) []float64 {
	c := (r.EMax + r.EMin) / 2
	s := (r.EMax - r.EMin) / 2
	out := make([]float64, len(energies))
	for i, e := range energies {
		x := (e - c) / s
		if x <= -1 || x >= 1 {
			continue
		}
		// Clenshaw-free direct summation: T_k by scalar three-term recursion.
		sum := r.Moments[0]
		tkm2, tkm1 := 1.0, x
		if len(r.Moments) > 1 {
			sum += 2 * r.Moments[1] * x
		}
		for k := 2; k < len(r.Moments); k++ {
			tk := 2*x*tkm1 - tkm2
			sum += 2 * r.Moments[k] * tk
			tkm2, tkm1 = tkm1, tk
		}
		out[i] = sum / (math.Pi * s * math.Sqrt(1-x*x))
	}

	return out
}

// VACResult holds a velocity autocorrelation series, one entry per time
// step starting at t = 0.
type VACResult struct {
	// Series is the realization-averaged correlation Re⟨v·φ(t)|v|φ(t)⟩.
	Series []float64

	// TimeStep is the step dt the series is sampled at.
	TimeStep float64
}

// Times returns the sampling times 0, dt, 2·dt, ... matching Series.
func (r *VACResult) Times() []float64 {
	ts := make([]float64, len(r.Series))
	for i := range ts {
		ts[i] = float64(i) * r.TimeStep
	}

	return ts
}

// MSDResult holds a mean-squared displacement series, one entry per time
// step starting at t = dt (the spread is identically zero at t = 0).
type MSDResult struct {
	// Series is the realization-averaged estimator ⟨φx(t)|φx(t)⟩.
	Series []float64

	// TimeStep is the step dt the series is sampled at.
	TimeStep float64
}

// Times returns the sampling times dt, 2·dt, ... matching Series.
func (r *MSDResult) Times() []float64 {
	ts := make([]float64, len(r.Series))
	for i := range ts {
		ts[i] = float64(i+1) * r.TimeStep
	}

	return ts
}

// checkFinite scans an accumulated series for NaN/±Inf.
func checkFinite(xs []float64) error {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ErrNumericAnomaly
		}
	}

	return nil
}
