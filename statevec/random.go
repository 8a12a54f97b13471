package statevec

import (
	"math"
	"math/rand"
)

// FillRandomPhase overwrites v with a unit-norm random-phase probe:
// entry i is exp(iθ_i)/√n with θ_i drawn uniformly from [0,2π). This is
// the stochastic trace estimator's probe distribution — every entry has
// unit modulus before normalization, so ⟨φ|A|φ⟩ averaged over probes
// estimates Tr(A)/n with the minimal single-vector variance among
// phase-only distributions.
//
// rng==nil selects a fixed-seed deterministic stream. A *rand.Rand is not
// goroutine-safe: concurrent realizations must each derive their own
// stream (see the kpm package's seed derivation).
func (v *Vector) FillRandomPhase(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	inv := 1.0 / math.Sqrt(float64(v.n))
	// Sequential on purpose: a single rng stream keeps the probe identical
	// for a given seed no matter how many workers the layout carries.
	for i := 0; i < v.n; i++ {
		theta := 2 * math.Pi * rng.Float64()
		s, c := math.Sincos(theta)
		v.re[i] = c * inv
		v.im[i] = s * inv
	}
}

// FillBasis overwrites v with the computational basis vector e_i
// (1 at index i, 0 elsewhere). Deterministic probe for closed-form checks.
func (v *Vector) FillBasis(i int) error {
	if i < 0 || i >= v.n {
		return ErrDimensionMismatch
	}
	v.Zero()
	v.re[i] = 1

	return nil
}
