package kpm

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qkpm/operator"
	"github.com/katalvlaran/qkpm/statevec"
)

// TestEvolutionCoeffs_LeadingTerms pins the analytic head of the series:
// c₀ = J₀(dt), c₁ = −2i·J₁(dt), c₂ = −2·J₂(dt).
func TestEvolutionCoeffs_LeadingTerms(t *testing.T) {
	const dt = 0.7
	c := evolutionCoeffs(dt, DefaultEvolveTol, DefaultMaxEvolveOrder)

	require.GreaterOrEqual(t, len(c), 3)
	assert.InDelta(t, math.J0(dt), real(c[0]), 1e-15)
	assert.InDelta(t, 0, imag(c[0]), 1e-15)
	assert.InDelta(t, -2*math.J1(dt), imag(c[1]), 1e-15)
	assert.InDelta(t, 0, real(c[1]), 1e-15)
	assert.InDelta(t, -2*math.Jn(2, dt), real(c[2]), 1e-15)
}

// TestEvolutionCoeffs_Truncation: for small dt the Bessel weights collapse
// fast, so the expansion stays shallow; maxOrder still caps it.
func TestEvolutionCoeffs_Truncation(t *testing.T) {
	c := evolutionCoeffs(0.1, DefaultEvolveTol, DefaultMaxEvolveOrder)
	assert.Less(t, len(c), 32, "small dt must truncate early")

	capped := evolutionCoeffs(0.1, 0, 5)
	assert.Len(t, capped, 5, "maxOrder bounds the expansion")
}

// TestEvolutionCoeffs_ScalarReconstruction sums the series at a scalar
// x ∈ (−1, 1) and compares against e^{−i·x·dt} directly.
func TestEvolutionCoeffs_ScalarReconstruction(t *testing.T) {
	const (
		dt = 0.7
		x  = 0.8
	)
	c := evolutionCoeffs(dt, DefaultEvolveTol, DefaultMaxEvolveOrder)

	sum := c[0]
	tkm2, tkm1 := 1.0, x
	sum += c[1] * complex(x, 0)
	for k := 2; k < len(c); k++ {
		tk := 2*x*tkm1 - tkm2
		sum += c[k] * complex(tk, 0)
		tkm2, tkm1 = tkm1, tk
	}

	want := cmplx.Exp(complex(0, -x*dt))
	assert.InDelta(t, real(want), real(sum), 1e-13)
	assert.InDelta(t, imag(want), imag(sum), 1e-13)
}

// TestEvolver_EigenstatePhase: on a diagonal operator an eigenstate only
// picks up the phase e^{−i·e·dt}.
func TestEvolver_EigenstatePhase(t *testing.T) {
	h, err := operator.NewDiagonal([]float64{0.5, -0.5})
	require.NoError(t, err)
	lay, err := statevec.NewLayout(2, 1)
	require.NoError(t, err)

	const dt = 0.3
	ev, err := newEvolver(h, dt, gatherOptions(), lay)
	require.NoError(t, err)

	v, err := statevec.NewFromLayout(lay)
	require.NoError(t, err)
	require.NoError(t, v.FillBasis(0))
	require.NoError(t, ev.step(v))

	assert.InDelta(t, math.Cos(0.5*dt), v.Re()[0], 1e-13)
	assert.InDelta(t, -math.Sin(0.5*dt), v.Im()[0], 1e-13)
	assert.InDelta(t, 0, v.Re()[1], 1e-13)
	assert.InDelta(t, 0, v.Im()[1], 1e-13)
}

// TestEvolver_PreservesNorm: U(dt) is unitary; repeated stepping must not
// drift the norm.
func TestEvolver_PreservesNorm(t *testing.T) {
	eigs := make([]float64, 16)
	rng := rand.New(rand.NewSource(9))
	for i := range eigs {
		eigs[i] = 2*rng.Float64() - 1
	}
	h, err := operator.NewDiagonal(eigs)
	require.NoError(t, err)
	lay, err := statevec.NewLayout(len(eigs), 4)
	require.NoError(t, err)

	ev, err := newEvolver(h, 0.5, gatherOptions(), lay)
	require.NoError(t, err)

	v, err := statevec.NewFromLayout(lay)
	require.NoError(t, err)
	v.FillRandomPhase(rng)
	for step := 0; step < 10; step++ {
		require.NoError(t, ev.step(v))
	}
	assert.InDelta(t, 1, v.Norm2(), 1e-12)
}

// TestPairEvolver_AnalyticCommutator: on the 2-site σx chain with
// x = {0, 1}, one step of the pair recursion from (e0, 0) gives
// φx = [X, U(dt)]·e0 = −i·sin(dt)·e1 and φ = cos(dt)·e0 − i·sin(dt)·e1.
func TestPairEvolver_AnalyticCommutator(t *testing.T) {
	h, err := operator.NewCSR([]int{0, 1, 2}, []int{1, 0}, []float64{1, 1}, nil)
	require.NoError(t, err)
	require.NoError(t, h.SetDisplacements([]float64{1, -1}))
	lay, err := statevec.NewLayout(2, 1)
	require.NoError(t, err)

	const dt = 0.4
	ev, err := newPairEvolver(h, h, dt, gatherOptions(), lay)
	require.NoError(t, err)

	phi, err := statevec.NewFromLayout(lay)
	require.NoError(t, err)
	require.NoError(t, phi.FillBasis(0))
	phix, err := statevec.NewFromLayout(lay)
	require.NoError(t, err)

	require.NoError(t, ev.step(phi, phix))

	assert.InDelta(t, math.Cos(dt), phi.Re()[0], 1e-12)
	assert.InDelta(t, -math.Sin(dt), phi.Im()[1], 1e-12)

	assert.InDelta(t, 0, phix.Re()[0], 1e-12)
	assert.InDelta(t, 0, phix.Im()[0], 1e-12)
	assert.InDelta(t, 0, phix.Re()[1], 1e-12)
	assert.InDelta(t, -math.Sin(dt), phix.Im()[1], 1e-12)
	assert.InDelta(t, math.Sin(dt)*math.Sin(dt), phix.Norm2(), 1e-12)
}
