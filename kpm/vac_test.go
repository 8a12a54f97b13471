package kpm_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qkpm/kpm"
	"github.com/katalvlaran/qkpm/operator"
)

// TestVAC_Validation covers the argument and capability error paths.
func TestVAC_Validation(t *testing.T) {
	p := kpm.Params{Moments: 2, Realizations: 1, TimeSteps: 4, TimeStep: 0.1}

	_, err := kpm.VAC(nil, p)
	assert.ErrorIs(t, err, kpm.ErrNilHamiltonian)

	// A diagonal operator has no velocity capability.
	diag, err := operator.NewDiagonal([]float64{0.5, -0.5})
	require.NoError(t, err)
	_, err = kpm.VAC(diag, p)
	assert.ErrorIs(t, err, kpm.ErrNoVelocity)

	h := twoSiteChain(t)
	_, err = kpm.VAC(h, kpm.Params{Moments: 2, Realizations: 1, TimeSteps: 0, TimeStep: 0.1})
	assert.ErrorIs(t, err, kpm.ErrBadParams)
	_, err = kpm.VAC(h, kpm.Params{Moments: 2, Realizations: 1, TimeSteps: 4, TimeStep: -1})
	assert.ErrorIs(t, err, kpm.ErrBadParams)
	_, err = kpm.VAC(h, kpm.Params{Moments: 2, Realizations: 1, TimeSteps: 4, TimeStep: math.Inf(1)})
	assert.ErrorIs(t, err, kpm.ErrBadParams)
}

// TestVAC_TwoSiteClosedForm: on the σx chain with probe e0 the exact
// correlation is cos(2t). Sampling starts at t = 0.
func TestVAC_TwoSiteClosedForm(t *testing.T) {
	h := twoSiteChain(t)
	p := kpm.Params{
		Moments:      2,
		Realizations: 1,
		TimeSteps:    20,
		TimeStep:     0.05,
		Workers:      1,
	}

	res, err := kpm.VAC(h, p, basisProbe(0))
	require.NoError(t, err)
	require.Len(t, res.Series, p.TimeSteps)

	for m, got := range res.Series {
		tm := float64(m) * p.TimeStep
		assert.InDelta(t, math.Cos(2*tm), got, 1e-8, "vac(t=%.2f)", tm)
	}

	times := res.Times()
	assert.Equal(t, 0.0, times[0])
	assert.InDelta(t, float64(p.TimeSteps-1)*p.TimeStep, times[p.TimeSteps-1], 1e-15)
}

// TestVAC_ConcurrencyInvariance: concurrency must not perturb the
// averaged series.
func TestVAC_ConcurrencyInvariance(t *testing.T) {
	h := twoSiteChain(t)
	p := kpm.Params{
		Moments:      2,
		Realizations: 6,
		TimeSteps:    8,
		TimeStep:     0.1,
		Seed:         5,
		Workers:      1,
	}

	seq, err := kpm.VAC(h, p)
	require.NoError(t, err)
	par, err := kpm.VAC(h, p, kpm.WithConcurrency(3))
	require.NoError(t, err)

	assert.Equal(t, seq.Series, par.Series)
}
