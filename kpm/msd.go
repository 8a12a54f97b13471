package kpm

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/qkpm/operator"
	"github.com/katalvlaran/qkpm/statevec"
)

// MSD estimates the mean-squared displacement of a wavepacket under h,
// which must additionally implement operator.CommutatorApplier.
//
// Per realization: draw a probe φ and a zeroed auxiliary φx, then advance
// the pair per step as φ ← U·φ, φx ← U·φx + [X,U]·φ — so after m steps
// φx = [X,U(m·dt)]·φ — and record the squared-displacement estimator
// ⟨φx|φx⟩ at each step. Series average over realizations; entry m is the
// spread at t = (m+1)·dt (it is identically zero at t = 0).
//
// Errors: ErrNilHamiltonian, ErrNoCommutator, ErrBadParams, fatal
// recursion errors, ErrNumericAnomaly on a non-finite entry.
func MSD(h operator.Hamiltonian, p Params, opts ...Option) (*MSDResult, error) {
	o := gatherOptions(opts...)
	if h == nil {
		return nil, ErrNilHamiltonian
	}
	cm, ok := h.(operator.CommutatorApplier)
	if !ok {
		return nil, ErrNoCommutator
	}
	if err := p.validate(true); err != nil {
		return nil, err
	}
	lay, err := statevec.NewLayout(h.Dim(), p.Workers)
	if err != nil {
		return nil, err
	}

	log := o.log.With().Str("component", "msd").Logger()
	log.Debug().
		Int("dim", h.Dim()).
		Int("steps", p.TimeSteps).
		Float64("dt", p.TimeStep).
		Int("realizations", p.Realizations).
		Msg("msd run started")

	perRealization := make([][]float64, p.Realizations)
	err = forEachRealization(p.Realizations, o.concurrency, func(r int) error {
		series, runErr := msdRealization(h, cm, p, o, lay, r)
		if runErr != nil {
			return runErr
		}
		perRealization[r] = series

		return nil
	})
	if err != nil {
		return nil, err
	}

	avg := make([]float64, p.TimeSteps)
	for _, series := range perRealization {
		floats.Add(avg, series)
	}
	floats.Scale(1/float64(p.Realizations), avg)

	if err = checkFinite(avg); err != nil {
		log.Warn().Msg("non-finite value in averaged displacement")

		return nil, err
	}
	log.Debug().Float64("msd_last", avg[len(avg)-1]).Msg("msd run complete")

	return &MSDResult{Series: avg, TimeStep: p.TimeStep}, nil
}

// msdRealization propagates one probe/auxiliary pair and returns its
// squared-displacement series sampled at t = dt, ..., M·dt.
func msdRealization(h operator.Hamiltonian, cm operator.CommutatorApplier, p Params, o Options, lay *statevec.Layout, r int) ([]float64, error) {
	phi, err := statevec.NewFromLayout(lay)
	if err != nil {
		return nil, err
	}
	if err = o.prepareProbe(r, p.Seed, phi); err != nil {
		return nil, err
	}
	phix, err := statevec.NewFromLayout(lay)
	if err != nil {
		return nil, err
	}
	ev, err := newPairEvolver(h, cm, p.TimeStep, o, lay)
	if err != nil {
		return nil, err
	}

	series := make([]float64, p.TimeSteps)
	for m := 0; m < p.TimeSteps; m++ {
		if err = ev.step(phi, phix); err != nil {
			return nil, err
		}
		series[m] = phix.Norm2()
	}

	return series, nil
}
