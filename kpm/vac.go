package kpm

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/qkpm/operator"
	"github.com/katalvlaran/qkpm/statevec"
)

// VAC estimates the velocity autocorrelation of h, which must additionally
// implement operator.VelocityApplier.
//
// Per realization: draw a probe φ, form φv = v·φ, then step both states
// through the Chebyshev expansion of U(dt); at each time step the
// correlation Re⟨φv(t)|v|φ(t)⟩ = Re⟨φ|v·U†(t)·v·U(t)|φ⟩ accumulates into
// a time-indexed series. Series average over realizations.
//
// Errors: ErrNilHamiltonian, ErrNoVelocity, ErrBadParams, fatal
// recursion errors, ErrNumericAnomaly on a non-finite entry.
func VAC(h operator.Hamiltonian, p Params, opts ...Option) (*VACResult, error) {
	o := gatherOptions(opts...)
	if h == nil {
		return nil, ErrNilHamiltonian
	}
	va, ok := h.(operator.VelocityApplier)
	if !ok {
		return nil, ErrNoVelocity
	}
	if err := p.validate(true); err != nil {
		return nil, err
	}
	lay, err := statevec.NewLayout(h.Dim(), p.Workers)
	if err != nil {
		return nil, err
	}

	log := o.log.With().Str("component", "vac").Logger()
	log.Debug().
		Int("dim", h.Dim()).
		Int("steps", p.TimeSteps).
		Float64("dt", p.TimeStep).
		Int("realizations", p.Realizations).
		Msg("vac run started")

	perRealization := make([][]float64, p.Realizations)
	err = forEachRealization(p.Realizations, o.concurrency, func(r int) error {
		series, runErr := vacRealization(h, va, p, o, lay, r)
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
		log.Warn().Msg("non-finite value in averaged correlation")

		return nil, err
	}
	log.Debug().Float64("vac0", avg[0]).Msg("vac run complete")

	return &VACResult{Series: avg, TimeStep: p.TimeStep}, nil
}

// vacRealization evolves one probe pair and returns its correlation series
// sampled at t = 0, dt, ..., (M-1)·dt.
func vacRealization(h operator.Hamiltonian, va operator.VelocityApplier, p Params, o Options, lay *statevec.Layout, r int) ([]float64, error) {
	phi, err := statevec.NewFromLayout(lay)
	if err != nil {
		return nil, err
	}
	if err = o.prepareProbe(r, p.Seed, phi); err != nil {
		return nil, err
	}
	phiv, err := statevec.NewFromLayout(lay)
	if err != nil {
		return nil, err
	}
	if err = va.ApplyVelocity(phi, phiv); err != nil {
		return nil, err
	}
	tmp, err := statevec.NewFromLayout(lay)
	if err != nil {
		return nil, err
	}
	ev, err := newEvolver(h, p.TimeStep, o, lay)
	if err != nil {
		return nil, err
	}

	series := make([]float64, p.TimeSteps)
	for m := 0; m < p.TimeSteps; m++ {
		if m > 0 {
			// Advance both states by one U(dt) step; the correlation then
			// compares v·φ(t) against the transported initial v·φ(0).
			if err = ev.step(phi); err != nil {
				return nil, err
			}
			if err = ev.step(phiv); err != nil {
				return nil, err
			}
		}
		if err = va.ApplyVelocity(phi, tmp); err != nil {
			return nil, err
		}
		c, ipErr := phiv.InnerProduct(tmp)
		if ipErr != nil {
			return nil, ipErr
		}
		series[m] = real(c)
	}

	return series, nil
}
