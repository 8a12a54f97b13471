package kpm

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/qkpm/operator"
	"github.com/katalvlaran/qkpm/statevec"
)

// DOS estimates the density of states of h by stochastic Chebyshev moment
// expansion.
//
// Per realization: draw a random-phase probe φ, seed the recursion triple
// with T₀ = φ and T₁ = H̃·φ, then for k = 2..K-1 advance
// T_k = 2·H̃·T_{k-1} − T_{k-2}, reducing ⟨φ|T_k⟩ through the two-phase
// inner product into a per-realization moment block; the triple rotates by
// swap. Moments average over realizations and are damped by the configured
// kernel before being returned.
//
// Errors: ErrNilHamiltonian, ErrBadParams, any statevec/operator error
// from the recursion (fatal, aborts the whole run), ErrNumericAnomaly if
// a non-finite moment surfaces.
func DOS(h operator.Hamiltonian, p Params, opts ...Option) (*DOSResult, error) {
	o := gatherOptions(opts...)
	if h == nil {
		return nil, ErrNilHamiltonian
	}
	if err := p.validate(false); err != nil {
		return nil, err
	}
	lay, err := statevec.NewLayout(h.Dim(), p.Workers)
	if err != nil {
		return nil, err
	}

	log := o.log.With().Str("component", "dos").Logger()
	log.Debug().
		Int("dim", h.Dim()).
		Int("moments", p.Moments).
		Int("realizations", p.Realizations).
		Int("concurrency", o.concurrency).
		Msg("dos run started")

	perRealization := make([][]float64, p.Realizations)
	err = forEachRealization(p.Realizations, o.concurrency, func(r int) error {
		moments, runErr := dosRealization(h, p, o, lay, r)
		if runErr != nil {
			return runErr
		}
		perRealization[r] = moments

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Merge in realization order, then average.
	raw := make([]float64, p.Moments)
	mu1 := make([]float64, 0, p.Realizations)
	for _, moments := range perRealization {
		floats.Add(raw, moments)
		mu1 = append(mu1, moments[1])
	}
	floats.Scale(1/float64(p.Realizations), raw)

	if err = checkFinite(raw); err != nil {
		log.Warn().Msg("non-finite moment in averaged sequence")

		return nil, err
	}

	damped := make([]float64, p.Moments)
	copy(damped, raw)
	floats.Mul(damped, dampingFactors(o.kernel, p.Moments, o.lorentzLambda))

	eMin, eMax := h.Bounds()
	log.Debug().Float64("mu0", raw[0]).Float64("mu1", raw[1]).Msg("dos run complete")

	return &DOSResult{
		Raw:        raw,
		Moments:    damped,
		Mu1Samples: mu1,
		EMin:       eMin,
		EMax:       eMax,
	}, nil
}

// dosRealization runs one probe through the full K-moment recursion and
// returns its real moment sequence.
func dosRealization(h operator.Hamiltonian, p Params, o Options, lay *statevec.Layout, r int) ([]float64, error) {
	phi0, err := statevec.NewFromLayout(lay)
	if err != nil {
		return nil, err
	}
	if err = o.prepareProbe(r, p.Seed, phi0); err != nil {
		return nil, err
	}

	t0, err := statevec.Clone(phi0)
	if err != nil {
		return nil, err
	}
	t1, err := statevec.NewFromLayout(lay)
	if err != nil {
		return nil, err
	}
	t2, err := statevec.NewFromLayout(lay)
	if err != nil {
		return nil, err
	}
	if err = h.Apply(phi0, t1); err != nil {
		return nil, err
	}

	// One block of chunk partials per moment; a single stage-two reduction
	// collapses the whole realization at the end.
	partials, err := statevec.New(p.Moments*lay.Workers, lay)
	if err != nil {
		return nil, err
	}
	momVec, err := statevec.New(p.Moments, lay)
	if err != nil {
		return nil, err
	}

	if err = phi0.InnerProduct1(t0, partials, 0); err != nil {
		return nil, err
	}
	if err = phi0.InnerProduct1(t1, partials, 1); err != nil {
		return nil, err
	}
	for k := 2; k < p.Moments; k++ {
		// T_k = 2·H̃·T_{k-1} − T_{k-2}, then rotate by swap.
		if err = h.Apply(t1, t2); err != nil {
			return nil, err
		}
		t2.Scale(2)
		if err = t2.Add(t0, -1); err != nil {
			return nil, err
		}
		if err = phi0.InnerProduct1(t2, partials, k); err != nil {
			return nil, err
		}
		if err = t0.Swap(t1); err != nil {
			return nil, err
		}
		if err = t1.Swap(t2); err != nil {
			return nil, err
		}
	}

	if err = partials.InnerProduct2(momVec); err != nil {
		return nil, err
	}
	re := make([]float64, p.Moments)
	im := make([]float64, p.Moments)
	if err = momVec.CopyToHost(re, im); err != nil {
		return nil, err
	}

	// ⟨φ|T_k(H̃)|φ⟩ is real for Hermitian H̃; the imaginary residue is
	// floating-point noise and is dropped.
	return re, nil
}
