package operator

import "github.com/katalvlaran/qkpm/statevec"

// Diagonal is an eigenbasis operator: Apply multiplies entry i by the real
// eigenvalue eigs[i]. Its spectrum is known exactly, which makes it the
// reference collaborator for closed-form driver checks (a delta-DOS at a
// known eigenvalue, scalar Chebyshev values on N=1, ...).
type Diagonal struct {
	eigs       []float64
	eMin, eMax float64
}

// NewDiagonal builds a Diagonal from its eigenvalue list and records the
// exact spectral bounds. Eigenvalues must already lie inside [-1,1];
// wider spectra go through Scaled like any other operator.
func NewDiagonal(eigs []float64) (*Diagonal, error) {
	if len(eigs) < 1 {
		return nil, ErrBadStructure
	}
	lo, hi := eigs[0], eigs[0]
	for _, e := range eigs[1:] {
		if e < lo {
			lo = e
		}
		if e > hi {
			hi = e
		}
	}
	if lo == hi {
		// Degenerate single-point spectrum still needs a proper interval
		// for energy back-mapping.
		lo, hi = lo-1, hi+1
		if lo < -1 {
			lo = -1
		}
		if hi > 1 {
			hi = 1
		}
	}

	return &Diagonal{eigs: eigs, eMin: lo, eMax: hi}, nil
}

// Dim returns the Hilbert-space dimension.
func (d *Diagonal) Dim() int { return len(d.eigs) }

// Bounds returns the exact spectral interval.
func (d *Diagonal) Bounds() (float64, float64) { return d.eMin, d.eMax }

// Apply computes dst_i = eigs_i · src_i.
func (d *Diagonal) Apply(src, dst *statevec.Vector) error {
	if err := checkDims(len(d.eigs), src, dst); err != nil {
		return err
	}
	sr, si := src.Re(), src.Im()
	dr, di := dst.Re(), dst.Im()
	statevec.ParallelRange(len(d.eigs), dst.Layout().Workers, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			dr[i] = d.eigs[i] * sr[i]
			di[i] = d.eigs[i] * si[i]
		}
	})

	return nil
}
