package operator

import "github.com/katalvlaran/qkpm/statevec"

// CSR is a compressed-sparse-row complex operator: row i owns the nonzero
// range rowPtr[i]..rowPtr[i+1], each nonzero carrying a column index, a
// complex value, and optionally the hopping displacement x_col − x_row
// along the transport direction. One lattice description thus serves the
// plain apply, the velocity apply and the position-commutator apply.
//
// A CSR is immutable for the duration of a run: configure it fully
// (displacements, bounds) before handing it to a driver, then only read.
// Apply never mutates the matrix, so one CSR is safely shared across all
// realizations and steps.
type CSR struct {
	n      int
	rowPtr []int
	colIdx []int
	valRe  []float64
	valIm  []float64
	dx     []float64

	eMin, eMax float64
}

// NewCSR validates the sparse structure and builds a CSR operator.
// rowPtr must have length n+1, be non-decreasing, start at 0 and end at
// the nonzero count; colIdx/valRe (and valIm, if non-nil) must all have
// that count, with every column index inside [0,n).
//
// valIm==nil denotes a purely real matrix. Spectral bounds default to
// [-1,1], i.e. an operator already in the Chebyshev domain; call SetBounds
// when the raw spectrum is wider and wrap with Scaled.
func NewCSR(rowPtr, colIdx []int, valRe, valIm []float64) (*CSR, error) {
	n := len(rowPtr) - 1
	if n < 1 {
		return nil, ErrBadStructure
	}
	nnz := len(colIdx)
	if rowPtr[0] != 0 || rowPtr[n] != nnz || len(valRe) != nnz {
		return nil, ErrBadStructure
	}
	if valIm != nil && len(valIm) != nnz {
		return nil, ErrBadStructure
	}
	for i := 0; i < n; i++ {
		if rowPtr[i] > rowPtr[i+1] {
			return nil, ErrBadStructure
		}
	}
	for _, j := range colIdx {
		if j < 0 || j >= n {
			return nil, ErrBadStructure
		}
	}

	return &CSR{
		n:      n,
		rowPtr: rowPtr,
		colIdx: colIdx,
		valRe:  valRe,
		valIm:  valIm,
		eMin:   -1,
		eMax:   1,
	}, nil
}

// SetDisplacements attaches per-nonzero hopping displacements
// dx[k] = x_colIdx[k] − x_row(k), enabling ApplyVelocity and
// ApplyCommutator. len(dx) must equal the nonzero count.
func (c *CSR) SetDisplacements(dx []float64) error {
	if len(dx) != len(c.colIdx) {
		return ErrBadStructure
	}
	c.dx = dx

	return nil
}

// SetBounds records the raw spectral interval reported by Bounds.
func (c *CSR) SetBounds(eMin, eMax float64) error {
	if !(eMin < eMax) {
		return ErrBadBounds
	}
	c.eMin, c.eMax = eMin, eMax

	return nil
}

// Dim returns the Hilbert-space dimension.
func (c *CSR) Dim() int { return c.n }

// Bounds returns the recorded raw spectral interval.
func (c *CSR) Bounds() (float64, float64) { return c.eMin, c.eMax }

// Apply computes dst = H·src, rows partitioned across the destination
// layout's workers. Row ranges are disjoint, so chunk writes never race.
func (c *CSR) Apply(src, dst *statevec.Vector) error {
	if err := checkDims(c.n, src, dst); err != nil {
		return err
	}
	sr, si := src.Re(), src.Im()
	dr, di := dst.Re(), dst.Im()
	statevec.ParallelRange(c.n, dst.Layout().Workers, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			var ar, ai float64
			for k := c.rowPtr[i]; k < c.rowPtr[i+1]; k++ {
				j := c.colIdx[k]
				vr := c.valRe[k]
				ar += vr * sr[j]
				ai += vr * si[j]
				if c.valIm != nil {
					vi := c.valIm[k]
					ar -= vi * si[j]
					ai += vi * sr[j]
				}
			}
			dr[i] = ar
			di[i] = ai
		}
	})

	return nil
}

// ApplyVelocity computes dst = v·src with v = i[H,X]:
// (v·φ)_i = Σ_k i·dx_k·H_ik·φ_k. Requires SetDisplacements.
func (c *CSR) ApplyVelocity(src, dst *statevec.Vector) error {
	return c.weightedApply(src, dst, true)
}

// ApplyCommutator computes dst = [X,H]·src:
// ([X,H]·φ)_i = −Σ_k dx_k·H_ik·φ_k. Requires SetDisplacements.
func (c *CSR) ApplyCommutator(src, dst *statevec.Vector) error {
	return c.weightedApply(src, dst, false)
}

// weightedApply is the shared displacement-weighted kernel. velocity=true
// multiplies each nonzero by i·dx (velocity operator), velocity=false by
// −dx (position commutator).
func (c *CSR) weightedApply(src, dst *statevec.Vector, velocity bool) error {
	if c.dx == nil {
		return ErrUnsupported
	}
	if err := checkDims(c.n, src, dst); err != nil {
		return err
	}
	sr, si := src.Re(), src.Im()
	dr, di := dst.Re(), dst.Im()
	statevec.ParallelRange(c.n, dst.Layout().Workers, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			var ar, ai float64
			for k := c.rowPtr[i]; k < c.rowPtr[i+1]; k++ {
				j := c.colIdx[k]
				vr := c.valRe[k]
				vi := 0.0
				if c.valIm != nil {
					vi = c.valIm[k]
				}
				// complex product h·φ_j for this nonzero
				pr := vr*sr[j] - vi*si[j]
				pi := vr*si[j] + vi*sr[j]
				if velocity {
					// i·dx·(pr + i·pi) = dx·(−pi + i·pr)
					ar -= c.dx[k] * pi
					ai += c.dx[k] * pr
				} else {
					ar -= c.dx[k] * pr
					ai -= c.dx[k] * pi
				}
			}
			dr[i] = ar
			di[i] = ai
		}
	})

	return nil
}
