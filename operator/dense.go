package operator

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/qkpm/statevec"
)

// Dense is a gonum-backed dense complex operator H = HRe + i·HIm acting on
// split re/im state vectors. Intended for small reference systems and
// cross-checks against exact diagonalization; large lattices belong in CSR.
type Dense struct {
	n          int
	hre, him   *mat.Dense
	eMin, eMax float64
}

// NewDense wraps the real and imaginary parts of an n×n matrix. him==nil
// denotes a purely real operator. Bounds default to [-1,1] as in NewCSR.
func NewDense(hre, him *mat.Dense) (*Dense, error) {
	if hre == nil {
		return nil, ErrNilOperator
	}
	r, c := hre.Dims()
	if r != c || r < 1 {
		return nil, ErrBadStructure
	}
	if him != nil {
		ir, ic := him.Dims()
		if ir != r || ic != c {
			return nil, ErrBadStructure
		}
	}

	return &Dense{n: r, hre: hre, him: him, eMin: -1, eMax: 1}, nil
}

// SetBounds records the raw spectral interval reported by Bounds.
func (d *Dense) SetBounds(eMin, eMax float64) error {
	if !(eMin < eMax) {
		return ErrBadBounds
	}
	d.eMin, d.eMax = eMin, eMax

	return nil
}

// Dim returns the Hilbert-space dimension.
func (d *Dense) Dim() int { return d.n }

// Bounds returns the recorded raw spectral interval.
func (d *Dense) Bounds() (float64, float64) { return d.eMin, d.eMax }

// Apply computes dst = H·src by four real matrix-vector products:
//
//	re(dst) = HRe·re(src) − HIm·im(src)
//	im(dst) = HRe·im(src) + HIm·re(src)
func (d *Dense) Apply(src, dst *statevec.Vector) error {
	if err := checkDims(d.n, src, dst); err != nil {
		return err
	}
	xr := mat.NewVecDense(d.n, src.Re())
	xi := mat.NewVecDense(d.n, src.Im())

	var rr, ri mat.VecDense
	rr.MulVec(d.hre, xr)
	ri.MulVec(d.hre, xi)

	if d.him == nil {
		copy(dst.Re(), rr.RawVector().Data)
		copy(dst.Im(), ri.RawVector().Data)

		return nil
	}

	var ir, ii mat.VecDense
	ir.MulVec(d.him, xr)
	ii.MulVec(d.him, xi)

	floats.SubTo(dst.Re(), rr.RawVector().Data, ii.RawVector().Data)
	floats.AddTo(dst.Im(), ri.RawVector().Data, ir.RawVector().Data)

	return nil
}
