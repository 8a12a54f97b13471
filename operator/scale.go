package operator

import "github.com/katalvlaran/qkpm/statevec"

// scaled wraps a raw operator with the affine Chebyshev rescaling
// H̃ = (H - c)/s, c = (eMax+eMin)/2, s = (eMax-eMin)/2, and forwards the
// auxiliary applies (which scale by 1/s only: [X,c] = 0).
type scaled struct {
	inner      Operator
	eMin, eMax float64
	center     float64
	invHalf    float64
}

// Scaled adapts a raw operator with known (or safely over-estimated)
// spectral bounds into a Hamiltonian whose Apply acts inside [-1,1].
// Bounds reports the raw interval for energy back-mapping. If the bounds
// are estimates, widen them before wrapping — an eigenvalue outside the
// interval makes the Chebyshev recursion diverge.
func Scaled(op Operator, eMin, eMax float64) (Hamiltonian, error) {
	if op == nil {
		return nil, ErrNilOperator
	}
	if !(eMin < eMax) {
		return nil, ErrBadBounds
	}

	return &scaled{
		inner:   op,
		eMin:    eMin,
		eMax:    eMax,
		center:  (eMax + eMin) / 2,
		invHalf: 2 / (eMax - eMin),
	}, nil
}

func (s *scaled) Dim() int { return s.inner.Dim() }

func (s *scaled) Bounds() (float64, float64) { return s.eMin, s.eMax }

// Apply computes dst = (H·src - c·src)/s.
func (s *scaled) Apply(src, dst *statevec.Vector) error {
	if err := s.inner.Apply(src, dst); err != nil {
		return err
	}
	if s.center != 0 {
		if err := dst.Add(src, complex(-s.center, 0)); err != nil {
			return err
		}
	}
	dst.Scale(complex(s.invHalf, 0))

	return nil
}

// ApplyVelocity forwards to the wrapped operator and rescales by 1/s.
// The shift c commutes with X, so only the half-width enters.
func (s *scaled) ApplyVelocity(src, dst *statevec.Vector) error {
	va, ok := s.inner.(VelocityApplier)
	if !ok {
		return ErrUnsupported
	}
	if err := va.ApplyVelocity(src, dst); err != nil {
		return err
	}
	dst.Scale(complex(s.invHalf, 0))

	return nil
}

// ApplyCommutator forwards to the wrapped operator and rescales by 1/s.
func (s *scaled) ApplyCommutator(src, dst *statevec.Vector) error {
	ca, ok := s.inner.(CommutatorApplier)
	if !ok {
		return ErrUnsupported
	}
	if err := ca.ApplyCommutator(src, dst); err != nil {
		return err
	}
	dst.Scale(complex(s.invHalf, 0))

	return nil
}
