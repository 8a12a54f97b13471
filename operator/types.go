package operator

import (
	"errors"

	"github.com/katalvlaran/qkpm/statevec"
)

var (
	// ErrNilOperator indicates a nil operator was handed to an adapter.
	ErrNilOperator = errors.New("operator: nil operator")

	// ErrDimensionMismatch indicates a vector's dimension disagrees with the
	// operator's.
	ErrDimensionMismatch = errors.New("operator: dimension mismatch")

	// ErrBadStructure indicates malformed sparse structure (row pointers,
	// column indices or value arrays that do not describe a valid matrix).
	ErrBadStructure = errors.New("operator: malformed sparse structure")

	// ErrBadBounds indicates spectral bounds with eMin >= eMax.
	ErrBadBounds = errors.New("operator: invalid spectral bounds")

	// ErrUnsupported indicates the wrapped operator does not expose the
	// requested auxiliary capability (velocity or commutator apply).
	ErrUnsupported = errors.New("operator: capability not supported")
)

// Operator is the minimal sparse-operator-apply capability:
// dst = A·src. Apply must not mutate src, must be repeatable, and must
// tolerate dst aliasing previously used recursion buffers — callers rotate
// buffers by swap, never by reallocation.
type Operator interface {
	// Dim returns the Hilbert-space dimension N.
	Dim() int

	// Apply computes dst = A·src for same-dimension vectors.
	Apply(src, dst *statevec.Vector) error
}

// Hamiltonian extends Operator with the raw spectral bounds of the
// unscaled physical operator. Apply is expected to act as the rescaled
// H̃ = (H-c)/s with spectrum inside [-1,1]; Bounds reports the raw
// [eMin,eMax] so drivers can map Chebyshev-domain energies back.
type Hamiltonian interface {
	Operator

	// Bounds returns the raw spectral interval [eMin, eMax].
	Bounds() (eMin, eMax float64)
}

// VelocityApplier is the auxiliary capability the VAC driver needs:
// dst = v·src with v = i[H,X] the velocity operator along the transport
// direction (in the same rescaled units as Apply).
type VelocityApplier interface {
	ApplyVelocity(src, dst *statevec.Vector) error
}

// CommutatorApplier is the auxiliary capability the MSD driver needs:
// dst = [X,H]·src, the position commutator that seeds wavepacket spread
// (same rescaled units as Apply).
type CommutatorApplier interface {
	ApplyCommutator(src, dst *statevec.Vector) error
}

// checkDims validates an apply pair against dimension n.
func checkDims(n int, src, dst *statevec.Vector) error {
	if src == nil || dst == nil {
		return statevec.ErrNilVector
	}
	if src.Dim() != n || dst.Dim() != n {
		return ErrDimensionMismatch
	}

	return nil
}
