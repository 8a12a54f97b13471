package statevec

import (
	"errors"
	"math"
	"runtime"
)

var (
	// ErrAllocation indicates the requested buffer size cannot be backed by
	// addressable memory. Fatal: the run must abort, never degrade.
	ErrAllocation = errors.New("statevec: buffer allocation impossible")

	// ErrBadDimension indicates a non-positive dimension was requested.
	ErrBadDimension = errors.New("statevec: dimension must be >= 1")

	// ErrDimensionMismatch indicates operands of a binary operation disagree
	// in length. This is a caller defect and is never silently tolerated.
	ErrDimensionMismatch = errors.New("statevec: dimension mismatch")

	// ErrNilVector indicates a nil *Vector operand.
	ErrNilVector = errors.New("statevec: nil vector")

	// ErrNilLayout indicates a nil *Layout was passed to a constructor.
	ErrNilLayout = errors.New("statevec: nil layout")

	// ErrPartialShape indicates the partial-sum vector handed to the
	// two-phase inner product has the wrong length for the layout's
	// partition width.
	ErrPartialShape = errors.New("statevec: partial-sum vector shape mismatch")
)

// maxDim bounds a single buffer so that 2*n float64 words stay addressable.
const maxDim = math.MaxInt / 16

// Residency tags where a vector's buffers live. The engine computes on
// Device vectors; HostView vectors borrow caller-owned buffers and exist
// only for staging and I/O.
type Residency int

const (
	// Device marks engine-owned buffers, safe for arithmetic kernels.
	Device Residency = iota

	// HostView marks borrowed caller buffers. The vector does not own the
	// underlying storage; its lifetime is bounded by the caller's.
	HostView
)

// Layout is the immutable metadata handle shared by every vector of one
// Hilbert space: the dimension N and the parallel partition width. It is
// a non-owning back-reference, never an ownership relation — the Layout
// must outlive all vectors constructed from it.
type Layout struct {
	// N is the Hilbert-space dimension.
	N int

	// Workers is the number of contiguous chunks elementwise kernels and
	// stage-one reductions are partitioned into. It is also the number of
	// partial sums InnerProduct1 emits per offset.
	Workers int
}

// NewLayout validates and builds a Layout. workers==0 selects
// runtime.NumCPU(); n must be >= 1.
func NewLayout(n, workers int) (*Layout, error) {
	if n < 1 {
		return nil, ErrBadDimension
	}
	if n > maxDim {
		return nil, ErrAllocation
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	return &Layout{N: n, Workers: workers}, nil
}
