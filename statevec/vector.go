package statevec

// Vector is one complex state vector: two equal-length float64 buffers
// (real and imaginary parts) plus a residency tag and a back-reference to
// the shared Layout. The two buffers always have identical length and
// identical lifetime; no operation ever exposes a partially-initialized
// vector to a reduction.
type Vector struct {
	n      int
	re, im []float64
	res    Residency
	layout *Layout
}

// New allocates a zero-initialized Device vector of dimension n. The
// dimension may differ from layout.N: partial-sum and moment vectors are
// sized by recursion depth, not by the Hilbert space.
func New(n int, layout *Layout) (*Vector, error) {
	if layout == nil {
		return nil, ErrNilLayout
	}
	if n < 1 {
		return nil, ErrBadDimension
	}
	if n > maxDim {
		return nil, ErrAllocation
	}

	return &Vector{
		n:      n,
		re:     make([]float64, n),
		im:     make([]float64, n),
		res:    Device,
		layout: layout,
	}, nil
}

// NewFromLayout allocates a zero-initialized Device vector of the
// Hilbert-space dimension layout.N.
func NewFromLayout(layout *Layout) (*Vector, error) {
	if layout == nil {
		return nil, ErrNilLayout
	}

	return New(layout.N, layout)
}

// Clone deep-copies src into newly owned Device storage. The clone is
// independent thereafter.
func Clone(src *Vector) (*Vector, error) {
	if src == nil {
		return nil, ErrNilVector
	}
	v, err := New(src.n, src.layout)
	if err != nil {
		return nil, err
	}
	copy(v.re, src.re)
	copy(v.im, src.im)

	return v, nil
}

// NewFromHost builds a vector whose initial content comes from caller-owned
// host buffers of exactly layout.N elements each.
//
// With res==Device the content is copied into newly owned storage and the
// caller keeps ownership of its buffers. With res==HostView the vector
// borrows the buffers directly (staging/I/O paths only); the caller must
// keep them alive and must not resize them.
func NewFromHost(hostRe, hostIm []float64, layout *Layout, res Residency) (*Vector, error) {
	if layout == nil {
		return nil, ErrNilLayout
	}
	if len(hostRe) != layout.N || len(hostIm) != layout.N {
		return nil, ErrDimensionMismatch
	}
	if res == HostView {
		return &Vector{n: layout.N, re: hostRe, im: hostIm, res: HostView, layout: layout}, nil
	}
	v, err := New(layout.N, layout)
	if err != nil {
		return nil, err
	}
	copy(v.re, hostRe)
	copy(v.im, hostIm)

	return v, nil
}

// Dim returns the vector's dimension.
func (v *Vector) Dim() int { return v.n }

// Residency reports where the vector's buffers live.
func (v *Vector) Residency() Residency { return v.res }

// Layout returns the shared metadata handle the vector was built against.
func (v *Vector) Layout() *Layout { return v.layout }

// Re exposes the real-part buffer for operator backends. The slice must be
// read/written in place only; its length must never change.
func (v *Vector) Re() []float64 { return v.re }

// Im exposes the imaginary-part buffer under the same contract as Re.
func (v *Vector) Im() []float64 { return v.im }

// Copy overwrites v's contents with other's. Same-dimension precondition.
func (v *Vector) Copy(other *Vector) error {
	if other == nil {
		return ErrNilVector
	}
	if v.n != other.n {
		return ErrDimensionMismatch
	}
	copy(v.re, other.re)
	copy(v.im, other.im)

	return nil
}

// CopyFromHost stages exactly n real and n imaginary values from
// caller-owned host buffers into v's storage.
func (v *Vector) CopyFromHost(hostRe, hostIm []float64) error {
	if len(hostRe) != v.n || len(hostIm) != v.n {
		return ErrDimensionMismatch
	}
	copy(v.re, hostRe)
	copy(v.im, hostIm)

	return nil
}

// CopyToHost stages v's contents out into caller-owned host buffers of
// exactly n elements each.
func (v *Vector) CopyToHost(hostRe, hostIm []float64) error {
	if len(hostRe) != v.n || len(hostIm) != v.n {
		return ErrDimensionMismatch
	}
	copy(hostRe, v.re)
	copy(hostIm, v.im)

	return nil
}

// Swap exchanges the underlying buffers of two same-dimension vectors in
// O(1) by handle exchange — the Chebyshev recursion rotates its triple
// through Swap instead of reallocating or copying.
func (v *Vector) Swap(other *Vector) error {
	if other == nil {
		return ErrNilVector
	}
	if v.n != other.n {
		return ErrDimensionMismatch
	}
	v.re, other.re = other.re, v.re
	v.im, other.im = other.im, v.im
	v.res, other.res = other.res, v.res

	return nil
}
