package statevec

import "sync"

// ParallelRange partitions [0,n) into `workers` contiguous chunks and runs
// fn(chunk, lo, hi) concurrently, one goroutine per chunk, blocking until
// all chunks complete. workers<=1 (or tiny n) degrades to a sequential
// call. Operator backends reuse this helper so their apply kernels follow
// the same partition geometry as the vector kernels.
//
// Chunk boundaries depend only on (n, workers), so a fixed partition width
// yields a fixed summation order.
func ParallelRange(n, workers int, fn func(chunk, lo, hi int)) {
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, 0, n)

		return
	}

	size := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for c := 0; c < workers; c++ {
		lo := c * size
		hi := lo + size
		if lo >= n {
			break
		}
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(chunk, lo, hi int) {
			defer wg.Done()
			fn(chunk, lo, hi)
		}(c, lo, hi)
	}
	wg.Wait()
}

// chunks returns the partition width used by v's reductions.
func (v *Vector) chunks() int {
	w := v.layout.Workers
	if w > v.n {
		w = v.n
	}
	if w < 1 {
		w = 1
	}

	return w
}

// Add performs the in-place axpy  v += coeff·other  elementwise over both
// components. Mutates only v; other is read-only. coeff==1 gives a plain
// accumulate, coeff==-1 a subtract.
func (v *Vector) Add(other *Vector, coeff complex128) error {
	if other == nil {
		return ErrNilVector
	}
	if v.n != other.n {
		return ErrDimensionMismatch
	}
	cr, ci := real(coeff), imag(coeff)
	vr, vi := v.re, v.im
	or, oi := other.re, other.im
	ParallelRange(v.n, v.layout.Workers, func(_, lo, hi int) {
		if ci == 0 {
			for i := lo; i < hi; i++ {
				vr[i] += cr * or[i]
				vi[i] += cr * oi[i]
			}

			return
		}
		for i := lo; i < hi; i++ {
			vr[i] += cr*or[i] - ci*oi[i]
			vi[i] += cr*oi[i] + ci*or[i]
		}
	})

	return nil
}

// Scale multiplies v by the complex scalar s in place.
func (v *Vector) Scale(s complex128) {
	sr, si := real(s), imag(s)
	vr, vi := v.re, v.im
	ParallelRange(v.n, v.layout.Workers, func(_, lo, hi int) {
		if si == 0 {
			for i := lo; i < hi; i++ {
				vr[i] *= sr
				vi[i] *= sr
			}

			return
		}
		for i := lo; i < hi; i++ {
			r := sr*vr[i] - si*vi[i]
			vi[i] = sr*vi[i] + si*vr[i]
			vr[i] = r
		}
	})
}

// Zero resets every element of v to 0+0i.
func (v *Vector) Zero() {
	vr, vi := v.re, v.im
	ParallelRange(v.n, v.layout.Workers, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			vr[i] = 0
			vi[i] = 0
		}
	})
}

// InnerProduct1 is the unreduced stage of ⟨v|other⟩: each parallel chunk
// sums its share of the conjugate products conj(v)_i·other_i and writes
// one partial sum into target at index offset·chunks + chunk. Nothing is
// collapsed to a scalar yet — stage two does that.
//
// target must be a Device vector of length ≥ (offset+1)·chunks, shared
// across the offsets of one recursion (one block of partials per moment).
func (v *Vector) InnerProduct1(other, target *Vector, offset int) error {
	if other == nil || target == nil {
		return ErrNilVector
	}
	if v.n != other.n {
		return ErrDimensionMismatch
	}
	w := v.chunks()
	if offset < 0 || (offset+1)*w > target.n {
		return ErrPartialShape
	}
	vr, vi := v.re, v.im
	or, oi := other.re, other.im
	tr, ti := target.re, target.im
	base := offset * w
	// Uneven partitions may activate fewer than w chunks; clear the whole
	// block so unwritten slots cannot leak stale partials into stage two.
	for c := base; c < base+w; c++ {
		tr[c] = 0
		ti[c] = 0
	}
	ParallelRange(v.n, w, func(chunk, lo, hi int) {
		var sr, si float64
		for i := lo; i < hi; i++ {
			sr += vr[i]*or[i] + vi[i]*oi[i]
			si += vr[i]*oi[i] - vi[i]*or[i]
		}
		tr[base+chunk] = sr
		ti[base+chunk] = si
	})

	return nil
}

// InnerProduct2 finishes the reduction started by InnerProduct1: the
// receiver is the partial-sum vector, and each consecutive block of
// `chunks` entries collapses into one complex entry of target. The
// receiver's length must equal target.Dim()·chunks.
func (v *Vector) InnerProduct2(target *Vector) error {
	if target == nil {
		return ErrNilVector
	}
	w := target.layout.Workers
	if w < 1 {
		w = 1
	}
	if v.n != target.n*w {
		return ErrPartialShape
	}
	vr, vi := v.re, v.im
	tr, ti := target.re, target.im
	ParallelRange(target.n, target.layout.Workers, func(_, lo, hi int) {
		for m := lo; m < hi; m++ {
			var sr, si float64
			for c := m * w; c < (m+1)*w; c++ {
				sr += vr[c]
				si += vi[c]
			}
			tr[m] = sr
			ti[m] = si
		}
	})

	return nil
}

// InnerProduct composes the two reduction stages into a single scalar
// ⟨v|other⟩ = Σ conj(v)_i·other_i. Convenience path for per-step
// correlations; the moment recursion keeps the staged form to batch one
// reduction per realization.
func (v *Vector) InnerProduct(other *Vector) (complex128, error) {
	if other == nil {
		return 0, ErrNilVector
	}
	if v.n != other.n {
		return 0, ErrDimensionMismatch
	}
	w := v.chunks()
	pr := make([]float64, w)
	pi := make([]float64, w)
	vr, vi := v.re, v.im
	or, oi := other.re, other.im
	ParallelRange(v.n, w, func(chunk, lo, hi int) {
		var sr, si float64
		for i := lo; i < hi; i++ {
			sr += vr[i]*or[i] + vi[i]*oi[i]
			si += vr[i]*oi[i] - vi[i]*or[i]
		}
		pr[chunk] = sr
		pi[chunk] = si
	})
	var sr, si float64
	for c := 0; c < w; c++ {
		sr += pr[c]
		si += pi[c]
	}

	return complex(sr, si), nil
}

// Norm2 returns ⟨v|v⟩, the squared Euclidean norm. The imaginary part of
// the self inner product cancels exactly, so only the real part is summed.
func (v *Vector) Norm2() float64 {
	w := v.chunks()
	p := make([]float64, w)
	vr, vi := v.re, v.im
	ParallelRange(v.n, w, func(chunk, lo, hi int) {
		var s float64
		for i := lo; i < hi; i++ {
			s += vr[i]*vr[i] + vi[i]*vi[i]
		}
		p[chunk] = s
	})
	var s float64
	for c := 0; c < w; c++ {
		s += p[c]
	}

	return s
}
