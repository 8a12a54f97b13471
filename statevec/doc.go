// Package statevec implements the complex state-vector primitive of the
// KPM engine: a pair of equal-length float64 buffers (real and imaginary
// parts) of fixed Hilbert-space dimension N, with chunk-parallel
// elementwise kernels and an explicit two-phase parallel inner product.
//
// ✨ Key features:
//   - split re/im storage — cache-friendly, SIMD-amenable, mirrors the
//     dual-buffer layout accelerator backends use
//   - residency tag (Device vs HostView) with explicit CopyFromHost /
//     CopyToHost staging — the only boundary for raw arrays in or out
//   - O(1) Swap — recursion buffers rotate by handle exchange, never by
//     elementwise copy
//   - two-phase inner product — InnerProduct1 writes per-chunk partial
//     sums, InnerProduct2 collapses them; the parallel decomposition
//     stays explicit and testable on its own
//   - deterministic random-phase fill for stochastic trace probes
//
// ⚙️ Usage:
//
//	lay, _ := statevec.NewLayout(1<<20, 0) // 0 workers ⇒ runtime.NumCPU
//	phi, _ := statevec.NewFromLayout(lay)
//	phi.FillRandomPhase(rng)
//	nrm, _ := phi.InnerProduct(phi)        // ⟨φ|φ⟩ == 1
//
// Numeric contract: reductions are plain additions over N terms; partial
// sums may be reordered across different worker counts, so results agree
// only within floating-point tolerance, never bit-for-bit.
//
// All binary operations require equal dimensions and fail with
// ErrDimensionMismatch before touching either operand.
package statevec
