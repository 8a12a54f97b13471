// Package kpm implements the Kernel Polynomial Method drivers: stochastic
// estimation of spectral and transport observables of a tight-binding
// Hamiltonian by Chebyshev polynomial expansion.
//
// 🚀 What the drivers compute:
//   - DOS — density of states, from Chebyshev moments μ_k = ⟨φ|T_k(H̃)|φ⟩
//     averaged over random-phase probes φ, damped by a KPM kernel
//   - VAC — velocity autocorrelation Re⟨v·φ(t)|v|φ(t)⟩, with quantum time
//     evolution U(dt) expanded in Chebyshev polynomials (Bessel weights)
//   - MSD — mean-squared displacement ⟨φx(t)|φx(t)⟩ of the commutator
//     state φx(t) = [X,U(t)]·φ, propagated alongside the primary state
//
// All three share one skeleton: per independent realization, generate a
// probe, run the three-term recursion T_k = 2·H̃·T_{k-1} − T_{k-2} with
// O(1) buffer rotation, reduce against the probe, then average.
//
// ⚙️ Usage:
//
//	p := kpm.Params{Moments: 2048, Realizations: 8, Seed: 42}
//	res, err := kpm.DOS(h, p, kpm.WithKernel(kpm.Jackson))
//	curve, err := res.Reconstruct(energies)
//
// Determinism: a fixed Params.Seed yields identical probes regardless of
// WithConcurrency — every realization derives its own SplitMix64 stream.
// Floating-point reductions still reorder with the partition width, so
// equality holds only within tolerance.
//
// Failure semantics: dimension or allocation errors abort the whole run;
// a NaN/Inf appearing in any accumulated observable surfaces as
// ErrNumericAnomaly. No partial or silently-biased observable is ever
// returned.
package kpm
