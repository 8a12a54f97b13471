// Package qkpm is a linear-scaling quantum transport engine built on the
// Kernel Polynomial Method (KPM) — stochastic trace estimation combined
// with Chebyshev polynomial expansion of a tight-binding Hamiltonian.
//
// 🚀 What is qkpm?
//
//	A numerical engine that estimates spectral and transport observables
//	without ever diagonalizing the Hamiltonian:
//		• Density of states (DOS) via Chebyshev moments + damping kernels
//		• Velocity autocorrelation (VAC) via Chebyshev time evolution
//		• Mean-squared displacement (MSD) via commutator propagation
//
// ✨ Why choose qkpm?
//
//   - Linear scaling – cost grows with the number of Hamiltonian nonzeros,
//     not with N², so million-site lattices stay tractable
//   - Deterministic – fixed seed ⇒ identical random probes, even when
//     realizations run concurrently
//   - Pluggable operators – bring your own sparse-apply; CSR, dense
//     (gonum-backed) and diagonal reference operators included
//
// Everything is organized under three subpackages:
//
//	statevec/ — complex state vectors: split re/im buffers, chunk-parallel
//	            kernels, two-phase inner products, host staging
//	operator/ — Hamiltonian collaborator interfaces, spectral rescaling to
//	            [-1,1], and reference CSR/dense/diagonal operators
//	kpm/      — the DOS/VAC/MSD drivers: realization loop, moment
//	            accumulation, damping kernels, curve reconstruction
//
// Quick sketch of the core recurrence:
//
//	T₀ = φ,  T₁ = H·φ,  T_k = 2·H·T_{k-1} − T_{k-2}
//
// with moments μ_k = ⟨φ|T_k⟩ averaged over random-phase probes φ.
//
//	go get github.com/katalvlaran/qkpm
package qkpm
