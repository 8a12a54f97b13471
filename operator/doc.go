// Package operator defines the Hamiltonian collaborator surface the KPM
// drivers consume, plus reference implementations for tests and small
// systems.
//
// The drivers never construct or serialize a Hamiltonian themselves: they
// only need a sparse-operator-apply capability and the raw spectral bounds
// used to map energies back out of the Chebyshev domain. Any type
// satisfying Hamiltonian plugs in; lattices of millions of sites live in
// caller code.
//
// Chebyshev stability requires the operator's spectrum inside [-1,1].
// Wrap a raw operator with Scaled(op, eMin, eMax) to apply the standard
// affine rescaling (H-c)/s with c the band center and s the half-width;
// widen the bounds slightly if they are estimates, since eigenvalues
// leaking outside [-1,1] make the recursion diverge.
//
// Included reference operators:
//   - CSR      — compressed-sparse-row complex operator with optional
//     per-nonzero displacements, enabling velocity and position-commutator
//     applies from the same lattice description
//   - Dense    — gonum/mat-backed dense operator for small systems
//   - Diagonal — eigenbasis operator with exact spectra, for analytic tests
package operator
