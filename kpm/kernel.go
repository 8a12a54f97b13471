package kpm

import "math"

// Kernel selects the damping factors g_k applied to the averaged moment
// sequence. Truncating a Chebyshev series at order K produces Gibbs
// oscillations; the kernel trades a controlled broadening for their
// suppression.
type Kernel int

const (
	// Jackson damping: optimal uniform suppression of Gibbs oscillations,
	// broadening ~ π/K. The default for DOS.
	Jackson Kernel = iota

	// Lorentz damping: e^{-λ|x|}-shaped resolvent broadening, preferred for
	// Green's-function-like quantities. Parametrized by λ.
	Lorentz

	// Dirichlet damping: no damping at all (g_k = 1). Raw truncated series,
	// useful for closed-form comparisons.
	Dirichlet
)

// dampingFactors returns g_0..g_{K-1} for the chosen kernel.
func dampingFactors(kind Kernel, moments int, lambda float64) []float64 {
	g := make([]float64, moments)
	switch kind {
	case Jackson:
		kp1 := float64(moments) + 1
		cot := math.Cos(math.Pi/kp1) / math.Sin(math.Pi/kp1)
		for k := 0; k < moments; k++ {
			a := math.Pi * float64(k) / kp1
			g[k] = ((kp1-float64(k))*math.Cos(a) + math.Sin(a)*cot) / kp1
		}
	case Lorentz:
		den := math.Sinh(lambda)
		for k := 0; k < moments; k++ {
			g[k] = math.Sinh(lambda*(1-float64(k)/float64(moments))) / den
		}
	default:
		for k := range g {
			g[k] = 1
		}
	}

	return g
}
