package kpm

import (
	"math"

	"github.com/katalvlaran/qkpm/operator"
	"github.com/katalvlaran/qkpm/statevec"
)

// evolutionCoeffs returns the Chebyshev expansion of the evolution
// operator over one step,
//
//	U(dt) = e^{-i·H̃·dt} = Σ_k c_k·T_k(H̃),  c_k = (2−δ_{k0})·(−i)^k·J_k(dt),
//
// truncated once two consecutive Bessel weights fall below tol (J_k decays
// super-exponentially past k ≈ dt) or maxOrder is hit.
func evolutionCoeffs(dt, tol float64, maxOrder int) []complex128 {
	// (−i)^k cycles with period 4.
	cycle := [4]complex128{1, -1i, -1, 1i}
	coeffs := []complex128{complex(math.J0(dt), 0)}
	below := 0
	for k := 1; k < maxOrder; k++ {
		jk := math.Jn(k, dt)
		coeffs = append(coeffs, 2*cycle[k%4]*complex(jk, 0))
		if math.Abs(jk) < tol {
			below++
			if below >= 2 && float64(k) > dt {
				break
			}
		} else {
			below = 0
		}
	}

	return coeffs
}

// evolver applies one U(dt) step in place, owning a fixed triple of
// recursion buffers plus one accumulator; buffers rotate by swap, so no
// step allocates.
type evolver struct {
	h      operator.Operator
	coeffs []complex128

	t0, t1, t2, acc *statevec.Vector
}

func newEvolver(h operator.Operator, dt float64, o Options, lay *statevec.Layout) (*evolver, error) {
	e := &evolver{h: h, coeffs: evolutionCoeffs(dt, o.evolveTol, o.maxOrder)}
	var err error
	for _, slot := range []**statevec.Vector{&e.t0, &e.t1, &e.t2, &e.acc} {
		if *slot, err = statevec.NewFromLayout(lay); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// step replaces v with U(dt)·v.
func (e *evolver) step(v *statevec.Vector) error {
	if err := e.acc.Copy(v); err != nil {
		return err
	}
	e.acc.Scale(e.coeffs[0])
	if err := e.t0.Copy(v); err != nil {
		return err
	}
	if err := e.h.Apply(e.t0, e.t1); err != nil {
		return err
	}
	if err := e.acc.Add(e.t1, e.coeffs[1]); err != nil {
		return err
	}
	for k := 2; k < len(e.coeffs); k++ {
		// T_k = 2·H̃·T_{k-1} − T_{k-2}
		if err := e.h.Apply(e.t1, e.t2); err != nil {
			return err
		}
		e.t2.Scale(2)
		if err := e.t2.Add(e.t0, -1); err != nil {
			return err
		}
		if err := e.acc.Add(e.t2, e.coeffs[k]); err != nil {
			return err
		}
		if err := e.t0.Swap(e.t1); err != nil {
			return err
		}
		if err := e.t1.Swap(e.t2); err != nil {
			return err
		}
	}

	return v.Swap(e.acc)
}

// pairEvolver advances the MSD pair (φ, φx) by one step:
//
//	φ(t+dt)  = U·φ(t)
//	φx(t+dt) = U·φx(t) + [X,U]·φ(t)
//
// using the commutator recursion q_k = [X,T_k(H̃)]·φ:
//
//	q_0 = 0,  q_1 = C·φ,  q_k = 2·(C·p_{k-1} + H̃·q_{k-1}) − q_{k-2}
//
// with C = [X,H̃] and p_k = T_k(H̃)·φ, so that [X,U]·φ = Σ_k c_k·q_k.
type pairEvolver struct {
	h      operator.Operator
	cm     operator.CommutatorApplier
	coeffs []complex128

	p0, p1, p2 *statevec.Vector // T_k(H̃)·φ
	u0, u1, u2 *statevec.Vector // T_k(H̃)·φx
	q0, q1, q2 *statevec.Vector // [X,T_k(H̃)]·φ
	accP, accX *statevec.Vector
	tmp        *statevec.Vector
}

func newPairEvolver(h operator.Operator, cm operator.CommutatorApplier, dt float64, o Options, lay *statevec.Layout) (*pairEvolver, error) {
	e := &pairEvolver{h: h, cm: cm, coeffs: evolutionCoeffs(dt, o.evolveTol, o.maxOrder)}
	var err error
	slots := []**statevec.Vector{
		&e.p0, &e.p1, &e.p2,
		&e.u0, &e.u1, &e.u2,
		&e.q0, &e.q1, &e.q2,
		&e.accP, &e.accX, &e.tmp,
	}
	for _, slot := range slots {
		if *slot, err = statevec.NewFromLayout(lay); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// step advances phi and phix in place by one time step.
func (e *pairEvolver) step(phi, phix *statevec.Vector) error {
	c := e.coeffs

	// Order 0: p_0 = φ, u_0 = φx, q_0 = 0.
	if err := e.p0.Copy(phi); err != nil {
		return err
	}
	if err := e.u0.Copy(phix); err != nil {
		return err
	}
	e.q0.Zero()
	if err := e.accP.Copy(phi); err != nil {
		return err
	}
	e.accP.Scale(c[0])
	if err := e.accX.Copy(phix); err != nil {
		return err
	}
	e.accX.Scale(c[0])

	// Order 1: p_1 = H̃·φ, u_1 = H̃·φx, q_1 = C·φ.
	if err := e.h.Apply(e.p0, e.p1); err != nil {
		return err
	}
	if err := e.h.Apply(e.u0, e.u1); err != nil {
		return err
	}
	if err := e.cm.ApplyCommutator(e.p0, e.q1); err != nil {
		return err
	}
	if err := e.accP.Add(e.p1, c[1]); err != nil {
		return err
	}
	if err := e.accX.Add(e.u1, c[1]); err != nil {
		return err
	}
	if err := e.accX.Add(e.q1, c[1]); err != nil {
		return err
	}

	for k := 2; k < len(c); k++ {
		// p_k = 2·H̃·p_{k-1} − p_{k-2}
		if err := e.h.Apply(e.p1, e.p2); err != nil {
			return err
		}
		e.p2.Scale(2)
		if err := e.p2.Add(e.p0, -1); err != nil {
			return err
		}
		// q_k = 2·(C·p_{k-1} + H̃·q_{k-1}) − q_{k-2}
		if err := e.cm.ApplyCommutator(e.p1, e.q2); err != nil {
			return err
		}
		if err := e.h.Apply(e.q1, e.tmp); err != nil {
			return err
		}
		if err := e.q2.Add(e.tmp, 1); err != nil {
			return err
		}
		e.q2.Scale(2)
		if err := e.q2.Add(e.q0, -1); err != nil {
			return err
		}
		// u_k = 2·H̃·u_{k-1} − u_{k-2}
		if err := e.h.Apply(e.u1, e.u2); err != nil {
			return err
		}
		e.u2.Scale(2)
		if err := e.u2.Add(e.u0, -1); err != nil {
			return err
		}

		if err := e.accP.Add(e.p2, c[k]); err != nil {
			return err
		}
		if err := e.accX.Add(e.u2, c[k]); err != nil {
			return err
		}
		if err := e.accX.Add(e.q2, c[k]); err != nil {
			return err
		}

		for _, pair := range [][2]*statevec.Vector{{e.p0, e.p1}, {e.p1, e.p2}, {e.u0, e.u1}, {e.u1, e.u2}, {e.q0, e.q1}, {e.q1, e.q2}} {
			if err := pair[0].Swap(pair[1]); err != nil {
				return err
			}
		}
	}

	if err := phi.Swap(e.accP); err != nil {
		return err
	}

	return phix.Swap(e.accX)
}
