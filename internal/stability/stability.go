// Package stability classifies step-size/operator combinations for the
// forward and backward Euler schemes.
//
// For dy/dt = lambda*y a scheme multiplies the state by an
// amplification factor R(z) each step, z = lambda*dt. The scheme is
// stable when |R(z)| <= 1 for every eigenvalue of the operator:
//
//   - forward Euler:  R(z) = 1 + z, the unit disk centered at z = -1
//   - backward Euler: R(z) = 1/(1 - z), the complement of the unit disk
//     centered at z = +1; unconditionally stable for Re(lambda) <= 0
//
// Purely imaginary eigenvalues (undamped oscillation) therefore sit
// outside the forward Euler region for every dt > 0, which is why the
// explicit scheme blows up on oscillatory systems.
package stability

import (
	"math"
	"math/cmplx"
)

// Scheme selects the stepping scheme under analysis.
type Scheme int

const (
	ExplicitEuler Scheme = iota
	ImplicitEuler
)

func (s Scheme) String() string {
	switch s {
	case ExplicitEuler:
		return "explicit-euler"
	case ImplicitEuler:
		return "implicit-euler"
	default:
		return "unknown"
	}
}

// Amplification returns |R(lambda*dt)| for the scheme. Values above 1
// grow without bound over many steps.
func Amplification(scheme Scheme, lambda complex128, dt float64) float64 {
	z := lambda * complex(dt, 0)
	switch scheme {
	case ExplicitEuler:
		return cmplx.Abs(1 + z)
	case ImplicitEuler:
		denom := cmplx.Abs(1 - z)
		if denom == 0 {
			return math.Inf(1)
		}
		return 1 / denom
	default:
		return math.Inf(1)
	}
}

// IsStableEigen reports whether a single eigenvalue satisfies the
// scheme's stability criterion at step size dt.
func IsStableEigen(lambda complex128, dt float64, scheme Scheme) bool {
	return Amplification(scheme, lambda, dt) <= 1
}

// IsStable reports whether every eigenvalue satisfies the criterion;
// one unstable mode makes the whole scheme unstable.
func IsStable(eigs []complex128, dt float64, scheme Scheme) bool {
	for _, lam := range eigs {
		if !IsStableEigen(lam, dt, scheme) {
			return false
		}
	}
	return true
}

// MaxStableDt returns the largest step size keeping a real negative
// eigenvalue inside the forward Euler region (2/|lambda|), or +Inf when
// the mode imposes no bound. Eigenvalues off the negative real axis
// have no stable forward Euler step at all, reported as 0.
func MaxStableDt(lambda complex128, scheme Scheme) float64 {
	if scheme == ImplicitEuler {
		if real(lambda) <= 0 {
			return math.Inf(1)
		}
		return 0
	}
	if imag(lambda) != 0 || real(lambda) > 0 {
		return 0
	}
	if real(lambda) == 0 {
		return math.Inf(1)
	}
	return -2 / real(lambda)
}
