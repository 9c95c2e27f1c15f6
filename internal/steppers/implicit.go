package steppers

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odelab/internal/linalg"
	"github.com/san-kum/odelab/internal/odecore"
)

// Implicit is the backward Euler scheme. The next state satisfies
// y' = y + dt*(L*y' + b), so each step solves
//
//	(I - dt*L) y' = y + dt*b.
//
// The system matrix depends only on dt and L, both invariant across a
// run, so the LU factorization is computed on the first Advance and
// reused for every subsequent step. The stepper refactorizes only when
// dt or the right-hand side identity changes, which makes a single
// instance unsafe for concurrent runs.
type Implicit struct {
	tol float64

	fact     *linalg.Factorization
	cachedDt float64
	cachedLS odecore.LinearSystem
}

func NewImplicit() *Implicit {
	return &Implicit{tol: linalg.DefaultRcondTol}
}

// NewImplicitTol overrides the singularity tolerance passed to the
// factorization.
func NewImplicitTol(tol float64) *Implicit {
	return &Implicit{tol: tol}
}

func (im *Implicit) Name() string { return "implicit-euler" }

func (im *Implicit) Advance(rhs odecore.RightHandSide, t float64, y odecore.State, dt float64) (odecore.State, error) {
	ls, ok := rhs.(odecore.LinearSystem)
	if !ok {
		return nil, fmt.Errorf("%w: %T", odecore.ErrNotLinear, rhs)
	}

	if im.fact == nil || dt != im.cachedDt || ls != im.cachedLS {
		fact, err := factorizeUpdate(ls, dt, im.tol)
		if err != nil {
			return nil, err
		}
		im.fact = fact
		im.cachedDt = dt
		im.cachedLS = ls
	}

	b := y.Clone()
	if offset := ls.Offset(); offset != nil {
		for i := range b {
			b[i] += dt * offset[i]
		}
	}
	return im.fact.Solve(b)
}

// factorizeUpdate builds and decomposes A = I - dt*L.
func factorizeUpdate(ls odecore.LinearSystem, dt, tol float64) (*linalg.Factorization, error) {
	l := ls.Matrix()
	n, _ := l.Dims()
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := -dt * l.At(i, j)
			if i == j {
				v++
			}
			a.Set(i, j, v)
		}
	}
	return linalg.Factorize(a, tol)
}
