package models

import (
	"github.com/san-kum/odelab/internal/linalg"
)

// NewDecay returns the scalar decay system dy/dt = -alpha*y. The exact
// solution is y0*exp(-alpha*t), which makes it the standard accuracy
// benchmark for first-order schemes.
func NewDecay(alpha float64) *linalg.Operator {
	return linalg.NewScalar(-alpha, 0)
}

// NewForcedDecay returns dy/dt = -alpha*y + source, an affine system
// with equilibrium source/alpha. The constant term exercises the offset
// path of the implicit update (I - dt*L) y' = y + dt*b.
func NewForcedDecay(alpha, source float64) *linalg.Operator {
	return linalg.NewScalar(-alpha, source)
}
