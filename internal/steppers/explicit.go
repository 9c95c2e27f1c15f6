package steppers

import (
	"github.com/san-kum/odelab/internal/odecore"
)

// Explicit is the forward Euler scheme: y' = y + dt*f(t, y). One
// right-hand-side evaluation per step, no allocation beyond the output
// vector, and no failure modes for finite inputs. It accepts any
// right-hand side, linear or not.
type Explicit struct{}

func NewExplicit() *Explicit {
	return &Explicit{}
}

func (e *Explicit) Name() string { return "explicit-euler" }

func (e *Explicit) Advance(rhs odecore.RightHandSide, t float64, y odecore.State, dt float64) (odecore.State, error) {
	dy := rhs.Evaluate(t, y)
	result := make(odecore.State, len(y))
	for i := range y {
		result[i] = y[i] + dt*dy[i]
	}
	return result, nil
}
