package models

import (
	"github.com/san-kum/odelab/internal/odecore"
)

// Logistic is the nonlinear growth model dy/dt = r*y*(1 - y/K). It does
// not expose linear structure, so it works only with the explicit
// stepper; the implicit scheme rejects it.
type Logistic struct {
	R float64
	K float64
}

func NewLogistic(r, k float64) *Logistic {
	return &Logistic{R: r, K: k}
}

func (l *Logistic) Dim() int { return 1 }

func (l *Logistic) Evaluate(t float64, y odecore.State) odecore.State {
	return odecore.State{l.R * y[0] * (1 - y[0]/l.K)}
}
