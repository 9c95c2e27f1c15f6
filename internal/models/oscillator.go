package models

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odelab/internal/linalg"
)

// NewOscillator returns the undamped harmonic oscillator
//
//	x'' = -gamma^2 * x
//
// in first-order form over state (x, v):
//
//	L = [[0, 1], [-gamma^2, 0]]
//
// Its eigenvalues are +-i*gamma, purely imaginary, which puts it
// outside the forward Euler stability region for every step size.
func NewOscillator(gamma float64) *linalg.Operator {
	op, _ := linalg.NewOperator(mat.NewDense(2, 2, []float64{
		0, 1,
		-gamma * gamma, 0,
	}), nil)
	return op
}

// OscillatorPeriod returns the oscillation period 2*pi/gamma.
func OscillatorPeriod(gamma float64) float64 {
	return 2 * math.Pi / gamma
}
