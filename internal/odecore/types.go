package odecore

import (
	"math"
)

// State is the vector of unknowns being advanced in time. Copies are
// value-copies; no step aliases the buffer of a previous step.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsFinite reports whether every component is a finite number.
func (s State) IsFinite() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean norm.
func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] + other[i]
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] - other[i]
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

// RightHandSide evaluates f(t, y) for dy/dt = f(t, y).
type RightHandSide interface {
	Dim() int
	Evaluate(t float64, y State) State
}

// LinearSystem is the extra capability of an affine right-hand side
// f(t, y) = L*y + b. A stepper that must solve for the next state uses
// the exposed structure to form the update system directly instead of
// falling back to generic root-finding. The returned matrix and offset
// are immutable; callers must not modify them.
type LinearSystem interface {
	RightHandSide
	Matrix() Matrix
	Offset() State
}

// Matrix is the minimal square-matrix view a stepper needs from a
// linear right-hand side. gonum's mat.Matrix satisfies it.
type Matrix interface {
	Dims() (r, c int)
	At(i, j int) float64
}

// Stepper advances the state by one step of size dt.
type Stepper interface {
	Advance(rhs RightHandSide, t float64, y State, dt float64) (State, error)
}

// Config holds the fixed-grid time interval for one integration run.
type Config struct {
	T0          float64
	TF          float64
	Dt          float64
	CheckFinite bool
}

func DefaultConfig() Config {
	return Config{
		T0:          0,
		TF:          10.0,
		Dt:          0.01,
		CheckFinite: true,
	}
}

// Trajectory is the discrete solution on the grid t0 + i*dt. Index 0 is
// the initial condition; each Times[i] is computed from the integer step
// index, never by repeated float addition. On a failed run the samples
// produced before the failure remain valid.
type Trajectory struct {
	Times      []float64
	States     []State
	StepsTaken int
}

// Final returns the last computed sample.
func (tr *Trajectory) Final() (t float64, y State) {
	n := len(tr.States)
	if n == 0 {
		return 0, nil
	}
	return tr.Times[n-1], tr.States[n-1]
}

// Component extracts the time series of one state component, suitable
// for plotting layers.
func (tr *Trajectory) Component(i int) []float64 {
	out := make([]float64, len(tr.States))
	for k, s := range tr.States {
		out[k] = s[i]
	}
	return out
}
