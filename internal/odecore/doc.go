// Package odecore provides the core primitives for first-order time
// integration of ordinary differential equations.
//
// The package defines the fundamental interfaces and types shared by
// the steppers and the run driver:
//
//   - [State]: vector of unknowns being advanced
//   - [RightHandSide]: evaluates f(t, y) for dy/dt = f(t, y)
//   - [LinearSystem]: affine right-hand side exposing f(y) = L*y + b
//   - [Stepper]: one-step advance operation
//   - [Trajectory]: the discrete solution on a fixed time grid
//
// # Example
//
//	rhs := models.NewDecay(0.25)
//	step := steppers.NewExplicit()
//	traj, err := integrate.Run(rhs, odecore.State{100}, cfg, step)
//
// # Thread Safety
//
// A Stepper instance is NOT safe for concurrent use: the implicit
// stepper caches a matrix factorization across steps. Concurrent runs
// must each own their stepper, as [integrate.Sweep] does.
package odecore
