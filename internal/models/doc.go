// Package models provides concrete right-hand sides with known
// analytic behavior, used as integration benchmarks and CLI scenarios:
//
//   - [NewDecay]: scalar exponential decay, exact solution y0*e^(-at)
//   - [NewForcedDecay]: decay with a constant source (affine offset)
//   - [NewOscillator]: undamped harmonic oscillator, imaginary spectrum
//   - [Logistic]: nonlinear growth, explicit-only
package models
