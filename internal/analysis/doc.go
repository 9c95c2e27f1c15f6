// Package analysis provides accuracy and convergence diagnostics for
// integration runs.
//
//   - [AbsoluteError]: norm distance between a computed and a reference state
//   - [ConvergenceOrder]: scheme order from a log-log fit over step sizes
//   - [AmplitudeEnvelope]: per-period peaks of an oscillatory trajectory
//
// # Measuring scheme order
//
//	results := integrate.Sweep(ctx, rhs, y0, cfg, dts, newStepper)
//	errs := ... // final-value error per step size
//	order, err := analysis.ConvergenceOrder(dts, errs)
//
// The fit distinguishes global from local order: a first-order scheme
// has second-order local truncation error, and it is the global (end of
// interval) error that the slope reports.
package analysis
