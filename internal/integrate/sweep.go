package integrate

import (
	"context"
	"sync"

	"github.com/san-kum/odelab/internal/odecore"
)

// SweepResult is the outcome of one step size in a sweep.
type SweepResult struct {
	Dt   float64
	Traj *odecore.Trajectory
	Err  error
}

// Sweep runs the same problem at each step size concurrently, one
// goroutine per dt. Steppers carry per-run state (the implicit scheme
// caches its factorization), so each run gets a fresh instance from the
// factory; trajectories are likewise independently owned. Results are
// ordered as the input step sizes.
func Sweep(ctx context.Context, rhs odecore.RightHandSide, y0 odecore.State, cfg odecore.Config, dts []float64, newStepper func() odecore.Stepper) []SweepResult {
	results := make([]SweepResult, len(dts))

	var wg sync.WaitGroup
	for i, dt := range dts {
		wg.Add(1)
		go func(idx int, dt float64) {
			defer wg.Done()

			runCfg := cfg
			runCfg.Dt = dt

			traj, err := Run(ctx, rhs, y0, runCfg, newStepper())
			results[idx] = SweepResult{Dt: dt, Traj: traj, Err: err}
		}(i, dt)
	}
	wg.Wait()

	return results
}
