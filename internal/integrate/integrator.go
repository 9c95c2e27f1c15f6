package integrate

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/odecore"
)

// StepCount returns the number of fixed steps covering [t0, tf] at dt:
// floor((tf-t0)/dt), with a small relative epsilon so that intervals
// that are an exact multiple of dt in real arithmetic (5/0.5 = 10) are
// not truncated by binary representation error. Times past
// t0 + StepCount*dt are not integrated.
func StepCount(t0, tf, dt float64) int {
	return int(math.Floor((tf-t0)/dt + 1e-9))
}

// Run drives the stepper across [cfg.T0, cfg.TF] on the fixed grid
// t0 + i*dt and returns the discrete trajectory. The grid time of each
// sample is computed from the integer step index, never by accumulating
// dt. A stepper failure or a non-finite state aborts the run; the
// samples produced so far are returned alongside the error.
func Run(ctx context.Context, rhs odecore.RightHandSide, y0 odecore.State, cfg odecore.Config, stepper odecore.Stepper) (*odecore.Trajectory, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt=%g", odecore.ErrInvalidStepSize, cfg.Dt)
	}
	if cfg.TF < cfg.T0 {
		return nil, fmt.Errorf("%w: tf=%g before t0=%g", odecore.ErrInvalidStepSize, cfg.TF, cfg.T0)
	}
	if len(y0) != rhs.Dim() {
		return nil, fmt.Errorf("%w: initial state has %d components, system dimension is %d", odecore.ErrDimensionMismatch, len(y0), rhs.Dim())
	}

	steps := StepCount(cfg.T0, cfg.TF, cfg.Dt)
	traj := &odecore.Trajectory{
		Times:  make([]float64, 0, steps+1),
		States: make([]odecore.State, 0, steps+1),
	}

	y := y0.Clone()
	traj.Times = append(traj.Times, cfg.T0)
	traj.States = append(traj.States, y.Clone())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return traj, ctx.Err()
		default:
		}

		t := cfg.T0 + float64(i)*cfg.Dt

		next, err := stepper.Advance(rhs, t, y, cfg.Dt)
		if err != nil {
			return traj, &odecore.StepError{Step: i, Time: t, Err: err}
		}
		if cfg.CheckFinite && !next.IsFinite() {
			return traj, &odecore.StepError{Step: i, Time: t, Err: odecore.ErrNonFiniteState}
		}

		y = next
		traj.StepsTaken++
		traj.Times = append(traj.Times, cfg.T0+float64(i+1)*cfg.Dt)
		traj.States = append(traj.States, y.Clone())
	}

	return traj, nil
}
