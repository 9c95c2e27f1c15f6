package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/integrate"
	"github.com/san-kum/odelab/internal/odecore"
)

// Experiment binds a validated scenario to concrete engine pieces and
// runs it.
type Experiment struct {
	cfg     *config.Config
	rhs     odecore.RightHandSide
	stepper odecore.Stepper
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup resolves the scenario against the registry.
func (e *Experiment) Setup(reg *Registry) error {
	rhs, err := reg.GetModel(e.cfg.Model, e.cfg.Params)
	if err != nil {
		return err
	}
	stepper, err := reg.GetStepper(e.cfg.Scheme)
	if err != nil {
		return err
	}
	if len(e.cfg.InitState) != rhs.Dim() {
		return fmt.Errorf("%w: init_state has %d components, model %s has dimension %d",
			odecore.ErrDimensionMismatch, len(e.cfg.InitState), e.cfg.Model, rhs.Dim())
	}
	e.rhs = rhs
	e.stepper = stepper
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*odecore.Trajectory, error) {
	if e.rhs == nil || e.stepper == nil {
		return nil, fmt.Errorf("experiment not set up")
	}

	runCfg := odecore.Config{
		T0:          e.cfg.T0,
		TF:          e.cfg.TF,
		Dt:          e.cfg.Dt,
		CheckFinite: e.cfg.CheckFinite,
	}
	return integrate.Run(ctx, e.rhs, odecore.State(e.cfg.InitState).Clone(), runCfg, e.stepper)
}

// RHS exposes the resolved right-hand side, e.g. for spectrum queries.
func (e *Experiment) RHS() odecore.RightHandSide {
	return e.rhs
}
