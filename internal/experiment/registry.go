package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/models"
	"github.com/san-kum/odelab/internal/odecore"
	"github.com/san-kum/odelab/internal/steppers"
)

type Registry struct {
	models   map[string]func(config.ParamsConfig) odecore.RightHandSide
	steppers map[string]func() odecore.Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		models:   make(map[string]func(config.ParamsConfig) odecore.RightHandSide),
		steppers: make(map[string]func() odecore.Stepper),
	}

	r.models["decay"] = func(p config.ParamsConfig) odecore.RightHandSide {
		return models.NewDecay(p.Alpha)
	}
	r.models["forced_decay"] = func(p config.ParamsConfig) odecore.RightHandSide {
		return models.NewForcedDecay(p.Alpha, p.Source)
	}
	r.models["oscillator"] = func(p config.ParamsConfig) odecore.RightHandSide {
		return models.NewOscillator(p.Gamma)
	}
	r.models["logistic"] = func(p config.ParamsConfig) odecore.RightHandSide {
		return models.NewLogistic(p.Rate, p.Limit)
	}

	r.steppers["explicit"] = func() odecore.Stepper { return steppers.NewExplicit() }
	r.steppers["implicit"] = func() odecore.Stepper { return steppers.NewImplicit() }

	return r
}

func (r *Registry) GetModel(name string, params config.ParamsConfig) (odecore.RightHandSide, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) GetStepper(name string) (odecore.Stepper, error) {
	fn, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown scheme: %s", name)
	}
	return fn(), nil
}

// StepperFactory returns a constructor for fresh stepper instances,
// needed by concurrent sweeps where instances cannot be shared.
func (r *Registry) StepperFactory(name string) (func() odecore.Stepper, error) {
	fn, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown scheme: %s", name)
	}
	return fn, nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListSchemes() []string {
	names := make([]string, 0, len(r.steppers))
	for name := range r.steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
