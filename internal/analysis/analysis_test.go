package analysis

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odelab/internal/integrate"
	"github.com/san-kum/odelab/internal/linalg"
	"github.com/san-kum/odelab/internal/odecore"
	"github.com/san-kum/odelab/internal/steppers"
)

func TestAbsoluteError(t *testing.T) {
	if got := AbsoluteError(odecore.State{3}, odecore.State{1}); math.Abs(got-2) > 1e-15 {
		t.Errorf("scalar: got %f, want 2", got)
	}
	if got := AbsoluteError(odecore.State{3, 4}, odecore.State{0, 0}); math.Abs(got-5) > 1e-15 {
		t.Errorf("vector: got %f, want 5", got)
	}
}

func TestConvergenceOrder_SyntheticSlopes(t *testing.T) {
	dts := []float64{0.4, 0.2, 0.1, 0.05}

	linear := make([]float64, len(dts))
	quadratic := make([]float64, len(dts))
	for i, dt := range dts {
		linear[i] = 3 * dt
		quadratic[i] = 3 * dt * dt
	}

	order, err := ConvergenceOrder(dts, linear)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(order-1) > 1e-9 {
		t.Errorf("linear data: order %f, want 1", order)
	}

	order, err = ConvergenceOrder(dts, quadratic)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(order-2) > 1e-9 {
		t.Errorf("quadratic data: order %f, want 2", order)
	}
}

func TestConvergenceOrder_RejectsBadInput(t *testing.T) {
	if _, err := ConvergenceOrder([]float64{0.1}, []float64{0.01}); err == nil {
		t.Error("single point should be rejected")
	}
	if _, err := ConvergenceOrder([]float64{0.1, 0.2}, []float64{0.01}); err == nil {
		t.Error("length mismatch should be rejected")
	}
	if _, err := ConvergenceOrder([]float64{0.1, 0.2}, []float64{0.01, 0}); err == nil {
		t.Error("zero error should be rejected")
	}
}

// Forward Euler on dy/dt = -0.25*y from y0=100 over [0,5]: the global
// error at the endpoint shrinks linearly with dt even though each
// individual step is second-order accurate.
func TestConvergenceOrder_ForwardEulerIsFirstOrder(t *testing.T) {
	const (
		alpha = 0.25
		tf    = 5.0
		y0    = 100.0
	)
	op := linalg.NewScalar(-alpha, 0)
	exact := y0 * math.Exp(-alpha*tf)
	dts := []float64{0.5, 0.25, 0.125, 0.0625, 0.03125}

	cfg := odecore.Config{T0: 0, TF: tf, CheckFinite: true}
	results := integrate.Sweep(context.Background(), op, odecore.State{y0}, cfg, dts, func() odecore.Stepper {
		return steppers.NewExplicit()
	})

	errs := make([]float64, len(results))
	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("dt=%g: %v", res.Dt, res.Err)
		}
		_, final := res.Traj.Final()
		errs[i] = AbsoluteError(final, odecore.State{exact})
	}

	order, err := ConvergenceOrder(dts, errs)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(order-1) > 0.1 {
		t.Errorf("estimated order %f, want 1.0 +/- 0.1", order)
	}
}

// Undamped oscillator with gamma = sqrt(2): forward Euler amplifies the
// state every period while backward Euler damps it.
func TestAmplitudeEnvelope_OscillatorSchemes(t *testing.T) {
	gamma := math.Sqrt2
	op, err := linalg.NewOperator(mat.NewDense(2, 2, []float64{0, 1, -gamma * gamma, 0}), nil)
	if err != nil {
		t.Fatal(err)
	}

	y0 := odecore.State{0.75, 0}
	cfg := odecore.Config{T0: 0, TF: 40, Dt: 0.15, CheckFinite: true}
	period := 2 * math.Pi / gamma

	explicitTraj, err := integrate.Run(context.Background(), op, y0, cfg, steppers.NewExplicit())
	if err != nil {
		t.Fatal(err)
	}
	implicitTraj, err := integrate.Run(context.Background(), op, y0, cfg, steppers.NewImplicit())
	if err != nil {
		t.Fatal(err)
	}

	grow := AmplitudeEnvelope(explicitTraj, period)
	damp := AmplitudeEnvelope(implicitTraj, period)

	if len(grow) < 3 || len(damp) < 3 {
		t.Fatalf("expected several full periods, got %d / %d", len(grow), len(damp))
	}
	if !StrictlyIncreasing(grow) {
		t.Errorf("forward Euler envelope should strictly grow: %v", grow)
	}
	if !NonIncreasing(damp) {
		t.Errorf("backward Euler envelope should not grow: %v", damp)
	}
}

func TestAmplitudeEnvelope_Degenerate(t *testing.T) {
	if env := AmplitudeEnvelope(&odecore.Trajectory{}, 1); env != nil {
		t.Errorf("empty trajectory: got %v, want nil", env)
	}

	traj := &odecore.Trajectory{
		Times:  []float64{0, 0.5},
		States: []odecore.State{{1}, {2}},
	}
	if env := AmplitudeEnvelope(traj, 10); env != nil {
		t.Errorf("shorter than one period: got %v, want nil", env)
	}
}
