package linalg

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odelab/internal/odecore"
)

func TestNewOperator_RejectsNonSquare(t *testing.T) {
	_, err := NewOperator(mat.NewDense(2, 3, nil), nil)
	if !errors.Is(err, odecore.ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
}

func TestNewOperator_RejectsOffsetMismatch(t *testing.T) {
	_, err := NewOperator(mat.NewDense(2, 2, nil), odecore.State{1, 2, 3})
	if !errors.Is(err, odecore.ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
}

func TestOperator_EvaluateAffine(t *testing.T) {
	op, err := NewOperator(mat.NewDense(2, 2, []float64{0, 1, -2, 0}), odecore.State{0.5, -1})
	if err != nil {
		t.Fatal(err)
	}

	got := op.Evaluate(0, odecore.State{0.75, 0})
	want := odecore.State{0.5, -2.5}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("component %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestNewScalar(t *testing.T) {
	op := NewScalar(-0.25, 0)
	got := op.Evaluate(0, odecore.State{100})
	if math.Abs(got[0]+25) > 1e-12 {
		t.Errorf("got %f, want -25", got[0])
	}
}

func TestFactorize_SolvesKnownSystem(t *testing.T) {
	// A = [[2,1],[1,3]], b = [3,5] -> x = [0.8, 1.4]
	a := mat.NewDense(2, 2, []float64{2, 1, 1, 3})
	f, err := Factorize(a, 0)
	if err != nil {
		t.Fatal(err)
	}

	x, err := f.Solve(odecore.State{3, 5})
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(x[0]-0.8) > 1e-12 || math.Abs(x[1]-1.4) > 1e-12 {
		t.Errorf("got [%f, %f], want [0.8, 1.4]", x[0], x[1])
	}
}

func TestFactorize_ReusableAcrossSolves(t *testing.T) {
	f, err := Factorize(mat.NewDense(2, 2, []float64{4, 0, 0, 2}), 0)
	if err != nil {
		t.Fatal(err)
	}

	for k := 1; k <= 3; k++ {
		rhs := odecore.State{float64(4 * k), float64(2 * k)}
		x, err := f.Solve(rhs)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(x[0]-float64(k)) > 1e-12 || math.Abs(x[1]-float64(k)) > 1e-12 {
			t.Errorf("solve %d: got [%f, %f], want [%d, %d]", k, x[0], x[1], k, k)
		}
	}
}

func TestFactorize_SingularMatrix(t *testing.T) {
	// Rank-1 matrix.
	_, err := Factorize(mat.NewDense(2, 2, []float64{1, 2, 2, 4}), 0)
	if !errors.Is(err, odecore.ErrSingularSystem) {
		t.Fatalf("expected singular system error, got %v", err)
	}
}

func TestFactorize_ScalarDivision(t *testing.T) {
	f, err := Factorize(mat.NewDense(1, 1, []float64{-4}), 0)
	if err != nil {
		t.Fatal(err)
	}
	x, err := f.Solve(odecore.State{2})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x[0]+0.5) > 1e-15 {
		t.Errorf("got %f, want -0.5", x[0])
	}
}

func TestEigenvalues_Scalar(t *testing.T) {
	eigs, err := Eigenvalues(mat.NewDense(1, 1, []float64{-0.25}))
	if err != nil {
		t.Fatal(err)
	}
	if len(eigs) != 1 || cmplx.Abs(eigs[0]-complex(-0.25, 0)) > 1e-15 {
		t.Errorf("got %v, want [-0.25]", eigs)
	}
}

func TestEigenvalues_OscillatorPair(t *testing.T) {
	// [[0,1],[-gamma^2,0]] has eigenvalues +-i*gamma.
	gamma := math.Sqrt2
	eigs, err := Eigenvalues(mat.NewDense(2, 2, []float64{0, 1, -gamma * gamma, 0}))
	if err != nil {
		t.Fatal(err)
	}
	if len(eigs) != 2 {
		t.Fatalf("expected 2 eigenvalues, got %d", len(eigs))
	}

	for _, lam := range eigs {
		if math.Abs(real(lam)) > 1e-12 {
			t.Errorf("expected purely imaginary eigenvalue, got %v", lam)
		}
		if math.Abs(math.Abs(imag(lam))-gamma) > 1e-12 {
			t.Errorf("expected |Im| = %f, got %v", gamma, lam)
		}
	}
}

func TestEigenvalues_RealDistinct(t *testing.T) {
	// Diagonal matrix: eigenvalues are the diagonal.
	eigs, err := Eigenvalues(mat.NewDense(2, 2, []float64{-1, 0, 0, -3}))
	if err != nil {
		t.Fatal(err)
	}

	found := map[float64]bool{}
	for _, lam := range eigs {
		if math.Abs(imag(lam)) > 1e-12 {
			t.Errorf("expected real eigenvalue, got %v", lam)
		}
		found[math.Round(real(lam))] = true
	}
	if !found[-1] || !found[-3] {
		t.Errorf("expected eigenvalues {-1, -3}, got %v", eigs)
	}
}

func TestEigenvalues_GeneralDimension(t *testing.T) {
	// 3x3 diagonal goes through the general decomposition path.
	eigs, err := Eigenvalues(mat.NewDense(3, 3, []float64{
		-1, 0, 0,
		0, -2, 0,
		0, 0, -5,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(eigs) != 3 {
		t.Fatalf("expected 3 eigenvalues, got %d", len(eigs))
	}

	sum := 0.0
	for _, lam := range eigs {
		sum += real(lam)
	}
	if math.Abs(sum+8) > 1e-9 {
		t.Errorf("trace mismatch: eigenvalue sum %f, want -8", sum)
	}
}

func TestOperator_SpectrumCached(t *testing.T) {
	op, err := NewOperator(mat.NewDense(2, 2, []float64{0, 1, -2, 0}), nil)
	if err != nil {
		t.Fatal(err)
	}

	first, err := op.Spectrum()
	if err != nil {
		t.Fatal(err)
	}
	second, err := op.Spectrum()
	if err != nil {
		t.Fatal(err)
	}

	if &first[0] != &second[0] {
		t.Error("expected cached spectrum slice to be returned on repeat calls")
	}
}
