package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odelab/internal/odecore"
)

// DefaultRcondTol is the reciprocal-condition threshold below which a
// factorized matrix is treated as singular. The condition estimate is
// norm-relative, so the threshold behaves like a pivot tolerance scaled
// by the matrix norm.
const DefaultRcondTol = 1e-12

// Factorization is an LU decomposition with partial pivoting, computed
// once and reused for repeated solves against different right-hand
// sides. It is immutable after Factorize and safe for concurrent
// read-only use.
type Factorization struct {
	lu  mat.LU
	dim int
}

// Factorize decomposes the square matrix a, failing with
// [odecore.ErrSingularSystem] when a is singular to within tol
// (reciprocal condition estimate). Pass tol <= 0 for DefaultRcondTol.
func Factorize(a mat.Matrix, tol float64) (*Factorization, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: matrix is %dx%d, want square", odecore.ErrDimensionMismatch, r, c)
	}
	if tol <= 0 {
		tol = DefaultRcondTol
	}
	f := &Factorization{dim: r}
	f.lu.Factorize(a)
	cond := f.lu.Cond()
	if cond > 1/tol {
		return nil, fmt.Errorf("%w: condition estimate %.3g exceeds 1/%.0e", odecore.ErrSingularSystem, cond, tol)
	}
	return f, nil
}

func (f *Factorization) Dim() int { return f.dim }

// Solve returns x with A*x = rhs using the stored decomposition.
func (f *Factorization) Solve(rhs odecore.State) (odecore.State, error) {
	if len(rhs) != f.dim {
		return nil, fmt.Errorf("%w: rhs has %d components, system dimension is %d", odecore.ErrDimensionMismatch, len(rhs), f.dim)
	}
	var x mat.VecDense
	if err := f.lu.SolveVecTo(&x, false, mat.NewVecDense(f.dim, rhs)); err != nil {
		return nil, fmt.Errorf("%w: %v", odecore.ErrSingularSystem, err)
	}
	out := make(odecore.State, f.dim)
	copy(out, x.RawVector().Data)
	return out, nil
}
