package linalg

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odelab/internal/odecore"
)

// Operator is an affine right-hand side f(t, y) = L*y + b with an
// immutable square matrix L and optional offset b. It implements
// [odecore.LinearSystem], so it works with both the explicit and the
// implicit stepper, and its eigenvalue spectrum feeds the stability
// predicates.
type Operator struct {
	m      *mat.Dense
	offset odecore.State
	dim    int

	specOnce sync.Once
	spec     []complex128
	specErr  error
}

// NewOperator validates dimensions and takes ownership of matrix and
// offset. A nil offset means b = 0. The matrix must be square and, when
// present, the offset must match its dimension.
func NewOperator(matrix *mat.Dense, offset odecore.State) (*Operator, error) {
	r, c := matrix.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: matrix is %dx%d, want square", odecore.ErrDimensionMismatch, r, c)
	}
	if offset != nil && len(offset) != r {
		return nil, fmt.Errorf("%w: offset has %d components, matrix dimension is %d", odecore.ErrDimensionMismatch, len(offset), r)
	}
	return &Operator{m: matrix, offset: offset, dim: r}, nil
}

// NewScalar returns the one-dimensional operator f(y) = rate*y + source.
func NewScalar(rate, source float64) *Operator {
	op, _ := NewOperator(mat.NewDense(1, 1, []float64{rate}), odecore.State{source})
	return op
}

func (op *Operator) Dim() int { return op.dim }

// Matrix returns the read-only matrix view of L.
func (op *Operator) Matrix() odecore.Matrix { return op.m }

// Offset returns b, or nil for a homogeneous system.
func (op *Operator) Offset() odecore.State { return op.offset }

// Evaluate computes L*y + b. The operator is time-invariant, so t is
// unused.
func (op *Operator) Evaluate(t float64, y odecore.State) odecore.State {
	out := make(odecore.State, op.dim)
	for i := 0; i < op.dim; i++ {
		sum := 0.0
		for j := 0; j < op.dim; j++ {
			sum += op.m.At(i, j) * y[j]
		}
		if op.offset != nil {
			sum += op.offset[i]
		}
		out[i] = sum
	}
	return out
}

// Spectrum returns the eigenvalues of L, computed once and cached.
func (op *Operator) Spectrum() ([]complex128, error) {
	op.specOnce.Do(func() {
		op.spec, op.specErr = Eigenvalues(op.m)
	})
	return op.spec, op.specErr
}
