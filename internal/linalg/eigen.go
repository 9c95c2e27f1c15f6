package linalg

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/odelab/internal/odecore"
)

// Eigenvalues returns the spectrum of the square matrix m. Dimensions 1
// and 2 use the exact roots of the characteristic polynomial, which is
// both cheaper and more precise than the general decomposition; larger
// matrices go through gonum's nonsymmetric eigensolver.
func Eigenvalues(m odecore.Matrix) ([]complex128, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: matrix is %dx%d, want square", odecore.ErrDimensionMismatch, r, c)
	}

	switch r {
	case 0:
		return nil, nil
	case 1:
		return []complex128{complex(m.At(0, 0), 0)}, nil
	case 2:
		// Roots of lambda^2 - tr*lambda + det.
		tr := m.At(0, 0) + m.At(1, 1)
		det := m.At(0, 0)*m.At(1, 1) - m.At(0, 1)*m.At(1, 0)
		disc := cmplx.Sqrt(complex(tr*tr-4*det, 0))
		half := complex(tr, 0)
		return []complex128{(half + disc) / 2, (half - disc) / 2}, nil
	}

	dense := mat.NewDense(r, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			dense.Set(i, j, m.At(i, j))
		}
	}
	var eig mat.Eigen
	if ok := eig.Factorize(dense, mat.EigenNone); !ok {
		return nil, fmt.Errorf("linalg: eigenvalue decomposition did not converge for %dx%d matrix", r, r)
	}
	return eig.Values(nil), nil
}
