package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/odelab/internal/odecore"
)

// AbsoluteError returns the Euclidean norm of computed - exact. For
// scalar states this is plain |computed - exact|.
func AbsoluteError(computed, exact odecore.State) float64 {
	return computed.Sub(exact).Norm()
}

// ConvergenceOrder estimates the order of a scheme from final-value
// errors measured at several step sizes: the slope of the least-squares
// fit of log(error) against log(dt). Forward Euler's local truncation
// error is O(dt^2), but the n = O(1/dt) steps accumulate it to a global
// error of O(dt), so a correct implementation reports a slope near 1.
//
// At least two points are required, and every dt and error must be
// positive (a zero error has no logarithm; it means the scheme was
// exact and no order can be fit).
func ConvergenceOrder(dts, errs []float64) (float64, error) {
	if len(dts) != len(errs) {
		return 0, fmt.Errorf("analysis: %d step sizes vs %d errors", len(dts), len(errs))
	}
	if len(dts) < 2 {
		return 0, fmt.Errorf("analysis: convergence fit needs at least 2 points, got %d", len(dts))
	}

	logDt := make([]float64, len(dts))
	logErr := make([]float64, len(errs))
	for i := range dts {
		if dts[i] <= 0 || errs[i] <= 0 {
			return 0, fmt.Errorf("analysis: non-positive sample at index %d (dt=%g, err=%g)", i, dts[i], errs[i])
		}
		logDt[i] = math.Log(dts[i])
		logErr[i] = math.Log(errs[i])
	}

	_, slope := stat.LinearRegression(logDt, logErr, nil, false)
	return slope, nil
}
