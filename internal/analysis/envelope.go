package analysis

import (
	"math"

	"github.com/san-kum/odelab/internal/odecore"
)

// AmplitudeEnvelope reduces a trajectory to the maximum state norm
// within each full window of the given period; a trailing partial
// window is dropped. For an oscillatory system the envelope exposes the
// scheme's long-term behavior: a strictly growing envelope means the
// scheme is amplifying the oscillation, a non-increasing one means it
// damps or holds it.
func AmplitudeEnvelope(traj *odecore.Trajectory, period float64) []float64 {
	if len(traj.States) == 0 || period <= 0 {
		return nil
	}

	t0 := traj.Times[0]
	tEnd := traj.Times[len(traj.Times)-1]
	windows := int(math.Floor((tEnd - t0) / period))
	if windows == 0 {
		return nil
	}

	envelope := make([]float64, windows)
	for i, s := range traj.States {
		w := int(math.Floor((traj.Times[i] - t0) / period))
		if w >= windows {
			break
		}
		if n := s.Norm(); n > envelope[w] {
			envelope[w] = n
		}
	}
	return envelope
}

// StrictlyIncreasing reports whether each value exceeds its predecessor.
func StrictlyIncreasing(vals []float64) bool {
	for i := 1; i < len(vals); i++ {
		if vals[i] <= vals[i-1] {
			return false
		}
	}
	return true
}

// NonIncreasing reports whether no value exceeds its predecessor.
func NonIncreasing(vals []float64) bool {
	for i := 1; i < len(vals); i++ {
		if vals[i] > vals[i-1] {
			return false
		}
	}
	return true
}
