// Package analysis provides time-domain diagnostics over trajectories.
package analysis

import "github.com/alidh/modelab/internal/sim"

// Oscillation summarizes the cyclic behaviour of one trajectory component.
type Oscillation struct {
	Crossings int     // sign changes of (value − level)
	Peaks     int     // local maxima
	Period    float64 // mean spacing between successive peaks, 0 if < 2 peaks
}

// DetectOscillation analyzes component idx of the trajectory against a
// reference level (typically the initial value). A component that crosses its
// level at least twice exhibits the coupled-cycle signature; a monotonic or
// decoupled trajectory will not.
func DetectOscillation(r *sim.Result, idx int, level float64) Oscillation {
	series := r.Component(idx)
	var osc Oscillation

	prev := 0
	for _, v := range series {
		s := sign(v - level)
		if s != 0 && prev != 0 && s != prev {
			osc.Crossings++
		}
		if s != 0 {
			prev = s
		}
	}

	var peakTimes []float64
	for i := 1; i < len(series)-1; i++ {
		if series[i] > series[i-1] && series[i] > series[i+1] {
			osc.Peaks++
			peakTimes = append(peakTimes, r.Times[i])
		}
	}

	if len(peakTimes) >= 2 {
		total := peakTimes[len(peakTimes)-1] - peakTimes[0]
		osc.Period = total / float64(len(peakTimes)-1)
	}

	return osc
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
