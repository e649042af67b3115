package mot

import "math"

const (
	// curvatureEps keeps curvature finite for stationary tracks
	curvatureEps = 1e-6
	// minMotionPoints is number of centers needed before any motion statistic is reported
	minMotionPoints = 3
)

// MotionStats holds finite-difference motion estimates of a track.
// Velocity, Acceleration and Jerk are magnitudes, Curvature is |v x a| / |v|^3.
type MotionStats struct {
	Velocity     float64
	Acceleration float64
	Jerk         float64
	Curvature    float64
}

// ComputeMotionStats derives motion statistics from centers ordered oldest first.
// Fewer than three centers give zero stats. Only trailing four centers affect the result.
func ComputeMotionStats(history []Point) MotionStats {
	n := len(history)
	if n < minMotionPoints {
		return MotionStats{}
	}

	// Most recent first differences: v1 is older, v2 is latest
	v2 := history[n-1].Sub(history[n-2])
	v1 := history[n-2].Sub(history[n-3])
	// Most recent second difference
	a2 := v2.Sub(v1)

	stats := MotionStats{
		Velocity:     v2.Norm(),
		Acceleration: a2.Norm(),
	}

	if n > minMotionPoints {
		v0 := history[n-3].Sub(history[n-4])
		a1 := v1.Sub(v0)
		stats.Jerk = a2.Sub(a1).Norm()
	}

	num := math.Abs(v2.X*a2.Y - v2.Y*a2.X)
	den := math.Pow(stats.Velocity, 3) + curvatureEps
	stats.Curvature = num / den
	return stats
}
