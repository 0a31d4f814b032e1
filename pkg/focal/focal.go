// Package focal post-processes traced ray bundles: it locates the point where
// the bundle crosses the optical axis and measures how tightly it does so.
package focal

import (
	"math"

	"github.com/golenslab/lenstrace/pkg/geom"
	"github.com/golenslab/lenstrace/pkg/trace"
)

const (
	// slopeEpsilon rejects final segments too parallel to the axis to
	// define a crossing.
	slopeEpsilon = 1e-12

	// DefaultClusterFraction is the convergence band: crossings count as a
	// focal point when no crossing deviates from the centroid by more than
	// this fraction of the centroid's axial distance.
	DefaultClusterFraction = 0.05

	// Golden-section search bounds for BestFocus.
	searchTolerance = 1e-9
	maxIterations   = 100
)

// Window bounds the axial search range for focal analysis. Crossings outside
// it are ignored, which is how virtual foci of diverging systems are kept out.
type Window struct {
	Min, Max float64
}

// Result describes a located focal point.
type Result struct {
	Point    geom.Vec2 // centroid of the axis crossings, on the axis
	SpotSize float64   // maximum crossing deviation from the centroid
	RayCount int       // rays that contributed a crossing
}

// axisCrossing extends a ray's final segment as an infinite line and returns
// the axial coordinate where it crosses the axis.
func axisCrossing(ray *trace.Ray) (float64, bool) {
	if !ray.Usable() {
		return 0, false
	}
	if math.Abs(ray.Dir.Y) < slopeEpsilon {
		return 0, false
	}
	t := -ray.Origin.Y / ray.Dir.Y
	return ray.Origin.X + t*ray.Dir.X, true
}

// crossings collects the axis crossings of all usable rays inside the window.
func crossings(bundle trace.Bundle, window Window) []float64 {
	xs := make([]float64, 0, len(bundle))
	for _, ray := range bundle {
		x, ok := axisCrossing(ray)
		if !ok || x < window.Min || x > window.Max {
			continue
		}
		xs = append(xs, x)
	}
	return xs
}

// FindFocalPoint estimates the focal point of a traced bundle. ok is false
// when the bundle diverges, when its crossings fall outside the window, or
// when fewer than two rays define a crossing; all are normal outcomes for
// diverging or degenerate systems, never errors. Blocked and totally
// internally reflected rays are excluded.
func FindFocalPoint(bundle trace.Bundle, window Window) (Result, bool) {
	return FindFocalPointTol(bundle, window, 0)
}

// FindFocalPointTol is FindFocalPoint with an explicit absolute convergence
// tolerance. A tolerance of 0 selects the default relative band.
func FindFocalPointTol(bundle trace.Bundle, window Window, tolerance float64) (Result, bool) {
	xs := crossings(bundle, window)
	if len(xs) < 2 {
		return Result{}, false
	}

	centroid := 0.0
	for _, x := range xs {
		centroid += x
	}
	centroid /= float64(len(xs))

	maxDeviation := 0.0
	for _, x := range xs {
		if d := math.Abs(x - centroid); d > maxDeviation {
			maxDeviation = d
		}
	}

	if tolerance <= 0 {
		tolerance = DefaultClusterFraction * math.Max(math.Abs(centroid), 1.0)
	}
	if maxDeviation > tolerance {
		return Result{}, false
	}

	return Result{
		Point:    geom.NewVec2(centroid, 0),
		SpotSize: maxDeviation,
		RayCount: len(xs),
	}, true
}

// SpotRadiusAt returns the RMS height of the bundle's usable rays at the
// given axial plane, extending each final segment as a line.
func SpotRadiusAt(bundle trace.Bundle, x float64) (float64, bool) {
	sum := 0.0
	count := 0
	for _, ray := range bundle {
		if !ray.Usable() || math.Abs(ray.Dir.X) < slopeEpsilon {
			continue
		}
		t := (x - ray.Origin.X) / ray.Dir.X
		height := ray.Origin.Y + t*ray.Dir.Y
		sum += height * height
		count++
	}
	if count == 0 {
		return 0, false
	}
	return math.Sqrt(sum / float64(count)), true
}

// BestFocus locates the plane of least RMS spot radius inside the window by
// golden-section search. ok is false for bundles with fewer than two usable
// rays, where a best-focus plane is meaningless.
func BestFocus(bundle trace.Bundle, window Window) (x, radius float64, ok bool) {
	usable := 0
	for _, ray := range bundle {
		if ray.Usable() {
			usable++
		}
	}
	if usable < 2 {
		return 0, 0, false
	}

	spot := func(x float64) float64 {
		r, ok := SpotRadiusAt(bundle, x)
		if !ok {
			return math.Inf(1)
		}
		return r
	}

	phi := (math.Sqrt(5) - 1) / 2
	a, b := window.Min, window.Max
	c := b - phi*(b-a)
	d := a + phi*(b-a)
	fc, fd := spot(c), spot(d)

	for i := 0; i < maxIterations && b-a > searchTolerance; i++ {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - phi*(b-a)
			fc = spot(c)
		} else {
			a, c, fc = c, d, fd
			d = a + phi*(b-a)
			fd = spot(d)
		}
	}

	x = (a + b) / 2
	radius, _ = SpotRadiusAt(bundle, x)
	return x, radius, true
}
