package trace

import (
	"math"

	"github.com/golenslab/lenstrace/pkg/geom"
)

// DefaultWavelength is the helium d-line in micrometers, the reference
// wavelength for catalog indices.
const DefaultWavelength = 0.5876

// Ray is the mutable propagation state of a single ray: current position and
// direction, the accumulated path, and the anomaly flags set by the tracer.
// Once Blocked is set the ray takes part in no further surface interactions;
// it stays in its bundle so callers can render or report it, but the focal
// analyzer ignores it.
type Ray struct {
	Origin     geom.Vec2   // current position
	Dir        geom.Vec2   // unit propagation direction
	Wavelength float64     // micrometers
	Intensity  float64     // in [0,1]
	Path       []geom.Vec2 // append-only trace of visited points
	Blocked    bool        // ray missed a surface or fell outside an aperture
	TIR        bool        // ray totally internally reflected
}

// NewRay creates a ray at the given origin traveling in the given direction.
// The direction is normalized and the origin becomes the first path point.
func NewRay(origin, dir geom.Vec2) *Ray {
	return &Ray{
		Origin:     origin,
		Dir:        dir.Normalize(),
		Wavelength: DefaultWavelength,
		Intensity:  1.0,
		Path:       []geom.Vec2{origin},
	}
}

// At returns the point at parameter t along the ray's current direction.
func (r *Ray) At(t float64) geom.Vec2 {
	return r.Origin.Add(r.Dir.Multiply(t))
}

// Propagate advances the ray by the given distance and records the new
// position. A zero distance still appends a path point.
func (r *Ray) Propagate(distance float64) {
	r.Origin = r.Origin.Add(r.Dir.Multiply(distance))
	r.Path = append(r.Path, r.Origin)
}

// PropagateTo moves the ray to a known point on its line, recording it.
func (r *Ray) PropagateTo(point geom.Vec2) {
	r.Origin = point
	r.Path = append(r.Path, point)
}

// Usable reports whether the ray completed its trace without anomaly and may
// contribute to convergence analysis.
func (r *Ray) Usable() bool {
	return !r.Blocked && !r.TIR
}

// Refract bends the ray at a boundary between media of indices n1 and n2
// using Snell's law in vector form. normal must be a unit vector oriented
// against the ray's direction, as returned by surface.Intersect.
//
// On total internal reflection the ray is mirror-reflected about the normal,
// the TIR flag is set and Refract returns false.
func (r *Ray) Refract(n1, n2 float64, normal geom.Vec2) bool {
	unit := r.Dir.Normalize()
	ratio := n1 / n2

	cosTheta := math.Min(-unit.Dot(normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	if ratio*sinTheta > 1.0 {
		r.TIR = true
		r.Dir = unit.Reflect(normal)
		return false
	}

	rOutPerp := unit.Add(normal.Multiply(cosTheta)).Multiply(ratio)
	rOutParallel := normal.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	r.Dir = rOutPerp.Add(rOutParallel)
	return true
}
