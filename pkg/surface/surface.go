package surface

import (
	"fmt"
	"math"

	"github.com/golenslab/lenstrace/pkg/geom"
)

// epsilon guards near-parallel denominators and absorbs floating error when
// a ray starts exactly on a surface, as at a cemented interface.
const epsilon = 1e-9

// Surface represents a single refracting interface crossing the optical axis.
// A positive radius curves toward +X (center of curvature to the right of the
// vertex), a negative radius toward -X. Radius 0 is the flat-surface sentinel.
type Surface struct {
	Radius       float64 // signed radius of curvature, 0 means flat
	Vertex       float64 // axial position of the vertex
	SemiAperture float64 // clear half-aperture, measured from the axis
}

// NewSurface creates a surface, validating the aperture against the curvature.
// An infinite radius is normalized to the flat sentinel.
func NewSurface(radius, vertex, semiAperture float64) (*Surface, error) {
	if math.IsInf(radius, 0) {
		radius = 0
	}
	if semiAperture <= 0 {
		return nil, fmt.Errorf("invalid semi-aperture %f: must be positive", semiAperture)
	}
	if radius != 0 && semiAperture > math.Abs(radius) {
		return nil, fmt.Errorf("invalid semi-aperture %f: exceeds |radius| %f, surface would self-intersect", semiAperture, math.Abs(radius))
	}
	return &Surface{Radius: radius, Vertex: vertex, SemiAperture: semiAperture}, nil
}

// IsFlat reports whether the surface is planar.
func (s *Surface) IsFlat() bool {
	return s.Radius == 0
}

// Center returns the center of curvature. Only meaningful for curved surfaces.
func (s *Surface) Center() geom.Vec2 {
	return geom.NewVec2(s.Vertex+s.Radius, 0)
}

// Profile returns the axial coordinate of the surface at height y.
// Heights outside the clear aperture are clamped to its edge.
func (s *Surface) Profile(y float64) float64 {
	if s.IsFlat() {
		return s.Vertex
	}
	if math.Abs(y) > s.SemiAperture {
		y = math.Copysign(s.SemiAperture, y)
	}
	sag := math.Abs(s.Radius) - math.Sqrt(s.Radius*s.Radius-y*y)
	if s.Radius > 0 {
		return s.Vertex + sag
	}
	return s.Vertex - sag
}

// Intersect finds the first intersection of a ray with the surface.
// origin is the ray's current position and dir its unit direction.
// The returned normal is a unit vector oriented against dir, ready for the
// refraction formulas. ok is false when the ray misses the surface or falls
// outside the clear aperture; the caller marks such rays blocked.
func (s *Surface) Intersect(origin, dir geom.Vec2) (point, normal geom.Vec2, ok bool) {
	if s.IsFlat() {
		return s.intersectPlane(origin, dir)
	}
	return s.intersectSphere(origin, dir)
}

// intersectPlane solves the linear ray/plane intersection at x = Vertex.
func (s *Surface) intersectPlane(origin, dir geom.Vec2) (geom.Vec2, geom.Vec2, bool) {
	// Ray parallel to the plane never crosses it
	if math.Abs(dir.X) < epsilon {
		return geom.Vec2{}, geom.Vec2{}, false
	}

	// Zero-distance hits are legal: at a cemented interface the ray already
	// sits on the next surface.
	t := (s.Vertex - origin.X) / dir.X
	if t < -epsilon {
		return geom.Vec2{}, geom.Vec2{}, false
	}

	hit := origin.Add(dir.Multiply(t))
	if math.Abs(hit.Y) > s.SemiAperture {
		return geom.Vec2{}, geom.Vec2{}, false
	}

	return hit, s.orientNormal(geom.NewVec2(1, 0), dir), true
}

// intersectSphere solves the quadratic from substituting the ray's parametric
// line into the sphere equation, then selects the root on the vertex-side
// hemisphere within the clear aperture.
func (s *Surface) intersectSphere(origin, dir geom.Vec2) (geom.Vec2, geom.Vec2, bool) {
	center := s.Center()
	oc := origin.Subtract(center)

	// Quadratic in half-b form; dir is a unit vector so a = 1
	halfB := oc.Dot(dir)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return geom.Vec2{}, geom.Vec2{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	for _, t := range [2]float64{-halfB - sqrtD, -halfB + sqrtD} {
		if t < -epsilon {
			continue
		}
		hit := origin.Add(dir.Multiply(t))

		// The lens cap containing the vertex lies on the opposite side of the
		// sphere center from the radius direction. Both sphere crossings of an
		// axis-parallel ray share the same height, so the aperture check alone
		// cannot pick the right one.
		if (hit.X-center.X)*s.Radius > 0 {
			continue
		}
		if math.Abs(hit.Y) > s.SemiAperture {
			continue
		}

		outward := hit.Subtract(center).Multiply(1 / math.Abs(s.Radius))
		return hit, s.orientNormal(outward, dir), true
	}

	return geom.Vec2{}, geom.Vec2{}, false
}

// orientNormal flips the normal so it faces against the propagation direction.
func (s *Surface) orientNormal(normal, dir geom.Vec2) geom.Vec2 {
	if normal.Dot(dir) > 0 {
		return normal.Negate()
	}
	return normal
}
