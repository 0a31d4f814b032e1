package trace

import (
	"math"

	"github.com/golenslab/lenstrace/pkg/lens"
	"github.com/golenslab/lenstrace/pkg/surface"
)

// Config carries the tracing parameters shared by a whole bundle.
type Config struct {
	AmbientIndex float64 // refractive index of the medium between elements
	ExitDistance float64 // nominal far-field propagation after the last surface
}

// DefaultConfig returns the standard vacuum/air configuration.
func DefaultConfig() Config {
	return Config{
		AmbientIndex: 1.0,
		ExitDistance: 250.0,
	}
}

// TraceRay traces a ray through a single element with the default
// configuration, mutating and returning the same ray.
func TraceRay(ray *Ray, element *lens.Element) *Ray {
	return TraceRayConfig(ray, element, DefaultConfig())
}

// TraceRayConfig traces a ray through front surface, interior and back
// surface, then propagates the exit ray a nominal far-field distance so the
// final segment is long enough for focal-point search. Blocked and totally
// internally reflected rays keep their partial path.
func TraceRayConfig(ray *Ray, element *lens.Element, cfg Config) *Ray {
	if traceElement(ray, element, cfg.AmbientIndex) {
		ray.Propagate(cfg.ExitDistance)
	}
	return ray
}

// traceElement carries a ray through one element without the exit
// propagation, so the system tracer can chain elements. It reports whether
// the ray left the element cleanly.
//
// Surfaces are taken in the ray's travel order, so a reversed ray passes
// back-to-front with the same index pairing.
func traceElement(ray *Ray, element *lens.Element, ambient float64) bool {
	if ray.Blocked || ray.TIR {
		return false
	}

	first, second := element.Front, element.Back
	if ray.Dir.X < 0 {
		first, second = second, first
	}

	if !refractAt(ray, first, ambient, element.Index) {
		return false
	}
	return refractAt(ray, second, element.Index, ambient)
}

// refractAt intersects the ray with one surface and refracts across it.
// A geometric miss marks the ray blocked; total internal reflection updates
// the direction and stops propagation through the element. Both outcomes are
// ray state, never errors, so one bad ray cannot abort its bundle.
//
// A blocked ray's path is extended to the blocking surface's vertex plane, so
// renderers can draw the segment up to where the ray was stopped.
func refractAt(ray *Ray, s *surface.Surface, n1, n2 float64) bool {
	point, normal, ok := s.Intersect(ray.Origin, ray.Dir)
	if !ok {
		ray.Blocked = true
		if math.Abs(ray.Dir.X) > 1e-9 {
			if t := (s.Vertex - ray.Origin.X) / ray.Dir.X; t > 0 {
				ray.Propagate(t)
			}
		}
		return false
	}
	ray.PropagateTo(point)
	return ray.Refract(n1, n2, normal)
}
