package trace

import "github.com/golenslab/lenstrace/pkg/lens"

// TraceThroughSystem traces a ray through an ordered multi-element system
// with the default configuration.
func TraceThroughSystem(ray *Ray, system *lens.System) *Ray {
	return TraceThroughSystemConfig(ray, system, DefaultConfig())
}

// TraceThroughSystemConfig chains the single-element trace across every
// element in axial order. The air gap between elements is covered by the next
// front-surface intersection, computed analytically in the ambient medium.
// If any element blocks or totally internally reflects the ray, tracing stops
// and the partial path up to that point is preserved.
//
// A single-element system produces exactly the same path as TraceRayConfig
// on that element.
func TraceThroughSystemConfig(ray *Ray, system *lens.System, cfg Config) *Ray {
	for _, element := range system.Elements {
		if !traceElement(ray, element, cfg.AmbientIndex) {
			return ray
		}
	}
	ray.Propagate(cfg.ExitDistance)
	return ray
}
