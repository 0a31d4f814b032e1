package trace

import (
	"github.com/golenslab/lenstrace/pkg/geom"
	"github.com/golenslab/lenstrace/pkg/lens"
)

// Bundle is an ordered set of rays launched together. Insertion order runs
// from the lowest height (or angle) to the highest, which callers use for
// edge/center ray classification.
type Bundle []*Ray

// launchMargin keeps bundle origins clear of the front surface sag.
const launchMargin = 10.0

// ParallelBundle generates numRays axis-parallel rays at evenly spaced
// heights in [heightMin, heightMax], starting at axial position startX.
func ParallelBundle(numRays int, heightMin, heightMax, startX float64) Bundle {
	bundle := make(Bundle, 0, numRays)
	for i := 0; i < numRays; i++ {
		height := heightMin
		if numRays > 1 {
			height += (heightMax - heightMin) * float64(i) / float64(numRays-1)
		}
		bundle = append(bundle, NewRay(geom.NewVec2(startX, height), geom.NewVec2(1, 0)))
	}
	return bundle
}

// PointSourceBundle generates a fan of numRays rays from a single origin,
// with directions evenly spaced in [angleMin, angleMax] radians from the axis.
func PointSourceBundle(source geom.Vec2, numRays int, angleMin, angleMax float64) Bundle {
	bundle := make(Bundle, 0, numRays)
	for i := 0; i < numRays; i++ {
		angle := angleMin
		if numRays > 1 {
			angle += (angleMax - angleMin) * float64(i) / float64(numRays-1)
		}
		bundle = append(bundle, NewRay(source, geom.FromAngle(angle)))
	}
	return bundle
}

// TraceParallelRays traces a parallel bundle through a single element at the
// requested heights, taken literally: an all-zero range launches every ray on
// the axis.
func TraceParallelRays(element *lens.Element, numRays int, heightMin, heightMax float64) Bundle {
	startX := element.FrontVertex() - element.SemiAperture() - launchMargin
	bundle := ParallelBundle(numRays, heightMin, heightMax, startX)
	for _, ray := range bundle {
		TraceRay(ray, element)
	}
	return bundle
}

// TraceParallelRaysAperture traces a parallel bundle spanning the element's
// full clear aperture.
func TraceParallelRaysAperture(element *lens.Element, numRays int) Bundle {
	return TraceParallelRays(element, numRays, -element.SemiAperture(), element.SemiAperture())
}

// TracePointSource traces a point-source fan through a single element.
func TracePointSource(element *lens.Element, source geom.Vec2, numRays int, angleMin, angleMax float64) Bundle {
	bundle := PointSourceBundle(source, numRays, angleMin, angleMax)
	for _, ray := range bundle {
		TraceRay(ray, element)
	}
	return bundle
}

// TraceParallelThroughSystem traces a parallel bundle through a whole system
// at the requested heights, taken literally like TraceParallelRays.
func TraceParallelThroughSystem(system *lens.System, numRays int, heightMin, heightMax float64) Bundle {
	startX := system.FrontVertex() - system.SemiAperture() - launchMargin
	bundle := ParallelBundle(numRays, heightMin, heightMax, startX)
	for _, ray := range bundle {
		TraceThroughSystem(ray, system)
	}
	return bundle
}

// TraceParallelThroughSystemAperture traces a parallel bundle spanning the
// system's full clear aperture.
func TraceParallelThroughSystemAperture(system *lens.System, numRays int) Bundle {
	return TraceParallelThroughSystem(system, numRays, -system.SemiAperture(), system.SemiAperture())
}
