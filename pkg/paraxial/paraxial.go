// Package paraxial derives Gaussian system properties by ABCD matrix
// composition, independent of full ray tracing. The tracer and the GUI use it
// as a fast cross-check; the optimizer uses it as an objective.
//
// State vectors are (y, n*u): height and reduced angle. All distances follow
// the tracer's coordinate system, with the ambient index taken as 1.0.
package paraxial

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/golenslab/lenstrace/pkg/lens"
)

// powerEpsilon is the threshold below which a system's power counts as zero,
// making focal quantities undefined.
const powerEpsilon = 1e-9

// ambientIndex is the refractive index outside the elements.
const ambientIndex = 1.0

// refraction returns the surface matrix for an interface of the given signed
// radius between indices n1 and n2. A zero radius is the flat sentinel.
func refraction(n1, n2, radius float64) *mat.Dense {
	power := 0.0
	if radius != 0 {
		power = (n2 - n1) / radius
	}
	return mat.NewDense(2, 2, []float64{
		1, 0,
		-power, 1,
	})
}

// translation returns the transfer matrix for a distance inside a medium.
func translation(distance, index float64) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		1, distance / index,
		0, 1,
	})
}

// compose left-multiplies the accumulated matrix by the next step.
func compose(current, step *mat.Dense) *mat.Dense {
	next := new(mat.Dense)
	next.Mul(step, current)
	return next
}

// ElementMatrix returns the ABCD matrix of a single element, front vertex to
// back vertex.
func ElementMatrix(element *lens.Element) *mat.Dense {
	m := refraction(ambientIndex, element.Index, element.Front.Radius)
	m = compose(m, translation(element.Thickness, element.Index))
	m = compose(m, refraction(element.Index, ambientIndex, element.Back.Radius))
	return m
}

// SystemMatrix returns the ABCD matrix of the whole system, first vertex to
// last vertex, with air-gap transfers between elements.
func SystemMatrix(system *lens.System) *mat.Dense {
	m := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	for i, element := range system.Elements {
		if i > 0 {
			m = compose(m, translation(system.Gap(i-1), ambientIndex))
		}
		m = compose(m, ElementMatrix(element))
	}
	return m
}

// ElementFocalLength returns the effective focal length of one element.
// ok is false when the element has no defined power (for example a flat-flat
// window), so callers never see a NaN.
func ElementFocalLength(element *lens.Element) (float64, bool) {
	c := ElementMatrix(element).At(1, 0)
	if math.Abs(c) < powerEpsilon {
		return 0, false
	}
	return -1 / c, true
}

// SystemFocalLength returns the effective focal length of the system by
// paraxial composition. If any element has undefined power, or the composed
// system is afocal, ok is false rather than propagating NaN or Inf.
func SystemFocalLength(system *lens.System) (float64, bool) {
	for _, element := range system.Elements {
		if _, ok := ElementFocalLength(element); !ok {
			return 0, false
		}
	}

	c := SystemMatrix(system).At(1, 0)
	if math.Abs(c) < powerEpsilon {
		return 0, false
	}
	return -1 / c, true
}

// BackFocalDistance returns the distance from the last vertex to the rear
// focal point.
func BackFocalDistance(system *lens.System) (float64, bool) {
	m := SystemMatrix(system)
	c := m.At(1, 0)
	if math.Abs(c) < powerEpsilon {
		return 0, false
	}
	return -m.At(0, 0) / c, true
}

// FrontFocalDistance returns the distance from the front vertex to the front
// focal point, positive toward the object side.
func FrontFocalDistance(system *lens.System) (float64, bool) {
	m := SystemMatrix(system)
	c := m.At(1, 0)
	if math.Abs(c) < powerEpsilon {
		return 0, false
	}
	return -m.At(1, 1) / c, true
}

// PrincipalPlanes returns the axial positions of the front and back principal
// planes.
func PrincipalPlanes(system *lens.System) (front, back float64, ok bool) {
	efl, ok := SystemFocalLength(system)
	if !ok {
		return 0, 0, false
	}
	ffd, _ := FrontFocalDistance(system)
	bfd, _ := BackFocalDistance(system)

	front = system.FrontVertex() - ffd + efl
	back = system.BackVertex() + bfd - efl
	return front, back, true
}

// ImageDistance returns the distance from the last vertex to the image of an
// object objectDistance in front of the first vertex. ok is false when the
// object sits at the front focal point and the image is at infinity.
func ImageDistance(system *lens.System, objectDistance float64) (float64, bool) {
	m := SystemMatrix(system)
	a, b := m.At(0, 0), m.At(0, 1)
	c, d := m.At(1, 0), m.At(1, 1)

	denominator := c*objectDistance + d
	if math.Abs(denominator) < powerEpsilon {
		return 0, false
	}
	return -(a*objectDistance + b) / denominator, true
}

// Magnification returns the transverse magnification for an object
// objectDistance in front of the first vertex.
func Magnification(system *lens.System, objectDistance float64) (float64, bool) {
	m := SystemMatrix(system)
	denominator := m.At(1, 0)*objectDistance + m.At(1, 1)
	if math.Abs(denominator) < powerEpsilon {
		return 0, false
	}
	return 1 / denominator, true
}

// NumericalAperture returns the image-side numerical aperture for a parallel
// input bundle of the given semi-height.
func NumericalAperture(system *lens.System, semiHeight float64) (float64, bool) {
	c := SystemMatrix(system).At(1, 0)
	if math.Abs(c) < powerEpsilon {
		return 0, false
	}
	slope := c * semiHeight / ambientIndex
	return ambientIndex * math.Abs(math.Sin(slope)), true
}
