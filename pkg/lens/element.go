package lens

import (
	"fmt"

	"github.com/golenslab/lenstrace/pkg/surface"
)

// Prescription holds the plain numeric fields of a lens record, as supplied
// by the persistence layer. Radii of 0 mean flat surfaces.
type Prescription struct {
	RadiusFront float64 // signed radius of the front surface
	RadiusBack  float64 // signed radius of the back surface
	Thickness   float64 // center thickness
	Diameter    float64 // clear aperture diameter
	Index       float64 // refractive index at the design wavelength
}

// Element is a single lens: two refracting surfaces, a center thickness and a
// homogeneous refractive index. Immutable once constructed.
type Element struct {
	Front     *surface.Surface
	Back      *surface.Surface
	Thickness float64
	Index     float64
	Offset    float64 // axial position of the front vertex
}

// NewElement validates a prescription and positions the element with its
// front vertex at the given axial offset. Degenerate geometry is rejected
// here so the tracer never sees an invalid element.
func NewElement(p Prescription, offset float64) (*Element, error) {
	if p.Thickness <= 0 {
		return nil, fmt.Errorf("invalid thickness %f: must be positive", p.Thickness)
	}
	if p.Index <= 1.0 {
		return nil, fmt.Errorf("invalid refractive index %f: must be greater than 1.0", p.Index)
	}
	if p.Diameter <= 0 {
		return nil, fmt.Errorf("invalid diameter %f: must be positive", p.Diameter)
	}

	semiAperture := p.Diameter / 2
	front, err := surface.NewSurface(p.RadiusFront, offset, semiAperture)
	if err != nil {
		return nil, fmt.Errorf("invalid front surface: %v", err)
	}
	back, err := surface.NewSurface(p.RadiusBack, offset+p.Thickness, semiAperture)
	if err != nil {
		return nil, fmt.Errorf("invalid back surface: %v", err)
	}

	return &Element{
		Front:     front,
		Back:      back,
		Thickness: p.Thickness,
		Index:     p.Index,
		Offset:    offset,
	}, nil
}

// FrontVertex returns the axial position of the front surface vertex.
func (e *Element) FrontVertex() float64 {
	return e.Offset
}

// BackVertex returns the axial position of the back surface vertex.
func (e *Element) BackVertex() float64 {
	return e.Offset + e.Thickness
}

// SemiAperture returns the clear half-aperture of the element.
func (e *Element) SemiAperture() float64 {
	return e.Front.SemiAperture
}
