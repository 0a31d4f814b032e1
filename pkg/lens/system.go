package lens

import "fmt"

// System is an ordered chain of elements separated by air gaps. Ordering and
// non-overlap are validated at construction; the tracer relies on both.
type System struct {
	Elements []*Element
}

// NewSystem builds a system from elements already positioned on the axis.
// Elements must be in strictly increasing axial order and must not overlap;
// a zero gap (cemented interface) is allowed.
func NewSystem(elements ...*Element) (*System, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("system requires at least one element")
	}

	for i := 1; i < len(elements); i++ {
		prev, cur := elements[i-1], elements[i]
		if cur.FrontVertex() <= prev.FrontVertex() {
			return nil, fmt.Errorf("element %d at offset %f is not after element %d at offset %f",
				i, cur.FrontVertex(), i-1, prev.FrontVertex())
		}
		if cur.FrontVertex() < prev.BackVertex() {
			return nil, fmt.Errorf("element %d at offset %f overlaps element %d ending at %f",
				i, cur.FrontVertex(), i-1, prev.BackVertex())
		}
	}

	return &System{Elements: elements}, nil
}

// Gap returns the air gap between element i and element i+1.
func (s *System) Gap(i int) float64 {
	return s.Elements[i+1].FrontVertex() - s.Elements[i].BackVertex()
}

// FrontVertex returns the axial position of the first surface in the system.
func (s *System) FrontVertex() float64 {
	return s.Elements[0].FrontVertex()
}

// BackVertex returns the axial position of the last surface in the system.
func (s *System) BackVertex() float64 {
	return s.Elements[len(s.Elements)-1].BackVertex()
}

// SemiAperture returns the largest clear half-aperture in the system,
// used as the default height range for parallel bundles.
func (s *System) SemiAperture() float64 {
	maxAperture := 0.0
	for _, e := range s.Elements {
		if e.SemiAperture() > maxAperture {
			maxAperture = e.SemiAperture()
		}
	}
	return maxAperture
}
