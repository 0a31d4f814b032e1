package lens

import "github.com/golenslab/lenstrace/pkg/material"

// Stock prescriptions used by the CLI and tests. Named glasses are resolved
// through the default catalog so the indices live in one place; the literal
// geometry is known-valid, so construction failures here are programmer
// errors.

var stockGlasses = material.DefaultCatalog()

func mustElement(p Prescription, offset float64) *Element {
	e, err := NewElement(p, offset)
	if err != nil {
		panic(err)
	}
	return e
}

func mustIndex(glass string) float64 {
	n, err := stockGlasses.Index(glass)
	if err != nil {
		panic(err)
	}
	return n
}

// BiconvexSinglet returns a symmetric BK7 biconvex lens with a focal length
// of roughly 97.6mm, the standard test lens for the focal cross-check.
func BiconvexSinglet(offset float64) *Element {
	return mustElement(Prescription{
		RadiusFront: 100,
		RadiusBack:  -100,
		Thickness:   5,
		Diameter:    25,
		Index:       mustIndex("BK7"),
	}, offset)
}

// SingletFromCatalog builds the standard biconvex test geometry from a named
// catalog glass.
func SingletFromCatalog(catalog material.Catalog, glass string, offset float64) (*Element, error) {
	n, err := catalog.Index(glass)
	if err != nil {
		return nil, err
	}
	return NewElement(Prescription{
		RadiusFront: 100,
		RadiusBack:  -100,
		Thickness:   5,
		Diameter:    25,
		Index:       n,
	}, offset)
}

// BiconcaveSinglet returns a diverging lens; parallel bundles traced through
// it never converge. The index is a generic n=1.5 glass, not a catalog entry.
func BiconcaveSinglet(offset float64) *Element {
	return mustElement(Prescription{
		RadiusFront: -50,
		RadiusBack:  50,
		Thickness:   5,
		Diameter:    25,
		Index:       1.5,
	}, offset)
}

// PlanoConvexSinglet returns a flat-backed BK7 lens.
func PlanoConvexSinglet(offset float64) *Element {
	return mustElement(Prescription{
		RadiusFront: 50,
		RadiusBack:  0,
		Thickness:   4,
		Diameter:    25,
		Index:       mustIndex("BK7"),
	}, offset)
}

// CementedDoublet returns a BK7 crown / F2 flint achromat-style doublet with
// a zero gap at the cemented interface.
func CementedDoublet(offset float64) *System {
	crown := mustElement(Prescription{
		RadiusFront: 62,
		RadiusBack:  -46,
		Thickness:   6,
		Diameter:    25,
		Index:       mustIndex("BK7"),
	}, offset)
	flint := mustElement(Prescription{
		RadiusFront: -46,
		RadiusBack:  -120,
		Thickness:   3,
		Diameter:    25,
		Index:       mustIndex("F2"),
	}, offset+6)

	system, err := NewSystem(crown, flint)
	if err != nil {
		panic(err)
	}
	return system
}
