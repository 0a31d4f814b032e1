package paraxial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golenslab/lenstrace/pkg/lens"
)

func singletSystem(t *testing.T, element *lens.Element) *lens.System {
	t.Helper()
	system, err := lens.NewSystem(element)
	require.NoError(t, err)
	return system
}

func TestSystemFocalLength_BK7Biconvex(t *testing.T) {
	// Thick-lens formula for r1=100, r2=-100, t=5, n=1.5168 gives ~97.58mm
	system := singletSystem(t, lens.BiconvexSinglet(0))

	efl, ok := SystemFocalLength(system)
	require.True(t, ok)
	assert.InDelta(t, 97.58, efl, 0.05)
}

func TestSystemFocalLength_BiconcaveIsNegative(t *testing.T) {
	system := singletSystem(t, lens.BiconcaveSinglet(0))

	efl, ok := SystemFocalLength(system)
	require.True(t, ok)
	assert.InDelta(t, -49.18, efl, 0.05)
}

func TestSystemFocalLength_FlatWindowUndefined(t *testing.T) {
	window, err := lens.NewElement(lens.Prescription{
		RadiusFront: 0,
		RadiusBack:  0,
		Thickness:   3,
		Diameter:    25,
		Index:       1.5168,
	}, 0)
	require.NoError(t, err)

	_, ok := ElementFocalLength(window)
	assert.False(t, ok, "flat-flat window has no defined power")

	// A system containing an undefined-power element reports undefined
	// rather than silently composing through it
	system, err := lens.NewSystem(lens.BiconvexSinglet(-20), window)
	require.NoError(t, err)

	_, ok = SystemFocalLength(system)
	assert.False(t, ok)
}

func TestBackFocalDistance_BK7Biconvex(t *testing.T) {
	system := singletSystem(t, lens.BiconvexSinglet(0))

	bfd, ok := BackFocalDistance(system)
	require.True(t, ok)
	assert.InDelta(t, 95.92, bfd, 0.05)
}

func TestPrincipalPlanes_SymmetricLens(t *testing.T) {
	// A symmetric biconvex lens has principal planes placed symmetrically
	// inside the glass
	system := singletSystem(t, lens.BiconvexSinglet(0))

	front, back, ok := PrincipalPlanes(system)
	require.True(t, ok)

	assert.InDelta(t, 1.66, front, 0.05)
	assert.InDelta(t, 3.34, back, 0.05)
	assert.InDelta(t, front-system.FrontVertex(), system.BackVertex()-back, 1e-9)
}

func TestImageDistance_FiniteConjugates(t *testing.T) {
	system := singletSystem(t, lens.BiconvexSinglet(0))

	image, ok := ImageDistance(system, 200)
	require.True(t, ok)
	assert.InDelta(t, 187.40, image, 0.05)

	mag, ok := Magnification(system, 200)
	require.True(t, ok)
	assert.InDelta(t, -0.9375, mag, 0.001, "real image is inverted and slightly reduced")
}

func TestImageDistance_ObjectAtFrontFocalPoint(t *testing.T) {
	system := singletSystem(t, lens.BiconvexSinglet(0))

	ffd, ok := FrontFocalDistance(system)
	require.True(t, ok)

	_, ok = ImageDistance(system, ffd)
	assert.False(t, ok, "object at the front focal point images to infinity")
}

func TestNumericalAperture(t *testing.T) {
	system := singletSystem(t, lens.BiconvexSinglet(0))

	na, ok := NumericalAperture(system, 10)
	require.True(t, ok)
	assert.InDelta(t, 0.1023, na, 0.001)

	// NA grows with aperture height
	naWide, ok := NumericalAperture(system, 12.5)
	require.True(t, ok)
	assert.Greater(t, naWide, na)
}

func TestSystemFocalLength_CementedDoublet(t *testing.T) {
	system := lens.CementedDoublet(0)

	efl, ok := SystemFocalLength(system)
	require.True(t, ok)
	assert.Greater(t, efl, 0.0, "crown-flint doublet should be converging")
	assert.Less(t, efl, 150.0)
}

func TestSystemMatrix_DeterminantIsUnity(t *testing.T) {
	// Equal object and image side indices make the ABCD determinant 1
	for name, system := range map[string]*lens.System{
		"singlet": singletSystem(t, lens.BiconvexSinglet(0)),
		"doublet": lens.CementedDoublet(0),
	} {
		m := SystemMatrix(system)
		det := m.At(0, 0)*m.At(1, 1) - m.At(0, 1)*m.At(1, 0)
		assert.InDelta(t, 1.0, det, 1e-9, "determinant for %s", name)
	}
}
