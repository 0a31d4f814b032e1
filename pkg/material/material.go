package material

import "fmt"

// IndexFunc resolves a refractive index for a wavelength in micrometers.
// The dispersion model behind it (Sellmeier fits, temperature corrections)
// lives in the caller's material database; the tracer only consumes the
// resolved scalar and never caches it.
type IndexFunc func(wavelengthMicrons float64) float64

// StaticIndex returns an IndexFunc that ignores wavelength.
func StaticIndex(n float64) IndexFunc {
	return func(float64) float64 { return n }
}

// Catalog is a read-only glass table injected by the caller, mapping glass
// names to their index at the reference wavelength (587.6nm, helium d-line).
type Catalog map[string]float64

// Index looks up a glass by name.
func (c Catalog) Index(name string) (float64, error) {
	n, ok := c[name]
	if !ok {
		return 0, fmt.Errorf("unknown glass %q", name)
	}
	return n, nil
}

// DefaultCatalog returns a small catalog of common glasses, enough for the
// CLI and tests. Real designs inject their own table.
func DefaultCatalog() Catalog {
	return Catalog{
		"BK7":          1.5168,
		"F2":           1.6200,
		"SF11":         1.7847,
		"FUSED_SILICA": 1.4585,
	}
}
