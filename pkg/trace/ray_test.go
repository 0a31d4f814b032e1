package trace

import (
	"math"
	"testing"

	"github.com/golenslab/lenstrace/pkg/geom"
)

func TestRay_Propagate(t *testing.T) {
	ray := NewRay(geom.NewVec2(0, 0), geom.NewVec2(1, 0))

	ray.Propagate(5)
	if ray.Origin != geom.NewVec2(5, 0) {
		t.Errorf("Expected origin (5,0), got %v", ray.Origin)
	}
	if len(ray.Path) != 2 {
		t.Errorf("Expected 2 path points, got %d", len(ray.Path))
	}

	// Zero distance still appends a path point
	ray.Propagate(0)
	if len(ray.Path) != 3 {
		t.Errorf("Expected zero-distance propagate to append, got %d points", len(ray.Path))
	}
}

func TestRay_NewRayNormalizesDirection(t *testing.T) {
	ray := NewRay(geom.NewVec2(0, 0), geom.NewVec2(3, 4))
	if math.Abs(ray.Dir.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction, got length %f", ray.Dir.Length())
	}
	if ray.Intensity != 1.0 {
		t.Errorf("Expected intensity 1.0, got %f", ray.Intensity)
	}
}

func TestRay_Refract_AirToGlass(t *testing.T) {
	// 45-degree incidence from air onto glass, normal pointing up
	ray := NewRay(geom.NewVec2(0, 1), geom.NewVec2(1, -1).Normalize())
	normal := geom.NewVec2(0, 1)

	if !ray.Refract(1.0, 1.5168, normal) {
		t.Fatal("Expected refraction, got total internal reflection")
	}

	// Snell: sin(theta_t) = (n1/n2) * sin(45 deg)
	expectedSin := (1.0 / 1.5168) * math.Sqrt(0.5)
	if math.Abs(ray.Dir.X-expectedSin) > 1e-9 {
		t.Errorf("Expected transmitted sin %f, got %f", expectedSin, ray.Dir.X)
	}

	// Transmitted ray stays on the incident side of the normal and keeps
	// traveling into the surface
	if ray.Dir.X <= 0 || ray.Dir.Y >= 0 {
		t.Errorf("Refracted ray on wrong side of normal: %v", ray.Dir)
	}
	if math.Abs(ray.Dir.Length()-1) > 1e-12 {
		t.Errorf("Expected unit direction after refraction, got length %f", ray.Dir.Length())
	}
}

func TestRay_Refract_GlassToAir(t *testing.T) {
	// 30-degree incidence from glass into air, below the critical angle
	angle := 30.0 * math.Pi / 180
	ray := NewRay(geom.NewVec2(0, 0), geom.NewVec2(math.Sin(angle), -math.Cos(angle)))
	normal := geom.NewVec2(0, 1)

	if !ray.Refract(1.5168, 1.0, normal) {
		t.Fatal("Expected refraction below critical angle, got TIR")
	}

	expectedSin := 1.5168 * math.Sin(angle)
	if math.Abs(ray.Dir.X-expectedSin) > 1e-9 {
		t.Errorf("Expected transmitted sin %f, got %f", expectedSin, ray.Dir.X)
	}
}

func TestRay_Refract_TotalInternalReflection(t *testing.T) {
	// 45-degree incidence from glass into air exceeds the ~41.2 degree
	// critical angle of BK7
	ray := NewRay(geom.NewVec2(0, 0), geom.NewVec2(1, -1).Normalize())
	normal := geom.NewVec2(0, 1)

	if ray.Refract(1.5168, 1.0, normal) {
		t.Fatal("Expected total internal reflection, got refraction")
	}
	if !ray.TIR {
		t.Error("Expected TIR flag to be set")
	}

	// Mirror reflection: tangential component preserved, normal component flipped
	expected := geom.NewVec2(1, 1).Normalize()
	if math.Abs(ray.Dir.X-expected.X) > 1e-12 || math.Abs(ray.Dir.Y-expected.Y) > 1e-12 {
		t.Errorf("Expected mirror reflection %v, got %v", expected, ray.Dir)
	}
}

func TestRay_Refract_CriticalAngleBoundary(t *testing.T) {
	critical := math.Asin(1.0 / 1.5168)

	// Just below critical: refracts
	below := NewRay(geom.NewVec2(0, 0), geom.FromAngle(-(math.Pi/2 - (critical - 1e-4))))
	if !below.Refract(1.5168, 1.0, geom.NewVec2(0, 1)) {
		t.Error("Expected refraction just below the critical angle")
	}

	// Just above critical: reflects
	above := NewRay(geom.NewVec2(0, 0), geom.FromAngle(-(math.Pi/2 - (critical + 1e-4))))
	if above.Refract(1.5168, 1.0, geom.NewVec2(0, 1)) {
		t.Error("Expected TIR just above the critical angle")
	}
}

func TestRay_Refract_NormalIncidence(t *testing.T) {
	ray := NewRay(geom.NewVec2(0, 1), geom.NewVec2(0, -1))
	normal := geom.NewVec2(0, 1)

	if !ray.Refract(1.0, 1.5168, normal) {
		t.Fatal("Expected refraction at normal incidence")
	}

	// Direction is unchanged at normal incidence
	if math.Abs(ray.Dir.X) > 1e-12 || math.Abs(ray.Dir.Y+1) > 1e-12 {
		t.Errorf("Expected unchanged direction (0,-1), got %v", ray.Dir)
	}
}
