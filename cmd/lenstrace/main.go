package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/golenslab/lenstrace/pkg/focal"
	"github.com/golenslab/lenstrace/pkg/lens"
	"github.com/golenslab/lenstrace/pkg/material"
	"github.com/golenslab/lenstrace/pkg/paraxial"
	"github.com/golenslab/lenstrace/pkg/trace"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "singlet", "Scene type: 'singlet', 'doublet' or 'diverging'")
	glassName := flag.String("glass", "BK7", "Catalog glass for the singlet scene")
	numRays := flag.Int("rays", 11, "Number of rays in the parallel bundle")
	workers := flag.Int("workers", 0, "Number of trace workers (0 = one per CPU)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Lens ray tracer")
		fmt.Println("Usage: lenstrace [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  singlet   - biconvex lens, f ~ 97.6mm in BK7 (see -glass)")
		fmt.Println("  doublet   - cemented crown/flint doublet")
		fmt.Println("  diverging - biconcave lens with no real focus")
		fmt.Println()
		catalog := material.DefaultCatalog()
		fmt.Println("Available glasses:")
		for _, name := range []string{"BK7", "F2", "SF11", "FUSED_SILICA"} {
			n, _ := catalog.Index(name)
			fmt.Printf("  %-12s n = %.4f\n", name, n)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/diagram_<timestamp>.png")
		return
	}

	var system *lens.System
	var err error
	switch *sceneType {
	case "singlet":
		system, err = singletScene(*glassName)
	case "doublet":
		system = lens.CementedDoublet(0)
	case "diverging":
		system, err = lens.NewSystem(lens.BiconcaveSinglet(0))
	default:
		fmt.Printf("Unknown scene type: %s. Using singlet.\n", *sceneType)
		system, err = singletScene(*glassName)
		*sceneType = "singlet"
	}
	if err != nil {
		fmt.Printf("Error building scene: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tracing %d rays through '%s'...\n", *numRays, *sceneType)

	bundle := trace.ParallelBundle(*numRays,
		-system.SemiAperture()*0.9, system.SemiAperture()*0.9,
		system.FrontVertex()-system.SemiAperture()-10)
	stats := trace.TraceBundleParallel(bundle, system, *workers, trace.DefaultConfig())
	fmt.Printf("Traced: %d, blocked: %d, TIR: %d\n", stats.Traced, stats.Blocked, stats.TIR)

	reportProperties(system, bundle)

	outputDir := filepath.Join("output", *sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}
	filename := filepath.Join(outputDir, fmt.Sprintf("diagram_%s.png", time.Now().Format("2006-01-02_15-04-05")))

	if err := savePlot(system, bundle, filename); err != nil {
		fmt.Printf("Error saving diagram: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ray diagram saved to %s\n", filename)
}

// singletScene resolves the singlet's glass through the catalog before
// building the one-element system.
func singletScene(glass string) (*lens.System, error) {
	element, err := lens.SingletFromCatalog(material.DefaultCatalog(), glass, 0)
	if err != nil {
		return nil, err
	}
	return lens.NewSystem(element)
}

// reportProperties prints the paraxial cross-check next to the traced focal
// point.
func reportProperties(system *lens.System, bundle trace.Bundle) {
	if efl, ok := paraxial.SystemFocalLength(system); ok {
		fmt.Printf("Paraxial focal length: %.3f mm\n", efl)
	} else {
		fmt.Println("Paraxial focal length: undefined")
	}
	if bfd, ok := paraxial.BackFocalDistance(system); ok {
		fmt.Printf("Back focal distance:   %.3f mm\n", bfd)
	}
	if na, ok := paraxial.NumericalAperture(system, system.SemiAperture()*0.9); ok {
		fmt.Printf("Numerical aperture:    %.4f\n", na)
	}

	window := focal.Window{Min: system.FrontVertex(), Max: system.BackVertex() + 1000}
	if result, ok := focal.FindFocalPoint(bundle, window); ok {
		fmt.Printf("Traced focal point:    x=%.3f mm (spot %.4f mm, %d rays)\n",
			result.Point.X, result.SpotSize, result.RayCount)
		if x, radius, ok := focal.BestFocus(bundle, window); ok {
			fmt.Printf("Best focus plane:      x=%.3f mm (RMS spot %.4f mm)\n", x, radius)
		}
	} else {
		fmt.Println("Traced focal point:    none (diverging or unfocused bundle)")
	}
}

// savePlot renders the ray paths and lens outlines to a PNG.
func savePlot(system *lens.System, bundle trace.Bundle, filename string) error {
	p := plot.New()
	p.Title.Text = "Ray diagram"
	p.X.Label.Text = "z (mm)"
	p.Y.Label.Text = "y (mm)"

	for i, ray := range bundle {
		points := make(plotter.XYs, len(ray.Path))
		for j, point := range ray.Path {
			points[j].X = point.X
			points[j].Y = point.Y
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return fmt.Errorf("failed to build ray line: %v", err)
		}
		line.Color = plotutil.Color(i % 7)
		p.Add(line)
	}

	for _, element := range system.Elements {
		for _, s := range []*struct {
			profile func(y float64) float64
			semiAp  float64
		}{
			{element.Front.Profile, element.Front.SemiAperture},
			{element.Back.Profile, element.Back.SemiAperture},
		} {
			const samples = 40
			points := make(plotter.XYs, samples+1)
			for j := 0; j <= samples; j++ {
				y := -s.semiAp + 2*s.semiAp*float64(j)/samples
				points[j].X = s.profile(y)
				points[j].Y = y
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				return fmt.Errorf("failed to build surface line: %v", err)
			}
			line.Width = vg.Points(1.5)
			p.Add(line)
		}
	}

	return p.Save(10*vg.Inch, 5*vg.Inch, filename)
}
