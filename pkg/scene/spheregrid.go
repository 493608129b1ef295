package scene

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(r, g, blue, 1).Clamp()
}

// NewSphereGridScene creates a grid of colored mirror spheres on a ground plane
func NewSphereGridScene() *Scene {
	s := New("spheregrid")
	s.Description = "10x10 grid of OKLCH-colored mirror spheres on a plane"
	s.Background = core.NewColor(0.5, 0.7, 1.0, 1)
	s.CameraConfig = CameraConfig{
		Position: core.NewVec3(4.5, 6, 18),
		Look:     core.NewVec3(0, -5.2, -13.5), // Towards the center of the grid
		Up:       core.NewVec3(0, 1, 0),
		FOV:      60,
	}
	s.SamplingConfig = SamplingConfig{
		Width:    320,
		Height:   180,
		MaxDepth: 4,
		GridSize: 2,
	}

	s.Add(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
		material.NewMatte(core.NewColor(0.5, 0.5, 0.5, 1))))

	const gridSize = 10
	const targetArea = 9.0
	spacing := targetArea / float64(gridSize-1)
	radius := spacing * 0.35

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue varies across x, chroma across z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			reflectivity := 0.2 + 0.15*float64((i+j)%3)
			m := material.NewMirror(oklchToRGB(lightness, chroma, hue), reflectivity)
			s.Add(geometry.NewSphere(core.NewVec3(x, radius, z), radius, m))
		}
	}

	s.SetLights(
		lights.NewPointLight(core.NewVec3(20, 25, 20), core.NewColor(1, 0.96, 0.83, 1), 1),
		lights.NewPointLight(core.NewVec3(-10, 15, 10), core.White, 0.4),
	)

	return s
}
