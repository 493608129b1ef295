package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewWallQuad creates two triangles forming a vertical square at depth z,
// centered on (cx, cy), facing -z (toward a camera looking down +z)
func NewWallQuad(cx, cy, z, size float64, mat material.Material) (*geometry.Triangle, *geometry.Triangle) {
	h := size / 2
	bl := core.NewVec3(cx-h, cy-h, z)
	br := core.NewVec3(cx+h, cy-h, z)
	tl := core.NewVec3(cx-h, cy+h, z)
	tr := core.NewVec3(cx+h, cy+h, z)

	// (c-a) × (b-a) = +y × +x = -z
	return geometry.NewTriangle(bl, br, tl, mat),
		geometry.NewTriangle(tr, tl, br, mat)
}

// NewGlassScene creates partially transparent spheres that cast tinted,
// partial shadows on an opaque wall
func NewGlassScene() *Scene {
	s := New("glass")
	s.Description = "Semi-transparent spheres in front of an opaque wall"
	s.Background = core.NewColor(0.02, 0.02, 0.02, 1)
	s.SamplingConfig = SamplingConfig{
		Width:    300,
		Height:   200,
		MaxDepth: 8,
		GridSize: 3,
	}

	wall := material.NewMatte(core.NewColor(0.85, 0.85, 0.85, 1))
	cyanGlass := material.NewGlass(core.NewColor(0.2, 0.9, 0.9, 1), 0.3)
	amberGlass := material.NewGlass(core.NewColor(1, 0.7, 0.2, 1), 0.5)
	violet := material.NewMirror(core.NewColor(0.6, 0.2, 0.7, 1), 0.3)

	a, b := NewWallQuad(0, 0, 20, 60, wall)
	s.AddAll(
		a, b,
		geometry.NewSphere(core.NewVec3(-3, 0, 12), 2.5, cyanGlass),
		geometry.NewSphere(core.NewVec3(3, 0.5, 11), 2, amberGlass),
		// Touching the amber sphere
		geometry.NewSphere(core.NewVec3(3, 0.5, 15), 2, cyanGlass),
		geometry.NewSphere(core.NewVec3(0, -3, 16), 1.5, violet),
	)
	s.SetLights(
		lights.NewPointLight(core.NewVec3(0, 8, 0), core.White, 1),
		lights.NewPointLight(core.NewVec3(-8, 2, 2), core.NewColor(0.8, 0.8, 1, 1), 0.5),
	)

	return s
}
