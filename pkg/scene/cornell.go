package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewQuad creates the parallelogram corner, corner+u, corner+u+v, corner+v
// as two triangles. Both face v × u.
func NewQuad(corner, u, v core.Vec3, mat material.Material) (*geometry.Triangle, *geometry.Triangle) {
	return geometry.NewTriangle(corner, corner.Add(u), corner.Add(v), mat),
		geometry.NewTriangle(corner.Add(u).Add(v), corner.Add(v), corner.Add(u), mat)
}

// NewCornellScene creates a Cornell box with a mirror sphere and a glass
// sphere, lit by a point light under the ceiling
func NewCornellScene() *Scene {
	s := New("cornell")
	s.Description = "Cornell box with a mirror sphere and a glass sphere"
	s.Background = core.Black
	s.CameraConfig = CameraConfig{
		Position: core.NewVec3(278, 278, -800), // Outside the box looking in
		Look:     core.NewVec3(0, 0, 1),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      40,
	}
	s.SamplingConfig = SamplingConfig{
		Width:    300,
		Height:   300,
		MaxDepth: 6,
		GridSize: 2,
	}

	white := material.NewMatte(core.NewColor(0.73, 0.73, 0.73, 1))
	red := material.NewMatte(core.NewColor(0.65, 0.05, 0.05, 1))
	green := material.NewMatte(core.NewColor(0.12, 0.45, 0.15, 1))

	// Standard 555x555x555 box, open towards the camera. Every wall faces inwards.
	const boxSize = 555.0
	x := core.NewVec3(boxSize, 0, 0)
	y := core.NewVec3(0, boxSize, 0)
	z := core.NewVec3(0, 0, boxSize)
	origin := core.NewVec3(0, 0, 0)

	walls := []struct {
		corner, u, v core.Vec3
		mat          material.Material
	}{
		{origin, x, z, white}, // Floor
		{y, z, x, white},      // Ceiling
		{z, x, y, white},      // Back wall
		{origin, z, y, red},   // Left wall
		{x, y, z, green},      // Right wall
	}
	for _, w := range walls {
		a, b := NewQuad(w.corner, w.u, w.v, w.mat)
		s.AddAll(a, b)
	}

	s.AddAll(
		geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewMirror(core.NewColor(0.8, 0.8, 0.9, 1), 0.8)),
		geometry.NewSphere(core.NewVec3(370, 90, 351), 90, material.NewGlass(core.NewColor(0.9, 0.95, 1, 1), 0.3)),
	)

	s.SetLights(
		lights.NewPointLight(core.NewVec3(278, 540, 278), core.NewColor(1, 0.95, 0.85, 1), 1),
		lights.NewPointLight(core.NewVec3(278, 278, -400), core.White, 0.3), // Fill light at the opening
	)

	return s
}
