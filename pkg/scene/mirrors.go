package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewGroundQuad creates two triangles forming a horizontal square centered
// at center. Both triangles face +y.
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) (*geometry.Triangle, *geometry.Triangle) {
	h := size / 2
	p00 := core.NewVec3(center.X-h, center.Y, center.Z-h)
	p10 := core.NewVec3(center.X+h, center.Y, center.Z-h)
	p01 := core.NewVec3(center.X-h, center.Y, center.Z+h)
	p11 := core.NewVec3(center.X+h, center.Y, center.Z+h)

	// (c-a) × (b-a) = +z × +x = +y
	return geometry.NewTriangle(p00, p10, p01, mat),
		geometry.NewTriangle(p11, p01, p10, mat)
}

// NewMirrorsScene creates reflective spheres over a checker-free triangle floor
func NewMirrorsScene() *Scene {
	s := New("mirrors")
	s.Description = "Reflective spheres on a triangle floor, two lights"
	s.Background = core.NewColor(0.1, 0.12, 0.2, 1)
	s.CameraConfig = CameraConfig{
		Position: core.NewVec3(0, 3, -6),
		Look:     core.NewVec3(0, -0.15, 1),
		Up:       core.NewVec3(0, 1, 0), // Not orthogonal to look
		FOV:      55,
	}
	s.SamplingConfig = SamplingConfig{
		Width:    320,
		Height:   240,
		MaxDepth: 6,
		GridSize: 2,
	}

	floor := material.MustNew(core.NewColor(0.8, 0.8, 0.75, 1), 0.7, 0.1, 8, 0.2)
	mirror := material.NewMirror(core.NewColor(0.95, 0.95, 1, 1), 0.85)
	red := material.NewMatte(core.NewColor(0.9, 0.15, 0.1, 1))
	blue := material.MustNew(core.NewColor(0.15, 0.3, 0.9, 1), 0.6, 0.4, 64, 0.25)

	a, b := NewGroundQuad(core.NewVec3(0, -2, 10), 40, floor)
	s.AddAll(
		a, b,
		geometry.NewSphere(core.NewVec3(0, 0, 10), 2, mirror),
		geometry.NewSphere(core.NewVec3(-4, -1, 8), 1, red),
		geometry.NewSphere(core.NewVec3(4, -0.5, 9), 1.5, blue),
	)
	s.SetLights(
		lights.NewPointLight(core.NewVec3(-6, 8, 2), core.White, 1),
		lights.NewPointLight(core.NewVec3(8, 6, 4), core.NewColor(1, 0.85, 0.7, 1), 1),
	)

	return s
}
