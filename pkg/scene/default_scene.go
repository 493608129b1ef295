package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// DefaultBackground is the background color of the default scene
var DefaultBackground = core.NewColor(0.05, 0.05, 0.15, 1)

// NewDefaultScene creates a single opaque white sphere lit by one light
func NewDefaultScene() *Scene {
	s := New("default")
	s.Description = "Opaque white sphere, one light, 64x64"
	s.Background = DefaultBackground
	s.SamplingConfig = SamplingConfig{
		Width:    64,
		Height:   64,
		MaxDepth: 1,
	}

	white := material.MustNew(core.White, 0.6, 0.2, 16, 0)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 16), 5, white))
	s.SetLights(lights.NewPointLight(core.NewVec3(3, 5, 15), core.White, 1))

	return s
}

// NewSentinelScene uses an infinite sphere as the background instead of
// the scene's background color
func NewSentinelScene() *Scene {
	s := New("sentinel")
	s.Description = "Background supplied by an infinite-radius sphere above a ground plane"
	s.SamplingConfig = SamplingConfig{
		Width:    200,
		Height:   200,
		MaxDepth: 3,
		GridSize: 2,
	}

	sky := material.MustNew(core.NewColor(0.45, 0.65, 0.95, 1), 0, 0, 1, 0)
	chrome := material.NewMirror(core.NewColor(0.9, 0.9, 0.9, 1), 0.7)
	orange := material.NewMatte(core.NewColor(0.95, 0.55, 0.1, 1))
	ground := material.NewMatte(core.NewColor(0.5, 0.5, 0.45, 1))

	s.AddAll(
		geometry.NewBackgroundSphere(sky),
		geometry.NewSphere(core.NewVec3(-2.5, 0, 14), 3, chrome),
		geometry.NewSphere(core.NewVec3(3, -1, 12), 2, orange),
		geometry.NewPlane(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0), ground),
	)
	s.SetLights(
		lights.NewPointLight(core.NewVec3(-10, 10, 0), core.White, 1),
		lights.NewPointLight(core.NewVec3(10, 5, 5), core.NewColor(1, 0.9, 0.8, 1), 0.5),
	)

	return s
}
