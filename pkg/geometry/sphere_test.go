package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

var testMaterial = material.NewMatte(core.White)

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Intersect(ray, math.Inf(1))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Intersect_Tangent(t *testing.T) {
	// A ray grazing the surface has a zero discriminant and counts as a miss
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Intersect(ray, math.Inf(1)); isHit {
		t.Errorf("Expected tangent ray to miss, got hit at t=%f", hit.T)
	}
}

func TestSphere_Intersect_OutsideAndInside(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "from outside",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "from inside",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Intersect(ray, math.Inf(1))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Normal.Sub(tt.expectedNormal).Norm() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Object != NoObject {
				t.Errorf("Shapes should not assign identity, got %d", hit.Object)
			}
		})
	}
}

func TestSphere_Intersect_BehindOrigin(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	if hit, isHit := sphere.Intersect(ray, math.Inf(1)); isHit {
		t.Errorf("Expected miss for sphere behind the ray, got t=%f", hit.T)
	}
}

func TestSphere_Intersect_ClosestBound(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	if hit, isHit := sphere.Intersect(ray, 0.5); isHit {
		t.Errorf("Expected miss due to closest bound, but got hit at t=%f", hit.T)
	}

	// The bound is strict
	if hit, isHit := sphere.Intersect(ray, 1.0); isHit {
		t.Errorf("Expected miss at t == closest, got hit at t=%f", hit.T)
	}

	if _, isHit := sphere.Intersect(ray, 1.0001); !isHit {
		t.Error("Expected hit just inside the closest bound")
	}
}

func TestSphere_Intersect_PointOnSurface(t *testing.T) {
	center := core.NewVec3(1, -2, 16)
	radius := 5.0
	sphere := NewSphere(center, radius, testMaterial)

	origins := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(-3, 4, -2),
		core.NewVec3(10, 10, 30),
	}
	offsets := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(2, 1, 0),
		core.NewVec3(-3, 3, 1),
		core.NewVec3(0, -4.5, 0),
	}

	for _, o := range origins {
		for _, off := range offsets {
			direction := center.Add(off).Sub(o).Normalize()
			ray := core.NewRay(o, direction)

			hit, isHit := sphere.Intersect(ray, math.Inf(1))
			if !isHit {
				t.Fatalf("Expected hit for ray %v", ray)
			}

			dist := hit.Point.Sub(center).Norm()
			if math.Abs(dist-radius) > 1e-9 {
				t.Errorf("Hit point %v is %f from center, expected %f", hit.Point, dist, radius)
			}
			if math.Abs(hit.Normal.Norm()-1) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", hit.Normal.Norm())
			}
			if hit.T <= 0 {
				t.Errorf("Expected positive distance, got %f", hit.T)
			}
		}
	}
}

func TestSphere_Background(t *testing.T) {
	bg := NewBackgroundSphere(material.NewMatte(core.NewColor(0.1, 0.2, 0.3, 1)))
	direction := core.NewVec3(0, 0.6, 0.8)
	ray := core.NewRay(core.NewVec3(1, 2, 3), direction)

	hit, isHit := bg.Intersect(ray, math.Inf(1))
	if !isHit {
		t.Fatal("Background sphere should be hit when nothing closer is known")
	}
	if !hit.IsInfinite() {
		t.Errorf("Expected infinite distance, got %f", hit.T)
	}
	if hit.Normal.Sub(direction.Mul(-1)).Norm() > 1e-12 {
		t.Errorf("Expected reversed ray direction as normal, got %v", hit.Normal)
	}

	if _, isHit := bg.Intersect(ray, 100); isHit {
		t.Error("Background sphere must not be hit once a finite hit is known")
	}
}
