package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// Sphere represents a sphere shape. A sphere with Radius = +Inf is a
// background sentinel: it is hit at infinite distance by every ray that
// has not hit anything finite.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// NewBackgroundSphere creates an infinite sphere that acts as a catch-all background
func NewBackgroundSphere(mat material.Material) *Sphere {
	return NewSphere(core.NewVec3(0, 0, 0), math.Inf(1), mat)
}

// IsBackground reports whether this is an infinite sentinel sphere
func (s *Sphere) IsBackground() bool {
	return math.IsInf(s.Radius, 1)
}

// Intersect solves |o + t*d - c|² = r² for the smallest positive t below closest
func (s *Sphere) Intersect(ray core.Ray, closest float64) (Hit, bool) {
	if s.IsBackground() {
		if !math.IsInf(closest, 1) {
			return Hit{}, false
		}
		return Hit{
			T:        math.Inf(1),
			Point:    ray.Origin,
			Normal:   ray.Direction.Mul(-1),
			Material: s.Material,
			Object:   NoObject,
		}, true
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Sub(s.Center)

	// Quadratic equation coefficients: at² + 2*halfB*t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return Hit{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// a > 0 here, so the minus root is the nearer one
	root := (-halfB - sqrtD) / a
	if root <= 0 {
		root = (-halfB + sqrtD) / a
	}
	if root <= 0 || root >= closest {
		return Hit{}, false
	}

	point := ray.At(root)
	return Hit{
		T:        root,
		Point:    point,
		Normal:   s.Normal(point),
		Material: s.Material,
		Object:   NoObject,
	}, true
}

// Normal returns the outward unit normal at point
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	if s.IsBackground() {
		return core.Vec3{}
	}
	return point.Sub(s.Center).Normalize()
}
