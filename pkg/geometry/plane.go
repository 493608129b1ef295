package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3         // A point on the plane
	Material material.Material // Material of the plane
	normal   core.Vec3
}

// NewPlane creates a new plane. The normal is normalized.
func NewPlane(point, normal core.Vec3, mat material.Material) *Plane {
	return &Plane{
		Point:    point,
		Material: mat,
		normal:   normal.Normalize(),
	}
}

// Intersect reports the hit with 0 < t < closest. Rays parallel to the
// plane miss.
func (p *Plane) Intersect(ray core.Ray, closest float64) (Hit, bool) {
	denominator := ray.Direction.Dot(p.normal)
	if math.Abs(denominator) < degenerateEpsilon {
		return Hit{}, false
	}

	t := p.Point.Sub(ray.Origin).Dot(p.normal) / denominator
	if t <= 0 || t >= closest {
		return Hit{}, false
	}

	return Hit{
		T:        t,
		Point:    ray.At(t),
		Normal:   p.normal,
		Material: p.Material,
		Object:   NoObject,
	}, true
}

// Normal returns the plane's unit normal
func (p *Plane) Normal(core.Vec3) core.Vec3 {
	return p.normal
}
