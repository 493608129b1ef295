package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// degenerateEpsilon bounds the system determinant below which a triangle is
// treated as having no area (or the ray as parallel to its plane).
const degenerateEpsilon = 1e-12

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	A, B, C  core.Vec3         // The three vertices
	Material material.Material // Material of the triangle
	normal   core.Vec3         // Cached normal vector
}

// NewTriangle creates a new triangle from three vertices. The normal is
// normalize((c-a) × (b-a)), so its sign follows the vertex winding.
func NewTriangle(a, b, c core.Vec3, mat material.Material) *Triangle {
	return &Triangle{
		A:        a,
		B:        b,
		C:        c,
		Material: mat,
		normal:   c.Sub(a).Cross(b.Sub(a)).Normalize(),
	}
}

// Intersect solves o + t*d = a + beta*(b-a) + gamma*(c-a) by Cramer's rule
func (tr *Triangle) Intersect(ray core.Ray, closest float64) (Hit, bool) {
	ab := tr.A.Sub(tr.B)
	ac := tr.A.Sub(tr.C)
	ao := tr.A.Sub(ray.Origin)
	d := ray.Direction

	det := ab.Dot(ac.Cross(d))
	if math.Abs(det) < degenerateEpsilon {
		return Hit{}, false
	}
	inv := 1 / det

	t := ab.Dot(ac.Cross(ao)) * inv
	if !(t > 0 && t <= closest) {
		return Hit{}, false
	}

	gamma := ab.Dot(ao.Cross(d)) * inv
	if gamma < 0 || gamma > 1 {
		return Hit{}, false
	}

	beta := ao.Dot(ac.Cross(d)) * inv
	if beta < 0 || beta > 1-gamma {
		return Hit{}, false
	}

	return Hit{
		T:        t,
		Point:    ray.At(t),
		Normal:   tr.normal,
		Material: tr.Material,
		Object:   NoObject,
	}, true
}

// Normal returns the triangle's constant unit normal
func (tr *Triangle) Normal(core.Vec3) core.Vec3 {
	return tr.normal
}
