package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// ObjectID identifies one shape instance within a scene. Two shapes with
// identical geometry still have distinct IDs.
type ObjectID int

// NoObject is the ObjectID that matches nothing
const NoObject ObjectID = -1

// Hit contains information about a ray-object intersection
type Hit struct {
	T        float64           // Distance along the ray; +Inf for background hits
	Point    core.Vec3         // Point of intersection
	Normal   core.Vec3         // Unit surface normal
	Material material.Material // Material of the hit object
	Object   ObjectID          // Shape that produced the hit
}

// IsInfinite reports whether the hit came from a background sentinel
func (h Hit) IsInfinite() bool {
	return math.IsInf(h.T, 1)
}

// Shape interface for objects that can be hit by rays.
//
// Intersect reports the nearest hit with 0 < t < closest (triangles also
// accept t == closest). closest may be +Inf. The returned Hit has Object
// set to NoObject; the scene stamps its own ID on it.
type Shape interface {
	Intersect(ray core.Ray, closest float64) (Hit, bool)
	Normal(point core.Vec3) core.Vec3
}
