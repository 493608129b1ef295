package core

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Vec3 is a point or direction in scene space.
// x is east/west, y is up/down, z is north/south.
type Vec3 = r3.Vector

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return r3.Vector{X: x, Y: y, Z: z}
}

// Ray represents a ray with an origin and direction.
// Directions produced by the renderer are unit length, so t is a distance.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Reflect mirrors the ray direction about normal n at origin p
func (r Ray) Reflect(p, n Vec3) Ray {
	d := r.Direction
	return NewRay(p, d.Sub(n.Mul(2*d.Dot(n))))
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray(%v -> %v)", r.Origin, r.Direction)
}
