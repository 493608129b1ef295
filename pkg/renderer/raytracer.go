package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Trace returns the color seen along ray and the number of rays traced to
// compute it. remaining is the budget of secondary rays shared by
// reflection and transparency; it must be positive. Shapes whose identity
// equals ignore are skipped.
func Trace(ray core.Ray, sc *scene.Scene, ls *lights.Set, remaining int, ignore geometry.ObjectID) (core.Color, int) {
	if remaining <= 0 {
		panic(fmt.Sprintf("renderer: Trace called with ray budget %d, must be > 0", remaining))
	}
	return trace(ray, sc, ls, remaining, ignore)
}

// trace is Trace without the entry check; remaining may reach zero here,
// which stops further recursion
func trace(ray core.Ray, sc *scene.Scene, ls *lights.Set, remaining int, ignore geometry.ObjectID) (core.Color, int) {
	hit, isHit := hitWorld(sc, ray, ignore)
	if !isHit {
		return sc.Background, 1
	}
	return shade(ray, hit, sc, ls, remaining)
}

// hitWorld finds the nearest hit along ray, skipping ignore
func hitWorld(sc *scene.Scene, ray core.Ray, ignore geometry.ObjectID) (geometry.Hit, bool) {
	var closestHit geometry.Hit
	closestSoFar := math.Inf(1)
	hitAnything := false

	for i, shape := range sc.Shapes {
		id := geometry.ObjectID(i)
		if id == ignore {
			continue
		}
		if hit, isHit := shape.Intersect(ray, closestSoFar); isHit {
			hit.Object = id
			closestHit = hit
			closestSoFar = hit.T
			hitAnything = true
		}
	}

	return closestHit, hitAnything
}

// shade combines local lighting with the reflected and transmitted colors
func shade(ray core.Ray, hit geometry.Hit, sc *scene.Scene, ls *lights.Set, remaining int) (core.Color, int) {
	m := hit.Material

	// Backgrounds are self-luminous and have no surface to bounce from
	if hit.IsInfinite() {
		return m.Color, 1
	}

	rayCount := 1
	color := localShade(ray, hit, sc, ls)

	if m.Reflectivity > 0 {
		reflected := m.Color
		if remaining > 0 {
			c, n := trace(ray.Reflect(hit.Point, hit.Normal), sc, ls, remaining-1, hit.Object)
			reflected = c
			rayCount += n
		}
		color = color.Add(reflected.Scale(m.Reflectivity))
	}

	opacity := m.Opacity()
	if m.IsTransparent() && remaining > 0 {
		// Each hop starts at the previous hit and skips the surface it left
		c, n := trace(core.NewRay(hit.Point, ray.Direction), sc, ls, remaining-1, hit.Object)
		color = color.Add(c.Scale(1 - m.Opacity()))
		opacity += c.A * (1 - m.Opacity())
		rayCount += n
	}

	return color.WithAlpha(opacity), rayCount
}

// localShade sums ambient, diffuse and specular terms over all lights,
// weighted by intensity and normalized by the total intensity
func localShade(ray core.Ray, hit geometry.Hit, sc *scene.Scene, ls *lights.Set) core.Color {
	if !ls.Lit() {
		return core.Transparent
	}

	m := hit.Material
	var total core.Color

	for _, light := range ls.Sources() {
		toLight := light.Position.Sub(hit.Point)
		distToLight := toLight.Norm()
		toLight = toLight.Normalize()

		amount := lightAmount(sc, core.NewRay(hit.Point, toLight), distToLight, hit.Object)
		halfAngle := toLight.Sub(ray.Direction).Normalize()

		mixed := light.Color.Mul(m.Color)
		ambient := mixed.Scale(sc.Ambient)
		diffuse := mixed.Scale(core.Clamp01(hit.Normal.Dot(toLight)) * amount * m.Diffuse)
		specular := light.Color.Scale(
			math.Pow(core.Clamp01(hit.Normal.Dot(halfAngle)), float64(m.SpecularN)) * amount * m.Specular)

		total = total.Add(ambient.Add(diffuse).Add(specular).Scale(light.Intensity))
	}

	return total.Scale(1 / ls.TotalIntensity())
}

// lightAmount returns the fraction of light that reaches the origin of
// ray from distance dist. Every shape crossing the segment, other than
// self, attenuates it by its transparency.
func lightAmount(sc *scene.Scene, ray core.Ray, dist float64, self geometry.ObjectID) float64 {
	amount := 1.0
	for i, shape := range sc.Shapes {
		if geometry.ObjectID(i) == self {
			continue
		}
		if hit, isHit := shape.Intersect(ray, dist); isHit {
			amount *= 1 - hit.Material.Opacity()
			if amount <= 0 {
				return 0
			}
		}
	}
	return amount
}

// FirstHit returns the nearest hit along ray with no objects excluded.
// The hit's Object is the index of the shape in sc.
func FirstHit(sc *scene.Scene, ray core.Ray) (geometry.Hit, bool) {
	return hitWorld(sc, ray, geometry.NoObject)
}
