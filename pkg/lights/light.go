package lights

import (
	"errors"
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ErrNoLights is returned by Validate when the set carries no usable intensity
var ErrNoLights = errors.New("light set has zero total intensity")

// Light is a point light source
type Light struct {
	Position  core.Vec3
	Color     core.Color
	Intensity float64
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, color core.Color, intensity float64) Light {
	return Light{Position: position, Color: color, Intensity: intensity}
}

// Set is an immutable collection of lights with the precomputed sum of
// their intensities used to normalize shading.
type Set struct {
	sources        []Light
	totalIntensity float64
}

// NewSet creates a light set. The input slice is copied.
func NewSet(sources ...Light) *Set {
	s := &Set{sources: append([]Light(nil), sources...)}
	for _, l := range s.sources {
		s.totalIntensity += l.Intensity
	}
	return s
}

// Sources returns the lights in insertion order. Callers must not modify the result.
func (s *Set) Sources() []Light {
	if s == nil {
		return nil
	}
	return s.sources
}

// Len returns the number of lights
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.sources)
}

// TotalIntensity returns the sum of all light intensities
func (s *Set) TotalIntensity() float64 {
	if s == nil {
		return 0
	}
	return s.totalIntensity
}

// Lit reports whether normalized shading is meaningful for this set
func (s *Set) Lit() bool {
	return s.TotalIntensity() > 0
}

// Validate returns ErrNoLights when shading would have nothing to normalize by
func (s *Set) Validate() error {
	if !s.Lit() {
		return fmt.Errorf("%d lights, total intensity %v: %w", s.Len(), s.TotalIntensity(), ErrNoLights)
	}
	return nil
}
