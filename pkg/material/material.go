package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ErrOutOfRange is returned when a material parameter falls outside its valid range
var ErrOutOfRange = errors.New("material parameter out of range")

// Texture names an image bound to a material. It is carried through the
// renderer untouched; shading never samples it.
type Texture struct {
	Name string
}

// Material holds the local light-response parameters of a surface.
// Materials are plain values: copying one shares it without any way to
// mutate the original.
type Material struct {
	Color        core.Color // Base color; alpha is opacity
	Diffuse      float64    // Diffuse coefficient
	Specular     float64    // Specular coefficient
	SpecularN    int        // Specular (Phong) exponent
	Reflectivity float64    // Fraction of color taken from the mirror ray
	Texture      *Texture   // Optional, inert
}

// New creates a validated material
func New(color core.Color, diffuse, specular float64, specularN int, reflectivity float64) (Material, error) {
	m := Material{
		Color:        color,
		Diffuse:      diffuse,
		Specular:     specular,
		SpecularN:    specularN,
		Reflectivity: reflectivity,
	}
	if err := m.Validate(); err != nil {
		return Material{}, err
	}
	return m, nil
}

// MustNew is like New but panics on invalid parameters. Intended for
// built-in scenes whose parameters are constants.
func MustNew(color core.Color, diffuse, specular float64, specularN int, reflectivity float64) Material {
	m, err := New(color, diffuse, specular, specularN, reflectivity)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMatte creates an opaque, non-reflective diffuse material
func NewMatte(color core.Color) Material {
	return MustNew(color.WithAlpha(1), 0.6, 0.2, 16, 0)
}

// NewMirror creates an opaque material that takes the given fraction of its color from reflections
func NewMirror(color core.Color, reflectivity float64) Material {
	return MustNew(color.WithAlpha(1), 0.3, 0.5, 64, reflectivity)
}

// NewGlass creates a partially transparent material with the given opacity
func NewGlass(color core.Color, opacity float64) Material {
	return MustNew(color.WithAlpha(opacity), 0.2, 0.6, 128, 0.1)
}

// Validate checks that alpha and reflectivity are within [0,1] and the
// remaining coefficients are non-negative
func (m Material) Validate() error {
	c := m.Color
	for _, ch := range []struct {
		name  string
		value float64
	}{
		{"color.r", c.R}, {"color.g", c.G}, {"color.b", c.B}, {"color.a", c.A},
		{"reflectivity", m.Reflectivity},
	} {
		if !(ch.value >= 0 && ch.value <= 1) {
			return fmt.Errorf("%s = %v: %w", ch.name, ch.value, ErrOutOfRange)
		}
	}
	if !(m.Diffuse >= 0) {
		return fmt.Errorf("diffuse = %v: %w", m.Diffuse, ErrOutOfRange)
	}
	if !(m.Specular >= 0) {
		return fmt.Errorf("specular = %v: %w", m.Specular, ErrOutOfRange)
	}
	if m.SpecularN < 0 {
		return fmt.Errorf("specular exponent = %d: %w", m.SpecularN, ErrOutOfRange)
	}
	return nil
}

// Opacity returns the fraction of light the surface blocks
func (m Material) Opacity() float64 {
	return m.Color.A
}

// IsTransparent reports whether any light passes through the surface
func (m Material) IsTransparent() bool {
	return m.Color.A < 1
}

// WithTexture returns a copy of m bound to the named texture
func (m Material) WithTexture(name string) Material {
	m.Texture = &Texture{Name: name}
	return m
}
