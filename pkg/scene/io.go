package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// ErrUnknownMaterial is returned when a shape references a material the file does not define
var ErrUnknownMaterial = errors.New("unknown material")

// ErrInvalidCamera is returned when a camera cannot form an orthonormal basis
var ErrInvalidCamera = errors.New("invalid camera")

// File is the JSON representation of a scene
type File struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Camera      *CameraFile             `json:"camera,omitempty"`
	Background  [4]float64              `json:"background"`
	Ambient     *float64                `json:"ambient,omitempty"`
	Materials   map[string]MaterialFile `json:"materials"`
	Spheres     []SphereFile            `json:"spheres,omitempty"`
	Triangles   []TriangleFile          `json:"triangles,omitempty"`
	Planes      []PlaneFile             `json:"planes,omitempty"`
	Lights      []LightFile             `json:"lights"`
	Render      SamplingConfig          `json:"render"`
}

// CameraFile is the JSON form of CameraConfig. A file without a camera
// block uses the New defaults; an omitted fov is 60 degrees.
type CameraFile struct {
	Position [3]float64 `json:"position"`
	Look     [3]float64 `json:"look"`
	Up       [3]float64 `json:"up"`
	FOV      float64    `json:"fov"`
}

// MaterialFile is the JSON form of a material
type MaterialFile struct {
	Color        [4]float64 `json:"color"`
	Diffuse      float64    `json:"diffuse"`
	Specular     float64    `json:"specular"`
	SpecularN    int        `json:"specularN"`
	Reflectivity float64    `json:"reflectivity"`
	Texture      string     `json:"texture,omitempty"`
}

// SphereFile is the JSON form of a sphere
type SphereFile struct {
	Center   [3]float64 `json:"center"`
	Radius   Radius     `json:"radius"`
	Material string     `json:"material"`
}

// TriangleFile is the JSON form of a triangle
type TriangleFile struct {
	Vertices [3][3]float64 `json:"vertices"`
	Material string        `json:"material"`
}

// PlaneFile is the JSON form of an infinite plane
type PlaneFile struct {
	Point    [3]float64 `json:"point"`
	Normal   [3]float64 `json:"normal"`
	Material string     `json:"material"`
}

// LightFile is the JSON form of a point light
type LightFile struct {
	Position  [3]float64 `json:"position"`
	Color     [4]float64 `json:"color"`
	Intensity float64    `json:"intensity"`
}

// config validates the camera and fills an omitted fov with defaultFOV
func (c *CameraFile) config(defaultFOV float64) (CameraConfig, error) {
	camera := CameraConfig{
		Position: vec(c.Position),
		Look:     vec(c.Look),
		Up:       vec(c.Up),
		FOV:      c.FOV,
	}
	if camera.FOV == 0 {
		camera.FOV = defaultFOV
	}

	switch {
	case camera.Look.Norm() == 0:
		return CameraConfig{}, fmt.Errorf("camera look is zero: %w", ErrInvalidCamera)
	case camera.Up.Norm() == 0:
		return CameraConfig{}, fmt.Errorf("camera up is zero: %w", ErrInvalidCamera)
	case camera.Up.Cross(camera.Look).Norm() == 0:
		return CameraConfig{}, fmt.Errorf("camera up is parallel to look: %w", ErrInvalidCamera)
	case camera.FOV <= 0 || camera.FOV >= 180:
		return CameraConfig{}, fmt.Errorf("camera fov %g outside (0, 180): %w", camera.FOV, ErrInvalidCamera)
	}
	return camera, nil
}

// Radius is a sphere radius that may be written as the string "inf"
type Radius float64

func (r Radius) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(r), 1) {
		return []byte(`"inf"`), nil
	}
	return json.Marshal(float64(r))
}

func (r *Radius) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("radius %q: %w", s, err)
		}
		*r = Radius(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Radius(v)
	return nil
}

// Load reads a Scene from a JSON file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	sc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Decode reads a JSON scene and builds it
func Decode(r io.Reader) (*Scene, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return file.Build()
}

// Build converts the file representation into a Scene, validating materials
func (f *File) Build() (*Scene, error) {
	s := New(f.Name)
	s.Description = f.Description
	if f.Camera != nil {
		camera, err := f.Camera.config(s.CameraConfig.FOV)
		if err != nil {
			return nil, err
		}
		s.CameraConfig = camera
	}
	s.Background = color(f.Background)
	if f.Ambient != nil {
		s.Ambient = *f.Ambient
	}
	if f.Render != (SamplingConfig{}) {
		s.SamplingConfig = f.Render
	}

	materials := make(map[string]material.Material, len(f.Materials))
	for name, mf := range f.Materials {
		m, err := material.New(color(mf.Color), mf.Diffuse, mf.Specular, mf.SpecularN, mf.Reflectivity)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		if mf.Texture != "" {
			m = m.WithTexture(mf.Texture)
		}
		materials[name] = m
	}
	lookup := func(name string) (material.Material, error) {
		m, ok := materials[name]
		if !ok {
			return material.Material{}, fmt.Errorf("%q: %w", name, ErrUnknownMaterial)
		}
		return m, nil
	}

	for i, sf := range f.Spheres {
		m, err := lookup(sf.Material)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.Add(geometry.NewSphere(vec(sf.Center), float64(sf.Radius), m))
	}
	for i, tf := range f.Triangles {
		m, err := lookup(tf.Material)
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		s.Add(geometry.NewTriangle(vec(tf.Vertices[0]), vec(tf.Vertices[1]), vec(tf.Vertices[2]), m))
	}
	for i, pf := range f.Planes {
		m, err := lookup(pf.Material)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		s.Add(geometry.NewPlane(vec(pf.Point), vec(pf.Normal), m))
	}

	ls := make([]lights.Light, 0, len(f.Lights))
	for _, lf := range f.Lights {
		ls = append(ls, lights.NewPointLight(vec(lf.Position), color(lf.Color), lf.Intensity))
	}
	s.SetLights(ls...)

	return s, nil
}

// Save writes a Scene to a JSON file.
func Save(path string, sc *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	if err := Encode(f, sc); err != nil {
		return err
	}
	return f.Close()
}

// Encode writes sc as indented JSON. Shapes are grouped by kind, so
// object indices may change on a round trip.
func Encode(w io.Writer, sc *Scene) error {
	file, err := ToFile(sc)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// ToFile converts a Scene into its file representation. Identical
// materials are written once.
func ToFile(sc *Scene) (*File, error) {
	ambient := sc.Ambient
	file := &File{
		Name:        sc.Name,
		Description: sc.Description,
		Camera: &CameraFile{
			Position: arr(sc.CameraConfig.Position),
			Look:     arr(sc.CameraConfig.Look),
			Up:       arr(sc.CameraConfig.Up),
			FOV:      sc.CameraConfig.FOV,
		},
		Background: rgba(sc.Background),
		Ambient:    &ambient,
		Materials:  make(map[string]MaterialFile),
		Render:     sc.SamplingConfig,
	}

	var seen []material.Material
	name := func(m material.Material) string {
		for i, other := range seen {
			if sameMaterial(m, other) {
				return fmt.Sprintf("m%d", i)
			}
		}
		seen = append(seen, m)
		n := fmt.Sprintf("m%d", len(seen)-1)
		mf := MaterialFile{
			Color:        rgba(m.Color),
			Diffuse:      m.Diffuse,
			Specular:     m.Specular,
			SpecularN:    m.SpecularN,
			Reflectivity: m.Reflectivity,
		}
		if m.Texture != nil {
			mf.Texture = m.Texture.Name
		}
		file.Materials[n] = mf
		return n
	}

	for i, shape := range sc.Shapes {
		switch obj := shape.(type) {
		case *geometry.Sphere:
			file.Spheres = append(file.Spheres, SphereFile{
				Center:   arr(obj.Center),
				Radius:   Radius(obj.Radius),
				Material: name(obj.Material),
			})
		case *geometry.Triangle:
			file.Triangles = append(file.Triangles, TriangleFile{
				Vertices: [3][3]float64{arr(obj.A), arr(obj.B), arr(obj.C)},
				Material: name(obj.Material),
			})
		case *geometry.Plane:
			file.Planes = append(file.Planes, PlaneFile{
				Point:    arr(obj.Point),
				Normal:   arr(obj.Normal(obj.Point)),
				Material: name(obj.Material),
			})
		default:
			return nil, fmt.Errorf("shape %d: cannot encode %T", i, shape)
		}
	}

	for _, l := range sc.Lights.Sources() {
		file.Lights = append(file.Lights, LightFile{
			Position:  arr(l.Position),
			Color:     rgba(l.Color),
			Intensity: l.Intensity,
		})
	}

	return file, nil
}

func sameMaterial(a, b material.Material) bool {
	textureA, textureB := "", ""
	if a.Texture != nil {
		textureA = a.Texture.Name
	}
	if b.Texture != nil {
		textureB = b.Texture.Name
	}
	a.Texture, b.Texture = nil, nil
	return a == b && textureA == textureB
}

func vec(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

func arr(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func color(a [4]float64) core.Color {
	return core.NewColor(a[0], a[1], a[2], a[3])
}

func rgba(c core.Color) [4]float64 {
	return [4]float64{c.R, c.G, c.B, c.A}
}
