package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
)

// DefaultAmbient is the ambient coefficient applied to every light
const DefaultAmbient = 0.2

// CameraConfig describes a pinhole camera. The length of Look is the focal
// distance. Up need not be orthogonal to Look; the renderer
// re-orthogonalizes it.
type CameraConfig struct {
	Position core.Vec3
	Look     core.Vec3
	Up       core.Vec3
	FOV      float64 // Horizontal field of view in degrees
}

// SamplingConfig contains the render settings a scene recommends
type SamplingConfig struct {
	Width    int `json:"width"`    // Image width
	Height   int `json:"height"`   // Image height
	MaxDepth int `json:"maxDepth"` // Combined reflection/transparency ray budget
	GridSize int `json:"gridSize"` // Antialiasing grid size; 0 disables supersampling
}

// Scene contains all the elements needed for rendering. A scene is built
// once and must not be modified while a render is in progress.
type Scene struct {
	Name           string
	Description    string
	CameraConfig   CameraConfig
	Shapes         []geometry.Shape // Objects in the scene; index is identity
	Lights         *lights.Set
	Background     core.Color // Returned for rays that hit nothing
	Ambient        float64
	SamplingConfig SamplingConfig
}

// New creates an empty scene with the default ambient coefficient and a
// transparent black background
func New(name string) *Scene {
	return &Scene{
		Name:       name,
		Lights:     lights.NewSet(),
		Background: core.Transparent,
		Ambient:    DefaultAmbient,
		CameraConfig: CameraConfig{
			Position: core.NewVec3(0, 0, 0),
			Look:     core.NewVec3(0, 0, 1),
			Up:       core.NewVec3(0, 1, 0),
			FOV:      60,
		},
		SamplingConfig: SamplingConfig{
			Width:    400,
			Height:   400,
			MaxDepth: 5,
		},
	}
}

// Add appends a shape and returns its identity
func (s *Scene) Add(shape geometry.Shape) geometry.ObjectID {
	s.Shapes = append(s.Shapes, shape)
	return geometry.ObjectID(len(s.Shapes) - 1)
}

// AddAll appends several shapes in order
func (s *Scene) AddAll(shapes ...geometry.Shape) {
	for _, shape := range shapes {
		s.Add(shape)
	}
}

// SetLights replaces the scene's light set
func (s *Scene) SetLights(ls ...lights.Light) {
	s.Lights = lights.NewSet(ls...)
}

// Shape returns the shape with the given identity, or nil
func (s *Scene) Shape(id geometry.ObjectID) geometry.Shape {
	if id < 0 || int(id) >= len(s.Shapes) {
		return nil
	}
	return s.Shapes[id]
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
