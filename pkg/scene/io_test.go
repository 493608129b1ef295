package scene

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

const testSceneJSON = `{
  "name": "test",
  "camera": {"position": [0, 0, 0], "look": [0, 0, 2], "up": [0, 1, 0], "fov": 45},
  "background": [0.1, 0.2, 0.3, 1],
  "ambient": 0.3,
  "materials": {
    "sky": {"color": [0.5, 0.7, 1, 1], "specularN": 1},
    "white": {"color": [1, 1, 1, 1], "diffuse": 0.6, "specular": 0.2, "specularN": 16, "texture": "marble.png"}
  },
  "spheres": [
    {"center": [0, 0, 0], "radius": "inf", "material": "sky"},
    {"center": [0, 0, 16], "radius": 5, "material": "white"}
  ],
  "triangles": [
    {"vertices": [[0, 0, 10], [1, 0, 10], [0, 1, 10]], "material": "white"}
  ],
  "lights": [
    {"position": [3, 5, 15], "color": [1, 1, 1, 1], "intensity": 2}
  ],
  "render": {"width": 32, "height": 16, "maxDepth": 2, "gridSize": 4}
}`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.Name != "test" || s.Ambient != 0.3 || s.Background.B != 0.3 {
		t.Errorf("Scene header not decoded: %+v", s)
	}
	if s.CameraConfig.FOV != 45 || s.CameraConfig.Look.Z != 2 {
		t.Errorf("Camera not decoded: %+v", s.CameraConfig)
	}
	if s.SamplingConfig != (SamplingConfig{Width: 32, Height: 16, MaxDepth: 2, GridSize: 4}) {
		t.Errorf("Render config not decoded: %+v", s.SamplingConfig)
	}
	if len(s.Shapes) != 3 {
		t.Fatalf("Expected 3 shapes, got %d", len(s.Shapes))
	}

	bg, ok := s.Shapes[0].(*geometry.Sphere)
	if !ok || !bg.IsBackground() {
		t.Errorf("Expected first shape to be an infinite sphere, got %+v", s.Shapes[0])
	}
	white := s.Shapes[1].(*geometry.Sphere).Material
	if white.Texture == nil || white.Texture.Name != "marble.png" {
		t.Errorf("Texture not carried: %+v", white.Texture)
	}
	if s.Lights.TotalIntensity() != 2 {
		t.Errorf("Expected total intensity 2, got %f", s.Lights.TotalIntensity())
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		target error
	}{
		{
			name:   "unknown material",
			json:   `{"materials": {}, "spheres": [{"center": [0,0,0], "radius": 1, "material": "missing"}]}`,
			target: ErrUnknownMaterial,
		},
		{
			name:   "invalid material",
			json:   `{"materials": {"bad": {"color": [1,1,1,2]}}}`,
			target: material.ErrOutOfRange,
		},
		{
			name:   "zero camera look",
			json:   `{"camera": {"position": [0,0,0], "up": [0,1,0], "fov": 60}}`,
			target: ErrInvalidCamera,
		},
		{
			name:   "zero camera up",
			json:   `{"camera": {"look": [0,0,1], "fov": 60}}`,
			target: ErrInvalidCamera,
		},
		{
			name:   "up parallel to look",
			json:   `{"camera": {"look": [0,2,0], "up": [0,1,0]}}`,
			target: ErrInvalidCamera,
		},
		{
			name:   "fov out of range",
			json:   `{"camera": {"look": [0,0,1], "up": [0,1,0], "fov": 180}}`,
			target: ErrInvalidCamera,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.json))
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}

	if _, err := Decode(strings.NewReader(`{"spheres": [{"radius": "wide"}]}`)); err == nil {
		t.Error("Expected error for unparseable radius")
	}
	if _, err := Decode(strings.NewReader(`not json`)); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestDecode_CameraDefaults(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected CameraConfig
	}{
		{
			name:     "camera omitted",
			json:     `{"name": "no camera"}`,
			expected: New("").CameraConfig,
		},
		{
			name: "fov omitted",
			json: `{"camera": {"position": [1,2,3], "look": [0,0,1], "up": [0,1,0]}}`,
			expected: CameraConfig{
				Position: core.NewVec3(1, 2, 3),
				Look:     core.NewVec3(0, 0, 1),
				Up:       core.NewVec3(0, 1, 0),
				FOV:      60,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode(strings.NewReader(tt.json))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.CameraConfig != tt.expected {
				t.Errorf("Expected camera %+v, got %+v", tt.expected, s.CameraConfig)
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	original, err := Decode(strings.NewReader(testSceneJSON))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, original); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"inf"`) {
		t.Error("Infinite radius should be written as \"inf\"")
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode of encoded scene failed: %v", err)
	}
	if len(decoded.Shapes) != len(original.Shapes) {
		t.Fatalf("Expected %d shapes, got %d", len(original.Shapes), len(decoded.Shapes))
	}
	if decoded.Ambient != original.Ambient || decoded.Background != original.Background {
		t.Error("Scene settings lost in round trip")
	}
	if r := decoded.Shapes[0].(*geometry.Sphere).Radius; !math.IsInf(r, 1) {
		t.Errorf("Expected infinite radius, got %f", r)
	}

	file, _ := ToFile(original)
	if len(file.Materials) != 2 {
		t.Errorf("Expected shared materials to be written once, got %d", len(file.Materials))
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirrors.json")
	if err := Save(path, NewMirrorsScene()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "mirrors" || len(loaded.Shapes) != len(NewMirrorsScene().Shapes) {
		t.Errorf("Unexpected loaded scene %q with %d shapes", loaded.Name, len(loaded.Shapes))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestListFileScenes(t *testing.T) {
	scenes, err := ListFileScenes(filepath.Join("..", "..", "scenes"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) < 2 {
		t.Fatalf("Expected at least 2 scene files, got %d", len(scenes))
	}
	for _, info := range scenes {
		if info.Type != "file" || info.FilePath == "" {
			t.Errorf("Unexpected scene info %+v", info)
		}
		if _, err := Resolve(info.FilePath); err != nil {
			t.Errorf("Scene file %s does not load: %v", info.FilePath, err)
		}
	}

	empty, err := ListFileScenes(filepath.Join(t.TempDir(), "none"))
	if err != nil || len(empty) != 0 {
		t.Errorf("Missing directory should list nothing, got %v, %v", empty, err)
	}
}

func TestListBuiltinScenes(t *testing.T) {
	infos := ListBuiltinScenes()
	if len(infos) != len(Names()) {
		t.Fatalf("Expected %d built-in scenes, got %d", len(Names()), len(infos))
	}
	for _, info := range infos {
		if info.Type != "builtin" || info.Description == "" {
			t.Errorf("Unexpected scene info %+v", info)
		}
	}
}

func TestEncode_Planes(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, NewSentinelScene()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"planes"`) {
		t.Error("Expected the ground plane to be written")
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	var planes int
	for _, shape := range decoded.Shapes {
		if p, ok := shape.(*geometry.Plane); ok {
			planes++
			if n := p.Normal(p.Point); n != core.NewVec3(0, 1, 0) {
				t.Errorf("Expected ground normal (0,1,0), got %v", n)
			}
		}
	}
	if planes != 1 {
		t.Errorf("Expected 1 plane, got %d", planes)
	}
}
