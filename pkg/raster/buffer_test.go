package raster

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

func TestBuffer_SetGet(t *testing.T) {
	buf := NewBuffer(3, 2)
	if buf.Width() != 3 || buf.Height() != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", buf.Width(), buf.Height())
	}

	c := core.NewColor(0.1, 0.2, 0.3, 0.4)
	buf.Set(2, 1, c)

	if got := buf.Get(2, 1); got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	if got := buf.Get(0, 0); got != core.Transparent {
		t.Errorf("Expected new pixels to be transparent black, got %v", got)
	}
}

func TestBuffer_OutOfBoundsPanics(t *testing.T) {
	buf := NewBuffer(2, 2)
	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"x past width", 2, 0},
		{"y past height", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic for pixel (%d, %d)", tt.x, tt.y)
				}
			}()
			buf.Get(tt.x, tt.y)
		})
	}
}

func TestBuffer_SaveLoad(t *testing.T) {
	buf := NewBuffer(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			buf.Set(x, y, core.NewColor8(uint8(x*60), uint8(y*100), 128, 255))
		}
	}
	// Out-of-range channels are clamped on save
	buf.Set(0, 0, core.NewColor(2, -1, 0.5, 1))

	path := filepath.Join(t.TempDir(), "out.png")
	if err := buf.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Width() != 4 || loaded.Height() != 3 {
		t.Fatalf("Expected 4x3, got %dx%d", loaded.Width(), loaded.Height())
	}

	const tolerance = 1.0 / 255
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := buf.Get(x, y).Clamp()
			got := loaded.Get(x, y)
			if math.Abs(want.R-got.R) > tolerance || math.Abs(want.G-got.G) > tolerance ||
				math.Abs(want.B-got.B) > tolerance || math.Abs(want.A-got.A) > tolerance {
				t.Errorf("Pixel (%d, %d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}
