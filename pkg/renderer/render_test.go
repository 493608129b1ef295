package renderer

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

func TestRender_DefaultScene(t *testing.T) {
	sc := scene.NewDefaultScene()
	config := ConfigFromScene(sc)
	config.NumWorkers = 4
	config.TileSize = 16

	if config.Width != 64 || config.Height != 64 || config.MaxDepth != 1 || config.Antialiasing.Enabled() {
		t.Fatalf("Unexpected config from default scene: %+v", config)
	}

	rt := NewRaytracer(sc, config, core.NopLogger{})
	buf, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	sphere := sc.Shapes[0]
	hits, misses := 0, 0
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			c := buf.Get(x, y)
			if _, isHit := sphere.Intersect(rt.Camera().GetPixelRay(x, y), math.Inf(1)); !isHit {
				misses++
				if c != scene.DefaultBackground {
					t.Fatalf("pixel (%d,%d): expected background %v, got %v", x, y, scene.DefaultBackground, c)
				}
				continue
			}

			hits++
			if l := c.Luma(); l < sc.Ambient-tolerance || l > 1+tolerance {
				t.Fatalf("pixel (%d,%d): expected brightness in [%g, 1], got %f", x, y, sc.Ambient, l)
			}
		}
	}

	if hits == 0 || misses == 0 {
		t.Errorf("Expected both hits and misses, got %d hits and %d misses", hits, misses)
	}
	if stats.TotalPixels != 64*64 {
		t.Errorf("Expected %d pixels, got %d", 64*64, stats.TotalPixels)
	}
	// Opaque non-reflective sphere: one ray per pixel
	if stats.TotalRays != 64*64 || stats.MinRays != 1 || stats.MaxRays != 1 {
		t.Errorf("Expected one ray per pixel, got %+v", stats)
	}
}

func TestRender_WorkerCountDoesNotChangeImage(t *testing.T) {
	sc := scene.NewMirrorsScene()
	config := ConfigFromScene(sc)
	config.Width, config.Height = 48, 36
	config.Antialiasing = Grid(2)

	config.NumWorkers = 1
	single, _, err := NewRaytracer(sc, config, nil).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	config.NumWorkers = 8
	config.TileSize = 7
	parallel, _, err := NewRaytracer(sc, config, nil).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			if single.Get(x, y) != parallel.Get(x, y) {
				t.Fatalf("pixel (%d,%d) differs: %v vs %v", x, y, single.Get(x, y), parallel.Get(x, y))
			}
		}
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Render(ctx, scene.NewDefaultScene(), ConfigFromScene(scene.NewDefaultScene()), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestNewRaytracer_InvalidConfigPanics(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero depth", func(c *Config) { c.MaxDepth = 0 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			defer func() {
				if recover() == nil {
					t.Error("Expected NewRaytracer to panic")
				}
			}()
			NewRaytracer(scene.NewDefaultScene(), config, nil)
		})
	}
}

func TestRenderPixel_EdgeConvergence(t *testing.T) {
	// A 1x1 image with a 90 degree field of view maps pixel x in [0,1] to
	// world x = 10*(2x-1) on the z=10 wall. The wall edge at world x=-4 sits
	// at 0.3 of the pixel width.
	sc := scene.New("edge")
	sc.Background = core.Black
	sc.Ambient = 1
	sc.CameraConfig.FOV = 90
	sc.SetLights(lights.NewPointLight(core.NewVec3(0, 10, 0), core.White, 1))
	wall := material.MustNew(core.White, 0, 0, 1, 0)
	sc.Add(geometry.NewTriangle(
		core.NewVec3(-4, -100, 10), core.NewVec3(-4, 100, 10), core.NewVec3(-200, 0, 10), wall))

	pixel := func(n int) core.Color {
		config := DefaultConfig()
		config.Width, config.Height, config.MaxDepth = 1, 1, 1
		config.Antialiasing = Grid(n)
		c, _ := NewRaytracer(sc, config, nil).RenderPixel(0, 0)
		return c
	}

	reference := pixel(256)
	if math.Abs(reference.R-0.3) > 0.01 {
		t.Fatalf("Expected reference coverage near 0.3, got %f", reference.R)
	}

	mse := func(c core.Color) float64 {
		dr, dg, db := c.R-reference.R, c.G-reference.G, c.B-reference.B
		return (dr*dr + dg*dg + db*db) / 3
	}

	prevErr := math.Inf(1)
	for _, n := range []int{1, 4, 16} {
		err := mse(pixel(n))
		if err >= prevErr {
			t.Errorf("n=%d: expected error below %g, got %g", n, prevErr, err)
		}
		prevErr = err
	}
}

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 128, 64, 64, 2},
		{"partial tiles", 130, 70, 64, 6},
		{"tile larger than image", 10, 10, 64, 1},
		{"zero tile size", 30, 20, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			full := image.Rect(0, 0, tt.width, tt.height)
			area := 0
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
				}
				if !tile.Bounds.In(full) {
					t.Errorf("Tile %v exceeds image %v", tile.Bounds, full)
				}
				for _, other := range tiles[i+1:] {
					if tile.Bounds.Overlaps(other.Bounds) {
						t.Errorf("Tiles %v and %v overlap", tile.Bounds, other.Bounds)
					}
				}
				area += tile.Bounds.Dx() * tile.Bounds.Dy()
			}
			if area != tt.width*tt.height {
				t.Errorf("Expected tiles to cover %d pixels, got %d", tt.width*tt.height, area)
			}
		})
	}
}

func TestRenderStats_Merge(t *testing.T) {
	var a, b RenderStats
	for _, rays := range []int{1, 3} {
		a.addPixel(rays)
	}
	for _, rays := range []int{2, 6} {
		b.addPixel(rays)
	}

	merged := a.Merge(b)
	if merged.TotalPixels != 4 || merged.TotalRays != 12 || merged.MinRays != 1 || merged.MaxRays != 6 {
		t.Errorf("Unexpected merged stats: %+v", merged)
	}
	if merged.AverageRays != 3 {
		t.Errorf("Expected 3 rays per pixel, got %f", merged.AverageRays)
	}
	if got := (RenderStats{}).Merge(a); got != a {
		t.Errorf("Expected merge into empty stats to return %+v, got %+v", a, got)
	}
}
