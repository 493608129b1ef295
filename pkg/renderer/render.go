package renderer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/raster"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Config contains the settings of a single render
type Config struct {
	Width        int          // Image width in pixels
	Height       int          // Image height in pixels
	MaxDepth     int          // Combined reflection/transparency ray budget, must be > 0
	Antialiasing Antialiasing // Primary rays per pixel
	NumWorkers   int          // Number of parallel workers (0 = use CPU count)
	TileSize     int          // Size of each tile (64x64 recommended)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:        400,
		Height:       400,
		MaxDepth:     5,
		Antialiasing: Off(),
		NumWorkers:   runtime.NumCPU(),
		TileSize:     64,
	}
}

// ConfigFromScene returns the default config with the size, depth and
// antialiasing recommended by sc
func ConfigFromScene(sc *scene.Scene) Config {
	config := DefaultConfig()
	sampling := sc.SamplingConfig
	if sampling.Width > 0 {
		config.Width = sampling.Width
	}
	if sampling.Height > 0 {
		config.Height = sampling.Height
	}
	if sampling.MaxDepth > 0 {
		config.MaxDepth = sampling.MaxDepth
	}
	if sampling.GridSize > 0 {
		config.Antialiasing = Grid(sampling.GridSize)
	}
	return config
}

// Raytracer renders a scene through a camera into a raster buffer
type Raytracer struct {
	scene  *scene.Scene
	config Config
	camera *Camera
	logger core.Logger
}

// NewRaytracer creates a raytracer for sc using the scene's camera. It
// panics if the image size or ray budget is not positive.
func NewRaytracer(sc *scene.Scene, config Config, logger core.Logger) *Raytracer {
	return newRaytracer(sc, sc.CameraConfig, config, logger)
}

func newRaytracer(sc *scene.Scene, camera scene.CameraConfig, config Config, logger core.Logger) *Raytracer {
	if config.Width <= 0 || config.Height <= 0 {
		panic(fmt.Sprintf("renderer: image size %dx%d, must be positive", config.Width, config.Height))
	}
	if config.MaxDepth <= 0 {
		panic(fmt.Sprintf("renderer: max depth %d, must be > 0", config.MaxDepth))
	}

	return &Raytracer{
		scene:  sc,
		config: config,
		camera: NewCamera(camera, config.Width, config.Height),
		logger: loggerOrNop(logger),
	}
}

// Camera returns the camera primary rays are generated from
func (rt *Raytracer) Camera() *Camera { return rt.camera }

// Config returns the render settings
func (rt *Raytracer) Config() Config { return rt.config }

// RenderPixel returns the final color of pixel (x, y) and the number of
// rays traced for it
func (rt *Raytracer) RenderPixel(x, y int) (core.Color, int) {
	return rt.config.Antialiasing.SamplePixel(x, y, func(px, py float64) (core.Color, int) {
		return Trace(rt.camera.GetRay(px, py), rt.scene, rt.scene.Lights, rt.config.MaxDepth, geometry.NoObject)
	})
}

// RenderBounds renders the pixels within bounds into buf
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, buf *raster.Buffer) RenderStats {
	var stats RenderStats
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color, rays := rt.RenderPixel(x, y)
			buf.Set(x, y, color)
			stats.addPixel(rays)
		}
	}
	return stats
}

// Render renders the full image using a tile grid and worker pool. If ctx
// is cancelled, tiles not yet started are skipped and the context error is
// returned.
func (rt *Raytracer) Render(ctx context.Context) (*raster.Buffer, RenderStats, error) {
	start := time.Now()
	buf := raster.NewBuffer(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize)

	workerPool := NewWorkerPool(rt, len(tiles), rt.config.NumWorkers)
	rt.logger.Printf("Rendering %dx%d in %d tiles (antialiasing %v, depth %d, %d workers)...\n",
		rt.config.Width, rt.config.Height, len(tiles), rt.config.Antialiasing,
		rt.config.MaxDepth, workerPool.GetNumWorkers())

	workerPool.Start(ctx)
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: taskID, Buffer: buf})
	}

	var stats RenderStats
	var renderErr error
	for range tiles {
		result, ok := workerPool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil && renderErr == nil {
			renderErr = result.Error
		}
		stats = stats.Merge(result.Stats)
	}
	workerPool.Stop()

	stats.Elapsed = time.Since(start)
	if renderErr != nil {
		return nil, stats, fmt.Errorf("render cancelled: %w", renderErr)
	}

	rt.logger.Printf("Render took %v and traced %d rays (%.1f per pixel)\n",
		stats.Elapsed, stats.TotalRays, stats.AverageRays)
	return buf, stats, nil
}

// Render is a convenience wrapper rendering sc with config
func Render(ctx context.Context, sc *scene.Scene, config Config, logger core.Logger) (*raster.Buffer, RenderStats, error) {
	return NewRaytracer(sc, config, logger).Render(ctx)
}
