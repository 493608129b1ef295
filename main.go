package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/raster"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	Scene     string
	SceneFile string
	Width     int
	Height    int
	Depth     int
	AA        int
	Stereo    bool
	IPD       float64
	Workers   int
	Out       string
	Compare   string
}

func main() {
	var opts options

	// Parse command line flags
	flag.StringVar(&opts.Scene, "scene", "default", "Built-in scene: "+strings.Join(scene.Names(), ", "))
	flag.StringVar(&opts.SceneFile, "scene-file", "", "Load the scene from a JSON file instead")
	flag.IntVar(&opts.Width, "width", 0, "Image width (0 = scene default)")
	flag.IntVar(&opts.Height, "height", 0, "Image height (0 = scene default)")
	flag.IntVar(&opts.Depth, "depth", 0, "Reflection/transparency ray budget (0 = scene default)")
	flag.IntVar(&opts.AA, "aa", -1, "Antialiasing grid size, 0 = off (-1 = scene default)")
	flag.BoolVar(&opts.Stereo, "stereo", false, "Render a red/cyan anaglyph")
	flag.Float64Var(&opts.IPD, "ipd", 0.3, "Interocular distance for stereo renders")
	flag.IntVar(&opts.Workers, "workers", 0, "Number of parallel workers (0 = use CPU count)")
	flag.StringVar(&opts.Out, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	flag.StringVar(&opts.Compare, "compare", "", "Reference PNG to report the mean squared error against")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Recursive Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.ListBuiltinScenes() {
			fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
		}
		return
	}

	if err := run(context.Background(), opts, renderer.NewDefaultLogger()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// run renders the selected scene and writes the PNG files
func run(ctx context.Context, opts options, logger core.Logger) error {
	sc, err := createScene(opts.Scene, opts.SceneFile)
	if err != nil {
		return err
	}

	if err := sc.Lights.Validate(); err != nil {
		logger.Printf("Warning: scene %s: %v, surfaces will be unlit\n", sc.Name, err)
	}

	config, err := buildConfig(opts, sc)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == "" {
		timestamp := time.Now().Format("20060102_150405")
		out = filepath.Join("output", sc.Name, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	logger.Printf("Rendering scene %s (%d shapes, %d lights)\n", sc.Name, sc.GetPrimitiveCount(), sc.Lights.Len())

	if !opts.Stereo {
		buf, stats, err := renderer.NewRaytracer(sc, config, logger).Render(ctx)
		if err != nil {
			return err
		}
		logger.Printf("Rays per pixel: %.1f (range %d - %d), average luminance %.3f\n",
			stats.AverageRays, stats.MinRays, stats.MaxRays, renderer.CalculateAverageLuminance(buf))
		if err := buf.Save(out); err != nil {
			return err
		}
		logger.Printf("Render saved as %s\n", out)
		return compareToReference(buf, opts.Compare, logger)
	}

	result, err := renderer.NewAnaglyph(sc, config, opts.IPD, logger).Render(ctx)
	if err != nil {
		return err
	}
	logger.Printf("Left eye traced %d rays in %v, right eye traced %d rays in %v\n",
		result.LeftStats.TotalRays, result.LeftStats.Elapsed,
		result.RightStats.TotalRays, result.RightStats.Elapsed)

	ext := filepath.Ext(out)
	base := strings.TrimSuffix(out, ext)
	files := []struct {
		path string
		save func(string) error
	}{
		{out, result.Composite.Save},
		{base + "_left" + ext, result.Left.Save},
		{base + "_right" + ext, result.Right.Save},
	}
	for _, f := range files {
		if err := f.save(f.path); err != nil {
			return err
		}
		logger.Printf("Render saved as %s\n", f.path)
	}
	return compareToReference(result.Composite, opts.Compare, logger)
}

// compareToReference logs the mean squared error between buf and the image
// at refPath. An empty refPath skips the comparison.
func compareToReference(buf *raster.Buffer, refPath string, logger core.Logger) error {
	if refPath == "" {
		return nil
	}
	ref, err := raster.Load(refPath)
	if err != nil {
		return fmt.Errorf("loading reference %s: %w", refPath, err)
	}
	mse, err := raster.MeanSquaredError(buf, ref)
	if err != nil {
		return fmt.Errorf("comparing with %s: %w", refPath, err)
	}
	logger.Printf("Mean squared error against %s: %.6f\n", refPath, mse)
	return nil
}

// createScene loads sceneFile when set, otherwise the named built-in scene
func createScene(sceneName, sceneFile string) (*scene.Scene, error) {
	if sceneFile != "" {
		return scene.Load(sceneFile)
	}
	return scene.Resolve(sceneName)
}

// buildConfig starts from the scene's recommended settings and applies
// any command line overrides
func buildConfig(opts options, sc *scene.Scene) (renderer.Config, error) {
	config := renderer.ConfigFromScene(sc)

	if opts.Width < 0 || opts.Height < 0 || opts.Depth < 0 {
		return config, fmt.Errorf("negative size or depth: %dx%d, depth %d", opts.Width, opts.Height, opts.Depth)
	}
	if opts.Width > 0 {
		config.Width = opts.Width
	}
	if opts.Height > 0 {
		config.Height = opts.Height
	}
	if opts.Depth > 0 {
		config.MaxDepth = opts.Depth
	}
	switch {
	case opts.AA == 0:
		config.Antialiasing = renderer.Off()
	case opts.AA > 0:
		config.Antialiasing = renderer.Grid(opts.AA)
	}
	if opts.Workers > 0 {
		config.NumWorkers = opts.Workers
	}
	if opts.Stereo && opts.IPD < 0 {
		return config, fmt.Errorf("ipd must not be negative, got %g", opts.IPD)
	}

	return config, nil
}
