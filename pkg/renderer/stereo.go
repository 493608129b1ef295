package renderer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/raster"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Anaglyph filter colors
var (
	LeftFilter  = core.Cyan
	RightFilter = core.Red
)

// StereoResult holds the composited anaglyph and both eye images
type StereoResult struct {
	Composite  *raster.Buffer
	Left       *raster.Buffer
	Right      *raster.Buffer
	LeftStats  RenderStats
	RightStats RenderStats
}

// Anaglyph renders a scene from two eyes separated along the camera's
// right vector and merges them into a cyan/red composite
type Anaglyph struct {
	left   *Raytracer
	right  *Raytracer
	ipd    float64
	logger core.Logger
}

// NewAnaglyph creates a stereo renderer with interocular distance ipd
func NewAnaglyph(sc *scene.Scene, config Config, ipd float64, logger core.Logger) *Anaglyph {
	left, right := EyeCameras(sc.CameraConfig, ipd)
	logger = loggerOrNop(logger)
	return &Anaglyph{
		left:   newRaytracer(sc, left, config, logger),
		right:  newRaytracer(sc, right, config, logger),
		ipd:    ipd,
		logger: logger,
	}
}

// EyeCameras returns base shifted by -ipd/2 and +ipd/2 along its right vector
func EyeCameras(base scene.CameraConfig, ipd float64) (left, right scene.CameraConfig) {
	offset := RightVector(base).Mul(ipd / 2)
	left, right = base, base
	left.Position = base.Position.Sub(offset)
	right.Position = base.Position.Add(offset)
	return left, right
}

// Render renders both eyes concurrently and composites them
func (a *Anaglyph) Render(ctx context.Context) (StereoResult, error) {
	var result StereoResult
	a.logger.Printf("Rendering stereo pair with interocular distance %g\n", a.ipd)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		buf, stats, err := a.left.Render(gctx)
		if err != nil {
			return fmt.Errorf("left eye: %w", err)
		}
		result.Left, result.LeftStats = buf, stats
		return nil
	})
	g.Go(func() error {
		buf, stats, err := a.right.Render(gctx)
		if err != nil {
			return fmt.Errorf("right eye: %w", err)
		}
		result.Right, result.RightStats = buf, stats
		return nil
	})
	if err := g.Wait(); err != nil {
		return StereoResult{}, err
	}

	result.Composite = Composite(result.Left, result.Right)
	return result, nil
}

// Composite merges two equally sized eye images. Each pixel is the gray
// level of the left eye through the cyan filter plus the gray level of the
// right eye through the red filter.
func Composite(left, right *raster.Buffer) *raster.Buffer {
	if left.Width() != right.Width() || left.Height() != right.Height() {
		panic(fmt.Sprintf("renderer: eye sizes differ: %dx%d vs %dx%d",
			left.Width(), left.Height(), right.Width(), right.Height()))
	}

	out := raster.NewBufferLike(left)
	for y := 0; y < left.Height(); y++ {
		for x := 0; x < left.Width(); x++ {
			out.Set(x, y, compositePixel(left.Get(x, y), right.Get(x, y)))
		}
	}
	return out
}

func compositePixel(l, r core.Color) core.Color {
	lg := l.Clamp().Luma()
	rg := r.Clamp().Luma()
	c := LeftFilter.Scale(lg).Add(RightFilter.Scale(rg))
	return c.WithAlpha(max(core.Clamp01(l.A), core.Clamp01(r.A)))
}
