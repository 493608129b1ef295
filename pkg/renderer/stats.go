package renderer

import (
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/raster"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	TotalRays   int           // Total number of rays traced, including secondary rays
	MinRays     int           // Fewest rays traced for a single pixel
	MaxRays     int           // Most rays traced for a single pixel
	AverageRays float64       // Average rays per pixel
	Elapsed     time.Duration // Wall time of the render
}

// addPixel records the ray count of one pixel
func (s *RenderStats) addPixel(rays int) {
	if s.TotalPixels == 0 || rays < s.MinRays {
		s.MinRays = rays
	}
	s.MaxRays = max(s.MaxRays, rays)
	s.TotalPixels++
	s.TotalRays += rays
	s.AverageRays = float64(s.TotalRays) / float64(s.TotalPixels)
}

// Merge combines the counts of two renders. Elapsed keeps the longer duration.
func (s RenderStats) Merge(o RenderStats) RenderStats {
	if o.TotalPixels == 0 {
		return s
	}
	if s.TotalPixels == 0 {
		return o
	}

	merged := RenderStats{
		TotalPixels: s.TotalPixels + o.TotalPixels,
		TotalRays:   s.TotalRays + o.TotalRays,
		MinRays:     min(s.MinRays, o.MinRays),
		MaxRays:     max(s.MaxRays, o.MaxRays),
		Elapsed:     max(s.Elapsed, o.Elapsed),
	}
	merged.AverageRays = float64(merged.TotalRays) / float64(merged.TotalPixels)
	return merged
}

// CalculateAverageLuminance returns the mean luma of every pixel in buf
func CalculateAverageLuminance(buf *raster.Buffer) float64 {
	total := 0.0
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			total += buf.Get(x, y).Luma()
		}
	}
	return total / float64(buf.Width()*buf.Height())
}
