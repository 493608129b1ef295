package renderer

import (
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Antialiasing selects how many primary rays are traced per pixel
type Antialiasing struct {
	GridSize int // 0 traces a single ray through the pixel center
}

// Off disables supersampling
func Off() Antialiasing { return Antialiasing{} }

// Grid traces n x n evenly spaced rays per pixel. n must be at least 1.
func Grid(n int) Antialiasing {
	if n < 1 {
		panic(fmt.Sprintf("renderer: antialiasing grid size %d, must be >= 1", n))
	}
	return Antialiasing{GridSize: n}
}

// Enabled reports whether supersampling is active
func (a Antialiasing) Enabled() bool { return a.GridSize > 0 }

// SamplesPerPixel returns the number of primary rays per pixel
func (a Antialiasing) SamplesPerPixel() int {
	if !a.Enabled() {
		return 1
	}
	return a.GridSize * a.GridSize
}

// Offsets returns the sub-pixel offsets from the pixel center along one axis
func (a Antialiasing) Offsets() []float64 {
	if !a.Enabled() {
		return []float64{0}
	}
	step := 1 / float64(a.GridSize)
	offsets := make([]float64, a.GridSize)
	for i := range offsets {
		offsets[i] = -0.5 + step/2 + float64(i)*step
	}
	return offsets
}

func (a Antialiasing) String() string {
	if !a.Enabled() {
		return "off"
	}
	return fmt.Sprintf("grid %dx%d", a.GridSize, a.GridSize)
}

// SamplePixel box-filters every sub-ray of pixel (x, y) through trace and
// returns the averaged color along with the summed ray count
func (a Antialiasing) SamplePixel(x, y int, trace func(px, py float64) (core.Color, int)) (core.Color, int) {
	offsets := a.Offsets()
	cx := float64(x) + 0.5
	cy := float64(y) + 0.5

	var sum core.Color
	rays := 0
	for _, dy := range offsets {
		for _, dx := range offsets {
			c, n := trace(cx+dx, cy+dy)
			sum = sum.Add(c)
			rays += n
		}
	}

	return sum.Scale(1 / float64(len(offsets)*len(offsets))), rays
}
