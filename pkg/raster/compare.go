package raster

import (
	"errors"
	"fmt"
)

// ErrSizeMismatch is returned when two buffers being compared differ in size
var ErrSizeMismatch = errors.New("buffer size mismatch")

// MeanSquaredError returns the mean squared difference of the RGB channels
// of a and b, each clamped to [0,1] as they would be written to an image
func MeanSquaredError(a, b *Buffer) (float64, error) {
	if a.width != b.width || a.height != b.height {
		return 0, fmt.Errorf("%dx%d vs %dx%d: %w", a.width, a.height, b.width, b.height, ErrSizeMismatch)
	}

	var sum float64
	for i := range a.pixels {
		p, q := a.pixels[i].Clamp(), b.pixels[i].Clamp()
		dr, dg, db := p.R-q.R, p.G-q.G, p.B-q.B
		sum += dr*dr + dg*dg + db*db
	}
	return sum / float64(3*len(a.pixels)), nil
}
