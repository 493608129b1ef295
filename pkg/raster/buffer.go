// Package raster holds rendered pixels and persists them as images.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Buffer is a width x height grid of linear colors. Concurrent writers
// are safe as long as they touch disjoint pixels.
type Buffer struct {
	width, height int
	pixels        []core.Color
}

// NewBuffer creates a transparent black buffer
func NewBuffer(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("raster: invalid buffer size %dx%d", width, height))
	}
	return &Buffer{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
	}
}

// NewBufferLike creates an empty buffer with the same dimensions as b
func NewBufferLike(b *Buffer) *Buffer {
	return NewBuffer(b.width, b.height)
}

// Width returns the buffer width in pixels
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels
func (b *Buffer) Height() int { return b.height }

// Bounds returns the buffer rectangle
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// Set stores the color of pixel (x, y)
func (b *Buffer) Set(x, y int, c core.Color) {
	b.pixels[b.index(x, y)] = c
}

// Get returns the color of pixel (x, y)
func (b *Buffer) Get(x, y int) core.Color {
	return b.pixels[b.index(x, y)]
}

func (b *Buffer) index(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(fmt.Sprintf("raster: pixel (%d, %d) outside %dx%d buffer", x, y, b.width, b.height))
	}
	return y*b.width + x
}

// Image converts the buffer to an 8-bit RGBA image, clamping each channel
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			img.SetNRGBA(x, y, b.Get(x, y).RGBA8())
		}
	}
	return img
}

// Encode writes the buffer as an 8-bit RGBA PNG
func (b *Buffer) Encode(w io.Writer) error {
	if err := png.Encode(w, b.Image()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Save writes the buffer to path as an 8-bit RGBA PNG
func (b *Buffer) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if err := b.Encode(file); err != nil {
		return err
	}
	return file.Close()
}
