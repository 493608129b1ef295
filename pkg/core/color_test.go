package core

import (
	"math"
	"testing"
)

func colorsClose(a, b Color, tolerance float64) bool {
	return math.Abs(a.R-b.R) <= tolerance &&
		math.Abs(a.G-b.G) <= tolerance &&
		math.Abs(a.B-b.B) <= tolerance &&
		math.Abs(a.A-b.A) <= tolerance
}

func TestColor_ToHex(t *testing.T) {
	tests := []struct {
		color    Color
		expected string
	}{
		{NewColor8(102, 153, 255, 255), "#6699ff"},
		{NewColor8(0, 0, 0, 0), "#000000"},
		{NewColor(2, -1, 0.5, 1), "#ff0080"},
	}

	for _, tt := range tests {
		if got := tt.color.ToHex(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestColor_Arithmetic(t *testing.T) {
	a := NewColor(0.2, 0.4, 0.6, 1)
	b := NewColor(0.5, 0.5, 0.5, 0.5)

	tests := []struct {
		name     string
		got      Color
		expected Color
	}{
		{"add", a.Add(b), NewColor(0.7, 0.9, 1.1, 1.5)},
		{"scale", a.Scale(0.5), NewColor(0.1, 0.2, 0.3, 0.5)},
		{"mul", a.Mul(b), NewColor(0.1, 0.2, 0.3, 0.5)},
		{"overlay", b.Overlay(a), NewColor(0.35, 0.45, 0.55, 1)},
		{"average", a.Average(b, 0.25), NewColor(0.425, 0.475, 0.525, 0.625)},
		{"clamp", NewColor(-1, 0.5, 3, 2).Clamp(), NewColor(0, 0.5, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !colorsClose(tt.got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestColor_Gray(t *testing.T) {
	tests := []struct {
		name     string
		color    Color
		expected float64
	}{
		{"red", Red, 0.299},
		{"green", NewColor(0, 1, 0, 1), 0.587},
		{"blue", NewColor(0, 0, 1, 1), 0.114},
		{"white", White, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.color.Gray()
			if math.Abs(g.R-tt.expected) > 1e-12 || g.R != g.G || g.G != g.B {
				t.Errorf("Expected gray %f, got %v", tt.expected, g)
			}
			if g.A != tt.color.A {
				t.Errorf("Gray should keep alpha %f, got %f", tt.color.A, g.A)
			}
		})
	}
}

func TestColor_RGBA8(t *testing.T) {
	n := NewColor(1, 0.5, 0, 1).RGBA8()
	if n.R != 255 || n.G != 128 || n.B != 0 || n.A != 255 {
		t.Errorf("Unexpected 8-bit conversion %v", n)
	}
}
