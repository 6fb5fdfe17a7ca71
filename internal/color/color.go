// Package color provides the color math used by the painter: sRGB ↔ linear
// transfer functions and Oklab-based gradient interpolation.
//
// All compositing in the pipeline happens in linear light. Colors cross this
// package boundary as float32 components; the 8-bit fast paths exist for the
// per-pixel load/store in the painter.
package color

// Color is an RGBA color with float32 components in [0, 1].
// The RGB components are linear unless stated otherwise; alpha is always
// linear (never gamma-encoded).
type Color struct {
	R, G, B, A float32
}

// Lerp linearly interpolates all four components. Used for alpha and for the
// naive (non-perceptual) RGB blend in tests and benchmarks.
func Lerp(a, b Color, t float32) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// Clamp clamps all components to [0, 1].
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
