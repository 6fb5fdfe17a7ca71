package dume

import "runtime"

// CanvasOption configures a Canvas during creation.
//
// Example:
//
//	// Default: scale factor 1, one worker per CPU
//	cv := dume.NewCanvas(800, 600)
//
//	// Hi-DPI canvas with an explicit worker count
//	cv := dume.NewCanvas(800, 600, dume.WithScaleFactor(2), dume.WithWorkers(4))
type CanvasOption func(*canvasOptions)

// canvasOptions holds optional configuration for Canvas creation.
type canvasOptions struct {
	workers     int
	scaleFactor float32
	atlas       *Atlas
	background  Color
}

// defaultOptions returns the default canvas options.
func defaultOptions() canvasOptions {
	return canvasOptions{
		workers:     runtime.NumCPU(),
		scaleFactor: 1,
		background:  Transparent,
	}
}

// WithWorkers sets the number of worker goroutines the renderer fans each
// pipeline stage across. Values below 1 fall back to one worker.
func WithWorkers(n int) CanvasOption {
	return func(o *canvasOptions) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithScaleFactor sets the device pixel ratio. Canvas coordinates stay in
// logical pixels; geometry is encoded and rasterized at logical × scale
// physical pixels. Non-positive values fall back to 1.
func WithScaleFactor(scale float32) CanvasOption {
	return func(o *canvasOptions) {
		o.scaleFactor = scale
	}
}

// WithAtlas attaches a glyph atlas to sample when drawing glyphs. A canvas
// without an atlas renders glyph nodes fully transparent.
func WithAtlas(a *Atlas) CanvasOption {
	return func(o *canvasOptions) {
		o.atlas = a
	}
}

// WithBackground sets the color the target is cleared to at the start of
// every rendered frame. The default is fully transparent.
func WithBackground(c Color) CanvasOption {
	return func(o *canvasOptions) {
		o.background = c
	}
}
