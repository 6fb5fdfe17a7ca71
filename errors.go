package dume

import "errors"

// Sentinel errors for the dume package.
var (
	// ErrInvalidDimensions is returned by Atlas.Insert when the bitmap has
	// a non-positive width or height, or is too short for its dimensions.
	ErrInvalidDimensions = errors.New("dume: invalid dimensions")

	// ErrNilTarget is returned when rendering into a nil pixmap.
	ErrNilTarget = errors.New("dume: render target is nil")

	// ErrNilScene is returned when rendering a nil scene.
	ErrNilScene = errors.New("dume: scene is nil")

	// ErrTargetSizeMismatch is returned when the render target's pixel
	// dimensions do not match the canvas's physical target size.
	ErrTargetSizeMismatch = errors.New("dume: target size does not match canvas")

	// ErrAtlasFull is returned when the glyph atlas cannot fit the
	// requested region.
	ErrAtlasFull = errors.New("dume: glyph atlas is full")

	// ErrUnsupportedFormat is returned by Pixmap.EncodeTo for texture
	// formats it cannot produce.
	ErrUnsupportedFormat = errors.New("dume: unsupported texture format")

	// ErrCanvasClosed is returned when drawing on or rendering from a
	// closed canvas.
	ErrCanvasClosed = errors.New("dume: canvas is closed")
)
