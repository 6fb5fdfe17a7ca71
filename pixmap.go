package dume

import (
	"image"
	stdcolor "image/color"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/caelunshun/dume/internal/raster"
)

// Pixmap is a render target: an 8-bit sRGB-encoded RGBA pixel buffer with
// straight alpha, row-major, 4 bytes per pixel.
type Pixmap struct {
	width  int
	height int
	pix    []uint8
}

// NewPixmap creates a pixmap with the given dimensions in physical pixels.
// Dimensions are clamped to at least 1×1. The buffer starts fully
// transparent.
func NewPixmap(width, height int) *Pixmap {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Pixmap{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Width returns the width in pixels.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height in pixels.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data, sRGB RGBA, 4 bytes per pixel.
func (p *Pixmap) Data() []uint8 {
	return p.pix
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c Color) {
	r := uint8(clamp01(c.R)*255 + 0.5)
	g := uint8(clamp01(c.G)*255 + 0.5)
	b := uint8(clamp01(c.B)*255 + 0.5)
	a := uint8(clamp01(c.A)*255 + 0.5)
	for i := 0; i < len(p.pix); i += 4 {
		p.pix[i+0] = r
		p.pix[i+1] = g
		p.pix[i+2] = b
		p.pix[i+3] = a
	}
}

// SetPixel sets the color of a single pixel. Out-of-bounds writes are
// ignored.
func (p *Pixmap) SetPixel(x, y int, c Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.pix[i+0] = uint8(clamp01(c.R)*255 + 0.5)
	p.pix[i+1] = uint8(clamp01(c.G)*255 + 0.5)
	p.pix[i+2] = uint8(clamp01(c.B)*255 + 0.5)
	p.pix[i+3] = uint8(clamp01(c.A)*255 + 0.5)
}

// GetPixel returns the color of a single pixel, or Transparent outside the
// pixmap.
func (p *Pixmap) GetPixel(x, y int) Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return Color{
		R: float32(p.pix[i+0]) / 255,
		G: float32(p.pix[i+1]) / 255,
		B: float32(p.pix[i+2]) / 255,
		A: float32(p.pix[i+3]) / 255,
	}
}

// surface exposes the buffer to the painter.
func (p *Pixmap) surface() raster.Surface {
	return raster.Surface{
		Pix:    p.pix,
		Width:  p.width,
		Height: p.height,
		Stride: p.width * 4,
	}
}

// ToImage copies the pixmap into an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.pix)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	for y := 0; y < pm.height; y++ {
		for x := 0; x < pm.width; x++ {
			pm.SetPixel(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) stdcolor.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() stdcolor.Model {
	return stdcolor.NRGBAModel
}

// EncodeTo writes the pixmap into dst in the byte order of the given WebGPU
// texture format, for upload to a presentation surface. dst must hold at
// least width*height*4 bytes. Supported formats are
// [gputypes.TextureFormatRGBA8Unorm] and [gputypes.TextureFormatBGRA8Unorm];
// other formats return ErrUnsupportedFormat.
func (p *Pixmap) EncodeTo(format gputypes.TextureFormat, dst []uint8) error {
	if len(dst) < len(p.pix) {
		return io.ErrShortBuffer
	}
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		copy(dst, p.pix)
	case gputypes.TextureFormatBGRA8Unorm:
		for i := 0; i < len(p.pix); i += 4 {
			dst[i+0] = p.pix[i+2]
			dst[i+1] = p.pix[i+1]
			dst[i+2] = p.pix[i+0]
			dst[i+3] = p.pix[i+3]
		}
	default:
		return ErrUnsupportedFormat
	}
	return nil
}
