package scene

import (
	"github.com/chewxy/math32"

	"github.com/caelunshun/dume/internal/color"
)

// Packed wire formats. These are the 32-bit words the pipeline stages decode;
// they must stay bit-compatible with the encoders below.
//
//   - Position: two unorm16 halves, centered-origin mapping over
//     [-size, +size] relative to the physical target size. The centered
//     origin lets bounding boxes describe geometry that starts off-target.
//   - Unsigned pair: two raw uint16 halves, no normalization. Used where
//     exact integers matter: glyph atlas offsets and stroke width/cap words.
//   - Color: four 8-bit sRGB-encoded channels (R in the low byte).

// PackPos packs a target-space position into one 32-bit word, normalized
// against the target size with a centered origin.
func PackPos(p Vec2, target Vec2) uint32 {
	return uint32(packHalf(p.X, target.X)) | uint32(packHalf(p.Y, target.Y))<<16
}

// UnpackPos is the inverse of PackPos: it maps the two unorm16 halves back
// into target-space coordinates.
func UnpackPos(w uint32, target Vec2) Vec2 {
	return Vec2{
		X: unpackHalf(uint16(w), target.X),
		Y: unpackHalf(uint16(w>>16), target.Y),
	}
}

func packHalf(v, size float32) uint16 {
	u := v/size*0.5 + 0.5
	if u < 0 {
		u = 0
	}
	if u > 1 {
		u = 1
	}
	return uint16(math32.Round(u * 65535))
}

func unpackHalf(bits uint16, size float32) float32 {
	return (float32(bits)/65535*2 - 1) * size
}

// PackUPos packs two raw uint16 values into one word, x in the low half.
func PackUPos(x, y uint16) uint32 {
	return uint32(x) | uint32(y)<<16
}

// UnpackUPos is the inverse of PackUPos.
func UnpackUPos(w uint32) (x, y uint16) {
	return uint16(w), uint16(w >> 16)
}

// PackColor packs four [0, 1] sRGB-space components into one RGBA8 word.
func PackColor(r, g, b, a float32) uint32 {
	return uint32(colorByte(r)) |
		uint32(colorByte(g))<<8 |
		uint32(colorByte(b))<<16 |
		uint32(colorByte(a))<<24
}

// UnpackColor unpacks an RGBA8 word into a linear-light color: the RGB
// channels are converted sRGB→linear immediately so every downstream
// consumer operates in linear space. Alpha is scaled, never gamma-decoded.
func UnpackColor(w uint32) color.Color {
	return color.Color{
		R: color.LinearFromByte(uint8(w)),
		G: color.LinearFromByte(uint8(w >> 8)),
		B: color.LinearFromByte(uint8(w >> 16)),
		A: float32(uint8(w>>24)) / 255,
	}
}

func colorByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
