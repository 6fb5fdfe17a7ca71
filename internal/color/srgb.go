package color

import (
	"math"

	"github.com/chewxy/math32"
)

// SRGBToLinear converts one sRGB component to linear light (the sRGB EOTF):
// s/12.92 below the 0.04045 knee, ((s+0.055)/1.055)^2.4 above it.
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math32.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts one linear component to sRGB (the sRGB OETF):
// l*12.92 below the 0.0031308 knee, 1.055*l^(1/2.4)-0.055 above it.
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math32.Pow(l, 1.0/2.4) - 0.055
}

// SRGBToLinearColor converts the RGB components of c from sRGB to linear.
// Alpha passes through untouched.
func SRGBToLinearColor(c Color) Color {
	return Color{
		R: SRGBToLinear(c.R),
		G: SRGBToLinear(c.G),
		B: SRGBToLinear(c.B),
		A: c.A,
	}
}

// LinearToSRGBColor converts the RGB components of c from linear to sRGB.
// Alpha passes through untouched.
func LinearToSRGBColor(c Color) Color {
	return Color{
		R: LinearToSRGB(c.R),
		G: LinearToSRGB(c.G),
		B: LinearToSRGB(c.B),
		A: c.A,
	}
}

// byteToLinear maps an sRGB byte straight to linear float32.
// 256 entries, 1KB. The painter decodes every destination pixel through this
// table, so it must stay a plain array lookup.
var byteToLinear [256]float32

// linearToByte maps linear float32 to an sRGB byte through a 12-bit table.
// 4096 entries give sub-step precision for 8-bit output.
var linearToByte [4096]uint8

func init() {
	for i := range byteToLinear {
		s := float64(i) / 255.0
		if s <= 0.04045 {
			byteToLinear[i] = float32(s / 12.92)
		} else {
			byteToLinear[i] = float32(math.Pow((s+0.055)/1.055, 2.4))
		}
	}
	for i := range linearToByte {
		l := float64(i) / 4095.0
		var s float64
		if l <= 0.0031308 {
			s = l * 12.92
		} else {
			s = 1.055*math.Pow(l, 1.0/2.4) - 0.055
		}
		v := int(s*255.0 + 0.5)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		linearToByte[i] = uint8(v)
	}
}

// LinearFromByte converts an sRGB byte to linear float32 via lookup table.
func LinearFromByte(s uint8) float32 {
	return byteToLinear[s]
}

// ByteFromLinear converts a linear component to an sRGB byte via lookup
// table. The input is clamped to [0, 1].
func ByteFromLinear(l float32) uint8 {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	i := int(l*4095.0 + 0.5)
	if i > 4095 {
		i = 4095
	}
	return linearToByte[i]
}
