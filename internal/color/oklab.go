package color

import "github.com/chewxy/math32"

// Oklab is a color in the Oklab perceptual color space.
// L is lightness; A and B are the green–red and blue–yellow axes.
// Alpha rides along unchanged (it is not part of the Oklab model).
type Oklab struct {
	L, A, B, Alpha float32
}

// The two fixed 3×3 matrices below are the published Oklab definition
// (Björn Ottosson, 2020): linear sRGB → cone response (LMS), cube root,
// then LMS' → Lab, and the exact inverses.

// LinearToOklab converts a linear-light RGB color to Oklab.
func LinearToOklab(c Color) Oklab {
	l := 0.4122214708*c.R + 0.5363325363*c.G + 0.0514459929*c.B
	m := 0.2119034982*c.R + 0.6806995451*c.G + 0.1073969566*c.B
	s := 0.0883024619*c.R + 0.2817188376*c.G + 0.6299787005*c.B

	l = math32.Cbrt(l)
	m = math32.Cbrt(m)
	s = math32.Cbrt(s)

	return Oklab{
		L:     0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A:     1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B:     0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
		Alpha: c.A,
	}
}

// OklabToLinear converts an Oklab color back to linear-light RGB.
// The result may fall slightly outside [0, 1] for saturated inputs; the
// painter clamps at the final store, not here.
func OklabToLinear(c Oklab) Color {
	l := c.L + 0.3963377774*c.A + 0.2158037573*c.B
	m := c.L - 0.1055613458*c.A - 0.0638541728*c.B
	s := c.L - 0.0894841775*c.A - 1.2914855480*c.B

	l = l * l * l
	m = m * m * m
	s = s * s * s

	return Color{
		R: 4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		G: -1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		B: -0.0041960863*l - 0.7034186147*m + 1.7076147010*s,
		A: c.Alpha,
	}
}

// Interpolate blends two linear-light colors at parameter t by converting to
// Oklab, interpolating there, and converting back. Alpha interpolates
// linearly, outside the Oklab transform. t is expected in [0, 1]; callers
// clamp before calling.
func Interpolate(a, b Color, t float32) Color {
	la := LinearToOklab(a)
	lb := LinearToOklab(b)
	mixed := Oklab{
		L:     la.L + (lb.L-la.L)*t,
		A:     la.A + (lb.A-la.A)*t,
		B:     la.B + (lb.B-la.B)*t,
		Alpha: la.Alpha + (lb.Alpha-la.Alpha)*t,
	}
	return OklabToLinear(mixed)
}
