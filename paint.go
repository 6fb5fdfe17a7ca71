package dume

import "github.com/caelunshun/dume/scene"

// Paint describes how a shape's covered pixels are colored: a solid color
// or a two-stop gradient. Gradient geometry is given in logical pixels.
type Paint struct {
	kind           scene.PaintKind
	colorA, colorB Color
	gradA, gradB   Vec2
}

// Solid paints every covered pixel with one color.
func Solid(c Color) Paint {
	return Paint{kind: scene.PaintSolid, colorA: c}
}

// LinearGradient paints a gradient along the axis from one point to the
// other. Points off the axis project onto it; points beyond the endpoints
// clamp to the endpoint colors. Colors interpolate through Oklab.
func LinearGradient(from, to Vec2, start, end Color) Paint {
	return Paint{
		kind:   scene.PaintLinearGradient,
		colorA: start,
		colorB: end,
		gradA:  from,
		gradB:  to,
	}
}

// RadialGradient paints a gradient by distance from a center point: the
// inner color at the center, the outer color at the given radius and
// beyond. Colors interpolate through Oklab.
func RadialGradient(center Vec2, radius float32, inner, outer Color) Paint {
	return Paint{
		kind:   scene.PaintRadialGradient,
		colorA: inner,
		colorB: outer,
		gradA:  center,
		gradB:  center.Add(V2(radius, 0)),
	}
}
