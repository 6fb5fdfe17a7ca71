package raster

import (
	"github.com/chewxy/math32"

	"github.com/caelunshun/dume/internal/color"
	"github.com/caelunshun/dume/scene"
)

// sentinel is the color painted for a paint kind the dispatch does not
// recognize. A malformed node is a scene-builder bug; saturated magenta
// makes it impossible to miss without crashing the frame.
var sentinel = color.Color{R: 1, G: 0, B: 1, A: 1}

// evalPaint computes a node's paint color at a pixel center, in linear
// light. Gradient interpolation runs through Oklab for perceptual
// uniformity; degenerate gradient geometry clamps t to an endpoint instead
// of dividing by zero.
func evalPaint(f *Frame, n *scene.Node, center scene.Vec2) color.Color {
	switch n.Paint {
	case scene.PaintSolid:
		return scene.UnpackColor(n.ColorA)

	case scene.PaintLinearGradient:
		target := f.Globals.TargetSize()
		a := scene.UnpackPos(n.GradPosA, target)
		b := scene.UnpackPos(n.GradPosB, target)
		axis := b.Sub(a)
		den := axis.LengthSquared()
		var t float32
		if den > 1e-12 {
			t = clamp01(center.Sub(a).Dot(axis) / den)
		}
		return color.Interpolate(scene.UnpackColor(n.ColorA), scene.UnpackColor(n.ColorB), t)

	case scene.PaintRadialGradient:
		target := f.Globals.TargetSize()
		c := scene.UnpackPos(n.GradPosA, target)
		radius := scene.UnpackPos(n.GradPosB, target).Distance(c)
		dist := center.Distance(c)
		var t float32
		switch {
		case radius > 1e-6:
			t = clamp01(dist / radius)
		case dist > 1e-6:
			t = 1
		}
		return color.Interpolate(scene.UnpackColor(n.ColorA), scene.UnpackColor(n.ColorB), t)

	case scene.PaintGlyph:
		target := f.Globals.TargetSize()
		origin := scene.UnpackPos(n.GradPosA, target)
		ox, oy := scene.UnpackUPos(n.GradPosB)
		x := int(ox) + int(math32.Floor(center.X-origin.X))
		y := int(oy) + int(math32.Floor(center.Y-origin.Y))
		tint := scene.UnpackColor(n.ColorA)
		tint.A *= f.Atlas.At(x, y)
		return tint
	}
	return sentinel
}
