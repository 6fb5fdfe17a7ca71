package dume

import (
	"github.com/caelunshun/dume/scene"
)

// LineCap selects how stroke endpoints are drawn.
type LineCap uint16

const (
	// LineCapRound extends each endpoint with a half-disc.
	LineCapRound LineCap = LineCap(scene.CapRound)
	// LineCapSquare extends each endpoint with a half-square.
	LineCapSquare LineCap = LineCap(scene.CapSquare)
)

// Canvas accumulates draw commands for one frame and renders them through
// the tile pipeline. Coordinates are logical pixels; geometry is encoded at
// logical × scale physical pixels. Shapes composite in submission order.
//
// The command buffer is rebuilt every frame: Render flushes the queued
// shapes and clears them, so each frame starts empty.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	scene      *scene.Scene
	renderer   *Renderer
	atlas      *Atlas
	background Color

	// group tags the nodes of one logical path so multi-node shapes
	// (stroked paths, filled polygons) blend as a unit.
	group  uint32
	closed bool
}

// NewCanvas creates a canvas with the given logical size. The physical
// target size is logical × scale, rounded; render targets must match it
// (see [Canvas.TargetWidth]).
func NewCanvas(width, height float32, opts ...CanvasOption) *Canvas {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	g := scene.NewGlobals(scene.V2(width, height), o.scaleFactor)
	return &Canvas{
		scene:      scene.NewScene(g),
		renderer:   NewRenderer(o.workers),
		atlas:      o.atlas,
		background: o.background,
	}
}

// Close releases the renderer's worker pool. Draw calls after Close are
// discarded and Render returns ErrCanvasClosed.
func (c *Canvas) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.renderer.Close()
}

// Width returns the logical width.
func (c *Canvas) Width() float32 { return c.scene.Globals.LogicalSize.X }

// Height returns the logical height.
func (c *Canvas) Height() float32 { return c.scene.Globals.LogicalSize.Y }

// ScaleFactor returns the device pixel ratio.
func (c *Canvas) ScaleFactor() float32 { return c.scene.Globals.ScaleFactor }

// TargetWidth returns the physical target width in pixels.
func (c *Canvas) TargetWidth() int { return c.scene.Globals.TargetWidth }

// TargetHeight returns the physical target height in pixels.
func (c *Canvas) TargetHeight() int { return c.scene.Globals.TargetHeight }

// Clear discards all queued draw commands without rendering them.
func (c *Canvas) Clear() {
	c.scene.Reset()
}

// FillRect fills the axis-aligned rectangle at pos with the given size.
func (c *Canvas) FillRect(pos, size Vec2, p Paint) {
	if c.closed || size.X <= 0 || size.Y <= 0 {
		return
	}
	pos = c.physical(pos)
	size = size.Mul(c.scene.Globals.ScaleFactor)

	n := scene.Node{
		Shape: scene.ShapeRect,
		PosA:  c.pack(pos),
		PosB:  c.pack(size),
	}
	c.encodePaint(&n, p)
	c.push(n, pos.Sub(scene.V2(1, 1)), size.Add(scene.V2(2, 2)))
}

// FillCircle fills the circle around center. Coverage falls off linearly
// over the last pixel before the radius.
func (c *Canvas) FillCircle(center Vec2, radius float32, p Paint) {
	if c.closed || radius <= 0 {
		return
	}
	center = c.physical(center)
	radius *= c.scene.Globals.ScaleFactor

	n := scene.Node{
		Shape: scene.ShapeCircle,
		PosA:  c.pack(center),
		PosB:  c.pack(scene.V2(radius, 0)),
	}
	c.encodePaint(&n, p)
	pad := radius + 1
	c.push(n, center.Sub(scene.V2(pad, pad)), scene.V2(2*pad, 2*pad))
}

// StrokeLine strokes a single segment with the given width.
func (c *Canvas) StrokeLine(a, b Vec2, width float32, lineCap LineCap, p Paint) {
	c.StrokePath([]Vec2{a, b}, width, lineCap, p)
}

// StrokePath strokes a polyline through the given points. The whole path is
// one coverage group, so overlapping caps at the joints blend once rather
// than darkening. Curves are flattened to points by the caller.
func (c *Canvas) StrokePath(points []Vec2, width float32, lineCap LineCap, p Paint) {
	if c.closed || len(points) < 2 || width <= 0 {
		return
	}
	scale := c.scene.Globals.ScaleFactor
	halfWidth := width * scale / 2
	group := c.nextGroup()

	for i := 0; i+1 < len(points); i++ {
		a := c.physical(points[i])
		b := c.physical(points[i+1])
		idx := c.scene.AppendPoint(a)
		c.scene.AppendPoint(b)

		n := scene.Node{
			Shape: scene.ShapeStroke,
			PosA:  idx,
			PosB:  scene.PackUPos(packHalfWidth(halfWidth), uint16(lineCap)),
			Extra: group,
		}
		c.encodePaint(&n, p)

		pad := halfWidth + 1
		lo := scene.V2(min(a.X, b.X)-pad, min(a.Y, b.Y)-pad)
		hi := scene.V2(max(a.X, b.X)+pad, max(a.Y, b.Y)+pad)
		c.push(n, lo, hi.Sub(lo))
	}
}

// FillPath fills a closed polygon under the even-odd rule. The polygon is
// closed automatically if the last point differs from the first. Curves are
// flattened to points by the caller; self-intersecting outlines are fine.
func (c *Canvas) FillPath(points []Vec2, p Paint) {
	if c.closed || len(points) < 3 {
		return
	}
	group := c.nextGroup()

	phys := make([]scene.Vec2, len(points))
	maxX := c.physical(points[0]).X
	for i, pt := range points {
		phys[i] = c.physical(pt)
		maxX = max(maxX, phys[i].X)
	}

	for i := range phys {
		a := phys[i]
		b := phys[(i+1)%len(phys)]
		if i == len(phys)-1 && a == b {
			break // outline was already closed
		}
		idx := c.scene.AppendPoint(a)
		c.scene.AppendPoint(b)

		n := scene.Node{
			Shape: scene.ShapeFill,
			PosA:  idx,
			Extra: group,
		}
		c.encodePaint(&n, p)

		// The painter's coverage ray runs leftward: an edge affects every
		// pixel to its right, out to the polygon's right extent. The
		// bounding box must span that reach or interior tiles would miss
		// the edge.
		lo := scene.V2(min(a.X, b.X)-1, min(a.Y, b.Y)-1)
		hi := scene.V2(maxX+1, max(a.Y, b.Y)+1)
		c.push(n, lo, hi.Sub(lo))
	}
}

// DrawGlyph draws an atlas region at pos, tinted. The region's alpha texels
// modulate the tint per pixel; the region is drawn at its texel size in
// physical pixels, so glyphs should be rasterized at the canvas scale.
// Without an attached atlas the glyph samples fully transparent.
func (c *Canvas) DrawGlyph(region AtlasRegion, pos Vec2, tint Color) {
	if c.closed || region.Width <= 0 || region.Height <= 0 {
		return
	}
	origin := c.physical(pos)
	size := scene.V2(float32(region.Width), float32(region.Height))

	n := scene.Node{
		Shape:    scene.ShapeRect,
		PosA:     c.pack(origin),
		PosB:     c.pack(size),
		Paint:    scene.PaintGlyph,
		ColorA:   scene.PackColor(tint.R, tint.G, tint.B, tint.A),
		GradPosA: c.pack(origin),
		GradPosB: scene.PackUPos(uint16(region.X), uint16(region.Y)),
	}
	c.push(n, origin.Sub(scene.V2(1, 1)), size.Add(scene.V2(2, 2)))
}

// Render clears the target to the background color, rasterizes all queued
// shapes into it, and resets the canvas for the next frame. The queued
// shapes are discarded even if rendering fails validation.
func (c *Canvas) Render(target *Pixmap) error {
	if c.closed {
		return ErrCanvasClosed
	}
	defer c.scene.Reset()

	if target == nil {
		return ErrNilTarget
	}
	target.Clear(c.background)
	return c.renderer.Render(c.scene, target, c.atlas)
}

// physical converts a logical point to physical pixels.
func (c *Canvas) physical(p Vec2) Vec2 {
	return p.Mul(c.scene.Globals.ScaleFactor)
}

// pack packs a physical-space point against the target size.
func (c *Canvas) pack(p Vec2) uint32 {
	return scene.PackPos(p, c.scene.Globals.TargetSize())
}

func (c *Canvas) push(n scene.Node, bbPos, bbSize Vec2) {
	c.scene.AppendNode(n, scene.MakeBounds(bbPos, bbSize, c.scene.Globals.TargetSize()))
}

func (c *Canvas) nextGroup() uint32 {
	c.group++
	return c.group
}

// encodePaint fills a node's paint words. Gradient geometry is given in
// logical pixels and encoded in physical.
func (c *Canvas) encodePaint(n *scene.Node, p Paint) {
	n.Paint = p.kind
	n.ColorA = scene.PackColor(p.colorA.R, p.colorA.G, p.colorA.B, p.colorA.A)
	n.ColorB = scene.PackColor(p.colorB.R, p.colorB.G, p.colorB.B, p.colorB.A)
	if p.kind == scene.PaintLinearGradient || p.kind == scene.PaintRadialGradient {
		n.GradPosA = c.pack(c.physical(p.gradA))
		n.GradPosB = c.pack(c.physical(p.gradB))
	}
}

// packHalfWidth quantizes a stroke half-width to 8.8 fixed point.
func packHalfWidth(halfWidth float32) uint16 {
	w := halfWidth * scene.StrokeWidthScale
	if w < 0 {
		return 0
	}
	if w > 0xffff {
		return 0xffff
	}
	return uint16(w + 0.5)
}
