package raster

import (
	"github.com/caelunshun/dume/internal/color"
	"github.com/caelunshun/dume/scene"
)

// PaintRange renders tiles [start, end) into the surface. It is the final
// pipeline stage and requires fully binned and sorted buckets.
//
// Each tile task takes one local copy of its sorted node list up front and
// shares it across the tile's pixels — the CPU analogue of the GPU's
// workgroup-shared list cache. Every pixel then walks the list in
// submission order, resolves coverage groups, and composites in linear
// light.
func PaintRange(ts *TileSet, f *Frame, surf Surface, start, end int) {
	var local [BucketCap]uint32

	for tile := start; tile < end; tile++ {
		bucket := ts.Bucket(tile)
		if len(bucket) == 0 {
			continue
		}
		nodes := local[:copy(local[:], bucket)]

		tx := tile % ts.tilesX
		ty := tile / ts.tilesX
		x0 := tx * scene.TileSize
		y0 := ty * scene.TileSize
		x1 := min(x0+scene.TileSize, surf.Width)
		y1 := min(y0+scene.TileSize, surf.Height)

		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				paintPixel(f, surf, nodes, x, y)
			}
		}
	}
}

// paintPixel composites every node group covering one pixel, back to front
// in submission order.
func paintPixel(f *Frame, surf Surface, nodes []uint32, x, y int) {
	corner := scene.Vec2{X: float32(x), Y: float32(y)}
	center := scene.Vec2{X: corner.X + 0.5, Y: corner.Y + 0.5}
	target := f.Globals.TargetSize()

	o := y*surf.Stride + x*4
	dst := color.Color{
		R: color.LinearFromByte(surf.Pix[o]),
		G: color.LinearFromByte(surf.Pix[o+1]),
		B: color.LinearFromByte(surf.Pix[o+2]),
	}
	touched := false

	for i := 0; i < len(nodes); {
		head := &f.Nodes[nodes[i]]
		var cov float32

		switch head.Shape {
		case scene.ShapeStroke:
			// One logical path: consecutive stroke segments sharing a group
			// id. Max, not sum, so overlapping caps and joins blend once.
			cov = strokeNodeCoverage(f, head, center)
			i++
			for i < len(nodes) {
				n := &f.Nodes[nodes[i]]
				if n.Shape != scene.ShapeStroke || n.Extra != head.Extra {
					break
				}
				if c := strokeNodeCoverage(f, n, center); c > cov {
					cov = c
				}
				i++
			}

		case scene.ShapeFill:
			// One polygon: every consecutive edge in the group contributes
			// signed area, then the even-odd rule folds the total.
			area := fillNodeArea(f, head, corner)
			i++
			for i < len(nodes) {
				n := &f.Nodes[nodes[i]]
				if n.Shape != scene.ShapeFill || n.Extra != head.Extra {
					break
				}
				area += fillNodeArea(f, n, corner)
				i++
			}
			cov = evenOddCoverage(area)

		case scene.ShapeCircle:
			c := scene.UnpackPos(head.PosA, target)
			radius := scene.UnpackPos(head.PosB, target).X
			cov = circleCoverage(center, c, radius)
			i++

		default: // scene.ShapeRect
			origin := scene.UnpackPos(head.PosA, target)
			size := scene.UnpackPos(head.PosB, target)
			cov = rectCoverage(corner, origin, size)
			i++
		}

		if cov <= 0 {
			continue
		}
		paint := evalPaint(f, head, center)
		alpha := cov * paint.A
		if alpha <= 0 {
			continue
		}
		dst.R += (paint.R - dst.R) * alpha
		dst.G += (paint.G - dst.G) * alpha
		dst.B += (paint.B - dst.B) * alpha
		touched = true
	}

	// Skip the store when nothing composited, so untouched pixels keep
	// their exact byte values rather than a decode/encode round trip.
	if !touched {
		return
	}
	surf.Pix[o] = color.ByteFromLinear(dst.R)
	surf.Pix[o+1] = color.ByteFromLinear(dst.G)
	surf.Pix[o+2] = color.ByteFromLinear(dst.B)
}

func strokeNodeCoverage(f *Frame, n *scene.Node, center scene.Vec2) float32 {
	a := f.point(n.PosA)
	b := f.point(n.PosA + 1)
	w, capStyle := scene.UnpackUPos(n.PosB)
	return strokeCoverage(center, a, b, float32(w)/scene.StrokeWidthScale, capStyle)
}

func fillNodeArea(f *Frame, n *scene.Node, corner scene.Vec2) float32 {
	return fillEdgeArea(corner, f.point(n.PosA), f.point(n.PosA+1))
}
