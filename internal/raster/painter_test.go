package raster

import (
	"testing"

	"github.com/caelunshun/dume/scene"
)

// newSurface returns a w×h surface cleared to the given sRGB byte color.
func newSurface(w, h int, r, g, b, a uint8) Surface {
	pix := make([]uint8, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
	return Surface{Pix: pix, Width: w, Height: h, Stride: w * 4}
}

// runPipeline executes bin → sort → paint serially; stage barriers are
// implicit in the call order.
func runPipeline(f *Frame, surf Surface) *TileSet {
	ts := NewTileSet(f.Globals.TileCountX, f.Globals.TileCountY)
	ts.Reset()
	ts.BinRange(f, 0, len(f.Nodes))
	ts.SortRange(0, ts.TileCount())
	PaintRange(ts, f, surf, 0, ts.TileCount())
	return ts
}

func pixelAt(surf Surface, x, y int) [4]uint8 {
	o := y*surf.Stride + x*4
	return [4]uint8{surf.Pix[o], surf.Pix[o+1], surf.Pix[o+2], surf.Pix[o+3]}
}

func addSolidRect(f *Frame, pos, size scene.Vec2, cr, cg, cb, ca float32) {
	target := f.Globals.TargetSize()
	f.Nodes = append(f.Nodes, scene.Node{
		Shape:  scene.ShapeRect,
		PosA:   scene.PackPos(pos, target),
		PosB:   scene.PackPos(size, target),
		Paint:  scene.PaintSolid,
		ColorA: scene.PackColor(cr, cg, cb, ca),
	})
	f.Bounds = append(f.Bounds, scene.MakeBounds(pos, size, target))
	f.Globals.NodeCount = len(f.Nodes)
}

// TestPaintSolidRect runs the whole pipeline on one solid red rect
// at (10,10) size (20,20) on a dark background. Pixel centers well inside
// [10,30)² must come out pure red; pixels a full pixel outside must retain
// the background exactly. The one-pixel boundary ring is allowed the faint
// spill of the 16-bit position quantization.
func TestPaintSolidRect(t *testing.T) {
	f := &Frame{Globals: scene.NewGlobals(scene.V2(64, 64), 1)}
	addSolidRect(f, scene.V2(10, 10), scene.V2(20, 20), 1, 0, 0, 1)

	surf := newSurface(64, 64, 0, 0, 0, 255)
	runPipeline(f, surf)

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			got := pixelAt(surf, x, y)
			switch {
			case x >= 11 && x < 29 && y >= 11 && y < 29:
				if got != [4]uint8{255, 0, 0, 255} {
					t.Fatalf("interior pixel (%d,%d) = %v, want opaque red", x, y, got)
				}
			case x < 9 || x > 30 || y < 9 || y > 30:
				if got != [4]uint8{0, 0, 0, 255} {
					t.Fatalf("exterior pixel (%d,%d) = %v, want background", x, y, got)
				}
			}
		}
	}

	// Spot-check the nominal boundary columns: centers in [10,30) are red.
	if got := pixelAt(surf, 10, 20); got[0] < 250 || got[1] != 0 {
		t.Errorf("pixel (10,20) = %v, want red", got)
	}
	if got := pixelAt(surf, 29, 20); got[0] < 250 || got[1] != 0 {
		t.Errorf("pixel (29,20) = %v, want red", got)
	}
}

// TestPaintOverflowDropsExcess renders 65 rects into one tile; the pipeline
// must neither crash nor corrupt neighboring tiles, and the 65th node (the
// only green one) must not be drawn.
func TestPaintOverflowDropsExcess(t *testing.T) {
	f := &Frame{Globals: scene.NewGlobals(scene.V2(64, 64), 1)}
	for i := 0; i < BucketCap; i++ {
		addSolidRect(f, scene.V2(2, 2), scene.V2(8, 8), 1, 0, 0, 1)
	}
	addSolidRect(f, scene.V2(2, 2), scene.V2(8, 8), 0, 1, 0, 1)

	surf := newSurface(64, 64, 0, 0, 0, 255)
	ts := runPipeline(f, surf)

	if got := ts.Count(0); got != BucketCap {
		t.Fatalf("tile 0 count = %d, want %d", got, BucketCap)
	}
	if got := pixelAt(surf, 5, 5); got != [4]uint8{255, 0, 0, 255} {
		t.Fatalf("pixel (5,5) = %v, want red (dropped node must not draw)", got)
	}
	if got := pixelAt(surf, 40, 40); got != [4]uint8{0, 0, 0, 255} {
		t.Fatalf("neighbor tile corrupted: pixel (40,40) = %v", got)
	}
}

// TestPaintDrawOrder overlaps two rects: the later submission must paint on
// top, which exercises the sorted-bucket contract end to end.
func TestPaintDrawOrder(t *testing.T) {
	f := &Frame{Globals: scene.NewGlobals(scene.V2(64, 64), 1)}
	addSolidRect(f, scene.V2(10, 10), scene.V2(20, 20), 1, 0, 0, 1) // red below
	addSolidRect(f, scene.V2(14, 14), scene.V2(20, 20), 0, 0, 1, 1) // blue on top

	surf := newSurface(64, 64, 0, 0, 0, 255)
	runPipeline(f, surf)

	if got := pixelAt(surf, 20, 20); got != [4]uint8{0, 0, 255, 255} {
		t.Fatalf("overlap pixel = %v, want blue on top", got)
	}
	if got := pixelAt(surf, 12, 12); got != [4]uint8{255, 0, 0, 255} {
		t.Fatalf("red-only pixel = %v, want red", got)
	}
}

func addStroke(f *Frame, a, b scene.Vec2, halfWidth float32, capStyle uint16, group uint32, cr, cg, cb, ca float32) {
	target := f.Globals.TargetSize()
	idx := uint32(len(f.Points))
	f.Points = append(f.Points, scene.PackPos(a, target), scene.PackPos(b, target))

	pad := halfWidth + 1
	minX := min(a.X, b.X) - pad
	minY := min(a.Y, b.Y) - pad
	maxX := max(a.X, b.X) + pad
	maxY := max(a.Y, b.Y) + pad

	f.Nodes = append(f.Nodes, scene.Node{
		Shape:  scene.ShapeStroke,
		PosA:   idx,
		PosB:   scene.PackUPos(uint16(halfWidth*scene.StrokeWidthScale), capStyle),
		Extra:  group,
		Paint:  scene.PaintSolid,
		ColorA: scene.PackColor(cr, cg, cb, ca),
	})
	f.Bounds = append(f.Bounds, scene.MakeBounds(
		scene.V2(minX, minY), scene.V2(maxX-minX, maxY-minY), target))
	f.Globals.NodeCount = len(f.Nodes)
}

// TestPaintStrokeGroupNoDoubleBlend joins two collinear segments sharing an
// endpoint in one group, painted with 50% alpha. At the shared joint the
// group must blend once (max coverage), so the result equals painting the
// single better-covering segment alone.
func TestPaintStrokeGroupNoDoubleBlend(t *testing.T) {
	paintJoint := func(build func(f *Frame)) [4]uint8 {
		f := &Frame{Globals: scene.NewGlobals(scene.V2(64, 64), 1)}
		build(f)
		surf := newSurface(64, 64, 0, 0, 0, 255)
		runPipeline(f, surf)
		return pixelAt(surf, 20, 10)
	}

	joined := paintJoint(func(f *Frame) {
		addStroke(f, scene.V2(10, 10), scene.V2(20, 10), 1, scene.CapRound, 7, 1, 1, 1, 0.5)
		addStroke(f, scene.V2(20, 10), scene.V2(30, 10), 1, scene.CapRound, 7, 1, 1, 1, 0.5)
	})
	single := paintJoint(func(f *Frame) {
		addStroke(f, scene.V2(20, 10), scene.V2(30, 10), 1, scene.CapRound, 7, 1, 1, 1, 0.5)
	})

	if joined != single {
		t.Fatalf("joint pixel %v differs from single-segment %v: caps double-blended", joined, single)
	}

	// Distinct groups do blend twice; the joint must come out brighter.
	separate := paintJoint(func(f *Frame) {
		addStroke(f, scene.V2(10, 10), scene.V2(20, 10), 1, scene.CapRound, 7, 1, 1, 1, 0.5)
		addStroke(f, scene.V2(20, 10), scene.V2(30, 10), 1, scene.CapRound, 8, 1, 1, 1, 0.5)
	})
	if separate[0] <= joined[0] {
		t.Fatalf("separate groups %v not brighter than joined %v", separate, joined)
	}
}

// addFillPolygon appends one even-odd group for the closed polygon.
// Every edge's bounding box extends to the right edge of the whole
// polygon's bounding box: the painter's ray test looks left, so an edge
// affects pixels to its right and must be present in their tiles.
func addFillPolygon(f *Frame, verts []scene.Vec2, group uint32, cr, cg, cb, ca float32) {
	target := f.Globals.TargetSize()

	maxX := verts[0].X
	for _, v := range verts {
		maxX = max(maxX, v.X)
	}

	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		idx := uint32(len(f.Points))
		f.Points = append(f.Points, scene.PackPos(a, target), scene.PackPos(b, target))

		minX := min(a.X, b.X) - 1
		minY := min(a.Y, b.Y) - 1
		maxY := max(a.Y, b.Y) + 1

		f.Nodes = append(f.Nodes, scene.Node{
			Shape:  scene.ShapeFill,
			PosA:   idx,
			Extra:  group,
			Paint:  scene.PaintSolid,
			ColorA: scene.PackColor(cr, cg, cb, ca),
		})
		f.Bounds = append(f.Bounds, scene.MakeBounds(
			scene.V2(minX, minY), scene.V2(maxX+1-minX, maxY-minY), target))
	}
	f.Globals.NodeCount = len(f.Nodes)
}

// TestPaintFillAcrossTiles fills a polygon spanning several tiles. Interior
// pixels far from any of the polygon's own edges still need every edge of
// the group present in their tile — the extended fill bounding boxes make
// that happen.
func TestPaintFillAcrossTiles(t *testing.T) {
	f := &Frame{Globals: scene.NewGlobals(scene.V2(96, 64), 1)}
	addFillPolygon(f, []scene.Vec2{
		scene.V2(8, 8), scene.V2(88, 8), scene.V2(88, 40), scene.V2(8, 40),
	}, 1, 0, 1, 0, 1)

	surf := newSurface(96, 64, 0, 0, 0, 255)
	runPipeline(f, surf)

	// Interior pixels in different tiles, away from all edges.
	for _, p := range [][2]int{{20, 20}, {40, 20}, {70, 20}, {85, 30}} {
		if got := pixelAt(surf, p[0], p[1]); got != [4]uint8{0, 255, 0, 255} {
			t.Fatalf("interior pixel %v = %v, want green", p, got)
		}
	}
	for _, p := range [][2]int{{4, 20}, {92, 20}, {20, 50}, {50, 4}} {
		if got := pixelAt(surf, p[0], p[1]); got != [4]uint8{0, 0, 0, 255} {
			t.Fatalf("exterior pixel %v = %v, want background", p, got)
		}
	}
}

func TestPaintUnknownPaintKindIsSentinel(t *testing.T) {
	f := &Frame{Globals: scene.NewGlobals(scene.V2(32, 32), 1)}
	addSolidRect(f, scene.V2(4, 4), scene.V2(16, 16), 1, 1, 1, 1)
	f.Nodes[0].Paint = scene.PaintKind(97)

	surf := newSurface(32, 32, 0, 0, 0, 255)
	runPipeline(f, surf)

	if got := pixelAt(surf, 10, 10); got != [4]uint8{255, 0, 255, 255} {
		t.Fatalf("sentinel pixel = %v, want magenta", got)
	}
}

func TestPaintGlyph(t *testing.T) {
	f := &Frame{Globals: scene.NewGlobals(scene.V2(32, 32), 1)}
	target := f.Globals.TargetSize()

	// A 4×4 atlas: left half opaque, right half empty.
	atlas := AlphaView{Pix: make([]uint8, 16), Width: 4, Height: 4}
	for y := 0; y < 4; y++ {
		atlas.Pix[y*4] = 255
		atlas.Pix[y*4+1] = 255
	}
	f.Atlas = atlas

	origin := scene.V2(8, 8)
	size := scene.V2(4, 4)
	f.Nodes = append(f.Nodes, scene.Node{
		Shape:    scene.ShapeRect,
		PosA:     scene.PackPos(origin, target),
		PosB:     scene.PackPos(size, target),
		Paint:    scene.PaintGlyph,
		ColorA:   scene.PackColor(1, 1, 1, 1),
		GradPosA: scene.PackPos(origin, target),
		GradPosB: scene.PackUPos(0, 0),
	})
	f.Bounds = append(f.Bounds, scene.MakeBounds(scene.V2(7, 7), scene.V2(6, 6), target))
	f.Globals.NodeCount = 1

	surf := newSurface(32, 32, 0, 0, 0, 255)
	runPipeline(f, surf)

	if got := pixelAt(surf, 8, 9); got != [4]uint8{255, 255, 255, 255} {
		t.Fatalf("opaque glyph texel = %v, want white", got)
	}
	if got := pixelAt(surf, 11, 9); got != [4]uint8{0, 0, 0, 255} {
		t.Fatalf("empty glyph texel = %v, want background", got)
	}
}

func TestPaintGradients(t *testing.T) {
	f := &Frame{Globals: scene.NewGlobals(scene.V2(64, 64), 1)}
	target := f.Globals.TargetSize()

	// Horizontal linear gradient, red→blue, across a full-width rect.
	f.Nodes = append(f.Nodes, scene.Node{
		Shape:    scene.ShapeRect,
		PosA:     scene.PackPos(scene.V2(0, 0), target),
		PosB:     scene.PackPos(scene.V2(64, 64), target),
		Paint:    scene.PaintLinearGradient,
		ColorA:   scene.PackColor(1, 0, 0, 1),
		ColorB:   scene.PackColor(0, 0, 1, 1),
		GradPosA: scene.PackPos(scene.V2(0, 32), target),
		GradPosB: scene.PackPos(scene.V2(64, 32), target),
	})
	f.Bounds = append(f.Bounds, scene.MakeBounds(scene.V2(0, 0), scene.V2(64, 64), target))
	f.Globals.NodeCount = 1

	surf := newSurface(64, 64, 0, 0, 0, 255)
	runPipeline(f, surf)

	left := pixelAt(surf, 0, 32)
	right := pixelAt(surf, 63, 32)
	mid := pixelAt(surf, 32, 32)
	if left[0] < 250 || left[2] > 10 {
		t.Errorf("left edge = %v, want ~pure red", left)
	}
	if right[2] < 250 || right[0] > 10 {
		t.Errorf("right edge = %v, want ~pure blue", right)
	}
	if mid[0] == 0 || mid[2] == 0 {
		t.Errorf("midpoint = %v, want a red/blue mix", mid)
	}
}

func TestPaintRadialGradientDegenerateRadius(t *testing.T) {
	f := &Frame{Globals: scene.NewGlobals(scene.V2(32, 32), 1)}
	target := f.Globals.TargetSize()

	center := scene.V2(16, 16)
	f.Nodes = append(f.Nodes, scene.Node{
		Shape:    scene.ShapeRect,
		PosA:     scene.PackPos(scene.V2(0, 0), target),
		PosB:     scene.PackPos(scene.V2(32, 32), target),
		Paint:    scene.PaintRadialGradient,
		ColorA:   scene.PackColor(1, 0, 0, 1),
		ColorB:   scene.PackColor(0, 0, 1, 1),
		GradPosA: scene.PackPos(center, target),
		GradPosB: scene.PackPos(center, target), // zero radius
	})
	f.Bounds = append(f.Bounds, scene.MakeBounds(scene.V2(0, 0), scene.V2(32, 32), target))
	f.Globals.NodeCount = 1

	surf := newSurface(32, 32, 0, 0, 0, 255)
	runPipeline(f, surf)

	// Away from the center a zero radius clamps t to the far endpoint; the
	// important part is a finite answer, not NaN garbage.
	if got := pixelAt(surf, 4, 4); got[2] < 250 {
		t.Errorf("degenerate radial pixel = %v, want endpoint blue", got)
	}
}

func BenchmarkPipelineRects(b *testing.B) {
	f := &Frame{Globals: scene.NewGlobals(scene.V2(256, 256), 1)}
	for i := 0; i < 100; i++ {
		x := float32(i%10) * 25
		y := float32(i/10) * 25
		addSolidRect(f, scene.V2(x, y), scene.V2(30, 30), 1, 0, 0, 0.5)
	}
	surf := newSurface(256, 256, 0, 0, 0, 255)
	ts := NewTileSet(f.Globals.TileCountX, f.Globals.TileCountY)

	for b.Loop() {
		ts.Reset()
		ts.BinRange(f, 0, len(f.Nodes))
		ts.SortRange(0, ts.TileCount())
		PaintRange(ts, f, surf, 0, ts.TileCount())
	}
}
