// Package dume is a tile-parallel 2D vector rasterizer. It renders scenes of
// rectangles, circles, stroked segments and filled polygons with analytic
// anti-aliasing, compositing in linear light and presenting in sRGB.
//
// A frame flows through three data-parallel stages: a binner assigns every
// draw node to the fixed-size screen tiles its bounding box touches, a sorter
// restores submission order within each tile, and a painter computes exact
// per-pixel coverage and blends. Stages are separated by full barriers and
// fan out over a fixed worker pool.
//
// The high-level entry point is [Canvas]:
//
//	cv := dume.NewCanvas(800, 600)
//	defer cv.Close()
//
//	cv.FillRect(dume.V2(10, 10), dume.V2(200, 120), dume.Solid(dume.RGB(0.9, 0.2, 0.2)))
//	cv.StrokeLine(dume.V2(50, 300), dume.V2(400, 340), 4, dume.LineCapRound, dume.Solid(dume.White))
//
//	target := dume.NewPixmap(800, 600)
//	if err := cv.Render(target); err != nil {
//		log.Fatal(err)
//	}
//	_ = target.SavePNG("out.png")
//
// Gradients interpolate in the Oklab color space, which avoids the muddy
// midpoints of naive RGB interpolation. Text is drawn by sampling a
// caller-managed alpha [Atlas]; shaping and glyph rasterization live outside
// this package (see examples/text).
package dume
