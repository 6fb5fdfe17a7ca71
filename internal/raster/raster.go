// Package raster implements the three-stage tile rasterizer: binning draw
// nodes into fixed-capacity tile buckets, restoring submission order within
// each bucket, and painting every pixel with analytic coverage.
//
// The stages mirror a GPU compute pipeline on the CPU. Each stage is a
// parallel-for (over nodes, tiles, and tiles-of-pixels respectively) and the
// caller must join one stage completely before dispatching the next: the
// binner's atomic counters interleave in arbitrary order, the sorter fixes
// the order, and the painter depends on the sorted buckets.
//
// No stage allocates or returns errors on the hot path. Degenerate geometry
// (zero-length segments, zero-radius gradients) is guarded numerically, and
// bucket overflow silently drops nodes — a documented capacity trade-off,
// not a failure.
package raster

import "github.com/caelunshun/dume/scene"

// BucketCap is the fixed capacity of one tile's node bucket. Nodes binned
// into a tile beyond this limit are dropped for that tile.
const BucketCap = 64

// Frame bundles one frame's read-only pipeline input: the scene buffers plus
// the glyph atlas supplied by the text collaborator.
type Frame struct {
	Globals scene.Globals
	Nodes   []scene.Node
	Bounds  []scene.BoundingBox
	Points  []uint32
	Atlas   AlphaView
}

// point unpacks the packed point at index i into target space.
func (f *Frame) point(i uint32) scene.Vec2 {
	return scene.UnpackPos(f.Points[i], f.Globals.TargetSize())
}

// Surface is the destination pixel buffer: 8-bit sRGB-encoded RGBA,
// row-major with the given stride in bytes.
//
// During painting every pixel is written by exactly one invocation (the one
// that owns its tile), so the painter needs no synchronization beyond the
// stage barrier.
type Surface struct {
	Pix           []uint8
	Width, Height int
	Stride        int
}

// AlphaView is a read-only single-channel (alpha) texture, used for glyph
// atlas sampling. A zero AlphaView samples as fully transparent.
type AlphaView struct {
	Pix           []uint8
	Width, Height int
}

// At samples the texel at (x, y) with nearest filtering, returning alpha in
// [0, 1]. Out-of-bounds samples are transparent.
func (v AlphaView) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= v.Width || y >= v.Height {
		return 0
	}
	return float32(v.Pix[y*v.Width+x]) / 255
}
