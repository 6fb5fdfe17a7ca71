package raster

import (
	"github.com/chewxy/math32"

	"github.com/caelunshun/dume/scene"
)

// BinRange registers every node in [start, end) with every tile its bounding
// box overlaps. It is the first pipeline stage and may run concurrently for
// any partition of the node range: bucket slots are reserved with an atomic
// counter increment, so interleaved registrations from different ranges
// cannot collide (they can, however, land in any order — the sort stage
// restores submission order).
//
// A node whose box lies entirely off-target, or whose packed extent decodes
// negative, is rejected before touching any tile. When a tile's counter has
// already reached BucketCap the registration is dropped silently.
func (ts *TileSet) BinRange(f *Frame, start, end int) {
	target := f.Globals.TargetSize()

	for i := start; i < end; i++ {
		bb := f.Bounds[i]
		pos := scene.UnpackPos(bb.Pos, target)
		size := scene.UnpackPos(bb.Size, target)
		if size.X < 0 || size.Y < 0 {
			continue
		}
		maxX := pos.X + size.X
		maxY := pos.Y + size.Y
		if maxX < 0 || maxY < 0 || pos.X >= target.X || pos.Y >= target.Y {
			continue
		}

		tx0 := clampTile(int(math32.Floor(pos.X/scene.TileSize)), ts.tilesX)
		ty0 := clampTile(int(math32.Floor(pos.Y/scene.TileSize)), ts.tilesY)
		tx1 := clampTile(int(math32.Floor(maxX/scene.TileSize)), ts.tilesX)
		ty1 := clampTile(int(math32.Floor(maxY/scene.TileSize)), ts.tilesY)

		for ty := ty0; ty <= ty1; ty++ {
			row := ty * ts.tilesX
			for tx := tx0; tx <= tx1; tx++ {
				tile := row + tx
				slot := ts.counters[tile].Add(1) - 1
				if slot < BucketCap {
					ts.buckets[tile*BucketCap+int(slot)] = uint32(i)
				} else {
					ts.dropped.Add(1)
				}
			}
		}
	}
}

func clampTile(t, count int) int {
	if t < 0 {
		return 0
	}
	if t >= count {
		return count - 1
	}
	return t
}
