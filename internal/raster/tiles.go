package raster

import "sync/atomic"

// TileSet owns the per-tile shared state the binner writes and the later
// stages read: one fixed-capacity bucket of node indices per tile and one
// atomic registration counter per tile.
//
// All of it is rebuilt every frame; Reset must run before binning starts.
// The counters are the only contended state in the pipeline and are only
// ever mutated with atomic increments.
type TileSet struct {
	tilesX, tilesY int
	counters       []atomic.Int32
	buckets        []uint32
	dropped        atomic.Int64
}

// NewTileSet allocates tile state for a tilesX×tilesY grid.
func NewTileSet(tilesX, tilesY int) *TileSet {
	if tilesX < 0 {
		tilesX = 0
	}
	if tilesY < 0 {
		tilesY = 0
	}
	n := tilesX * tilesY
	return &TileSet{
		tilesX:   tilesX,
		tilesY:   tilesY,
		counters: make([]atomic.Int32, n),
		buckets:  make([]uint32, n*BucketCap),
	}
}

// TileCount returns the number of tiles in the grid.
func (ts *TileSet) TileCount() int {
	return ts.tilesX * ts.tilesY
}

// Reset zeroes every counter and the dropped-node tally. Bucket contents
// need no clearing; only the first counter entries are ever read.
// Must not run concurrently with any pipeline stage.
func (ts *TileSet) Reset() {
	for i := range ts.counters {
		ts.counters[i].Store(0)
	}
	ts.dropped.Store(0)
}

// Count returns the number of valid entries in a tile's bucket, clamped to
// capacity. The counter itself may exceed BucketCap when nodes overflowed.
func (ts *TileSet) Count(tile int) int {
	n := int(ts.counters[tile].Load())
	if n > BucketCap {
		n = BucketCap
	}
	return n
}

// Bucket returns the valid prefix of a tile's bucket. After the sort stage
// the entries are ascending node indices, i.e. submission order.
func (ts *TileSet) Bucket(tile int) []uint32 {
	off := tile * BucketCap
	return ts.buckets[off : off+ts.Count(tile)]
}

// Dropped returns how many node registrations were discarded to bucket
// overflow this frame.
func (ts *TileSet) Dropped() int64 {
	return ts.dropped.Load()
}
