package dume

import (
	"log/slog"
	"time"

	"github.com/caelunshun/dume/internal/parallel"
	"github.com/caelunshun/dume/internal/raster"
	"github.com/caelunshun/dume/scene"
)

// Renderer executes the three-stage tile pipeline over a fixed worker pool.
// It owns the per-frame tile state and may be reused across frames and
// scenes; a Canvas embeds one, but a Renderer can also be driven directly
// with a hand-built scene.
//
// A Renderer is not safe for concurrent Render calls.
type Renderer struct {
	pool  *parallel.Pool
	tiles *raster.TileSet

	tilesX, tilesY int
}

// NewRenderer creates a renderer with the given number of worker
// goroutines. Values below 1 fall back to one worker. Close the renderer to
// release the workers.
func NewRenderer(workers int) *Renderer {
	return &Renderer{pool: parallel.NewPool(workers)}
}

// Close shuts down the worker pool. A closed renderer still renders,
// falling back to running stages inline.
func (r *Renderer) Close() {
	r.pool.Close()
}

// Render rasterizes the scene into the target, compositing over the
// target's existing contents. The target's pixel dimensions must match the
// scene's physical target size.
//
// The three stages — bin nodes to tiles, sort tile buckets, paint pixels —
// each fan out over the pool, with a full barrier between stages: binning
// must finish everywhere before any bucket is sorted, and sorting before
// any pixel is painted.
func (r *Renderer) Render(s *scene.Scene, target *Pixmap, atlas *Atlas) error {
	if s == nil {
		return ErrNilScene
	}
	if target == nil {
		return ErrNilTarget
	}
	g := s.Globals
	if target.Width() != g.TargetWidth || target.Height() != g.TargetHeight {
		return ErrTargetSizeMismatch
	}

	if r.tiles == nil || r.tilesX != g.TileCountX || r.tilesY != g.TileCountY {
		r.tiles = raster.NewTileSet(g.TileCountX, g.TileCountY)
		r.tilesX = g.TileCountX
		r.tilesY = g.TileCountY
	}
	r.tiles.Reset()

	frame := &raster.Frame{
		Globals: g,
		Nodes:   s.Nodes,
		Bounds:  s.Bounds,
		Points:  s.Points,
	}
	if atlas != nil {
		frame.Atlas = atlas.view()
	}
	surf := target.surface()
	start := time.Now()

	r.pool.ParallelFor(len(frame.Nodes), func(lo, hi int) {
		r.tiles.BinRange(frame, lo, hi)
	})
	r.pool.ParallelFor(r.tiles.TileCount(), func(lo, hi int) {
		r.tiles.SortRange(lo, hi)
	})
	r.pool.ParallelFor(r.tiles.TileCount(), func(lo, hi int) {
		raster.PaintRange(r.tiles, frame, surf, lo, hi)
	})

	if dropped := r.tiles.Dropped(); dropped > 0 {
		Logger().Warn("tile buckets overflowed",
			slog.Int64("dropped", dropped),
			slog.Int("nodes", len(frame.Nodes)))
	}
	Logger().Debug("frame rendered",
		slog.Int("nodes", len(frame.Nodes)),
		slog.Int("tiles_x", g.TileCountX),
		slog.Int("tiles_y", g.TileCountY),
		slog.Int("workers", r.pool.Workers()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}
