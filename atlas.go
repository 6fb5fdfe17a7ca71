package dume

import (
	"fmt"
	"sync"

	"github.com/caelunshun/dume/internal/raster"
)

// Atlas defaults.
const (
	// DefaultAtlasSize is the default atlas dimension (1024×1024).
	DefaultAtlasSize = 1024

	// MinAtlasSize is the minimum atlas dimension (64×64).
	MinAtlasSize = 64

	// atlasPadding is the gap kept between entries so nearest sampling
	// never bleeds into a neighbor.
	atlasPadding = 1
)

// AtlasRegion is a rectangular region in the glyph atlas, in texels.
type AtlasRegion struct {
	X, Y          int
	Width, Height int
}

// String returns a string representation of the region.
func (r AtlasRegion) String() string {
	return fmt.Sprintf("Region(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// shelf is one horizontal row of the shelf-packing allocator.
type shelf struct {
	y      int // top texel row of this shelf
	height int // padded height of the tallest entry so far
	nextX  int // next free X on this shelf
}

// Atlas is a single-channel (alpha) texture for glyph coverage masks,
// packed with a shelf algorithm: each entry goes on the first shelf with
// room, or opens a new shelf below. There is no eviction; callers rebuild
// the atlas when their glyph set changes.
//
// Insert is safe for concurrent use. The painter samples the atlas with
// nearest filtering while a frame renders, so entries must not be inserted
// concurrently with rendering.
type Atlas struct {
	mu      sync.Mutex
	size    int
	pix     []uint8
	shelves []shelf
}

// NewAtlas creates an empty square atlas. The size is clamped to at least
// MinAtlasSize texels per side.
func NewAtlas(size int) *Atlas {
	if size < MinAtlasSize {
		size = MinAtlasSize
	}
	return &Atlas{
		size: size,
		pix:  make([]uint8, size*size),
	}
}

// Size returns the atlas dimension in texels per side.
func (a *Atlas) Size() int {
	return a.size
}

// view exposes the texture to the painter.
func (a *Atlas) view() raster.AlphaView {
	return raster.AlphaView{Pix: a.pix, Width: a.size, Height: a.size}
}

// Insert copies a width×height alpha bitmap (row-major, one byte per texel)
// into the atlas and returns its region. Returns ErrInvalidDimensions for a
// non-positive or short bitmap and ErrAtlasFull when no shelf can take it.
func (a *Atlas) Insert(pix []uint8, width, height int) (AtlasRegion, error) {
	if width <= 0 || height <= 0 || len(pix) < width*height {
		return AtlasRegion{}, ErrInvalidDimensions
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	region, ok := a.allocate(width, height)
	if !ok {
		return AtlasRegion{}, ErrAtlasFull
	}
	for row := 0; row < height; row++ {
		src := pix[row*width : (row+1)*width]
		off := (region.Y+row)*a.size + region.X
		copy(a.pix[off:off+width], src)
	}
	return region, nil
}

// allocate reserves space for a padded width×height entry.
func (a *Atlas) allocate(width, height int) (AtlasRegion, bool) {
	pw := width + atlasPadding
	ph := height + atlasPadding
	if pw > a.size || ph > a.size {
		return AtlasRegion{}, false
	}

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.nextX+pw > a.size {
			continue
		}
		// A taller entry cannot grow a shelf that already has entries.
		if ph > s.height && s.nextX > 0 {
			continue
		}
		region := AtlasRegion{X: s.nextX, Y: s.y, Width: width, Height: height}
		s.nextX += pw
		if ph > s.height {
			s.height = ph
		}
		return region, true
	}

	// Open a new shelf below the last one.
	y := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		y = last.y + last.height
	}
	if y+ph > a.size {
		return AtlasRegion{}, false
	}
	a.shelves = append(a.shelves, shelf{y: y, height: ph, nextX: pw})
	return AtlasRegion{X: 0, Y: y, Width: width, Height: height}, true
}
