// Package scene defines the per-frame buffers consumed by the rasterizer
// pipeline and the packed 32-bit encodings they are built from.
//
// A frame is three index-aligned buffers produced by the scene builder:
// draw nodes, their bounding boxes, and a flat packed-point buffer that
// stroke segments and fill edges point into. All three are rebuilt from
// scratch every frame and are read-only once the pipeline starts.
package scene

import "github.com/chewxy/math32"

// TileSize is the width and height of one tile in physical pixels.
// The binner and painter partition the target into TileSize×TileSize cells.
const TileSize = 16

// Shape identifies the geometry carried by a Node.
type Shape uint32

const (
	// ShapeRect is an axis-aligned rectangle: PosA origin, PosB size.
	ShapeRect Shape = iota
	// ShapeCircle is a circle: PosA center, PosB radius in its X half.
	ShapeCircle
	// ShapeStroke is one stroked line segment: PosA is the index of the
	// first of two consecutive points, PosB holds width and cap.
	ShapeStroke
	// ShapeFill is one polygon edge evaluated under the even-odd rule:
	// PosA is the index of the first of two consecutive edge endpoints.
	ShapeFill
)

// String returns the shape name for diagnostics.
func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "Rect"
	case ShapeCircle:
		return "Circle"
	case ShapeStroke:
		return "Stroke"
	case ShapeFill:
		return "Fill"
	}
	return "Unknown"
}

// PaintKind identifies how a node's color is computed.
type PaintKind uint32

const (
	// PaintSolid paints ColorA everywhere.
	PaintSolid PaintKind = iota
	// PaintLinearGradient interpolates ColorA→ColorB along the axis
	// GradPosA→GradPosB, in Oklab space.
	PaintLinearGradient
	// PaintRadialGradient interpolates ColorA→ColorB by distance from
	// GradPosA, with radius |GradPosB - GradPosA|, in Oklab space.
	PaintRadialGradient
	// PaintGlyph samples the alpha atlas at GradPosB + (pixel - GradPosA)
	// and tints with ColorA.
	PaintGlyph
)

// String returns the paint kind name for diagnostics.
func (k PaintKind) String() string {
	switch k {
	case PaintSolid:
		return "Solid"
	case PaintLinearGradient:
		return "LinearGradient"
	case PaintRadialGradient:
		return "RadialGradient"
	case PaintGlyph:
		return "Glyph"
	}
	return "Unknown"
}

// Cap styles for stroke segments, stored in the high half of a stroke
// node's PosB word.
const (
	CapRound  uint16 = 0
	CapSquare uint16 = 1
)

// StrokeWidthScale is the fixed-point scale for the stroke half-width
// stored in the low half of a stroke node's PosB word (8.8 fixed point).
const StrokeWidthScale = 256

// Node is one drawable primitive. All fields are packed 32-bit words; the
// meaning of PosA/PosB depends on Shape, and of ColorA/ColorB/GradPosA/
// GradPosB on Paint. See the Shape and PaintKind constants.
type Node struct {
	Shape Shape
	PosA  uint32
	PosB  uint32
	// Extra is the group id. Consecutive stroke nodes sharing Extra form one
	// logical path whose coverage is combined with max (caps and joins must
	// not double-blend); consecutive fill nodes sharing Extra form one
	// polygon evaluated together under the even-odd rule.
	Extra    uint32
	Paint    PaintKind
	ColorA   uint32
	ColorB   uint32
	GradPosA uint32
	GradPosB uint32
}

// BoundingBox is a node's binning extent, packed position + size.
// It is read only by the binner, never by the painter. Index-aligned with
// the node buffer.
type BoundingBox struct {
	Pos  uint32
	Size uint32
}

// Globals carries the per-frame constants every stage reads.
type Globals struct {
	// LogicalSize is the target size in logical pixels.
	LogicalSize Vec2
	// ScaleFactor is the device pixel ratio. Geometry is encoded in
	// physical pixels (logical × scale).
	ScaleFactor float32
	// TargetWidth and TargetHeight are the physical pixel dimensions.
	TargetWidth, TargetHeight int
	// TileCountX and TileCountY are the tile grid dimensions,
	// ceil(target / TileSize).
	TileCountX, TileCountY int
	// NodeCount is the number of nodes submitted this frame.
	NodeCount int
}

// NewGlobals derives the physical target and tile grid dimensions from a
// logical size and scale factor.
func NewGlobals(logical Vec2, scale float32) Globals {
	if scale <= 0 {
		scale = 1
	}
	w := int(math32.Round(logical.X * scale))
	h := int(math32.Round(logical.Y * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Globals{
		LogicalSize: logical,
		ScaleFactor: scale,
		TargetWidth: w, TargetHeight: h,
		TileCountX: (w + TileSize - 1) / TileSize,
		TileCountY: (h + TileSize - 1) / TileSize,
	}
}

// TargetSize returns the physical target size as a vector. Packed positions
// are normalized against this size.
func (g Globals) TargetSize() Vec2 {
	return Vec2{X: float32(g.TargetWidth), Y: float32(g.TargetHeight)}
}

// TileCount returns the total number of tiles.
func (g Globals) TileCount() int {
	return g.TileCountX * g.TileCountY
}

// Scene is one frame's worth of pipeline input. The buffers are append-only
// while the frame is built and read-only once rendering starts; Reset
// recycles the backing arrays for the next frame.
type Scene struct {
	Globals Globals
	Nodes   []Node
	Bounds  []BoundingBox
	Points  []uint32
}

// NewScene creates an empty scene for the given frame globals.
func NewScene(g Globals) *Scene {
	return &Scene{Globals: g}
}

// Reset discards the frame's buffers, keeping capacity. No state survives
// into the next frame.
func (s *Scene) Reset() {
	s.Nodes = s.Nodes[:0]
	s.Bounds = s.Bounds[:0]
	s.Points = s.Points[:0]
	s.Globals.NodeCount = 0
}

// AppendNode adds a node and its bounding box, returning the node index.
// Nodes and bounds stay index-aligned by construction.
func (s *Scene) AppendNode(n Node, bb BoundingBox) int {
	s.Nodes = append(s.Nodes, n)
	s.Bounds = append(s.Bounds, bb)
	s.Globals.NodeCount = len(s.Nodes)
	return len(s.Nodes) - 1
}

// AppendPoint packs a target-space point into the point buffer and returns
// its index.
func (s *Scene) AppendPoint(p Vec2) uint32 {
	s.Points = append(s.Points, PackPos(p, s.Globals.TargetSize()))
	return uint32(len(s.Points) - 1)
}

// Point unpacks the point at index i.
func (s *Scene) Point(i uint32) Vec2 {
	return UnpackPos(s.Points[i], s.Globals.TargetSize())
}

// MakeBounds packs a target-space bounding box.
func MakeBounds(pos, size Vec2, target Vec2) BoundingBox {
	return BoundingBox{
		Pos:  PackPos(pos, target),
		Size: PackPos(size, target),
	}
}
