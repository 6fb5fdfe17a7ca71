package scene

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestNewGlobals(t *testing.T) {
	tests := []struct {
		name           string
		logical        Vec2
		scale          float32
		wantW, wantH   int
		wantTX, wantTY int
	}{
		{"exact tiles", V2(64, 32), 1, 64, 32, 4, 2},
		{"partial tiles", V2(65, 17), 1, 65, 17, 5, 2},
		{"hidpi", V2(100, 100), 2, 200, 200, 13, 13},
		{"tiny", V2(1, 1), 1, 1, 1, 1, 1},
		{"zero scale defaults to 1", V2(32, 32), 0, 32, 32, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGlobals(tt.logical, tt.scale)
			if g.TargetWidth != tt.wantW || g.TargetHeight != tt.wantH {
				t.Errorf("target = %dx%d, want %dx%d", g.TargetWidth, g.TargetHeight, tt.wantW, tt.wantH)
			}
			if g.TileCountX != tt.wantTX || g.TileCountY != tt.wantTY {
				t.Errorf("tiles = %dx%d, want %dx%d", g.TileCountX, g.TileCountY, tt.wantTX, tt.wantTY)
			}
			if g.TileCount() != tt.wantTX*tt.wantTY {
				t.Errorf("TileCount() = %d", g.TileCount())
			}
		})
	}
}

func TestSceneAppendAndReset(t *testing.T) {
	s := NewScene(NewGlobals(V2(100, 100), 1))

	idx := s.AppendNode(Node{Shape: ShapeRect}, BoundingBox{})
	if idx != 0 {
		t.Errorf("first node index = %d, want 0", idx)
	}
	idx = s.AppendNode(Node{Shape: ShapeCircle}, BoundingBox{})
	if idx != 1 {
		t.Errorf("second node index = %d, want 1", idx)
	}
	if s.Globals.NodeCount != 2 {
		t.Errorf("NodeCount = %d, want 2", s.Globals.NodeCount)
	}
	if len(s.Nodes) != len(s.Bounds) {
		t.Fatalf("nodes and bounds misaligned: %d vs %d", len(s.Nodes), len(s.Bounds))
	}

	pi := s.AppendPoint(V2(10, 20))
	if pi != 0 {
		t.Errorf("first point index = %d, want 0", pi)
	}
	p := s.Point(pi)
	if math32.Abs(p.X-10) > 0.01 || math32.Abs(p.Y-20) > 0.01 {
		t.Errorf("Point(0) = %v, want ~(10, 20)", p)
	}

	s.Reset()
	if len(s.Nodes) != 0 || len(s.Bounds) != 0 || len(s.Points) != 0 || s.Globals.NodeCount != 0 {
		t.Error("Reset did not clear frame state")
	}
}

func TestShapeAndPaintStrings(t *testing.T) {
	if ShapeStroke.String() != "Stroke" || ShapeFill.String() != "Fill" {
		t.Error("unexpected Shape names")
	}
	if PaintLinearGradient.String() != "LinearGradient" || PaintKind(99).String() != "Unknown" {
		t.Error("unexpected PaintKind names")
	}
}
