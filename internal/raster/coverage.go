package raster

import (
	"github.com/chewxy/math32"

	"github.com/caelunshun/dume/scene"
)

// Analytic coverage functions. Coverage is the fraction of a pixel's unit
// square a shape occupies, used directly as the antialiasing alpha.
// Conventions: "corner" coordinates address the pixel square [x, x+1)×
// [y, y+1); "center" coordinates are corner + 0.5.

// rectCoverage returns the exact intersection area of the pixel square at
// the given corner with the rectangle origin..origin+size.
func rectCoverage(corner, origin, size scene.Vec2) float32 {
	w := math32.Min(origin.X+size.X, corner.X+1) - math32.Max(origin.X, corner.X)
	if w <= 0 {
		return 0
	}
	h := math32.Min(origin.Y+size.Y, corner.Y+1) - math32.Max(origin.Y, corner.Y)
	if h <= 0 {
		return 0
	}
	return clamp01(w) * clamp01(h)
}

// circleCoverage approximates circle coverage with a one-pixel falloff band
// around the radius. Not area-exact, but smooth and cheap.
func circleCoverage(center, c scene.Vec2, radius float32) float32 {
	return clamp01(radius - center.Distance(c))
}

// strokeCoverage returns coverage for a stroked segment a..b with the given
// half-width and cap style, evaluated at the pixel center.
func strokeCoverage(center, a, b scene.Vec2, halfWidth float32, capStyle uint16) float32 {
	d := b.Sub(a)
	len2 := d.LengthSquared()
	if len2 <= 1e-12 {
		// Degenerate segment: distance to the single point, either cap.
		return clamp01(halfWidth - center.Distance(a))
	}

	rel := center.Sub(a)
	if capStyle == scene.CapSquare {
		// Distance to the flat-ended rectangle: the larger of the
		// perpendicular distance to the infinite line and the overshoot
		// past either endpoint along the segment direction.
		length := math32.Sqrt(len2)
		dir := d.Mul(1 / length)
		perp := math32.Abs(dir.Cross(rel))
		along := dir.Dot(rel)
		overshoot := math32.Max(-along, along-length)
		if overshoot < 0 {
			overshoot = 0
		}
		return clamp01(halfWidth - math32.Max(perp, overshoot))
	}

	// Round cap: distance to the nearest point on the segment.
	t := clamp01(rel.Dot(d) / len2)
	nearest := a.Add(d.Mul(t))
	return clamp01(halfWidth - center.Distance(nearest))
}

// fillEdgeArea returns one polygon edge's signed-area contribution at the
// pixel with the given corner. Contributions accumulate across all edges of
// a polygon group; evenOddCoverage folds the total into [0, 1].
//
// The edge a→b keeps its traversal direction: the vertical window over the
// pixel's unit span is signed by travel direction, and the horizontal factor
// is the fraction of the pixel lying right of the edge's crossing. An edge
// therefore only affects pixels to its right, which is why fill bounding
// boxes extend to the right edge of the whole polygon.
func fillEdgeArea(corner, a, b scene.Vec2) float32 {
	y0 := clamp01(a.Y - corner.Y)
	y1 := clamp01(b.Y - corner.Y)
	dy := y1 - y0
	if dy == 0 {
		return 0
	}

	// x where the edge crosses the middle of the clipped window. The window
	// being non-degenerate guarantees b.Y != a.Y.
	yMid := corner.Y + 0.5*(y0+y1)
	t := (yMid - a.Y) / (b.Y - a.Y)
	x := a.X + t*(b.X-a.X)

	return dy * clamp01(corner.X+1-x)
}

// evenOddCoverage folds an accumulated signed area into even-odd coverage:
// odd winding paints, even winding does not, with the fractional part
// providing the antialiased edge.
func evenOddCoverage(area float32) float32 {
	return clamp01(math32.Abs(area - 2*math32.Round(0.5*area)))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
