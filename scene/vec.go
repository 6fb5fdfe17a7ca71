package scene

import "github.com/chewxy/math32"

// Vec2 is a 2D point or vector in target-space coordinates.
// The pipeline is float32 end to end, matching the packed wire formats.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience constructor for Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the vector sum p + q.
func (p Vec2) Add(q Vec2) Vec2 {
	return Vec2{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector difference p - q.
func (p Vec2) Sub(q Vec2) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Vec2) Mul(s float32) Vec2 {
	return Vec2{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Vec2) Dot(q Vec2) float32 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the scalar 2D cross product of p and q.
func (p Vec2) Cross(q Vec2) float32 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the Euclidean length of p.
func (p Vec2) Length() float32 {
	return math32.Hypot(p.X, p.Y)
}

// LengthSquared returns the squared length of p.
func (p Vec2) LengthSquared() float32 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between p and q.
func (p Vec2) Distance(q Vec2) float32 {
	return p.Sub(q).Length()
}
