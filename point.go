package dume

import "github.com/caelunshun/dume/scene"

// Vec2 is a 2D point or vector in logical pixels.
type Vec2 = scene.Vec2

// V2 constructs a Vec2.
func V2(x, y float32) Vec2 {
	return scene.V2(x, y)
}
