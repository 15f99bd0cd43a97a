package game

import "math"

// Vec2 is a world-space position or direction.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Normalize returns the unit vector, or the zero vector for zero magnitude.
func (v Vec2) Normalize() Vec2 {
	m := v.Len()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{v.X / m, v.Y / m}
}

// Perp returns the vector rotated 90 degrees counterclockwise in
// screen-style coordinates (y down). For a polygon wound counterclockwise
// on screen this is the outward edge normal.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

func (v Vec2) Rotate(rad float64) Vec2 {
	s, c := math.Sincos(rad)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}
