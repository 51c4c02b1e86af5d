// Package vmath holds the small 2D vector helpers used by the simulation.
package vmath

import "math"

// Vec2 is a 2D point or direction in world units.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2       { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2       { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2  { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64    { return a.X*b.X + a.Y*b.Y }
func (a Vec2) LenSq() float64        { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Len() float64          { return math.Hypot(a.X, a.Y) }
func (a Vec2) IsZero() bool          { return a.X == 0 && a.Y == 0 }
func (a Vec2) Perp() Vec2            { return Vec2{-a.Y, a.X} }
func (a Vec2) Angle() float64        { return math.Atan2(a.Y, a.X) }
func (a Vec2) Dist(b Vec2) float64   { return a.Sub(b).Len() }
func (a Vec2) DistSq(b Vec2) float64 { return a.Sub(b).LenSq() }

// Norm returns the unit vector, or the zero vector for zero input.
func (a Vec2) Norm() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Lerp moves a toward b by t (0..1).
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// FromAngle returns the point at distance r and angle theta from the origin.
func FromAngle(theta, r float64) Vec2 {
	return Vec2{math.Cos(theta) * r, math.Sin(theta) * r}
}

// WrapAngle normalizes an angle into (-Pi, Pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// InCircle reports whether p lies within r of center.
func InCircle(p, center Vec2, r float64) bool {
	return p.DistSq(center) <= r*r
}

// InRect reports whether p lies inside the axis-aligned box centered on c.
func InRect(p, c Vec2, halfW, halfH float64) bool {
	return p.X >= c.X-halfW && p.X <= c.X+halfW && p.Y >= c.Y-halfH && p.Y <= c.Y+halfH
}

// CircleRect reports whether a circle overlaps an axis-aligned box.
func CircleRect(p Vec2, r float64, c Vec2, halfW, halfH float64) bool {
	dx := math.Max(math.Abs(p.X-c.X)-halfW, 0)
	dy := math.Max(math.Abs(p.Y-c.Y)-halfH, 0)
	return dx*dx+dy*dy <= r*r
}
