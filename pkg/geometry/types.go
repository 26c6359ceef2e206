// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position on the board's integer placement grid.
// One grid unit is the smallest addressable unit of the board document.
type Point struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// ToFloat converts to Point2D.
func (p Point) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// Distance returns the Euclidean distance to another grid point.
func (p Point) Distance(other Point) float64 {
	return p.ToFloat().Distance(other.ToFloat())
}

// Offset returns p moved by (dx, dy) grid units.
func (p Point) Offset(dx, dy int64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	return r2.Norm(r2.Sub(p.vec(), other.vec()))
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return fromVec(r2.Add(p.vec(), other.vec()))
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return fromVec(r2.Sub(p.vec(), other.vec()))
}

// Round snaps the point to the integer grid.
func (p Point2D) Round() Point {
	return Point{X: int64(math.Round(p.X)), Y: int64(math.Round(p.Y))}
}

func (p Point2D) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func fromVec(v r2.Vec) Point2D { return Point2D{X: v.X, Y: v.Y} }

// NormalizeDegrees maps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg == 360 {
		return 0
	}
	return deg
}

// Polar returns the offset from the origin for radius r at azimuth deg,
// measured clockwise from 12 o'clock with +Y pointing down.
func Polar(r, deg float64) Point2D {
	rad := NormalizeDegrees(deg) * math.Pi / 180
	return fromVec(r2.Scale(r, r2.Vec{X: math.Sin(rad), Y: -math.Cos(rad)}))
}

// Azimuth is the inverse of Polar for the direction: the clockwise angle
// from 12 o'clock of offset, in [0, 360).
func Azimuth(offset Point2D) float64 {
	deg := math.Atan2(offset.X, -offset.Y) * 180 / math.Pi
	return NormalizeDegrees(deg)
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Inset grows (negative d) or shrinks the rectangle on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// CircleBounds returns the square enclosing a circle.
func CircleBounds(center Point2D, radius float64) Rect {
	return Rect{X: center.X - radius, Y: center.Y - radius, Width: 2 * radius, Height: 2 * radius}
}
