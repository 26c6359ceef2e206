package board

import "pcb-ringroute/pkg/geometry"

// Frame maps polar coordinates around a board centre to grid points.
type Frame struct {
	Center geometry.Point2D
}

// ToPoint returns the grid point at radius r and azimuth deg, clockwise from
// the board's 12 o'clock. The result is rounded to the placement grid so
// chained segments never accumulate fractional drift.
func (f Frame) ToPoint(r, deg float64) geometry.Point {
	return f.Center.Add(geometry.Polar(r, deg)).Round()
}

// Radius returns the distance of p from the frame centre.
func (f Frame) Radius(p geometry.Point) float64 {
	return f.Center.Distance(p.ToFloat())
}

// AzimuthOf returns the clockwise angle of p from 12 o'clock.
func (f Frame) AzimuthOf(p geometry.Point) float64 {
	return geometry.Azimuth(p.ToFloat().Sub(f.Center))
}
