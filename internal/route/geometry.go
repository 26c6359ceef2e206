// Package route generates the copper of a radial LED matrix: full ones
// rings, partial tens arcs, pad radials and the tap table, plus the region
// eraser that clears previous output.
package route

import (
	"errors"
	"fmt"
	"math"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/rules"
	"pcb-ringroute/internal/slot"
	"pcb-ringroute/pkg/geometry"
)

// ErrDoesNotFit is returned when the rings of a layout crowd too closely
// near the centre to route.
var ErrDoesNotFit = errors.New("layout does not fit")

// Geometry is the fixed context every drawer computes points from.
type Geometry struct {
	Panel   *board.Panel
	Rules   rules.Derived
	Layout  slot.Layout
	Stackup board.Stackup
}

// NewGeometry derives the ring spacing once and fixes the layout.
func NewGeometry(panel *board.Panel, r rules.DesignRules, outerRadius float64) Geometry {
	d := rules.Derive(r)
	return Geometry{
		Panel:  panel,
		Rules:  d,
		Layout: slot.Layout{OuterRadius: outerRadius, Spacing: d.RingSpacing},
	}
}

// WithStackup returns a copy of g drawing rings on the given layer.
func (g Geometry) WithStackup(st board.Stackup) Geometry {
	g.Stackup = st
	return g
}

// MinSubslotChord is the shortest distance between neighbouring subslot
// positions that keeps a via clear of a trace one subslot away.
func MinSubslotChord(d rules.Derived) float64 {
	return d.ViaDiameter/2 + d.TraceWidth/2 + d.MinClearance
}

// SubslotChord is the straight distance between neighbouring subslot
// positions at radius r.
func SubslotChord(r float64) float64 {
	return 2 * r * math.Sin(slot.SubslotDegrees/2*math.Pi/180)
}

// CheckFit verifies that subslots on the innermost ring are still far
// enough apart for a via beside a trace.
func CheckFit(layout slot.Layout, d rules.Derived, innermost int) error {
	r := layout.Radius(innermost)
	if r <= 0 {
		return fmt.Errorf("%w: ring %d lies at radius %v", ErrDoesNotFit, innermost, r)
	}
	if chord, need := SubslotChord(r), MinSubslotChord(d); chord < need {
		return fmt.Errorf("%w: ring %d at radius %v has subslot chord %.1f, need %.1f",
			ErrDoesNotFit, innermost, r, chord, need)
	}
	return nil
}

// view is one hand as drawn on one board.
type view struct {
	board.Board
	frame board.Frame
	// dir is -1 where the hand runs counter-clockwise in the board's view.
	dir         float64
	padLayer    board.Layer
	ringLayer   board.Layer
	radialLayer board.Layer
}

// forEachBoard calls fn once for every board the hand is drawn on. All
// mirrored-board duplication goes through here.
func (g Geometry) forEachBoard(h hand.Hand, fn func(v view)) {
	for _, bi := range h.Boards {
		b, ok := g.Panel.Board(bi)
		if !ok {
			continue
		}
		fn(g.newView(b, h))
	}
}

func (g Geometry) newView(b board.Board, h hand.Hand) view {
	return view{
		Board:       b,
		frame:       b.Frame(),
		dir:         h.Direction(b),
		padLayer:    h.PadLayer(b),
		ringLayer:   b.RingLayer(g.Stackup),
		radialLayer: b.RadialLayer(g.Stackup),
	}
}

// point returns the grid point of an address on a board.
func (g Geometry) point(v view, a slot.Address) geometry.Point {
	r, az := g.Layout.ToPolar(a)
	return v.frame.ToPoint(r, v.dir*az)
}

// polar returns the grid point at an explicit radius and azimuth.
func (g Geometry) polar(v view, r, az float64) geometry.Point {
	return v.frame.ToPoint(r, v.dir*az)
}
