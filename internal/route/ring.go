package route

import (
	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/slot"
	"pcb-ringroute/pkg/geometry"
)

// TensArc returns the running subslot range [start, end] of tens digit t
// for radials crossing the tens ring at subslot sub of each slot. The arc
// runs from the first radial crossing of its decade to the last, so it
// spans nine slots and the gaps between decades fall between crossings.
func TensArc(t, sub int) (start, end int) {
	first := t*10*slot.SubslotsPerSlot + sub
	return first, first + 9*slot.SubslotsPerSlot
}

// RingPoints returns the end-start+1 grid points of a ring drawn from running
// subslot start to end in one board frame. Consecutive segments share their
// endpoints exactly, and a full ring (end-start = SubslotsPerRing) closes on
// its first point. Empty for end <= start.
func RingPoints(frame board.Frame, layout slot.Layout, dir float64, ring, start, end int) []geometry.Point {
	if end <= start {
		return nil
	}
	pts := make([]geometry.Point, 0, end-start+1)
	for i := start; i <= end; i++ {
		r, az := layout.ToPolar(slot.Step(ring, i))
		pts = append(pts, frame.ToPoint(r, dir*az))
	}
	return pts
}

// RingDrawer lays full ones rings and partial tens arcs.
type RingDrawer struct {
	geo Geometry
}

// NewRingDrawer returns a drawer for geo.
func NewRingDrawer(geo Geometry) RingDrawer {
	return RingDrawer{geo: geo}
}

// Ring draws net on ring from subslot start to end, one trace per subslot,
// on the ring layer of every board the hand is drawn on.
func (d RingDrawer) Ring(p *Plan, h hand.Hand, net string, ring, start, end int) {
	d.geo.forEachBoard(h, func(v view) {
		pts := RingPoints(v.frame, d.geo.Layout, v.dir, ring, start, end)
		for i := 1; i < len(pts); i++ {
			p.trace(net, pts[i-1], pts[i], v.ringLayer)
		}
	})
}

// OnesRings draws the ten full rings of h.
func (d RingDrawer) OnesRings(p *Plan, h hand.Hand) {
	for digit := 0; digit < slot.Ones.Digits(); digit++ {
		d.Ring(p, h, h.Net(slot.Ones, digit), h.OnesRing(digit), 0, slot.SubslotsPerRing)
	}
}

// TensArcs draws the six partial arcs of h on its tens ring.
func (d RingDrawer) TensArcs(p *Plan, h hand.Hand) {
	for t := 0; t < slot.Tens.Digits(); t++ {
		start, end := TensArc(t, h.TensRadial.Subslot)
		d.Ring(p, h, h.Net(slot.Tens, t), h.TensRing(), start, end)
	}
}
