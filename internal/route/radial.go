package route

import (
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/slot"
)

// RadialConnector joins LED pads to their rings.
type RadialConnector struct {
	geo Geometry
}

// NewRadialConnector returns a connector for geo.
func NewRadialConnector(geo Geometry) RadialConnector {
	return RadialConnector{geo: geo}
}

// Connect draws the radial from LED s of h to its ones ring or tens arc. A
// via always sits at the ring crossing. Pads on the radial layer are reached
// with one segment at the crossing azimuth. Pads on the ring layer need a
// second via at the neck and a final segment on the pad layer, which ends at
// the pad-corrected azimuth.
func (c RadialConnector) Connect(p *Plan, h hand.Hand, k slot.DigitKind, s int) {
	digit := slot.Digit(k, s)
	net := h.Net(k, digit)
	rd := h.Radial(k)

	at := slot.Address{Slot: s, Subslot: rd.Subslot, Ring: h.DigitRing(k, digit)}
	az := at.Azimuth()
	padR := c.geo.Layout.RadiusAt(h.DiodeRing)

	c.geo.forEachBoard(h, func(v view) {
		crossing := c.geo.point(v, at)
		p.via(net, crossing)
		if v.padLayer == v.radialLayer {
			p.trace(net, crossing, c.geo.polar(v, padR, az), v.radialLayer)
			return
		}
		neck := c.geo.polar(v, c.geo.Layout.RadiusAt(rd.NeckRing), az)
		p.trace(net, crossing, neck, v.radialLayer)
		p.via(net, neck)
		p.trace(net, neck, c.geo.polar(v, padR, az+rd.PadCorrection), v.padLayer)
	})
}

// ConnectAll draws both radials of every LED of h.
func (c RadialConnector) ConnectAll(p *Plan, h hand.Hand) {
	for s := 0; s < slot.SlotsPerRing; s++ {
		c.Connect(p, h, slot.Tens, s)
		c.Connect(p, h, slot.Ones, s)
	}
}
