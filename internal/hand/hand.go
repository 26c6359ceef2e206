// Package hand describes the independently addressed LED rings of a clock
// face and the copper rings each one owns.
package hand

import (
	"fmt"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/slot"
)

// ID identifies a hand.
type ID int

const (
	Hour ID = iota
	Minute
	Second
	Third
)

func (id ID) String() string {
	switch id {
	case Hour:
		return "hour"
	case Minute:
		return "minute"
	case Second:
		return "second"
	case Third:
		return "third"
	default:
		return fmt.Sprintf("hand(%d)", int(id))
	}
}

// Radial describes how one digit kind leaves its ring for the LED pads.
type Radial struct {
	// Subslot is the offset from the LED slot at which the radial crosses
	// its ring.
	Subslot int `json:"subslot"`
	// PadCorrection is the angle in degrees from the radial azimuth to the
	// pad. It only applies behind a neck; a radial reaching its pad on the
	// radial layer ends at the crossing azimuth.
	PadCorrection float64 `json:"pad_correction"`
	// NeckRing is the fractional ring position of the layer change in front
	// of a pad that sits on the ring layer.
	NeckRing float64 `json:"neck_ring"`
}

// Hand is one 60-LED ring. Ring fields are absolute ring indices.
type Hand struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	// Side is the side the LEDs are mounted on. Pads sit on that side's
	// copper.
	Side board.Side `json:"side"`
	// Mirrored hands run counter-clockwise in their board's own view.
	Mirrored bool `json:"mirrored"`
	// Boards lists the panel boards this hand is drawn on. Every board gets
	// identical geometry in its own frame under the same net names.
	Boards []int `json:"boards"`

	Tens int `json:"tens_ring"`
	// Ones is the ring of ones digit 0; digit d runs on Ones+d.
	Ones int `json:"ones_ring"`
	// Feeders are extra rings carrying partial tap arcs.
	Feeders []int `json:"feeder_rings,omitempty"`
	// Collector is where taps terminate. Hands may share one collector.
	Collector int `json:"collector_ring"`
	// DiodeRing is the fractional ring position the LED footprints are
	// centred on. Negative values lie outside ring 0.
	DiodeRing float64 `json:"diode_ring"`

	TensRadial Radial `json:"tens_radial"`
	OnesRadial Radial `json:"ones_radial"`

	// OrientationOffset is added to the footprint rotation.
	OrientationOffset float64 `json:"orientation_offset"`
	// RefFormat formats RefOffset+RefBase+slot into a reference; "D%d" when
	// empty.
	RefFormat string `json:"ref_format,omitempty"`
	RefBase   int    `json:"ref_base"`
}

// TensRing is the ring carrying the hand's partial tens arcs.
func (h Hand) TensRing() int { return h.Tens }

// OnesRing is the full ring of ones digit d.
func (h Hand) OnesRing(d int) int { return h.Ones + d }

// CollectorRing is where every tap of the hand terminates.
func (h Hand) CollectorRing() int { return h.Collector }

// DigitRing is the ring a digit of kind k is drawn on.
func (h Hand) DigitRing(k slot.DigitKind, d int) int {
	if k == slot.Tens {
		return h.Tens
	}
	return h.OnesRing(d)
}

// Radial returns the radial description of digit kind k.
func (h Hand) Radial(k slot.DigitKind) Radial {
	if k == slot.Tens {
		return h.TensRadial
	}
	return h.OnesRadial
}

// Rings returns the rings the hand draws on, excluding the collector.
func (h Hand) Rings() []int {
	rings := []int{h.Tens}
	for d := 0; d < slot.Ones.Digits(); d++ {
		rings = append(rings, h.OnesRing(d))
	}
	return append(rings, h.Feeders...)
}

// IsFeeder reports whether ring is one of the hand's feeder rings.
func (h Hand) IsFeeder(ring int) bool {
	for _, f := range h.Feeders {
		if f == ring {
			return true
		}
	}
	return false
}

// Direction is the sign applied to azimuths of this hand on board b.
func (h Hand) Direction(b board.Board) float64 {
	dir := 1.0
	if b.Side == board.SideBack {
		dir = -1
	}
	if h.Mirrored {
		dir = -dir
	}
	return dir
}

// PadLayer is the copper layer the hand's pads sit on, on board b.
func (h Hand) PadLayer(b board.Board) board.Layer {
	return b.Copper(h.Side)
}

// Net returns the net name of one of the hand's address lines.
func (h Hand) Net(k slot.DigitKind, value int) string {
	return slot.NetName(h.Name, k, value)
}

// Nets returns all 16 nets of the hand, tens first.
func (h Hand) Nets() []string {
	nets := make([]string, 0, slot.Tens.Digits()+slot.Ones.Digits())
	for _, k := range []slot.DigitKind{slot.Tens, slot.Ones} {
		for v := 0; v < k.Digits(); v++ {
			nets = append(nets, h.Net(k, v))
		}
	}
	return nets
}

// Reference returns the LED reference designator for a slot on a board.
func (h Hand) Reference(b board.Board, s int) string {
	format := h.RefFormat
	if format == "" {
		format = "D%d"
	}
	return fmt.Sprintf(format, b.RefOffset+h.RefBase+s)
}

// Validate checks the hand's rings are ordered from the LEDs inward.
func (h Hand) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("hand %v has no name", h.ID)
	}
	if len(h.Boards) == 0 {
		return fmt.Errorf("hand %s is not bound to a board", h.Name)
	}
	outer := h.Tens
	for _, r := range h.Rings() {
		if r < 0 {
			return fmt.Errorf("hand %s: negative ring %d", h.Name, r)
		}
		if r == h.Collector {
			return fmt.Errorf("hand %s: ring %d doubles as the collector", h.Name, r)
		}
		if r < outer {
			outer = r
		}
	}
	if h.Collector < h.Tens || h.Collector < h.OnesRing(slot.Ones.Digits()-1) {
		return fmt.Errorf("hand %s: collector %d must lie inside the digit rings", h.Name, h.Collector)
	}
	if h.DiodeRing >= float64(outer) {
		return fmt.Errorf("hand %s: diode ring %v must lie outside ring %d", h.Name, h.DiodeRing, outer)
	}
	for _, k := range []slot.DigitKind{slot.Tens, slot.Ones} {
		rd := h.Radial(k)
		if rd.NeckRing < h.DiodeRing || rd.NeckRing >= float64(outer) {
			return fmt.Errorf("hand %s: %v neck %v must lie between diode ring %v and ring %d",
				h.Name, k, rd.NeckRing, h.DiodeRing, outer)
		}
	}
	if h.TensRadial.Subslot == h.OnesRadial.Subslot {
		return fmt.Errorf("hand %s: tens and ones radials share subslot %d", h.Name, h.OnesRadial.Subslot)
	}
	return nil
}
