package route

import (
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/slot"
)

// onesTapSlots is the run of LEDs whose ones radials are extended inward to
// the collector, one per digit.
var onesTapSlots = [2]int{25, 35}

// feederTap describes a tens digit that reaches the collector over a feeder
// arc instead of directly.
type feederTap struct {
	slot int
	// feeder indexes the hand's feeder rings.
	feeder     int
	start, end int
	// jumpAt is the arc end the jump leaves from; the tap lands on the other.
	jumpAt int
}

var feederTaps = map[int]feederTap{
	0: {slot: 9, feeder: 1, start: 37, end: 94, jumpAt: 94},
	1: {slot: 19, feeder: 0, start: 77, end: 98, jumpAt: 98},
	4: {slot: 40, feeder: 0, start: 140, end: 161, jumpAt: 140},
	5: {slot: 50, feeder: 1, start: 144, end: 201, jumpAt: 144},
}

// directTensSlots lists tens digits tapped straight to the collector.
var directTensSlots = map[int]int{2: 27, 3: 32}

// QuadTaps returns the tap table of the quad face. Every net is tapped and
// all taps start at an existing radial crossing via, so none needs its own.
func QuadTaps(hands hand.Set) TapTable {
	var table TapTable
	for _, h := range hands {
		table = append(table, quadHandTaps(h)...)
	}
	return table
}

func quadHandTaps(h hand.Hand) TapTable {
	var table TapTable
	sub := h.TensRadial.Subslot
	for t := 0; t < slot.Tens.Digits(); t++ {
		if s, ok := directTensSlots[t]; ok {
			from := slot.Address{Slot: s, Subslot: sub, Ring: h.TensRing()}
			to := from
			to.Ring = h.CollectorRing()
			table = append(table, TapEntry{Hand: h.ID, Kind: slot.Tens, Digit: t, From: from, To: to})
			continue
		}
		f := feederTaps[t]
		if f.feeder >= len(h.Feeders) {
			continue
		}
		feeder := h.Feeders[f.feeder]
		from := slot.Address{Slot: f.slot, Subslot: sub, Ring: h.TensRing()}
		to := from
		to.Ring = feeder
		table = append(table, TapEntry{
			Hand:  h.ID,
			Kind:  slot.Tens,
			Digit: t,
			From:  from,
			To:    to,
			Arc:   &ArcStep{Ring: feeder, Start: f.start, End: f.end},
			Jump: &JumpStep{
				From:    slot.Step(feeder, f.jumpAt),
				To:      slot.Step(h.CollectorRing(), f.jumpAt),
				NeedVia: true,
			},
		})
	}
	for s := onesTapSlots[0]; s < onesTapSlots[1]; s++ {
		d := slot.Digit(slot.Ones, s)
		from := slot.Address{Slot: s, Subslot: h.OnesRadial.Subslot, Ring: h.OnesRing(d)}
		to := from
		to.Ring = h.CollectorRing()
		table = append(table, TapEntry{Hand: h.ID, Kind: slot.Ones, Digit: d, From: from, To: to})
	}
	return table
}

// directTap starts a ones tap at slot+subslot on the digit's ring.
type directTap struct {
	slot, subslot int
	needVia       bool
	layer         TapLayer
}

// pairOnesTaps are the ones taps of the pair face, indexed by digit. Hour
// taps gather around 12 o'clock, minute taps around 6 o'clock. Minute O0
// starts on its own radial crossing and minute O9 steps onto the adjacent
// collector on the ring layer, so neither needs a via.
var pairOnesTaps = map[hand.ID][10]directTap{
	hand.Hour: {
		{1, -1, true, TapOnRadial},
		{0, 2, true, TapOnRadial},
		{0, 0, true, TapOnRadial},
		{0, -1, true, TapOnRadial},
		{59, 2, true, TapOnRadial},
		{59, -1, true, TapOnRadial},
		{58, 2, true, TapOnRadial},
		{58, -1, true, TapOnRadial},
		{57, 2, true, TapOnRadial},
		{57, 0, true, TapOnRadial},
	},
	hand.Minute: {
		{30, 1, false, TapOnRadial},
		{30, 0, true, TapOnRadial},
		{30, -1, true, TapOnRadial},
		{29, 2, true, TapOnRadial},
		{29, 0, true, TapOnRadial},
		{29, -1, true, TapOnRadial},
		{28, 2, true, TapOnRadial},
		{28, 0, true, TapOnRadial},
		{28, -1, true, TapOnRadial},
		{27, 2, false, TapOnRing},
	},
}

// PairTaps returns the tap table of the pair face: the ten ones nets of
// each hand run straight in to the shared collector. Tens arcs are not
// tapped.
func PairTaps(hands hand.Set) TapTable {
	var table TapTable
	for _, h := range hands {
		taps, ok := pairOnesTaps[h.ID]
		if !ok {
			continue
		}
		for d, tp := range taps {
			from := slot.Address{Slot: tp.slot, Subslot: tp.subslot, Ring: h.OnesRing(d)}
			to := from
			to.Ring = h.CollectorRing()
			table = append(table, TapEntry{
				Hand:    h.ID,
				Kind:    slot.Ones,
				Digit:   d,
				From:    from,
				To:      to,
				NeedVia: tp.needVia,
				Layer:   tp.layer,
			})
		}
	}
	return table
}
