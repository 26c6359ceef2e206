package route

import (
	"sort"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/slot"
)

// Design bundles the hands, tap table, stackup and erase defaults of one
// clock face.
type Design struct {
	Name    string
	Hands   func(*board.Panel) hand.Set
	Taps    func(hand.Set) TapTable
	Stackup board.Stackup
	// ErasePolicy applies unless the configuration names one.
	ErasePolicy ErasePolicy
	// EraseRing is the fractional ring position erased outside of. Zero
	// derives the radius from the innermost collector.
	EraseRing float64
	// OuterRadius is the radius of ring 0 the face is drawn for.
	OuterRadius float64
}

// EraseRadius returns the erase radius the design asks for in layout, or
// zero for the derived default.
func (d Design) EraseRadius(l slot.Layout) float64 {
	if d.EraseRing == 0 {
		return 0
	}
	return l.RadiusAt(d.EraseRing)
}

// Pair is the two-hand face: rings on the front copper, radials behind,
// hour LEDs on the front and minute LEDs on the back. It erases everything
// that reaches outside ring 21.5.
var Pair = Design{
	Name:        "pair",
	Hands:       hand.Pair,
	Taps:        PairTaps,
	Stackup:     board.RingsFront,
	ErasePolicy: ErasePolicyEither,
	EraseRing:   21.5,
	OuterRadius: 1400,
}

// Quad is the four-hand face on the larger board.
var Quad = Design{
	Name:        "quad",
	Hands:       hand.Quad,
	Taps:        QuadTaps,
	Stackup:     board.RingsBack,
	ErasePolicy: ErasePolicyBoth,
	OuterRadius: 3000,
}

var designs = map[string]Design{
	Pair.Name: Pair,
	Quad.Name: Quad,
}

// LookupDesign returns a design by name.
func LookupDesign(name string) (Design, bool) {
	d, ok := designs[name]
	return d, ok
}

// DesignNames returns the known design names, sorted.
func DesignNames() []string {
	names := make([]string, 0, len(designs))
	for n := range designs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
