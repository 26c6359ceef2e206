package hand

import (
	"fmt"

	"pcb-ringroute/internal/board"
)

// Set is the ordered list of hands routed in one run.
type Set []Hand

// Lookup returns the hand with the given ID.
func (s Set) Lookup(id ID) (Hand, bool) {
	for _, h := range s {
		if h.ID == id {
			return h, true
		}
	}
	return Hand{}, false
}

// Nets returns every managed net of every hand.
func (s Set) Nets() []string {
	var nets []string
	for _, h := range s {
		nets = append(nets, h.Nets()...)
	}
	return nets
}

// InnermostRing returns the highest ring index used by any hand.
func (s Set) InnermostRing() int {
	inner := 0
	for _, h := range s {
		if c := h.CollectorRing(); c > inner {
			inner = c
		}
	}
	return inner
}

// Owner returns the hand drawing on ring, if any. Collectors are not owned.
func (s Set) Owner(ring int) (Hand, bool) {
	for _, h := range s {
		for _, r := range h.Rings() {
			if r == ring {
				return h, true
			}
		}
	}
	return Hand{}, false
}

// Validate checks every hand and that no two hands draw on the same ring.
// Hands may share a collector.
func (s Set) Validate(p *board.Panel) error {
	names := make(map[string]bool)
	used := make(map[int]string)
	collectors := make(map[int]string)
	for _, h := range s {
		if err := h.Validate(); err != nil {
			return err
		}
		if names[h.Name] {
			return fmt.Errorf("duplicate hand name %s", h.Name)
		}
		names[h.Name] = true
		for _, bi := range h.Boards {
			if _, ok := p.Board(bi); !ok {
				return fmt.Errorf("hand %s bound to unknown board %d on panel %s", h.Name, bi, p.Name)
			}
		}
		for _, r := range h.Rings() {
			if other, ok := used[r]; ok {
				return fmt.Errorf("ring %d used by both %s and %s", r, other, h.Name)
			}
			if other, ok := collectors[r]; ok {
				return fmt.Errorf("ring %d of %s is the collector of %s", r, h.Name, other)
			}
			used[r] = h.Name
		}
		if other, ok := used[h.Collector]; ok {
			return fmt.Errorf("collector %d of %s is drawn on by %s", h.Collector, h.Name, other)
		}
		collectors[h.Collector] = h.Name
	}
	return nil
}

func allBoards(p *board.Panel) []int {
	boards := make([]int, 0, len(p.Boards))
	for _, b := range p.Boards {
		boards = append(boards, b.Index)
	}
	return boards
}

// Pair returns the two-hand clock face: hour LEDs on the front, minute LEDs
// behind them on the back, both running clockwise. The hands interleave
// their radials around each slot and share one collector.
func Pair(p *board.Panel) Set {
	boards := allBoards(p)
	return Set{
		{ID: Hour, Name: "HOUR", Side: board.SideFront, Boards: boards,
			Tens: 1, Ones: 2, Collector: 22, DiodeRing: -3,
			TensRadial:        Radial{Subslot: 2, PadCorrection: -1.5, NeckRing: -3},
			OnesRadial:        Radial{Subslot: 0, PadCorrection: -1.2, NeckRing: -1.5},
			OrientationOffset: 0, RefFormat: "D%03d", RefBase: 0},
		{ID: Minute, Name: "MINUTE", Side: board.SideBack, Boards: boards,
			Tens: 0, Ones: 12, Collector: 22, DiodeRing: -3,
			TensRadial:        Radial{Subslot: -1, NeckRing: -3},
			OnesRadial:        Radial{Subslot: 1, NeckRing: -3},
			OrientationOffset: 180, RefFormat: "D%03d", RefBase: 100},
	}
}

// quadStride is the ring pitch between the LED rows of the quad face.
const quadStride = 17

// quadHand lays one band of the quad face: LED row, neck, tens ring, ten
// ones rings, two feeders and the collector, from the outside in.
func quadHand(id ID, name string, side board.Side, boards []int, i int, pad float64) Hand {
	diode := i * quadStride
	tens := diode + 2
	return Hand{
		ID: id, Name: name, Side: side, Mirrored: side == board.SideBack, Boards: boards,
		Tens: tens, Ones: tens + 1, Feeders: []int{tens + 11, tens + 12}, Collector: tens + 13,
		DiodeRing:         float64(diode),
		TensRadial:        Radial{Subslot: 1, PadCorrection: pad - 1.5, NeckRing: float64(tens - 1)},
		OnesRadial:        Radial{Subslot: -1, PadCorrection: 1.5 - pad, NeckRing: float64(tens - 1)},
		OrientationOffset: 90 + 180*float64(side),
		RefBase:           100 * (i + 1),
	}
}

// Quad returns four hands stacked from the outside in, the outer two on the
// front and the inner two mirrored on the back.
func Quad(p *board.Panel) Set {
	boards := allBoards(p)
	return Set{
		quadHand(Hour, "HOUR", board.SideFront, boards, 0, 0.35),
		quadHand(Minute, "MINUTE", board.SideFront, boards, 1, 0.40),
		quadHand(Second, "SECOND", board.SideBack, boards, 2, 0.45),
		quadHand(Third, "THIRD", board.SideBack, boards, 3, 0.50),
	}
}
