// Package board provides board, panel and copper-layer definitions and the
// per-board polar coordinate frame.
package board

import (
	"fmt"
	"sort"

	"pcb-ringroute/pkg/geometry"
)

// Side is a physical side of a board.
type Side int

const (
	SideFront Side = iota
	SideBack
)

func (s Side) String() string {
	switch s {
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	default:
		return "unknown"
	}
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideFront {
		return SideBack
	}
	return SideFront
}

// ParseSide accepts "front" or "back".
func ParseSide(s string) (Side, error) {
	switch s {
	case "front":
		return SideFront, nil
	case "back":
		return SideBack, nil
	}
	return SideFront, fmt.Errorf("unknown side %q", s)
}

// Layer is a copper layer name as the board document knows it.
type Layer string

const (
	LayerFrontCu Layer = "F.Cu"
	LayerBackCu  Layer = "B.Cu"
)

// Stackup assigns rings and radials to the two copper layers. Layers are
// named in each board's own frame.
type Stackup int

const (
	// RingsBack draws rings on the copper opposite the board's own side.
	RingsBack Stackup = iota
	// RingsFront draws rings on the board's own side and radials behind.
	RingsFront
)

func (s Stackup) String() string {
	if s == RingsFront {
		return "rings-front"
	}
	return "rings-back"
}

// ParseStackup accepts "rings-back" or "rings-front".
func ParseStackup(s string) (Stackup, error) {
	switch s {
	case "rings-back":
		return RingsBack, nil
	case "rings-front":
		return RingsFront, nil
	}
	return RingsBack, fmt.Errorf("unknown stackup %q", s)
}

// LayerPair is the two copper layers a via joins.
type LayerPair [2]Layer

// ThroughVia is the only via kind on a two-layer board.
var ThroughVia = LayerPair{LayerFrontCu, LayerBackCu}

// Board is one physical board of a panel. Immutable for a run.
type Board struct {
	Index  int            `json:"index"`
	Name   string         `json:"name"`
	Center geometry.Point `json:"center"`
	// Side is the board's default side. A board whose default side is back
	// is the mirror image of a front board.
	Side Side `json:"side"`
	// RefOffset is added to footprint reference numbers on this board.
	RefOffset int `json:"ref_offset"`
}

// Copper returns the copper layer that carries parts mounted on side s.
func (b Board) Copper(s Side) Layer {
	if s == b.Side {
		return LayerFrontCu
	}
	return LayerBackCu
}

// RingLayer is where rings and arcs are drawn on this board.
func (b Board) RingLayer(st Stackup) Layer {
	if st == RingsFront {
		return b.Copper(b.Side)
	}
	return b.Copper(b.Side.Opposite())
}

// RadialLayer is where radial traces cross the rings on this board.
func (b Board) RadialLayer(st Stackup) Layer {
	if st == RingsFront {
		return b.Copper(b.Side.Opposite())
	}
	return b.Copper(b.Side)
}

// Frame returns the polar frame centred on this board.
func (b Board) Frame() Frame {
	return Frame{Center: b.Center.ToFloat()}
}

// Panel is a set of boards generated together, e.g. side by side on one
// fabrication panel.
type Panel struct {
	Name   string  `json:"name"`
	Boards []Board `json:"boards"`
}

// Board returns the board with the given index.
func (p *Panel) Board(index int) (Board, bool) {
	for _, b := range p.Boards {
		if b.Index == index {
			return b, true
		}
	}
	return Board{}, false
}

// Owner returns the board whose centre is nearest to pt. Each endpoint of a
// generated trace is measured in the frame of its owner.
func (p *Panel) Owner(pt geometry.Point) Board {
	best := p.Boards[0]
	bestDist := best.Center.Distance(pt)
	for _, b := range p.Boards[1:] {
		if d := b.Center.Distance(pt); d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

// Validate checks the panel has uniquely indexed boards.
func (p *Panel) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("panel name is required")
	}
	if len(p.Boards) == 0 {
		return fmt.Errorf("panel %s has no boards", p.Name)
	}
	seen := make(map[int]bool)
	for _, b := range p.Boards {
		if seen[b.Index] {
			return fmt.Errorf("panel %s: duplicate board index %d", p.Name, b.Index)
		}
		seen[b.Index] = true
	}
	return nil
}

// Registry of known panels
var registry = make(map[string]*Panel)

// Register adds a panel to the registry.
func Register(p *Panel) {
	registry[p.Name] = p
}

// GetPanel returns a panel by name.
func GetPanel(name string) (*Panel, bool) {
	p, ok := registry[name]
	return p, ok
}

// ListPanels returns all registered panel names, sorted.
func ListPanels() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(SinglePanel())
	Register(DualPanel())
}
