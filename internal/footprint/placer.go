// Package footprint positions the LED footprints of every hand.
package footprint

import (
	"go.uber.org/zap"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/document"
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/slot"
	"pcb-ringroute/pkg/geometry"
)

// Placement is where one LED goes on one board.
type Placement struct {
	Reference   string         `json:"reference" yaml:"reference"`
	Board       int            `json:"board" yaml:"board"`
	Position    geometry.Point `json:"position" yaml:"position"`
	Orientation float64        `json:"orientation" yaml:"orientation"`
	Side        board.Side     `json:"side" yaml:"side"`
}

// Placer computes and applies LED placements.
type Placer struct {
	Panel  *board.Panel
	Layout slot.Layout
	Logger *zap.Logger
}

// Placements returns the placement of LED s of h on every board it is drawn
// on. The LED sits on the diode ring at the slot azimuth, running the way
// the hand runs on that board, and is flipped where its pads are on back
// copper.
func (p Placer) Placements(h hand.Hand, s int) []Placement {
	var out []Placement
	az := slot.Address{Slot: s}.Azimuth()
	r := p.Layout.RadiusAt(h.DiodeRing)
	for _, bi := range h.Boards {
		b, ok := p.Panel.Board(bi)
		if !ok {
			continue
		}
		dir := h.Direction(b)
		side := board.SideFront
		if h.PadLayer(b) == board.LayerBackCu {
			side = board.SideBack
		}
		out = append(out, Placement{
			Reference:   h.Reference(b, s),
			Board:       b.Index,
			Position:    b.Frame().ToPoint(r, dir*az),
			Orientation: geometry.NormalizeDegrees(h.OrientationOffset - dir*az),
			Side:        side,
		})
	}
	return out
}

// Place applies the placements of LED s of h. Every reference is looked up
// before anything moves. Placing twice gives the same result.
func (p Placer) Place(doc document.Document, h hand.Hand, s int) (int, error) {
	places := p.Placements(h, s)
	handles := make([]document.FootprintHandle, len(places))
	for i, pl := range places {
		fh, err := doc.LookupFootprint(pl.Reference)
		if err != nil {
			return 0, &document.LookupFailure{Kind: "footprint", Name: pl.Reference, Err: err}
		}
		handles[i] = fh
	}
	for i, pl := range places {
		doc.SetFootprintSide(handles[i], pl.Side)
		doc.SetFootprintPosition(handles[i], pl.Position)
		doc.SetFootprintOrientation(handles[i], pl.Orientation)
	}
	return len(places), nil
}

// PlaceAll places every LED of every hand and refreshes the document once.
func (p Placer) PlaceAll(doc document.Document, hands hand.Set) (int, error) {
	total := 0
	for _, h := range hands {
		for s := 0; s < slot.SlotsPerRing; s++ {
			n, err := p.Place(doc, h, s)
			if err != nil {
				return total, err
			}
			total += n
		}
		if p.Logger != nil {
			p.Logger.Debug("placed hand", zap.String("hand", h.Name), zap.Int("boards", len(h.Boards)))
		}
	}
	doc.Refresh()
	return total, nil
}

// References returns every LED reference of the hands, for seeding a
// document.
func References(panel *board.Panel, hands hand.Set) []string {
	var refs []string
	for _, h := range hands {
		for _, bi := range h.Boards {
			b, ok := panel.Board(bi)
			if !ok {
				continue
			}
			for s := 0; s < slot.SlotsPerRing; s++ {
				refs = append(refs, h.Reference(b, s))
			}
		}
	}
	return refs
}
