package netlist

import (
	"fmt"
	"math"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/pkg/geometry"
)

// viaLayer buckets vias apart from copper endpoints; vias are checked
// against each other on every layer at once.
const viaLayer board.Layer = "via"

type spot struct {
	net string
	at  geometry.Point
}

type cell struct {
	layer board.Layer
	x, y  int64
}

// grid is a spatial hash of points with a cell size equal to the distance
// being checked, so only neighbouring cells need comparing.
type grid struct {
	size  float64
	cells map[cell][]spot
}

func newGrid(size float64) *grid {
	return &grid{size: size, cells: make(map[cell][]spot)}
}

func (g *grid) key(layer board.Layer, p geometry.Point) cell {
	return cell{
		layer: layer,
		x:     int64(math.Floor(float64(p.X) / g.size)),
		y:     int64(math.Floor(float64(p.Y) / g.size)),
	}
}

// near returns spots of other nets within the grid distance of p.
func (g *grid) near(layer board.Layer, s spot) []spot {
	c := g.key(layer, s.at)
	var out []spot
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, o := range g.cells[cell{layer, c.x + dx, c.y + dy}] {
				if o.net == s.net {
					continue
				}
				// Coincident points are shorts, reported separately.
				if d := o.at.Distance(s.at); d > 0 && d < g.size {
					out = append(out, o)
				}
			}
		}
	}
	return out
}

func (g *grid) add(layer board.Layer, s spot) {
	k := g.key(layer, s.at)
	for _, o := range g.cells[k] {
		if o == s {
			return
		}
	}
	g.cells[k] = append(g.cells[k], s)
}

// clearance reports copper endpoints of different nets closer than one
// trace width plus clearance, and vias closer than one via diameter plus
// clearance. Crossing traces on one layer are not detected.
func (in Inspector) clearance(byNet map[netKey]*ElectricalNet, keys []netKey) []Issue {
	ends := newGrid(in.Rules.TraceWidth + in.Rules.MinClearance)
	vias := newGrid(in.Rules.ViaDiameter + in.Rules.MinClearance)
	var issues []Issue
	report := func(k netKey, s spot, o spot, what string) {
		issues = append(issues, Issue{
			Kind:   IssueClearance,
			Net:    k.name,
			Board:  k.board,
			At:     s.at,
			Detail: fmt.Sprintf("%s %.1f from %s", what, s.at.Distance(o.at), o.net),
		})
	}

	for _, k := range keys {
		en := byNet[k]
		for _, t := range en.Traces {
			for _, p := range []geometry.Point{t.A, t.B} {
				s := spot{k.name, p}
				for _, o := range ends.near(t.Layer, s) {
					report(k, s, o, "endpoint")
				}
			}
		}
		for _, t := range en.Traces {
			ends.add(t.Layer, spot{k.name, t.A})
			ends.add(t.Layer, spot{k.name, t.B})
		}
		for _, v := range en.Vias {
			s := spot{k.name, v.At}
			for _, o := range vias.near(viaLayer, s) {
				report(k, s, o, "via")
			}
		}
		for _, v := range en.Vias {
			vias.add(viaLayer, spot{k.name, v.At})
		}
	}
	return issues
}
