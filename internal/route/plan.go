package route

import (
	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/document"
	"pcb-ringroute/pkg/geometry"
)

// Phase names a generation step. Phases are applied in declaration order.
type Phase string

const (
	PhaseRings   Phase = "rings"
	PhaseArcs    Phase = "arcs"
	PhaseRadials Phase = "radials"
	PhaseTaps    Phase = "taps"
)

// Phases lists the phases in the order they are drawn.
var Phases = []Phase{PhaseRings, PhaseArcs, PhaseRadials, PhaseTaps}

// ItemKind distinguishes plan items.
type ItemKind int

const (
	ItemTrace ItemKind = iota
	ItemVia
)

// Item is one append to the board document.
type Item struct {
	Phase Phase
	Kind  ItemKind
	Trace document.Trace
	Via   document.Via
}

// Plan is the ordered geometry of a run. Building a plan needs no document;
// only Apply does.
type Plan struct {
	Items []Item

	geo   Geometry
	phase Phase
}

// NewPlan starts an empty plan drawing with geo's design rules.
func NewPlan(geo Geometry) *Plan {
	return &Plan{geo: geo}
}

// Begin tags subsequent items with phase.
func (p *Plan) Begin(phase Phase) {
	p.phase = phase
}

func (p *Plan) trace(net string, a, b geometry.Point, layer board.Layer) {
	p.Items = append(p.Items, Item{
		Phase: p.phase,
		Kind:  ItemTrace,
		Trace: document.Trace{Net: net, A: a, B: b, Layer: layer, Width: p.geo.Rules.TraceWidth},
	})
}

func (p *Plan) via(net string, at geometry.Point) {
	p.Items = append(p.Items, Item{
		Phase: p.phase,
		Kind:  ItemVia,
		Via: document.Via{
			Net:      net,
			At:       at,
			Layers:   board.ThroughVia,
			Drill:    p.geo.Rules.ViaDrill,
			Diameter: p.geo.Rules.ViaDiameter,
		},
	})
}

// Traces returns the planned traces in order.
func (p *Plan) Traces() []document.Trace {
	var out []document.Trace
	for _, it := range p.Items {
		if it.Kind == ItemTrace {
			out = append(out, it.Trace)
		}
	}
	return out
}

// Vias returns the planned vias in order.
func (p *Plan) Vias() []document.Via {
	var out []document.Via
	for _, it := range p.Items {
		if it.Kind == ItemVia {
			out = append(out, it.Via)
		}
	}
	return out
}

// Nets returns the distinct nets of the plan in first-use order.
func (p *Plan) Nets() []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range p.Items {
		n := it.Trace.Net
		if it.Kind == ItemVia {
			n = it.Via.Net
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// Count is the number of traces and vias of one phase.
type Count struct {
	Traces int `yaml:"traces"`
	Vias   int `yaml:"vias"`
}

// Counts tallies the plan per phase.
func (p *Plan) Counts() map[Phase]Count {
	out := make(map[Phase]Count)
	for _, it := range p.Items {
		c := out[it.Phase]
		if it.Kind == ItemTrace {
			c.Traces++
		} else {
			c.Vias++
		}
		out[it.Phase] = c
	}
	return out
}

// Apply appends the plan to doc in order. Every net is resolved before the
// first write, so a missing net leaves the document untouched.
func (p *Plan) Apply(doc document.Document) error {
	handles := make(map[string]document.NetHandle)
	for _, n := range p.Nets() {
		h, err := doc.LookupNet(n)
		if err != nil {
			return &document.LookupFailure{Kind: "net", Name: n, Err: err}
		}
		handles[n] = h
	}

	for _, it := range p.Items {
		switch it.Kind {
		case ItemTrace:
			t := it.Trace
			doc.CreateTrace(handles[t.Net], t.A, t.B, t.Layer, t.Width)
		case ItemVia:
			v := it.Via
			doc.CreateVia(handles[v.Net], v.At, v.Layers, v.Drill, v.Diameter)
		}
	}
	return nil
}
