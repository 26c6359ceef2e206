package netlist

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/document"
	"pcb-ringroute/internal/rules"
	"pcb-ringroute/pkg/geometry"
)

// IssueKind classifies an inspection finding.
type IssueKind string

const (
	IssueDuplicateTrace IssueKind = "duplicate-trace"
	IssueDuplicateVia   IssueKind = "duplicate-via"
	IssueZeroLength     IssueKind = "zero-length"
	IssueDisconnected   IssueKind = "disconnected"
	IssueShort          IssueKind = "short"
	IssueClearance      IssueKind = "clearance"
)

// Issue is geometry that is not the intended circuit. Generation never
// raises these; they are found after the fact.
type Issue struct {
	Kind   IssueKind      `json:"kind" yaml:"kind"`
	Net    string         `json:"net" yaml:"net"`
	Board  int            `json:"board" yaml:"board"`
	At     geometry.Point `json:"at" yaml:"at"`
	Detail string         `json:"detail,omitempty" yaml:"detail,omitempty"`
}

func (i *Issue) Error() string {
	msg := fmt.Sprintf("%s: net %s on board %d at (%d,%d)", i.Kind, i.Net, i.Board, i.At.X, i.At.Y)
	if i.Detail != "" {
		msg += ": " + i.Detail
	}
	return msg
}

// NetSummary describes one net on one board.
type NetSummary struct {
	Net        string  `json:"net" yaml:"net"`
	Board      int     `json:"board" yaml:"board"`
	Traces     int     `json:"traces" yaml:"traces"`
	Vias       int     `json:"vias" yaml:"vias"`
	Components int     `json:"components" yaml:"components"`
	MinRadius  float64 `json:"min_radius" yaml:"min_radius"`
	MaxRadius  float64 `json:"max_radius" yaml:"max_radius"`
}

// Report is the result of an inspection.
type Report struct {
	Nets   []NetSummary `json:"nets" yaml:"nets"`
	Issues []Issue      `json:"issues" yaml:"issues"`
}

// OK reports whether no issue was found.
func (r *Report) OK() bool { return len(r.Issues) == 0 }

// Err joins every issue into one error, nil when OK.
func (r *Report) Err() error {
	errs := make([]error, len(r.Issues))
	for i := range r.Issues {
		errs[i] = &r.Issues[i]
	}
	return errors.Join(errs...)
}

// Count returns the number of issues of a kind.
func (r *Report) Count(kind IssueKind) int {
	n := 0
	for _, is := range r.Issues {
		if is.Kind == kind {
			n++
		}
	}
	return n
}

// Source is a document that can enumerate all of its copper.
type Source interface {
	AllTraces() []document.Trace
	AllVias() []document.Via
}

// Inspector checks generated copper against the design rules.
type Inspector struct {
	Panel *board.Panel
	Rules rules.Derived
}

type netKey struct {
	name  string
	board int
}

// Inspect rebuilds the nets of src and checks them. Only the named nets are
// considered; nil means every net.
func (in Inspector) Inspect(src Source, nets []string) *Report {
	keep := func(string) bool { return true }
	if nets != nil {
		want := make(map[string]bool, len(nets))
		for _, n := range nets {
			want[n] = true
		}
		keep = func(n string) bool { return want[n] }
	}

	byNet := make(map[netKey]*ElectricalNet)
	get := func(name string, at geometry.Point) *ElectricalNet {
		k := netKey{name, in.Panel.Owner(at).Index}
		en, ok := byNet[k]
		if !ok {
			en = NewElectricalNet(k.name, k.board)
			byNet[k] = en
		}
		return en
	}
	for _, t := range src.AllTraces() {
		if keep(t.Net) {
			get(t.Net, t.A).AddTrace(t)
		}
	}
	for _, v := range src.AllVias() {
		if keep(v.Net) {
			get(v.Net, v.At).AddVia(v)
		}
	}

	keys := make([]netKey, 0, len(byNet))
	for k := range byNet {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].board != keys[j].board {
			return keys[i].board < keys[j].board
		}
		return keys[i].name < keys[j].name
	})

	rep := &Report{}
	for _, k := range keys {
		en := byNet[k]
		rep.Issues = append(rep.Issues, in.duplicates(en)...)
		rep.Nets = append(rep.Nets, in.summarize(en, &rep.Issues))
	}
	rep.Issues = append(rep.Issues, in.shorts(byNet, keys)...)
	rep.Issues = append(rep.Issues, in.clearance(byNet, keys)...)
	return rep
}

func (in Inspector) summarize(en *ElectricalNet, issues *[]Issue) NetSummary {
	frame := boardFrame(in.Panel, en.Board)
	comps := en.ConnectedComponents()
	s := NetSummary{
		Net:        en.Name,
		Board:      en.Board,
		Traces:     len(en.Traces),
		Vias:       len(en.Vias),
		Components: len(comps),
	}
	if len(comps) > 1 {
		*issues = append(*issues, Issue{
			Kind:   IssueDisconnected,
			Net:    en.Name,
			Board:  en.Board,
			At:     comps[1][0].At,
			Detail: fmt.Sprintf("%d separate pieces", len(comps)),
		})
	}

	nodes := en.Nodes()
	radii := make([]float64, len(nodes))
	for i, nd := range nodes {
		radii[i] = frame.Radius(nd.At)
	}
	if len(radii) > 0 {
		s.MinRadius = floats.Min(radii)
		s.MaxRadius = floats.Max(radii)
	}
	return s
}

type segKey struct {
	layer board.Layer
	a, b  geometry.Point
}

func (in Inspector) duplicates(en *ElectricalNet) []Issue {
	var issues []Issue
	segs := make(map[segKey]bool)
	for _, t := range en.Traces {
		if t.A == t.B {
			issues = append(issues, Issue{Kind: IssueZeroLength, Net: en.Name, Board: en.Board, At: t.A})
			continue
		}
		a, b := t.A, t.B
		if nodeLess(Node{t.Layer, b}, Node{t.Layer, a}) {
			a, b = b, a
		}
		k := segKey{t.Layer, a, b}
		if segs[k] {
			issues = append(issues, Issue{Kind: IssueDuplicateTrace, Net: en.Name, Board: en.Board, At: a})
		}
		segs[k] = true
	}
	vias := make(map[geometry.Point]bool)
	for _, v := range en.Vias {
		if vias[v.At] {
			issues = append(issues, Issue{Kind: IssueDuplicateVia, Net: en.Name, Board: en.Board, At: v.At})
		}
		vias[v.At] = true
	}
	return issues
}

// shorts finds nodes shared by two different nets.
func (in Inspector) shorts(byNet map[netKey]*ElectricalNet, keys []netKey) []Issue {
	owner := make(map[Node]string)
	var issues []Issue
	for _, k := range keys {
		for _, nd := range byNet[k].Nodes() {
			if other, ok := owner[nd]; ok && other != k.name {
				issues = append(issues, Issue{
					Kind:   IssueShort,
					Net:    k.name,
					Board:  k.board,
					At:     nd.At,
					Detail: fmt.Sprintf("touches %s on %s", other, nd.Layer),
				})
				continue
			}
			owner[nd] = k.name
		}
	}
	return issues
}

func boardFrame(p *board.Panel, index int) board.Frame {
	if b, ok := p.Board(index); ok {
		return b.Frame()
	}
	return board.Frame{}
}
