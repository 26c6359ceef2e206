// Package netlist rebuilds the electrical nets of generated copper and
// reports geometry that does not form the intended circuit.
package netlist

import (
	"fmt"
	"sort"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/document"
	"pcb-ringroute/pkg/geometry"
)

// Node is a copper point on one layer. Trace endpoints meeting at the same
// node are connected; a via connects its node on every layer it spans.
type Node struct {
	Layer board.Layer    `json:"layer" yaml:"layer"`
	At    geometry.Point `json:"at" yaml:"at"`
}

func (n Node) String() string {
	return fmt.Sprintf("%s(%d,%d)", n.Layer, n.At.X, n.At.Y)
}

func nodeLess(a, b Node) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	if a.At.X != b.At.X {
		return a.At.X < b.At.X
	}
	return a.At.Y < b.At.Y
}

// ElectricalNet is the copper of one net on one board.
type ElectricalNet struct {
	Name   string           `json:"name"`
	Board  int              `json:"board"`
	Traces []document.Trace `json:"traces"`
	Vias   []document.Via   `json:"vias"`
}

// NewElectricalNet creates an empty net on a board.
func NewElectricalNet(name string, boardIndex int) *ElectricalNet {
	return &ElectricalNet{Name: name, Board: boardIndex}
}

// AddTrace adds a trace to the net.
func (n *ElectricalNet) AddTrace(t document.Trace) {
	n.Traces = append(n.Traces, t)
}

// AddVia adds a via to the net.
func (n *ElectricalNet) AddVia(v document.Via) {
	n.Vias = append(n.Vias, v)
}

// ElementCount returns the number of traces and vias in the net.
func (n *ElectricalNet) ElementCount() int {
	return len(n.Traces) + len(n.Vias)
}

// Nodes returns every node of the net in a stable order.
func (n *ElectricalNet) Nodes() []Node {
	seen := make(map[Node]bool)
	add := func(nd Node) {
		seen[nd] = true
	}
	for _, t := range n.Traces {
		add(Node{t.Layer, t.A})
		add(Node{t.Layer, t.B})
	}
	for _, v := range n.Vias {
		for _, l := range v.Layers {
			add(Node{l, v.At})
		}
	}
	nodes := make([]Node, 0, len(seen))
	for nd := range seen {
		nodes = append(nodes, nd)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodeLess(nodes[i], nodes[j]) })
	return nodes
}

// ConnectedComponents partitions the nodes of the net into groups joined by
// its traces and vias. A single group means the net is fully connected.
func (n *ElectricalNet) ConnectedComponents() [][]Node {
	nodes := n.Nodes()
	if len(nodes) <= 1 {
		return [][]Node{nodes}
	}

	adj := make(map[Node][]Node, len(nodes))
	link := func(a, b Node) {
		if a == b {
			return
		}
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for _, t := range n.Traces {
		link(Node{t.Layer, t.A}, Node{t.Layer, t.B})
	}
	for _, v := range n.Vias {
		for i := 1; i < len(v.Layers); i++ {
			link(Node{v.Layers[i-1], v.At}, Node{v.Layers[i], v.At})
		}
	}

	// BFS to find connected components
	visited := make(map[Node]bool, len(nodes))
	var components [][]Node
	for _, start := range nodes {
		if visited[start] {
			continue
		}
		var comp []Node
		queue := []Node{start}
		visited[start] = true
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			comp = append(comp, curr)
			for _, next := range adj[curr] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		components = append(components, comp)
	}
	return components
}
