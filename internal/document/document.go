// Package document defines the boundary between the routing engine and the
// host board document, and provides an in-memory host.
package document

import (
	"errors"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/pkg/geometry"
)

//go:generate mockgen -source=document.go -destination=mocks/mocks.go -package=mocks Document

// ErrNotFound is returned when a net or footprint does not exist in the
// document. Nets and footprints must be defined before generation.
var ErrNotFound = errors.New("not found")

// NetHandle identifies a net in the host document.
type NetHandle struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// TraceHandle identifies one trace in the host document.
type TraceHandle string

// ViaHandle identifies one via in the host document.
type ViaHandle string

// FootprintHandle identifies one footprint in the host document.
type FootprintHandle string

// Trace is a straight copper segment.
type Trace struct {
	Net   string         `json:"net"`
	A     geometry.Point `json:"a"`
	B     geometry.Point `json:"b"`
	Layer board.Layer    `json:"layer"`
	Width float64        `json:"width"`
}

// Via joins two copper layers at one point.
type Via struct {
	Net      string          `json:"net"`
	At       geometry.Point  `json:"at"`
	Layers   board.LayerPair `json:"layers"`
	Drill    float64         `json:"drill"`
	Diameter float64         `json:"diameter"`
}

// TraceRecord is a trace as enumerated from the document.
type TraceRecord struct {
	Handle TraceHandle `json:"handle"`
	Trace
}

// ViaRecord is a via as enumerated from the document.
type ViaRecord struct {
	Handle ViaHandle `json:"handle"`
	Via
}

// Footprint is the placement state of one part.
type Footprint struct {
	Reference   string         `json:"reference"`
	Position    geometry.Point `json:"position"`
	Orientation float64        `json:"orientation"`
	Side        board.Side     `json:"side"`
}

// Document is what the engine requires of the host board document.
// Create calls are pure appends; RemoveTrace and RemoveVia are only used by
// the region eraser.
type Document interface {
	LookupNet(name string) (NetHandle, error)
	CreateTrace(net NetHandle, a, b geometry.Point, layer board.Layer, width float64)
	CreateVia(net NetHandle, at geometry.Point, layers board.LayerPair, drill, diameter float64)
	Traces(net NetHandle) []TraceRecord
	RemoveTrace(h TraceHandle)
	Vias(net NetHandle) []ViaRecord
	RemoveVia(h ViaHandle)

	LookupFootprint(reference string) (FootprintHandle, error)
	SetFootprintPosition(h FootprintHandle, p geometry.Point)
	SetFootprintOrientation(h FootprintHandle, degrees float64)
	SetFootprintSide(h FootprintHandle, side board.Side)

	// Refresh asks an interactive host to redraw. It has no effect on
	// geometry.
	Refresh()
}
