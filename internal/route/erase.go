package route

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/document"
	"pcb-ringroute/pkg/geometry"
)

// ErasePolicy decides what happens to a trace with one endpoint on each side
// of the erase radius.
type ErasePolicy int

const (
	// ErasePolicyBoth removes a trace only if both endpoints lie outside.
	// Mixed traces are kept.
	ErasePolicyBoth ErasePolicy = iota
	// ErasePolicyEither removes a trace if any endpoint lies outside.
	ErasePolicyEither
)

func (p ErasePolicy) String() string {
	if p == ErasePolicyEither {
		return "either"
	}
	return "both"
}

// ParseErasePolicy parses "both" or "either".
func ParseErasePolicy(s string) (ErasePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return ErasePolicyBoth, nil
	case "either":
		return ErasePolicyEither, nil
	}
	return 0, fmt.Errorf("unknown erase policy %q", s)
}

// EraseResult counts what an erase removed and kept.
type EraseResult struct {
	TracesRemoved int `yaml:"traces_removed"`
	ViasRemoved   int `yaml:"vias_removed"`
	TracesKept    int `yaml:"traces_kept"`
	ViasKept      int `yaml:"vias_kept"`
}

// Eraser clears previously generated copper of the engine's nets outside a
// radius. Radii are measured from the centre of the board owning each point,
// so one pass clears every board of a panel.
type Eraser struct {
	Panel  *board.Panel
	Policy ErasePolicy
	Logger *zap.Logger
}

// Erase removes traces and vias of nets lying strictly outside limit.
// Every net is looked up before anything is removed; an unknown net aborts
// with a LookupFailure and leaves the document untouched. Erasing twice is
// the same as erasing once.
func (e Eraser) Erase(doc document.Document, nets []string, limit float64) (EraseResult, error) {
	handles := make([]document.NetHandle, 0, len(nets))
	for _, n := range nets {
		h, err := doc.LookupNet(n)
		if err != nil {
			return EraseResult{}, &document.LookupFailure{Kind: "net", Name: n, Err: err}
		}
		handles = append(handles, h)
	}

	var res EraseResult
	for _, h := range handles {
		for _, t := range doc.Traces(h) {
			if e.removes(t.A, t.B, limit) {
				doc.RemoveTrace(t.Handle)
				res.TracesRemoved++
			} else {
				res.TracesKept++
			}
		}
		for _, v := range doc.Vias(h) {
			if e.radius(v.At) > limit {
				doc.RemoveVia(v.Handle)
				res.ViasRemoved++
			} else {
				res.ViasKept++
			}
		}
	}

	if e.Logger != nil {
		e.Logger.Debug("erased region",
			zap.Float64("radius", limit),
			zap.Stringer("policy", e.Policy),
			zap.Int("traces_removed", res.TracesRemoved),
			zap.Int("vias_removed", res.ViasRemoved),
			zap.Int("traces_kept", res.TracesKept))
	}
	return res, nil
}

func (e Eraser) radius(p geometry.Point) float64 {
	return e.Panel.Owner(p).Frame().Radius(p)
}

func (e Eraser) removes(a, b geometry.Point, limit float64) bool {
	outA, outB := e.radius(a) > limit, e.radius(b) > limit
	if e.Policy == ErasePolicyEither {
		return outA || outB
	}
	return outA && outB
}
