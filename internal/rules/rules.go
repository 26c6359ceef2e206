// Package rules derives routing pitch from manufacturing design rules.
package rules

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned by Validate for rules that cannot be manufactured.
var ErrInvalid = errors.New("invalid design rules")

// DesignRules are the fab constraints the ring layout is built from.
// All lengths share one unit system (mils by default).
type DesignRules struct {
	TraceWidth     float64 `toml:"trace_width" json:"trace_width"`
	ViaDrill       float64 `toml:"via_drill" json:"via_drill"`
	ViaAnnularRing float64 `toml:"via_annular_ring" json:"via_annular_ring"`
	MinClearance   float64 `toml:"min_clearance" json:"min_clearance"`
}

// Default returns the rules the clock boards are fabricated with.
func Default() DesignRules {
	return DesignRules{
		TraceWidth:     6,
		ViaDrill:       10,
		ViaAnnularRing: 5,
		MinClearance:   7,
	}
}

// Validate rejects non-positive dimensions.
func (r DesignRules) Validate() error {
	switch {
	case r.TraceWidth <= 0:
		return fmt.Errorf("%w: trace width %v", ErrInvalid, r.TraceWidth)
	case r.ViaDrill <= 0:
		return fmt.Errorf("%w: via drill %v", ErrInvalid, r.ViaDrill)
	case r.ViaAnnularRing <= 0:
		return fmt.Errorf("%w: via annular ring %v", ErrInvalid, r.ViaAnnularRing)
	case r.MinClearance < 0:
		return fmt.Errorf("%w: clearance %v", ErrInvalid, r.MinClearance)
	}
	return nil
}

// Derived holds the values computed once from DesignRules.
type Derived struct {
	DesignRules
	ViaDiameter float64
	// RingSpacing is the radial pitch between adjacent routing rings. No two
	// managed rings may sit closer than this.
	RingSpacing float64
}

// Derive computes the via diameter and ring spacing.
func Derive(r DesignRules) Derived {
	via := r.ViaDrill + 2*r.ViaAnnularRing
	return Derived{
		DesignRules: r,
		ViaDiameter: via,
		RingSpacing: math.Ceil(via/2) + r.MinClearance + r.TraceWidth/2,
	}
}

// String formats the derived values for logs and CLI output.
func (d Derived) String() string {
	return fmt.Sprintf("trace=%g via=%g/%g clearance=%g spacing=%g",
		d.TraceWidth, d.ViaDrill, d.ViaDiameter, d.MinClearance, d.RingSpacing)
}
