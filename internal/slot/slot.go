// Package slot maps discrete LED addressing tuples to polar coordinates and
// net names.
package slot

import (
	"fmt"
)

const (
	// SlotsPerRing is the number of LED positions on a hand.
	SlotsPerRing = 60
	// SubslotsPerSlot subdivides each LED position for routing.
	SubslotsPerSlot = 4
	// SubslotsPerRing is the number of routing steps around a full circle.
	SubslotsPerRing = SlotsPerRing * SubslotsPerSlot
	// SubslotDegrees is the angular size of one subslot.
	SubslotDegrees = 360.0 / SubslotsPerRing
)

// Address is a point on the routing grid. Subslot is unbounded; callers
// conventionally use -1..2 around an LED slot, while ring drawers step a
// single running subslot index from slot 0.
type Address struct {
	Slot    int `json:"slot" yaml:"slot"`
	Subslot int `json:"subslot" yaml:"subslot"`
	Ring    int `json:"ring" yaml:"ring"`
}

// Step addresses running subslot index i on ring.
func Step(ring, i int) Address {
	return Address{Ring: ring, Subslot: i}
}

// Index is the running subslot index of the address.
func (a Address) Index() int {
	return a.Slot*SubslotsPerSlot + a.Subslot
}

// Azimuth is the clockwise angle in degrees. Angles are always derived from
// the address, never stored.
func (a Address) Azimuth() float64 {
	return SubslotDegrees * float64(a.Index())
}

// Valid reports whether the slot and ring are in range.
func (a Address) Valid() error {
	if a.Slot < 0 || a.Slot >= SlotsPerRing {
		return fmt.Errorf("slot %d out of range [0,%d)", a.Slot, SlotsPerRing)
	}
	if a.Ring < 0 {
		return fmt.Errorf("negative ring index %d", a.Ring)
	}
	return nil
}

func (a Address) String() string {
	return fmt.Sprintf("r%d@%d%+d", a.Ring, a.Slot, a.Subslot)
}

// Layout fixes the ring geometry: ring 0 sits at OuterRadius and every ring
// index moves one Spacing inward.
type Layout struct {
	OuterRadius float64
	Spacing     float64
}

// Radius returns the radius of a ring index.
func (l Layout) Radius(ring int) float64 {
	return l.RadiusAt(float64(ring))
}

// RadiusAt returns the radius of a fractional ring position. Negative
// positions lie outside ring 0.
func (l Layout) RadiusAt(pos float64) float64 {
	return l.OuterRadius - pos*l.Spacing
}

// ToPolar converts an address to (radius, azimuth).
func (l Layout) ToPolar(a Address) (radius, azimuth float64) {
	return l.Radius(a.Ring), a.Azimuth()
}
