package route

import (
	"errors"
	"fmt"

	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/slot"
)

// ErrTapTable is returned for a tap table that cannot be drawn.
var ErrTapTable = errors.New("invalid tap table")

// TapLayer is the copper a tap's first segment runs on.
type TapLayer int

const (
	// TapOnRadial crosses the rings on the radial layer.
	TapOnRadial TapLayer = iota
	// TapOnRing stays on the ring layer. It can only join rings with no
	// managed ring between them.
	TapOnRing
)

func (l TapLayer) String() string {
	if l == TapOnRing {
		return "ring"
	}
	return "radial"
}

// MarshalText implements encoding.TextMarshaler.
func (l TapLayer) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *TapLayer) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "radial":
		*l = TapOnRadial
	case "ring":
		*l = TapOnRing
	default:
		return fmt.Errorf("unknown tap layer %q", b)
	}
	return nil
}

// ArcStep is a partial arc on a feeder ring. Start and End are running
// subslot indices, drawn through both ends so a tap can land on either.
type ArcStep struct {
	Ring  int `yaml:"ring"`
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// JumpStep is a radial hop from a feeder arc end to the collector ring.
type JumpStep struct {
	From    slot.Address `yaml:"from"`
	To      slot.Address `yaml:"to"`
	NeedVia bool         `yaml:"need_via"`
}

// TapEntry routes one net from its ring or arc inward to the collector ring.
// Rings are absolute ring indices.
type TapEntry struct {
	Hand  hand.ID        `yaml:"hand"`
	Kind  slot.DigitKind `yaml:"kind"`
	Digit int            `yaml:"digit"`
	From  slot.Address   `yaml:"from"`
	To    slot.Address   `yaml:"to"`
	// NeedVia is false when From already carries the radial's crossing via,
	// and always false on the ring layer.
	NeedVia bool      `yaml:"need_via"`
	Layer   TapLayer  `yaml:"layer"`
	Arc     *ArcStep  `yaml:"arc,omitempty"`
	Jump    *JumpStep `yaml:"jump,omitempty"`
}

func (e TapEntry) String() string {
	return fmt.Sprintf("%v %s%d", e.Hand, e.Kind.Letter(), e.Digit)
}

// TapTable is the ordered list of taps drawn after every other phase.
type TapTable []TapEntry

type tapKey struct {
	hand  hand.ID
	kind  slot.DigitKind
	digit int
}

// Validate checks the table against the hands it is drawn for: one entry
// per net, entries start on their own net's copper, every arc is entered
// and left at one of its ends, and ring-layer taps cross no other ring.
func (t TapTable) Validate(hands hand.Set) error {
	seen := make(map[tapKey]bool)
	for _, e := range t {
		h, ok := hands.Lookup(e.Hand)
		if !ok {
			return fmt.Errorf("%w: %v: unknown hand", ErrTapTable, e)
		}
		if e.Digit < 0 || e.Digit >= e.Kind.Digits() {
			return fmt.Errorf("%w: %v: digit out of range", ErrTapTable, e)
		}
		k := tapKey{e.Hand, e.Kind, e.Digit}
		if seen[k] {
			return fmt.Errorf("%w: %v: duplicate entry", ErrTapTable, e)
		}
		seen[k] = true

		if err := e.validateStart(h); err != nil {
			return fmt.Errorf("%w: %v: %v", ErrTapTable, e, err)
		}
		if err := e.validatePath(h); err != nil {
			return fmt.Errorf("%w: %v: %v", ErrTapTable, e, err)
		}
		if err := e.validateLayer(hands); err != nil {
			return fmt.Errorf("%w: %v: %v", ErrTapTable, e, err)
		}
	}
	return nil
}

func (e TapEntry) validateStart(h hand.Hand) error {
	if e.Kind == slot.Ones {
		if e.From.Ring != h.OnesRing(e.Digit) {
			return fmt.Errorf("starts on ring %d, not its ones ring %d", e.From.Ring, h.OnesRing(e.Digit))
		}
		return nil
	}
	if e.From.Ring != h.TensRing() {
		return fmt.Errorf("starts on ring %d, not the tens ring %d", e.From.Ring, h.TensRing())
	}
	start, end := TensArc(e.Digit, h.TensRadial.Subslot)
	if i := e.From.Index(); i < start || i > end {
		return fmt.Errorf("starts at subslot %d outside its arc [%d,%d]", i, start, end)
	}
	return nil
}

func (e TapEntry) validatePath(h hand.Hand) error {
	if e.From.Index() != e.To.Index() {
		return errors.New("tap is not radial")
	}
	if e.Arc == nil {
		if e.Jump != nil {
			return errors.New("jump without arc")
		}
		if e.To.Ring != h.CollectorRing() {
			return fmt.Errorf("ends on ring %d, not the collector", e.To.Ring)
		}
		return nil
	}
	a := e.Arc
	if a.End <= a.Start {
		return fmt.Errorf("empty arc [%d,%d)", a.Start, a.End)
	}
	if !h.IsFeeder(a.Ring) {
		return fmt.Errorf("arc ring %d is not a feeder", a.Ring)
	}
	if a.Ring != e.To.Ring {
		return fmt.Errorf("lands on ring %d, arc is on %d", e.To.Ring, a.Ring)
	}
	if i := e.To.Index(); i != a.Start && i != a.End {
		return fmt.Errorf("lands at subslot %d, not an end of [%d,%d]", i, a.Start, a.End)
	}
	if e.Jump == nil {
		return errors.New("arc without jump to the collector")
	}
	j := e.Jump
	if j.From.Ring != a.Ring {
		return fmt.Errorf("jump leaves ring %d, arc is on %d", j.From.Ring, a.Ring)
	}
	if i := j.From.Index(); i != a.Start && i != a.End {
		return fmt.Errorf("jump leaves at subslot %d, not an end of [%d,%d]", i, a.Start, a.End)
	}
	if j.To.Ring != h.CollectorRing() || j.To.Index() != j.From.Index() {
		return errors.New("jump must run radially to the collector")
	}
	return nil
}

func (e TapEntry) validateLayer(hands hand.Set) error {
	if e.Layer != TapOnRing {
		return nil
	}
	if e.NeedVia {
		return errors.New("via requested on the ring layer")
	}
	if e.Arc != nil {
		return errors.New("arc taps must cross on the radial layer")
	}
	lo, hi := e.From.Ring, e.To.Ring
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if owner, ok := hands.Owner(r); ok {
			return fmt.Errorf("crosses ring %d of %s on the ring layer", r, owner.Name)
		}
	}
	return nil
}

// TapRouter draws the tap table.
type TapRouter struct {
	geo   Geometry
	hands hand.Set
	table TapTable
}

// NewTapRouter returns a router for a table already validated against hands.
func NewTapRouter(geo Geometry, hands hand.Set, table TapTable) TapRouter {
	return TapRouter{geo: geo, hands: hands, table: table}
}

// Apply draws every entry in table order on every board of its hand.
func (r TapRouter) Apply(p *Plan) {
	for _, e := range r.table {
		h, ok := r.hands.Lookup(e.Hand)
		if !ok {
			continue
		}
		r.draw(p, h, e)
	}
}

func (r TapRouter) draw(p *Plan, h hand.Hand, e TapEntry) {
	net := h.Net(e.Kind, e.Digit)

	r.geo.forEachBoard(h, func(v view) {
		from := r.geo.point(v, e.From)
		to := r.geo.point(v, e.To)
		layer := v.radialLayer
		if e.Layer == TapOnRing {
			layer = v.ringLayer
		}
		if e.NeedVia {
			p.via(net, from)
		}
		p.trace(net, from, to, layer)

		if e.Arc == nil {
			return
		}
		p.via(net, to)
		pts := RingPoints(v.frame, r.geo.Layout, v.dir, e.Arc.Ring, e.Arc.Start, e.Arc.End)
		for i := 1; i < len(pts); i++ {
			p.trace(net, pts[i-1], pts[i], v.ringLayer)
		}

		jf := r.geo.point(v, e.Jump.From)
		jt := r.geo.point(v, e.Jump.To)
		if e.Jump.NeedVia {
			p.via(net, jf)
		}
		p.trace(net, jf, jt, v.radialLayer)
	})
}
