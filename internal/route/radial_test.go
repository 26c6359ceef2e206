package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/rules"
	"pcb-ringroute/internal/slot"
)

func pairGeometry(panel *board.Panel) Geometry {
	return NewGeometry(panel, rules.Default(), Pair.OuterRadius).WithStackup(Pair.Stackup)
}

func TestRadialPadOnRadialLayer(t *testing.T) {
	geo := testGeometry(board.SinglePanel())
	hour := hand.Quad(geo.Panel)[0]
	frame := geo.Panel.Boards[0].Frame()
	p := NewPlan(geo)

	NewRadialConnector(geo).Connect(p, hour, slot.Ones, 7)

	traces, vias := p.Traces(), p.Vias()
	require.Len(t, traces, 1)
	require.Len(t, vias, 1)

	tr := traces[0]
	assert.Equal(t, "HOUR_O7", tr.Net)
	assert.Equal(t, board.LayerFrontCu, tr.Layer)
	assert.Equal(t, vias[0].At, tr.A)
	assert.Equal(t, board.ThroughVia, vias[0].Layers)
	assert.Equal(t, 20.0, vias[0].Diameter)

	crossing := (4*7 - 1) * slot.SubslotDegrees
	assert.InDelta(t, geo.Layout.Radius(hour.OnesRing(7)), frame.Radius(tr.A), 1)
	assert.InDelta(t, crossing, frame.AzimuthOf(tr.A), 0.05)
	assert.InDelta(t, geo.Layout.RadiusAt(hour.DiodeRing), frame.Radius(tr.B), 1)
	// A direct radial ends at the crossing azimuth; the pad correction is
	// only applied behind a neck.
	assert.NotZero(t, hour.OnesRadial.PadCorrection)
	assert.InDelta(t, crossing, frame.AzimuthOf(tr.B), 0.05)
}

func TestDirectRadialsStayRadial(t *testing.T) {
	geo := testGeometry(board.DualPanel())
	for _, h := range hand.Quad(geo.Panel)[:2] {
		p := NewPlan(geo)
		NewRadialConnector(geo).ConnectAll(p, h)
		for _, tr := range p.Traces() {
			if tr.Layer != board.LayerFrontCu {
				continue
			}
			owner := geo.Panel.Owner(tr.A)
			frame := owner.Frame()
			if frame.Radius(tr.B) < geo.Layout.RadiusAt(h.DiodeRing)-1 {
				continue
			}
			assert.InDelta(t, frame.AzimuthOf(tr.A), frame.AzimuthOf(tr.B), 0.1, "%s %v", tr.Net, tr.A)
		}
	}
}

func TestRadialPadOnRingLayer(t *testing.T) {
	geo := testGeometry(board.SinglePanel())
	second := hand.Quad(geo.Panel)[2]
	frame := geo.Panel.Boards[0].Frame()
	p := NewPlan(geo)

	NewRadialConnector(geo).Connect(p, second, slot.Tens, 15)

	traces, vias := p.Traces(), p.Vias()
	require.Len(t, traces, 2)
	require.Len(t, vias, 2)

	crossing, neck := vias[0].At, vias[1].At
	assert.Equal(t, crossing, traces[0].A)
	assert.Equal(t, neck, traces[0].B)
	assert.Equal(t, neck, traces[1].A)
	assert.Equal(t, board.LayerFrontCu, traces[0].Layer)
	assert.Equal(t, board.LayerBackCu, traces[1].Layer)
	for _, tr := range traces {
		assert.Equal(t, "SECOND_T1", tr.Net)
	}

	assert.InDelta(t, geo.Layout.Radius(second.TensRing()), frame.Radius(crossing), 1)
	assert.InDelta(t, geo.Layout.RadiusAt(second.TensRadial.NeckRing), frame.Radius(neck), 1)
	// Mirrored hands run counter-clockwise on the face board.
	assert.InDelta(t, 360-(4*15+1)*slot.SubslotDegrees, frame.AzimuthOf(crossing), 0.05)
	assert.InDelta(t, frame.AzimuthOf(crossing), frame.AzimuthOf(neck), 0.05)
	assert.InDelta(t, 360-(90+0.45), frame.AzimuthOf(traces[1].B), 0.05)
}

func TestPairRadials(t *testing.T) {
	geo := pairGeometry(board.SinglePanel())
	hands := hand.Pair(geo.Panel)
	frame := geo.Panel.Boards[0].Frame()
	c := NewRadialConnector(geo)

	// Hour ones: radial layer out to 1430, then the pad layer to the pad
	// 1.2 degrees behind.
	p := NewPlan(geo)
	c.Connect(p, hands[0], slot.Ones, 10)
	traces, vias := p.Traces(), p.Vias()
	require.Len(t, traces, 2)
	require.Len(t, vias, 2)
	assert.Equal(t, board.LayerBackCu, traces[0].Layer)
	assert.Equal(t, board.LayerFrontCu, traces[1].Layer)
	assert.InDelta(t, 1360.0, frame.Radius(vias[0].At), 1)
	assert.InDelta(t, 1430.0, frame.Radius(vias[1].At), 1)
	assert.InDelta(t, 60.0, frame.AzimuthOf(vias[1].At), 0.05)
	assert.InDelta(t, 1460.0, frame.Radius(traces[1].B), 1)
	assert.InDelta(t, 58.8, frame.AzimuthOf(traces[1].B), 0.05)

	// Hour tens: the neck sits on the diode radius and the pad 1.5 degrees
	// behind it.
	p = NewPlan(geo)
	c.Connect(p, hands[0], slot.Tens, 10)
	traces, vias = p.Traces(), p.Vias()
	require.Len(t, traces, 2)
	assert.InDelta(t, 1380.0, frame.Radius(vias[0].At), 1)
	assert.InDelta(t, 1460.0, frame.Radius(vias[1].At), 1)
	assert.InDelta(t, 63.0, frame.AzimuthOf(vias[1].At), 0.05)
	assert.InDelta(t, 61.5, frame.AzimuthOf(traces[1].B), 0.05)

	// Minute: one radial-layer segment straight out to the diode radius.
	for _, k := range []slot.DigitKind{slot.Ones, slot.Tens} {
		p = NewPlan(geo)
		c.Connect(p, hands[1], k, 10)
		traces, vias = p.Traces(), p.Vias()
		require.Len(t, traces, 1, "%v", k)
		require.Len(t, vias, 1, "%v", k)
		az := slot.Address{Slot: 10, Subslot: hands[1].Radial(k).Subslot}.Azimuth()
		assert.Equal(t, board.LayerBackCu, traces[0].Layer)
		assert.InDelta(t, az, frame.AzimuthOf(traces[0].A), 0.05)
		assert.InDelta(t, az, frame.AzimuthOf(traces[0].B), 0.05)
		assert.InDelta(t, 1460.0, frame.Radius(traces[0].B), 1)
	}
}

func TestRadialConnectAllCounts(t *testing.T) {
	geo := testGeometry(board.DualPanel())
	hands := hand.Quad(geo.Panel)
	c := NewRadialConnector(geo)

	for _, h := range hands {
		p := NewPlan(geo)
		c.ConnectAll(p, h)
		// One board reaches the pads directly, the other through the neck.
		assert.Len(t, p.Traces(), 3*2*slot.SlotsPerRing, h.Name)
		assert.Len(t, p.Vias(), 3*2*slot.SlotsPerRing, h.Name)
	}
}
