package route

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/document"
	"pcb-ringroute/internal/document/mocks"
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/slot"
)

func TestQuadTapsValid(t *testing.T) {
	hands := hand.Quad(board.DualPanel())
	table := QuadTaps(hands)
	require.NoError(t, table.Validate(hands))
	assert.Len(t, table, len(hands)*(slot.Tens.Digits()+slot.Ones.Digits()))
}

func TestPairTapsValid(t *testing.T) {
	hands := hand.Pair(board.DualPanel())
	table := PairTaps(hands)
	require.NoError(t, table.Validate(hands))
	assert.Len(t, table, len(hands)*slot.Ones.Digits())
}

func TestTapTableValidate(t *testing.T) {
	hands := hand.Quad(board.SinglePanel())
	hour := hands[0]
	base := QuadTaps(hands[:1])
	feeder := func() TapTable {
		tt := append(TapTable(nil), base...)
		for i := range tt {
			if tt[i].Arc != nil {
				arc, jump := *tt[i].Arc, *tt[i].Jump
				tt[i].Arc, tt[i].Jump = &arc, &jump
			}
		}
		return tt
	}
	firstFeeder := func(tt TapTable) *TapEntry {
		for i := range tt {
			if tt[i].Arc != nil {
				return &tt[i]
			}
		}
		t.Fatal("no feeder entry")
		return nil
	}
	lastOnes := func(tt TapTable) *TapEntry {
		return &tt[len(tt)-1]
	}

	tests := []struct {
		name   string
		mutate func(TapTable) TapTable
	}{
		{"duplicate", func(tt TapTable) TapTable { return append(tt, tt[0]) }},
		{"unknown hand", func(tt TapTable) TapTable {
			tt[0].Hand = hand.Third
			return tt
		}},
		{"digit out of range", func(tt TapTable) TapTable {
			tt[0].Digit = 9
			return tt
		}},
		{"landing not an arc end", func(tt TapTable) TapTable {
			e := firstFeeder(tt)
			e.Arc.Start--
			return tt
		}},
		{"arc off the feeders", func(tt TapTable) TapTable {
			e := firstFeeder(tt)
			e.Arc.Ring = hour.CollectorRing() + 5
			e.To.Ring = e.Arc.Ring
			e.Jump.From.Ring = e.Arc.Ring
			return tt
		}},
		{"jump off the arc", func(tt TapTable) TapTable {
			e := firstFeeder(tt)
			e.Jump.From.Ring = hour.CollectorRing()
			return tt
		}},
		{"starts outside its arc", func(tt TapTable) TapTable {
			e := firstFeeder(tt)
			e.From.Subslot += 8
			e.To.Subslot += 8
			return tt
		}},
		{"not radial", func(tt TapTable) TapTable {
			lastOnes(tt).To.Subslot++
			return tt
		}},
		{"ring layer via", func(tt TapTable) TapTable {
			e := lastOnes(tt)
			e.Layer = TapOnRing
			e.NeedVia = true
			return tt
		}},
		{"ring layer crossing", func(tt TapTable) TapTable {
			lastOnes(tt).Layer = TapOnRing
			return tt
		}},
		{"ring layer arc", func(tt TapTable) TapTable {
			firstFeeder(tt).Layer = TapOnRing
			return tt
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(feeder()).Validate(hands[:1])
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTapTable))
		})
	}
}

func TestTapOnRingBetweenAdjacentRings(t *testing.T) {
	hands := hand.Pair(board.SinglePanel())
	minute := hands[1]
	entry := TapEntry{
		Hand:  hand.Minute,
		Kind:  slot.Ones,
		Digit: 9,
		From:  slot.Address{Slot: 27, Subslot: 2, Ring: minute.OnesRing(9)},
		To:    slot.Address{Slot: 27, Subslot: 2, Ring: minute.CollectorRing()},
		Layer: TapOnRing,
	}
	require.NoError(t, TapTable{entry}.Validate(hands))

	entry.Digit = 8
	entry.From.Ring = minute.OnesRing(8)
	assert.ErrorIs(t, TapTable{entry}.Validate(hands), ErrTapTable)
}

// TestPairTapsReplayTable replays the pair face's tap list entry by entry:
// hand, ones digit, slot, subslot offset and whether the tap adds a via.
func TestPairTapsReplayTable(t *testing.T) {
	geo := pairGeometry(board.SinglePanel())
	hands := hand.Pair(geo.Panel)
	frame := geo.Panel.Boards[0].Frame()

	want := []struct {
		hand    hand.ID
		digit   int
		slot    int
		sub     int
		via     bool
		onRings bool
	}{
		{hand.Hour, 0, 1, -1, true, false},
		{hand.Hour, 1, 0, 2, true, false},
		{hand.Hour, 2, 0, 0, true, false},
		{hand.Hour, 3, 0, -1, true, false},
		{hand.Hour, 4, 59, 2, true, false},
		{hand.Hour, 5, 59, -1, true, false},
		{hand.Hour, 6, 58, 2, true, false},
		{hand.Hour, 7, 58, -1, true, false},
		{hand.Hour, 8, 57, 2, true, false},
		{hand.Hour, 9, 57, 0, true, false},
		{hand.Minute, 0, 30, 1, false, false},
		{hand.Minute, 1, 30, 0, true, false},
		{hand.Minute, 2, 30, -1, true, false},
		{hand.Minute, 3, 29, 2, true, false},
		{hand.Minute, 4, 29, 0, true, false},
		{hand.Minute, 5, 29, -1, true, false},
		{hand.Minute, 6, 28, 2, true, false},
		{hand.Minute, 7, 28, 0, true, false},
		{hand.Minute, 8, 28, -1, true, false},
		{hand.Minute, 9, 27, 2, false, true},
	}

	table := PairTaps(hands)
	require.Len(t, table, len(want))
	for i, w := range want {
		e := table[i]
		assert.Equal(t, w.hand, e.Hand, "entry %d", i)
		assert.Equal(t, slot.Ones, e.Kind, "entry %d", i)
		assert.Equal(t, w.digit, e.Digit, "entry %d", i)

		p := NewPlan(geo)
		NewTapRouter(geo, hands, TapTable{e}).Apply(p)
		traces, vias := p.Traces(), p.Vias()
		require.Len(t, traces, 1, "entry %d", i)
		tr := traces[0]

		ring := 2 + 10*int(w.hand) + w.digit
		az := slot.SubslotDegrees * float64(4*w.slot+w.sub)
		if az < 0 {
			az += 360
		}
		assert.InDelta(t, 1400-20*float64(ring), frame.Radius(tr.A), 1, "entry %d", i)
		assert.InDelta(t, 960.0, frame.Radius(tr.B), 1, "entry %d", i)
		assert.InDelta(t, az, frame.AzimuthOf(tr.A), 0.05, "entry %d", i)
		assert.InDelta(t, az, frame.AzimuthOf(tr.B), 0.05, "entry %d", i)

		layer := board.LayerBackCu
		if w.onRings {
			layer = board.LayerFrontCu
		}
		assert.Equal(t, layer, tr.Layer, "entry %d", i)
		if w.via {
			require.Len(t, vias, 1, "entry %d", i)
			assert.Equal(t, tr.A, vias[0].At, "entry %d", i)
		} else {
			assert.Empty(t, vias, "entry %d", i)
		}
	}
}

func TestTapWithoutViaOnDualPanel(t *testing.T) {
	ctrl := gomock.NewController(t)
	doc := mocks.NewMockDocument(ctrl)

	geo := testGeometry(board.DualPanel())
	hands := hand.Quad(geo.Panel)[:1]
	hour := hands[0]
	table := TapTable{{
		Hand:  hand.Hour,
		Kind:  slot.Ones,
		Digit: 5,
		From:  slot.Address{Slot: 25, Subslot: -1, Ring: hour.OnesRing(5)},
		To:    slot.Address{Slot: 25, Subslot: -1, Ring: hour.CollectorRing()},
	}}
	require.NoError(t, table.Validate(hands))

	net := document.NetHandle{Code: 7, Name: "HOUR_O5"}
	doc.EXPECT().LookupNet("HOUR_O5").Return(net, nil).Times(1)
	doc.EXPECT().CreateTrace(net, gomock.Any(), gomock.Any(), board.LayerFrontCu, 6.0).Times(2)
	doc.EXPECT().CreateVia(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	p := NewPlan(geo)
	p.Begin(PhaseTaps)
	NewTapRouter(geo, hands, table).Apply(p)
	require.NoError(t, p.Apply(doc))
}

func TestFeederTapGeometry(t *testing.T) {
	geo := testGeometry(board.SinglePanel())
	hands := hand.Quad(geo.Panel)[:1]
	var entry TapEntry
	for _, e := range QuadTaps(hands) {
		if e.Kind == slot.Tens && e.Digit == 1 {
			entry = e
		}
	}
	require.NotNil(t, entry.Arc)

	p := NewPlan(geo)
	NewTapRouter(geo, hands, TapTable{entry}).Apply(p)

	traces, vias := p.Traces(), p.Vias()
	arcLen := entry.Arc.End - entry.Arc.Start
	require.Len(t, traces, 1+arcLen+1)
	require.Len(t, vias, 2)

	tap, jump := traces[0], traces[len(traces)-1]
	arc := traces[1 : 1+arcLen]
	assert.Equal(t, board.LayerFrontCu, tap.Layer)
	assert.Equal(t, board.LayerFrontCu, jump.Layer)
	assert.Equal(t, vias[0].At, tap.B, "landing via")
	assert.Equal(t, tap.B, arc[0].A)
	assert.Equal(t, arc[len(arc)-1].B, vias[1].At, "jump via")
	assert.Equal(t, vias[1].At, jump.A)
	for _, a := range arc {
		assert.Equal(t, board.LayerBackCu, a.Layer)
	}

	frame := geo.Panel.Boards[0].Frame()
	hour := hands[0]
	assert.InDelta(t, geo.Layout.Radius(hour.CollectorRing()), frame.Radius(jump.B), 1)
}
