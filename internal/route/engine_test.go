package route

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/document"
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/metrics"
	"pcb-ringroute/internal/rules"
	"pcb-ringroute/internal/slot"
	"pcb-ringroute/pkg/geometry"
)

func newTestEngine(t *testing.T, panel *board.Panel, opts ...Option) *Engine {
	t.Helper()
	geo := testGeometry(panel)
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	e, err := New(geo, hand.Quad(panel), opts...)
	require.NoError(t, err)
	return e
}

func seededDocument(e *Engine) *document.Memory {
	doc := document.NewMemory("clock")
	for _, n := range e.Hands().Nets() {
		doc.AddNet(n)
	}
	return doc
}

func TestEnginePlanCounts(t *testing.T) {
	e := newTestEngine(t, board.DualPanel())
	counts := e.Plan().Counts()

	// Four hands on two boards.
	const copies = 8
	assert.Equal(t, Count{Traces: copies * 10 * 240}, counts[PhaseRings])
	assert.Equal(t, Count{Traces: copies * 6 * 36}, counts[PhaseArcs])
	assert.Equal(t, Count{Traces: copies * 180, Vias: copies * 180}, counts[PhaseRadials])
	assert.Equal(t, Count{Traces: copies * (12 + 8 + 156), Vias: copies * 8}, counts[PhaseTaps])
}

func TestEnginePlanDeterministic(t *testing.T) {
	a := newTestEngine(t, board.DualPanel()).Plan()
	b := newTestEngine(t, board.DualPanel()).Plan()
	if diff := cmp.Diff(a.Items, b.Items); diff != "" {
		t.Errorf("plans differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a.Counts(), b.Counts(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("counts differ (-first +second):\n%s", diff)
	}
}

func TestEnginePlanPhaseOrder(t *testing.T) {
	e := newTestEngine(t, board.SinglePanel())
	p := e.Plan()
	rank := map[Phase]int{}
	for i, ph := range Phases {
		rank[ph] = i
	}
	for i := 1; i < len(p.Items); i++ {
		assert.LessOrEqual(t, rank[p.Items[i-1].Phase], rank[p.Items[i].Phase])
	}
}

func TestEngineDefaultEraseRadius(t *testing.T) {
	e := newTestEngine(t, board.SinglePanel())
	// Innermost collector is ring 66 at 3000 - 66*20.
	assert.Equal(t, 1670.0, e.EraseRadius())

	e = newTestEngine(t, board.SinglePanel(), WithEraseRadius(1500))
	assert.Equal(t, 1500.0, e.EraseRadius())
}

func TestEngineRunIsRepeatable(t *testing.T) {
	m := metrics.New()
	e := newTestEngine(t, board.DualPanel(), WithMetrics(m))
	doc := seededDocument(e)

	// Hand-drawn copper from the collector inward survives regeneration.
	inner, err := doc.LookupNet("HOUR_T2")
	require.NoError(t, err)
	center := geometry.Point{X: 3500, Y: 3500}
	doc.CreateTrace(inner, center.Offset(0, -1690), center.Offset(0, -400), board.LayerFrontCu, 6)

	first, err := e.Run(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Erased.TracesRemoved)
	assert.Equal(t, 1, first.Erased.TracesKept)
	traces, vias := len(doc.AllTraces()), len(doc.AllVias())

	second, err := e.Run(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, traces-1, second.Erased.TracesRemoved)
	assert.Equal(t, vias, second.Erased.ViasRemoved)
	assert.Equal(t, 1, second.Erased.TracesKept)
	assert.Len(t, doc.AllTraces(), traces)
	assert.Len(t, doc.AllVias(), vias)
	assert.Equal(t, 2, doc.Refreshes())

	assert.Equal(t, float64(2*8*10*240), testutil.ToFloat64(m.TracesCreated.WithLabelValues("rings")))
	assert.Equal(t, float64(traces-1), testutil.ToFloat64(m.TracesRemoved))
}

func TestEngineRunMissingNet(t *testing.T) {
	e := newTestEngine(t, board.SinglePanel())
	doc := document.NewMemory("partial")
	for _, n := range e.Hands().Nets()[1:] {
		doc.AddNet(n)
	}

	_, err := e.Run(context.Background(), doc)
	require.Error(t, err)
	var lf *document.LookupFailure
	require.True(t, errors.As(err, &lf))
	assert.Equal(t, "HOUR_T0", lf.Name)
	assert.Empty(t, doc.AllTraces())
	assert.Zero(t, doc.Refreshes())
}

func TestEngineRunCancelled(t *testing.T) {
	e := newTestEngine(t, board.SinglePanel())
	doc := seededDocument(e)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, doc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, doc.AllTraces())
}

func TestNewRejectsBadTable(t *testing.T) {
	geo := testGeometry(board.SinglePanel())
	hands := hand.Quad(geo.Panel)
	table := QuadTaps(hands)
	table = append(table, table[0])
	_, err := New(geo, hands, WithTapTable(table))
	assert.ErrorIs(t, err, ErrTapTable)
}

func TestEnginePairDesign(t *testing.T) {
	panel := board.SinglePanel()
	geo := NewGeometry(panel, rules.Default(), Pair.OuterRadius)
	e, err := New(geo, Pair.Hands(panel), WithDesign(Pair), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	assert.Equal(t, board.RingsFront, e.Geometry().Stackup)
	assert.Equal(t, ErasePolicyEither, e.ErasePolicy())
	// Ring 21.5 at 1400 - 21.5*20.
	assert.Equal(t, 970.0, e.EraseRadius())

	counts := e.Plan().Counts()
	assert.Equal(t, Count{Traces: 2 * 10 * 240}, counts[PhaseRings])
	assert.Equal(t, Count{Traces: 2 * 6 * 36}, counts[PhaseArcs])
	// Hour pads sit on the ring layer and go through a neck; minute pads
	// are reached directly.
	assert.Equal(t, Count{Traces: 240 + 120, Vias: 240 + 120}, counts[PhaseRadials])
	assert.Equal(t, Count{Traces: 20, Vias: 18}, counts[PhaseTaps])

	e, err = New(geo, Pair.Hands(panel), WithDesign(Pair), WithErasePolicy(ErasePolicyBoth))
	require.NoError(t, err)
	assert.Equal(t, ErasePolicyBoth, e.ErasePolicy())
}

func TestNewRejectsLayoutThatDoesNotFit(t *testing.T) {
	panel := board.SinglePanel()
	geo := NewGeometry(panel, rules.Default(), 1400)
	_, err := New(geo, Quad.Hands(panel), WithDesign(Quad))
	assert.ErrorIs(t, err, ErrDoesNotFit)

	_, err = New(geo, Pair.Hands(panel), WithDesign(Pair))
	assert.NoError(t, err)
}

func TestCheckFit(t *testing.T) {
	d := rules.Derive(rules.Default())
	assert.Equal(t, 20.0, MinSubslotChord(d))
	assert.InDelta(t, 25.13, SubslotChord(960), 0.01)

	layout := slot.Layout{OuterRadius: 1400, Spacing: d.RingSpacing}
	assert.NoError(t, CheckFit(layout, d, 22))
	// Ring 40 sits at 600 where one subslot is under 16 long.
	assert.ErrorIs(t, CheckFit(layout, d, 40), ErrDoesNotFit)
	assert.ErrorIs(t, CheckFit(layout, d, 80), ErrDoesNotFit)
}

func TestLookupDesign(t *testing.T) {
	assert.Equal(t, []string{"pair", "quad"}, DesignNames())
	d, ok := LookupDesign("pair")
	require.True(t, ok)
	assert.Equal(t, 1400.0, d.OuterRadius)
	_, ok = LookupDesign("hex")
	assert.False(t, ok)
}
