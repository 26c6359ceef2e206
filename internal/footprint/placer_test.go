package footprint

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
	"pcb-ringroute/pkg/geometry"
)

func testPlacer(panel *board.Panel) Placer {
	return Placer{Panel: panel, Layout: slot.Layout{OuterRadius: 3000, Spacing: 20}}
}

func TestPlacements(t *testing.T) {
	panel := board.DualPanel()
	hands := hand.Quad(panel)
	p := testPlacer(panel)

	tests := []struct {
		name string
		hand hand.Hand
		slot int
		want []Placement
	}{
		{
			name: "front hand",
			hand: hands[0],
			slot: 15,
			want: []Placement{
				{Reference: "D115", Board: 0, Position: geometry.Point{X: 6500, Y: 3500}, Orientation: 0, Side: board.SideFront},
				{Reference: "D1115", Board: 1, Position: geometry.Point{X: 7500, Y: 3500}, Orientation: 180, Side: board.SideBack},
			},
		},
		{
			name: "back hand",
			hand: hands[2],
			slot: 15,
			want: []Placement{
				{Reference: "D315", Board: 0, Position: geometry.Point{X: 3500 - 2320, Y: 3500}, Orientation: 0, Side: board.SideBack},
				{Reference: "D1315", Board: 1, Position: geometry.Point{X: 10500 + 2320, Y: 3500}, Orientation: 180, Side: board.SideFront},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Placements(tt.hand, tt.slot))
		})
	}
}

func TestPairPlacements(t *testing.T) {
	panel := board.SinglePanel()
	hands := hand.Pair(panel)
	p := Placer{Panel: panel, Layout: slot.Layout{OuterRadius: 1400, Spacing: 20}}

	// Both LEDs of a slot sit on the diode radius outside ring 0, the
	// minute one flipped behind the hour one and turned half a circle.
	hour := p.Placements(hands[0], 15)
	minute := p.Placements(hands[1], 15)
	assert.Equal(t, []Placement{
		{Reference: "D015", Board: 0, Position: geometry.Point{X: 4960, Y: 3500}, Orientation: 270, Side: board.SideFront},
	}, hour)
	assert.Equal(t, []Placement{
		{Reference: "D115", Board: 0, Position: geometry.Point{X: 4960, Y: 3500}, Orientation: 90, Side: board.SideBack},
	}, minute)

	// The minute hand runs clockwise like the hour hand.
	assert.Equal(t, geometry.Point{X: 3500, Y: 4960}, p.Placements(hands[1], 30)[0].Position)
}

func TestPlaceAllIdempotent(t *testing.T) {
	panel := board.DualPanel()
	hands := hand.Quad(panel)
	doc := document.NewMemory("leds")
	for _, ref := range References(panel, hands) {
		doc.AddFootprint(ref)
	}
	p := testPlacer(panel)

	n, err := p.PlaceAll(doc, hands)
	require.NoError(t, err)
	assert.Equal(t, 4*60*2, n)
	first := doc.Footprints()

	_, err = p.PlaceAll(doc, hands)
	require.NoError(t, err)
	assert.Equal(t, first, doc.Footprints())
	assert.Equal(t, 2, doc.Refreshes())

	fp, ok := doc.Footprint("D100")
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 3500, Y: 500}, fp.Position)
	assert.Equal(t, 90.0, fp.Orientation)
}

func TestPlaceUnknownReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	doc := mocks.NewMockDocument(ctrl)
	panel := board.DualPanel()
	h := hand.Quad(panel)[1]

	doc.EXPECT().LookupFootprint("D207").Return(document.FootprintHandle("D207"), nil)
	doc.EXPECT().LookupFootprint("D1207").Return(document.FootprintHandle(""), document.ErrNotFound)

	_, err := testPlacer(panel).Place(doc, h, 7)
	var lf *document.LookupFailure
	require.True(t, errors.As(err, &lf))
	assert.Equal(t, "footprint", lf.Kind)
	assert.Equal(t, "D1207", lf.Name)
}
