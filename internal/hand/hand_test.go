package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/slot"
)

func TestSetsAreValid(t *testing.T) {
	for _, name := range board.ListPanels() {
		p, _ := board.GetPanel(name)
		for _, s := range []Set{Pair(p), Quad(p)} {
			require.NoError(t, s.Validate(p), name)
			for _, h := range s {
				assert.Len(t, h.Boards, len(p.Boards))
			}
		}
	}
}

func TestQuadRings(t *testing.T) {
	h, ok := Quad(board.SinglePanel()).Lookup(Minute)
	require.True(t, ok)
	assert.Equal(t, 19, h.TensRing())
	assert.Equal(t, 20, h.OnesRing(0))
	assert.Equal(t, 29, h.OnesRing(9))
	assert.Equal(t, []int{30, 31}, h.Feeders)
	assert.Equal(t, 32, h.CollectorRing())
	assert.Equal(t, 18.0, h.TensRadial.NeckRing)
	assert.Equal(t, 17.0, h.DiodeRing)
	assert.Len(t, h.Rings(), 13)
	assert.True(t, h.IsFeeder(31))
	assert.False(t, h.IsFeeder(32))
}

func TestPairRings(t *testing.T) {
	s := Pair(board.SinglePanel())
	hour, _ := s.Lookup(Hour)
	minute, _ := s.Lookup(Minute)
	assert.Equal(t, 1, hour.DigitRing(slot.Tens, 3))
	assert.Equal(t, 2, hour.DigitRing(slot.Ones, 0))
	assert.Equal(t, 11, hour.DigitRing(slot.Ones, 9))
	assert.Equal(t, 0, minute.DigitRing(slot.Tens, 0))
	assert.Equal(t, 12, minute.DigitRing(slot.Ones, 0))
	assert.Equal(t, 21, minute.DigitRing(slot.Ones, 9))
	assert.Equal(t, hour.CollectorRing(), minute.CollectorRing())
	assert.Equal(t, 22, s.InnermostRing())

	owner, ok := s.Owner(0)
	require.True(t, ok)
	assert.Equal(t, Minute, owner.ID)
	_, ok = s.Owner(22)
	assert.False(t, ok)
}

func TestDirection(t *testing.T) {
	p := board.DualPanel()
	face, _ := p.Board(0)
	mirror, _ := p.Board(1)

	pair := Pair(p)
	for _, h := range pair {
		assert.Equal(t, 1.0, h.Direction(face), h.Name)
		assert.Equal(t, -1.0, h.Direction(mirror), h.Name)
	}
	assert.Equal(t, board.LayerFrontCu, pair[0].PadLayer(face))
	assert.Equal(t, board.LayerBackCu, pair[1].PadLayer(face))

	quad := Quad(p)
	for _, h := range quad {
		want := 1.0
		if h.Side == board.SideBack {
			want = -1
		}
		assert.Equal(t, want, h.Direction(face), h.Name)
		assert.Equal(t, -want, h.Direction(mirror), h.Name)
	}
}

func TestNets(t *testing.T) {
	s := Quad(board.DualPanel())
	nets := s.Nets()
	assert.Len(t, nets, 64)
	h, _ := s.Lookup(Hour)
	assert.Equal(t, "HOUR_T0", h.Nets()[0])
	assert.Equal(t, "HOUR_O9", h.Nets()[15])
	assert.Equal(t, h.Net(slot.Ones, 4), "HOUR_O4")
	assert.Equal(t, 66, s.InnermostRing())
}

func TestReference(t *testing.T) {
	p := board.DualPanel()
	face, _ := p.Board(0)
	mirror, _ := p.Board(1)

	h, _ := Quad(p).Lookup(Second)
	assert.Equal(t, "D342", h.Reference(face, 42))
	assert.Equal(t, "D1342", h.Reference(mirror, 42))

	pair := Pair(p)
	assert.Equal(t, "D007", pair[0].Reference(face, 7))
	assert.Equal(t, "D159", pair[1].Reference(face, 59))
}

func TestValidateRejectsOverlap(t *testing.T) {
	p := board.SinglePanel()
	s := Quad(p)
	s[1].Tens = 10
	assert.Error(t, s.Validate(p))

	s = Quad(p)
	s[0].Boards = []int{5}
	assert.Error(t, s.Validate(p))

	s = Quad(p)
	s[2].Name = s[0].Name
	assert.Error(t, s.Validate(p))

	s = Pair(p)
	s[1].Ones = 11
	assert.Error(t, s.Validate(p))

	s = Pair(p)
	s[1].Collector = 11
	assert.Error(t, s.Validate(p))
}

func TestValidateRejectsMisplacedDiodes(t *testing.T) {
	h := Pair(board.SinglePanel())[0]
	h.DiodeRing = 1
	assert.Error(t, h.Validate())

	h = Pair(board.SinglePanel())[0]
	h.OnesRadial.NeckRing = -4
	assert.Error(t, h.Validate())

	h = Pair(board.SinglePanel())[0]
	h.OnesRadial.Subslot = h.TensRadial.Subslot
	assert.Error(t, h.Validate())
}
