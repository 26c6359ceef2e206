package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/internal/document"
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/netlist"
	"pcb-ringroute/internal/route"
	"pcb-ringroute/internal/rules"
)

func TestReportRoundTrip(t *testing.T) {
	panel := board.SinglePanel()
	geo := route.NewGeometry(panel, rules.Default(), 3000)
	hands := hand.Quad(panel)
	e, err := route.New(geo, hands)
	require.NoError(t, err)

	doc := document.NewMemory("clock")
	for _, n := range hands.Nets() {
		doc.AddNet(n)
	}
	res, err := e.Run(context.Background(), doc)
	require.NoError(t, err)

	ins := &netlist.Report{Issues: []netlist.Issue{{Kind: netlist.IssueShort, Net: "HOUR_T1", Detail: "touches HOUR_T2"}}}
	r := New(e, res, 240, ins)
	r.AddOutput("preview", "clock-face.png")

	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, r.WriteFile(path))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "single", got.Panel)
	assert.Equal(t, "quad", got.Design)
	assert.Equal(t, 17.0, got.Hands[1].DiodeRing)
	assert.Equal(t, 20.0, got.Rules.RingSpacing)
	assert.Equal(t, 20.0, got.Rules.ViaDiameter)
	require.Len(t, got.Hands, 4)
	assert.Equal(t, "MINUTE", got.Hands[1].Name)
	assert.Equal(t, 240, got.Footprints)
	assert.Equal(t, res.Counts, got.Run.Counts)
	assert.Equal(t, res.EraseRadius, got.Run.EraseRadius)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, netlist.IssueShort, got.Issues[0].Kind)
	assert.Equal(t, []string{"clock-face.png"}, got.Outputs["preview"])
}
