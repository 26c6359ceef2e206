package document

import (
	"bufio"
	"io"

	"pcb-ringroute/internal/board"
)

// MilsToMM converts the default design unit to KiCad millimetres.
const MilsToMM = 0.0254

// LEDFootprint is the library footprint every LED is written as.
const LEDFootprint = "LED_SMD:LED_0603_1608Metric"

// WriteKiCad writes the document's nets, segments, vias and footprint
// placements as .kicad_pcb S-expressions. scale converts document units to
// millimetres.
func (m *Memory) WriteKiCad(w io.Writer, scale float64) error {
	bw := bufio.NewWriter(w)
	mm := func(v float64) node { return fixed(v*scale, 4) }
	layer := func(l board.Layer) node { return list("layer", str(string(l))) }

	var nodes []node
	codes := make(map[string]int)
	nodes = append(nodes, list("net", integer(0), str("")))
	for _, n := range m.Nets() {
		codes[n.Name] = n.Code
		nodes = append(nodes, list("net", integer(n.Code), str(n.Name)))
	}

	for _, fp := range m.Footprints() {
		l := board.LayerFrontCu
		if fp.Side == board.SideBack {
			l = board.LayerBackCu
		}
		nodes = append(nodes, list("footprint", str(LEDFootprint),
			layer(l),
			list("at", mm(float64(fp.Position.X)), mm(float64(fp.Position.Y)), fixed(fp.Orientation, 2)),
			list("property", str("Reference"), str(fp.Reference)),
		))
	}

	for _, t := range m.AllTraces() {
		nodes = append(nodes, list("segment",
			list("start", mm(float64(t.A.X)), mm(float64(t.A.Y))),
			list("end", mm(float64(t.B.X)), mm(float64(t.B.Y))),
			list("width", mm(t.Width)),
			layer(t.Layer),
			list("net", integer(codes[t.Net])),
		))
	}

	for _, v := range m.AllVias() {
		nodes = append(nodes, list("via",
			list("at", mm(float64(v.At.X)), mm(float64(v.At.Y))),
			list("size", mm(v.Diameter)),
			list("drill", mm(v.Drill)),
			list("layers", str(string(v.Layers[0])), str(string(v.Layers[1]))),
			list("net", integer(codes[v.Net])),
		))
	}

	for _, n := range nodes {
		if err := writeLine(bw, 1, n); err != nil {
			return err
		}
	}
	return bw.Flush()
}
