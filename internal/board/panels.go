package board

import "pcb-ringroute/pkg/geometry"

// SinglePanel is one front board.
func SinglePanel() *Panel {
	return &Panel{
		Name: "single",
		Boards: []Board{
			{Index: 0, Name: "face", Center: geometry.Point{X: 3500, Y: 3500}, Side: SideFront},
		},
	}
}

// DualPanel places the face board and its mirror image side by side. Both
// boards carry the same nets.
func DualPanel() *Panel {
	return &Panel{
		Name: "dual",
		Boards: []Board{
			{Index: 0, Name: "face", Center: geometry.Point{X: 3500, Y: 3500}, Side: SideFront},
			{Index: 1, Name: "mirror", Center: geometry.Point{X: 10500, Y: 3500}, Side: SideBack, RefOffset: 1000},
		},
	}
}
