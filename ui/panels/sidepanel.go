// Package panels provides UI panels for the application.
package panels

import (
	"fmt"
	"sort"
	"strings"

	"pcb-ringroute/internal/app"
	"pcb-ringroute/internal/report"
	"pcb-ringroute/internal/route"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SidePanel shows the outcome of the last generation in tabs.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	runLabel   *widget.Label
	handsLabel *widget.Label
	issues     []string
	issueList  *widget.List
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{state: state}

	sp.runLabel = widget.NewLabel("Not generated yet")
	sp.runLabel.TextStyle = fyne.TextStyle{Monospace: true}
	sp.handsLabel = widget.NewLabel("")
	sp.handsLabel.TextStyle = fyne.TextStyle{Monospace: true}
	sp.issueList = widget.NewList(
		func() int { return len(sp.issues) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(sp.issues[id])
		},
	)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Run", container.NewVScroll(sp.runLabel)),
		container.NewTabItem("Hands", container.NewVScroll(sp.handsLabel)),
		container.NewTabItem("Issues", sp.issueList),
	)
	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetReport shows rep in every tab.
func (sp *SidePanel) SetReport(rep *report.Report) {
	if rep == nil {
		return
	}
	sp.runLabel.SetText(RunSummary(rep))
	sp.handsLabel.SetText(HandSummary(rep))
	sp.issues = IssueLines(rep)
	sp.issueList.Refresh()
	sp.container.Items[2].Text = fmt.Sprintf("Issues (%d)", len(rep.Issues))
	sp.container.Refresh()
}

// RunSummary formats the rules, erase outcome and per-phase counts.
func RunSummary(rep *report.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Panel      %s\n", rep.Panel)
	fmt.Fprintf(&b, "Trace      %g\n", rep.Rules.TraceWidth)
	fmt.Fprintf(&b, "Via        %g / %g\n", rep.Rules.ViaDrill, rep.Rules.ViaDiameter)
	fmt.Fprintf(&b, "Clearance  %g\n", rep.Rules.MinClearance)
	fmt.Fprintf(&b, "Spacing    %g\n\n", rep.Rules.RingSpacing)

	er := rep.Run.Erased
	fmt.Fprintf(&b, "Erased inside %g: %d traces, %d vias\n\n",
		rep.Run.EraseRadius, er.TracesRemoved, er.ViasRemoved)

	var traces, vias int
	for _, ph := range route.Phases {
		c := rep.Run.Counts[ph]
		traces += c.Traces
		vias += c.Vias
		fmt.Fprintf(&b, "%-8s %6d traces %5d vias\n", ph, c.Traces, c.Vias)
	}
	fmt.Fprintf(&b, "%-8s %6d traces %5d vias\n\n", "total", traces, vias)
	fmt.Fprintf(&b, "Footprints placed: %d\n", rep.Footprints)
	fmt.Fprintf(&b, "Took %s", rep.Run.Duration)
	return b.String()
}

// HandSummary formats the ring band of each hand.
func HandSummary(rep *report.Report) string {
	var b strings.Builder
	for _, h := range rep.Hands {
		fmt.Fprintf(&b, "%s (%s) boards %v\n", h.Name, h.Side, h.Boards)
		fmt.Fprintf(&b, "  tens ring %d  collector %d\n", h.TensRing, h.Collector)
		fmt.Fprintf(&b, "  diodes on ring %g at r=%g\n\n", h.DiodeRing, h.DiodeRadius)
	}
	return strings.TrimRight(b.String(), "\n")
}

// IssueLines lists inspection issues, grouped by kind.
func IssueLines(rep *report.Report) []string {
	lines := make([]string, 0, len(rep.Issues))
	for i := range rep.Issues {
		lines = append(lines, rep.Issues[i].Error())
	}
	sort.Strings(lines)
	return lines
}
