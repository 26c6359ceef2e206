// Package report writes the YAML summary of a generation run.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"pcb-ringroute/internal/netlist"
	"pcb-ringroute/internal/route"
	"pcb-ringroute/internal/version"
)

// Rules is the derived rule set as reported.
type Rules struct {
	TraceWidth   float64 `yaml:"trace_width"`
	ViaDrill     float64 `yaml:"via_drill"`
	ViaDiameter  float64 `yaml:"via_diameter"`
	MinClearance float64 `yaml:"min_clearance"`
	RingSpacing  float64 `yaml:"ring_spacing"`
}

// Hand summarises one hand's band.
type Hand struct {
	Name        string  `yaml:"name"`
	Side        string  `yaml:"side"`
	Boards      []int   `yaml:"boards"`
	TensRing    int     `yaml:"tens_ring"`
	Collector   int     `yaml:"collector_ring"`
	DiodeRing   float64 `yaml:"diode_ring"`
	DiodeRadius float64 `yaml:"diode_radius"`
}

// Report is the document written after a run.
type Report struct {
	Version    string               `yaml:"version"`
	Generated  time.Time            `yaml:"generated"`
	Panel      string               `yaml:"panel"`
	Design     string               `yaml:"design"`
	Rules      Rules                `yaml:"rules"`
	Hands      []Hand               `yaml:"hands"`
	Run        route.Result         `yaml:"run"`
	Footprints int                  `yaml:"footprints_placed"`
	Issues     []netlist.Issue      `yaml:"issues"`
	Nets       []netlist.NetSummary `yaml:"nets,omitempty"`
	Outputs    map[string][]string  `yaml:"outputs,omitempty"`
}

// New builds a report of one engine run.
func New(e *route.Engine, res route.Result, placed int, ins *netlist.Report) *Report {
	geo := e.Geometry()
	r := &Report{
		Version:   version.String(),
		Generated: time.Now().UTC(),
		Panel:     geo.Panel.Name,
		Design:    e.Design().Name,
		Rules: Rules{
			TraceWidth:   geo.Rules.TraceWidth,
			ViaDrill:     geo.Rules.ViaDrill,
			ViaDiameter:  geo.Rules.ViaDiameter,
			MinClearance: geo.Rules.MinClearance,
			RingSpacing:  geo.Rules.RingSpacing,
		},
		Run:        res,
		Footprints: placed,
		Outputs:    make(map[string][]string),
	}
	for _, h := range e.Hands() {
		r.Hands = append(r.Hands, Hand{
			Name:        h.Name,
			Side:        h.Side.String(),
			Boards:      h.Boards,
			TensRing:    h.TensRing(),
			Collector:   h.CollectorRing(),
			DiodeRing:   h.DiodeRing,
			DiodeRadius: geo.Layout.RadiusAt(h.DiodeRing),
		})
	}
	if ins != nil {
		r.Issues = ins.Issues
		r.Nets = ins.Nets
	}
	return r
}

// AddOutput records a written file under a kind such as "preview".
func (r *Report) AddOutput(kind string, paths ...string) {
	r.Outputs[kind] = append(r.Outputs[kind], paths...)
}

// Encode writes the report as YAML.
func (r *Report) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// WriteFile writes the report to path.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read parses a report written by WriteFile.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}
