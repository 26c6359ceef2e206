package document

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// fileVersion is bumped whenever File changes incompatibly.
const fileVersion = 1

// File is the persisted form of a Memory document (.ringboard.json).
type File struct {
	Version    int         `json:"version"`
	Name       string      `json:"name"`
	Created    time.Time   `json:"created"`
	Modified   time.Time   `json:"modified"`
	Nets       []string    `json:"nets"`
	Traces     []Trace     `json:"traces"`
	Vias       []Via       `json:"vias"`
	Footprints []Footprint `json:"footprints"`
}

// Save writes the document to path.
func (m *Memory) Save(path string) error {
	now := time.Now()
	f := File{
		Version:    fileVersion,
		Name:       m.Name,
		Created:    now,
		Modified:   now,
		Traces:     m.AllTraces(),
		Vias:       m.AllVias(),
		Footprints: m.Footprints(),
	}
	for _, n := range m.Nets() {
		f.Nets = append(f.Nets, n.Name)
	}
	// Keep the original creation time when overwriting.
	if prev, err := readFile(path); err == nil {
		f.Created = prev.Created
	}

	data, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a document saved with Save. Handles are reissued.
func Load(path string) (*Memory, error) {
	f, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if f.Version != fileVersion {
		return nil, fmt.Errorf("%s: unsupported document version %d", path, f.Version)
	}

	m := NewMemory(f.Name)
	for _, n := range f.Nets {
		m.AddNet(n)
	}
	for _, t := range f.Traces {
		net, err := m.LookupNet(t.Net)
		if err != nil {
			return nil, fmt.Errorf("%s: trace on undefined net: %w", path, err)
		}
		m.CreateTrace(net, t.A, t.B, t.Layer, t.Width)
	}
	for _, v := range f.Vias {
		net, err := m.LookupNet(v.Net)
		if err != nil {
			return nil, fmt.Errorf("%s: via on undefined net: %w", path, err)
		}
		m.CreateVia(net, v.At, v.Layers, v.Drill, v.Diameter)
	}
	for _, fp := range f.Footprints {
		m.AddFootprint(fp.Reference)
		h := FootprintHandle(fp.Reference)
		m.SetFootprintPosition(h, fp.Position)
		m.SetFootprintOrientation(h, fp.Orientation)
		m.SetFootprintSide(h, fp.Side)
	}
	return m, nil
}

func readFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}
