// Package app provides application lifecycle management, configuration, and events.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"

	"pcb-ringroute/internal/config"
	"pcb-ringroute/internal/document"
	"pcb-ringroute/internal/footprint"
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/metrics"
	"pcb-ringroute/internal/netlist"
	"pcb-ringroute/internal/preview"
	"pcb-ringroute/internal/report"
	"pcb-ringroute/internal/route"
)

// State holds the application state: the run configuration, the board
// document and the outcome of the last generation.
type State struct {
	mu sync.RWMutex
	// genMu serializes runs against the document: generate, erase and
	// output writing each see the document between runs, never inside one.
	genMu sync.Mutex

	// Configuration
	ConfigPath string
	Config     *config.Config

	// Board document
	DocumentPath string
	Document     *document.Memory
	Modified     bool

	// Last generation
	Engine     *route.Engine
	LastReport *report.Report

	Logger  *zap.Logger
	Metrics *metrics.Metrics

	// Event listeners
	listeners map[EventType][]EventListener
}

// ErrNothingGenerated is returned by Erase before the first generation.
var ErrNothingGenerated = errors.New("nothing generated yet")

// EventType identifies different application events.
type EventType int

const (
	EventConfigLoaded EventType = iota
	EventDocumentLoaded
	EventDocumentSaved
	EventGenerated
	EventModified
	EventError
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with the default configuration.
func NewState(logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{
		Config:    config.Default(),
		Logger:    logger,
		Metrics:   metrics.New(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the document as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadConfig reads and validates a configuration file.
func (s *State) LoadConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		s.Emit(EventError, err)
		return err
	}
	s.mu.Lock()
	s.ConfigPath = path
	s.Config = cfg
	s.mu.Unlock()
	s.Logger.Info("configuration loaded", zap.String("path", path), zap.String("panel", cfg.Layout.Panel))
	s.Emit(EventConfigLoaded, cfg)
	return nil
}

// NewDocument creates a document holding every net and LED footprint the
// configured panel needs, as a board editor would have them before routing.
func (s *State) NewDocument(name string) *document.Memory {
	s.mu.Lock()
	panel := s.Config.Panel()
	hands := s.Config.Design().Hands(panel)
	doc := document.NewMemory(name)
	for _, n := range hands.Nets() {
		doc.AddNet(n)
	}
	for _, ref := range footprint.References(panel, hands) {
		doc.AddFootprint(ref)
	}
	s.Document = doc
	s.DocumentPath = ""
	s.Modified = false
	s.mu.Unlock()
	s.Emit(EventDocumentLoaded, doc)
	return doc
}

// LoadDocument loads a saved document, or seeds a new one when path does not
// exist yet.
func (s *State) LoadDocument(path string) error {
	doc, err := document.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.NewDocument(path)
		s.mu.Lock()
		s.DocumentPath = path
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		s.Emit(EventError, err)
		return err
	}
	s.mu.Lock()
	s.Document = doc
	s.DocumentPath = path
	s.Modified = false
	s.mu.Unlock()
	s.Emit(EventDocumentLoaded, doc)
	return nil
}

// SaveDocument writes the document to path.
func (s *State) SaveDocument(path string) error {
	s.mu.RLock()
	doc := s.Document
	s.mu.RUnlock()
	if doc == nil {
		return fmt.Errorf("no document loaded")
	}
	if err := doc.Save(path); err != nil {
		return err
	}
	s.mu.Lock()
	s.DocumentPath = path
	s.mu.Unlock()
	s.SetModified(false)
	s.Emit(EventDocumentSaved, path)
	return nil
}

// engine builds a routing engine for cfg.
func (s *State) engine(cfg *config.Config) (*route.Engine, hand.Set, error) {
	panel := cfg.Panel()
	design := cfg.Design()
	hands := design.Hands(panel)
	geo := route.NewGeometry(panel, cfg.Rules, cfg.OuterRadius())
	opts := []route.Option{
		route.WithDesign(design),
		route.WithLogger(s.Logger.Named("route")),
		route.WithMetrics(s.Metrics),
		route.WithEraseRadius(cfg.Layout.EraseRadius),
	}
	if p, ok := cfg.ErasePolicy(); ok {
		opts = append(opts, route.WithErasePolicy(p))
	}
	e, err := route.New(geo, hands, opts...)
	return e, hands, err
}

// Generate erases and redraws the copper, places the LEDs and inspects the
// result. The document is seeded first if none is loaded. Concurrent calls
// run one after the other.
func (s *State) Generate(ctx context.Context) (*report.Report, error) {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	s.mu.RLock()
	cfg, doc := s.Config, s.Document
	s.mu.RUnlock()
	if doc == nil {
		doc = s.NewDocument("clock")
	}

	e, hands, err := s.engine(cfg)
	if err != nil {
		s.Emit(EventError, err)
		return nil, err
	}
	panel, geo := cfg.Panel(), e.Geometry()

	res, err := e.Run(ctx, doc)
	if err != nil {
		s.Emit(EventError, err)
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	placer := footprint.Placer{Panel: panel, Layout: geo.Layout, Logger: s.Logger.Named("footprint")}
	placed, err := placer.PlaceAll(doc, hands)
	if err != nil {
		s.Emit(EventError, err)
		return nil, fmt.Errorf("footprint placement failed: %w", err)
	}
	s.Metrics.ObservePlacement(placed)

	ins := netlist.Inspector{Panel: panel, Rules: geo.Rules}.Inspect(doc, hands.Nets())
	for _, is := range ins.Issues {
		s.Logger.Warn("geometry inconsistency", zap.String("kind", string(is.Kind)),
			zap.String("net", is.Net), zap.Int("board", is.Board), zap.String("detail", is.Detail))
	}

	rep := report.New(e, res, placed, ins)
	s.mu.Lock()
	s.Engine = e
	s.LastReport = rep
	s.mu.Unlock()
	s.SetModified(true)
	s.Emit(EventGenerated, rep)
	return rep, nil
}

// Erase clears the copper of the last generation without redrawing it.
func (s *State) Erase(ctx context.Context) (route.EraseResult, error) {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	s.mu.RLock()
	doc, e := s.Document, s.Engine
	s.mu.RUnlock()
	if doc == nil || e == nil {
		return route.EraseResult{}, ErrNothingGenerated
	}
	res, err := e.Erase(ctx, doc)
	if err != nil {
		s.Emit(EventError, err)
		return res, err
	}
	s.SetModified(true)
	return res, nil
}

// WriteOutputs writes every output the configuration names and records
// them in the report.
func (s *State) WriteOutputs(ctx context.Context, rep *report.Report) error {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	s.mu.RLock()
	cfg, doc := s.Config, s.Document
	s.mu.RUnlock()
	out := cfg.Output

	if out.Dir != "" {
		if err := os.MkdirAll(out.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if p := out.Path(out.Document); p != "" {
		if err := s.SaveDocument(p); err != nil {
			return err
		}
		rep.AddOutput("document", p)
	}
	if p := out.Path(out.KiCad); p != "" {
		if err := writeKiCad(doc, p); err != nil {
			return err
		}
		rep.AddOutput("kicad", p)
	}
	if p := out.Path(out.Preview); p != "" {
		colors, _ := preview.ParseColorMode(out.PreviewColors)
		r := preview.Renderer{
			Panel: cfg.Panel(),
			Options: preview.Options{
				Scale:  out.PreviewScale,
				Radius: cfg.OuterRadius() + 100,
				Colors: colors,
			},
		}
		paths, err := r.WriteFiles(ctx, doc, p)
		if err != nil {
			return err
		}
		rep.AddOutput("preview", paths...)
	}
	if p := out.Path(out.Metrics); p != "" {
		if err := s.Metrics.WriteTextfile(p); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		rep.AddOutput("metrics", p)
	}
	if p := out.Path(out.Report); p != "" {
		rep.AddOutput("report", p)
		if err := rep.WriteFile(p); err != nil {
			return err
		}
	}
	return nil
}

func writeKiCad(doc *document.Memory, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create kicad file: %w", err)
	}
	if err := doc.WriteKiCad(f, document.MilsToMM); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
