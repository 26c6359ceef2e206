package route

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"pcb-ringroute/internal/document"
	"pcb-ringroute/internal/hand"
	"pcb-ringroute/internal/metrics"
	"pcb-ringroute/internal/rules"
)

const tracerName = "pcb-ringroute/internal/route"

// Engine erases and redraws the copper of every hand.
type Engine struct {
	geo         Geometry
	hands       hand.Set
	design      Design
	taps        TapTable
	policy      ErasePolicy
	policySet   bool
	eraseRadius float64

	log     *zap.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMetrics records created and removed geometry in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithDesign draws the tap table, stackup and erase defaults of d. The
// engine draws the quad design without it.
func WithDesign(d Design) Option {
	return func(e *Engine) {
		e.design = d
		e.geo = e.geo.WithStackup(d.Stackup)
	}
}

// WithTapTable replaces the design's tap table.
func WithTapTable(t TapTable) Option {
	return func(e *Engine) { e.taps = t }
}

// WithErasePolicy sets how traces straddling the erase radius are treated,
// overriding the design.
func WithErasePolicy(p ErasePolicy) Option {
	return func(e *Engine) { e.policy, e.policySet = p, true }
}

// WithEraseRadius overrides the erase radius. Zero keeps the default.
func WithEraseRadius(r float64) Option {
	return func(e *Engine) { e.eraseRadius = r }
}

// New validates the hands and tap table against the panel and checks the
// innermost ring still leaves room between subslots.
func New(geo Geometry, hands hand.Set, opts ...Option) (*Engine, error) {
	e := &Engine{
		geo:    geo,
		hands:  hands,
		design: Quad,
		log:    zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.geo.Panel.Validate(); err != nil {
		return nil, err
	}
	if err := hands.Validate(e.geo.Panel); err != nil {
		return nil, err
	}
	if err := CheckFit(e.geo.Layout, e.geo.Rules, hands.InnermostRing()); err != nil {
		return nil, err
	}
	if e.taps == nil {
		e.taps = e.design.Taps(hands)
	}
	if err := e.taps.Validate(hands); err != nil {
		return nil, err
	}
	if !e.policySet {
		e.policy = e.design.ErasePolicy
	}
	if e.eraseRadius == 0 {
		e.eraseRadius = e.design.EraseRadius(e.geo.Layout)
	}
	if e.eraseRadius == 0 {
		e.eraseRadius = e.DefaultEraseRadius()
	}
	if e.eraseRadius < 0 {
		return nil, fmt.Errorf("negative erase radius %v", e.eraseRadius)
	}
	return e, nil
}

// DefaultEraseRadius lies half a ring pitch inside the innermost collector,
// so every generated point is strictly outside it.
func (e *Engine) DefaultEraseRadius() float64 {
	return e.geo.Layout.Radius(e.hands.InnermostRing()) - e.geo.Rules.RingSpacing/2
}

// ErasePolicy is how the engine treats traces straddling the erase radius.
func (e *Engine) ErasePolicy() ErasePolicy { return e.policy }

// Design returns the design the engine draws.
func (e *Engine) Design() Design { return e.design }

// EraseRadius is the radius the engine erases outside of.
func (e *Engine) EraseRadius() float64 { return e.eraseRadius }

// Geometry returns the engine geometry.
func (e *Engine) Geometry() Geometry { return e.geo }

// Hands returns the hands the engine draws.
func (e *Engine) Hands() hand.Set { return e.hands }

// Plan builds the full geometry without touching a document: all ones
// rings, then all tens arcs, then all radials, then the tap table.
func (e *Engine) Plan() *Plan {
	p := NewPlan(e.geo)
	rings := NewRingDrawer(e.geo)

	p.Begin(PhaseRings)
	for _, h := range e.hands {
		rings.OnesRings(p, h)
	}
	p.Begin(PhaseArcs)
	for _, h := range e.hands {
		rings.TensArcs(p, h)
	}
	p.Begin(PhaseRadials)
	radials := NewRadialConnector(e.geo)
	for _, h := range e.hands {
		radials.ConnectAll(p, h)
	}
	p.Begin(PhaseTaps)
	NewTapRouter(e.geo, e.hands, e.taps).Apply(p)
	return p
}

// Result summarises one run.
type Result struct {
	Rules       rules.Derived   `yaml:"-"`
	EraseRadius float64         `yaml:"erase_radius"`
	Erased      EraseResult     `yaml:"erased"`
	Counts      map[Phase]Count `yaml:"created"`
	Duration    time.Duration   `yaml:"duration"`
}

// Run erases the previous output and draws a fresh plan into doc, then asks
// the document to refresh. Drawing is not transactional: a failure part way
// leaves whatever was appended, but every net is resolved up front so a
// missing net fails before the first change.
func (e *Engine) Run(ctx context.Context, doc document.Document) (Result, error) {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "route.Run")
	defer span.End()

	res := Result{Rules: e.geo.Rules, EraseRadius: e.eraseRadius}
	fail := func(err error) (Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	erased, err := e.erase(ctx, doc)
	if err != nil {
		return fail(err)
	}
	res.Erased = erased

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	_, planSpan := e.tracer.Start(ctx, "route.Plan")
	p := e.Plan()
	res.Counts = p.Counts()
	planSpan.SetAttributes(attribute.Int("items", len(p.Items)))
	planSpan.End()

	_, applySpan := e.tracer.Start(ctx, "route.Apply")
	err = p.Apply(doc)
	applySpan.End()
	if err != nil {
		return fail(err)
	}
	doc.Refresh()

	for _, ph := range Phases {
		c := res.Counts[ph]
		e.metrics.ObserveCreated(string(ph), c.Traces, c.Vias)
		e.log.Debug("phase drawn", zap.String("phase", string(ph)),
			zap.Int("traces", c.Traces), zap.Int("vias", c.Vias))
	}
	res.Duration = time.Since(start)
	e.metrics.ObserveRun(res.Duration)
	e.log.Info("generation complete",
		zap.String("panel", e.geo.Panel.Name),
		zap.Int("hands", len(e.hands)),
		zap.Int("traces_removed", erased.TracesRemoved),
		zap.Int("items", len(p.Items)),
		zap.Duration("duration", res.Duration))
	return res, nil
}

// Erase clears the engine's nets outside the erase radius without drawing.
func (e *Engine) Erase(ctx context.Context, doc document.Document) (EraseResult, error) {
	ctx, span := e.tracer.Start(ctx, "route.Erase")
	defer span.End()
	res, err := e.erase(ctx, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	doc.Refresh()
	return res, nil
}

func (e *Engine) erase(ctx context.Context, doc document.Document) (EraseResult, error) {
	_, span := e.tracer.Start(ctx, "route.erase")
	defer span.End()
	er := Eraser{Panel: e.geo.Panel, Policy: e.policy, Logger: e.log}
	res, err := er.Erase(doc, e.hands.Nets(), e.eraseRadius)
	if err != nil {
		return res, err
	}
	span.SetAttributes(
		attribute.Int("traces_removed", res.TracesRemoved),
		attribute.Int("vias_removed", res.ViasRemoved))
	e.metrics.ObserveErase(res.TracesRemoved, res.ViasRemoved)
	return res, nil
}
