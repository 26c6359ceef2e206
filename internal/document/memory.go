package document

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"pcb-ringroute/internal/board"
	"pcb-ringroute/pkg/geometry"
)

// Memory is an in-process board document. Nets and footprints are seeded
// ahead of generation, as a schematic import would do.
type Memory struct {
	mu sync.RWMutex

	Name string

	nets     map[string]NetHandle
	netOrder []string

	traces      map[TraceHandle]Trace
	traceOrder  []TraceHandle
	tracesByNet map[string][]TraceHandle
	deadTraces  int

	vias      map[ViaHandle]Via
	viaOrder  []ViaHandle
	viasByNet map[string][]ViaHandle
	deadVias  int

	footprints map[string]*Footprint

	onRefresh func()
	refreshes int
}

var _ Document = (*Memory)(nil)

// NewMemory creates an empty document.
func NewMemory(name string) *Memory {
	return &Memory{
		Name:        name,
		nets:        make(map[string]NetHandle),
		traces:      make(map[TraceHandle]Trace),
		tracesByNet: make(map[string][]TraceHandle),
		vias:        make(map[ViaHandle]Via),
		viasByNet:   make(map[string][]ViaHandle),
		footprints:  make(map[string]*Footprint),
	}
}

// AddNet defines a net. Adding an existing net returns its handle.
func (m *Memory) AddNet(name string) NetHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addNetLocked(name)
}

func (m *Memory) addNetLocked(name string) NetHandle {
	if h, ok := m.nets[name]; ok {
		return h
	}
	// Net code 0 is reserved for "no net" in KiCad.
	h := NetHandle{Code: len(m.netOrder) + 1, Name: name}
	m.nets[name] = h
	m.netOrder = append(m.netOrder, name)
	return h
}

// AddFootprint defines a footprint at the origin on the front side.
func (m *Memory) AddFootprint(reference string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.footprints[reference]; !ok {
		m.footprints[reference] = &Footprint{Reference: reference}
	}
}

// OnRefresh sets the hook invoked by Refresh.
func (m *Memory) OnRefresh(fn func()) {
	m.mu.Lock()
	m.onRefresh = fn
	m.mu.Unlock()
}

// Refreshes returns how many times Refresh has been called.
func (m *Memory) Refreshes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshes
}

func (m *Memory) LookupNet(name string) (NetHandle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.nets[name]
	if !ok {
		return NetHandle{}, fmt.Errorf("net %q: %w", name, ErrNotFound)
	}
	return h, nil
}

func (m *Memory) CreateTrace(net NetHandle, a, b geometry.Point, layer board.Layer, width float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := TraceHandle(uuid.NewString())
	m.traces[h] = Trace{Net: net.Name, A: a, B: b, Layer: layer, Width: width}
	m.traceOrder = append(m.traceOrder, h)
	m.tracesByNet[net.Name] = append(m.tracesByNet[net.Name], h)
}

func (m *Memory) CreateVia(net NetHandle, at geometry.Point, layers board.LayerPair, drill, diameter float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := ViaHandle(uuid.NewString())
	m.vias[h] = Via{Net: net.Name, At: at, Layers: layers, Drill: drill, Diameter: diameter}
	m.viaOrder = append(m.viaOrder, h)
	m.viasByNet[net.Name] = append(m.viasByNet[net.Name], h)
}

func (m *Memory) Traces(net NetHandle) []TraceRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	live := m.tracesByNet[net.Name][:0]
	var out []TraceRecord
	for _, h := range m.tracesByNet[net.Name] {
		if t, ok := m.traces[h]; ok {
			live = append(live, h)
			out = append(out, TraceRecord{Handle: h, Trace: t})
		}
	}
	m.tracesByNet[net.Name] = live
	return out
}

func (m *Memory) RemoveTrace(h TraceHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.traces[h]; !ok {
		return
	}
	delete(m.traces, h)
	m.deadTraces++
	if m.deadTraces > len(m.traces) {
		m.traceOrder = compact(m.traceOrder, m.traces)
		for net, hs := range m.tracesByNet {
			m.tracesByNet[net] = compact(hs, m.traces)
		}
		m.deadTraces = 0
	}
}

func (m *Memory) Vias(net NetHandle) []ViaRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	live := m.viasByNet[net.Name][:0]
	var out []ViaRecord
	for _, h := range m.viasByNet[net.Name] {
		if v, ok := m.vias[h]; ok {
			live = append(live, h)
			out = append(out, ViaRecord{Handle: h, Via: v})
		}
	}
	m.viasByNet[net.Name] = live
	return out
}

func (m *Memory) RemoveVia(h ViaHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vias[h]; !ok {
		return
	}
	delete(m.vias, h)
	m.deadVias++
	if m.deadVias > len(m.vias) {
		m.viaOrder = compact(m.viaOrder, m.vias)
		for net, hs := range m.viasByNet {
			m.viasByNet[net] = compact(hs, m.vias)
		}
		m.deadVias = 0
	}
}

// compact drops the handles no longer in live, keeping order.
func compact[H comparable, V any](order []H, live map[H]V) []H {
	out := order[:0]
	for _, h := range order {
		if _, ok := live[h]; ok {
			out = append(out, h)
		}
	}
	return out
}

func (m *Memory) LookupFootprint(reference string) (FootprintHandle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.footprints[reference]; !ok {
		return "", fmt.Errorf("footprint %q: %w", reference, ErrNotFound)
	}
	return FootprintHandle(reference), nil
}

func (m *Memory) SetFootprintPosition(h FootprintHandle, p geometry.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fp, ok := m.footprints[string(h)]; ok {
		fp.Position = p
	}
}

func (m *Memory) SetFootprintOrientation(h FootprintHandle, degrees float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fp, ok := m.footprints[string(h)]; ok {
		fp.Orientation = degrees
	}
}

func (m *Memory) SetFootprintSide(h FootprintHandle, side board.Side) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fp, ok := m.footprints[string(h)]; ok {
		fp.Side = side
	}
}

func (m *Memory) Refresh() {
	m.mu.Lock()
	m.refreshes++
	fn := m.onRefresh
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Nets returns all net handles in definition order.
func (m *Memory) Nets() []NetHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]NetHandle, 0, len(m.netOrder))
	for _, name := range m.netOrder {
		out = append(out, m.nets[name])
	}
	return out
}

// AllTraces returns every live trace in creation order.
func (m *Memory) AllTraces() []Trace {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Trace, 0, len(m.traces))
	for _, h := range m.traceOrder {
		if t, ok := m.traces[h]; ok {
			out = append(out, t)
		}
	}
	return out
}

// AllVias returns every live via in creation order.
func (m *Memory) AllVias() []Via {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Via, 0, len(m.vias))
	for _, h := range m.viaOrder {
		if v, ok := m.vias[h]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Footprints returns all footprints sorted by reference.
func (m *Memory) Footprints() []Footprint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Footprint, 0, len(m.footprints))
	for _, fp := range m.footprints {
		out = append(out, *fp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out
}

// Footprint returns one footprint's placement.
func (m *Memory) Footprint(reference string) (Footprint, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fp, ok := m.footprints[reference]
	if !ok {
		return Footprint{}, false
	}
	return *fp, true
}
