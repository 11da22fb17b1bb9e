package resource

import (
	"sync"

	"github.com/vk/qsched/internal/gate"
	"github.com/vk/qsched/internal/platform"
)

// interval is a half-open cycle window [Start, End).
type interval struct {
	start, end int
}

func (iv interval) overlaps(other interval) bool {
	return iv.start < other.end && other.start < iv.end
}

// SlotManager is the reference resource manager: every combined operand
// (qubit or classical register) is treated as an exclusive resource, and two
// gates that touch the same operand may not have overlapping
// [cycle, cycle+ceil(duration/cycle_time)) windows. This is the minimal
// resource model that makes testable property 6 (resource exclusivity)
// meaningful without requiring a full platform-specific resource file.
//
// A caller modeling richer constraints (shared control electronics, readout
// multiplexers, coupler contention) implements Manager directly; SlotManager
// is the default "quantum gates cannot be cloned, so every operand is
// exclusive while a gate touches it" behavior.
type SlotManager struct {
	mu         sync.Mutex
	cycleTime  int
	qubitCount int
	busy       map[int][]interval // combined operand -> reserved windows
}

// NewSlotManager builds a SlotManager for the given platform and operand
// counts. qubitCount is needed to map classical-register operands into the
// combined operand space the same way the dependence graph does.
func NewSlotManager(p platform.Platform, qubitCount int) *SlotManager {
	return &SlotManager{
		cycleTime:  p.CycleTime,
		qubitCount: qubitCount,
		busy:       make(map[int][]interval),
	}
}

func (m *SlotManager) window(cycle int, g *gate.Gate) interval {
	length := gate.CeilDiv(g.Duration, m.cycleTime)
	if length < 1 {
		length = 1
	}
	return interval{start: cycle, end: cycle + length}
}

// Available reports whether every operand g touches is free for the whole
// duration of the proposed window.
func (m *SlotManager) Available(cycle int, g *gate.Gate) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	win := m.window(cycle, g)
	for _, o := range g.CombinedOperands(m.qubitCount) {
		for _, reserved := range m.busy[o] {
			if win.overlaps(reserved) {
				return false
			}
		}
	}
	return true
}

// Reserve commits g's window against every operand it touches. The scheduler
// contract guarantees Reserve is only called after a matching Available
// check in the same step, so this never needs to re-validate.
func (m *SlotManager) Reserve(cycle int, g *gate.Gate) {
	m.mu.Lock()
	defer m.mu.Unlock()

	win := m.window(cycle, g)
	for _, o := range g.CombinedOperands(m.qubitCount) {
		m.busy[o] = append(m.busy[o], win)
	}
}
