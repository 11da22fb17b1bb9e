// Package gate defines the opaque gate descriptor that is the unit of work
// for the scheduler. A Gate carries operands, a duration, and a mutable
// cycle slot; everything else about a gate (its semantics, its matrix, its
// code generation) is a concern of collaborators outside this package.
package gate

import "math"

// Kind tags the event signature a gate exhibits during dependence-graph
// construction (see the builder's event table). It is a closed variant with
// a generic fallback, matched at graph-build time rather than dispatched
// through an interface.
type Kind int

const (
	// Generic is the catch-all: every qubit and classical operand is a write.
	Generic Kind = iota
	// Measure writes each qubit operand and each classical operand.
	Measure
	// Display has no explicit operands; every combined operand is a write.
	Display
	// Classical writes each classical operand.
	Classical
	// CNOT reads its first (control) operand and D-accesses its second (target) operand.
	CNOT
	// CZ reads all qubit operands symmetrically.
	CZ
	// Wait bypasses the resource manager; it models a scheduling barrier, not hardware.
	Wait
	// Remap bypasses the resource manager; it models a virtual-to-real qubit rename.
	Remap
	// Dummy bypasses the resource manager. SOURCE and SINK are Dummy gates.
	Dummy
)

// String renders a Kind for logging and DOT labels.
func (k Kind) String() string {
	switch k {
	case Generic:
		return "generic"
	case Measure:
		return "measure"
	case Display:
		return "display"
	case Classical:
		return "classical"
	case CNOT:
		return "cnot"
	case CZ:
		return "cz"
	case Wait:
		return "wait"
	case Remap:
		return "remap"
	case Dummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// BypassesResources reports whether gates of this kind skip the resource
// manager during list scheduling (sentinels, barriers, and classical bookkeeping
// that never occupy hardware slots).
func (k Kind) BypassesResources() bool {
	switch k {
	case Dummy, Wait, Remap, Classical:
		return true
	default:
		return false
	}
}

// MaxCycle is the sentinel value a Gate's Cycle field holds before the
// scheduler assigns it.
const MaxCycle = math.MaxInt32

// Gate is the read-only-to-everyone-but-the-scheduler descriptor for one
// quantum operation. QubitOperands and CregOperands are in their own local
// index spaces; use CombinedOperands (or Combine) to address dependence
// bookkeeping, which unifies qubits and classical registers into one flat
// array.
type Gate struct {
	Name         string
	Kind         Kind
	QubitOperands []int
	CregOperands  []int
	Duration      int

	// Cycle is the only field the scheduler mutates. It starts at MaxCycle.
	Cycle int
}

// New constructs a Gate with its Cycle initialized to the unscheduled sentinel.
func New(name string, kind Kind, qubits, cregs []int, duration int) *Gate {
	return &Gate{
		Name:          name,
		Kind:          kind,
		QubitOperands: qubits,
		CregOperands:  cregs,
		Duration:      duration,
		Cycle:         MaxCycle,
	}
}

// Combine maps a classical-register index into the combined operand space
// that sits after all qubit indices, per spec: register r -> qubitCount + r.
func Combine(qubitCount, cregIndex int) int {
	return qubitCount + cregIndex
}

// CombinedOperands returns every operand this gate touches (qubits first,
// then classical registers) mapped into the combined operand space.
func (g *Gate) CombinedOperands(qubitCount int) []int {
	out := make([]int, 0, len(g.QubitOperands)+len(g.CregOperands))
	out = append(out, g.QubitOperands...)
	for _, c := range g.CregOperands {
		out = append(out, Combine(qubitCount, c))
	}
	return out
}

// CeilDiv computes ceil(duration / cycleTime), the edge-weight formula used
// throughout the dependence graph and the uniforming pass.
func CeilDiv(duration, cycleTime int) int {
	if cycleTime <= 0 {
		cycleTime = 1
	}
	return (duration + cycleTime - 1) / cycleTime
}

// Bundle groups a cycle-sorted circuit into per-cycle slices. It is a
// read-only convenience the CORE scheduler does not need internally, but a
// downstream code emitter (out of scope here) typically does; grounded on
// the original scheduler's bundler().
func Bundle(circuit []*Gate) [][]*Gate {
	if len(circuit) == 0 {
		return nil
	}
	var bundles [][]*Gate
	var current []*Gate
	currentCycle := circuit[0].Cycle
	for _, g := range circuit {
		if g.Cycle != currentCycle {
			bundles = append(bundles, current)
			current = nil
			currentCycle = g.Cycle
		}
		current = append(current, g)
	}
	bundles = append(bundles, current)
	return bundles
}
