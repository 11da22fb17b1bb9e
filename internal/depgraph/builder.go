package depgraph

import (
	"context"
	"fmt"

	"github.com/vk/qsched/internal/ctxlog"
	"github.com/vk/qsched/internal/gate"
	"github.com/vk/qsched/internal/platform"
)

// Options controls construction-time choices that affect which edges the
// event table emits.
type Options struct {
	// Commute, when true, suppresses RAR and DAD edges (two reads, or two
	// D-events, on the same operand do not serialize). When false, they are
	// emitted, forcing program order between them.
	Commute bool
}

// operandState is the per-operand bookkeeping kept only during construction
// and discarded once the graph is built.
type operandState struct {
	lastWriter  []int
	lastReaders [][]int
	lastDs      [][]int
}

func newOperandState(n int, source int) *operandState {
	s := &operandState{
		lastWriter:  make([]int, n),
		lastReaders: make([][]int, n),
		lastDs:      make([][]int, n),
	}
	for i := range s.lastWriter {
		s.lastWriter[i] = source
	}
	return s
}

// Build ingests a circuit plus operand counts and produces the dependence
// graph described in spec §3/§4.1. It always succeeds in producing *some*
// graph; Build itself cannot introduce a cycle (edges only ever point from
// earlier-added nodes to later ones), but it still runs DetectCycles as a
// fatal self-check per spec §7, since a defect in the event table could
// violate that invariant silently otherwise.
func Build(ctx context.Context, circuit []*gate.Gate, p platform.Platform, qubitCount, cregCount int, opts Options) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	combinedCount := qubitCount + cregCount
	logger.Debug("building dependence graph", "gates", len(circuit), "qubits", qubitCount, "cregs", cregCount)

	g := &Graph{}
	// SOURCE lasts one cycle, so its out-edges weigh 1 and every real gate
	// lands strictly after SOURCE's cycle 0.
	sourceID := g.addNode(&Node{Kind: SourceNode, Gate: gate.New("SOURCE", gate.Dummy, nil, nil, p.CycleTime)})
	st := newOperandState(combinedCount, sourceID)

	for _, ins := range circuit {
		consID := g.addNode(&Node{Kind: RealNode, Gate: ins})
		emitForGate(g, st, consID, ins, qubitCount, combinedCount, p.CycleTime, opts)
	}

	sinkID := g.addNode(&Node{Kind: SinkNode, Gate: gate.New("SINK", gate.Dummy, nil, nil, 0)})
	// SINK gathers every dangling chain: treat all combined operands as a
	// write against it, exactly like a generic/display gate would.
	for o := 0; o < combinedCount; o++ {
		writeAccess(g, st, sinkID, o, p.CycleTime)
	}

	if err := DetectCycles(g); err != nil {
		return nil, fmt.Errorf("depgraph: %w", err)
	}
	logger.Debug("dependence graph built", "nodes", len(g.Nodes), "edges", len(g.Edges))
	return g, nil
}

func weightOf(g *Graph, srcID int, cycleTime int) int {
	return gate.CeilDiv(g.Nodes[srcID].Gate.Duration, cycleTime)
}

// writeAccess implements the "current access is W" column of the event
// table: a dependence is added from the last writer, from every reader, and
// from every D-accessor, then the write bookkeeping is reset.
func writeAccess(g *Graph, st *operandState, consID, operand, cycleTime int) {
	src := st.lastWriter[operand]
	g.addEdge(src, consID, operand, WAW, weightOf(g, src, cycleTime))
	for _, r := range st.lastReaders[operand] {
		g.addEdge(r, consID, operand, WAR, weightOf(g, r, cycleTime))
	}
	for _, d := range st.lastDs[operand] {
		g.addEdge(d, consID, operand, WAD, weightOf(g, d, cycleTime))
	}
	st.lastWriter[operand] = consID
	st.lastReaders[operand] = nil
	st.lastDs[operand] = nil
}

// readAccess implements the "current access is R" column: a dependence from
// the last writer and from every D-accessor always; from every reader only
// when commute is disabled (reads otherwise commute freely). The consumer is
// then appended to the readers list and the D list is cleared (a read
// serializes after any pending D-events).
func readAccess(g *Graph, st *operandState, consID, operand, cycleTime int, commute bool) {
	src := st.lastWriter[operand]
	g.addEdge(src, consID, operand, RAW, weightOf(g, src, cycleTime))
	if !commute {
		for _, r := range st.lastReaders[operand] {
			g.addEdge(r, consID, operand, RAR, weightOf(g, r, cycleTime))
		}
	}
	for _, d := range st.lastDs[operand] {
		g.addEdge(d, consID, operand, RAD, weightOf(g, d, cycleTime))
	}
	st.lastReaders[operand] = append(st.lastReaders[operand], consID)
	st.lastDs[operand] = nil
}

// dAccess implements the "current access is D" column (CNOT's target
// operand): a dependence from the last writer and from every reader always;
// from every D-accessor only when commute is disabled. The consumer is then
// appended to the D list and the readers list is cleared.
func dAccess(g *Graph, st *operandState, consID, operand, cycleTime int, commute bool) {
	src := st.lastWriter[operand]
	g.addEdge(src, consID, operand, DAW, weightOf(g, src, cycleTime))
	for _, r := range st.lastReaders[operand] {
		g.addEdge(r, consID, operand, DAR, weightOf(g, r, cycleTime))
	}
	if !commute {
		for _, d := range st.lastDs[operand] {
			g.addEdge(d, consID, operand, DAD, weightOf(g, d, cycleTime))
		}
	}
	st.lastDs[operand] = append(st.lastDs[operand], consID)
	st.lastReaders[operand] = nil
}

// emitForGate dispatches to the per-kind edge emission rules of spec §4.1.
func emitForGate(g *Graph, st *operandState, consID int, ins *gate.Gate, qubitCount, combinedCount, cycleTime int, opts Options) {
	switch ins.Kind {
	case gate.Measure:
		for _, q := range ins.QubitOperands {
			writeAccess(g, st, consID, q, cycleTime)
		}
		for _, c := range ins.CregOperands {
			writeAccess(g, st, consID, gate.Combine(qubitCount, c), cycleTime)
		}

	case gate.Display:
		// No explicit operands: every combined operand is a write.
		for o := 0; o < combinedCount; o++ {
			writeAccess(g, st, consID, o, cycleTime)
		}

	case gate.Classical:
		for _, c := range ins.CregOperands {
			writeAccess(g, st, consID, gate.Combine(qubitCount, c), cycleTime)
		}

	case gate.CNOT:
		if len(ins.QubitOperands) > 0 {
			readAccess(g, st, consID, ins.QubitOperands[0], cycleTime, opts.Commute)
		}
		if len(ins.QubitOperands) > 1 {
			dAccess(g, st, consID, ins.QubitOperands[1], cycleTime, opts.Commute)
		}

	case gate.CZ:
		for _, q := range ins.QubitOperands {
			readAccess(g, st, consID, q, cycleTime, opts.Commute)
		}

	default: // Generic catch-all, and Wait/Remap (they still write the operands they touch)
		for _, q := range ins.QubitOperands {
			writeAccess(g, st, consID, q, cycleTime)
		}
		for _, c := range ins.CregOperands {
			writeAccess(g, st, consID, gate.Combine(qubitCount, c), cycleTime)
		}
	}
}
