// Package cyclesolve implements the resource-free cycle solver: ASAP via
// forward longest-path, ALAP via backward longest-path, both over a
// depgraph.Graph built for one kernel.
package cyclesolve

import (
	"sort"

	"github.com/vk/qsched/internal/depgraph"
	"github.com/vk/qsched/internal/gate"
)

// ALAPSinkCycle is the large sentinel ALAP seeds SINK with before walking
// backward; the spec calls it "a large constant (reserved sentinel)".
const ALAPSinkCycle = gate.MaxCycle / 2

// ASAP assigns every node the earliest cycle consistent with its
// predecessors: SOURCE is 0, and each node in program order takes
// max(source.cycle + weight) over its in-edges, or 0 with none.
func ASAP(g *depgraph.Graph) {
	g.Source().Gate.Cycle = 0
	for _, n := range g.Nodes[1:] {
		n.Gate.Cycle = earliestFromPredecessors(g, n)
	}
}

func earliestFromPredecessors(g *depgraph.Graph, n *depgraph.Node) int {
	best := 0
	found := false
	for _, idx := range n.In {
		e := g.Edges[idx]
		candidate := g.Nodes[e.Source].Gate.Cycle + e.Weight
		if !found || candidate > best {
			best = candidate
			found = true
		}
	}
	return best
}

// ALAP assigns every node the latest cycle that does not push SINK out
// further than ASAP would: SINK is seeded with a sentinel, each node in
// reverse program order takes min(target.cycle - weight) over its
// out-edges, and finally every cycle is shifted down so SOURCE lands at 0.
func ALAP(g *depgraph.Graph) {
	g.Sink().Gate.Cycle = ALAPSinkCycle
	for i := len(g.Nodes) - 2; i >= 0; i-- {
		n := g.Nodes[i]
		n.Gate.Cycle = latestFromSuccessors(g, n)
	}

	shift := g.Source().Gate.Cycle
	for _, n := range g.Nodes {
		n.Gate.Cycle -= shift
	}
}

func latestFromSuccessors(g *depgraph.Graph, n *depgraph.Node) int {
	best := ALAPSinkCycle
	found := false
	for _, idx := range n.Out {
		e := g.Edges[idx]
		candidate := g.Nodes[e.Target].Gate.Cycle - e.Weight
		if !found || candidate < best {
			best = candidate
			found = true
		}
	}
	return best
}

// StableSortByCycle reorders circuit ascending by cycle, preserving program
// order among ties, per spec §4.2/§5 ("Program order is preserved among
// gates that land on the same cycle").
func StableSortByCycle(circuit []*gate.Gate) {
	sort.SliceStable(circuit, func(i, j int) bool {
		return circuit[i].Cycle < circuit[j].Cycle
	})
}
