// Package uniform implements the ALAP-uniforming pass of spec §4.5: starting
// from an ASAP-seeded graph, it spreads gates out of overcrowded cycles into
// later, underused ones without ever pushing a node past its ALAP deadline
// or extending the schedule's overall depth.
//
// Grounded on the same list-scheduling shape as internal/scheduler, but
// walking cycle buckets instead of an available list — the teacher's
// internal/dag package has no analogue for this pass. The loop seeds cycles
// with ASAP, measures each node's ALAP deadline, buckets real gates by cycle,
// then visits gates most-critical-first and moves each into the least-loaded
// legal cycle up to its deadline. It does not walk cycles from high to low
// toward a per-bucket target size, and it does not reorder any circuit
// slice.
package uniform

import (
	"github.com/vk/qsched/internal/criticality"
	"github.com/vk/qsched/internal/cyclesolve"
	"github.com/vk/qsched/internal/depgraph"
)

// Run redistributes gates across cycle buckets to flatten peak per-cycle
// occupancy, in place on g's nodes. Run computes the ASAP and ALAP
// assignments itself, overwriting whatever cycles g carried on entry; only
// nodes whose ALAP cycle exceeds their ASAP cycle have any freedom to move.
func Run(g *depgraph.Graph) {
	cyclesolve.ASAP(g)
	asap := snapshotCycles(g)

	cyclesolve.ALAP(g)
	alap := snapshotCycles(g)

	// Restore ASAP as the working assignment; ALAP values become each
	// node's latest legal cycle (its "deadline") for the redistribution
	// below.
	restoreCycles(g, asap)

	oracle := criticality.New(g, criticality.Forward)
	order := nodesByRemainingDesc(g, oracle)

	buckets := bucketize(g)
	depth := alap[g.Sink().ID]

	for _, id := range order {
		n := g.Nodes[id]
		if n.Kind != depgraph.RealNode {
			continue
		}
		deadline := alap[id]
		moveToLeastCrowded(g, buckets, n, deadline, depth)
	}

	finalize(g)
}

func snapshotCycles(g *depgraph.Graph) []int {
	out := make([]int, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.ID] = n.Gate.Cycle
	}
	return out
}

func restoreCycles(g *depgraph.Graph, cycles []int) {
	for _, n := range g.Nodes {
		n.Gate.Cycle = cycles[n.ID]
	}
}

// nodesByRemainingDesc orders real nodes most-critical-first, so the
// redistribution pass settles the hardest-to-move gates before the ones
// with abundant slack.
func nodesByRemainingDesc(g *depgraph.Graph, oracle *criticality.Oracle) []int {
	ids := make([]int, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.Kind == depgraph.RealNode {
			ids = append(ids, n.ID)
		}
	}
	for i := 1; i < len(ids); i++ {
		j := i
		for j > 0 && oracle.LessCritical(ids[j-1], ids[j]) {
			ids[j-1], ids[j] = ids[j], ids[j-1]
			j--
		}
	}
	return ids
}

// bucket tracks which node ids currently occupy a cycle.
type bucket struct {
	cycle int
	ids   map[int]bool
}

func bucketize(g *depgraph.Graph) map[int]*bucket {
	buckets := make(map[int]*bucket)
	for _, n := range g.Nodes {
		if n.Kind != depgraph.RealNode {
			continue
		}
		b, ok := buckets[n.Gate.Cycle]
		if !ok {
			b = &bucket{cycle: n.Gate.Cycle, ids: make(map[int]bool)}
			buckets[n.Gate.Cycle] = b
		}
		b.ids[n.ID] = true
	}
	return buckets
}

// moveToLeastCrowded walks cycles from n's current bucket up to its ALAP
// deadline (never past it, never past the schedule's overall depth) and
// relocates n into whichever legal cycle currently holds the fewest gates,
// provided that cycle is strictly less crowded than n's current one and the
// move does not violate any dependence weight against already-placed
// predecessors or successors.
func moveToLeastCrowded(g *depgraph.Graph, buckets map[int]*bucket, n *depgraph.Node, deadline, depth int) {
	current := n.Gate.Cycle
	earliest := earliestLegalCycle(g, n)
	best := current
	bestLoad := load(buckets, current)

	limit := deadline
	if limit > depth {
		limit = depth
	}
	for c := earliest; c <= limit; c++ {
		if c == current {
			continue
		}
		if !respectsSuccessorWeights(g, n, c) {
			continue
		}
		if l := load(buckets, c); l < bestLoad {
			best = c
			bestLoad = l
		}
	}

	if best == current {
		return
	}
	removeFromBucket(buckets, current, n.ID)
	addToBucket(buckets, best, n.ID)
	n.Gate.Cycle = best
}

func earliestLegalCycle(g *depgraph.Graph, n *depgraph.Node) int {
	best := 0
	for _, idx := range n.In {
		e := g.Edges[idx]
		if c := g.Nodes[e.Source].Gate.Cycle + e.Weight; c > best {
			best = c
		}
	}
	return best
}

// respectsSuccessorWeights reports whether placing n at cycle c still
// satisfies every outgoing dependence weight against its successors'
// current placement.
func respectsSuccessorWeights(g *depgraph.Graph, n *depgraph.Node, c int) bool {
	for _, idx := range n.Out {
		e := g.Edges[idx]
		if c+e.Weight > g.Nodes[e.Target].Gate.Cycle {
			return false
		}
	}
	return true
}

func load(buckets map[int]*bucket, cycle int) int {
	if b, ok := buckets[cycle]; ok {
		return len(b.ids)
	}
	return 0
}

func removeFromBucket(buckets map[int]*bucket, cycle, id int) {
	if b, ok := buckets[cycle]; ok {
		delete(b.ids, id)
	}
}

func addToBucket(buckets map[int]*bucket, cycle, id int) {
	b, ok := buckets[cycle]
	if !ok {
		b = &bucket{cycle: cycle, ids: make(map[int]bool)}
		buckets[cycle] = b
	}
	b.ids[id] = true
}

// finalize re-derives SOURCE/SINK cycles from the redistributed real nodes
// so the sentinels still bound the schedule correctly.
func finalize(g *depgraph.Graph) {
	g.Source().Gate.Cycle = 0
	g.Sink().Gate.Cycle = earliestLegalCycle(g, g.Sink())
}
