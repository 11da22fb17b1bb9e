// Package criticality computes, per node, the longest weighted path
// ("remaining") to the terminal sentinel in a scheduling direction, and
// provides the recursive total order the list scheduler uses to keep its
// available list sorted most-critical-first.
package criticality

import "github.com/vk/qsched/internal/depgraph"

// Direction selects which sentinel is terminal and which edge set
// ("out" or "in") a node's dependents are found through.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Remaining computes remaining[n] for every node in one reverse topological
// pass: forward uses out-edges and terminates at SINK, backward uses
// in-edges and terminates at SOURCE. The graph's construction order is
// already a topological order, so iterating Nodes back-to-front (forward) or
// front-to-back (backward) suffices without a separate topo sort.
func Remaining(g *depgraph.Graph, dir Direction) []int {
	remaining := make([]int, len(g.Nodes))

	if dir == Forward {
		for i := len(g.Nodes) - 2; i >= 0; i-- {
			remaining[i] = maxOverEdges(g, g.Nodes[i].Out, remaining, edgeTarget)
		}
	} else {
		for i := 1; i < len(g.Nodes); i++ {
			remaining[i] = maxOverEdges(g, g.Nodes[i].In, remaining, edgeSource)
		}
	}
	return remaining
}

func edgeTarget(e depgraph.Edge) int { return e.Target }
func edgeSource(e depgraph.Edge) int { return e.Source }

func maxOverEdges(g *depgraph.Graph, edgeIdxs []int, remaining []int, endpoint func(depgraph.Edge) int) int {
	best := 0
	for _, idx := range edgeIdxs {
		e := g.Edges[idx]
		candidate := remaining[endpoint(e)] + e.Weight
		if candidate > best {
			best = candidate
		}
	}
	return best
}

// dependents returns the unique set of nodes directly reachable from n in
// the given direction (out-neighbors forward, in-neighbors backward).
func dependents(g *depgraph.Graph, nodeID int, dir Direction) []int {
	var edgeIdxs []int
	var endpoint func(depgraph.Edge) int
	if dir == Forward {
		edgeIdxs = g.Nodes[nodeID].Out
		endpoint = edgeTarget
	} else {
		edgeIdxs = g.Nodes[nodeID].In
		endpoint = edgeSource
	}

	seen := make(map[int]bool, len(edgeIdxs))
	var out []int
	for _, idx := range edgeIdxs {
		id := endpoint(g.Edges[idx])
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Oracle bundles a graph with its precomputed remaining values and exposes
// the recursive LessCritical total order.
type Oracle struct {
	g         *depgraph.Graph
	dir       Direction
	remaining []int
}

// New precomputes remaining[] for dir and returns an Oracle for LessCritical
// comparisons.
func New(g *depgraph.Graph, dir Direction) *Oracle {
	return &Oracle{g: g, dir: dir, remaining: Remaining(g, dir)}
}

// Remaining returns the longest-path-to-terminal value for node id.
func (o *Oracle) Remaining(id int) int { return o.remaining[id] }

// LessCritical implements the spec §4.3 total order: a strict weak order
// used to keep the available list sorted most-critical-first. It is
// recursive by design — ties are broken by comparing the criticality of each
// side's most critical dependent, recursing as needed — and terminates
// because each recursive step moves strictly further along the DAG.
func (o *Oracle) LessCritical(a, b int) bool {
	if o.remaining[a] != o.remaining[b] {
		return o.remaining[a] < o.remaining[b]
	}

	depsA := dependents(o.g, a, o.dir)
	depsB := dependents(o.g, b, o.dir)
	if len(depsB) == 0 {
		return false
	}
	if len(depsA) == 0 {
		return true
	}

	critA := o.maxRemaining(depsA)
	critB := o.maxRemaining(depsB)
	if critA != critB {
		return critA < critB
	}

	topA := o.topByRemaining(depsA, critA)
	topB := o.topByRemaining(depsB, critB)
	if len(topA) != len(topB) {
		return len(topA) < len(topB)
	}

	return o.LessCritical(o.mostCritical(topA), o.mostCritical(topB))
}

func (o *Oracle) maxRemaining(ids []int) int {
	best := o.remaining[ids[0]]
	for _, id := range ids[1:] {
		if o.remaining[id] > best {
			best = o.remaining[id]
		}
	}
	return best
}

func (o *Oracle) topByRemaining(ids []int, crit int) []int {
	var out []int
	for _, id := range ids {
		if o.remaining[id] == crit {
			out = append(out, id)
		}
	}
	return out
}

// mostCritical picks the most-critical element of ids by the very relation
// this oracle defines, recursing per spec §4.3 step 5.
func (o *Oracle) mostCritical(ids []int) int {
	best := ids[0]
	for _, id := range ids[1:] {
		if o.LessCritical(best, id) {
			best = id
		}
	}
	return best
}
