// Package scheduler implements the list scheduler of spec §4.4: it drives an
// available list of ready nodes ordered by criticality, advances a
// current-cycle counter, consults a resource.Manager, and commits gates to
// cycles one at a time.
//
// This completes the arc the teacher's own internal/scheduler.Scheduler left
// as a stub ("Current Status: Stubbed... A complete implementation would:
// 1. Store reference to graph... 3. Continuously scan graph for nodes
// where... 4. Emit ready nodes..."). That sketch's select/scan/emit outline
// is exactly spec §4.4's select/advance/commit/propagate loop, reworked from
// a background-goroutine channel into the synchronous single-threaded walk
// spec §5 requires: scheduling runs single-threaded on one kernel, and a
// Run call is not itself a concurrency primitive.
package scheduler

import (
	"context"
	"fmt"

	"github.com/vk/qsched/internal/criticality"
	"github.com/vk/qsched/internal/ctxlog"
	"github.com/vk/qsched/internal/cyclesolve"
	"github.com/vk/qsched/internal/depgraph"
	"github.com/vk/qsched/internal/gate"
	"github.com/vk/qsched/internal/resource"
)

// ErrResourceStarvation is returned when curr_cycle would have to advance
// past the stall bound without any avlist node ever becoming available.
// Per spec §9's Open Question, the bound is a multiple of the graph's
// critical-path depth rather than an absolute constant.
type ErrResourceStarvation struct {
	CurrCycle int
	Bound     int
}

func (e *ErrResourceStarvation) Error() string {
	return fmt.Sprintf("scheduler: curr_cycle advanced past its depth-derived bound of %d cycles (now %d) with no node available — resource manager appears starved", e.Bound, e.CurrCycle)
}

// Options controls a single list-scheduler run.
type Options struct {
	Direction criticality.Direction
	// Resources is consulted for every non-bypassing gate. Defaults to
	// resource.Unconstrained{} (degenerates to plain ASAP/ALAP) when nil.
	Resources resource.Manager
	// StallCycleMultiplier scales the critical-path-depth stall bound.
	// 0 selects the package default.
	StallCycleMultiplier int
}

const defaultStallMultiplier = 4

// Run executes the list scheduler over g, mutating every node's Gate.Cycle
// in place. It returns *ErrResourceStarvation if the stall bound is hit
// before the available list drains.
func Run(ctx context.Context, g *depgraph.Graph, opts Options) error {
	logger := ctxlog.FromContext(ctx)
	rm := opts.Resources
	if rm == nil {
		rm = resource.Unconstrained{}
	}
	mult := opts.StallCycleMultiplier
	if mult <= 0 {
		mult = defaultStallMultiplier
	}

	s := &run{
		g:       g,
		dir:     opts.Direction,
		oracle:  criticality.New(g, opts.Direction),
		rm:      rm,
		sched:   make([]bool, len(g.Nodes)),
		remDeps: make([]int, len(g.Nodes)),
	}
	s.initDepCounts()

	var start int
	if opts.Direction == criticality.Forward {
		start = g.Source().ID
		s.currCycle = 0
		g.Source().Gate.Cycle = 0
	} else {
		start = g.Sink().ID
		s.currCycle = cyclesolve.ALAPSinkCycle
		g.Sink().Gate.Cycle = s.currCycle
	}
	bound := s.oracle.Remaining(start) * mult
	stallBoundCycle := s.currCycle
	if opts.Direction == criticality.Forward {
		stallBoundCycle += bound
	} else {
		stallBoundCycle -= bound
	}
	s.insert(start)

	for len(s.avlist) > 0 {
		id, ok := s.selectReady()
		if !ok {
			if s.pastBound(stallBoundCycle) {
				return &ErrResourceStarvation{CurrCycle: s.currCycle, Bound: bound}
			}
			s.advance()
			continue
		}
		s.commit(id)
		s.propagate(id)
	}

	if opts.Direction == criticality.Backward {
		shift := g.Source().Gate.Cycle
		for _, n := range g.Nodes {
			n.Gate.Cycle -= shift
		}
	}

	logger.Debug("list scheduling complete", "direction", opts.Direction, "nodes", len(g.Nodes))
	return nil
}

// Finalize reorders circuit by the cycles Run assigned, preserving program
// order among ties, per spec §4.2/§5.
func Finalize(circuit []*gate.Gate) {
	cyclesolve.StableSortByCycle(circuit)
}

// run holds the mutable state of one list-scheduler pass: the scheduled
// set, the available list, and the current cycle counter.
type run struct {
	g      *depgraph.Graph
	dir    criticality.Direction
	oracle *criticality.Oracle
	rm     resource.Manager

	sched     []bool
	remDeps   []int
	avlist    []int
	currCycle int
}

// initDepCounts seeds remDeps with the number of distinct predecessors (in
// the scheduling direction) each node has left to see scheduled.
func (s *run) initDepCounts() {
	for _, n := range s.g.Nodes {
		s.remDeps[n.ID] = len(s.predecessors(n.ID))
	}
}

// predecessors returns the distinct nodes that must be scheduled before id
// becomes ready, in the current direction.
func (s *run) predecessors(id int) []int {
	n := s.g.Nodes[id]
	if s.dir == criticality.Forward {
		return distinctEndpoints(s.g, n.In, func(e depgraph.Edge) int { return e.Source })
	}
	return distinctEndpoints(s.g, n.Out, func(e depgraph.Edge) int { return e.Target })
}

// successors returns the nodes id directly unblocks, in the current
// direction — the set propagate walks after committing id.
func (s *run) successors(id int) []int {
	n := s.g.Nodes[id]
	if s.dir == criticality.Forward {
		return distinctEndpoints(s.g, n.Out, func(e depgraph.Edge) int { return e.Target })
	}
	return distinctEndpoints(s.g, n.In, func(e depgraph.Edge) int { return e.Source })
}

func distinctEndpoints(g *depgraph.Graph, edgeIdxs []int, endpoint func(depgraph.Edge) int) []int {
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

// insert places id into avlist, keeping the list ordered most-critical
// first per the oracle's LessCritical total order.
func (s *run) insert(id int) {
	pos := len(s.avlist)
	for i, existing := range s.avlist {
		if s.oracle.LessCritical(existing, id) {
			pos = i
			break
		}
	}
	s.avlist = append(s.avlist, 0)
	copy(s.avlist[pos+1:], s.avlist[pos:])
	s.avlist[pos] = id
}

// selectReady scans avlist for the first node whose readiness cycle has
// been reached and whose gate the resource manager currently admits,
// removing and returning it.
func (s *run) selectReady() (int, bool) {
	for i, id := range s.avlist {
		n := s.g.Nodes[id]
		if s.dir == criticality.Forward {
			if n.Gate.Cycle > s.currCycle {
				continue
			}
		} else {
			if n.Gate.Cycle < s.currCycle {
				continue
			}
		}
		if !n.Gate.Kind.BypassesResources() && !s.rm.Available(s.currCycle, n.Gate) {
			continue
		}
		s.avlist = append(s.avlist[:i], s.avlist[i+1:]...)
		return id, true
	}
	return 0, false
}

func (s *run) pastBound(stallBoundCycle int) bool {
	if s.dir == criticality.Forward {
		return s.currCycle > stallBoundCycle
	}
	return s.currCycle < stallBoundCycle
}

func (s *run) advance() {
	if s.dir == criticality.Forward {
		s.currCycle++
	} else {
		s.currCycle--
	}
}

// commit assigns id its actual cycle, reserves its resources if it doesn't
// bypass the resource manager, and marks it scheduled.
func (s *run) commit(id int) {
	n := s.g.Nodes[id]
	n.Gate.Cycle = s.currCycle
	if !n.Gate.Kind.BypassesResources() {
		s.rm.Reserve(s.currCycle, n.Gate)
	}
	s.sched[id] = true
}

// propagate decrements remDeps for every node id unblocks; any that reach
// zero have all their predecessors scheduled and are inserted into avlist
// with their readiness cycle computed from those predecessors.
func (s *run) propagate(id int) {
	for _, succID := range s.successors(id) {
		s.remDeps[succID]--
		if s.remDeps[succID] == 0 {
			s.g.Nodes[succID].Gate.Cycle = s.readyCycle(succID)
			s.insert(succID)
		}
	}
}

// readyCycle computes the earliest (forward) or latest (backward) cycle id
// may occupy given that every predecessor in this direction is scheduled.
func (s *run) readyCycle(id int) int {
	n := s.g.Nodes[id]
	if s.dir == criticality.Forward {
		best := 0
		for _, idx := range n.In {
			e := s.g.Edges[idx]
			if c := s.g.Nodes[e.Source].Gate.Cycle + e.Weight; c > best {
				best = c
			}
		}
		return best
	}
	best := cyclesolve.ALAPSinkCycle
	for _, idx := range n.Out {
		e := s.g.Edges[idx]
		if c := s.g.Nodes[e.Target].Gate.Cycle - e.Weight; c < best {
			best = c
		}
	}
	return best
}
