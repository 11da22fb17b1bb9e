package uniform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/qsched/internal/depgraph"
	"github.com/vk/qsched/internal/gate"
	"github.com/vk/qsched/internal/platform"
)

func build(t *testing.T, circuit []*gate.Gate, qubits int) *depgraph.Graph {
	t.Helper()
	g, err := depgraph.Build(context.Background(), circuit, platform.Platform{CycleTime: 1, QubitNumber: qubits}, qubits, 0, depgraph.Options{})
	require.NoError(t, err)
	return g
}

// Run never violates a dependence weight, regardless of how it redistributes.
func TestRunHonorsDependenceWeights(t *testing.T) {
	h0 := gate.New("h", gate.Generic, []int{0}, nil, 1)
	h1 := gate.New("h", gate.Generic, []int{1}, nil, 1)
	h2 := gate.New("h", gate.Generic, []int{2}, nil, 1)
	x0 := gate.New("x", gate.Generic, []int{0}, nil, 1)
	g := build(t, []*gate.Gate{h0, h1, h2, x0}, 3)

	Run(g)

	for _, e := range g.Edges {
		src, tgt := g.Nodes[e.Source].Gate, g.Nodes[e.Target].Gate
		assert.LessOrEqual(t, src.Cycle+e.Weight, tgt.Cycle)
	}
}

// Two independent single-gate chains have no ALAP slack: ASAP == ALAP == 1,
// so Run must leave both exactly where it found them.
func TestRunNeverExceedsALAPDeadline(t *testing.T) {
	h0 := gate.New("h", gate.Generic, []int{0}, nil, 1)
	h1 := gate.New("h", gate.Generic, []int{1}, nil, 1)
	g := build(t, []*gate.Gate{h0, h1}, 2)

	Run(g)

	assert.Equal(t, 1, h0.Cycle)
	assert.Equal(t, 1, h1.Cycle)
}

// A gate with real ALAP slack may be redistributed away from a crowded
// cycle, but a gate with no slack cannot move at all.
func TestRunRedistributesWithinSlack(t *testing.T) {
	// q0: a -> b (chain, no slack). q1: c alone (shares no dependence,
	// but ASAP puts it in the same cycle as a; it has slack up to b's
	// cycle since nothing depends on it landing early).
	a := gate.New("a", gate.Generic, []int{0}, nil, 1)
	b := gate.New("b", gate.Generic, []int{0}, nil, 1)
	c := gate.New("c", gate.Generic, []int{1}, nil, 1)
	g := build(t, []*gate.Gate{a, b, c}, 2)

	Run(g)

	// a must stay at cycle 1 (ASAP == ALAP for the head of a chain with
	// a dependent still at its own ASAP slot).
	assert.Equal(t, 1, a.Cycle)
	assert.Equal(t, 2, b.Cycle)
}
