package cyclesolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/qsched/internal/depgraph"
	"github.com/vk/qsched/internal/gate"
	"github.com/vk/qsched/internal/platform"
)

func build(t *testing.T, circuit []*gate.Gate, qubits, cregs int, opts depgraph.Options) *depgraph.Graph {
	t.Helper()
	g, err := depgraph.Build(context.Background(), circuit, platform.Platform{CycleTime: 1, QubitNumber: qubits}, qubits, cregs, opts)
	require.NoError(t, err)
	return g
}

// S1: H q0; X q0; Z q0 - ASAP cycles 1,2,3, SINK at 4; ALAP identical.
func TestLinearChainASAPALAP(t *testing.T) {
	h := gate.New("h", gate.Generic, []int{0}, nil, 1)
	x := gate.New("x", gate.Generic, []int{0}, nil, 1)
	z := gate.New("z", gate.Generic, []int{0}, nil, 1)
	circuit := []*gate.Gate{h, x, z}
	g := build(t, circuit, 1, 0, depgraph.Options{})

	ASAP(g)
	assert.Equal(t, 0, g.Source().Gate.Cycle)
	assert.Equal(t, 1, h.Cycle)
	assert.Equal(t, 2, x.Cycle)
	assert.Equal(t, 3, z.Cycle)
	assert.Equal(t, 4, g.Sink().Gate.Cycle)

	ALAP(g)
	assert.Equal(t, 0, g.Source().Gate.Cycle)
	assert.Equal(t, 1, h.Cycle)
	assert.Equal(t, 2, x.Cycle)
	assert.Equal(t, 3, z.Cycle)
	assert.Equal(t, 4, g.Sink().Gate.Cycle)
}

// S2: H q0; H q1 - both at cycle 1, SINK at 2.
func TestIndependenceASAP(t *testing.T) {
	h0 := gate.New("h", gate.Generic, []int{0}, nil, 1)
	h1 := gate.New("h", gate.Generic, []int{1}, nil, 1)
	g := build(t, []*gate.Gate{h0, h1}, 2, 0, depgraph.Options{})

	ASAP(g)
	assert.Equal(t, 1, h0.Cycle)
	assert.Equal(t, 1, h1.Cycle)
	assert.Equal(t, 2, g.Sink().Gate.Cycle)
}

// S7: weight from duration - B must start at least A.cycle + 3.
func TestWeightDrivesLatency(t *testing.T) {
	a := gate.New("a", gate.Generic, []int{0}, nil, 3)
	b := gate.New("b", gate.Generic, []int{0}, nil, 1)
	g := build(t, []*gate.Gate{a, b}, 1, 0, depgraph.Options{})

	ASAP(g)
	assert.GreaterOrEqual(t, b.Cycle, a.Cycle+3)
}

func TestStableSortPreservesProgramOrderOnTies(t *testing.T) {
	a := gate.New("a", gate.Generic, nil, nil, 1)
	b := gate.New("b", gate.Generic, nil, nil, 1)
	c := gate.New("c", gate.Generic, nil, nil, 1)
	a.Cycle, b.Cycle, c.Cycle = 2, 1, 1

	circuit := []*gate.Gate{a, b, c}
	StableSortByCycle(circuit)
	assert.Equal(t, []*gate.Gate{b, c, a}, circuit)
}

func TestDependenceHonoredInvariant(t *testing.T) {
	c1 := gate.New("cnot", gate.CNOT, []int{0, 1}, nil, 2)
	c2 := gate.New("cnot", gate.CNOT, []int{1, 2}, nil, 1)
	g := build(t, []*gate.Gate{c1, c2}, 3, 0, depgraph.Options{Commute: false})

	ASAP(g)
	for _, e := range g.Edges {
		src, tgt := g.Nodes[e.Source].Gate, g.Nodes[e.Target].Gate
		assert.LessOrEqual(t, src.Cycle+e.Weight, tgt.Cycle)
	}
}
