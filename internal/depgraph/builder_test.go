package depgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/qsched/internal/gate"
	"github.com/vk/qsched/internal/platform"
)

func plat(cycleTime int) platform.Platform {
	return platform.Platform{CycleTime: cycleTime, QubitNumber: 8}
}

func kindsBetween(g *Graph, src, tgt int) []DepKind {
	var out []DepKind
	for _, e := range g.Edges {
		if e.Source == src && e.Target == tgt {
			out = append(out, e.Kind)
		}
	}
	return out
}

// S1: H q0; X q0; Z q0 - a linear WAW chain through SOURCE and into SINK.
func TestLinearChain(t *testing.T) {
	h := gate.New("h", gate.Generic, []int{0}, nil, 1)
	x := gate.New("x", gate.Generic, []int{0}, nil, 1)
	z := gate.New("z", gate.Generic, []int{0}, nil, 1)

	g, err := Build(context.Background(), []*gate.Gate{h, x, z}, plat(1), 1, 0, Options{})
	require.NoError(t, err)

	require.Len(t, g.Nodes, 5) // SOURCE, h, x, z, SINK
	assert.Equal(t, []DepKind{WAW}, kindsBetween(g, 0, 1)) // SOURCE -> h
	assert.Equal(t, []DepKind{WAW}, kindsBetween(g, 1, 2)) // h -> x
	assert.Equal(t, []DepKind{WAW}, kindsBetween(g, 2, 3)) // x -> z
	assert.Equal(t, []DepKind{WAW}, kindsBetween(g, 3, 4)) // z -> SINK
}

// S2: H q0; H q1 - independent operands, no edge between the two gates.
func TestIndependentGates(t *testing.T) {
	h0 := gate.New("h", gate.Generic, []int{0}, nil, 1)
	h1 := gate.New("h", gate.Generic, []int{1}, nil, 1)

	g, err := Build(context.Background(), []*gate.Gate{h0, h1}, plat(1), 2, 0, Options{})
	require.NoError(t, err)

	assert.Empty(t, kindsBetween(g, 1, 2))
	assert.Empty(t, kindsBetween(g, 2, 1))
}

// S3: CNOT q0,q1; CNOT q0,q2 - control-sharing commutativity.
func TestCNOTControlCommutes(t *testing.T) {
	c1 := gate.New("cnot", gate.CNOT, []int{0, 1}, nil, 1)
	c2 := gate.New("cnot", gate.CNOT, []int{0, 2}, nil, 1)

	t.Run("commute=yes suppresses RAR", func(t *testing.T) {
		g, err := Build(context.Background(), []*gate.Gate{c1, c2}, plat(1), 3, 0, Options{Commute: true})
		require.NoError(t, err)
		assert.Empty(t, kindsBetween(g, 1, 2))
	})

	t.Run("commute=no forces RAR", func(t *testing.T) {
		g, err := Build(context.Background(), []*gate.Gate{c1, c2}, plat(1), 3, 0, Options{Commute: false})
		require.NoError(t, err)
		assert.Equal(t, []DepKind{RAR}, kindsBetween(g, 1, 2))
	})
}

// S4: CZ q0,q1; CZ q1,q0 - symmetric reads.
func TestCZSymmetry(t *testing.T) {
	cz1 := gate.New("cz", gate.CZ, []int{0, 1}, nil, 1)
	cz2 := gate.New("cz", gate.CZ, []int{1, 0}, nil, 1)

	t.Run("commute=yes suppresses RAR", func(t *testing.T) {
		g, err := Build(context.Background(), []*gate.Gate{cz1, cz2}, plat(1), 2, 0, Options{Commute: true})
		require.NoError(t, err)
		assert.Empty(t, kindsBetween(g, 1, 2))
	})

	t.Run("commute=no forces RAR both operands", func(t *testing.T) {
		g, err := Build(context.Background(), []*gate.Gate{cz1, cz2}, plat(1), 2, 0, Options{Commute: false})
		require.NoError(t, err)
		assert.ElementsMatch(t, []DepKind{RAR, RAR}, kindsBetween(g, 1, 2))
	})
}

// S5: H q0; MEASURE q0 -> c0; X q0 - measure always serializes regardless of commute.
func TestMeasureSerializes(t *testing.T) {
	h := gate.New("h", gate.Generic, []int{0}, nil, 1)
	m := gate.New("measure", gate.Measure, []int{0}, []int{0}, 1)
	x := gate.New("x", gate.Generic, []int{0}, nil, 1)

	g, err := Build(context.Background(), []*gate.Gate{h, m, x}, plat(1), 1, 1, Options{Commute: true})
	require.NoError(t, err)

	assert.Equal(t, []DepKind{WAW}, kindsBetween(g, 1, 2)) // h -> measure
	assert.Equal(t, []DepKind{WAW}, kindsBetween(g, 2, 3)) // measure -> x
}

// S7: weight equals ceil(duration/cycle_time).
func TestWeightFromDuration(t *testing.T) {
	a := gate.New("a", gate.Generic, []int{0}, nil, 3)
	b := gate.New("b", gate.Generic, []int{0}, nil, 1)

	g, err := Build(context.Background(), []*gate.Gate{a, b}, plat(1), 1, 0, Options{})
	require.NoError(t, err)

	var weight int
	for _, e := range g.Edges {
		if e.Source == 1 && e.Target == 2 {
			weight = e.Weight
		}
	}
	assert.Equal(t, 3, weight)
}

func TestDAGIsAcyclic(t *testing.T) {
	h := gate.New("h", gate.Generic, []int{0}, nil, 1)
	g, err := Build(context.Background(), []*gate.Gate{h}, plat(1), 1, 0, Options{})
	require.NoError(t, err)
	assert.NoError(t, DetectCycles(g))
}

func TestEmptyCircuitIsLegal(t *testing.T) {
	g, err := Build(context.Background(), nil, plat(1), 2, 0, Options{})
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2) // SOURCE, SINK only
}
