package criticality

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

// Linear chain: remaining decreases monotonically toward SINK.
func TestRemainingLinearChain(t *testing.T) {
	h := gate.New("h", gate.Generic, []int{0}, nil, 1)
	x := gate.New("x", gate.Generic, []int{0}, nil, 1)
	z := gate.New("z", gate.Generic, []int{0}, nil, 1)
	g := build(t, []*gate.Gate{h, x, z}, 1)

	rem := Remaining(g, Forward)
	// nodes: 0=SOURCE,1=h,2=x,3=z,4=SINK
	assert.Equal(t, 0, rem[4])
	assert.Equal(t, 1, rem[3])
	assert.Equal(t, 2, rem[2])
	assert.Equal(t, 3, rem[1])
	assert.Equal(t, 4, rem[0])
}

// A node on the longer of two independent chains is more critical.
func TestLessCriticalPrefersLongerChain(t *testing.T) {
	short := gate.New("short", gate.Generic, []int{0}, nil, 1)
	long1 := gate.New("long1", gate.Generic, []int{1}, nil, 1)
	long2 := gate.New("long2", gate.Generic, []int{1}, nil, 1)
	g := build(t, []*gate.Gate{short, long1, long2}, 2)

	o := New(g, Forward)
	// short = node 1, long1 = node 2 (head of the 2-gate chain).
	assert.True(t, o.LessCritical(1, 2))
	assert.False(t, o.LessCritical(2, 1))
}

func TestLessCriticalIsIrreflexive(t *testing.T) {
	h := gate.New("h", gate.Generic, []int{0}, nil, 1)
	g := build(t, []*gate.Gate{h}, 1)
	o := New(g, Forward)
	assert.False(t, o.LessCritical(1, 1))
}
