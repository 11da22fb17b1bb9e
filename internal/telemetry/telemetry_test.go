package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// Publish's wire format must round-trip cleanly for a dashboard on the
// other end to decode it; Dial itself needs a live socket.io endpoint and
// no test in this repository exercises it.
func TestEventRoundTripsThroughMsgpack(t *testing.T) {
	want := Event{Kernel: "kernel-0", Name: "cnot", Kind: "cnot", Cycle: 4}

	encoded, err := msgpack.Marshal(want)
	require.NoError(t, err)

	var got Event
	require.NoError(t, msgpack.Unmarshal(encoded, &got))
	assert.Equal(t, want, got)
}
