package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/qsched/internal/criticality"
	"github.com/vk/qsched/internal/depgraph"
	"github.com/vk/qsched/internal/gate"
	"github.com/vk/qsched/internal/resource/resourcemock"
	"go.uber.org/mock/gomock"
)

// TestRunConsultsResourceManagerPerGate exercises the scheduler against a
// mocked resource.Manager to confirm it calls Available and Reserve exactly
// once each for the one real gate, and never calls either for the bypassing
// SOURCE/SINK sentinels.
func TestRunConsultsResourceManagerPerGate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mgr := resourcemock.NewMockManager(ctrl)

	h := gate.New("h", gate.Generic, []int{0}, nil, 1)
	g := build(t, []*gate.Gate{h}, 1, depgraph.Options{})

	mgr.EXPECT().Available(gomock.Any(), h).Return(true).Times(1)
	mgr.EXPECT().Reserve(gomock.Any(), h).Times(1)

	err := Run(context.Background(), g, Options{Direction: criticality.Forward, Resources: mgr})
	require.NoError(t, err)
}
