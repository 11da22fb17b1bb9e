package scheduleropts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := Default()
	assert.Equal(t, ASAP, opts.Scheduler)
	assert.True(t, opts.Uniform)
	assert.True(t, opts.Commute)
	assert.True(t, opts.Prescheduler)
	assert.Equal(t, 0, opts.StallCycleMultiplier)
}
